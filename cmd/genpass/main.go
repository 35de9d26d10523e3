// genpass generates random passwords with per-class character constraints.
package main

import (
	"os"

	"github.com/acolita/genpass/internal/adapters/realclipboard"
	"github.com/acolita/genpass/internal/adapters/realdialog"
	"github.com/acolita/genpass/internal/adapters/realfs"
	"github.com/acolita/genpass/internal/adapters/realrand"
	"github.com/acolita/genpass/internal/logging"
)

// Version information - set at build time.
var (
	Version   = "0.3.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	a := &app{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		fs:           realfs.New(),
		random:       realrand.New(),
		clipboard:    realclipboard.New(),
		dialog:       realdialog.New(),
		setupLogging: logging.Setup,
	}
	os.Exit(a.run(os.Args[1:]))
}
