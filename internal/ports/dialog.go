package ports

// WizardData holds the answers of the profile wizard form.
// Numeric answers are kept as text so an empty field means "unset".
type WizardData struct {
	ExactLength bool
	Length      string
	MinLength   string
	MaxLength   string

	MinNumeric string
	MaxNumeric string
	MinLower   string
	MaxLower   string
	MinUpper   string
	MaxUpper   string
	MinSymbol  string
	MaxSymbol  string

	CustomSymbols    bool
	Symbols          string
	ExcludeAmbiguous bool
	Count            string

	Save        bool
	ProfileName string
	Confirmed   bool
}

// DialogProvider abstracts interactive user dialogs.
// Implementations may use TUI forms or test fakes.
type DialogProvider interface {
	// ProfileWizard shows a form to create or edit a generation profile.
	// Pre-filled values come from the input data; the user can modify them.
	// Returns the final form data with Confirmed=true if the user accepted.
	ProfileWizard(prefill WizardData) (WizardData, error)
}
