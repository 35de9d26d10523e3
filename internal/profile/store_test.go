package profile

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/acolita/genpass/internal/testing/fakes/fakefs"
)

const testDir = "/home/test/.config/genpass/profiles"

func newTestStore() (*Store, *fakefs.FS) {
	fs := fakefs.New()
	return NewStore(testDir, fs), fs
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "default"},
		{in: "  ", want: "default"},
		{in: "work", want: "work"},
		{in: " work-vpn ", want: "work-vpn"},
		{in: "../etc", wantErr: true},
		{in: "a/b", wantErr: true},
		{in: `a\b`, wantErr: true},
		{in: ".hidden", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeName(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidName) {
					t.Errorf("NormalizeName(%q) error = %v, want ErrInvalidName", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeName(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStore_SaveLoad(t *testing.T) {
	store, fs := newTestStore()

	p := &Profile{
		MinNumeric:       intp(2),
		MaxSymbol:        intp(0),
		Length:           intp(12),
		Symbols:          strp("#$"),
		ExcludeAmbiguous: boolp(true),
		Count:            intp(3),
	}
	if err := store.Save("work", p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := fs.ReadFile(testDir + "/work.yaml")
	if err != nil {
		t.Fatalf("profile file not written: %v", err)
	}
	for _, key := range []string{"min_numeric: 2", "max_symbol: 0", "length: 12", "exclude_ambiguous: true", "count: 3"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("profile file missing %q:\n%s", key, data)
		}
	}
	if strings.Contains(string(data), "min_lower") {
		t.Errorf("unset field written:\n%s", data)
	}

	got, err := store.Load("work")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("Load() = %+v, want %+v", got, p)
	}
}

func TestStore_SaveLeavesNoTempFile(t *testing.T) {
	store, fs := newTestStore()

	if err := store.Save("work", &Profile{Length: intp(8)}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := store.Save("work", &Profile{Length: intp(9)}); err != nil {
		t.Fatalf("second Save() error: %v", err)
	}

	for _, f := range fs.Files() {
		if strings.HasSuffix(f, ".tmp") {
			t.Errorf("temporary file left behind: %s", f)
		}
	}
	got, err := store.Load("work")
	if err != nil || got.Length == nil || *got.Length != 9 {
		t.Errorf("Load() = %+v, %v, want length 9", got, err)
	}
}

func TestStore_DefaultName(t *testing.T) {
	store, fs := newTestStore()

	if err := store.Save("", &Profile{Count: intp(2)}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := fs.Stat(testDir + "/default.yaml"); err != nil {
		t.Errorf("default profile not written: %v", err)
	}
	p, err := store.Load("default")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.CountOrDefault() != 2 {
		t.Errorf("Count = %d, want 2", p.CountOrDefault())
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore()

	p, err := store.Load("nope")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !p.IsEmpty() {
		t.Errorf("Load(missing) = %+v, want empty profile", p)
	}
}

func TestStore_LoadInvalidYAML(t *testing.T) {
	store, fs := newTestStore()
	fs.AddFile(testDir+"/bad.yaml", []byte("length: [not, a, number"), 0o644)

	if _, err := store.Load("bad"); err == nil {
		t.Fatal("Load(invalid YAML) expected error, got nil")
	}
}

func TestStore_LoadReadError(t *testing.T) {
	store, fs := newTestStore()
	fs.ReadErr = errors.New("disk on fire")

	_, err := store.Load("work")
	if err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("Load() error = %v, want wrapped read error", err)
	}
}

func TestStore_SaveErrors(t *testing.T) {
	store, fs := newTestStore()

	if err := store.Save("../escape", &Profile{}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Save(bad name) error = %v, want ErrInvalidName", err)
	}

	fs.WriteErr = errors.New("read-only")
	if err := store.Save("work", &Profile{}); err == nil {
		t.Error("Save() expected error on write failure")
	}
}

func TestStore_List(t *testing.T) {
	store, fs := newTestStore()
	for _, name := range []string{"work-vpn", "default", "home", "work-db"} {
		if err := store.Save(name, &Profile{}); err != nil {
			t.Fatalf("Save(%q) error: %v", name, err)
		}
	}
	fs.AddFile(testDir+"/notes.txt", []byte("ignored"), 0o644)
	fs.AddFile(testDir+"/.swap.yaml", []byte("ignored"), 0o644)
	if err := fs.MkdirAll(testDir+"/archive.yaml", 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{pattern: "", want: []string{"default", "home", "work-db", "work-vpn"}},
		{pattern: "work-*", want: []string{"work-db", "work-vpn"}},
		{pattern: "{home,default}", want: []string{"default", "home"}},
		{pattern: "none*", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := store.List(tt.pattern)
			if err != nil {
				t.Fatalf("List(%q) error: %v", tt.pattern, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("List(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	store, _ := newTestStore()

	got, err := store.List("")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestStore_ListBadPattern(t *testing.T) {
	store, _ := newTestStore()

	if _, err := store.List("work-[a"); err == nil {
		t.Error("List(bad pattern) expected error")
	}
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore()
	if err := store.Save("work", &Profile{}); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete("work"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	names, _ := store.List("")
	if len(names) != 0 {
		t.Errorf("List() after delete = %v, want empty", names)
	}

	if err := store.Delete("work"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}

func TestNameFromPath(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{path: "/p/work.yaml", want: "work", wantOK: true},
		{path: "/p/work.yaml.swp"},
		{path: "/p/.work.yaml"},
		{path: "/p/.yaml"},
		{path: "/p/readme.md"},
	}
	for _, tt := range tests {
		got, ok := NameFromPath(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NameFromPath(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}
