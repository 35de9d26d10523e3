package fakefs

import (
	"errors"
	"io/fs"
	"testing"
)

func TestFS_ReadWriteFile(t *testing.T) {
	f := New()

	// WriteFile auto-creates parent directories (like production behavior)
	err := f.WriteFile("/nonexistent/nested/file.txt", []byte("data"), 0644)
	if err != nil {
		t.Fatalf("WriteFile() should auto-create parents, got error: %v", err)
	}

	// Verify data was written
	data, err := f.ReadFile("/nonexistent/nested/file.txt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "data" {
		t.Errorf("ReadFile() = %q, want %q", data, "data")
	}

	// Test overwrite
	err = f.WriteFile("/nonexistent/nested/file.txt", []byte("updated"), 0644)
	if err != nil {
		t.Fatalf("WriteFile() overwrite error = %v", err)
	}

	data, err = f.ReadFile("/nonexistent/nested/file.txt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "updated" {
		t.Errorf("ReadFile() = %q, want %q", data, "updated")
	}
}

func TestFS_Stat(t *testing.T) {
	f := New()
	f.AddFile("/tmp/test.txt", []byte("hello"), 0644)

	info, err := f.Stat("/tmp/test.txt")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	if info.Name() != "test.txt" {
		t.Errorf("Name() = %q, want %q", info.Name(), "test.txt")
	}
	if info.Size() != 5 {
		t.Errorf("Size() = %d, want %d", info.Size(), 5)
	}
	if info.IsDir() {
		t.Error("IsDir() = true, want false")
	}
}

func TestFS_StatNotExist(t *testing.T) {
	f := New()

	_, err := f.Stat("/nonexistent")
	if err == nil {
		t.Error("Stat() should return error for nonexistent file")
	}
	if !isNotExist(err) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestFS_MkdirAll(t *testing.T) {
	f := New()

	err := f.MkdirAll("/a/b/c/d", 0755)
	if err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	// Verify directories exist via Stat
	for _, path := range []string{"/a", "/a/b", "/a/b/c", "/a/b/c/d"} {
		info, err := f.Stat(path)
		if err != nil {
			t.Errorf("Stat(%q) error = %v", path, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q).IsDir() = false, want true", path)
		}
	}
}

func TestFS_Remove(t *testing.T) {
	f := New()
	f.AddFile("/tmp/test.txt", []byte("data"), 0644)

	err := f.Remove("/tmp/test.txt")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	_, err = f.Stat("/tmp/test.txt")
	if err == nil {
		t.Error("file should not exist after Remove()")
	}
}

func TestFS_RemoveNonEmptyDirectory(t *testing.T) {
	f := New()
	f.AddFile("/cfg/profiles/work.yaml", []byte("x"), 0644)

	if err := f.Remove("/cfg/profiles"); err == nil {
		t.Error("Remove() of non-empty directory should fail")
	}
}

func TestFS_ReadDir(t *testing.T) {
	f := New()
	f.AddFile("/cfg/profiles/work.yaml", []byte("a"), 0644)
	f.AddFile("/cfg/profiles/default.yaml", []byte("bb"), 0644)
	f.AddFile("/cfg/profiles/nested/deep.yaml", []byte("c"), 0644)
	f.AddFile("/cfg/other.yaml", []byte("d"), 0644)

	entries, err := f.ReadDir("/cfg/profiles")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	want := []string{"default.yaml", "nested", "work.yaml"}
	if len(entries) != len(want) {
		t.Fatalf("ReadDir() returned %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Name() != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, e.Name(), want[i])
		}
	}
	if !entries[1].IsDir() {
		t.Error("nested should be reported as a directory")
	}
	if entries[0].IsDir() {
		t.Error("default.yaml should not be reported as a directory")
	}
}

func TestFS_ReadDirNotExist(t *testing.T) {
	f := New()

	_, err := f.ReadDir("/missing")
	if !isNotExist(err) {
		t.Errorf("ReadDir() error = %v, want ErrNotExist", err)
	}
}

func TestFS_InjectedErrors(t *testing.T) {
	f := New()
	f.AddFile("/tmp/a.txt", []byte("x"), 0644)
	f.WriteErr = errors.New("disk full")
	f.ReadErr = errors.New("io error")

	if err := f.WriteFile("/tmp/b.txt", []byte("y"), 0644); !errors.Is(err, f.WriteErr) {
		t.Errorf("WriteFile() error = %v, want injected error", err)
	}
	if err := f.MkdirAll("/tmp/x", 0755); !errors.Is(err, f.WriteErr) {
		t.Errorf("MkdirAll() error = %v, want injected error", err)
	}
	if _, err := f.ReadFile("/tmp/a.txt"); !errors.Is(err, f.ReadErr) {
		t.Errorf("ReadFile() error = %v, want injected error", err)
	}
	if _, err := f.ReadDir("/tmp"); !errors.Is(err, f.ReadErr) {
		t.Errorf("ReadDir() error = %v, want injected error", err)
	}
}

func TestFS_HomeAndEnv(t *testing.T) {
	f := New()
	f.SetHomeDir("/home/alice")
	f.SetEnv("XDG_CONFIG_HOME", "/xdg")

	home, err := f.UserHomeDir()
	if err != nil || home != "/home/alice" {
		t.Errorf("UserHomeDir() = (%q, %v), want /home/alice", home, err)
	}
	if got := f.Getenv("XDG_CONFIG_HOME"); got != "/xdg" {
		t.Errorf("Getenv() = %q, want /xdg", got)
	}
	if got := f.Getenv("UNSET"); got != "" {
		t.Errorf("Getenv(UNSET) = %q, want empty", got)
	}
}

func TestFS_Files(t *testing.T) {
	f := New()
	f.AddFile("/b.txt", nil, 0644)
	f.AddFile("/a.txt", nil, 0644)

	files := f.Files()
	if len(files) != 2 || files[0] != "/a.txt" || files[1] != "/b.txt" {
		t.Errorf("Files() = %v, want [/a.txt /b.txt]", files)
	}
}

func TestFS_AddFile(t *testing.T) {
	f := New()
	f.AddFile("/deep/nested/path/file.txt", []byte("content"), 0644)

	data, err := f.ReadFile("/deep/nested/path/file.txt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "content" {
		t.Errorf("ReadFile() = %q, want %q", data, "content")
	}
}

func isNotExist(err error) bool {
	if pathErr, ok := err.(*fs.PathError); ok {
		return pathErr.Err == fs.ErrNotExist
	}
	return false
}

func TestFS_Rename(t *testing.T) {
	f := New()
	f.AddFile("/tmp/a.tmp", []byte("new"), 0644)
	f.AddFile("/tmp/a", []byte("old"), 0644)

	if err := f.Rename("/tmp/a.tmp", "/tmp/a"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	data, err := f.ReadFile("/tmp/a")
	if err != nil || string(data) != "new" {
		t.Errorf("ReadFile() = %q, %v; want new", data, err)
	}
	if _, err := f.Stat("/tmp/a.tmp"); err == nil {
		t.Error("source should not exist after Rename()")
	}
	if err := f.Rename("/tmp/missing", "/tmp/b"); !isNotExist(err) {
		t.Errorf("Rename(missing) error = %v, want not-exist", err)
	}
}
