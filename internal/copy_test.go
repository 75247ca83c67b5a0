package internal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"syscall"
	"testing"
)

func TestCopyFileAtomic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dest := filepath.Join(dir, "dest.png")

	content := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3, 255}
	if err := os.WriteFile(src, content, 0644); err != nil {
		t.Fatal(err)
	}

	if err := copyFileAtomic(src, dest); err != nil {
		t.Fatalf("copyFileAtomic failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Copied content differs: got %v, want %v", got, content)
	}

	// Temp file must not be left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 files after copy, got %d", len(entries))
	}
}

func TestCopyFileAtomic_MissingSource(t *testing.T) {
	dir := t.TempDir()

	err := copyFileAtomic(filepath.Join(dir, "missing.png"), filepath.Join(dir, "dest.png"))
	if err == nil {
		t.Fatal("Expected error for missing source")
	}
	if _, err := os.Stat(filepath.Join(dir, "dest.png")); !os.IsNotExist(err) {
		t.Error("Destination should not exist after failed copy")
	}
}

func TestFileHash(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")

	os.WriteFile(a, []byte("same"), 0644)
	os.WriteFile(b, []byte("same"), 0644)
	os.WriteFile(c, []byte("different"), 0644)

	ha, err := fileHash(a)
	if err != nil {
		t.Fatal(err)
	}
	hb, _ := fileHash(b)
	hc, _ := fileHash(c)

	if ha != hb {
		t.Errorf("Identical files hashed differently: %s vs %s", ha, hb)
	}
	if ha == hc {
		t.Error("Different files hashed identically")
	}
	if len(ha) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(ha))
	}
}

func TestRandomName_Distinct(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{32}\.png$`)
	seen := make(map[string]bool, 500)

	for i := 0; i < 500; i++ {
		name, err := randomName()
		if err != nil {
			t.Fatal(err)
		}
		if !pattern.MatchString(name) {
			t.Fatalf("Unexpected name format: %q", name)
		}
		seen[name] = true
	}

	if len(seen) != 500 {
		t.Errorf("Expected 500 distinct names, got %d", len(seen))
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.png")

	if err := writeFileAtomic(dest, []byte("payload")); err != nil {
		t.Fatalf("writeFileAtomic failed: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "payload" {
		t.Errorf("Unexpected content %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected only the destination file, got %d entries", len(entries))
	}
}

func TestWriteFileAtomic_RenameFailure(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.png")

	renameFunc = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.ENOSPC}
	}
	t.Cleanup(func() { renameFunc = os.Rename })

	if err := writeFileAtomic(dest, []byte("payload")); !errors.Is(err, syscall.ENOSPC) {
		t.Fatalf("Expected ENOSPC, got %v", err)
	}

	// Neither the destination nor the temp file may remain
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected empty directory, got %d entries", len(entries))
	}
}
