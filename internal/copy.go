package internal

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// fileHash computes SHA256 hash of a file content
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// renameFunc is swapped in tests to simulate a failing filesystem.
var renameFunc = os.Rename

// tempPath returns the hidden temp name used while dest is being written.
func tempPath(dest string) string {
	return filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp")
}

// writeFileAtomic writes data to a hidden temp file next to dest, then
// renames it, so dest is either absent or complete.
func writeFileAtomic(dest string, data []byte) error {
	tmp := tempPath(dest)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := renameFunc(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// copyFileAtomic copies a file byte for byte (copy to hidden temp → rename).
// The temp file lives next to dest so the rename stays on one filesystem.
func copyFileAtomic(src, dest string) error {
	tmp := tempPath(dest)
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := renameFunc(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
