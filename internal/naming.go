package internal

import (
	"encoding/hex"
	"path/filepath"

	"github.com/google/uuid"
)

// imageExt is the extension given to every generated file.
const imageExt = ".png"

// randomName returns a random 32 character lowercase hex identifier with the
// .png extension, e.g. "3f2b...c9.png".
func randomName() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(id[:]) + imageExt, nil
}

// randomPath joins a fresh random name with dir.
func randomPath(dir string) (string, error) {
	name, err := randomName()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
