package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"polluxkart-admin/internal/utils"
)

// Local upload limits mirror the admin image endpoints.
const MaxLocalImageSize = 5 * 1024 * 1024

// LocalImageTypes lists the content types accepted for local disk uploads.
var LocalImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

func AllowedLocalImageType(contentType string) bool {
	for _, t := range LocalImageTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// LocalStore writes uploaded images to a flat directory served back under
// /api/uploads/.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// Save stores content under a random hex name, keeping the original
// extension. The original name never reaches disk.
func (s *LocalStore) Save(originalFilename string, content []byte) (string, error) {
	ext := "jpg"
	if i := strings.LastIndex(originalFilename, "."); i >= 0 && i < len(originalFilename)-1 {
		ext = originalFilename[i+1:]
	}
	name := utils.UUIDHex() + "." + ext

	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return "", err
	}
	return name, nil
}

// Resolve maps a requested filename to a path inside the upload dir,
// rejecting anything that would escape it.
func (s *LocalStore) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", errors.New("invalid filename")
	}
	return filepath.Join(s.dir, name), nil
}
