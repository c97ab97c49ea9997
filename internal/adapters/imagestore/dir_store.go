package imagestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirStore persists map imagery as PNG files under a single directory,
// created on first write.
type DirStore struct {
	dir string
}

func NewDirStore(dir string) (*DirStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("image store: directory is empty")
	}
	return &DirStore{dir: dir}, nil
}

// Save writes data under name (a ".png" suffix is appended when missing)
// and returns the full path. Path separators in name are flattened so a
// caller-supplied token cannot escape the directory.
func (s *DirStore) Save(name string, data []byte) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("image store: name is empty")
	}
	if len(data) == 0 {
		return "", errors.New("image store: no image data")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("image store: create %q: %w", s.dir, err)
	}

	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	if !strings.HasSuffix(name, ".png") {
		name += ".png"
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("image store: write %q: %w", path, err)
	}

	return path, nil
}
