package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"slidemarket/internal/domain/service"
	"slidemarket/pkg/errors"
)

type localStorage struct {
	root string
}

// NewLocalStorage creates the media directories under root and returns a
// FileStorage over them.
func NewLocalStorage(root string) (service.FileStorage, error) {
	for _, folder := range []string{service.FolderSlides, service.FolderImages, service.FolderReceipts} {
		if err := os.MkdirAll(filepath.Join(root, folder), 0o755); err != nil {
			return nil, errors.StorageFault("Failed to create media directory", err)
		}
	}
	return &localStorage{root: root}, nil
}

func (s *localStorage) Save(folder, originalName string, data []byte) (string, error) {
	name := uuid.NewString()
	if sanitized := sanitizeName(originalName); sanitized != "" {
		name += "_" + sanitized
	}

	ref := filepath.Join(s.root, folder, name)
	if err := os.WriteFile(ref, data, 0o644); err != nil {
		return "", errors.StorageFault("Failed to save file", err)
	}
	return ref, nil
}

func (s *localStorage) Read(ref string) ([]byte, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("File", err)
		}
		return nil, errors.StorageFault("Failed to read file", err)
	}
	return data, nil
}

func (s *localStorage) Delete(ref string) error {
	if err := os.Remove(ref); err != nil && !os.IsNotExist(err) {
		return errors.StorageFault("Failed to delete file", err)
	}
	return nil
}

// sanitizeName strips path separators and other characters that have no place
// in a generated filename.
func sanitizeName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
