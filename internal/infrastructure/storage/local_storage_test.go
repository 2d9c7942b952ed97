package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidemarket/internal/domain/service"
	"slidemarket/pkg/errors"
)

func TestSaveReadDelete(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ref, err := s.Save(service.FolderSlides, "lecture.pdf", []byte("content"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, "_lecture.pdf"))

	data, err := s.Read(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)

	require.NoError(t, s.Delete(ref))
	_, err = s.Read(ref)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestDeleteMissingIsNoop(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, s.Delete(filepath.Join("nope", "missing.pdf")))
}

func TestSaveSanitizesName(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root)
	require.NoError(t, err)

	ref, err := s.Save(service.FolderImages, "../../etc/pass wd.jpg", []byte{1})
	require.NoError(t, err)

	// The stored file stays inside the images folder, path parts stripped.
	assert.Equal(t, filepath.Join(root, service.FolderImages), filepath.Dir(ref))
	assert.True(t, strings.HasSuffix(ref, "_pass_wd.jpg"))
}
