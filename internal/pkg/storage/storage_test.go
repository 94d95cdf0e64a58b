package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), "/uploads/")
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	key, err := s.Upload(ctx, strings.NewReader("photo-bytes"), "employees/abc.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "employees/abc.jpg", key)

	body, err := os.ReadFile(filepath.Join(s.BasePath(), "employees", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "photo-bytes", string(body))

	url, err := s.GetURL(ctx, key, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/employees/abc.jpg", url)

	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(s.BasePath(), "employees", "abc.jpg"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	// Deleting twice is fine.
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorage_TraversalStaysInsideBase(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	key, err := s.Upload(ctx, strings.NewReader("x"), "../../escape.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "escape.jpg", key)

	_, statErr := os.Stat(filepath.Join(s.BasePath(), "escape.jpg"))
	assert.NoError(t, statErr)
}

func TestLocalStorage_EmptyKey(t *testing.T) {
	s := newTestLocalStorage(t)

	_, err := s.Upload(context.Background(), strings.NewReader("x"), "", "image/jpeg")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestS3Storage_Key(t *testing.T) {
	s := &S3Storage{bucket: "photos"}

	key, err := s.key("/employees/a.png")
	require.NoError(t, err)
	assert.Equal(t, "employees/a.png", key)

	_, err = s.key("../a.png")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestS3Storage_PublicURL(t *testing.T) {
	s := &S3Storage{bucket: "photos", publicURL: "https://cdn.example.com/photos"}

	url, err := s.GetURL(context.Background(), "employees/a.png", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photos/employees/a.png", url)
}
