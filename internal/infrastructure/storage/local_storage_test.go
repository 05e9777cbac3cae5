package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalImageStorage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewLocalImageStorage(dir, "/uploads/")
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	url, err := s.Upload(ctx, "products/urea.jpg", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/urea.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "products", "urea.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	key, ok := s.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "products/urea.jpg", key)

	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, "products", "urea.jpg"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Delete(ctx, key), "deleting twice is fine")
}

func TestLocalImageStorage_StaysInsideDir(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")

	s, err := NewLocalImageStorage(dir, "/uploads")
	require.NoError(t, err)

	_, err = s.Upload(ctx, "../../escape.txt", strings.NewReader("x"), "text/plain")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.True(t, os.IsNotExist(err))

	_, err = s.Upload(ctx, "", strings.NewReader("x"), "text/plain")
	assert.Error(t, err)

	_, err = NewLocalImageStorage("", "/uploads")
	assert.Error(t, err)
}
