package media

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUpload_Filesystem(t *testing.T) {
	root := t.TempDir()
	store, err := NewFilesystem(root, "/media/")
	require.NoError(t, err)

	info, err := Upload(context.Background(), store, bytes.NewReader(pngHeader))
	require.NoError(t, err)

	assert.Equal(t, "image/png", info.ContentType)
	assert.True(t, strings.HasPrefix(info.Key, "images/"))
	assert.True(t, strings.HasSuffix(info.Key, ".png"))
	assert.Equal(t, "/media/"+info.Key, info.URL)
	assert.Equal(t, int64(len(pngHeader)), info.Size)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(info.Key)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, store.Delete(context.Background(), info.Key))
	assert.ErrorIs(t, store.Delete(context.Background(), info.Key), ErrNotFound)
}

func TestUpload_Rejects(t *testing.T) {
	store, err := NewFilesystem(t.TempDir(), "")
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"plain text", []byte("merhaba dünya"), ErrUnsupportedType},
		{"too large", append(append([]byte{}, pngHeader...), make([]byte, MaxImageSize)...), ErrTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Upload(context.Background(), store, bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads write nothing")
}

func TestFilesystem_InvalidKeys(t *testing.T) {
	store, err := NewFilesystem(t.TempDir(), "")
	require.NoError(t, err)

	for _, key := range []string{"", "  ", "/etc/passwd", "../escape.png", "images/../../x"} {
		_, err := store.Put(context.Background(), key, pngHeader, "image/png")
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "media")

	s, err := Open(context.Background(), Config{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, s.Driver())
	_, err = os.Stat(dir)
	assert.NoError(t, err)

	_, err = Open(context.Background(), Config{Driver: "ftp"})
	assert.Error(t, err)

	_, err = Open(context.Background(), Config{Driver: "s3"})
	assert.Error(t, err, "bucket is required")
}
