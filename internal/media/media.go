// Package media stores uploaded product and banner images.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Driver identifies a media backend.
type Driver string

// Media drivers.
const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
)

// MaxImageSize is the largest accepted upload in bytes.
const MaxImageSize = 5 << 20

// Media errors.
var (
	ErrNotFound        = errors.New("media object not found")
	ErrInvalidKey      = errors.New("invalid media key")
	ErrTooLarge        = errors.New("image exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// Info describes a stored object.
type Info struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size_bytes"`
}

// Store writes and removes media objects.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (Info, error)
	Delete(ctx context.Context, key string) error
	Driver() Driver
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload validates r as an image and stores it under a fresh key in the
// images/ prefix. The content type is sniffed from the data.
func Upload(ctx context.Context, s Store, r io.Reader) (Info, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return Info{}, fmt.Errorf("reading upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return Info{}, ErrTooLarge
	}
	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	key := path.Join("images", uuid.Must(uuid.NewV7()).String()+ext)
	return s.Put(ctx, key, data, contentType)
}

// cleanKey rejects empty, absolute, and escaping keys.
func cleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return path.Clean(key), nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
