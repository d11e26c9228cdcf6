// Package storage keeps uploaded post images in object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"portfolio/config"
)

// ErrForeignURL is returned when asked to delete an image the store did not
// upload (for example an external image URL typed into the form).
var ErrForeignURL = errors.New("image is not managed by this store")

// ImageStore uploads images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, publicURL string) error
}

// New builds the image store selected by the configuration.
func New(cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalStore(cfg.Local.Dir, cfg.Local.URLPrefix)
	case "s3":
		return NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// ObjectName builds a collision resistant object name from the uploaded
// file name: <unix millis>-<random>[-<slug>].<ext>
func ObjectName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if len(base) > 40 {
		base = strings.Trim(base[:40], "-")
	}

	name := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
	if base != "" {
		name += "-" + base
	}
	return name + ext
}
