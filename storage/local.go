package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes images to a directory served by the site itself.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

func (s *LocalStore) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	name = path.Base("/" + name)
	if name == "/" || name == "." {
		return "", fmt.Errorf("invalid object name")
	}

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}

	return s.urlPrefix + "/" + name, nil
}

func (s *LocalStore) Delete(ctx context.Context, publicURL string) error {
	if !strings.HasPrefix(publicURL, s.urlPrefix+"/") {
		return ErrForeignURL
	}
	name := path.Base(strings.TrimPrefix(publicURL, s.urlPrefix+"/"))
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

// URLPrefix is the path the files are served under.
func (s *LocalStore) URLPrefix() string {
	return s.urlPrefix
}

// Handler serves the stored files; mount it under URLPrefix.
func (s *LocalStore) Handler() http.Handler {
	return http.StripPrefix(s.urlPrefix, http.FileServer(http.Dir(s.dir)))
}
