package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/config"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	name := ObjectName("My Holiday Photo.JPG", now)
	assert.True(t, strings.HasPrefix(name, "1700000000123-"), name)
	assert.True(t, strings.HasSuffix(name, "-my-holiday-photo.jpg"), name)

	other := ObjectName("My Holiday Photo.JPG", now)
	assert.NotEqual(t, name, other, "same file and instant must still produce distinct names")

	bare := ObjectName(".png", now)
	assert.True(t, strings.HasSuffix(bare, ".png"), bare)
}

func TestLocalStore_UploadServeDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewLocalStore(dir, "uploads/")
	require.NoError(t, err)
	assert.Equal(t, "/uploads", store.URLPrefix())

	publicURL, err := store.Upload(ctx, "1-abc.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1-abc.png", publicURL)

	rec := httptest.NewRecorder()
	store.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, publicURL, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())

	// names never collide silently
	_, err = store.Upload(ctx, "1-abc.png", strings.NewReader("again"), "image/png")
	assert.Error(t, err)

	require.NoError(t, store.Delete(ctx, publicURL))
	_, err = os.Stat(filepath.Join(dir, "1-abc.png"))
	assert.True(t, os.IsNotExist(err))

	assert.ErrorIs(t, store.Delete(ctx, "https://images.unsplash.com/photo.jpg"), ErrForeignURL)
}

func TestLocalStore_UploadStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	publicURL, err := store.Upload(context.Background(), "../../etc/passwd", strings.NewReader("x"), "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/passwd", publicURL)
	_, err = os.Stat(filepath.Join(dir, "passwd"))
	assert.NoError(t, err)
}

func TestS3Store_UploadAndDelete(t *testing.T) {
	var (
		mu      sync.Mutex
		objects = map[string]string{}
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			objects[r.URL.Path] = string(body)
			w.Header().Set("ETag", `"etag"`)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			delete(objects, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer server.Close()

	store, err := NewS3Store(config.S3Bucket{
		Bucket:         "blog-images",
		Region:         "us-east-1",
		Endpoint:       server.URL,
		AccessKey:      "key",
		SecretKey:      "secret",
		PublicBaseURL:  "https://cdn.example.com/blog-images/",
		ForcePathStyle: true,
	})
	require.NoError(t, err)

	ctx := context.Background()
	publicURL, err := store.Upload(ctx, "1-abc.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/blog-images/1-abc.png", publicURL)

	mu.Lock()
	assert.Equal(t, "png-bytes", objects["/blog-images/1-abc.png"])
	mu.Unlock()

	require.NoError(t, store.Delete(ctx, publicURL))
	mu.Lock()
	assert.Empty(t, objects)
	mu.Unlock()

	assert.ErrorIs(t, store.Delete(ctx, "https://elsewhere.example.com/x.png"), ErrForeignURL)
}

func TestNew(t *testing.T) {
	store, err := New(config.StorageConfig{Driver: "local", Local: config.LocalFS{Dir: t.TempDir(), URLPrefix: "/uploads"}})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
