package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"portfolio/constants"
	"portfolio/database"
	"portfolio/i18n"
	"portfolio/storage"
)

// Draft is the admin form for creating (ID == 0) or editing a post.
type Draft struct {
	ID       int64
	Title    string
	Body     string
	Category string
	ImageURL string
}

// Upload is an image attached to a draft.
type Upload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// Dashboard is the admin's view of the store.
type Dashboard struct {
	Posts []database.Post
	// Offline means the store could not be reached and Posts are the sample
	// posts, shown read-only.
	Offline bool
}

// Manager performs admin writes against the store.
type Manager struct {
	store  Store
	images storage.ImageStore
	engine *Engine
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	offline bool
}

func NewManager(store Store, images storage.ImageStore, engine *Engine, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		images: images,
		engine: engine,
		logger: logger.With("component", "manager"),
		now:    time.Now,
	}
}

// Dashboard lists the posts straight from the store for the admin.
func (m *Manager) Dashboard(ctx context.Context) Dashboard {
	posts, err := m.store.ListPosts(ctx)
	m.setOffline(err != nil)
	if err != nil {
		m.logger.Warn("dashboard fetch failed", "error", err)
		return Dashboard{Posts: DemoPosts(), Offline: true}
	}
	return Dashboard{Posts: posts}
}

func (m *Manager) Offline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.offline
}

func (m *Manager) setOffline(v bool) {
	m.mu.Lock()
	m.offline = v
	m.mu.Unlock()
}

// Get reads a post straight from the store for editing.
func (m *Manager) Get(ctx context.Context, id int64) (database.Post, error) {
	p, err := m.store.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return database.Post{}, ErrPostNotFound
		}
		return database.Post{}, err
	}
	return *p, nil
}

// Validate trims the draft and checks the required fields.
func (d *Draft) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Body = strings.TrimSpace(d.Body)
	d.Category = strings.TrimSpace(d.Category)
	d.ImageURL = strings.TrimSpace(d.ImageURL)

	if d.Title == "" {
		return ErrTitleRequired
	}
	if d.Body == "" {
		return ErrBodyRequired
	}
	if i18n.RuneLen(d.Body) > constants.MAX_POST_LENGTH {
		return ErrBodyTooLong
	}
	if d.Category == "" {
		d.Category = constants.DEFAULT_CATEGORY
	}
	return nil
}

// Save creates or updates a post and reloads the cache. An attached image is
// uploaded before anything is written; if the upload fails nothing is.
func (m *Manager) Save(ctx context.Context, draft Draft, upload *Upload) (int64, error) {
	if err := draft.Validate(); err != nil {
		return 0, err
	}
	if m.Offline() {
		return 0, ErrOffline
	}

	var previous *database.Post
	if draft.ID != 0 {
		p, err := m.store.GetPost(ctx, draft.ID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return 0, ErrPostNotFound
			}
			return 0, err
		}
		previous = p
	}

	uploaded := ""
	if upload != nil {
		name := storage.ObjectName(upload.Filename, m.now())
		url, err := m.images.Upload(ctx, name, upload.Reader, upload.ContentType)
		if err != nil {
			m.logger.Warn("image upload failed", "name", name, "error", err)
			return 0, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		uploaded = url
		draft.ImageURL = url
	}

	id, err := m.write(ctx, draft, previous)
	if err != nil {
		if uploaded != "" {
			m.deleteImage(ctx, uploaded)
		}
		return 0, err
	}

	if previous != nil && uploaded != "" && previous.ImageURL != "" && previous.ImageURL != uploaded {
		m.deleteImage(ctx, previous.ImageURL)
	}

	m.engine.Load(ctx)
	m.logger.Info("post saved", "post_id", id, "created", draft.ID == 0)
	return id, nil
}

func (m *Manager) write(ctx context.Context, draft Draft, previous *database.Post) (int64, error) {
	if previous == nil {
		post := &database.Post{
			Title:         draft.Title,
			Body:          draft.Body,
			Category:      draft.Category,
			ImageURL:      draft.ImageURL,
			PublishedDate: m.now().Format(constants.DATE_LAYOUT),
		}
		return m.store.InsertPost(ctx, post)
	}

	fields := map[string]any{
		database.ColumnTitle:    draft.Title,
		database.ColumnBody:     draft.Body,
		database.ColumnCategory: draft.Category,
		database.ColumnImageURL: draft.ImageURL,
	}
	// stale translations are dropped so they get redone
	if previous.Title != draft.Title || previous.Body != draft.Body {
		fields[database.ColumnTitleAlt] = ""
		fields[database.ColumnBodyAlt] = ""
	}
	if err := m.store.UpdatePost(ctx, previous.ID, fields); err != nil {
		return 0, err
	}
	return previous.ID, nil
}

// Delete removes a post from the store, then from the cache without a
// reload, then its image. A refused delete leaves the cache untouched.
func (m *Manager) Delete(ctx context.Context, id int64) error {
	if m.Offline() {
		return ErrOffline
	}

	imageURL := ""
	if p, ok := m.engine.Get(id); ok {
		imageURL = p.ImageURL
	} else if p, err := m.store.GetPost(ctx, id); err == nil {
		imageURL = p.ImageURL
	}

	if err := m.store.DeletePost(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	m.engine.Remove(id)
	if imageURL != "" {
		m.deleteImage(ctx, imageURL)
	}
	m.logger.Info("post deleted", "post_id", id)
	return nil
}

func (m *Manager) deleteImage(ctx context.Context, url string) {
	err := m.images.Delete(ctx, url)
	if err == nil || errors.Is(err, storage.ErrForeignURL) {
		return
	}
	m.logger.Warn("image cleanup failed", "url", url, "error", err)
}
