package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"portfolio/constants"
	"portfolio/database"
	"portfolio/logger"
	"portfolio/storage"
)

func newTestManager(t *testing.T, store *fakeStore, images storage.ImageStore) (*Manager, *Engine) {
	t.Helper()
	e := newTestEngine(t, store)
	e.Load(context.Background())
	m := NewManager(store, images, e, logger.Discard())
	m.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }
	return m, e
}

func TestManager_SaveValidatesBeforeAnyCall(t *testing.T) {
	tests := []struct {
		name  string
		draft Draft
		want  error
	}{
		{"empty title", Draft{Title: "", Body: "body"}, ErrTitleRequired},
		{"whitespace title", Draft{Title: "   ", Body: "body"}, ErrTitleRequired},
		{"empty body", Draft{Title: "title", Body: "\n\t"}, ErrBodyRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			images := new(MockImageStore)
			e := newTestEngine(t, store)
			m := NewManager(store, images, e, logger.Discard())

			_, err := m.Save(context.Background(), tt.draft, &Upload{Filename: "a.png", Reader: strings.NewReader("png")})
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, store.total(), "no store calls")
			images.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestManager_Create(t *testing.T) {
	store := newFakeStore()
	images := new(MockImageStore)
	images.On("Upload", mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasSuffix(name, "-cover-photo.png")
	}), mock.Anything, "image/png").Return("/uploads/cover.png", nil).Once()

	m, e := newTestManager(t, store, images)
	listsBefore := store.count("list")

	id, err := m.Save(context.Background(), Draft{Title: "  Vibe coding  ", Body: "Polish matters"}, &Upload{
		Filename:    "Cover Photo.PNG",
		ContentType: "image/png",
		Reader:      strings.NewReader("png"),
	})
	require.NoError(t, err)

	saved := store.posts[id]
	assert.Equal(t, "Vibe coding", saved.Title)
	assert.Equal(t, constants.DEFAULT_CATEGORY, saved.Category)
	assert.Equal(t, "Mar 9, 2024", saved.PublishedDate)
	assert.Equal(t, "/uploads/cover.png", saved.ImageURL)

	assert.Equal(t, listsBefore+1, store.count("list"), "cache reloaded")
	_, ok := e.Get(id)
	assert.True(t, ok)
	images.AssertExpectations(t)
}

func TestManager_UploadFailureAbortsSave(t *testing.T) {
	store := newFakeStore()
	images := new(MockImageStore)
	images.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("bucket not found"))

	m, _ := newTestManager(t, store, images)
	_, err := m.Save(context.Background(), Draft{Title: "t", Body: "b"}, &Upload{Filename: "x.jpg", Reader: strings.NewReader("x")})

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Zero(t, store.count("insert"))
}

func TestManager_FailedWriteRemovesUploadedImage(t *testing.T) {
	store := newFakeStore()
	store.writeErr = fmt.Errorf("%w: new row violates row-level security policy", database.ErrPolicyDenied)
	images := new(MockImageStore)
	images.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("/uploads/new.jpg", nil)
	images.On("Delete", mock.Anything, "/uploads/new.jpg").Return(nil).Once()

	m, _ := newTestManager(t, store, images)
	_, err := m.Save(context.Background(), Draft{Title: "t", Body: "b"}, &Upload{Filename: "x.jpg", Reader: strings.NewReader("x")})

	assert.ErrorIs(t, err, database.ErrPolicyDenied)
	images.AssertExpectations(t)
}

func TestManager_Update(t *testing.T) {
	store := newFakeStore(database.Post{
		ID: 7, Title: "Old", Body: "Old body", TitleAlt: "পুরনো", BodyAlt: "পুরনো লেখা",
		Category: "Automation", ImageURL: "/uploads/old.jpg", PublishedDate: "Jan 1, 2024",
	})
	images := new(MockImageStore)
	images.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("/uploads/new.jpg", nil)
	images.On("Delete", mock.Anything, "/uploads/old.jpg").Return(nil).Once()

	m, e := newTestManager(t, store, images)
	id, err := m.Save(context.Background(), Draft{ID: 7, Title: "New", Body: "Old body", Category: "AI Chatbots"},
		&Upload{Filename: "n.jpg", Reader: strings.NewReader("x")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	p, ok := e.Get(7)
	require.True(t, ok)
	assert.Equal(t, "New", p.Title)
	assert.Equal(t, "AI Chatbots", p.Category)
	assert.Equal(t, "/uploads/new.jpg", p.ImageURL)
	assert.Equal(t, "Jan 1, 2024", p.PublishedDate, "date kept on edit")
	assert.Empty(t, p.TitleAlt, "translation of changed text is dropped")
	images.AssertExpectations(t)

	_, err = m.Save(context.Background(), Draft{ID: 99, Title: "x", Body: "y"}, nil)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestManager_DeleteIsOptimistic(t *testing.T) {
	store := newFakeStore(samplePosts()...)
	store.posts[1] = database.Post{ID: 1, Title: "With image", Body: "b", ImageURL: "https://images.example.com/x.jpg"}
	images := new(MockImageStore)
	images.On("Delete", mock.Anything, "https://images.example.com/x.jpg").Return(storage.ErrForeignURL).Once()

	m, e := newTestManager(t, store, images)
	listsBefore := store.count("list")

	require.NoError(t, m.Delete(context.Background(), 1))

	_, ok := e.Get(1)
	assert.False(t, ok)
	assert.Len(t, e.Posts(), 1)
	assert.Equal(t, listsBefore, store.count("list"), "no reload after delete")
	images.AssertExpectations(t)
}

func TestManager_DeleteDeniedByPolicy(t *testing.T) {
	store := newFakeStore(samplePosts()...)
	store.deleteErr = fmt.Errorf("%w: permission denied for table posts", database.ErrPolicyDenied)
	images := new(MockImageStore)

	m, e := newTestManager(t, store, images)
	before := e.Posts()

	err := m.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, database.ErrPolicyDenied)
	assert.True(t, database.IsPolicyViolation(err))
	assert.Equal(t, before, e.Posts(), "cache untouched")
	images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestManager_OfflineDashboardIsReadOnly(t *testing.T) {
	store := newFakeStore(samplePosts()...)
	images := new(MockImageStore)
	m, _ := newTestManager(t, store, images)

	store.mu.Lock()
	store.listErr = errUnreachable
	store.mu.Unlock()

	d := m.Dashboard(context.Background())
	assert.True(t, d.Offline)
	assert.Equal(t, DemoPosts(), d.Posts)

	_, err := m.Save(context.Background(), Draft{Title: "t", Body: "b"}, nil)
	assert.ErrorIs(t, err, ErrOffline)
	assert.ErrorIs(t, m.Delete(context.Background(), 101), ErrOffline)
	assert.Zero(t, store.count("insert")+store.count("delete"))

	store.mu.Lock()
	store.listErr = nil
	store.mu.Unlock()
	d = m.Dashboard(context.Background())
	assert.False(t, d.Offline)
	assert.Len(t, d.Posts, 2)
}
