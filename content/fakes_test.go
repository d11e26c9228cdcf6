package content

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"portfolio/ai"
	"portfolio/database"
	"portfolio/deadletter"
	"portfolio/i18n"
)

var errUnreachable = errors.New("dial tcp: connection refused")

// fakeStore is an in-memory Store that counts calls.
type fakeStore struct {
	mu     sync.Mutex
	posts  map[int64]database.Post
	nextID int64

	listErr   error
	getErr    error
	writeErr  error
	deleteErr error

	calls   map[string]int
	updates []map[string]any
}

func newFakeStore(posts ...database.Post) *fakeStore {
	s := &fakeStore{posts: map[int64]database.Post{}, nextID: 1, calls: map[string]int{}}
	for _, p := range posts {
		s.posts[p.ID] = p
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

func (s *fakeStore) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *fakeStore) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *fakeStore) ListPosts(ctx context.Context) ([]database.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["list"]++
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]database.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *fakeStore) GetPost(ctx context.Context, id int64) (*database.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["get"]++
	if s.getErr != nil {
		return nil, s.getErr
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (s *fakeStore) InsertPost(ctx context.Context, post *database.Post) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["insert"]++
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	post.ID = s.nextID
	s.nextID++
	s.posts[post.ID] = *post
	return post.ID, nil
}

func (s *fakeStore) UpdatePost(ctx context.Context, id int64, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["update"]++
	s.updates = append(s.updates, fields)
	if s.writeErr != nil {
		return s.writeErr
	}
	p, ok := s.posts[id]
	if !ok {
		return database.ErrNotFound
	}
	for k, v := range fields {
		str, _ := v.(string)
		switch k {
		case database.ColumnTitle:
			p.Title = str
		case database.ColumnTitleAlt:
			p.TitleAlt = str
		case database.ColumnBody:
			p.Body = str
		case database.ColumnBodyAlt:
			p.BodyAlt = str
		case database.ColumnCategory:
			p.Category = str
		case database.ColumnImageURL:
			p.ImageURL = str
		}
	}
	s.posts[id] = p
	return nil
}

func (s *fakeStore) DeletePost(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["delete"]++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.posts[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, title, body string, target i18n.Language) (ai.Translation, error) {
	args := m.Called(ctx, title, body, target)
	return args.Get(0).(ai.Translation), args.Error(1)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, name, r, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, publicURL string) error {
	args := m.Called(ctx, publicURL)
	return args.Error(0)
}

// recordingWriter captures enqueued writes.
type recordingWriter struct {
	mu     sync.Mutex
	writes map[int64]map[string]any
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{writes: map[int64]map[string]any{}}
}

func (w *recordingWriter) Enqueue(id int64, fields map[string]any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes[id] = fields
}

func (w *recordingWriter) get(id int64) (map[string]any, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	f, ok := w.writes[id]
	return f, ok
}

type memorySink struct {
	mu      sync.Mutex
	entries []deadletter.Entry
}

func (s *memorySink) Record(e deadletter.Entry) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return uint64(len(s.entries)), nil
}

func (s *memorySink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
