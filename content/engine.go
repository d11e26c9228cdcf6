package content

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"portfolio/constants"
	"portfolio/database"
)

// Snapshot is a point-in-time copy of the cache.
type Snapshot struct {
	Posts []database.Post
	// Loading is true only while the very first load of an empty cache runs.
	Loading bool
	// UsingDemo is true when Posts holds the bundled sample posts.
	UsingDemo bool
	// Empty is true when the store answered with zero posts, as opposed to
	// being unreachable.
	Empty    bool
	LoadedAt time.Time
}

// Engine owns the cached post list. The list is only ever replaced as a
// whole or patched entry by entry; readers get copies.
type Engine struct {
	store  Store
	index  *Index
	logger *slog.Logger
	now    func() time.Time
	loads  singleflight.Group

	// indexMu orders index writes; it is always taken before mu.
	indexMu sync.Mutex

	mu          sync.RWMutex
	posts       []database.Post
	loaders     int
	usingDemo   bool
	empty       bool
	checkedAt   time.Time
	generation  uint64
	corrections map[int64]correction

	subsMu      sync.Mutex
	subscribers []func()
}

func NewEngine(store Store, logger *slog.Logger) (*Engine, error) {
	index, err := NewIndex()
	if err != nil {
		return nil, err
	}
	return &Engine{
		store:  store,
		index:  index,
		logger:      logger.With("component", "sync"),
		now:         time.Now,
		corrections: make(map[int64]correction),
	}, nil
}

// correction is a local rewrite of a post's source text that the store may
// not have accepted yet.
type correction struct {
	fromTitle string
	fromBody  string
	post      database.Post
}

// Load fetches every post from the store. It never fails: an unreachable or
// empty store leaves the cache holding demo posts.
func (e *Engine) Load(ctx context.Context) {
	e.fetch(ctx, false)
}

// Refresh is Load without touching the loading flag.
func (e *Engine) Refresh(ctx context.Context) {
	e.fetch(ctx, true)
}

// EnsureFresh loads the posts when the last check is older than maxAge.
// Concurrent callers share one load.
func (e *Engine) EnsureFresh(ctx context.Context, maxAge time.Duration) {
	e.mu.RLock()
	stale := e.checkedAt.IsZero() || e.now().Sub(e.checkedAt) > maxAge
	e.mu.RUnlock()
	if !stale {
		return
	}

	_, _, _ = e.loads.Do("load", func() (any, error) {
		e.Load(ctx)
		return nil, nil
	})
}

func (e *Engine) fetch(ctx context.Context, background bool) {
	e.mu.Lock()
	flagged := !background && len(e.posts) == 0
	if flagged {
		e.loaders++
	}
	e.mu.Unlock()

	if flagged {
		defer func() {
			e.mu.Lock()
			e.loaders--
			e.mu.Unlock()
		}()
	}

	posts, err := e.store.ListPosts(ctx)

	e.mu.Lock()
	e.checkedAt = e.now()
	replaced := false
	switch {
	case err != nil:
		e.logger.Warn("post store fetch failed", "error", err, "background", background)
		// keep the last good snapshot
		if len(e.posts) == 0 {
			e.posts = DemoPosts()
			e.usingDemo = true
			e.empty = false
			replaced = true
		}
	case len(posts) == 0:
		e.posts = DemoPosts()
		e.usingDemo = true
		e.empty = true
		clear(e.corrections)
		replaced = true
	default:
		e.posts = e.carryTranslations(e.applyCorrections(dedupe(posts)))
		e.usingDemo = false
		e.empty = false
		replaced = true
	}
	if replaced {
		e.generation++
	}
	gen := e.generation
	e.mu.Unlock()

	if !replaced {
		return
	}
	e.reindex(gen)
	e.notify()
}

// reindex rebuilds the search index from the cache. A call for a generation
// that has since been replaced is skipped; the newer replacement reindexes.
func (e *Engine) reindex(gen uint64) {
	e.indexMu.Lock()
	defer e.indexMu.Unlock()

	e.mu.RLock()
	if gen != e.generation {
		e.mu.RUnlock()
		return
	}
	posts := clonePosts(e.posts)
	e.mu.RUnlock()

	if err := e.index.Rebuild(posts); err != nil {
		e.logger.Error("search index rebuild failed", "error", err)
	}
}

// applyCorrections reapplies local corrections to rows that still hold the
// text they replaced. A correction whose row changed or vanished is dropped.
// Must hold e.mu.
func (e *Engine) applyCorrections(incoming []database.Post) []database.Post {
	if len(e.corrections) == 0 {
		return incoming
	}
	kept := make(map[int64]struct{}, len(e.corrections))
	for i, p := range incoming {
		c, ok := e.corrections[p.ID]
		if !ok || p.Title != c.fromTitle || p.Body != c.fromBody {
			continue
		}
		kept[p.ID] = struct{}{}
		incoming[i].Title = c.post.Title
		incoming[i].Body = c.post.Body
		if strings.TrimSpace(p.TitleAlt) == "" {
			incoming[i].TitleAlt = c.post.TitleAlt
		}
		if strings.TrimSpace(p.BodyAlt) == "" {
			incoming[i].BodyAlt = c.post.BodyAlt
		}
	}
	for id := range e.corrections {
		if _, ok := kept[id]; !ok {
			delete(e.corrections, id)
		}
	}
	return incoming
}

// carryTranslations keeps translations computed locally for posts whose
// source text did not change but whose stored alt fields are still empty
// (for example because the upstream write was refused). Must hold e.mu.
func (e *Engine) carryTranslations(incoming []database.Post) []database.Post {
	if e.usingDemo || len(e.posts) == 0 {
		return incoming
	}
	previous := make(map[int64]database.Post, len(e.posts))
	for _, p := range e.posts {
		previous[p.ID] = p
	}
	for i, p := range incoming {
		old, ok := previous[p.ID]
		if !ok || old.Title != p.Title || old.Body != p.Body {
			continue
		}
		if strings.TrimSpace(p.TitleAlt) == "" && strings.TrimSpace(p.BodyAlt) == "" {
			incoming[i].TitleAlt = old.TitleAlt
			incoming[i].BodyAlt = old.BodyAlt
		}
	}
	return incoming
}

// Snapshot returns a copy of the cache state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Snapshot{
		Posts:     clonePosts(e.posts),
		Loading:   e.loaders > 0,
		UsingDemo: e.usingDemo,
		Empty:     e.empty,
		LoadedAt:  e.checkedAt,
	}
}

// Posts returns a copy of the cached posts, newest first.
func (e *Engine) Posts() []database.Post {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return clonePosts(e.posts)
}

func (e *Engine) UsingDemo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.usingDemo
}

// Get returns the cached post with the given id.
func (e *Engine) Get(id int64) (database.Post, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, p := range e.posts {
		if p.ID == id {
			return p, true
		}
	}
	return database.Post{}, false
}

// Patch replaces the entry whose id matches with fn applied to a copy of it.
// It reports whether the post was cached.
func (e *Engine) Patch(id int64, fn func(p *database.Post)) bool {
	return e.patch(id, fn, false)
}

// Correct is Patch for rewrites of the source text. The rewrite is
// remembered and survives refreshes that still return the original text.
func (e *Engine) Correct(id int64, fn func(p *database.Post)) bool {
	return e.patch(id, fn, true)
}

func (e *Engine) patch(id int64, fn func(p *database.Post), remember bool) bool {
	e.indexMu.Lock()
	defer e.indexMu.Unlock()

	e.mu.Lock()
	idx := -1
	for i, p := range e.posts {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return false
	}

	next := clonePosts(e.posts)
	original := next[idx]
	updated := original
	fn(&updated)
	updated.ID = id
	next[idx] = updated
	e.posts = next
	if remember && !e.usingDemo && (updated.Title != original.Title || updated.Body != original.Body) {
		e.corrections[id] = correction{fromTitle: original.Title, fromBody: original.Body, post: updated}
	}
	e.mu.Unlock()

	if err := e.index.Put(updated); err != nil {
		e.logger.Warn("search index update failed", "post_id", id, "error", err)
	}
	return true
}

// Remove drops the post with the given id from the cache.
func (e *Engine) Remove(id int64) bool {
	e.indexMu.Lock()
	defer e.indexMu.Unlock()

	e.mu.Lock()
	delete(e.corrections, id)
	next := make([]database.Post, 0, len(e.posts))
	for _, p := range e.posts {
		if p.ID != id {
			next = append(next, p)
		}
	}
	removed := len(next) != len(e.posts)
	e.posts = next
	e.mu.Unlock()

	if removed {
		if err := e.index.Remove(id); err != nil {
			e.logger.Warn("search index delete failed", "post_id", id, "error", err)
		}
	}
	return removed
}

// Search returns cached posts matching q in cache order. An empty query
// returns every post.
func (e *Engine) Search(q string) []database.Post {
	posts := e.Posts()
	q = strings.TrimSpace(q)
	if q == "" {
		return posts
	}

	ids, err := e.index.Search(q, constants.MAX_POSTS_TO_SHOW)
	if err != nil {
		e.logger.Warn("search failed, falling back to substring match", "error", err)
		return substringMatch(posts, q)
	}

	hits := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		hits[id] = struct{}{}
	}
	out := make([]database.Post, 0, len(ids))
	for _, p := range posts {
		if _, ok := hits[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Subscribe registers fn to run after every wholesale cache replacement.
func (e *Engine) Subscribe(fn func()) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	e.subscribers = append(e.subscribers, fn)
}

func (e *Engine) notify() {
	e.subsMu.Lock()
	subs := append([]func(){}, e.subscribers...)
	e.subsMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (e *Engine) Close() error {
	return e.index.Close()
}

func clonePosts(posts []database.Post) []database.Post {
	out := make([]database.Post, len(posts))
	copy(out, posts)
	return out
}

// dedupe keeps the first occurrence of every id.
func dedupe(posts []database.Post) []database.Post {
	seen := make(map[int64]struct{}, len(posts))
	out := make([]database.Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func substringMatch(posts []database.Post, q string) []database.Post {
	q = strings.ToLower(q)
	var out []database.Post
	for _, p := range posts {
		haystack := strings.ToLower(strings.Join([]string{p.Title, p.TitleAlt, p.Body, p.BodyAlt, p.Category}, " "))
		if strings.Contains(haystack, q) {
			out = append(out, p)
		}
	}
	return out
}
