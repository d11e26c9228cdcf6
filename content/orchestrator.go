package content

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"portfolio/database"
	"portfolio/i18n"
)

const maxConcurrency = 4

// Writer persists translated fields upstream.
type Writer interface {
	Enqueue(id int64, fields map[string]any)
}

type flightKey struct {
	lang i18n.Language
	id   int64
}

// Orchestrator fills in missing translations of cached posts in the
// background. A post is never translated twice into the same language at the
// same time.
type Orchestrator struct {
	engine     *Engine
	translator Translator
	writes     Writer
	limit      int
	window     time.Duration
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.Mutex
	inFlight map[flightKey]struct{}
	active   map[i18n.Language]time.Time

	wg sync.WaitGroup
}

func NewOrchestrator(engine *Engine, translator Translator, writes Writer, concurrency int, window time.Duration, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		engine:     engine,
		translator: translator,
		writes:     writes,
		limit:      clampConcurrency(concurrency),
		window:     window,
		logger:     logger.With("component", "translate"),
		now:        time.Now,
		inFlight:   make(map[flightKey]struct{}),
		active:     make(map[i18n.Language]time.Time),
	}
}

func clampConcurrency(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxConcurrency {
		return maxConcurrency
	}
	return n
}

// Observe records that a page was rendered in lang and starts translating
// whatever the cache is missing for it.
func (o *Orchestrator) Observe(ctx context.Context, lang i18n.Language) {
	o.mu.Lock()
	o.active[lang] = o.now()
	o.mu.Unlock()

	o.Trigger(ctx, lang)
}

// OnCacheChanged triggers every language seen within the active window.
func (o *Orchestrator) OnCacheChanged() {
	o.mu.Lock()
	var langs []i18n.Language
	for lang, seen := range o.active {
		if o.now().Sub(seen) <= o.window {
			langs = append(langs, lang)
		}
	}
	o.mu.Unlock()

	for _, lang := range langs {
		o.Trigger(context.Background(), lang)
	}
}

// Trigger selects the cached posts that need translating into lang and
// translates them in the background. It returns the number of posts picked.
func (o *Orchestrator) Trigger(ctx context.Context, lang i18n.Language) int {
	posts := o.engine.Posts()
	if len(posts) == 0 {
		return 0
	}

	o.mu.Lock()
	var ids []int64
	for _, p := range posts {
		key := flightKey{lang: lang, id: p.ID}
		if _, busy := o.inFlight[key]; busy {
			continue
		}
		if !NeedsTranslation(p, lang) {
			continue
		}
		o.inFlight[key] = struct{}{}
		ids = append(ids, p.ID)
	}
	o.mu.Unlock()

	if len(ids) == 0 {
		return 0
	}

	o.logger.Info("translation batch started", "lang", lang, "posts", len(ids))
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.run(context.WithoutCancel(ctx), lang, ids)
	}()
	return len(ids)
}

// InFlight reports whether post id is being translated into lang.
func (o *Orchestrator) InFlight(lang i18n.Language, id int64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.inFlight[flightKey{lang: lang, id: id}]
	return ok
}

// Wait blocks until every running batch has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) run(ctx context.Context, lang i18n.Language, ids []int64) {
	var g errgroup.Group
	g.SetLimit(o.limit)

	for _, id := range ids {
		g.Go(func() error {
			defer o.release(lang, id)
			o.translate(ctx, lang, id)
			return nil
		})
	}
	_ = g.Wait()
	o.logger.Info("translation batch finished", "lang", lang, "posts", len(ids))
}

func (o *Orchestrator) release(lang i18n.Language, id int64) {
	o.mu.Lock()
	delete(o.inFlight, flightKey{lang: lang, id: id})
	o.mu.Unlock()
}

func (o *Orchestrator) translate(ctx context.Context, lang i18n.Language, id int64) {
	post, ok := o.engine.Get(id)
	if !ok || !NeedsTranslation(post, lang) {
		return
	}

	t, err := o.translator.Translate(ctx, post.Title, post.Body, lang)
	if err != nil {
		o.logger.Warn("translation failed", "lang", lang, "post_id", id, "error", err)
		return
	}

	// The post may have been edited or replaced while the request ran; such
	// a post is left alone and picked up by the next trigger.
	var fields map[string]any
	apply := func(p *database.Post) {
		if p.Title != post.Title || p.Body != post.Body {
			return
		}
		if lang == i18n.Secondary {
			p.TitleAlt = t.Title
			p.BodyAlt = t.Body
			fields = map[string]any{
				database.ColumnTitleAlt: t.Title,
				database.ColumnBodyAlt:  t.Body,
			}
			return
		}
		fields = correctPrimary(p, t.Title, t.Body)
	}

	var cached bool
	if lang == i18n.Secondary {
		cached = o.engine.Patch(id, apply)
	} else {
		cached = o.engine.Correct(id, apply)
	}

	if !cached || len(fields) == 0 {
		o.logger.Debug("post changed during translation", "lang", lang, "post_id", id)
		return
	}
	if o.engine.UsingDemo() {
		return
	}
	o.writes.Enqueue(id, fields)
	o.logger.Debug("post translated", "lang", lang, "post_id", id)
}

// correctPrimary replaces the source text of p with its primary-language
// rendition. The replaced text moves into empty alt fields so it is not
// lost. It returns the changed columns.
func correctPrimary(p *database.Post, title, body string) map[string]any {
	fields := map[string]any{
		database.ColumnTitle: title,
		database.ColumnBody:  body,
	}
	if strings.TrimSpace(p.TitleAlt) == "" {
		p.TitleAlt = p.Title
		fields[database.ColumnTitleAlt] = p.Title
	}
	if strings.TrimSpace(p.BodyAlt) == "" {
		p.BodyAlt = p.Body
		fields[database.ColumnBodyAlt] = p.Body
	}
	p.Title = title
	p.Body = body
	return fields
}
