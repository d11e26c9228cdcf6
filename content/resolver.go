package content

import (
	"context"
	"log/slog"

	"portfolio/database"
)

// Resolution is the post shown on a single-post page.
type Resolution struct {
	Post database.Post
	// Demo marks a bundled sample post served because the store failed.
	Demo bool
}

// Resolver finds the post for a single-post page.
type Resolver struct {
	store  Store
	logger *slog.Logger
}

func NewResolver(store Store, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger.With("component", "resolver")}
}

// Resolve returns initial untouched when it is set. Otherwise it makes
// exactly one store lookup and falls back to the sample post with the same
// id when the lookup fails.
func (r *Resolver) Resolve(ctx context.Context, id int64, initial *database.Post) (Resolution, error) {
	if initial != nil {
		return Resolution{Post: *initial}, nil
	}

	post, err := r.store.GetPost(ctx, id)
	if err == nil {
		return Resolution{Post: *post}, nil
	}

	r.logger.Debug("post lookup failed", "post_id", id, "error", err)
	if demo, ok := DemoPost(id); ok {
		return Resolution{Post: demo, Demo: true}, nil
	}
	return Resolution{}, ErrPostNotFound
}
