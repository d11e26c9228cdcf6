// Package site is the HTTP surface: public pages, the admin dashboard and the
// JSON API used by the chat widget.
package site

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"portfolio/ai"
	"portfolio/config"
	"portfolio/content"
	"portfolio/database"
	"portfolio/deadletter"
)

// Chatter answers chat widget messages.
type Chatter interface {
	Chat(ctx context.Context, message string, history []ai.Message) string
}

// DeadLetters lists writes that never reached the store.
type DeadLetters interface {
	List(limit int) ([]deadletter.Entry, error)
	Count() (int, error)
}

type Options struct {
	Config *config.Config
	Engine *content.Engine
	// Orchestrator is nil when automatic translation is off.
	Orchestrator *content.Orchestrator
	Manager      *content.Manager
	Resolver     *content.Resolver
	Admins       *database.AdminStore
	Chat         Chatter
	DeadLetters  DeadLetters
	Activity     *content.Activity
	// Uploads serves locally stored images; nil for object storage.
	Uploads       http.Handler
	UploadsPrefix string
	Logger        *slog.Logger
}

type Site struct {
	engine        *content.Engine
	orchestrator  *content.Orchestrator
	manager       *content.Manager
	resolver      *content.Resolver
	admins        *database.AdminStore
	chat          Chatter
	deadLetters   DeadLetters
	activity      *content.Activity
	uploads       http.Handler
	uploadsPrefix string
	maxAge        time.Duration
	secureCookies bool
	logger        *slog.Logger
}

func New(opts Options) *Site {
	activity := opts.Activity
	if activity == nil {
		activity = content.NewActivity()
	}

	return &Site{
		engine:        opts.Engine,
		orchestrator:  opts.Orchestrator,
		manager:       opts.Manager,
		resolver:      opts.Resolver,
		admins:        opts.Admins,
		chat:          opts.Chat,
		deadLetters:   opts.DeadLetters,
		activity:      activity,
		uploads:       opts.Uploads,
		uploadsPrefix: opts.UploadsPrefix,
		maxAge:        opts.Config.Sync.MaxAge,
		secureCookies: !opts.Config.Server.Debug,
		logger:        opts.Logger.With("component", "site"),
	}
}

// Routes mounts every page and API endpoint.
func (s *Site) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.TryPutUserInContextMiddleware)
	r.Use(s.AdminActivityMiddleware)

	r.Get("/", s.Home)
	r.Get("/blog", s.Archive)
	r.Get("/post/{postID}", s.PublicViewPost)
	r.Get("/lang/{code}", s.SwitchLanguage)

	// tighter limit for password guessing
	r.With(httprate.LimitByIP(10, time.Minute)).HandleFunc("/signin", s.UserSignIn)
	r.Post("/logout", s.UserLogout)

	r.With(AuthProtectedMiddleware).Route("/dashboard", func(r chi.Router) {
		r.Get("/", s.UserPostList)

		r.HandleFunc("/post/new", s.CreatePost)
		r.HandleFunc("/post/{postID}", s.EditPost)
		r.HandleFunc("/post/{postID}/delete", s.DeletePost)
	})

	if s.uploads != nil {
		r.Handle(s.uploadsPrefix+"/*", s.uploads)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Get("/posts", s.APIListPosts)
			r.Get("/posts/{postID}", s.APIGetPost)
			r.With(httprate.LimitByIP(20, time.Minute)).Post("/chat", s.APIChat)
		})
	})

	return r
}
