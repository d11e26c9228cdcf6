package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"portfolio/ai"
	"portfolio/config"
	"portfolio/content"
	"portfolio/database"
	"portfolio/deadletter"
	"portfolio/logger"
	"portfolio/site"
	"portfolio/storage"
)

func main() {
	configPath := flag.String("config", os.Getenv("PORTFOLIO_CONFIG"), "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	if err := run(cfg, log); err != nil {
		log.Error("portfolio stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	posts := database.NewPostStore(db)
	admins := database.NewAdminStore(db)
	if cfg.Admin.Email != "" {
		if err := admins.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return err
		}
	}

	images, err := storage.New(cfg.Storage)
	if err != nil {
		return err
	}

	deadLetters, err := deadletter.Open(cfg.Translate.DeadLetterPath)
	if err != nil {
		return err
	}
	defer deadLetters.Close()

	engine, err := content.NewEngine(posts, log)
	if err != nil {
		return err
	}
	defer engine.Close()

	gemini, err := ai.New(ctx, cfg.AI, log)
	if err != nil {
		return err
	}

	var orchestrator *content.Orchestrator
	if cfg.AIEnabled() {
		queue := content.NewWriteQueue(posts, deadLetters, cfg.Translate.QueueSize, cfg.Translate.WriteWorkers, log)
		defer queue.Close()

		orchestrator = content.NewOrchestrator(engine, gemini, queue, cfg.Translate.Concurrency, cfg.Translate.ActiveWindow, log)
		defer orchestrator.Wait()
		engine.Subscribe(orchestrator.OnCacheChanged)
	} else {
		log.Info("no AI key configured, automatic translation is off")
	}

	activity := content.NewActivity()
	poller := content.NewPoller(engine, activity, cfg.Sync.RefreshInterval, cfg.Sync.AdminIdleTimeout, log)
	go poller.Run(ctx)

	engine.Load(ctx)

	opts := site.Options{
		Config:       cfg,
		Engine:       engine,
		Orchestrator: orchestrator,
		Manager:      content.NewManager(posts, images, engine, log),
		Resolver:     content.NewResolver(posts, log),
		Admins:       admins,
		Chat:         gemini,
		DeadLetters:  deadLetters,
		Activity:     activity,
		Logger:       log,
	}
	if local, ok := images.(*storage.LocalStore); ok {
		opts.Uploads = local.Handler()
		opts.UploadsPrefix = local.URLPrefix()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           initRouter(site.New(opts)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr, "url", cfg.Server.PublicURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	// Block until a signal is received
	select {
	case <-ctx.Done():
	case err := <-errs:
		return err
	}
	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func initRouter(s *site.Site) *chi.Mux {
	r := chi.NewRouter()

	CORSMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	r.Use(CORSMiddleware.Handler)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(httprate.LimitByIP(100, time.Minute)) // shared across all routes
	r.Use(middleware.Recoverer)

	r.Mount("/", s.Routes())
	return r
}
