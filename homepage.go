// Package homepage serves a personal site of notes built with Go, Echo, and
// templ. Site identity, page metadata and social links come from package
// consts; notes are Markdown files synced into SQLite.
//
// Callers provide templ components via ViewFuncs; homepage handles routing,
// middleware, content syncing, feeds and the sitemap.
package homepage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/josh-nowak/homepage/logging"
)

// ViewFuncs holds the templ components rendered for each page.
type ViewFuncs struct {
	Home        func(meta PageMeta, recent []Post, siteURL string) templ.Component
	Blog        func(meta PageMeta, posts []Post, activeTag string, tags []string) templ.Component
	Post        func(meta PageMeta, post Post, related []Post, siteURL string) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App wires together the store, cache, handlers, middleware, and templates.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs
	Logger zerolog.Logger

	customRoutes []func(*App)
}

// New creates an App with the given configuration and view functions.
func New(cfg Config, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	a := &App{
		Config: cfg,
		Echo:   e,
		Views:  views,
		Logger: logging.WithComponent("http"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the store, syncs notes from ContentDir, and registers
// middleware and routes. Start calls it; tests call it directly.
func (a *App) Init(ctx context.Context) error {
	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("homepage: init store: %w", err)
		}
		a.Store = store
	}
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)

	if err := a.syncContent(ctx); err != nil {
		return err
	}

	a.setupMiddleware()
	if a.Config.MetricsEnabled {
		a.setupMetrics()
	}
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) syncContent(ctx context.Context) error {
	if _, err := os.Stat(a.Config.ContentDir); errors.Is(err, os.ErrNotExist) {
		a.Logger.Warn().
			Str("event", "content.dir_missing").
			Str("dir", a.Config.ContentDir).
			Msg("content directory not found, serving notes already in the store")
		return nil
	}
	n, err := SyncNotes(ctx, a.Store, a.Config.ContentDir)
	if err != nil {
		return fmt.Errorf("homepage: sync notes: %w", err)
	}
	a.Cache.Invalidate()
	a.Logger.Info().Str("event", "content.synced").Int("notes", n).Msg("notes synced")
	return nil
}

// Start initializes the app and serves HTTP until ctx is cancelled, then
// shuts the server down gracefully. It returns only after the content
// watcher has stopped, so the caller may close the store.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(ctx); err != nil {
		return err
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	watchDone := make(chan struct{})
	if a.Config.WatchContent {
		cw, err := NewContentWatcher(a.Config.ContentDir, a.Store, logging.WithComponent("content"), func(int) {
			a.Cache.Invalidate()
		})
		if err != nil {
			stopWatch()
			return fmt.Errorf("homepage: %w", err)
		}
		go func() {
			defer close(watchDone)
			cw.Run(watchCtx)
		}()
	} else {
		close(watchDone)
	}
	// The store must outlive any in-flight re-sync.
	defer func() {
		stopWatch()
		<-watchDone
	}()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", a.Config.Addr).Str("url", a.Config.URL).Msg("listening")
		errCh <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.Logger.Info().Msg("shutting down")
		return a.Echo.Shutdown(shutdownCtx)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/healthz", handleHealth)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/og/:image", a.handleOGImage)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
}

// Close releases the store.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
