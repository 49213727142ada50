package app

import (
	"context"
	"log"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"hrms-engine/internal/analytics"
	"hrms-engine/internal/api"
	"hrms-engine/internal/config"
	"hrms-engine/internal/events"
	"hrms-engine/internal/jobs"
	"hrms-engine/internal/linkedin"
	"hrms-engine/internal/session"
	"hrms-engine/internal/store"
	"hrms-engine/internal/token"
)

// App is the explicit context owning the state slices. Everything reaches
// its collaborators through this struct; there are no package globals, so
// tests can stand up as many isolated instances as they like.
type App struct {
	Cfg    config.Config
	Hub    *events.Hub
	Tokens *token.Store
	API    *api.Client

	Session   *session.State
	Jobs      *jobs.State
	LinkedIn  *linkedin.State
	Analytics *analytics.State

	Cache *store.DB
}

// New wires the slices together. cache may be nil (no local snapshot).
func New(cfg config.Config, cache *store.DB) *App {
	a := &App{
		Cfg:    cfg,
		Hub:    events.NewHub(),
		Tokens: token.NewStore(cfg.App.DataDir),
		Cache:  cache,
	}

	a.API = api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		Tokens:  a.Tokens,
		OnUnauthorized: func() {
			// Token is already gone from storage; drop the in-memory
			// session and tell the UI to navigate to login.
			if a.Session != nil {
				a.Session.Invalidate()
			}
			a.Hub.Publish(events.MakeEvent("", events.TypeSessionExpired, 1, nil))
		},
		RatePerSec: cfg.API.RatePerSec,
		RateBurst:  cfg.API.RateBurst,
	})

	a.Session = session.New(a.API, a.Tokens)
	a.LinkedIn = linkedin.New(a.API)
	var cacheIface jobs.Cache
	if cache != nil {
		cacheIface = cache
	}
	a.Jobs = jobs.New(a.API, a.LinkedIn, cacheIface)
	a.Analytics = analytics.New(a.API)
	return a
}

// Warmup runs the cold-start work: verify any stored token (once, never
// retried) and seed the job list from the local snapshot, concurrently.
func (a *App) Warmup(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if a.Session.HasStoredToken() {
			if err := a.Session.VerifyToken(ctx); err != nil {
				log.Printf("level=info msg=\"stored token rejected\" err=%v", err)
			}
		}
		return nil
	})

	g.Go(func() error {
		if a.Cache == nil {
			return nil
		}
		cached, err := a.Cache.LoadJobs(ctx)
		if err != nil {
			log.Printf("level=warn msg=\"job snapshot load failed\" err=%v", err)
			return nil
		}
		a.Jobs.Prime(cached)
		return nil
	})

	_ = g.Wait()
}

// HandleOAuthCallback consumes redirect parameters once and broadcasts the
// outcome. The caller scrubs the parameters from the visible address.
func (a *App) HandleOAuthCallback(ctx context.Context, q url.Values) linkedin.CallbackResult {
	res := a.LinkedIn.HandleCallback(ctx, q)
	switch res.Kind {
	case linkedin.CallbackConnected:
		a.Hub.Publish(events.MakeEvent("", events.TypeLinkedInConnected, 1, map[string]any{
			"message": res.Message,
		}))
	case linkedin.CallbackError:
		a.Hub.Publish(events.MakeEvent("", events.TypeOperationFailed, 1, map[string]any{
			"operation": "linkedin_connect",
			"message":   res.Message,
		}))
	}
	return res
}
