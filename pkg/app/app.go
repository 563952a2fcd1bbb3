// Package app wires the adapters and services behind the HTTP router.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/wadjakorntonsri/linkpulse/pkg/adapters/cache"
	"github.com/wadjakorntonsri/linkpulse/pkg/adapters/creatorapi"
	"github.com/wadjakorntonsri/linkpulse/pkg/adapters/handler"
	"github.com/wadjakorntonsri/linkpulse/pkg/adapters/oembed"
	"github.com/wadjakorntonsri/linkpulse/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/linkpulse/pkg/adapters/twitch"
	"github.com/wadjakorntonsri/linkpulse/pkg/config"
	"github.com/wadjakorntonsri/linkpulse/pkg/core/services"
	"github.com/wadjakorntonsri/linkpulse/pkg/ports"
)

// App is a fully wired LinkPulse server.
type App struct {
	Handler http.Handler
	Repo    *sqlite.SQLiteRepository

	closers []func() error
}

// New connects storage and builds the router for cfg.
func New(cfg *config.Config) (*App, error) {
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("app.New: connect database: %w", err)
	}
	a := &App{Repo: repo}
	a.closers = append(a.closers, repo.Close)

	profileCache := a.profileCache(cfg)
	loader := services.NewProfileService(creatorapi.New(cfg.BackendURL), profileCache, cfg.ProfileStaleTime)
	enricher := services.NewVideoEnricher(oembed.New(cfg.OEmbedURL), cfg.LookupTimeout)

	svc := handler.Services{
		Editor:   services.NewEditorService(repo),
		Loader:   loader,
		Enricher: enricher,
		Live:     services.BackendLiveStatus{},
	}

	if cfg.LiveStatusSource == config.LiveSourceTwitch {
		if cfg.TwitchClientID == "" || cfg.TwitchClientSecret == "" {
			log.Printf("LIVE_STATUS_SOURCE=twitch without Twitch credentials, using backend live status")
		} else {
			hub := services.NewLiveStatusHub(twitch.New(twitch.Config{
				ClientID:     cfg.TwitchClientID,
				ClientSecret: cfg.TwitchClientSecret,
			}), cfg.LivePollInterval)
			a.closers = append(a.closers, func() error { hub.Close(); return nil })
			svc.Live = hub
			svc.LiveUsers = hub
			log.Printf("Live status: polling Twitch every %s", cfg.LivePollInterval)
		}
	}

	a.Handler = handler.NewRouter(cfg, svc)
	return a, nil
}

// profileCache picks Redis when configured and reachable, otherwise the
// SQLite profile_cache table.
func (a *App) profileCache(cfg *config.Config) ports.ProfileCache {
	if cfg.RedisAddr == "" {
		return a.Repo
	}

	rc := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		UseTLS:   cfg.RedisTLS,
		TTL:      cfg.RedisTTL,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		log.Printf("Redis at %s unreachable (%v), caching profiles in SQLite", cfg.RedisAddr, err)
		_ = rc.Close()
		return a.Repo
	}

	log.Printf("Caching profiles in Redis at %s", cfg.RedisAddr)
	a.closers = append(a.closers, rc.Close)
	return rc
}

// Close releases everything New opened, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
