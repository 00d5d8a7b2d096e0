// Command server runs the parking assistant HTTP service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkassist/internal/clients/geocode"
	"parkassist/internal/clients/places"
	"parkassist/internal/common/config"
	"parkassist/internal/common/database"
	"parkassist/internal/common/logger"
	"parkassist/internal/common/observability"
	"parkassist/internal/common/random"
	"parkassist/internal/orchestrator"
	classifyintent "parkassist/internal/pipeline/classify-intent"
	extractslots "parkassist/internal/pipeline/extract-slots"
	formatinfo "parkassist/internal/pipeline/format-info"
	generatefallback "parkassist/internal/pipeline/generate-fallback"
	scorelistings "parkassist/internal/pipeline/score-listings"
	"parkassist/internal/server"
	"parkassist/internal/session"
	"parkassist/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting parking assistant", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	if cfg.Provider.APIKey == config.PlaceholderAPIKey {
		log.Warn("no provider API key configured, all searches will use synthetic data", nil)
	}

	obs := observability.New(cfg.App.Name, os.Getenv("JAEGER_ENDPOINT"))
	defer obs.Shutdown()

	store, pinger, cleanup := buildSessionStore(cfg, log)
	defer cleanup()

	reg := loadRegistry(cfg, log)
	rng := random.New()

	formatter, err := formatinfo.NewHandler(reg, rng, log)
	if err != nil {
		log.Error("invalid detail schema in registry", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	orch := orchestrator.New(orchestrator.Deps{
		Classifier: classifyintent.NewHandler(log),
		Extractor:  extractslots.NewHandler(log),
		Scorer:     scorelistings.NewHandler(scorelistings.DefaultScoringConfig(), rng, log),
		Fallback:   generatefallback.NewHandler(reg, rng, log),
		Formatter:  formatter,
		Geocoder:   geocode.NewClient(cfg.Provider, log),
		Searcher:   places.NewClient(cfg.Provider, cfg.Assistant.Categories, log),
		Store:      store,
		Obs:        obs,
		Rng:        rng,
		MaxResults: cfg.Assistant.MaxResults,
		Debug:      cfg.Server.Debug,
		Logger:     log,
	})

	srv := server.New(cfg, orch, pinger, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	case sig := <-quit:
		log.Info("shutting down", map[string]interface{}{"signal": sig.String()})

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown error", map[string]interface{}{"error": err.Error()})
		}
	}

	log.Info("stopped", nil)
}

// buildSessionStore connects to Redis when an address is configured, with a
// short retry loop to ride out container start ordering. Without an address,
// or when Redis stays unreachable, the in-memory store takes over.
func buildSessionStore(cfg *config.Config, log logger.Logger) (session.Store, server.Pinger, func()) {
	ttl := cfg.Session.GetTTL()

	if cfg.Session.Redis.Address == "" {
		log.Info("no redis configured, using in-memory session store", nil)
		mem := session.NewMemoryStore(ttl)
		return mem, nil, mem.Close
	}

	rc, err := database.NewRedis(cfg.Session.Redis)
	if err == nil {
		err = pingWithBackoff(rc, 3, log)
	}
	if err != nil {
		log.Warn("redis unreachable, falling back to in-memory session store", map[string]interface{}{
			"address": cfg.Session.Redis.Address,
			"error":   err.Error(),
		})
		if rc != nil {
			rc.Close()
		}
		mem := session.NewMemoryStore(ttl)
		return mem, nil, mem.Close
	}

	log.Info("session store backed by redis", map[string]interface{}{
		"address": cfg.Session.Redis.Address,
	})
	return session.NewRedisStore(rc.GetClient(), ttl), rc, func() { rc.Close() }
}

func pingWithBackoff(rc *database.RedisClient, attempts int, log logger.Logger) error {
	var err error
	for i := 0; i < attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err = rc.Ping(ctx)
		cancel()
		if err == nil {
			return nil
		}
		wait := time.Duration(1<<i) * time.Second
		log.Warn("redis ping failed, retrying", map[string]interface{}{
			"attempt": i + 1,
			"wait":    wait.String(),
		})
		time.Sleep(wait)
	}
	return err
}

func loadRegistry(cfg *config.Config, log logger.Logger) *registry.TemplateRegistry {
	if cfg.Assistant.RegistryPath == "" {
		return registry.Default()
	}
	reg, err := registry.LoadRegistry(cfg.Assistant.RegistryPath)
	if err != nil {
		log.Warn("failed to load registry file, using built-in templates", map[string]interface{}{
			"path":  cfg.Assistant.RegistryPath,
			"error": err.Error(),
		})
		return registry.Default()
	}
	log.Info("loaded template registry", map[string]interface{}{
		"path":    cfg.Assistant.RegistryPath,
		"version": reg.Version,
	})
	return reg
}
