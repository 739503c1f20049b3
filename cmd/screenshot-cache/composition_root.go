package main

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"go-screenshot-cache/internal/browser"
	"go-screenshot-cache/internal/cache"
	"go-screenshot-cache/internal/cache/l1"
	"go-screenshot-cache/internal/cache/l2"
	"go-screenshot-cache/internal/cache/multi"
	"go-screenshot-cache/internal/cache/noop"
	"go-screenshot-cache/internal/cache/service"
	"go-screenshot-cache/internal/capture"
	"go-screenshot-cache/internal/config"
	"go-screenshot-cache/internal/httpserver"
	"go-screenshot-cache/internal/interfaces"
	"go-screenshot-cache/internal/models"
	"go-screenshot-cache/internal/storage"
)

// CompositionRoot holds all application dependencies and is the single
// place where they are created, wired and released.
type CompositionRoot struct {
	// Configuration
	Config *config.Config
	Logger *zap.Logger

	// Existence index tiers
	L1Index interfaces.ExistenceIndex
	L2Index interfaces.ExistenceIndex
	Index   *multi.MultiIndex

	// Storage and capture
	Store       *storage.S3Store
	ObjectCache *cache.ObjectCacheImpl
	Launcher    *browser.PlaywrightLauncher
	Engine      *capture.Engine

	// Services
	CaptureService *service.CaptureService
	HTTPServer     *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration
// 3. Existence index (L1, L2)
// 4. Object storage
// 5. Browser and capture engine
// 6. Capture service
// 7. HTTP server
func NewCompositionRoot(ctx context.Context, configPath string) (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"load configuration", func() error { return root.loadConfig(configPath) }},
		{"initialize existence index", root.initIndex},
		{"initialize object storage", func() error { return root.initStorage(ctx) }},
		{"initialize capture engine", root.initCapture},
		{"initialize services", root.initServices},
		{"initialize HTTP server", root.initHTTPServer},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			err = multierr.Append(fmt.Errorf("failed to %s: %w", step.name, err), root.Cleanup())
			return nil, err
		}
	}

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig(configPath string) error {
	cfg, err := config.LoadConfig(configPath, r.Logger)
	if err != nil {
		return err
	}
	r.Config = cfg
	return nil
}

// initIndex builds the tiered existence index. Disabled tiers become no-ops.
func (r *CompositionRoot) initIndex() error {
	if r.Config.L1.Enabled {
		l1Index, err := l1.NewBigCacheIndex(&r.Config.L1, r.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize L1 index: %w", err)
		}
		r.L1Index = l1Index
		r.Logger.Info("BigCache (L1) index initialized", zap.Int("size_mb", r.Config.L1.Size))
	} else {
		r.L1Index = noop.NewNoOpIndex()
		r.Logger.Info("BigCache (L1) index disabled")
	}

	if r.Config.L2.Enabled {
		redisURL := GetRedisURL(r.Logger)

		client, err := l2.NewRedisKeyDbClient(r.Config, redisURL, r.Logger)
		if err != nil {
			// The shared index is an optimisation, storage stays authoritative
			r.Logger.Warn("Failed to connect to KeyDB, continuing without L2 index",
				zap.String("keydb_url", redisURL),
				zap.Error(err))
			r.L2Index = noop.NewNoOpIndex()
		} else {
			r.L2Index = l2.NewKeyDBIndex(r.Config, client, r.Logger)
			r.Logger.Info("KeyDB (L2) index initialized", zap.String("keydb_url", redisURL))
		}
	} else {
		r.L2Index = noop.NewNoOpIndex()
		r.Logger.Info("KeyDB (L2) index disabled")
	}

	tiers := []multi.Tier{
		{Level: models.IndexLevelL1, Index: r.L1Index, TTL: r.Config.GetL1TTL()},
		{Level: models.IndexLevelL2, Index: r.L2Index, TTL: r.Config.GetL2TTL()},
	}
	r.Index = multi.NewMultiIndex(tiers, true, r.Logger)
	return nil
}

// initStorage initializes the S3 object store and the object cache on top of it
func (r *CompositionRoot) initStorage(ctx context.Context) error {
	store, err := storage.NewS3StoreFromConfig(ctx, &r.Config.Storage, r.Logger)
	if err != nil {
		return err
	}
	r.Store = store
	r.ObjectCache = cache.NewObjectCache(store, r.Index, &r.Config.Storage, r.Config.GetL1TTL(), r.Logger)
	return nil
}

// initCapture starts the browser driver and the capture engine
func (r *CompositionRoot) initCapture() error {
	launcher, err := browser.NewPlaywrightLauncher(&r.Config.Browser, r.Logger)
	if err != nil {
		return err
	}
	r.Launcher = launcher
	r.Engine = capture.NewEngine(launcher, r.Logger)
	return nil
}

// initServices initializes application services
func (r *CompositionRoot) initServices() error {
	r.CaptureService = service.NewCaptureService(
		cache.NewKeyDeriver(r.Config.Capture.Format),
		r.Engine,
		r.ObjectCache,
		serviceOptions(r.Config),
		r.Logger,
	)
	return nil
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() error {
	read, write, _ := r.Config.GetServerTimeouts()
	r.HTTPServer = httpserver.NewServer(
		r.CaptureService,
		httpserver.Timeouts{Read: read, Write: write},
		r.Logger,
	)
	return nil
}

func serviceOptions(cfg *config.Config) service.Options {
	return service.Options{
		Capture:        cfg.CaptureOptions(),
		ReferenceTTL:   cfg.GetSignedURLTTL(),
		InlineOnFailed: cfg.Storage.StoreFailurePolicy == config.StoreFailureInline,
		CollapseMisses: cfg.Orchestrator.CollapseMisses,
	}
}

// Cleanup releases every initialized resource and reports all failures
func (r *CompositionRoot) Cleanup() error {
	var err error

	if r.Launcher != nil {
		err = multierr.Append(err, wrap("stop browser driver", r.Launcher.Close()))
	}

	if bc, ok := r.L1Index.(*l1.BigCacheIndex); ok {
		err = multierr.Append(err, wrap("close L1 index", bc.Close()))
	}

	if kc, ok := r.L2Index.(*l2.KeyDBIndex); ok {
		err = multierr.Append(err, wrap("close L2 index", kc.Close()))
	}

	// Sync logger last so the messages above are flushed
	if r.Logger != nil {
		_ = r.Logger.Sync()
	}

	return err
}

func wrap(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
