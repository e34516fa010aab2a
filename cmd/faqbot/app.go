package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/config"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/embedder"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/faq"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/observability"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/searcher"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

// app is the wired engine and its dependencies
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	engine *faq.Engine
	emb    embedder.Embedder
}

// newApp loads configuration, builds the engine and loads the knowledge document.
// quiet raises the default log level for one-shot terminal commands.
func newApp(ctx context.Context, opts *rootOptions, quiet bool) (*app, error) {
	// a missing .env is normal
	_ = godotenv.Load()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.knowledgePath != "" {
		cfg.Knowledge.Path = opts.knowledgePath
	}

	level := cfg.Log.Level
	switch {
	case opts.logLevel != "":
		level = opts.logLevel
	case opts.verbose:
		level = "debug"
	case quiet:
		level = "warn"
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       level,
		Format:      cfg.Log.Format,
		Output:      os.Stderr,
		ServiceName: "faqbot",
	})

	emb, embErr := newEmbedder(cfg)
	if embErr != nil && !errors.Is(embErr, embedder.ErrNoProviderEnabled) {
		logger.Warn().Err(embErr).Msg("embedding provider unavailable, dense backend disabled")
	}

	caps := searcher.Probe(ctx, emb)
	if embErr != nil && !errors.Is(embErr, embedder.ErrNoProviderEnabled) {
		caps.Reasons[types.BackendDense] = embErr.Error()
	}

	disabled, err := cfg.DisabledBackends()
	if err != nil {
		return nil, err
	}
	caps = caps.Without(disabled...)

	indexOpts := cfg.IndexOptions()
	indexOpts.Logger = logger

	engine := faq.NewEngine(faq.Options{
		Logger:       logger,
		Capabilities: caps,
		Index:        indexOpts,
		Debounce:     cfg.Knowledge.Debounce,
	})

	a := &app{cfg: cfg, logger: logger, engine: engine, emb: emb}
	if err := engine.Load(ctx, cfg.Knowledge.Path); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load knowledge: %w", err)
	}
	return a, nil
}

// newEmbedder returns nil and ErrNoProviderEnabled when no provider is configured
func newEmbedder(cfg *config.Config) (embedder.Embedder, error) {
	ecfg := cfg.EmbedderConfig()
	if embedder.Detect(ecfg) == "" {
		return nil, embedder.ErrNoProviderEnabled
	}
	return embedder.New(ecfg)
}

// watch starts hot reload when enabled
func (a *app) watch(ctx context.Context) {
	if !a.cfg.Knowledge.Watch {
		return
	}
	go func() {
		if err := a.engine.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error().Err(err).Msg("knowledge watcher stopped")
		}
	}()
}

func (a *app) Close() error {
	err := a.engine.Close()
	if a.emb != nil {
		err = errors.Join(err, a.emb.Close())
	}
	return err
}
