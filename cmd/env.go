package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/fallback"
	"github.com/sells-group/contact-finder/internal/fetch"
	"github.com/sells-group/contact-finder/internal/pipeline"
	"github.com/sells-group/contact-finder/internal/source"
	"github.com/sells-group/contact-finder/internal/store"
	"github.com/sells-group/contact-finder/internal/validate"
)

// env bundles the wired pipeline components shared by the commands.
type env struct {
	Registry   *source.Registry
	Aggregator *pipeline.Aggregator
	Enricher   *pipeline.Enricher
	Store      store.Store
}

// initEnv wires the full component graph from configuration and runs
// store migrations.
func initEnv(ctx context.Context) (*env, error) {
	client := fetch.NewClient(fetch.Options{
		DelayMin:   cfg.Fetch.DelayMin(),
		DelayMax:   cfg.Fetch.DelayMax(),
		MaxRetries: cfg.Fetch.MaxRetries,
		Timeout:    cfg.Fetch.Timeout(),
	})

	dataset, err := fallback.Load()
	if err != nil {
		return nil, err
	}

	registry := source.NewRegistry(client, cfg.Search)
	validator := validate.NewNameValidator(cfg.Validator)
	canon := pipeline.NewCanonicalizer(cfg.Search, validator)
	matcher := pipeline.NewMatcher(cfg.Match)
	websites := pipeline.NewWebsiteFinder(client)

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	return &env{
		Registry:   registry,
		Aggregator: pipeline.NewAggregator(registry, canon, dataset, websites, cfg.Search),
		Enricher:   pipeline.NewEnricher(registry, matcher, dataset),
		Store:      st,
	}, nil
}

func (e *env) Close() {
	if err := e.Store.Close(); err != nil {
		zap.L().Warn("store close failed", zap.Error(err))
	}
}
