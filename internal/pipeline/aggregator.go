// Package pipeline implements the aggregation core: fetch orchestration
// across sources, canonicalization, duplicate merging, enrichment and
// tier statistics.
package pipeline

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/contact-finder/internal/config"
	"github.com/sells-group/contact-finder/internal/fallback"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/source"
)

// minPerLocationLimit keeps multi-location searches from starving any
// single location when the overall limit is small.
const minPerLocationLimit = 5

// defaultLimit backstops a run whose request and config both leave the
// limit unset or zero.
const defaultLimit = 50

// Request describes one aggregation run.
type Request struct {
	Query     string
	Type      model.OrgType
	Locations []string
	Limit     int
	// Sources is the registry selection string ("all", "tanzania_only",
	// or a comma-separated key list).
	Sources string
}

// Result is the outcome of an aggregation run.
type Result struct {
	Organizations []model.Organization
	Stats         model.RunStats
	SourcesUsed   []string
}

// Aggregator orchestrates source fetches and folds the results into
// merged, classified organizations.
type Aggregator struct {
	registry *source.Registry
	canon    *Canonicalizer
	dataset  *fallback.Dataset
	websites *WebsiteFinder
	cfg      config.SearchConfig
	log      *zap.Logger
}

// NewAggregator wires the orchestrator. dataset and websites may be nil
// to disable the fallback append and website discovery respectively.
func NewAggregator(registry *source.Registry, canon *Canonicalizer, dataset *fallback.Dataset, websites *WebsiteFinder, cfg config.SearchConfig) *Aggregator {
	return &Aggregator{
		registry: registry,
		canon:    canon,
		dataset:  dataset,
		websites: websites,
		cfg:      cfg,
		log:      zap.L().With(zap.String("component", "aggregator")),
	}
}

// Run executes the full pipeline for a request. Source failures are
// isolated: a source that errors contributes nothing and the run
// continues. The returned organizations are merged, classified and
// capped at the request limit.
func (a *Aggregator) Run(ctx context.Context, req Request) (*Result, error) {
	req = a.normalize(req)

	raw, used, err := a.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	// The curated dataset backstops school searches regardless of how
	// the live sources fared.
	if a.cfg.UseFallback && req.Type == model.TypeSchool && a.dataset != nil {
		raw = append(raw, a.dataset.Records(req.Limit)...)
		used = append(used, fallback.SourceTag)
	}

	orgs := Merge(a.canon.CanonicalizeAll(raw, req.Type))
	if len(orgs) > req.Limit {
		orgs = orgs[:req.Limit]
	}

	if a.cfg.VerifyWebsites && a.websites != nil {
		a.websites.FillAll(ctx, orgs)
	}

	usedUnique := dedupeStrings(used)
	result := &Result{
		Organizations: orgs,
		Stats:         model.ComputeStats(orgs, usedUnique),
		SourcesUsed:   usedUnique,
	}

	a.log.Info("run complete",
		zap.String("query", req.Query),
		zap.Int("raw", len(raw)),
		zap.Int("organizations", len(orgs)))
	return result, nil
}

// collect fans out across locations and concatenates per-location
// results in request order, so output ordering is independent of
// goroutine scheduling.
func (a *Aggregator) collect(ctx context.Context, req Request) ([]model.RawRecord, []string, error) {
	perLocation := req.Limit / len(req.Locations)
	if perLocation < minPerLocationLimit {
		perLocation = minPerLocationLimit
	}

	buckets := make([][]model.RawRecord, len(req.Locations))
	usedSets := make([][]string, len(req.Locations))

	g, gctx := errgroup.WithContext(ctx)
	for i, loc := range req.Locations {
		g.Go(func() error {
			recs, used := a.collectLocation(gctx, req, loc, perLocation)
			buckets[i], usedSets[i] = recs, used
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var raw []model.RawRecord
	var used []string
	for i := range buckets {
		raw = append(raw, buckets[i]...)
		used = append(used, usedSets[i]...)
	}
	return raw, used, nil
}

// collectLocation visits the selected sources sequentially in registry
// order for one location.
func (a *Aggregator) collectLocation(ctx context.Context, req Request, location string, limit int) ([]model.RawRecord, []string) {
	var records []model.RawRecord
	var used []string

	for _, src := range a.registry.Select(req.Sources) {
		// Enough for this location; skip the remaining sources.
		if len(records) >= limit {
			break
		}
		if !src.SupportsType(req.Type) {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		recs, err := src.Fetch(ctx, source.Query{
			Text:     req.Query,
			Location: location,
			Limit:    limit,
		})
		if err != nil {
			a.log.Warn("source failed",
				zap.String("source", src.Name()),
				zap.String("location", location),
				zap.Error(err))
			continue
		}
		if len(recs) == 0 {
			continue
		}

		a.log.Debug("source returned records",
			zap.String("source", src.Name()),
			zap.String("location", location),
			zap.Int("count", len(recs)))
		records = append(records, recs...)
		used = append(used, src.Label())
	}
	return records, used
}

func (a *Aggregator) normalize(req Request) Request {
	if req.Limit <= 0 {
		req.Limit = a.cfg.Limit
	}
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	if len(req.Locations) == 0 {
		req.Locations = []string{a.cfg.DefaultLocation}
	}
	var locs []string
	for _, loc := range req.Locations {
		if loc = strings.TrimSpace(loc); loc != "" {
			locs = append(locs, loc)
		}
	}
	if len(locs) == 0 {
		locs = []string{a.cfg.DefaultLocation}
	}
	req.Locations = locs
	return req
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
