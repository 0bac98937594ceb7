package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/fallback"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/source"
)

// enrichFetchLimit bounds how many candidates a source is asked for
// when re-querying a single organization by name.
const enrichFetchLimit = 5

// Enricher backfills missing contact fields on already-merged
// organizations by re-querying sources with the organization's own name,
// then falling back to the curated dataset. Backfill never overwrites:
// a populated field is left alone.
type Enricher struct {
	registry *source.Registry
	matcher  *Matcher
	dataset  *fallback.Dataset
	log      *zap.Logger
}

// NewEnricher wires the enrichment pass. dataset may be nil.
func NewEnricher(registry *source.Registry, matcher *Matcher, dataset *fallback.Dataset) *Enricher {
	return &Enricher{
		registry: registry,
		matcher:  matcher,
		dataset:  dataset,
		log:      zap.L().With(zap.String("component", "enricher")),
	}
}

// EnrichAll runs enrichment over every organization that still needs
// research, in place. Returns the number of organizations that gained
// at least one field.
func (e *Enricher) EnrichAll(ctx context.Context, orgs []model.Organization, location string) int {
	improved := 0
	for i := range orgs {
		if !orgs[i].NeedsResearch() {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		if e.Enrich(ctx, &orgs[i], location) {
			improved++
		}
	}
	return improved
}

// Enrich backfills one organization. Reports whether any field changed.
func (e *Enricher) Enrich(ctx context.Context, org *model.Organization, location string) bool {
	before := *org

	for _, src := range e.registry.All() {
		if org.IsComplete() {
			break
		}
		if !src.SupportsType(org.Type) {
			continue
		}

		recs, err := src.Fetch(ctx, source.Query{
			Text:     org.Name,
			Location: location,
			Limit:    enrichFetchLimit,
		})
		if err != nil {
			e.log.Debug("enrichment source failed",
				zap.String("source", src.Name()), zap.Error(err))
			continue
		}

		if rec := e.bestCandidate(org.Name, recs); rec != nil {
			e.backfill(org, rec.Phone, rec.Email, rec.Address, rec.Website, src.Label())
		}
	}

	if !org.IsComplete() && e.dataset != nil {
		if entry := e.dataset.Lookup(org.Name); entry != nil {
			e.backfill(org, entry.Phone, entry.Email, entry.Address, "", fallback.SourceTag)
			if org.Notes == "" && entry.Notes != "" {
				org.Notes = entry.Notes
			}
		}
	}

	org.Recalculate()
	return org.Phone != before.Phone || org.Email != before.Email ||
		org.Address != before.Address || org.WebsiteURL != before.WebsiteURL
}

// bestCandidate picks the record whose name best matches the target, or
// nil when no record clears the similarity threshold.
func (e *Enricher) bestCandidate(name string, recs []model.RawRecord) *model.RawRecord {
	best, bestScore := -1, 0.0
	for i := range recs {
		if s := e.matcher.Score(name, recs[i].Name); e.matcher.Match(name, recs[i].Name) && s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return nil
	}
	return &recs[best]
}

func (e *Enricher) backfill(org *model.Organization, phone, email, address, website, sourceLabel string) {
	changed := false
	if org.Phone == "" && phone != "" {
		org.Phone, changed = phone, true
	}
	if org.Email == "" && email != "" {
		org.Email, changed = email, true
	}
	if org.Address == "" && address != "" {
		org.Address, changed = address, true
	}
	if org.WebsiteURL == "" && website != "" {
		org.WebsiteURL, changed = website, true
	}
	if changed {
		org.AddSource(sourceLabel)
	}
}
