package pipeline

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-finder/internal/config"
	"github.com/sells-group/contact-finder/internal/fallback"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/source"
	"github.com/sells-group/contact-finder/internal/validate"
)

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		DefaultLocation:  "Dar es Salaam",
		Limit:            50,
		MinContactFields: 1,
	}
}

func newTestAggregator(cfg config.SearchConfig, sources ...source.Source) *Aggregator {
	registry := source.NewRegistryWith(sources...)
	canon := NewCanonicalizer(cfg, validate.NewNameValidator(config.ValidatorConfig{}))
	return NewAggregator(registry, canon, nil, nil, cfg)
}

func TestRunMergesAcrossSources(t *testing.T) {
	t.Parallel()

	a := newTestAggregator(testSearchConfig(),
		&stubSource{name: "one", label: "Source One", records: []model.RawRecord{
			{Name: "Mwenge Primary School", Phone: "0754321987", Source: "Source One"},
		}},
		&stubSource{name: "two", label: "Source Two", records: []model.RawRecord{
			{Name: "mwenge primary school", Email: "info@mwenge.ac.tz", Source: "Source Two"},
		}},
	)

	result, err := a.Run(context.Background(), Request{Query: "schools", Type: model.TypeSchool})
	require.NoError(t, err)
	require.Len(t, result.Organizations, 1)

	org := result.Organizations[0]
	assert.Equal(t, "+255 75 432 1987", org.Phone)
	assert.Equal(t, "info@mwenge.ac.tz", org.Email)
	assert.Equal(t, "Source One; Source Two", org.Source)
	assert.Equal(t, []string{"Source One", "Source Two"}, result.SourcesUsed)
	assert.Equal(t, 1, result.Stats.Total)
}

func TestRunIsolatesSourceFailures(t *testing.T) {
	t.Parallel()

	a := newTestAggregator(testSearchConfig(),
		&stubSource{name: "broken", err: eris.New("connection refused")},
		&stubSource{name: "working", label: "Working", records: []model.RawRecord{
			{Name: "Tumaini Academy", Phone: "0754321987", Source: "Working"},
		}},
	)

	result, err := a.Run(context.Background(), Request{Query: "schools", Type: model.TypeSchool})
	require.NoError(t, err)
	require.Len(t, result.Organizations, 1)
	assert.Equal(t, []string{"Working"}, result.SourcesUsed)
}

func TestRunSkipsUnsupportedTypes(t *testing.T) {
	t.Parallel()

	schoolSource := &stubSource{name: "schools_only", schoolOnly: true, records: []model.RawRecord{
		{Name: "Tumaini Academy", Phone: "0754321987", Source: "schools_only"},
	}}
	a := newTestAggregator(testSearchConfig(), schoolSource)

	result, err := a.Run(context.Background(), Request{Query: "shops", Type: model.TypeBusiness})
	require.NoError(t, err)
	assert.Empty(t, result.Organizations)
	assert.Zero(t, schoolSource.callCount())
}

func TestRunAppendsFallbackForSchools(t *testing.T) {
	t.Parallel()

	dataset, err := fallback.Load()
	require.NoError(t, err)

	cfg := testSearchConfig()
	cfg.UseFallback = true

	registry := source.NewRegistryWith(&stubSource{name: "empty"})
	canon := NewCanonicalizer(cfg, validate.NewNameValidator(config.ValidatorConfig{}))
	a := NewAggregator(registry, canon, dataset, nil, cfg)

	result, err := a.Run(context.Background(), Request{Query: "schools", Type: model.TypeSchool, Limit: 10})
	require.NoError(t, err)

	// Live sources yielded nothing; the curated dataset still delivers.
	assert.NotEmpty(t, result.Organizations)
	assert.Contains(t, result.SourcesUsed, fallback.SourceTag)

	// Business searches never get the school fallback.
	bizResult, err := a.Run(context.Background(), Request{Query: "shops", Type: model.TypeBusiness, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, bizResult.Organizations)
}

func TestRunCapsAtLimit(t *testing.T) {
	t.Parallel()

	var records []model.RawRecord
	for _, name := range []string{
		"Tumaini Academy", "Mwenge Primary School", "Mlimani College",
		"Kibasila Secondary", "Upanga Institute", "Azania Secondary School",
	} {
		records = append(records, model.RawRecord{Name: name, Phone: "0754321987", Source: "big"})
	}
	a := newTestAggregator(testSearchConfig(), &stubSource{name: "big", records: records})

	result, err := a.Run(context.Background(), Request{Query: "schools", Type: model.TypeSchool, Limit: 6})
	require.NoError(t, err)
	assert.Len(t, result.Organizations, 6)
}

func TestRunMultiLocationOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	src := &stubSource{name: "echo", label: "Echo"}
	cfg := testSearchConfig()
	registry := source.NewRegistryWith(src)
	canon := NewCanonicalizer(cfg, validate.NewNameValidator(config.ValidatorConfig{}))
	a := NewAggregator(registry, canon, nil, nil, cfg)

	// The stub returns nothing, but every location must be visited.
	_, err := a.Run(context.Background(), Request{
		Query:     "schools",
		Type:      model.TypeSchool,
		Locations: []string{"Dar es Salaam", "Mwanza", "Arusha"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, src.callCount())

	locations := make(map[string]bool)
	for _, q := range src.calls {
		locations[q.Location] = true
	}
	assert.True(t, locations["Dar es Salaam"])
	assert.True(t, locations["Mwanza"])
	assert.True(t, locations["Arusha"])
}

func TestRunStopsQueryingSourcesAtLimit(t *testing.T) {
	t.Parallel()

	var records []model.RawRecord
	for _, name := range []string{
		"Tumaini Academy", "Mwenge Primary School", "Mlimani College",
		"Kibasila Secondary", "Upanga Institute",
	} {
		records = append(records, model.RawRecord{Name: name, Phone: "0754321987", Source: "first"})
	}
	second := &stubSource{name: "second", records: records}
	a := newTestAggregator(testSearchConfig(),
		&stubSource{name: "first", records: records},
		second,
	)

	result, err := a.Run(context.Background(), Request{Query: "schools", Type: model.TypeSchool, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, result.Organizations, 5)
	// The first source already filled the location's quota.
	assert.Zero(t, second.callCount())
}

func TestRunBackstopsZeroLimit(t *testing.T) {
	t.Parallel()

	cfg := testSearchConfig()
	cfg.Limit = 0
	a := newTestAggregator(cfg, &stubSource{name: "dir", records: []model.RawRecord{
		{Name: "Tumaini Academy", Phone: "0754321987", Source: "dir"},
	}})

	// Neither the request nor the config carries a usable limit; the
	// run must still return results instead of truncating to nothing.
	result, err := a.Run(context.Background(), Request{Query: "schools", Type: model.TypeSchool})
	require.NoError(t, err)
	assert.Len(t, result.Organizations, 1)
}

func TestRunDefaultsLocationAndLimit(t *testing.T) {
	t.Parallel()

	src := &stubSource{name: "echo"}
	a := newTestAggregator(testSearchConfig(), src)

	_, err := a.Run(context.Background(), Request{Query: "schools", Type: model.TypeSchool})
	require.NoError(t, err)
	require.Equal(t, 1, src.callCount())
	assert.Equal(t, "Dar es Salaam", src.calls[0].Location)
}
