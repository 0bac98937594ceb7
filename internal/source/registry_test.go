package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-finder/internal/config"
	"github.com/sells-group/contact-finder/internal/fetch"
	"github.com/sells-group/contact-finder/internal/model"
)

func allSourceKeys() []string {
	return []string{
		"yellowpages", "google_maps", "facebook", "brela",
		"education_portal", "tanzapages", "shulezetu",
		"zoomtanzania", "schoolcotz",
	}
}

func testRegistry() *Registry {
	client := fetch.NewClient(fetch.Options{DelayMin: time.Millisecond})
	return NewRegistry(client, config.SearchConfig{Sources: allSourceKeys()})
}

func names(sources []Source) []string {
	var out []string
	for _, s := range sources {
		out = append(out, s.Name())
	}
	return out
}

func TestRegistryOrderIsFixed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, allSourceKeys(), names(testRegistry().All()))
}

func TestRegistryHonorsEnabledSet(t *testing.T) {
	t.Parallel()

	client := fetch.NewClient(fetch.Options{DelayMin: time.Millisecond})
	r := NewRegistry(client, config.SearchConfig{Sources: []string{"brela", "yellowpages"}})

	// Still registry order, not config order.
	assert.Equal(t, []string{"yellowpages", "brela"}, names(r.All()))
}

func TestSelect(t *testing.T) {
	t.Parallel()

	r := testRegistry()

	tests := []struct {
		name      string
		selection string
		want      []string
	}{
		{"empty", "", allSourceKeys()},
		{"all", "all", allSourceKeys()},
		{"single", "brela", []string{"brela"}},
		{"comma list keeps registry order", "shulezetu, yellowpages", []string{"yellowpages", "shulezetu"}},
		{"tanzania alias", "tanzania_only", []string{"yellowpages", "brela", "education_portal"}},
		{"unknown falls back to all", "nonsense", allSourceKeys()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, names(r.Select(tt.selection)))
		})
	}
}

func TestSchoolOnlySources(t *testing.T) {
	t.Parallel()

	r := testRegistry()
	schoolOnly := map[string]bool{"education_portal": true, "shulezetu": true, "schoolcotz": true}

	for _, s := range r.All() {
		assert.True(t, s.SupportsType(model.TypeSchool), s.Name())
		wantBusiness := !schoolOnly[s.Name()]
		assert.Equal(t, wantBusiness, s.SupportsType(model.TypeBusiness), s.Name())
	}
}

func TestZoomTanzaniaStaticRoster(t *testing.T) {
	t.Parallel()

	s := NewZoomTanzania()
	recs, err := s.Fetch(t.Context(), Query{Text: "businesses", Limit: 5})
	require.NoError(t, err)
	require.Len(t, recs, 5)
	for _, rec := range recs {
		assert.NotEmpty(t, rec.Name)
		assert.Equal(t, "Tanzania", rec.Address)
		assert.Equal(t, "ZoomTanzania", rec.Source)
	}
}
