package source

import (
	"strings"

	"github.com/sells-group/contact-finder/internal/config"
	"github.com/sells-group/contact-finder/internal/fetch"
)

// Registry holds sources in a fixed order. The order is load-bearing:
// the merge rule is first-non-empty-wins by arrival order, so sources
// must always be visited in the same sequence.
type Registry struct {
	ordered []Source
	enabled map[string]bool
}

// NewRegistry builds the full adapter set sharing one fetch client,
// enabled per the search configuration.
func NewRegistry(client *fetch.Client, cfg config.SearchConfig) *Registry {
	r := &Registry{enabled: make(map[string]bool)}
	for _, key := range cfg.Sources {
		r.enabled[key] = true
	}

	r.ordered = []Source{
		NewYellowPages(client),
		NewGoogleMaps(client),
		NewFacebook(client),
		NewBRELA(client),
		NewEducationPortal(client),
		NewTanzapages(client),
		NewShulezetu(client),
		NewZoomTanzania(),
		NewSchoolCoTz(client),
	}
	return r
}

// NewRegistryWith builds a registry from an explicit source list with
// every source enabled. Used by tests and custom wiring.
func NewRegistryWith(sources ...Source) *Registry {
	r := &Registry{ordered: sources, enabled: make(map[string]bool, len(sources))}
	for _, s := range sources {
		r.enabled[s.Name()] = true
	}
	return r
}

// All returns every enabled source in registry order.
func (r *Registry) All() []Source {
	return r.selectKeys(nil)
}

// Select resolves a user selection into concrete sources, preserving
// registry order. Accepted forms: "" or "all" (every enabled source),
// a comma-separated key list, the "tanzania_only" alias, or a single
// key. Unknown selections fall back to all enabled sources.
func (r *Registry) Select(selection string) []Source {
	selection = strings.TrimSpace(strings.ToLower(selection))
	if selection == "" || selection == "all" {
		return r.All()
	}

	if selection == "tanzania_only" {
		return r.selectKeys(map[string]bool{
			"yellowpages": true, "brela": true, "education_portal": true,
		})
	}

	want := make(map[string]bool)
	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			want[part] = true
		}
	}

	selected := r.selectKeys(want)
	if len(selected) == 0 {
		return r.All()
	}
	return selected
}

// selectKeys filters the ordered source list. A nil want set means
// "everything enabled".
func (r *Registry) selectKeys(want map[string]bool) []Source {
	var out []Source
	for _, s := range r.ordered {
		if !r.enabled[s.Name()] {
			continue
		}
		if want != nil && !want[s.Name()] {
			continue
		}
		out = append(out, s)
	}
	return out
}
