package pipeline

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/sells-group/contact-finder/internal/config"
	"github.com/sells-group/contact-finder/internal/model"
)

// Matcher scores organization-name similarity for enrichment lookups.
// The bulk merge pass does NOT use it; dedup there is exact on the
// normalized name so merge results stay reproducible.
type Matcher struct {
	threshold   float64
	containment float64
}

// NewMatcher builds a matcher from the match configuration.
func NewMatcher(cfg config.MatchConfig) *Matcher {
	m := &Matcher{threshold: cfg.SimilarityThreshold, containment: cfg.ContainmentScore}
	if m.threshold <= 0 {
		m.threshold = 0.6
	}
	if m.containment <= 0 {
		m.containment = 0.95
	}
	return m
}

// Score returns a similarity in [0,1] between two organization names.
// Containment (one normalized name inside the other) short-circuits to
// a fixed high score; otherwise Jaro-Winkler over the normalized forms.
func (m *Matcher) Score(a, b string) float64 {
	na, nb := model.NormalizeName(a), model.NormalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return m.containment
	}
	return matchr.JaroWinkler(na, nb, false)
}

// Match reports whether two names score at or above the threshold.
func (m *Matcher) Match(a, b string) bool {
	return m.Score(a, b) >= m.threshold
}

// Best returns the index of the best-matching organization for name, or
// -1 when none clears the threshold. Ties keep the earliest index.
func (m *Matcher) Best(name string, orgs []model.Organization) int {
	best, bestScore := -1, 0.0
	for i := range orgs {
		if s := m.Score(name, orgs[i].Name); s >= m.threshold && s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}
