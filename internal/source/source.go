// Package source contains the directory adapters that produce raw
// candidate records for the aggregation pipeline. Adapters are thin
// wrappers around site-specific markup; all quality decisions live in
// the pipeline.
package source

import (
	"context"

	"github.com/sells-group/contact-finder/internal/model"
)

// Query is a single search request passed to an adapter.
type Query struct {
	Text     string
	Location string
	Limit    int
}

// Source is one data origin. Fetch may return zero records; it must
// catch site-specific failures internally and never panic across the
// orchestration boundary. Returned errors are treated by the
// orchestrator as "no records from this source", never as run failures.
type Source interface {
	// Name is the stable selection key, e.g. "yellowpages".
	Name() string
	// Label is the human-readable tag recorded as provenance.
	Label() string
	// SupportsType reports whether this source is useful for the given
	// organization type.
	SupportsType(t model.OrgType) bool
	Fetch(ctx context.Context, q Query) ([]model.RawRecord, error)
}
