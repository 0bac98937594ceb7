package pipeline

import (
	"context"
	"sync"

	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/source"
)

// stubSource is a scripted source adapter for pipeline tests.
type stubSource struct {
	name       string
	label      string
	schoolOnly bool
	records    []model.RawRecord
	err        error

	mu    sync.Mutex
	calls []source.Query
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Label() string {
	if s.label == "" {
		return s.name
	}
	return s.label
}

func (s *stubSource) SupportsType(t model.OrgType) bool {
	return !s.schoolOnly || t == model.TypeSchool
}

func (s *stubSource) Fetch(_ context.Context, q source.Query) ([]model.RawRecord, error) {
	s.mu.Lock()
	s.calls = append(s.calls, q)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if len(s.records) > q.Limit {
		return s.records[:q.Limit], nil
	}
	return s.records, nil
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
