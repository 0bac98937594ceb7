package source

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/extract"
	"github.com/sells-group/contact-finder/internal/fetch"
	"github.com/sells-group/contact-finder/internal/model"
)

// Capitalized multi-word phrases ending in an institution keyword.
var schoolNameRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,6}\s+(?:Secondary|School|Academy|College))\b`)

// SchoolCoTz scrapes school.co.tz regional O-level listing pages.
type SchoolCoTz struct {
	client  *fetch.Client
	baseURL string
	pages   []string
}

// NewSchoolCoTz creates the School.co.tz adapter.
func NewSchoolCoTz(client *fetch.Client) *SchoolCoTz {
	return &SchoolCoTz{
		client:  client,
		baseURL: "https://www.school.co.tz",
		pages: []string{
			"/O-level-boarding-schools-in-Dar",
			"/O-level-Schools-in-Mwanza",
			"/O-level-boarding-schools",
		},
	}
}

// WithBaseURL overrides the base URL. Used in tests.
func (s *SchoolCoTz) WithBaseURL(u string) *SchoolCoTz {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

func (s *SchoolCoTz) Name() string  { return "schoolcotz" }
func (s *SchoolCoTz) Label() string { return "School.co.tz" }

func (s *SchoolCoTz) SupportsType(t model.OrgType) bool { return t == model.TypeSchool }

// Fetch walks the regional pages in order until the limit is met.
func (s *SchoolCoTz) Fetch(ctx context.Context, q Query) ([]model.RawRecord, error) {
	var records []model.RawRecord

	for _, path := range s.pages {
		if len(records) >= q.Limit {
			break
		}

		html, err := s.client.Get(ctx, s.baseURL+path)
		if err != nil {
			zap.L().Debug("schoolcotz: page fetch failed",
				zap.String("path", path), zap.Error(err))
			continue
		}
		records = append(records, s.parsePage(html)...)
	}

	if len(records) > q.Limit {
		records = records[:q.Limit]
	}
	return records, nil
}

func (s *SchoolCoTz) parsePage(html string) []model.RawRecord {
	contacts := extract.FromHTML(html)
	seen := make(map[string]struct{})

	var records []model.RawRecord
	for _, m := range schoolNameRe.FindAllStringSubmatch(html, -1) {
		name := strings.TrimSpace(m[1])
		norm := model.NormalizeName(name)
		if _, dup := seen[norm]; dup {
			continue
		}
		if len(name) < 8 || len(name) > 100 || len(strings.Fields(name)) > 8 {
			continue
		}
		seen[norm] = struct{}{}

		idx := len(records)
		records = append(records, model.RawRecord{
			Name:   name,
			Phone:  contacts.PhoneAt(idx),
			Email:  contacts.EmailAt(idx),
			Source: s.Label(),
		})
	}
	return records
}
