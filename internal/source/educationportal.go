package source

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/extract"
	"github.com/sells-group/contact-finder/internal/fetch"
	"github.com/sells-group/contact-finder/internal/model"
)

var portalKeywords = []string{"school", "academy", "shule", "primary", "secondary"}

// EducationPortal scrapes Tanzanian ministry-of-education portals for
// school names. Portals publish prose pages, not listings, so hits are
// capitalized phrases ending in a schooling keyword; downstream
// validation discards the noise this inevitably produces.
type EducationPortal struct {
	client *fetch.Client
	urls   []string
}

// NewEducationPortal creates the education portal adapter.
func NewEducationPortal(client *fetch.Client) *EducationPortal {
	return &EducationPortal{
		client: client,
		urls: []string{
			"https://www.moe.go.tz",
			"https://www.necta.go.tz",
		},
	}
}

// WithURLs overrides the portal URL list. Used in tests.
func (s *EducationPortal) WithURLs(urls ...string) *EducationPortal {
	s.urls = urls
	return s
}

func (s *EducationPortal) Name() string  { return "education_portal" }
func (s *EducationPortal) Label() string { return "Tanzania Education Portal" }

func (s *EducationPortal) SupportsType(t model.OrgType) bool { return t == model.TypeSchool }

// Fetch visits each portal in order until the limit is met. A portal
// that fails to load contributes nothing.
func (s *EducationPortal) Fetch(ctx context.Context, q Query) ([]model.RawRecord, error) {
	var records []model.RawRecord

	for _, portalURL := range s.urls {
		if len(records) >= q.Limit {
			break
		}

		html, err := s.client.Get(ctx, portalURL)
		if err != nil {
			zap.L().Debug("education portal unreachable",
				zap.String("url", portalURL), zap.Error(err))
			continue
		}

		records = append(records, s.extractSchools(html, q.Location)...)
	}

	if len(records) > q.Limit {
		records = records[:q.Limit]
	}
	return records, nil
}

const perKeywordCap = 20

func (s *EducationPortal) extractSchools(html, location string) []model.RawRecord {
	contacts := extract.FromHTML(html)

	var records []model.RawRecord
	seen := make(map[string]struct{})

	for _, kw := range portalKeywords {
		re := regexp.MustCompile(fmt.Sprintf(`(?i)([A-Z][a-zA-Z\s]+%s[a-zA-Z\s]*)`, kw))
		matches := re.FindAllStringSubmatch(html, perKeywordCap)
		for _, m := range matches {
			name := extract.StripTags(m[1])
			key := model.NormalizeName(name)
			if _, dup := seen[key]; dup || key == "" {
				continue
			}
			seen[key] = struct{}{}
			records = append(records, model.RawRecord{
				Name:    name,
				Phone:   contacts.FirstPhone(),
				Email:   contacts.FirstEmail(),
				Address: location,
				Source:  s.Label(),
			})
		}
	}
	return records
}
