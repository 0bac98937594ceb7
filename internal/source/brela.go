package source

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/sells-group/contact-finder/internal/extract"
	"github.com/sells-group/contact-finder/internal/fetch"
	"github.com/sells-group/contact-finder/internal/model"
)

// Registered entity names carry a legal or institutional suffix.
var brelaNameRe = regexp.MustCompile(`(?i)<td[^>]*>([^<]+(?:Limited|Ltd|Company|Co\.|School|Academy)[^<]*)</td>`)

// BRELA scrapes the Business Registrations and Licensing Agency search.
type BRELA struct {
	client  *fetch.Client
	baseURL string
}

// NewBRELA creates the BRELA registry adapter.
func NewBRELA(client *fetch.Client) *BRELA {
	return &BRELA{client: client, baseURL: "https://www.brela.go.tz"}
}

// WithBaseURL overrides the base URL. Used in tests.
func (s *BRELA) WithBaseURL(u string) *BRELA {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

func (s *BRELA) Name() string  { return "brela" }
func (s *BRELA) Label() string { return "BRELA" }

func (s *BRELA) SupportsType(model.OrgType) bool { return true }

// Fetch searches the registry and pairs table-cell entity names with
// page contacts positionally.
func (s *BRELA) Fetch(ctx context.Context, q Query) ([]model.RawRecord, error) {
	searchURL := fmt.Sprintf("%s/search?query=%s", s.baseURL, url.QueryEscape(q.Text))

	html, err := s.client.Get(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	contacts := extract.FromHTML(html)

	var records []model.RawRecord
	for i, m := range brelaNameRe.FindAllStringSubmatch(html, -1) {
		if len(records) >= q.Limit {
			break
		}
		records = append(records, model.RawRecord{
			Name:   strings.TrimSpace(m[1]),
			Phone:  contacts.PhoneAt(i),
			Email:  contacts.EmailAt(i),
			Source: s.Label(),
		})
	}
	return records, nil
}
