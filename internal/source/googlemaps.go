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

var gmapsNameRe = regexp.MustCompile(`aria-label="([^"]+)"[^>]*role="article"`)

// GoogleMaps scrapes public Google Maps search result pages.
type GoogleMaps struct {
	client  *fetch.Client
	baseURL string
}

// NewGoogleMaps creates the Google Maps adapter.
func NewGoogleMaps(client *fetch.Client) *GoogleMaps {
	return &GoogleMaps{client: client, baseURL: "https://www.google.com/maps/search"}
}

// WithBaseURL overrides the search base URL. Used in tests.
func (s *GoogleMaps) WithBaseURL(u string) *GoogleMaps {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

func (s *GoogleMaps) Name() string  { return "google_maps" }
func (s *GoogleMaps) Label() string { return "Google Maps" }

func (s *GoogleMaps) SupportsType(model.OrgType) bool { return true }

// Fetch runs a single maps search. Contacts are associated with result
// names positionally; the address defaults to the searched location.
func (s *GoogleMaps) Fetch(ctx context.Context, q Query) ([]model.RawRecord, error) {
	searchURL := fmt.Sprintf("%s/%s", s.baseURL, url.QueryEscape(q.Text+" "+q.Location))

	html, err := s.client.Get(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	contacts := extract.FromHTML(html)

	var records []model.RawRecord
	for i, m := range gmapsNameRe.FindAllStringSubmatch(html, -1) {
		if len(records) >= q.Limit {
			break
		}
		records = append(records, model.RawRecord{
			Name:    strings.TrimSpace(m[1]),
			Phone:   contacts.PhoneAt(i),
			Email:   contacts.EmailAt(i),
			Address: q.Location,
			Source:  s.Label(),
		})
	}
	return records, nil
}
