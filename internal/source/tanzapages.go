package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/extract"
	"github.com/sells-group/contact-finder/internal/fetch"
	"github.com/sells-group/contact-finder/internal/model"
)

// Tanzapages scrapes tanzapages.com category and city listing pages.
type Tanzapages struct {
	client  *fetch.Client
	baseURL string
	// categoryPaths are crawled after the city-scoped pages.
	categoryPaths []string
	cityPages     []int
}

// NewTanzapages creates the Tanzapages directory adapter.
func NewTanzapages(client *fetch.Client) *Tanzapages {
	return &Tanzapages{
		client:  client,
		baseURL: "https://www.tanzapages.com",
		categoryPaths: []string{
			"/category/General_business",
			"/category/Education",
			"/category/Schools",
			"/browse-business-directory",
		},
		cityPages: []int{1, 2, 4},
	}
}

// WithBaseURL overrides the base URL. Used in tests.
func (s *Tanzapages) WithBaseURL(u string) *Tanzapages {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

func (s *Tanzapages) Name() string  { return "tanzapages" }
func (s *Tanzapages) Label() string { return "Tanzapages" }

func (s *Tanzapages) SupportsType(model.OrgType) bool { return true }

// Fetch crawls city-scoped school pages for the query location, then
// the general category pages, until the limit is met.
func (s *Tanzapages) Fetch(ctx context.Context, q Query) ([]model.RawRecord, error) {
	city := strings.ReplaceAll(strings.TrimSpace(strings.Split(q.Location, ",")[0]), " ", "_")

	var pageURLs []string
	for _, page := range s.cityPages {
		if page == 1 {
			pageURLs = append(pageURLs, fmt.Sprintf("%s/category/Schools/city%%3A%s", s.baseURL, url.QueryEscape(city)))
		} else {
			pageURLs = append(pageURLs, fmt.Sprintf("%s/category/Schools/%d/city%%3A%s", s.baseURL, page, url.QueryEscape(city)))
		}
	}
	for _, p := range s.categoryPaths {
		pageURLs = append(pageURLs, s.baseURL+p)
	}

	var records []model.RawRecord
	for _, pageURL := range pageURLs {
		if len(records) >= q.Limit {
			break
		}
		html, err := s.client.Get(ctx, pageURL)
		if err != nil {
			zap.L().Debug("tanzapages: page fetch failed",
				zap.String("url", pageURL), zap.Error(err))
			continue
		}
		records = append(records, s.parseListingPage(html, q.Limit-len(records))...)
	}
	return records, nil
}

// parseListingPage pulls company-profile anchor texts and pairs them
// with page contacts positionally.
func (s *Tanzapages) parseListingPage(html string, limit int) []model.RawRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	contacts := extract.FromHTML(html)
	seen := make(map[string]struct{})

	var records []model.RawRecord
	doc.Find(`a[href^="/company/"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		name := strings.TrimSpace(sel.Text())
		norm := model.NormalizeName(name)

		// Profile links repeat per listing; keep the first of each.
		if _, dup := seen[norm]; dup || norm == "view profile" || len(name) < 3 {
			return true
		}
		seen[norm] = struct{}{}

		idx := len(records)
		records = append(records, model.RawRecord{
			Name:   name,
			Phone:  contacts.PhoneAt(idx),
			Email:  contacts.EmailAt(idx),
			Source: s.Label(),
		})
		return len(records) < limit
	})
	return records
}
