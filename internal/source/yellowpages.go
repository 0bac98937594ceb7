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

const ypMaxPages = 5

// YellowPages scrapes the yellowpages.co.tz business directory.
type YellowPages struct {
	client  *fetch.Client
	baseURL string
}

// NewYellowPages creates the TZ Yellow Pages adapter.
func NewYellowPages(client *fetch.Client) *YellowPages {
	return &YellowPages{
		client:  client,
		baseURL: "https://www.yellowpages.co.tz",
	}
}

// WithBaseURL overrides the directory base URL. Used in tests.
func (s *YellowPages) WithBaseURL(u string) *YellowPages {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

func (s *YellowPages) Name() string  { return "yellowpages" }
func (s *YellowPages) Label() string { return "TZ Yellow Pages" }

func (s *YellowPages) SupportsType(model.OrgType) bool { return true }

// Fetch pages through search results until the limit is reached or a
// page yields nothing.
func (s *YellowPages) Fetch(ctx context.Context, q Query) ([]model.RawRecord, error) {
	var records []model.RawRecord

	for page := 1; page <= ypMaxPages && len(records) < q.Limit; page++ {
		searchURL := fmt.Sprintf("%s/search?query=%s&location=%s&page=%d",
			s.baseURL, url.QueryEscape(q.Text), url.QueryEscape(q.Location), page)

		html, err := s.client.Get(ctx, searchURL)
		if err != nil {
			zap.L().Debug("yellowpages: page fetch failed",
				zap.Int("page", page), zap.Error(err))
			break
		}

		listings := s.parseListings(html)
		if len(listings) == 0 {
			break
		}
		records = append(records, listings...)
	}

	if len(records) > q.Limit {
		records = records[:q.Limit]
	}
	return records, nil
}

// parseListings pulls one record per listing card.
func (s *YellowPages) parseListings(html string) []model.RawRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var records []model.RawRecord
	doc.Find("div[class*=listing]").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find("h1,h2,h3,h4").First().Text())
		if name == "" {
			return
		}

		cardHTML, _ := goquery.OuterHtml(sel)
		contacts := extract.FromHTML(cardHTML)

		records = append(records, model.RawRecord{
			Name:    name,
			Phone:   contacts.FirstPhone(),
			Email:   contacts.FirstEmail(),
			Address: extract.Address(cardHTML),
			Source:  s.Label(),
		})
	})
	return records
}
