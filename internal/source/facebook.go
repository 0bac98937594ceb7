package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/contact-finder/internal/extract"
	"github.com/sells-group/contact-finder/internal/fetch"
	"github.com/sells-group/contact-finder/internal/model"
)

// fbPageKeywords gate which page titles look like organizations.
var fbPageKeywords = []string{"school", "academy", "business", "company"}

// Facebook scrapes public Facebook business page search results.
type Facebook struct {
	client  *fetch.Client
	baseURL string
}

// NewFacebook creates the Facebook pages adapter.
func NewFacebook(client *fetch.Client) *Facebook {
	return &Facebook{client: client, baseURL: "https://www.facebook.com"}
}

// WithBaseURL overrides the base URL. Used in tests.
func (s *Facebook) WithBaseURL(u string) *Facebook {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

func (s *Facebook) Name() string  { return "facebook" }
func (s *Facebook) Label() string { return "Facebook" }

func (s *Facebook) SupportsType(model.OrgType) bool { return true }

// Fetch searches public pages and keeps titles containing an
// organization keyword.
func (s *Facebook) Fetch(ctx context.Context, q Query) ([]model.RawRecord, error) {
	searchURL := fmt.Sprintf("%s/search/pages/?q=%s", s.baseURL, url.QueryEscape(q.Text))

	html, err := s.client.Get(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	contacts := extract.FromHTML(html)

	var records []model.RawRecord
	doc.Find("a[aria-label]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		title, _ := sel.Attr("aria-label")
		title = strings.TrimSpace(title)

		lower := strings.ToLower(title)
		matched := false
		for _, kw := range fbPageKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}

		records = append(records, model.RawRecord{
			Name:        title,
			Phone:       contacts.PhoneAt(i),
			Email:       contacts.EmailAt(i),
			SocialMedia: contacts.SocialMedia,
			Source:      s.Label(),
		})
		return len(records) < q.Limit
	})

	return records, nil
}
