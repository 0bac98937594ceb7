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

// Shulezetu scrapes the shulezetu.com school directory search.
type Shulezetu struct {
	client  *fetch.Client
	baseURL string
}

// NewShulezetu creates the Shulezetu adapter.
func NewShulezetu(client *fetch.Client) *Shulezetu {
	return &Shulezetu{client: client, baseURL: "https://www.shulezetu.com"}
}

// WithBaseURL overrides the base URL. Used in tests.
func (s *Shulezetu) WithBaseURL(u string) *Shulezetu {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

func (s *Shulezetu) Name() string  { return "shulezetu" }
func (s *Shulezetu) Label() string { return "Shulezetu" }

func (s *Shulezetu) SupportsType(t model.OrgType) bool { return t == model.TypeSchool }

// Fetch runs the site search and reads result titles from h2/h3 links.
func (s *Shulezetu) Fetch(ctx context.Context, q Query) ([]model.RawRecord, error) {
	searchURL := fmt.Sprintf("%s/?s=%s", s.baseURL, url.QueryEscape(q.Text))

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
	doc.Find("h2 a, h3 a").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		if title == "" {
			return true
		}
		records = append(records, model.RawRecord{
			Name:   title,
			Phone:  contacts.PhoneAt(i),
			Email:  contacts.EmailAt(i),
			Source: s.Label(),
		})
		return len(records) < q.Limit
	})

	return records, nil
}
