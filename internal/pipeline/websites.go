package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/contact-finder/internal/fetch"
	"github.com/sells-group/contact-finder/internal/model"
)

// skipHosts are result hosts that never count as an organization's own
// website: social platforms and the directories we already scrape.
var skipHosts = []string{
	"facebook.com", "instagram.com", "linkedin.com", "twitter.com", "x.com",
	"youtube.com", "wikipedia.org", "yellow.co.tz", "tanzapages.com",
	"zoomtanzania.com", "duckduckgo.com",
}

// WebsiteFinder discovers organization websites through the DuckDuckGo
// HTML endpoint, which serves plain markup without JavaScript.
type WebsiteFinder struct {
	client    *fetch.Client
	searchURL string
	log       *zap.Logger
}

// NewWebsiteFinder creates a website discovery pass.
func NewWebsiteFinder(client *fetch.Client) *WebsiteFinder {
	return &WebsiteFinder{
		client:    client,
		searchURL: "https://html.duckduckgo.com/html/",
		log:       zap.L().With(zap.String("component", "websites")),
	}
}

// WithSearchURL overrides the search endpoint. Used in tests.
func (w *WebsiteFinder) WithSearchURL(u string) *WebsiteFinder {
	w.searchURL = strings.TrimRight(u, "/") + "/"
	return w
}

// FillAll discovers websites for every organization lacking one,
// in place, recalculating classifications as it goes.
func (w *WebsiteFinder) FillAll(ctx context.Context, orgs []model.Organization) {
	for i := range orgs {
		if orgs[i].WebsiteURL != "" {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		if site := w.Find(ctx, orgs[i].Name); site != "" {
			orgs[i].WebsiteURL = site
			orgs[i].Recalculate()
		}
	}
}

// Find searches for an organization's website and returns the first
// organic result that is not a social or directory host, or "".
func (w *WebsiteFinder) Find(ctx context.Context, name string) string {
	query := fmt.Sprintf("%s?q=%s", w.searchURL, url.QueryEscape(name+" Tanzania official website"))

	html, err := w.client.Get(ctx, query)
	if err != nil {
		w.log.Debug("website search failed", zap.String("name", name), zap.Error(err))
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	found := ""
	doc.Find("a.result__a, a.result__url").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		href = resolveRedirect(href)
		if !strings.HasPrefix(href, "http") || skippedHost(href) {
			return true
		}
		found = href
		return false
	})
	return found
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg= redirect links.
func resolveRedirect(href string) string {
	if !strings.Contains(href, "uddg=") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func skippedHost(href string) bool {
	for _, h := range skipHosts {
		if strings.Contains(href, h) {
			return true
		}
	}
	return false
}
