// Package extract pulls contact fields out of unstructured directory
// markup. It is deliberately decoupled from the aggregation core so
// extraction-quality changes never touch merge or tier logic.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Tanzanian phone layouts: +255 with optional grouping, local 0-prefixed,
	// and the parenthesized country-code variant.
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+255\s?\d{2,3}\s?\d{3}\s?\d{3,4}`),
		regexp.MustCompile(`\(\+255\)\s?\d{2,3}\s?\d{3}\s?\d{3,4}`),
		regexp.MustCompile(`\b0\d{2,3}\s?\d{3}\s?\d{3,4}\b`),
	}

	addressRe = regexp.MustCompile(`(?i)(?:Address|Location)[:\s]+([^<>\n]+)`)
)

// socialHosts maps URL substrings to social platform keys.
var socialHosts = []struct {
	needle   string
	platform string
}{
	{"facebook.com", "facebook"},
	{"instagram.com", "instagram"},
	{"linkedin.com", "linkedin"},
	{"twitter.com", "twitter"},
	{"x.com", "twitter"},
}

// Contacts holds everything pulled from one page of markup.
type Contacts struct {
	Emails      []string
	Phones      []string
	Websites    []string
	SocialMedia map[string]string
}

// FirstEmail returns the first extracted email, or "".
func (c Contacts) FirstEmail() string {
	if len(c.Emails) == 0 {
		return ""
	}
	return c.Emails[0]
}

// FirstPhone returns the first extracted phone, or "".
func (c Contacts) FirstPhone() string {
	if len(c.Phones) == 0 {
		return ""
	}
	return c.Phones[0]
}

// EmailAt returns the i-th email, or "" when out of range. Directory
// pages list contacts positionally, so adapters pair the i-th listing
// with the i-th contact as a best-effort association.
func (c Contacts) EmailAt(i int) string {
	if i < 0 || i >= len(c.Emails) {
		return ""
	}
	return c.Emails[i]
}

// PhoneAt returns the i-th phone, or "" when out of range.
func (c Contacts) PhoneAt(i int) string {
	if i < 0 || i >= len(c.Phones) {
		return ""
	}
	return c.Phones[i]
}

// FromHTML extracts contact information from raw markup. Emails and
// phones are regex-pulled from the document text; anchor hrefs are
// classified into social-media links and plain websites.
func FromHTML(html string) Contacts {
	out := Contacts{SocialMedia: make(map[string]string)}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Fall back to text-only extraction on unparseable markup.
		out.Emails = dedupe(emailRe.FindAllString(html, -1))
		out.Phones = extractPhones(html)
		return out
	}

	text := doc.Text()
	out.Emails = dedupe(emailRe.FindAllString(text, -1))
	out.Phones = extractPhones(text)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, "http") {
			return
		}
		for _, sh := range socialHosts {
			if strings.Contains(href, sh.needle) {
				if _, exists := out.SocialMedia[sh.platform]; !exists {
					out.SocialMedia[sh.platform] = href
				}
				return
			}
		}
		out.Websites = append(out.Websites, href)
	})
	out.Websites = dedupe(out.Websites)

	return out
}

// Address pulls a labelled address line out of raw markup, or "".
func Address(html string) string {
	m := addressRe.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// StripTags removes markup tags, collapsing the remainder to a trimmed
// text string. Used for listing names captured with tags attached.
func StripTags(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}

func extractPhones(text string) []string {
	var phones []string
	for _, re := range phoneRes {
		phones = append(phones, re.FindAllString(text, -1)...)
	}
	return dedupe(phones)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
