package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sells-group/contact-finder/internal/model"
)

// WriteReport renders the general text report: run statistics followed
// by per-tier listings.
func WriteReport(w io.Writer, title string, orgs []model.Organization, stats model.RunStats) error {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", rule, title, rule)

	fmt.Fprintf(&b, "Total organizations: %d\n", stats.Total)
	fmt.Fprintf(&b, "  Tier A (complete): %d\n", stats.TierA)
	fmt.Fprintf(&b, "  Tier B (partial):  %d\n", stats.TierB)
	fmt.Fprintf(&b, "  Tier C (none):     %d\n", stats.TierC)
	fmt.Fprintf(&b, "Completeness rate:   %.1f%%\n\n", stats.CompletenessRate())

	fmt.Fprintf(&b, "Contact coverage:\n")
	fmt.Fprintf(&b, "  Phones:    %d\n", stats.PhonesFound)
	fmt.Fprintf(&b, "  Emails:    %d\n", stats.EmailsFound)
	fmt.Fprintf(&b, "  Addresses: %d\n", stats.AddressesFound)
	fmt.Fprintf(&b, "  Websites:  %d\n\n", stats.WebsitesFound)

	if len(stats.SourcesUsed) > 0 {
		fmt.Fprintf(&b, "Sources used: %s\n\n", strings.Join(stats.SourcesUsed, ", "))
	}

	for _, tier := range []model.Tier{model.TierA, model.TierB, model.TierC} {
		writeTierSection(&b, tier, orgs)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTierSection(b *strings.Builder, tier model.Tier, orgs []model.Organization) {
	var in []model.Organization
	for _, o := range orgs {
		if o.Tier == tier {
			in = append(in, o)
		}
	}
	if len(in) == 0 {
		return
	}
	sort.Slice(in, func(i, j int) bool {
		return strings.ToLower(in[i].Name) < strings.ToLower(in[j].Name)
	})

	fmt.Fprintf(b, "%s (%d)\n%s\n", tier, len(in), strings.Repeat("-", 60))
	for _, o := range in {
		fmt.Fprintf(b, "  %s\n", o.Name)
		if o.Phone != "" {
			fmt.Fprintf(b, "    Phone:   %s\n", o.Phone)
		}
		if o.Email != "" {
			fmt.Fprintf(b, "    Email:   %s\n", o.Email)
		}
		if o.Address != "" {
			fmt.Fprintf(b, "    Address: %s\n", o.Address)
		}
		fmt.Fprintf(b, "    Website: %s\n", o.WebsiteStatus)
	}
	b.WriteString("\n")
}

// WriteSchoolReport renders the school-focused report: schools without
// websites first (the outreach targets), then the remainder.
func WriteSchoolReport(w io.Writer, orgs []model.Organization) error {
	var noSite, withSite []model.Organization
	for _, o := range orgs {
		if o.Type != model.TypeSchool {
			continue
		}
		if o.WebsiteStatus == model.HasWebsite {
			withSite = append(withSite, o)
		} else {
			noSite = append(noSite, o)
		}
	}
	byName := func(s []model.Organization) {
		sort.Slice(s, func(i, j int) bool {
			return strings.ToLower(s[i].Name) < strings.ToLower(s[j].Name)
		})
	}
	byName(noSite)
	byName(withSite)

	var b strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "%s\nSCHOOL WEBSITE OPPORTUNITY REPORT\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Schools without websites: %d\n", len(noSite))
	fmt.Fprintf(&b, "Schools with websites:    %d\n\n", len(withSite))

	if len(noSite) > 0 {
		fmt.Fprintf(&b, "TARGETS (no website)\n%s\n", strings.Repeat("-", 60))
		for _, o := range noSite {
			fmt.Fprintf(&b, "  %s  [%s]\n", o.Name, o.ContactStatus)
			if o.Phone != "" {
				fmt.Fprintf(&b, "    Phone: %s\n", o.Phone)
			}
			if o.Email != "" {
				fmt.Fprintf(&b, "    Email: %s\n", o.Email)
			}
		}
		b.WriteString("\n")
	}

	if len(withSite) > 0 {
		fmt.Fprintf(&b, "ALREADY ONLINE\n%s\n", strings.Repeat("-", 60))
		for _, o := range withSite {
			fmt.Fprintf(&b, "  %s  %s\n", o.Name, o.WebsiteURL)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
