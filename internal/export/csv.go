// Package export renders organization sets into the delivery formats:
// CSV, XLSX, JSON and plain-text reports.
package export

import (
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-finder/internal/model"
)

// csvColumns is the fixed CSV column order. Downstream spreadsheets key
// on these positions, so the order never changes.
var csvColumns = []string{
	"Name", "Type", "Category", "Phone", "Email",
	"Website Status", "Website URL", "Address", "Contact Status",
	"Tier", "Size", "Facebook", "Instagram", "LinkedIn", "Notes", "Source",
}

// WriteCSV writes the full organization set in the fixed column order.
func WriteCSV(w io.Writer, orgs []model.Organization) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvColumns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, o := range orgs {
		if err := cw.Write(csvRow(o)); err != nil {
			return eris.Wrapf(err, "export: write csv row for %q", o.Name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func csvRow(o model.Organization) []string {
	return []string{
		o.Name,
		string(o.Type),
		o.Category,
		o.Phone,
		o.Email,
		o.WebsiteStatus,
		o.WebsiteURL,
		o.Address,
		string(o.ContactStatus),
		string(o.Tier),
		o.Size,
		o.SocialMedia["facebook"],
		o.SocialMedia["instagram"],
		o.SocialMedia["linkedin"],
		o.Notes,
		o.Source,
	}
}

// SchoolCSVOptions filters and shapes the school-focused CSV export.
type SchoolCSVOptions struct {
	// NoWebsiteOnly keeps only schools without a discovered website.
	NoWebsiteOnly bool
	// IncludeTier appends Tier and Contact Status columns.
	IncludeTier bool
}

// WriteSchoolCSV writes a school-only CSV, name-sorted, with a compact
// column set for outreach teams.
func WriteSchoolCSV(w io.Writer, orgs []model.Organization, opts SchoolCSVOptions) error {
	var schools []model.Organization
	for _, o := range orgs {
		if o.Type != model.TypeSchool {
			continue
		}
		if opts.NoWebsiteOnly && o.WebsiteStatus == model.HasWebsite {
			continue
		}
		schools = append(schools, o)
	}
	sort.Slice(schools, func(i, j int) bool {
		return strings.ToLower(schools[i].Name) < strings.ToLower(schools[j].Name)
	})

	header := []string{"Name", "Phone", "Email", "Address", "Website Status"}
	if opts.IncludeTier {
		header = append(header, "Tier", "Contact Status")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write school csv header")
	}
	for _, o := range schools {
		row := []string{o.Name, o.Phone, o.Email, o.Address, o.WebsiteStatus}
		if opts.IncludeTier {
			row = append(row, string(o.Tier), string(o.ContactStatus))
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "export: write school csv row for %q", o.Name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush school csv")
}

// ReadCSV parses a previously exported CSV back into organizations.
// Column order must match the export layout; extra columns are ignored.
func ReadCSV(r io.Reader) ([]model.Organization, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "export: read csv")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// Map headers to positions so imports survive column reordering.
	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var orgs []model.Organization
	for _, row := range rows[1:] {
		name := field(row, "Name")
		if name == "" {
			continue
		}
		o := model.Organization{
			Name:       name,
			Type:       model.ParseOrgType(field(row, "Type")),
			Category:   field(row, "Category"),
			Phone:      field(row, "Phone"),
			Email:      field(row, "Email"),
			WebsiteURL: field(row, "Website URL"),
			Address:    field(row, "Address"),
			Size:       field(row, "Size"),
			Notes:      field(row, "Notes"),
			Source:     field(row, "Source"),
		}
		for _, platform := range []string{"Facebook", "Instagram", "LinkedIn"} {
			if v := field(row, platform); v != "" {
				if o.SocialMedia == nil {
					o.SocialMedia = make(map[string]string)
				}
				o.SocialMedia[strings.ToLower(platform)] = v
			}
		}
		o.Recalculate()
		orgs = append(orgs, o)
	}
	return orgs, nil
}
