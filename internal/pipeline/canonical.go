package pipeline

import (
	"strings"

	"github.com/sells-group/contact-finder/internal/config"
	"github.com/sells-group/contact-finder/internal/extract"
	"github.com/sells-group/contact-finder/internal/model"
	"github.com/sells-group/contact-finder/internal/validate"
)

// Canonicalizer converts raw source records into organizations, applying
// name validation and the minimum-contact-fields floor.
type Canonicalizer struct {
	validator    *validate.NameValidator
	minFields    int
	allowedEmpty map[string]bool
}

// NewCanonicalizer builds a canonicalizer from the search and validator
// configuration.
func NewCanonicalizer(search config.SearchConfig, validator *validate.NameValidator) *Canonicalizer {
	c := &Canonicalizer{
		validator:    validator,
		minFields:    search.MinContactFields,
		allowedEmpty: make(map[string]bool, len(search.AllowEmptyContactSources)),
	}
	for _, label := range search.AllowEmptyContactSources {
		c.allowedEmpty[strings.ToLower(label)] = true
	}
	return c
}

// Canonicalize validates and converts one raw record. The second return
// is false when the record is rejected: invalid name, or too few contact
// fields from a source that is not in the empty-contact exception set.
func (c *Canonicalizer) Canonicalize(rec model.RawRecord, orgType model.OrgType) (model.Organization, bool) {
	name := strings.Join(strings.Fields(rec.Name), " ")
	if !c.validator.Valid(name, orgType) {
		return model.Organization{}, false
	}

	if rec.ContactFieldCount() < c.minFields && !c.allowedEmpty[strings.ToLower(rec.Source)] {
		return model.Organization{}, false
	}

	phone := rec.Phone
	if phone != "" && extract.ValidPhone(phone) {
		phone = extract.FormatPhone(phone)
	}

	org := model.Organization{
		Name:        name,
		Type:        orgType,
		Phone:       phone,
		Email:       strings.TrimSpace(rec.Email),
		Address:     strings.TrimSpace(rec.Address),
		WebsiteURL:  strings.TrimSpace(rec.Website),
		SocialMedia: rec.SocialMedia,
		Source:      rec.Source,
	}
	org.Recalculate()
	return org, true
}

// CanonicalizeAll converts a batch, dropping rejected records.
func (c *Canonicalizer) CanonicalizeAll(recs []model.RawRecord, orgType model.OrgType) []model.Organization {
	out := make([]model.Organization, 0, len(recs))
	for _, rec := range recs {
		if org, ok := c.Canonicalize(rec, orgType); ok {
			out = append(out, org)
		}
	}
	return out
}
