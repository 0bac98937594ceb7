package model

import (
	"regexp"
	"strings"
)

// OrgType classifies what kind of organization a record describes.
type OrgType string

const (
	TypeSchool     OrgType = "school"
	TypeBusiness   OrgType = "business"
	TypeMedical    OrgType = "medical"
	TypeRestaurant OrgType = "restaurant"
	TypeRetail     OrgType = "retail"
	TypeService    OrgType = "service"
	TypeNonprofit  OrgType = "nonprofit"
	TypeCustom     OrgType = "custom"
)

// OrgTypes lists every supported organization type.
func OrgTypes() []OrgType {
	return []OrgType{
		TypeSchool, TypeBusiness, TypeMedical, TypeRestaurant,
		TypeRetail, TypeService, TypeNonprofit, TypeCustom,
	}
}

// ParseOrgType converts a string into an OrgType. Unknown values map to
// TypeCustom so callers can pass through user input without failing.
func ParseOrgType(s string) OrgType {
	t := OrgType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range OrgTypes() {
		if t == known {
			return known
		}
	}
	return TypeCustom
}

// Tier is the outreach priority classification.
type Tier string

const (
	TierA Tier = "Tier A"
	TierB Tier = "Tier B"
	TierC Tier = "Tier C"
)

// ContactStatus describes how complete an organization's contact info is.
type ContactStatus string

const (
	StatusComplete  ContactStatus = "Complete"
	StatusPartial   ContactStatus = "Partial"
	StatusPhoneOnly ContactStatus = "Phone Only"
	StatusNoContact ContactStatus = "No Contact"
)

// Website status values derived from website URL presence.
const (
	HasWebsite = "Has Website"
	NoWebsite  = "No Website"
)

// Organization is the canonical, mergeable entity representing one
// real-world organization. It is created from a validated RawRecord and
// mutated only by merge and enrichment backfill.
type Organization struct {
	Name          string            `json:"name"`
	Type          OrgType           `json:"organization_type"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	Address       string            `json:"address"`
	WebsiteURL    string            `json:"website_url"`
	WebsiteStatus string            `json:"website_status"`
	Tier          Tier              `json:"tier"`
	ContactStatus ContactStatus     `json:"contact_status"`
	Category      string            `json:"category,omitempty"`
	Size          string            `json:"size,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	SocialMedia   map[string]string `json:"social_media,omitempty"`
	Source        string            `json:"source"`
}

// ClassifyTier is the pure tier/status function over contact field
// presence. Address alone never elevates the tier: phone+email+address
// is Tier A, phone without email is Tier B "Phone Only", exactly one of
// phone/email is Tier B "Partial", neither is Tier C.
func ClassifyTier(phone, email, address string) (Tier, ContactStatus) {
	switch {
	case phone != "" && email != "" && address != "":
		return TierA, StatusComplete
	case phone != "" && email == "":
		return TierB, StatusPhoneOnly
	case phone != "" || email != "":
		return TierB, StatusPartial
	default:
		return TierC, StatusNoContact
	}
}

// Recalculate refreshes Tier, ContactStatus and WebsiteStatus from the
// organization's current fields. Callers must invoke it after every
// field mutation so the classification never goes stale.
func (o *Organization) Recalculate() {
	o.Tier, o.ContactStatus = ClassifyTier(o.Phone, o.Email, o.Address)
	if o.WebsiteURL != "" {
		o.WebsiteStatus = HasWebsite
	} else {
		o.WebsiteStatus = NoWebsite
	}
}

// IsComplete reports whether phone, email and address are all populated.
func (o *Organization) IsComplete() bool {
	return o.Phone != "" && o.Email != "" && o.Address != ""
}

// NeedsResearch reports whether the organization should be re-queried
// during enrichment.
func (o *Organization) NeedsResearch() bool {
	return !o.IsComplete() || o.Tier == TierB || o.Tier == TierC
}

// AddSource appends a source tag to the provenance string unless the tag
// already appears in it. Provenance only ever grows.
func (o *Organization) AddSource(source string) {
	if source == "" || strings.Contains(o.Source, source) {
		return
	}
	if o.Source == "" {
		o.Source = source
		return
	}
	o.Source = o.Source + "; " + source
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a name and collapses internal whitespace.
// It is the dedup key for the bulk merge pass.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " ")))
}
