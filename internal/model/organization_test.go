package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		phone      string
		email      string
		address    string
		wantTier   Tier
		wantStatus ContactStatus
	}{
		{"all fields", "+255 22 123 4567", "info@example.co.tz", "Dar es Salaam", TierA, StatusComplete},
		{"phone only", "+255 22 123 4567", "", "", TierB, StatusPhoneOnly},
		{"phone and address", "+255 22 123 4567", "", "Dar es Salaam", TierB, StatusPhoneOnly},
		{"email only", "", "info@example.co.tz", "", TierB, StatusPartial},
		{"phone and email, no address", "+255 22 123 4567", "info@example.co.tz", "", TierB, StatusPartial},
		{"address only", "", "", "Dar es Salaam", TierC, StatusNoContact},
		{"nothing", "", "", "", TierC, StatusNoContact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tier, status := ClassifyTier(tt.phone, tt.email, tt.address)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestRecalculateIdempotent(t *testing.T) {
	t.Parallel()

	o := Organization{Name: "Mwenge Primary School", Phone: "+255 22 123 4567", WebsiteURL: "https://mwenge.ac.tz"}
	o.Recalculate()
	first := o
	o.Recalculate()
	assert.Equal(t, first, o)
	assert.Equal(t, TierB, o.Tier)
	assert.Equal(t, StatusPhoneOnly, o.ContactStatus)
	assert.Equal(t, HasWebsite, o.WebsiteStatus)
}

func TestRecalculateWebsiteStatus(t *testing.T) {
	t.Parallel()

	o := Organization{Name: "Test"}
	o.Recalculate()
	assert.Equal(t, NoWebsite, o.WebsiteStatus)

	o.WebsiteURL = "https://example.co.tz"
	o.Recalculate()
	assert.Equal(t, HasWebsite, o.WebsiteStatus)
}

func TestAddSource(t *testing.T) {
	t.Parallel()

	o := Organization{}
	o.AddSource("Tanzania Yellow Pages")
	assert.Equal(t, "Tanzania Yellow Pages", o.Source)

	o.AddSource("BRELA")
	assert.Equal(t, "Tanzania Yellow Pages; BRELA", o.Source)

	// Duplicates never repeat.
	o.AddSource("BRELA")
	assert.Equal(t, "Tanzania Yellow Pages; BRELA", o.Source)

	o.AddSource("")
	assert.Equal(t, "Tanzania Yellow Pages; BRELA", o.Source)
}

func TestNeedsResearch(t *testing.T) {
	t.Parallel()

	complete := Organization{Phone: "p", Email: "e", Address: "a"}
	complete.Recalculate()
	assert.False(t, complete.NeedsResearch())

	partial := Organization{Phone: "p"}
	partial.Recalculate()
	assert.True(t, partial.NeedsResearch())

	empty := Organization{}
	empty.Recalculate()
	assert.True(t, empty.NeedsResearch())
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mwenge primary school", NormalizeName("  Mwenge   Primary\tSchool "))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestParseOrgType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TypeSchool, ParseOrgType("school"))
	assert.Equal(t, TypeSchool, ParseOrgType("  School "))
	assert.Equal(t, TypeCustom, ParseOrgType("spaceport"))
	assert.Equal(t, TypeCustom, ParseOrgType(""))
}

func TestContactFieldCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, RawRecord{Name: "X"}.ContactFieldCount())
	assert.Equal(t, 2, RawRecord{Name: "X", Phone: "p", Website: "w"}.ContactFieldCount())
	assert.Equal(t, 4, RawRecord{Phone: "p", Email: "e", Address: "a", Website: "w"}.ContactFieldCount())
}
