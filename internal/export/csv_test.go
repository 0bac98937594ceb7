package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-finder/internal/model"
)

func exportFixture() []model.Organization {
	orgs := []model.Organization{
		{
			Name: "Mwenge Primary School", Type: model.TypeSchool,
			Phone: "+255 22 123 4567", Email: "info@mwenge.ac.tz",
			Address: "Bagamoyo Road", WebsiteURL: "https://mwenge.ac.tz",
			SocialMedia: map[string]string{"facebook": "https://fb.com/mwenge"},
			Source:      "TZ Yellow Pages",
		},
		{Name: "Tumaini Academy", Type: model.TypeSchool, Phone: "+255 75 432 1987"},
		{Name: "Kariakoo Hardware Ltd", Type: model.TypeBusiness, Email: "sales@kariakoo.co.tz"},
	}
	for i := range orgs {
		orgs[i].Recalculate()
	}
	return orgs
}

func TestWriteCSVColumnOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportFixture()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{
		"Name", "Type", "Category", "Phone", "Email",
		"Website Status", "Website URL", "Address", "Contact Status",
		"Tier", "Size", "Facebook", "Instagram", "LinkedIn", "Notes", "Source",
	}, rows[0])

	first := rows[1]
	assert.Equal(t, "Mwenge Primary School", first[0])
	assert.Equal(t, "school", first[1])
	assert.Equal(t, "+255 22 123 4567", first[3])
	assert.Equal(t, "Has Website", first[5])
	assert.Equal(t, "Tier A", first[9])
	assert.Equal(t, "https://fb.com/mwenge", first[11])
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	orgs := exportFixture()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, orgs))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, back, len(orgs))

	for i := range orgs {
		assert.Equal(t, orgs[i].Name, back[i].Name)
		assert.Equal(t, orgs[i].Type, back[i].Type)
		assert.Equal(t, orgs[i].Phone, back[i].Phone)
		assert.Equal(t, orgs[i].Email, back[i].Email)
		assert.Equal(t, orgs[i].Tier, back[i].Tier)
		assert.Equal(t, orgs[i].ContactStatus, back[i].ContactStatus)
	}
	assert.Equal(t, "https://fb.com/mwenge", back[0].SocialMedia["facebook"])
}

func TestReadCSVSkipsBlankNames(t *testing.T) {
	t.Parallel()

	in := "Name,Phone\nTumaini Academy,+255 75 432 1987\n,+255 11 111 1111\n"
	orgs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "Tumaini Academy", orgs[0].Name)
}

func TestWriteSchoolCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteSchoolCSV(&buf, exportFixture(), SchoolCSVOptions{IncludeTier: true}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// Header plus the two schools; the business is filtered out.
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Phone", "Email", "Address", "Website Status", "Tier", "Contact Status"}, rows[0])
	// Name-sorted.
	assert.Equal(t, "Mwenge Primary School", rows[1][0])
	assert.Equal(t, "Tumaini Academy", rows[2][0])
}

func TestWriteSchoolCSVNoWebsiteOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteSchoolCSV(&buf, exportFixture(), SchoolCSVOptions{NoWebsiteOnly: true}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Tumaini Academy", rows[1][0])
}
