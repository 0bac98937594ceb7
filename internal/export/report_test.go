package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-finder/internal/model"
)

func TestWriteReport(t *testing.T) {
	t.Parallel()

	orgs := exportFixture()
	stats := model.ComputeStats(orgs, []string{"TZ Yellow Pages"})

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "CONTACT REPORT: schools", orgs, stats))
	out := buf.String()

	assert.Contains(t, out, "CONTACT REPORT: schools")
	assert.Contains(t, out, "Total organizations: 3")
	assert.Contains(t, out, "Tier A (complete): 1")
	assert.Contains(t, out, "Sources used: TZ Yellow Pages")
	assert.Contains(t, out, "Mwenge Primary School")
	assert.Contains(t, out, "Phone:   +255 22 123 4567")
}

func TestWriteSchoolReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteSchoolReport(&buf, exportFixture()))
	out := buf.String()

	assert.Contains(t, out, "Schools without websites: 1")
	assert.Contains(t, out, "Schools with websites:    1")
	assert.Contains(t, out, "TARGETS (no website)")
	assert.Contains(t, out, "Tumaini Academy")
	assert.Contains(t, out, "https://mwenge.ac.tz")
	// Businesses never appear in the school report.
	assert.NotContains(t, out, "Kariakoo Hardware Ltd")
}
