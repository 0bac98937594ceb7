package source

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brelaResultsPage = `
<html><body>
<table>
  <tr><td>Kariakoo Hardware Limited</td><td>+255 22 123 4567</td></tr>
  <tr><td>Tumaini Academy</td><td>0754 321 987</td></tr>
  <tr><td>just a cell</td></tr>
</table>
</body></html>`

func TestBRELAFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "hardware", r.URL.Query().Get("query"))
		fmt.Fprint(w, brelaResultsPage)
	}))
	defer srv.Close()

	s := NewBRELA(fastClient()).WithBaseURL(srv.URL)
	recs, err := s.Fetch(t.Context(), Query{Text: "hardware", Limit: 10})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Only cells with a legal or institutional suffix count as entities.
	assert.Equal(t, "Kariakoo Hardware Limited", recs[0].Name)
	assert.Equal(t, "+255 22 123 4567", recs[0].Phone)
	assert.Equal(t, "Tumaini Academy", recs[1].Name)
	assert.Equal(t, "BRELA", recs[1].Source)
}

func TestBRELAFetchLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, brelaResultsPage)
	}))
	defer srv.Close()

	s := NewBRELA(fastClient()).WithBaseURL(srv.URL)
	recs, err := s.Fetch(t.Context(), Query{Text: "hardware", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
