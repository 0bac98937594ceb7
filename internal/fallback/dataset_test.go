package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	ds, err := Load()
	require.NoError(t, err)
	assert.Greater(t, ds.Len(), 30)
}

func TestRecordsStableOrder(t *testing.T) {
	t.Parallel()

	ds, err := Load()
	require.NoError(t, err)

	first := ds.Records(10)
	second := ds.Records(10)
	require.Len(t, first, 10)
	assert.Equal(t, first, second)

	for _, rec := range first {
		assert.NotEmpty(t, rec.Name)
		assert.Equal(t, SourceTag, rec.Source)
	}

	all := ds.Records(0)
	assert.Len(t, all, ds.Len())
}

func TestLookupExactMatch(t *testing.T) {
	t.Parallel()

	ds, err := Load()
	require.NoError(t, err)

	key := ds.keys[0]
	entry := ds.Lookup(key)
	require.NotNil(t, entry)
	assert.Equal(t, ds.entries[key], *entry)
}

func TestLookupSubstring(t *testing.T) {
	t.Parallel()

	ds, err := Load()
	require.NoError(t, err)

	// A query that extends a curated name should still resolve to it.
	key := ds.keys[0]
	entry := ds.Lookup(key + " dar es salaam campus")
	require.NotNil(t, entry)
}

func TestLookupNoMatch(t *testing.T) {
	t.Parallel()

	ds, err := Load()
	require.NoError(t, err)

	assert.Nil(t, ds.Lookup("zzzz qqqq xxxx"))
	assert.Nil(t, ds.Lookup(""))
	assert.Nil(t, ds.Lookup("   "))
}
