package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterDefaults(t *testing.T) {
	f, err := ParseFilter(url.Values{})
	require.NoError(t, err)

	assert.Empty(t, f.GroupCategory)
	assert.Empty(t, f.EventCategory)
	assert.Empty(t, f.Region)
	assert.Empty(t, f.TsQuery)
	assert.False(t, f.HasGeo())
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.False(t, f.IncludeBBox)
	assert.False(t, f.IncludePoints)
}

func TestParseFilterRecognizedKeys(t *testing.T) {
	q := url.Values{
		"group_category[]": {"technology", "food-drink"},
		"region":           {"central-texas"},
		"ts_query":         {"gophers"},
		"latitude":         {"30.2672"},
		"longitude":        {"-97.7431"},
		"distance":         {"10000"},
		"limit":            {"10"},
		"offset":           {"20"},
		"include_bbox":     {"true"},
	}

	f, err := ParseFilter(q)
	require.NoError(t, err)

	assert.Equal(t, []string{"technology", "food-drink"}, f.GroupCategory)
	assert.Equal(t, []string{"central-texas"}, f.Region)
	assert.Equal(t, "gophers", f.TsQuery)
	require.True(t, f.HasGeo())
	assert.Equal(t, 30.2672, *f.Latitude)
	assert.Equal(t, -97.7431, *f.Longitude)
	assert.Equal(t, 10000.0, *f.Distance)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 20, f.Offset)
	assert.True(t, f.IncludeBBox)
}

func TestParseFilterUnknownKeysIgnored(t *testing.T) {
	f, err := ParseFilter(url.Values{
		"sort_by":  {"popularity"},
		"page":     {"banana"},
		"ts_query": {"hiking"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hiking", f.TsQuery)
}

func TestParseFilterPartialGeoRejected(t *testing.T) {
	for _, q := range []url.Values{
		{"latitude": {"30.0"}},
		{"latitude": {"30.0"}, "longitude": {"-97.0"}},
		{"distance": {"5000"}},
	} {
		_, err := ParseFilter(q)
		assert.Error(t, err, "query %v", q)
	}
}

func TestParseFilterMalformedValues(t *testing.T) {
	testCases := []struct {
		name string
		q    url.Values
	}{
		{"non-numeric latitude", url.Values{"latitude": {"north"}, "longitude": {"-97.0"}, "distance": {"5000"}}},
		{"latitude out of range", url.Values{"latitude": {"123.0"}, "longitude": {"-97.0"}, "distance": {"5000"}}},
		{"longitude out of range", url.Values{"latitude": {"30.0"}, "longitude": {"-200.0"}, "distance": {"5000"}}},
		{"negative distance", url.Values{"latitude": {"30.0"}, "longitude": {"-97.0"}, "distance": {"-1"}}},
		{"non-numeric limit", url.Values{"limit": {"lots"}}},
		{"zero limit", url.Values{"limit": {"0"}}},
		{"negative offset", url.Values{"offset": {"-5"}}},
		{"malformed include_bbox", url.Values{"include_bbox": {"yes please"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFilter(tc.q)
			assert.Error(t, err)
		})
	}
}

func TestParseFilterLimitClamped(t *testing.T) {
	f, err := ParseFilter(url.Values{"limit": {"1000"}})
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, f.Limit)
}

func TestParseFilterBlankSlugsDropped(t *testing.T) {
	f, err := ParseFilter(url.Values{"region[]": {"", "  ", "hill-country"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"hill-country"}, f.Region)
}
