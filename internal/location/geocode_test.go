package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeExactMatch(t *testing.T) {
	g := Default()

	for _, p := range defaultPlaces {
		for _, input := range []string{p.Name, "  " + p.Name + " ", upper(p.Name)} {
			t.Run(input, func(t *testing.T) {
				res := g.Geocode(input)
				require.True(t, res.Success)
				require.NotNil(t, res.Latitude)
				require.NotNil(t, res.Longitude)
				assert.Equal(t, input, res.Location)
				assert.Equal(t, p.Normalized, res.NormalizedLocation)
				assert.Equal(t, p.Lat, *res.Latitude)
				assert.Equal(t, p.Lon, *res.Longitude)
				assert.Equal(t, ExactConfidence, res.Confidence)
				assert.Empty(t, res.Error)
			})
		}
	}
}

func TestGeocodeManhattan(t *testing.T) {
	res := Default().Geocode("Manhattan")

	require.True(t, res.Success)
	assert.Equal(t, 40.7831, *res.Latitude)
	assert.Equal(t, -73.9712, *res.Longitude)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "manhattan", res.NormalizedLocation)
}

func TestGeocodePartialMatch(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		normalized string
	}{
		{name: "input inside key", input: "Brook", normalized: "brooklyn"},
		{name: "key inside input", input: "Downtown Brooklyn Heights", normalized: "downtown"},
		{name: "key inside input later entry", input: "Astoria, Queens", normalized: "queens"},
		{name: "prefix of multi word key", input: "upper west", normalized: "upper west side"},
		{name: "suffix of key", input: "village", normalized: "east village"},
		{name: "first declared wins", input: "Queens and Brooklyn", normalized: "brooklyn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Default().Geocode(tt.input)
			require.True(t, res.Success)
			assert.Equal(t, tt.input, res.Location)
			assert.Equal(t, tt.normalized, res.NormalizedLocation)
			assert.Equal(t, PartialConfidence, res.Confidence)

			p, ok := Default().Lookup(tt.normalized)
			require.True(t, ok)
			assert.Equal(t, p.Lat, *res.Latitude)
			assert.Equal(t, p.Lon, *res.Longitude)
		})
	}
}

func TestGeocodeNotFound(t *testing.T) {
	res := Default().Geocode("  Atlantis ")

	assert.False(t, res.Success)
	assert.Equal(t, "  Atlantis ", res.Location)
	assert.Equal(t, "atlantis", res.NormalizedLocation)
	assert.Equal(t, "Location not found in database", res.Error)
	assert.Nil(t, res.Latitude)
	assert.Nil(t, res.Longitude)
	assert.Zero(t, res.Confidence)
}

func TestGeocodeAliasIsNotAKey(t *testing.T) {
	g := Default()

	res := g.Geocode("NYC ")
	assert.False(t, res.Success)

	norm := g.Normalize("NYC ")
	assert.Equal(t, "manhattan", norm.NormalizedLocation)

	res = g.Geocode(norm.NormalizedLocation)
	require.True(t, res.Success)
	assert.Equal(t, 40.7831, *res.Latitude)
	assert.Equal(t, -73.9712, *res.Longitude)
	assert.Equal(t, ExactConfidence, res.Confidence)
}

func TestGeocodeEmptyInputMatchesFirstPlace(t *testing.T) {
	res := Default().Geocode("   ")

	require.True(t, res.Success)
	assert.Equal(t, "downtown", res.NormalizedLocation)
	assert.Equal(t, PartialConfidence, res.Confidence)
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
