package location

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlGazetteer = `
places:
  - name: " Harlem "
    lat: 40.8116
    lon: -73.9465
  - name: manhattan
    lat: 1.5
    lon: 1.5
aliases:
  Spanish Harlem: harlem
  nyc: harlem
`

const tomlGazetteer = `
[[places]]
name = "Hoboken"
lat = 40.7440
lon = -74.0324
normalized = "hoboken nj"

[aliases]
"mile square city" = "hoboken"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	g, err := LoadFile(writeFile(t, "places.yaml", yamlGazetteer))
	require.NoError(t, err)

	res := g.Geocode("harlem")
	require.True(t, res.Success)
	assert.Equal(t, "harlem", res.NormalizedLocation)
	assert.Equal(t, 40.8116, *res.Latitude)
	assert.Equal(t, ExactConfidence, res.Confidence)

	// built-in rows keep their first declaration
	res = g.Geocode("manhattan")
	assert.Equal(t, 40.7831, *res.Latitude)

	assert.Equal(t, "harlem", g.Normalize("spanish harlem").NormalizedLocation)
	assert.Equal(t, "harlem", g.Normalize("NYC").NormalizedLocation)
	assert.Len(t, g.Places(), len(defaultPlaces)+1)

	// the shared default table is untouched
	assert.Equal(t, "manhattan", Default().Normalize("nyc").NormalizedLocation)
}

func TestLoadFileTOML(t *testing.T) {
	g, err := LoadFile(writeFile(t, "places.toml", tomlGazetteer))
	require.NoError(t, err)

	res := g.Geocode("Hoboken")
	require.True(t, res.Success)
	assert.Equal(t, "hoboken nj", res.NormalizedLocation)
	assert.Equal(t, -74.0324, *res.Longitude)
	assert.Equal(t, "hoboken", g.Normalize("Mile Square City").NormalizedLocation)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		errMsg  string
	}{
		{name: "unsupported extension", file: "places.json", content: "{}", errMsg: "unsupported gazetteer format"},
		{name: "bad yaml", file: "places.yaml", content: "places: [", errMsg: "failed to parse YAML"},
		{name: "bad toml", file: "places.toml", content: "places = [", errMsg: "failed to parse TOML"},
		{name: "missing name", file: "places.yaml", content: "places:\n  - lat: 1.0\n    lon: 1.0\n", errMsg: "name is required"},
		{name: "latitude out of range", file: "places.yaml", content: "places:\n  - name: x\n    lat: 91.0\n    lon: 1.0\n", errMsg: "latitude"},
		{name: "longitude out of range", file: "places.yaml", content: "places:\n  - name: x\n    lat: 1.0\n    lon: -181.0\n", errMsg: "longitude"},
		{name: "empty alias target", file: "places.yaml", content: "aliases:\n  foo: \"\"\n", errMsg: "canonical name"},
		{name: "alias chain", file: "places.yaml", content: "aliases:\n  soho: downtown\n  downtown: manhattan\n", errMsg: `"downtown" is itself an alias`},
		{name: "alias of a built-in alias", file: "places.toml", content: "[aliases]\n\"the big apple\" = \"NYC\"\n", errMsg: `"nyc" is itself an alias`},
		{name: "built-in canonical made an alias", file: "places.yaml", content: "aliases:\n  manhattan: harlem\n", errMsg: `"manhattan" is itself an alias`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFileNormalizeIdempotent(t *testing.T) {
	g, err := LoadFile(writeFile(t, "places.yaml", yamlGazetteer))
	require.NoError(t, err)

	for alias := range g.aliases {
		once := g.Normalize(alias).NormalizedLocation
		assert.Equal(t, once, g.Normalize(once).NormalizedLocation, alias)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read gazetteer file")
}
