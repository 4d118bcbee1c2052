// Package location provides the static gazetteer behind the location tools:
// name geocoding, alias normalization and great-circle distance.
package location

import "strings"

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a single gazetteer row.
type Place struct {
	Name       string  `json:"name" yaml:"name" toml:"name"`
	Lat        float64 `json:"lat" yaml:"lat" toml:"lat"`
	Lon        float64 `json:"lon" yaml:"lon" toml:"lon"`
	Normalized string  `json:"normalized" yaml:"normalized" toml:"normalized"`
}

// Coordinates returns the place position.
func (p Place) Coordinates() Coordinates {
	return Coordinates{Lat: p.Lat, Lon: p.Lon}
}

var defaultPlaces = []Place{
	{Name: "downtown", Lat: 40.7589, Lon: -73.9851, Normalized: "downtown"},
	{Name: "brooklyn", Lat: 40.6892, Lon: -73.9442, Normalized: "brooklyn"},
	{Name: "manhattan", Lat: 40.7831, Lon: -73.9712, Normalized: "manhattan"},
	{Name: "queens", Lat: 40.7505, Lon: -73.8370, Normalized: "queens"},
	{Name: "upper west side", Lat: 40.7851, Lon: -73.9754, Normalized: "upper west side"},
	{Name: "east village", Lat: 40.7281, Lon: -73.9857, Normalized: "east village"},
	{Name: "westchester", Lat: 41.0534, Lon: -73.7629, Normalized: "westchester"},
}

var defaultAliases = map[string]string{
	"nyc":           "manhattan",
	"new york":      "manhattan",
	"new york city": "manhattan",
	"bk":            "brooklyn",
	"bklyn":         "brooklyn",
	"midtown":       "manhattan",
	"times square":  "manhattan",
	"central park":  "manhattan",
}

// Gazetteer is an immutable lookup table of known places and aliases.
// Places keep their declaration order, which decides substring tie-breaks.
type Gazetteer struct {
	places  []Place
	index   map[string]int
	aliases map[string]string
}

// Option configures a Gazetteer at construction time.
type Option func(*builder)

type builder struct {
	places  []Place
	aliases map[string]string
}

// WithPlaces appends places after the built-in rows. A key already present
// keeps its first declaration.
func WithPlaces(places ...Place) Option {
	return func(b *builder) {
		b.places = append(b.places, places...)
	}
}

// WithAliases adds alias mappings. Later mappings override earlier ones.
func WithAliases(aliases map[string]string) Option {
	return func(b *builder) {
		for alias, canonical := range aliases {
			b.aliases[alias] = canonical
		}
	}
}

// New builds a gazetteer over the built-in tables plus any options.
func New(opts ...Option) *Gazetteer {
	b := &builder{
		places:  append([]Place(nil), defaultPlaces...),
		aliases: make(map[string]string, len(defaultAliases)),
	}
	for alias, canonical := range defaultAliases {
		b.aliases[alias] = canonical
	}
	for _, opt := range opts {
		opt(b)
	}

	g := &Gazetteer{
		places:  make([]Place, 0, len(b.places)),
		index:   make(map[string]int, len(b.places)),
		aliases: make(map[string]string, len(b.aliases)),
	}
	for _, p := range b.places {
		key := clean(p.Name)
		if key == "" {
			continue
		}
		if _, exists := g.index[key]; exists {
			continue
		}
		p.Name = key
		if p.Normalized == "" {
			p.Normalized = key
		}
		g.index[key] = len(g.places)
		g.places = append(g.places, p)
	}
	for alias, canonical := range b.aliases {
		key := clean(alias)
		if key == "" {
			continue
		}
		g.aliases[key] = clean(canonical)
	}
	return g
}

var builtin = New()

// Default returns the gazetteer built from the built-in tables only.
func Default() *Gazetteer {
	return builtin
}

// Places returns a copy of the places in declaration order.
func (g *Gazetteer) Places() []Place {
	return append([]Place(nil), g.places...)
}

// Lookup returns the place stored under the exact (cleaned) key.
func (g *Gazetteer) Lookup(name string) (Place, bool) {
	i, ok := g.index[clean(name)]
	if !ok {
		return Place{}, false
	}
	return g.places[i], true
}

// clean lowercases and trims a user supplied name.
func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
