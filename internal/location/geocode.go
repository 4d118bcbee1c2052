package location

import "strings"

const (
	// ExactConfidence is reported when the input equals a gazetteer key.
	ExactConfidence = 1.0
	// PartialConfidence is reported for a substring match in either direction.
	PartialConfidence = 0.8

	notFoundMessage = "Location not found in database"
)

// GeocodeResult is the outcome of a geocode lookup. On failure only
// Location, NormalizedLocation and Error are populated.
type GeocodeResult struct {
	Success            bool     `json:"success"`
	Location           string   `json:"location"`
	NormalizedLocation string   `json:"normalized_location"`
	Latitude           *float64 `json:"latitude,omitempty"`
	Longitude          *float64 `json:"longitude,omitempty"`
	Confidence         float64  `json:"confidence,omitempty"`
	Error              string   `json:"error,omitempty"`
}

// Geocode resolves a free-text name against the gazetteer. An exact key
// match wins; otherwise the first place in declaration order whose key
// contains the input, or is contained by it, is returned.
func (g *Gazetteer) Geocode(name string) GeocodeResult {
	key := clean(name)

	if i, ok := g.index[key]; ok {
		return found(name, g.places[i], ExactConfidence)
	}

	for _, p := range g.places {
		if strings.Contains(key, p.Name) || strings.Contains(p.Name, key) {
			return found(name, p, PartialConfidence)
		}
	}

	return GeocodeResult{
		Success:            false,
		Location:           name,
		NormalizedLocation: key,
		Error:              notFoundMessage,
	}
}

func found(name string, p Place, confidence float64) GeocodeResult {
	lat, lon := p.Lat, p.Lon
	return GeocodeResult{
		Success:            true,
		Location:           name,
		NormalizedLocation: p.Normalized,
		Latitude:           &lat,
		Longitude:          &lon,
		Confidence:         confidence,
	}
}
