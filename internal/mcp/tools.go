package mcp

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/akolliy1/apartment-search-llm/internal/location"
)

// Tool names recognised by the dispatcher.
const (
	GeocodeToolName   = "geocode_location"
	NormalizeToolName = "normalize_location"
	DistanceToolName  = "calculate_distance"
)

// LocationParams are the parameters of the geocode and normalize tools.
type LocationParams struct {
	Location string `json:"location,omitempty"`
}

// DistanceParams are the parameters of the distance tool. Nil fields were
// absent (or null) in the request.
type DistanceParams struct {
	Lat1 *float64 `json:"lat1,omitempty"`
	Lon1 *float64 `json:"lon1,omitempty"`
	Lat2 *float64 `json:"lat2,omitempty"`
	Lon2 *float64 `json:"lon2,omitempty"`
}

func decodeParams(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, v)
}

// rawFields splits params into its top-level fields so callers can tell an
// absent field from an explicit null.
func rawFields(params json.RawMessage) (map[string]json.RawMessage, error) {
	fields := map[string]json.RawMessage{}
	if len(params) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(params, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeLocation reads the location parameter. An absent location is the
// empty string; a null one is rejected.
func decodeLocation(params json.RawMessage) (string, error) {
	fields, err := rawFields(params)
	if err != nil {
		return "", err
	}
	if raw, ok := fields["location"]; ok && isNull(raw) {
		return "", ErrInvalidLocation
	}

	var args LocationParams
	if err := decodeParams(params, &args); err != nil {
		return "", err
	}
	return args.Location, nil
}

var locationSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"location": map[string]interface{}{
			"type":        "string",
			"description": "Free-text location name",
			"default":     "",
		},
	},
}

// GeocodeTool resolves a location name to coordinates
type GeocodeTool struct {
	gazetteer *location.Gazetteer
}

func (t *GeocodeTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        GeocodeToolName,
		Description: "Geocode a location name to coordinates",
		Schema:      locationSchema,
	}
}

func (t *GeocodeTool) Execute(ctx context.Context, params json.RawMessage) (any, error) {
	name, err := decodeLocation(params)
	if err != nil {
		return nil, err
	}
	return t.gazetteer.Geocode(name), nil
}

// NormalizeTool maps a location alias to its canonical name
type NormalizeTool struct {
	gazetteer *location.Gazetteer
}

func (t *NormalizeTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name:        NormalizeToolName,
		Description: "Normalize a location name to its canonical form",
		Schema:      locationSchema,
	}
}

func (t *NormalizeTool) Execute(ctx context.Context, params json.RawMessage) (any, error) {
	name, err := decodeLocation(params)
	if err != nil {
		return nil, err
	}
	return t.gazetteer.Normalize(name), nil
}

// DistanceTool computes the great-circle distance between two points
type DistanceTool struct{}

func (t *DistanceTool) Definition() ToolDefinition {
	coordinate := func(desc string) map[string]interface{} {
		return map[string]interface{}{
			"type":        "number",
			"description": desc,
		}
	}
	return ToolDefinition{
		Name:        DistanceToolName,
		Description: "Calculate the distance between two coordinates",
		Schema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"lat1": coordinate("Latitude of the first point"),
				"lon1": coordinate("Longitude of the first point"),
				"lat2": coordinate("Latitude of the second point"),
				"lon2": coordinate("Longitude of the second point"),
			},
			"required": []string{"lat1", "lon1", "lat2", "lon2"},
		},
	}
}

func (t *DistanceTool) Execute(ctx context.Context, params json.RawMessage) (any, error) {
	fields, err := rawFields(params)
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"lat1", "lon1", "lat2", "lon2"} {
		if raw, ok := fields[key]; !ok || isNull(raw) {
			return nil, ErrMissingCoordinates
		}
	}

	var args DistanceParams
	if err := decodeParams(params, &args); err != nil {
		return nil, err
	}
	return location.Distance(
		location.Coordinates{Lat: *args.Lat1, Lon: *args.Lon1},
		location.Coordinates{Lat: *args.Lat2, Lon: *args.Lon2},
	), nil
}
