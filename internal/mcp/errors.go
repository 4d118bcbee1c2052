package mcp

import "errors"

// Sentinel errors for request dispatch. The messages are part of the wire
// protocol and are sent back to callers verbatim.
var (
	ErrInvalidJSON        = errors.New("Invalid JSON")
	ErrUnknownTool        = errors.New("Unknown tool")
	ErrMissingCoordinates = errors.New("Missing required coordinates")
	ErrInvalidRequest     = errors.New("Request must be a JSON object")
	ErrInvalidLocation    = errors.New("location must be a string")
)
