package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Request is one line of input.
type Request struct {
	Tool   *string         `json:"tool"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Response is one line of output. Successful responses carry Result and
// failed ones carry Error.
type Response struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResult is a handled failure reported inside a successful response,
// such as an unknown tool or missing coordinates.
type ErrorResult struct {
	Error string `json:"error"`
}

// Failure builds a failed response.
func Failure(msg string) Response {
	return Response{Success: false, Error: msg}
}

// Dispatcher routes requests to the tools in a registry.
type Dispatcher struct {
	registry *ToolRegistry
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over registry. A nil logger discards
// all output.
func NewDispatcher(registry *ToolRegistry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		registry: registry,
		logger:   logger,
	}
}

// Registry returns the tools the dispatcher serves.
func (d *Dispatcher) Registry() *ToolRegistry {
	return d.registry
}

// Handle decodes one input line and dispatches it.
func (d *Dispatcher) Handle(ctx context.Context, line []byte) Response {
	if !json.Valid(line) {
		d.logger.WarnContext(ctx, "rejected request", "error", ErrInvalidJSON)
		return Failure(ErrInvalidJSON.Error())
	}

	if bytes.Equal(bytes.TrimSpace(line), []byte("null")) {
		d.logger.WarnContext(ctx, "rejected request", "error", ErrInvalidRequest)
		return Failure(ErrInvalidRequest.Error())
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		d.logger.WarnContext(ctx, "rejected request", "error", err)
		return Failure(err.Error())
	}

	tool := "null"
	if req.Tool != nil {
		tool = *req.Tool
	}
	return d.Call(ctx, tool, req.Params)
}

// Call runs a single tool invocation and converts its outcome into a
// response. It never panics; a panicking tool yields a failed response.
func (d *Dispatcher) Call(ctx context.Context, tool string, params json.RawMessage) (resp Response) {
	logger := d.logger.With("request_id", uuid.NewString(), "tool", tool)

	defer func() {
		if r := recover(); r != nil {
			resp = Failure(fmt.Sprint(r))
			logger.ErrorContext(ctx, "tool panicked", "panic", r)
		}
	}()

	if len(params) == 0 || bytes.Equal(params, []byte("null")) {
		params = json.RawMessage("{}")
	}

	result, err := d.registry.Execute(ctx, tool, params)
	switch {
	case err == nil:
		resp = Response{Success: true, Result: result}
	case errors.Is(err, ErrUnknownTool):
		resp = Response{Success: true, Result: ErrorResult{Error: fmt.Sprintf("%s: %s", ErrUnknownTool, tool)}}
	case errors.Is(err, ErrMissingCoordinates):
		resp = Response{Success: true, Result: ErrorResult{Error: ErrMissingCoordinates.Error()}}
	default:
		resp = Failure(err.Error())
	}

	if err != nil {
		logger.WarnContext(ctx, "tool call failed", "success", resp.Success, "error", err)
	} else {
		logger.DebugContext(ctx, "tool call handled", "success", resp.Success)
	}
	return resp
}

type readResult struct {
	line []byte
	err  error
}

// Serve reads newline-delimited requests from r and writes one response
// line per request to w, flushing after each. It returns nil when r is
// exhausted and ctx.Err() as soon as the context ends, even while a read
// is pending. A read in flight at that point is abandoned.
func (d *Dispatcher) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer := bufio.NewWriter(w)
	lines := make(chan readResult)

	go func() {
		defer close(lines)
		reader := bufio.NewReader(r)
		for {
			line, err := reader.ReadBytes('\n')
			select {
			case lines <- readResult{line: line, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var res readResult
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res = <-lines:
		}

		if len(res.line) > 0 {
			if err := writeResponse(writer, d.Handle(ctx, res.line)); err != nil {
				return err
			}
		}

		if res.err == io.EOF {
			return nil
		}
		if res.err != nil {
			return fmt.Errorf("failed to read request: %w", res.err)
		}
	}
}

func writeResponse(w *bufio.Writer, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		data, _ = json.Marshal(Failure(err.Error()))
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
