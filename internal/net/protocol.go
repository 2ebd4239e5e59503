package net

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Actions understood by the drawing server.
const (
	ActionLogin         = "login"
	ActionGetDrawings   = "getDrawings"
	ActionAddDrawing    = "addDrawing"
	ActionUpdateDrawing = "updateDrawing"
	ActionDeleteDrawing = "deleteDrawing"
)

// Result values of a Response.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Request is one line sent to the server.
type Request struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Response is the reply to every action except getDrawings, which
// answers with a bare array of records.
type Response struct {
	Result  string          `json:"result"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type LoginData struct {
	Token string `json:"token"`
}

// IDData carries a drawing id, both in deleteDrawing requests and in the
// addDrawing reply.
type IDData struct {
	ID string `json:"id"`
}

// UpdateData is the payload of updateDrawing.
type UpdateData struct {
	ID         string         `json:"id"`
	X          *float64       `json:"x,omitempty"`
	Y          *float64       `json:"y,omitempty"`
	Properties map[string]any `json:"properties"`
}

// NewRequest marshals data into a request for action. A nil data leaves
// the field out.
func NewRequest(action string, data any) (Request, error) {
	req := Request{Action: action}
	if data == nil {
		return req, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return req, fmt.Errorf("encode %s data: %w", action, err)
	}
	req.Data = raw
	return req, nil
}

// OK builds a successful reply carrying data.
func OK(data any) Response {
	resp := Response{Result: ResultOK}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			resp.Data = raw
		}
	}
	return resp
}

// Fail builds an error reply.
func Fail(format string, args ...any) Response {
	return Response{Result: ResultError, Message: fmt.Sprintf(format, args...)}
}

// ErrCommunication marks transport failures: the request did not complete
// or the reply could not be read. Server-reported failures are
// *ServerError instead.
var ErrCommunication = errors.New("communication error")

// ErrBroken is wrapped into every error from a client whose connection was
// closed by an earlier failure.
var ErrBroken = errors.New("connection closed after a failed request")

func commError(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrCommunication, action, err)
}

// ServerError is returned when the server answered with result "error".
type ServerError struct {
	Action  string
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected %s", e.Action)
	}
	return fmt.Sprintf("server rejected %s: %s", e.Action, e.Message)
}

// IsServerError reports whether err carries a *ServerError.
func IsServerError(err error) bool {
	var se *ServerError
	return errors.As(err, &se)
}
