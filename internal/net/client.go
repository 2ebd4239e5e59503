package net

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ShapeBoard/internal/shapes"
)

// DefaultTimeout bounds a single request when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Options configures a Client.
type Options struct {
	Token   string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client talks to a drawing server. Requests are serialized: one request
// is in flight at a time and each call blocks until its reply arrives, the
// request times out, or the connection fails.
type Client struct {
	mu      sync.Mutex
	t       Transport
	token   string
	timeout time.Duration
	logger  *slog.Logger
	// broken is the failure that left the stream out of step. Once set,
	// every call fails without touching the transport.
	broken error
}

// Dial connects to addr and logs in.
func Dial(addr string, opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t, err := DialTransport(addr, timeout)
	if err != nil {
		return nil, commError("dial "+addr, err)
	}
	c := NewClient(t, opts)
	if err := c.Login(); err != nil {
		t.Close()
		return nil, err
	}
	return c, nil
}

// NewClient wraps an established transport without logging in.
func NewClient(t Transport, opts Options) *Client {
	c := &Client{
		t:       t,
		token:   opts.Token,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.logger == nil {
		c.logger = Logger()
	}
	return c
}

// roundTrip sends one request and returns the raw reply.
func (c *Client) roundTrip(action string, data any) (json.RawMessage, error) {
	req, err := NewRequest(action, data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.broken != nil {
		return nil, commError(action, fmt.Errorf("%w: %w", ErrBroken, c.broken))
	}
	if err := c.t.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, c.fail(action, err)
	}
	defer c.t.SetDeadline(time.Time{})

	start := time.Now()
	if err := c.t.Send(req); err != nil {
		c.logger.Warn("request failed", slog.String("action", action), slog.String("error", err.Error()))
		return nil, c.fail(action, err)
	}
	raw, err := c.t.Receive()
	if err != nil {
		c.logger.Warn("no reply", slog.String("action", action), slog.String("error", err.Error()))
		return nil, c.fail(action, err)
	}
	c.logger.Debug("request", slog.String("action", action), slog.Duration("duration", time.Since(start)))
	return raw, nil
}

// fail closes the transport after a send or receive error. A late reply
// to the failed request would otherwise be read as the answer to the next
// one. c.mu must be held.
func (c *Client) fail(action string, err error) error {
	c.broken = err
	c.t.Close()
	return commError(action, err)
}

// Broken reports whether an earlier failure closed the connection. A
// broken client must be replaced by dialing again.
func (c *Client) Broken() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.broken != nil
}

// call performs a request whose reply is a Response and turns result
// "error" into a *ServerError.
func (c *Client) call(action string, data any) (Response, error) {
	raw, err := c.roundTrip(action, data)
	if err != nil {
		return Response{}, err
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Response{}, commError(action, fmt.Errorf("decode reply: %w", err))
	}
	if resp.Result != ResultOK {
		return resp, &ServerError{Action: action, Message: resp.Message}
	}
	return resp, nil
}

// Login sends the session token.
func (c *Client) Login() error {
	_, err := c.call(ActionLogin, LoginData{Token: c.token})
	return err
}

// GetDrawings returns every drawing record on the server.
func (c *Client) GetDrawings() ([]shapes.Record, error) {
	raw, err := c.roundTrip(ActionGetDrawings, nil)
	if err != nil {
		return nil, err
	}
	var records []shapes.Record
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err == nil && resp.Result == ResultError {
		return nil, &ServerError{Action: ActionGetDrawings, Message: resp.Message}
	}
	return nil, commError(ActionGetDrawings, fmt.Errorf("unexpected reply %.64q", raw))
}

// FetchShapes is GetDrawings followed by the shape factory. Records the
// factory rejects are skipped.
func (c *Client) FetchShapes() ([]shapes.Shape, error) {
	records, err := c.GetDrawings()
	if err != nil {
		return nil, err
	}
	out := make([]shapes.Shape, 0, len(records))
	for _, rec := range records {
		if s := shapes.FromRecord(rec); s != nil {
			out = append(out, s)
		}
	}
	if skipped := len(records) - len(out); skipped > 0 {
		c.logger.Warn("skipped drawings", slog.Int("count", skipped))
	}
	return out, nil
}

// AddDrawing uploads s and returns the id the server assigned. s itself is
// not modified.
func (c *Client) AddDrawing(s shapes.Shape) (string, error) {
	rec := shapes.ToRecord(s)
	delete(rec, "id")
	delete(rec, "isOwner")
	resp, err := c.call(ActionAddDrawing, rec)
	if err != nil {
		return "", err
	}
	var data IDData
	if err := json.Unmarshal(resp.Data, &data); err != nil || data.ID == "" {
		return "", commError(ActionAddDrawing, fmt.Errorf("reply carries no id"))
	}
	return data.ID, nil
}

// UpdateDrawing replaces the position and properties of drawing id with
// those of s.
func (c *Client) UpdateDrawing(id string, s shapes.Shape) error {
	rec := shapes.ToRecord(s)
	b := s.Common()
	_, err := c.call(ActionUpdateDrawing, UpdateData{
		ID:         id,
		X:          &b.X,
		Y:          &b.Y,
		Properties: rec.Properties(),
	})
	return err
}

// DeleteDrawing removes drawing id.
func (c *Client) DeleteDrawing(id string) error {
	_, err := c.call(ActionDeleteDrawing, IDData{ID: id})
	return err
}

// RemoteAddr is the server address.
func (c *Client) RemoteAddr() string { return c.t.RemoteAddr() }

func (c *Client) Close() error { return c.t.Close() }
