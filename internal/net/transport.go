package net

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// maxLine bounds a single JSON line on the TCP transport.
const maxLine = 16 << 20

// Transport moves JSON documents to and from a peer, one document per
// message. Send and Receive may be used from different goroutines but each
// is not safe for concurrent use with itself.
type Transport interface {
	Send(v any) error
	Receive() (json.RawMessage, error)
	SetDeadline(t time.Time) error
	RemoteAddr() string
	Close() error
}

// ErrClosed is returned by a transport whose peer went away.
var ErrClosed = errors.New("connection closed")

// lineTransport frames documents as newline-terminated JSON over a stream.
type lineTransport struct {
	conn    net.Conn
	reader  *bufio.Reader
	encoder *json.Encoder
}

// NewLineTransport wraps a stream connection.
func NewLineTransport(conn net.Conn) Transport {
	return &lineTransport{
		conn:    conn,
		reader:  bufio.NewReaderSize(conn, 64<<10),
		encoder: json.NewEncoder(conn),
	}
}

func (t *lineTransport) Send(v any) error {
	// Encode terminates every document with '\n'.
	return t.encoder.Encode(v)
}

func (t *lineTransport) Receive() (json.RawMessage, error) {
	var buf []byte
	for {
		chunk, isPrefix, err := t.reader.ReadLine()
		if err != nil {
			return nil, err
		}
		buf = append(buf, chunk...)
		if len(buf) > maxLine {
			return nil, fmt.Errorf("line exceeds %d bytes", maxLine)
		}
		if isPrefix {
			continue
		}
		if len(bytes.TrimSpace(buf)) == 0 {
			buf = buf[:0]
			continue
		}
		return json.RawMessage(buf), nil
	}
}

func (t *lineTransport) SetDeadline(d time.Time) error { return t.conn.SetDeadline(d) }
func (t *lineTransport) RemoteAddr() string             { return t.conn.RemoteAddr().String() }
func (t *lineTransport) Close() error                   { return t.conn.Close() }

// wsTransport sends each document as one websocket text frame.
type wsTransport struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

// NewWebsocketTransport wraps an established websocket connection.
func NewWebsocketTransport(conn *websocket.Conn) Transport {
	conn.SetReadLimit(maxLine)
	return &wsTransport{conn: conn}
}

func (t *wsTransport) Send(v any) error {
	t.wmu.Lock()
	defer t.wmu.Unlock()
	return t.conn.WriteJSON(v)
}

func (t *wsTransport) Receive() (json.RawMessage, error) {
	for {
		kind, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, ErrClosed
			}
			return nil, err
		}
		if kind == websocket.TextMessage || kind == websocket.BinaryMessage {
			return json.RawMessage(data), nil
		}
	}
}

func (t *wsTransport) SetDeadline(d time.Time) error {
	if err := t.conn.SetReadDeadline(d); err != nil {
		return err
	}
	return t.conn.SetWriteDeadline(d)
}

func (t *wsTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }

func (t *wsTransport) Close() error {
	t.wmu.Lock()
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	t.wmu.Unlock()
	return t.conn.Close()
}

// DialTransport connects to addr. "ws://" and "wss://" URLs use a
// websocket; anything else is treated as host:port for a TCP line stream.
func DialTransport(addr string, timeout time.Duration) (Transport, error) {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		dialer := websocket.Dialer{HandshakeTimeout: timeout}
		conn, _, err := dialer.Dial(addr, nil)
		if err != nil {
			return nil, err
		}
		return NewWebsocketTransport(conn), nil
	}
	conn, err := net.DialTimeout("tcp", strings.TrimPrefix(addr, "tcp://"), timeout)
	if err != nil {
		return nil, err
	}
	return NewLineTransport(conn), nil
}
