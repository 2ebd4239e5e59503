package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	boardnet "ShapeBoard/internal/net"
)

// Server answers drawing requests over TCP line streams and websockets.
type Server struct {
	store    Store
	logger   *slog.Logger
	upgrader websocket.Upgrader
	peers    *PeerManager

	mu        sync.Mutex
	listeners map[net.Listener]struct{}
	closed    bool
	wg        sync.WaitGroup
}

// New returns a server backed by store. A nil logger discards output.
func New(store Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		peers:     NewPeerManager(logger),
		listeners: make(map[net.Listener]struct{}),
	}
}

// ErrServerClosed is returned by Serve after Close.
var ErrServerClosed = errors.New("server closed")

// Serve accepts TCP connections on ln until Close is called.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.listeners[ln] = struct{}{}
	s.mu.Unlock()

	s.logger.Info("tcp listener started", slog.String("addr", ln.Addr().String()))
	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(50 * time.Millisecond)
				continue
			}
			return err
		}
		if !s.track() {
			conn.Close()
			return ErrServerClosed
		}
		go func() {
			defer s.wg.Done()
			s.ServeTransport(boardnet.NewLineTransport(conn))
		}()
	}
}

// track registers a session with the WaitGroup unless the server is
// closed. Close waits only for sessions tracked before it ran.
func (s *Server) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// ListenAndServe listens on the TCP address addr and serves it.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// ServeHTTP upgrades the request to a websocket and serves it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.track() {
		http.Error(w, ErrServerClosed.Error(), http.StatusServiceUnavailable)
		return
	}
	defer s.wg.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	s.ServeTransport(boardnet.NewWebsocketTransport(conn))
}

// Router mounts the websocket endpoint at /ws.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s)
	return mux
}

// ServeTransport runs one client session until the peer disconnects.
func (s *Server) ServeTransport(t boardnet.Transport) {
	s.peers.Add(t)
	defer s.peers.Remove(t)
	defer t.Close()
	// Close may have run CloseAll before this peer was added.
	if s.isClosed() {
		return
	}

	sess := &session{}
	for {
		raw, err := t.Receive()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, boardnet.ErrClosed) && !errors.Is(err, net.ErrClosed) {
				s.logger.Info("client disconnected", slog.String("addr", t.RemoteAddr()), slog.String("error", err.Error()))
			}
			return
		}
		reply := s.handle(context.Background(), sess, raw)
		if err := t.Send(reply); err != nil {
			s.logger.Warn("write reply", slog.String("addr", t.RemoteAddr()), slog.String("error", err.Error()))
			return
		}
	}
}

// Close stops every listener and open session and waits for them to end.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	for ln := range s.listeners {
		ln.Close()
	}
	s.listeners = nil
	s.mu.Unlock()

	s.peers.CloseAll()
	s.wg.Wait()
	return nil
}

// PeerManager tracks the open client sessions.
type PeerManager struct {
	mu     sync.RWMutex
	peers  map[string]boardnet.Transport
	logger *slog.Logger
}

func NewPeerManager(logger *slog.Logger) *PeerManager {
	return &PeerManager{peers: make(map[string]boardnet.Transport), logger: logger}
}

func (pm *PeerManager) Add(t boardnet.Transport) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peers[t.RemoteAddr()] = t
	pm.logger.Info("client connected", slog.String("addr", t.RemoteAddr()))
}

func (pm *PeerManager) Remove(t boardnet.Transport) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.peers, t.RemoteAddr())
	pm.logger.Info("client removed", slog.String("addr", t.RemoteAddr()))
}

// Len reports the number of open sessions.
func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// CloseAll closes every open session.
func (pm *PeerManager) CloseAll() {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	for _, t := range pm.peers {
		t.Close()
	}
}

// Peers returns the session count, for status output.
func (s *Server) Peers() int { return s.peers.Len() }
