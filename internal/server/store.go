package server

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"ShapeBoard/internal/shapes"
)

// ErrNotFound is returned for an unknown drawing id.
var ErrNotFound = errors.New("drawing not found")

// Drawing is a stored shape record.
type Drawing struct {
	ID         string
	Type       string
	X, Y       float64
	Properties map[string]any
	// Owner is the login token that created the drawing.
	Owner     string
	CreatedAt time.Time
}

// Record renders d for the client identified by token.
func (d Drawing) Record(token string) shapes.Record {
	props := d.Properties
	if props == nil {
		props = map[string]any{}
	}
	return shapes.Record{
		"id":         d.ID,
		"type":       d.Type,
		"x":          d.X,
		"y":          d.Y,
		"properties": props,
		"isOwner":    token != "" && d.Owner == token,
	}
}

// Patch is a partial update. Nil fields are left alone and Properties are
// merged key by key.
type Patch struct {
	X, Y       *float64
	Properties map[string]any
}

func (p Patch) apply(d *Drawing) {
	if p.X != nil {
		d.X = *p.X
	}
	if p.Y != nil {
		d.Y = *p.Y
	}
	if len(p.Properties) > 0 {
		if d.Properties == nil {
			d.Properties = map[string]any{}
		}
		maps.Copy(d.Properties, p.Properties)
	}
}

// Store persists drawings in insertion order.
type Store interface {
	List(ctx context.Context) ([]Drawing, error)
	Add(ctx context.Context, d Drawing) error
	Update(ctx context.Context, id string, p Patch) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// MemoryStore keeps drawings in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	drawings []Drawing
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) List(context.Context) ([]Drawing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Drawing, len(m.drawings))
	for i, d := range m.drawings {
		d.Properties = maps.Clone(d.Properties)
		out[i] = d
	}
	return out, nil
}

func (m *MemoryStore) Add(_ context.Context, d Drawing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.Properties = maps.Clone(d.Properties)
	m.drawings = append(m.drawings, d)
	return nil
}

func (m *MemoryStore) Update(_ context.Context, id string, p Patch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.drawings {
		if m.drawings[i].ID == id {
			p.apply(&m.drawings[i])
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.drawings {
		if m.drawings[i].ID == id {
			m.drawings = append(m.drawings[:i], m.drawings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) Close() error { return nil }
