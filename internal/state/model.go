package state

import "ShapeBoard/internal/shapes"

// OpType tags a history entry.
type OpType string

const (
	OpShapeAdded   OpType = "shape_added"
	OpShapeRemoved OpType = "shape_removed"
)

// Source says which collection a history entry applies to.
type Source int

const (
	SourceLocal Source = iota
	SourceServer
)

func (s Source) String() string {
	if s == SourceServer {
		return "server"
	}
	return "local"
}

// Op is one history entry.
type Op struct {
	Type   OpType
	Shape  shapes.Shape
	Source Source
}

// Added builds an OpShapeAdded entry for the local collection.
func Added(s shapes.Shape) Op { return Op{Type: OpShapeAdded, Shape: s} }

// Removed builds an OpShapeRemoved entry for the local collection.
func Removed(s shapes.Shape) Op { return Op{Type: OpShapeRemoved, Shape: s} }

// Collection is an ordered sequence of shapes compared by identity.
type Collection struct {
	items []shapes.Shape
}

// Add appends s, even if it is already present.
func (c *Collection) Add(s shapes.Shape) {
	c.items = append(c.items, s)
}

// Remove drops the first occurrence of s and reports whether it was found.
func (c *Collection) Remove(s shapes.Shape) bool {
	for i, item := range c.items {
		if item == s {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Collection) Contains(s shapes.Shape) bool {
	for _, item := range c.items {
		if item == s {
			return true
		}
	}
	return false
}

// FindByID returns the first shape with the given id. The empty id never
// matches.
func (c *Collection) FindByID(id string) shapes.Shape {
	if id == "" {
		return nil
	}
	for _, item := range c.items {
		if item.Common().ID == id {
			return item
		}
	}
	return nil
}

// At returns the last shape containing (x, y), which is the one painted
// on top.
func (c *Collection) At(x, y float64) shapes.Shape {
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.items[i].Contains(x, y) {
			return c.items[i]
		}
	}
	return nil
}

func (c *Collection) Clear() { c.items = nil }

func (c *Collection) Len() int { return len(c.items) }

// All returns the shapes in insertion order. The slice is a copy; the
// shapes are not.
func (c *Collection) All() []shapes.Shape {
	out := make([]shapes.Shape, len(c.items))
	copy(out, c.items)
	return out
}
