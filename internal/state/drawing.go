package state

import (
	"image/color"

	"ShapeBoard/internal/shapes"
)

// Model owns the drawing: the locally authored shapes, the shapes mirrored
// from the server, the undo/redo history, the selection and the defaults
// for new shapes.
//
// Model is not safe for concurrent use. All calls are expected on the UI
// goroutine. Shapes handed out by Model are the canonical values; mutating
// one mutates the drawing, and callers should follow up with
// NotifyShapeChanged.
type Model struct {
	shapes     Collection
	fromServer Collection
	history    History
	notifier   Notifier

	selected     shapes.Shape
	fill         bool
	currentColor color.Color
	currentKind  shapes.Kind
}

// NewModel returns an empty drawing that draws black, unfilled lines.
func NewModel() *Model {
	return &Model{
		currentColor: shapes.Black,
		currentKind:  shapes.KindLine,
	}
}

func (m *Model) collection(src Source) *Collection {
	if src == SourceServer {
		return &m.fromServer
	}
	return &m.shapes
}

// AddObserver subscribes l and immediately sends it the current shapes.
func (m *Model) AddObserver(l Listener) (unsubscribe func()) {
	unsubscribe = m.notifier.Subscribe(l)
	m.notifyShapes()
	return unsubscribe
}

func (m *Model) notifyShapes() {
	m.notifier.Fire(PropShapes, nil, m.shapes.All())
}

// AddShape appends s to the local shapes and makes it undoable.
func (m *Model) AddShape(s shapes.Shape) {
	m.shapes.Add(s)
	m.history.Record(Added(s))
	m.notifyShapes()
}

// AddShapeFromServer appends s to the server-mirrored shapes. History is
// kept exactly as for AddShape, so an undo takes it back out of the
// mirrored shapes.
func (m *Model) AddShapeFromServer(s shapes.Shape) {
	m.fromServer.Add(s)
	m.history.Record(Op{Type: OpShapeAdded, Shape: s, Source: SourceServer})
	m.notifyShapes()
}

// RemoveShape deletes s from the local shapes. Every history entry that
// refers to s is dropped, so the deletion itself cannot be undone. Removing
// a shape that is not present does nothing.
func (m *Model) RemoveShape(s shapes.Shape) {
	if !m.shapes.Remove(s) {
		return
	}
	m.history.Purge(s)
	m.notifyShapes()
}

// Undo reverses the most recent add or remove.
func (m *Model) Undo() {
	if m.history.Undo(m.collection) {
		m.notifyShapes()
	}
}

// Redo replays the most recently undone entry.
func (m *Model) Redo() {
	if m.history.Redo(m.collection) {
		m.notifyShapes()
	}
}

func (m *Model) CanUndo() bool { return m.history.CanUndo() }
func (m *Model) CanRedo() bool { return m.history.CanRedo() }

// History exposes the stacks for inspection.
func (m *Model) History() *History { return &m.history }

// The Change* setters mutate s in place. They are not recorded in history.

func (m *Model) ChangeShapeBorderColor(s shapes.Shape, c color.Color) {
	s.Common().SetBorderColor(c)
	m.notifyShapes()
}

func (m *Model) ChangeShapeFillColor(s shapes.Shape, c color.Color) {
	s.Common().SetFillColor(c)
	m.notifyShapes()
}

func (m *Model) ChangeShapeBorderWidth(s shapes.Shape, width int) {
	s.Common().SetBorderWidth(width)
	m.notifyShapes()
}

// RotateShape rotates the local shape with the given id. Unknown ids are
// ignored without notification.
func (m *Model) RotateShape(id string, degrees int) {
	s := m.shapes.FindByID(id)
	if s == nil {
		return
	}
	s.Rotate(degrees)
	m.notifyShapes()
}

// MoveShape translates s and notifies.
func (m *Model) MoveShape(s shapes.Shape, dx, dy float64) {
	s.Move(dx, dy)
	m.notifyShapes()
}

// ResizeShape scales s and notifies.
func (m *Model) ResizeShape(s shapes.Shape, factor float64) {
	s.Resize(factor)
	m.notifyShapes()
}

// NotifyShapeChanged tells observers that s was mutated directly.
func (m *Model) NotifyShapeChanged(shapes.Shape) {
	m.notifyShapes()
}

// SelectShape selects the local shape with the given id, or clears the
// selection when there is none. Observers are notified either way.
func (m *Model) SelectShape(id string) {
	old := m.selected
	m.selected = m.shapes.FindByID(id)
	m.notifier.Fire(PropSelectedShape, old, m.selected)
}

// SetSelected selects s directly, for shapes that have no id yet.
func (m *Model) SetSelected(s shapes.Shape) {
	old := m.selected
	m.selected = s
	m.notifier.Fire(PropSelectedShape, old, s)
}

func (m *Model) SelectedShape() shapes.Shape { return m.selected }

func (m *Model) SetFill(fill bool) {
	old := m.fill
	m.fill = fill
	m.notifier.Fire(PropFill, old, fill)
}

func (m *Model) Fill() bool { return m.fill }

func (m *Model) SetCurrentColor(c color.Color) {
	old := m.currentColor
	m.currentColor = c
	m.notifier.Fire(PropCurrentColor, old, c)
}

func (m *Model) CurrentColor() color.Color { return m.currentColor }

func (m *Model) SetCurrentShapeType(k shapes.Kind) {
	old := m.currentKind
	m.currentKind = k
	m.notifier.Fire(PropCurrentShapeType, old, k)
}

func (m *Model) CurrentShapeType() shapes.Kind { return m.currentKind }

// ClearShapes empties both collections. History is left alone, so later
// undo and redo calls can bring cleared shapes back.
func (m *Model) ClearShapes() {
	m.shapes.Clear()
	m.fromServer.Clear()
	m.notifyShapes()
}

// ClearServerShapes empties only the server-mirrored shapes.
func (m *Model) ClearServerShapes() {
	m.fromServer.Clear()
	m.notifyShapes()
}

// Shapes returns the local shapes in insertion order.
func (m *Model) Shapes() []shapes.Shape { return m.shapes.All() }

// ShapesFromServer returns the mirrored shapes in insertion order.
func (m *Model) ShapesFromServer() []shapes.Shape { return m.fromServer.All() }

// ShapeAt returns the top-most local shape containing (x, y), or nil.
func (m *Model) ShapeAt(x, y float64) shapes.Shape { return m.shapes.At(x, y) }
