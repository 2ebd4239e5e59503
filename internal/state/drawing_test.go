package state

import (
	"testing"

	"ShapeBoard/internal/shapes"
)

type eventLog struct{ events []Event }

func (l *eventLog) listen(e Event) { l.events = append(l.events, e) }

func (l *eventLog) names() []string {
	out := make([]string, len(l.events))
	for i, e := range l.events {
		out[i] = e.Name
	}
	return out
}

func newObservedModel(t *testing.T) (*Model, *eventLog) {
	t.Helper()
	m := NewModel()
	log := &eventLog{}
	m.AddObserver(log.listen)
	log.events = nil
	return m, log
}

func sameShapes(a, b []shapes.Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddObserverSendsCurrentShapes(t *testing.T) {
	m := NewModel()
	s := rect()
	m.AddShape(s)

	log := &eventLog{}
	m.AddObserver(log.listen)
	if len(log.events) != 1 || log.events[0].Name != PropShapes {
		t.Fatalf("events = %v", log.names())
	}
	if got := log.events[0].New.([]shapes.Shape); !sameShapes(got, []shapes.Shape{s}) {
		t.Fatalf("initial shapes = %v", got)
	}
}

func TestAddThenUndoRestoresCollection(t *testing.T) {
	m, log := newObservedModel(t)
	existing := rect()
	m.AddShape(existing)
	before := m.Shapes()

	m.AddShape(rect())
	m.Undo()
	if !sameShapes(m.Shapes(), before) {
		t.Fatalf("shapes after undo = %v, want %v", m.Shapes(), before)
	}
	if len(log.events) != 3 {
		t.Fatalf("expected a notification per add and undo, got %v", log.names())
	}
}

func TestAddUndoRedoRestoresShape(t *testing.T) {
	m := NewModel()
	s := rect()
	m.AddShape(s)
	m.Undo()
	m.Redo()
	if !sameShapes(m.Shapes(), []shapes.Shape{s}) {
		t.Fatalf("shapes = %v", m.Shapes())
	}
}

func TestUndoRedoSequence(t *testing.T) {
	m := NewModel()
	a, b, c := rect(), rect(), rect()
	m.AddShape(a)
	m.AddShape(b)
	m.AddShape(c)

	m.Undo()
	m.Undo()
	if !sameShapes(m.Shapes(), []shapes.Shape{a}) {
		t.Fatalf("after two undos: %v", m.Shapes())
	}
	m.Redo()
	if !sameShapes(m.Shapes(), []shapes.Shape{a, b}) {
		t.Fatalf("after redo: %v", m.Shapes())
	}
	m.Undo()
	m.Undo()
	m.Undo()
	if len(m.Shapes()) != 0 || m.CanUndo() {
		t.Fatal("everything should be undone")
	}
	m.Redo()
	m.Redo()
	m.Redo()
	if !sameShapes(m.Shapes(), []shapes.Shape{a, b, c}) {
		t.Fatalf("after redoing all: %v", m.Shapes())
	}
}

func TestAddClearsRedo(t *testing.T) {
	m := NewModel()
	a, b := rect(), rect()
	m.AddShape(a)
	m.Undo()
	m.AddShape(b)

	if m.CanRedo() {
		t.Fatal("redo stack should be empty")
	}
	m.Redo()
	if !sameShapes(m.Shapes(), []shapes.Shape{b}) {
		t.Fatalf("redo should be a no-op, shapes = %v", m.Shapes())
	}
}

func TestUndoRedoOnEmptyStacksDoNotNotify(t *testing.T) {
	m, log := newObservedModel(t)
	m.Undo()
	m.Redo()
	if len(log.events) != 0 {
		t.Fatalf("unexpected events %v", log.names())
	}
}

func TestRemoveShape(t *testing.T) {
	m, log := newObservedModel(t)
	a, b := rect(), rect()
	m.AddShape(a)
	m.AddShape(b)
	log.events = nil

	m.RemoveShape(a)
	if !sameShapes(m.Shapes(), []shapes.Shape{b}) {
		t.Fatalf("shapes = %v", m.Shapes())
	}
	if len(log.events) != 1 {
		t.Fatalf("expected one notification, got %v", log.names())
	}
	for _, op := range m.History().UndoEntries() {
		if op.Shape == a {
			t.Fatal("history still references the removed shape")
		}
	}

	// The deletion is not undoable: undo takes back the add of b instead.
	m.Undo()
	if len(m.Shapes()) != 0 {
		t.Fatalf("shapes after undo = %v", m.Shapes())
	}
	m.Undo()
	if len(m.Shapes()) != 0 {
		t.Fatal("the removed shape must not come back")
	}
}

func TestRemoveAbsentShapeIsNoop(t *testing.T) {
	m, log := newObservedModel(t)
	a := rect()
	m.AddShape(a)
	log.events = nil

	m.RemoveShape(rect())
	if !sameShapes(m.Shapes(), []shapes.Shape{a}) || len(log.events) != 0 {
		t.Fatalf("state changed: shapes=%v events=%v", m.Shapes(), log.names())
	}
	if len(m.History().UndoEntries()) != 1 {
		t.Fatal("history changed")
	}
}

func TestAddShapeFromServer(t *testing.T) {
	m := NewModel()
	local, remote := rect(), rect()
	m.AddShape(local)
	m.Undo()
	m.AddShapeFromServer(remote)

	if len(m.Shapes()) != 0 {
		t.Fatal("server shapes must not land in the local collection")
	}
	if !sameShapes(m.ShapesFromServer(), []shapes.Shape{remote}) {
		t.Fatalf("server shapes = %v", m.ShapesFromServer())
	}
	if m.CanRedo() {
		t.Fatal("server add should clear redo")
	}

	m.Undo()
	if len(m.ShapesFromServer()) != 0 || len(m.Shapes()) != 0 {
		t.Fatal("undo should take the server shape out of the mirrored collection")
	}
	m.Redo()
	if !sameShapes(m.ShapesFromServer(), []shapes.Shape{remote}) || len(m.Shapes()) != 0 {
		t.Fatal("redo should put the server shape back where it came from")
	}
}

func TestDirectSettersAreNotUndoable(t *testing.T) {
	m := NewModel()
	s := rect()
	m.AddShape(s)

	m.ChangeShapeBorderWidth(s, 9)
	m.ChangeShapeBorderColor(s, shapes.Red)
	m.ChangeShapeFillColor(s, shapes.Blue)
	if len(m.History().UndoEntries()) != 1 {
		t.Fatal("setters must not push history")
	}

	m.Undo()
	if s.Common().BorderWidth != 9 {
		t.Fatal("undo must not revert the width change")
	}
	if len(m.Shapes()) != 0 {
		t.Fatal("undo should have reverted the add instead")
	}

	empty := NewModel()
	other := rect()
	empty.ChangeShapeBorderWidth(other, -3)
	empty.Undo()
	if other.Common().BorderWidth != -3 {
		t.Fatal("negative widths are stored and survive undo")
	}
}

func TestSettersNotifyShapes(t *testing.T) {
	m, log := newObservedModel(t)
	s := rect()
	m.ChangeShapeBorderColor(s, shapes.Red)
	m.ChangeShapeFillColor(s, nil)
	m.ChangeShapeBorderWidth(s, 2)
	m.NotifyShapeChanged(s)
	for _, name := range log.names() {
		if name != PropShapes {
			t.Fatalf("unexpected event %q", name)
		}
	}
	if len(log.events) != 4 {
		t.Fatalf("events = %v", log.names())
	}
}

func TestRotateShape(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		degrees int
		want    int
		events  int
	}{
		{"valid", "s1", 90, 90, 1},
		{"negative", "s1", -45, -45, 1},
		{"over 360", "s1", 450, 90, 1},
		{"unknown id", "nope", 90, 0, 0},
		{"empty id", "", 90, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			s := rect()
			s.Common().ID = "s1"
			m.AddShape(s)
			log := &eventLog{}
			m.AddObserver(log.listen)
			log.events = nil

			m.RotateShape(tt.id, tt.degrees)
			if s.Common().Rotation != tt.want {
				t.Fatalf("rotation = %d, want %d", s.Common().Rotation, tt.want)
			}
			if len(log.events) != tt.events {
				t.Fatalf("events = %v", log.names())
			}
		})
	}
}

func TestSelectShape(t *testing.T) {
	m, log := newObservedModel(t)
	a, b := rect(), rect()
	a.Common().ID = "a"
	b.Common().ID = "b"
	m.AddShape(a)
	m.AddShape(b)
	log.events = nil

	m.SelectShape("a")
	if m.SelectedShape() != a {
		t.Fatal("a should be selected")
	}
	m.SelectShape("b")
	if m.SelectedShape() != b {
		t.Fatal("b should be selected")
	}
	m.SelectShape("nonexistent")
	if m.SelectedShape() != nil {
		t.Fatal("selection should be cleared")
	}

	if len(log.events) != 3 {
		t.Fatalf("events = %v", log.names())
	}
	last := log.events[2]
	if last.Name != PropSelectedShape || last.New != nil || last.Old != b {
		t.Fatalf("last event = %+v", last)
	}
}

func TestRemovedSelectionIsKept(t *testing.T) {
	m := NewModel()
	a := rect()
	a.Common().ID = "a"
	m.AddShape(a)
	m.SelectShape("a")
	m.RemoveShape(a)
	if m.SelectedShape() != a {
		t.Fatal("removing a shape does not touch the selection")
	}
}

func TestDrawingDefaults(t *testing.T) {
	m, log := newObservedModel(t)
	if m.Fill() || !shapes.SameColor(m.CurrentColor(), shapes.Black) || m.CurrentShapeType() != shapes.KindLine {
		t.Fatal("unexpected defaults")
	}

	m.SetFill(true)
	m.SetCurrentColor(shapes.Red)
	m.SetCurrentShapeType(shapes.KindDiamond)
	m.SetCurrentColor(nil)

	if !m.Fill() || m.CurrentColor() != nil || m.CurrentShapeType() != shapes.KindDiamond {
		t.Fatal("defaults not stored")
	}
	want := []Event{
		{Name: PropFill, Old: false, New: true},
		{Name: PropCurrentColor, Old: shapes.Black, New: shapes.Red},
		{Name: PropCurrentShapeType, Old: shapes.KindLine, New: shapes.KindDiamond},
	}
	for i, w := range want {
		if log.events[i] != w {
			t.Fatalf("event %d = %+v, want %+v", i, log.events[i], w)
		}
	}
	if e := log.events[3]; e.Name != PropCurrentColor || e.New != nil {
		t.Fatalf("nil color event = %+v", e)
	}
}

func TestClearShapes(t *testing.T) {
	m, log := newObservedModel(t)
	a := rect()
	m.AddShape(a)
	m.AddShapeFromServer(rect())
	log.events = nil

	m.ClearShapes()
	if len(m.Shapes()) != 0 || len(m.ShapesFromServer()) != 0 {
		t.Fatal("both collections should be empty")
	}
	if len(log.events) != 1 || log.events[0].Name != PropShapes {
		t.Fatalf("events = %v", log.names())
	}
	if len(m.History().UndoEntries()) != 2 {
		t.Fatal("history is not cleared")
	}

	// The stale entry for the server shape is undone first; then the
	// add of a is undone, which finds nothing to remove. Redo brings a
	// back.
	m.Undo()
	m.Undo()
	m.Redo()
	if !sameShapes(m.Shapes(), []shapes.Shape{a}) {
		t.Fatalf("redo after clear should reintroduce the shape, got %v", m.Shapes())
	}
}

func TestClearServerShapes(t *testing.T) {
	m := NewModel()
	a := rect()
	m.AddShape(a)
	m.AddShapeFromServer(rect())
	m.ClearServerShapes()
	if !sameShapes(m.Shapes(), []shapes.Shape{a}) || len(m.ShapesFromServer()) != 0 {
		t.Fatal("only server shapes should be cleared")
	}
}

func TestReturnedShapesAreShared(t *testing.T) {
	m := NewModel()
	m.AddShape(shapes.NewRectangle(0, 0, 10, 10, shapes.Black, 1, nil))
	m.Shapes()[0].Move(5, 5)
	if m.Shapes()[0].Common().X != 5 {
		t.Fatal("mutating a returned shape should mutate the model")
	}
}

func TestShapeAtAndMoveResize(t *testing.T) {
	m, log := newObservedModel(t)
	s := shapes.NewRectangle(0, 0, 10, 10, shapes.Black, 1, nil)
	m.AddShape(s)
	if m.ShapeAt(5, 5) != s || m.ShapeAt(50, 50) != nil {
		t.Fatal("ShapeAt mismatch")
	}
	log.events = nil
	m.MoveShape(s, 10, 0)
	m.ResizeShape(s, 2)
	r := s
	if r.X != 10 || r.Width != 20 || len(log.events) != 2 {
		t.Fatalf("move/resize: %+v events=%v", r, log.names())
	}
	if len(m.History().UndoEntries()) != 1 {
		t.Fatal("move and resize are not recorded")
	}
}
