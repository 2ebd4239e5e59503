package state

import (
	"log/slog"

	"ShapeBoard/internal/shapes"
)

// History holds the undo and redo stacks. The top of each stack is the
// last element.
type History struct {
	undo []Op
	redo []Op
}

// Record pushes op onto the undo stack and drops everything that could
// have been redone.
func (h *History) Record(op Op) {
	h.undo = append(h.undo, op)
	h.redo = h.redo[:0]
}

// Purge drops every entry that refers to s from both stacks.
func (h *History) Purge(s shapes.Shape) {
	h.undo = without(h.undo, s)
	h.redo = without(h.redo, s)
}

func without(ops []Op, s shapes.Shape) []Op {
	kept := ops[:0]
	for _, op := range ops {
		if op.Shape != s {
			kept = append(kept, op)
		}
	}
	clear(ops[len(kept):])
	return kept
}

// Undo reverses the newest undo entry against the collection chosen by
// pick, and moves the entry to the redo stack. It reports false when there
// was nothing to undo.
func (h *History) Undo(pick func(Source) *Collection) bool {
	op, ok := pop(&h.undo)
	if !ok {
		return false
	}
	target := pick(op.Source)
	switch op.Type {
	case OpShapeAdded:
		target.Remove(op.Shape)
	case OpShapeRemoved:
		target.Add(op.Shape)
	}
	h.redo = append(h.redo, op)
	Logger().Debug("undo", slog.String("op", string(op.Type)), slog.String("source", op.Source.String()))
	return true
}

// Redo replays the newest redo entry and moves it back to the undo stack.
func (h *History) Redo(pick func(Source) *Collection) bool {
	op, ok := pop(&h.redo)
	if !ok {
		return false
	}
	target := pick(op.Source)
	switch op.Type {
	case OpShapeAdded:
		target.Add(op.Shape)
	case OpShapeRemoved:
		target.Remove(op.Shape)
	}
	h.undo = append(h.undo, op)
	Logger().Debug("redo", slog.String("op", string(op.Type)), slog.String("source", op.Source.String()))
	return true
}

func pop(stack *[]Op) (Op, bool) {
	s := *stack
	if len(s) == 0 {
		return Op{}, false
	}
	op := s[len(s)-1]
	s[len(s)-1] = Op{}
	*stack = s[:len(s)-1]
	return op, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoEntries returns a copy of the undo stack, bottom first.
func (h *History) UndoEntries() []Op { return append([]Op(nil), h.undo...) }

// RedoEntries returns a copy of the redo stack, bottom first.
func (h *History) RedoEntries() []Op { return append([]Op(nil), h.redo...) }
