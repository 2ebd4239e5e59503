package state

// Property names carried by change events.
const (
	PropShapes           = "shapes"
	PropSelectedShape    = "selectedShape"
	PropFill             = "fill"
	PropCurrentColor     = "currentColor"
	PropCurrentShapeType = "currentShapeType"
)

// Event describes a property change.
type Event struct {
	Name string
	Old  any
	New  any
}

// Listener receives change events.
type Listener func(Event)

// Notifier dispatches events to listeners synchronously, in the order they
// subscribed.
type Notifier struct {
	next      int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers l. The returned func unregisters it and is safe to
// call more than once.
func (n *Notifier) Subscribe(l Listener) (unsubscribe func()) {
	n.next++
	id := n.next
	n.listeners = append(n.listeners, subscription{id: id, fn: l})
	return func() {
		for i, s := range n.listeners {
			if s.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Fire delivers an event to every listener registered when Fire was
// called.
func (n *Notifier) Fire(name string, old, new any) {
	ev := Event{Name: name, Old: old, New: new}
	for _, s := range n.listeners {
		s.fn(ev)
	}
}

func (n *Notifier) Len() int { return len(n.listeners) }
