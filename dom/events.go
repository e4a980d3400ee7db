package dom

// EventClick is the only event type the kernel currently dispatches; the
// model allows arbitrary names.
const EventClick = "click"

// Event describes one dispatched interaction. Target is the element the
// event originated on, Current the element whose listener is running.
type Event struct {
	Type    string
	Target  Element
	Current Element
}

type Handler func(Event)

type listener struct {
	event string
	fn    Handler
}

// On registers a handler for the given event type on el. Handlers fire in
// registration order during dispatch.
func (el Element) On(event string, fn Handler) {
	if el.e == nil || el.d == nil || fn == nil {
		return
	}
	el.d.listeners[el.e] = append(el.d.listeners[el.e], listener{event: event, fn: fn})
}

// Dispatch synthesizes an event at el and bubbles it synchronously through
// every registered listener on el and its ancestors. Dispatching on a
// detached subtree bubbles to the subtree root.
func (el Element) Dispatch(event string) {
	if el.e == nil || el.d == nil {
		return
	}
	ev := Event{Type: event, Target: el}
	for cur := el.e; cur != nil; cur = cur.Parent() {
		registered := el.d.listeners[cur]
		if len(registered) == 0 {
			continue
		}
		// handlers may register new listeners while running
		snapshot := make([]listener, len(registered))
		copy(snapshot, registered)
		for _, l := range snapshot {
			if l.event != event {
				continue
			}
			ev.Current = Element{d: el.d, e: cur}
			l.fn(ev)
		}
	}
}

// DropListeners removes every listener registered on el and its subtree.
// Call it before discarding a rendered fragment that is being replaced.
func (d *Document) DropListeners(el Element) {
	if el.e == nil {
		return
	}
	delete(d.listeners, el.e)
	for _, child := range el.Children() {
		d.DropListeners(child)
	}
}
