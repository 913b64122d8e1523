package grauman

import "github.com/grauman/grauman/event"

// observable gives a facade its event surface.
type observable struct {
	hub event.Hub
}

// On subscribes fn to name.
func (o *observable) On(name string, fn event.Handler) (event.ListenerID, error) {
	return o.hub.On(name, fn)
}

// Off removes the given listeners of name, or all of them without ids.
func (o *observable) Off(name string, ids ...event.ListenerID) {
	o.hub.Off(name, ids...)
}

// Notify dispatches to the listeners and then to the bubble target.
func (o *observable) Notify(name string, payload any) {
	o.hub.Notify(name, payload)
}

// SetEventBubbleTarget forwards every event to target as well.
func (o *observable) SetEventBubbleTarget(target event.Notifier) error {
	return o.hub.SetBubbleTarget(target)
}

func (o *observable) ClearEventBubbleTarget() {
	o.hub.ClearBubbleTarget()
}

// relay adapts a function to event.Notifier.
type relay func(name string, payload any)

func (r relay) Notify(name string, payload any) {
	r(name, payload)
}
