// Package event is a per-instance publish/subscribe hub with optional bubbling
// to a parent notifier.
package event

import (
	"errors"
	"sync"
)

var (
	ErrInvalidEvent   = errors.New("event name must be a non-empty string")
	ErrInvalidHandler = errors.New("event handler must not be nil")
	ErrInvalidTarget  = errors.New("bubble target must be an observable notifier")
)

// Handler receives the payload of a notification.
type Handler func(payload any)

// ListenerID identifies a single registration returned by Hub.On.
type ListenerID uint64

// Notifier accepts bubbled notifications.
type Notifier interface {
	Notify(name string, payload any)
}

type listener struct {
	id ListenerID
	fn Handler
}

// Hub dispatches notifications to registered handlers. The zero value is ready to use.
type Hub struct {
	mu        sync.Mutex
	next      ListenerID
	listeners map[string][]listener
	bubble    Notifier
}

// On registers fn for name. Registering the same function twice invokes it twice.
func (h *Hub) On(name string, fn Handler) (ListenerID, error) {
	if name == "" {
		return 0, ErrInvalidEvent
	}
	if fn == nil {
		return 0, ErrInvalidHandler
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.listeners == nil {
		h.listeners = make(map[string][]listener)
	}
	h.next++
	h.listeners[name] = append(h.listeners[name], listener{id: h.next, fn: fn})
	return h.next, nil
}

// Once registers fn for the next notification of name only.
func (h *Hub) Once(name string, fn Handler) (ListenerID, error) {
	if fn == nil {
		return 0, ErrInvalidHandler
	}

	var (
		id   ListenerID
		err  error
		once sync.Once
	)
	id, err = h.On(name, func(payload any) {
		once.Do(func() {
			h.Off(name, id)
			fn(payload)
		})
	})
	return id, err
}

// Off removes the given registrations for name, or all of them when no ids are passed.
func (h *Hub) Off(name string, ids ...ListenerID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	queue := h.listeners[name]
	if len(queue) == 0 {
		return
	}

	if len(ids) == 0 {
		delete(h.listeners, name)
		return
	}

	kept := make([]listener, 0, len(queue))
	for _, l := range queue {
		remove := false
		for _, id := range ids {
			if l.id == id {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, l)
		}
	}
	h.listeners[name] = kept
}

// Notify calls the handlers registered when it was invoked, then forwards to the bubble target.
func (h *Hub) Notify(name string, payload any) {
	h.mu.Lock()
	queue := append([]listener(nil), h.listeners[name]...)
	bubble := h.bubble
	h.mu.Unlock()

	for _, l := range queue {
		l.fn(payload)
	}

	if bubble != nil {
		bubble.Notify(name, payload)
	}
}

// SetBubbleTarget replaces the parent that receives a copy of every notification.
func (h *Hub) SetBubbleTarget(target Notifier) error {
	if target == nil {
		return ErrInvalidTarget
	}
	if hub, ok := target.(*Hub); ok && (hub == nil || hub == h) {
		return ErrInvalidTarget
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.bubble = target
	return nil
}

// ClearBubbleTarget detaches the parent.
func (h *Hub) ClearBubbleTarget() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bubble = nil
}

// Count returns the number of handlers registered for name.
func (h *Hub) Count(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners[name])
}
