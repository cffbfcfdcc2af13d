package events

import "sync"

// Listener receives the arguments passed to Trigger.
type Listener func(args ...any)

// Emitter is a minimal named-event publish/subscribe primitive. Listeners for
// one name run synchronously in registration order. The zero value is ready
// to use.
type Emitter struct {
	mu        sync.Mutex
	listeners map[string][]Listener
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[string][]Listener)}
}

// On registers fn for name. Registering the same listener twice makes it
// fire twice per Trigger.
func (e *Emitter) On(name string, fn Listener) {
	if e == nil || fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[name] = append(e.listeners[name], fn)
}

// Off removes every listener registered for the given names. With no names it
// removes every listener on the emitter.
func (e *Emitter) Off(names ...string) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(names) == 0 {
		e.listeners = make(map[string][]Listener)
		return
	}
	for _, name := range names {
		delete(e.listeners, name)
	}
}

// Trigger invokes every listener for name with args. Listeners added or
// removed while a trigger is running take effect on the next Trigger.
func (e *Emitter) Trigger(name string, args ...any) {
	if e == nil {
		return
	}
	e.mu.Lock()
	fns := append([]Listener(nil), e.listeners[name]...)
	e.mu.Unlock()

	for _, fn := range fns {
		fn(args...)
	}
}

// Count returns how many listeners are registered for name.
func (e *Emitter) Count(name string) int {
	if e == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[name])
}
