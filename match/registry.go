package match

import (
	"fmt"
	"sort"
	"sync"

	"github.com/thekitchencoder/jspec/value"
)

// Handler is an operator's comparison logic: given the value found at a
// document path and the operand written in the query, it reports whether
// the value satisfies the operator (§4.1, §4.3).
type Handler func(documentValue, operand value.Value) bool

// Registry is a thread-safe, point-in-time lookup of operator name to
// [Handler]. Callers may register custom operators and unregister built-ins;
// a [Registry] obtained from [WithDefaults] may be freely mutated without
// affecting other Registry instances, since each instance owns its own map,
// which Register/Unregister modify under the write lock.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// Empty returns a Registry with no operators registered.
func Empty() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// WithDefaults returns a Registry pre-populated with the built-in operators
// listed in §4.3 ($eq, $ne, $gt, $gte, $lt, $lte, $in, $nin, $all, $size,
// $exists, $type, $regex, $elemMatch).
func WithDefaults() *Registry {
	reg := Empty()
	registerBuiltins(reg)

	return reg
}

// Register adds or replaces the handler for name. Returns an error wrapping
// [ErrInvalidArgument] if name is empty or handler is nil.
func (r *Registry) Register(name string, handler Handler) error {
	if name == "" {
		return fmt.Errorf("%w: operator name must not be empty", ErrInvalidArgument)
	}

	if handler == nil {
		return fmt.Errorf("%w: operator %q: handler must not be nil", ErrInvalidArgument, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[name] = handler

	return nil
}

// Unregister removes the handler for name, reporting whether an operator
// was actually removed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.handlers[name]
	delete(r.handlers, name)

	return ok
}

// Get returns the handler registered for name, a point-in-time snapshot
// taken under the read lock.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[name]

	return h, ok
}

// Contains reports whether name has a registered handler.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.handlers[name]

	return ok
}

// Size returns the number of registered operators.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers)
}

// IsEmpty reports whether the registry has no registered operators.
func (r *Registry) IsEmpty() bool {
	return r.Size() == 0
}

// AvailableOperators returns the registered operator names, sorted, taken
// as a point-in-time snapshot.
func (r *Registry) AvailableOperators() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// GetAll returns a shallow copy of the registry's name-to-handler map, a
// point-in-time snapshot safe for the caller to range over without holding
// any lock.
func (r *Registry) GetAll() map[string]Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Handler, len(r.handlers))
	for name, h := range r.handlers {
		out[name] = h
	}

	return out
}
