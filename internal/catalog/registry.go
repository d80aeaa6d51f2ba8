package catalog

import (
	"sync"
)

// ViewFactory builds a view bound to one vendor session.
type ViewFactory func(sessionID, vendorID string) *View

// Registry tracks the live catalog view of each dashboard session. A
// session has at most one view; reopening the screen replaces it.
type Registry struct {
	factory ViewFactory

	mu    sync.Mutex
	views map[string]*View
}

// NewRegistry constructs a Registry using the given factory.
func NewRegistry(factory ViewFactory) *Registry {
	return &Registry{factory: factory, views: make(map[string]*View)}
}

// Open creates (or replaces) the view for a session.
func (r *Registry) Open(sessionID, vendorID string) *View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.views[sessionID]; ok {
		old.Close()
	}
	v := r.factory(sessionID, vendorID)
	r.views[sessionID] = v
	return v
}

// Get returns the session's view, if open.
func (r *Registry) Get(sessionID string) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[sessionID]
	return v, ok
}

// Close tears down the session's view.
func (r *Registry) Close(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.views[sessionID]; ok {
		v.Close()
		delete(r.views, sessionID)
	}
}
