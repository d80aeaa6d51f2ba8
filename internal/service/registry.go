package service

import (
	"sync"

	"github.com/lalajistore/vendor-gateway/internal/models"
)

// SelectionRegistry hands out the per-vendor selection set shared by the
// catalog and selection services. Sets live for the process lifetime and
// are rebuilt from the authoritative API on every listing.
type SelectionRegistry struct {
	mu   sync.Mutex
	sets map[string]*models.SelectionSet
}

// NewSelectionRegistry creates an empty registry.
func NewSelectionRegistry() *SelectionRegistry {
	return &SelectionRegistry{sets: make(map[string]*models.SelectionSet)}
}

// ForVendor returns the vendor's selection set, creating it on first use.
func (r *SelectionRegistry) ForVendor(vendorID string) *models.SelectionSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sets[vendorID]
	if !ok {
		set = models.NewSelectionSet()
		r.sets[vendorID] = set
	}
	return set
}

// Drop discards a vendor's set (on logout / forced invalidation).
func (r *SelectionRegistry) Drop(vendorID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, vendorID)
}
