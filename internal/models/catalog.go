package models

import (
	"sync"

	"github.com/lalajistore/vendor-gateway/internal/utils"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// ListResult is the outcome of a catalog listing. It is always a rendered
// state: a failed fetch yields Success=false with an error message instead
// of an error value, so callers can present an empty/error view directly.
type ListResult struct {
	Success bool                           `json:"success"`
	Items   []marketplace.AnnotatedProduct `json:"items"`
	Total   int                            `json:"total"`
	Page    int                            `json:"page"`
	Pages   int                            `json:"pages"`
	Error   string                         `json:"error,omitempty"`
}

// SelectionSet tracks which marketplace products the vendor currently
// carries, keyed by product id, plus in-flight selection attempts. It is
// session-local UI state: the authoritative record is the remote
// VendorProduct collection, and the set is rebuilt from it on every
// listing.
//
// Selection follows a two-phase commit: Begin marks the product in flight,
// Commit records the vendor-product id, Abort clears the mark leaving the
// set untouched.
type SelectionSet struct {
	mu       sync.RWMutex
	selected map[string]string
	inflight map[string]struct{}
}

// NewSelectionSet creates an empty selection set.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{
		selected: make(map[string]string),
		inflight: make(map[string]struct{}),
	}
}

// Replace rebuilds the selected mapping from an authoritative fetch.
// In-flight marks survive: a concurrent selection attempt is still guarded.
func (s *SelectionSet) Replace(selected map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]string, len(selected))
	for productID, vendorProductID := range selected {
		s.selected[productID] = vendorProductID
	}
}

// VendorProductID returns the selection record id for a product, if selected.
func (s *SelectionSet) VendorProductID(productID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.selected[productID]
	return id, ok
}

// IsSelected reports whether the product is currently selected.
func (s *SelectionSet) IsSelected(productID string) bool {
	_, ok := s.VendorProductID(productID)
	return ok
}

// Begin marks a selection attempt in flight. It fails when the product is
// already selected or another attempt on it is pending, so no network call
// is made for either case.
func (s *SelectionSet) Begin(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[productID]; ok {
		return utils.ErrAlreadySelected
	}
	if _, ok := s.inflight[productID]; ok {
		return utils.ErrSelectionInFlight
	}
	s.inflight[productID] = struct{}{}
	return nil
}

// Commit records a confirmed selection and clears the in-flight mark.
func (s *SelectionSet) Commit(productID, vendorProductID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[productID] = vendorProductID
	delete(s.inflight, productID)
}

// Abort clears the in-flight mark without touching the selected mapping.
func (s *SelectionSet) Abort(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, productID)
}

// Remove drops a product from the selected mapping (after a confirmed
// remote removal).
func (s *SelectionSet) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, productID)
}

// RemoveVendorProduct drops the entry holding the given selection record
// id and reports which product it referred to.
func (s *SelectionSet) RemoveVendorProduct(vendorProductID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for productID, vpID := range s.selected {
		if vpID == vendorProductID {
			delete(s.selected, productID)
			return productID, true
		}
	}
	return "", false
}

// Annotate stamps selection status onto a product page in place.
func (s *SelectionSet) Annotate(items []marketplace.AnnotatedProduct) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range items {
		if vpID, ok := s.selected[items[i].ID]; ok {
			items[i].IsSelectedByVendor = true
			items[i].VendorProductID = vpID
		}
	}
}
