package service

import (
	"context"
	"sync"

	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// TaxonomyService serves the category taxonomy for the filter dropdowns.
// Reads prefer the in-memory snapshot; the taxonomy worker refreshes it
// periodically. Stale reads are acceptable for filter options.
type TaxonomyService struct {
	api TaxonomyAPI

	mu            sync.RWMutex
	categories    []marketplace.Category
	subcategories map[string][]marketplace.Subcategory
}

// NewTaxonomyService constructs a TaxonomyService.
func NewTaxonomyService(api TaxonomyAPI) *TaxonomyService {
	return &TaxonomyService{
		api:           api,
		subcategories: make(map[string][]marketplace.Subcategory),
	}
}

// Categories returns all categories, fetching on a cold cache.
func (s *TaxonomyService) Categories(ctx context.Context, token string) ([]marketplace.Category, error) {
	s.mu.RLock()
	cached := s.categories
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	items, err := s.api.Categories(ctx, token)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.categories = items
	s.mu.Unlock()
	return items, nil
}

// Subcategories returns the subcategories of a category. An empty or "all"
// category yields an empty list without a fetch: subcategory filtering is
// only meaningful under a concrete category.
func (s *TaxonomyService) Subcategories(ctx context.Context, token, categoryID string) ([]marketplace.Subcategory, error) {
	if categoryID == "" || categoryID == "all" {
		return []marketplace.Subcategory{}, nil
	}

	s.mu.RLock()
	cached, ok := s.subcategories[categoryID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	items, err := s.api.Subcategories(ctx, token, categoryID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.subcategories[categoryID] = items
	s.mu.Unlock()
	return items, nil
}

// Refresh refetches the whole taxonomy snapshot. Called by the taxonomy
// worker; the first error aborts the refresh leaving the old snapshot in
// place.
func (s *TaxonomyService) Refresh(ctx context.Context, token string) error {
	categories, err := s.api.Categories(ctx, token)
	if err != nil {
		return err
	}

	subcategories := make(map[string][]marketplace.Subcategory, len(categories))
	for _, c := range categories {
		subs, err := s.api.Subcategories(ctx, token, c.ID)
		if err != nil {
			return err
		}
		subcategories[c.ID] = subs
	}

	s.mu.Lock()
	s.categories = categories
	s.subcategories = subcategories
	s.mu.Unlock()
	return nil
}
