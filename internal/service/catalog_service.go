package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/lalajistore/vendor-gateway/internal/models"
	"github.com/lalajistore/vendor-gateway/internal/session"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// CatalogService reconciles marketplace product pages with the vendor's
// selection records. Listing never fails hard: every outcome short of an
// expired session renders as a ListResult.
type CatalogService struct {
	api            CatalogAPI
	selections     *SelectionRegistry
	selectionLimit int
}

// NewCatalogService constructs a CatalogService. selectionLimit bounds the
// selection-list fetch on the fallback path; it must be large enough to
// cover all of a vendor's selections.
func NewCatalogService(api CatalogAPI, selections *SelectionRegistry, selectionLimit int) *CatalogService {
	if selectionLimit <= 0 {
		selectionLimit = 1000
	}
	return &CatalogService{api: api, selections: selections, selectionLimit: selectionLimit}
}

// ListAvailable returns a page of marketplace products annotated with the
// vendor's selection status.
//
// The vendor-scoped endpoint is tried first and its result returned as-is
// when populated. The general listing is the fallback, merged with the
// vendor's selection list. The only error ever returned is
// marketplace.ErrUnauthorized, which the caller must turn into a forced
// logout; every other failure is folded into the result.
func (s *CatalogService) ListAvailable(ctx context.Context, sess *session.Session, q marketplace.ListQuery) (*models.ListResult, error) {
	// Subcategory without a concrete category is meaningless.
	if q.Category == "" || q.Category == "all" {
		q.Subcategory = ""
	}

	set := s.selections.ForVendor(sess.VendorID)

	primary, primaryErr := s.api.AvailableProducts(ctx, sess.Token, q)
	if errors.Is(primaryErr, marketplace.ErrUnauthorized) {
		return nil, primaryErr
	}
	if primaryErr == nil {
		if len(primary.Items) > 0 {
			// Backend already annotated the page; keep the local set honest.
			s.absorbAnnotations(set, primary.Items)
			return listSuccess(primary), nil
		}
		// An empty page of a populated result set is a real zero-results
		// page, not an unpopulated endpoint. Only the latter falls back.
		if primary.Total > 0 {
			return listSuccess(primary), nil
		}
	} else {
		log.Warn().Err(primaryErr).Msg("vendor-scoped listing failed, trying general listing")
	}

	general, err := s.api.Products(ctx, sess.Token, q)
	if errors.Is(err, marketplace.ErrUnauthorized) {
		return nil, err
	}
	if err != nil {
		log.Error().Err(err).Msg("general listing failed")
		return &models.ListResult{Success: false, Items: []marketplace.AnnotatedProduct{}, Error: err.Error(), Page: 1}, nil
	}

	// Merge with the vendor's full selection list. A failure here degrades
	// to an unannotated page rather than aborting the listing.
	selected, err := s.fetchSelections(ctx, sess.Token)
	if errors.Is(err, marketplace.ErrUnauthorized) {
		return nil, err
	}
	if err != nil {
		log.Warn().Err(err).Msg("selection list unavailable, returning unannotated products")
	} else {
		set.Replace(selected)
	}
	set.Annotate(general.Items)

	return listSuccess(general), nil
}

// fetchSelections loads the vendor's full selection list and maps product
// id to selection record id.
func (s *CatalogService) fetchSelections(ctx context.Context, token string) (map[string]string, error) {
	list, err := s.api.MyProducts(ctx, token, marketplace.ListQuery{Limit: s.selectionLimit})
	if err != nil {
		return nil, err
	}
	selected := make(map[string]string, len(list.Items))
	for _, vp := range list.Items {
		if vp.Product.ID != "" {
			selected[vp.Product.ID] = vp.ID
		}
	}
	return selected, nil
}

// absorbAnnotations folds a pre-annotated page into the local set so that
// the idempotency guard sees server-confirmed selections.
func (s *CatalogService) absorbAnnotations(set *models.SelectionSet, items []marketplace.AnnotatedProduct) {
	for _, item := range items {
		if item.IsSelectedByVendor && item.VendorProductID != "" {
			set.Commit(item.ID, item.VendorProductID)
		}
	}
}

// MyProducts returns the vendor's selected inventory page and refreshes
// the local selection set from it.
func (s *CatalogService) MyProducts(ctx context.Context, sess *session.Session, q marketplace.ListQuery) (*marketplace.VendorProductList, error) {
	list, err := s.api.MyProducts(ctx, sess.Token, q)
	if err != nil {
		return nil, err
	}
	set := s.selections.ForVendor(sess.VendorID)
	for _, vp := range list.Items {
		if vp.Product.ID != "" {
			set.Commit(vp.Product.ID, vp.ID)
		}
	}
	return list, nil
}

func listSuccess(list *marketplace.ProductList) *models.ListResult {
	items := list.Items
	if items == nil {
		items = []marketplace.AnnotatedProduct{}
	}
	page := list.Page
	if page <= 0 {
		page = 1
	}
	return &models.ListResult{
		Success: true,
		Items:   items,
		Total:   list.Total,
		Page:    page,
		Pages:   list.Pages,
	}
}
