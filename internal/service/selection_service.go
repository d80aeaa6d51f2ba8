package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/lalajistore/vendor-gateway/internal/session"
	"github.com/lalajistore/vendor-gateway/internal/sse"
	"github.com/lalajistore/vendor-gateway/internal/utils"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// SelectParams describes a request to take a marketplace product into the
// vendor's inventory.
type SelectParams struct {
	ProductID   string
	ProductName string
	Stock       int
	Notes       string
}

// SelectionService runs the select-into-inventory workflow: validation,
// the local idempotency guard, the two-phase selected-set commit, and the
// transient dashboard notices.
type SelectionService struct {
	api        CatalogAPI
	selections *SelectionRegistry
	notifier   sse.CatalogNotifier
}

// NewSelectionService constructs a SelectionService.
func NewSelectionService(api CatalogAPI, selections *SelectionRegistry, notifier sse.CatalogNotifier) *SelectionService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &SelectionService{api: api, selections: selections, notifier: notifier}
}

// Select validates and submits a selection. Invalid stock and an already
// selected or in-flight product are rejected locally, before any network
// call. On success the selected-set records the new VendorProduct id and a
// transient notice goes out; on failure local state is left untouched and
// the collaborator's message is surfaced verbatim.
func (s *SelectionService) Select(ctx context.Context, sess *session.Session, p SelectParams) (*marketplace.VendorProduct, error) {
	if p.ProductID == "" {
		return nil, utils.ErrNotFound
	}
	if p.Stock <= 0 {
		return nil, utils.ErrInvalidStock
	}

	set := s.selections.ForVendor(sess.VendorID)
	if err := set.Begin(p.ProductID); err != nil {
		return nil, err
	}

	vp, err := s.api.Select(ctx, sess.Token, marketplace.SelectRequest{
		ProductID: p.ProductID,
		Stock:     p.Stock,
		Notes:     p.Notes,
	})
	if err != nil {
		set.Abort(p.ProductID)
		if errors.Is(err, marketplace.ErrUnauthorized) {
			return nil, err
		}
		log.Error().Err(err).Str("product_id", p.ProductID).Msg("product selection failed")
		s.notifier.NotifySelectionFailed(sess.VendorID, p.ProductID, err.Error())
		return nil, err
	}

	set.Commit(p.ProductID, vp.ID)
	log.Info().Str("product_id", p.ProductID).Str("vendor_product_id", vp.ID).Msg("product selected")
	s.notifier.NotifySelectionConfirmed(sess.VendorID, p.ProductID, p.ProductName)
	return vp, nil
}

// Remove deletes a selection record and clears its selected-set entry.
func (s *SelectionService) Remove(ctx context.Context, sess *session.Session, vendorProductID string) error {
	if vendorProductID == "" {
		return utils.ErrNotFound
	}
	if err := s.api.RemoveSelection(ctx, sess.Token, vendorProductID); err != nil {
		return err
	}
	set := s.selections.ForVendor(sess.VendorID)
	if productID, ok := set.RemoveVendorProduct(vendorProductID); ok {
		log.Info().Str("product_id", productID).Str("vendor_product_id", vendorProductID).Msg("selection removed")
	}
	return nil
}
