package service

import (
	"context"

	"github.com/lalajistore/vendor-gateway/internal/models"
	"github.com/lalajistore/vendor-gateway/internal/session"
	"github.com/lalajistore/vendor-gateway/internal/utils"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// OwnCatalogService manages vendor-authored products. Each operation is a
// single round trip; the flat form fields are nested into the backend
// payload shape on submit and flattened back for editing.
type OwnCatalogService struct {
	api OwnCatalogAPI
}

// NewOwnCatalogService constructs an OwnCatalogService.
func NewOwnCatalogService(api OwnCatalogAPI) *OwnCatalogService {
	return &OwnCatalogService{api: api}
}

// Create submits a new vendor-authored product for approval.
func (s *OwnCatalogService) Create(ctx context.Context, sess *session.Session, form *models.OwnProductForm) (*marketplace.OwnProduct, error) {
	return s.api.CreateOwnProduct(ctx, sess.Token, form.Payload())
}

// Update replaces an existing vendor-authored product.
func (s *OwnCatalogService) Update(ctx context.Context, sess *session.Session, id string, form *models.OwnProductForm) (*marketplace.OwnProduct, error) {
	return s.api.UpdateOwnProduct(ctx, sess.Token, id, form.Payload())
}

// EditForm fetches a product and hydrates the flat edit form from its
// nested record.
func (s *OwnCatalogService) EditForm(ctx context.Context, sess *session.Session, id string) (*models.OwnProductForm, error) {
	p, err := s.api.GetOwnProduct(ctx, sess.Token, id)
	if err != nil {
		return nil, err
	}
	return models.FormFromProduct(p), nil
}

// Delete removes a vendor-authored product. The confirmed flag is the
// dashboard's confirmation step; without it no network call is made.
func (s *OwnCatalogService) Delete(ctx context.Context, sess *session.Session, id string, confirmed bool) error {
	if !confirmed {
		return utils.ErrDeleteNotConfirmed
	}
	return s.api.DeleteOwnProduct(ctx, sess.Token, id)
}

// Submissions lists the vendor's authored products with approval status.
func (s *OwnCatalogService) Submissions(ctx context.Context, sess *session.Session, q marketplace.ListQuery) (*marketplace.OwnProductList, error) {
	return s.api.MySubmissions(ctx, sess.Token, q)
}
