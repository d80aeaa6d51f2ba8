package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalajistore/vendor-gateway/internal/models"
	"github.com/lalajistore/vendor-gateway/internal/service"
	"github.com/lalajistore/vendor-gateway/internal/utils"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// fakeOwnCatalogAPI implements service.OwnCatalogAPI.
type fakeOwnCatalogAPI struct {
	createFn func(payload map[string]any) (*marketplace.OwnProduct, error)
	getFn    func(id string) (*marketplace.OwnProduct, error)

	deleteCalls int
	deletedID   string
}

func (f *fakeOwnCatalogAPI) CreateOwnProduct(ctx context.Context, token string, payload map[string]any) (*marketplace.OwnProduct, error) {
	if f.createFn == nil {
		return &marketplace.OwnProduct{ID: "op1"}, nil
	}
	return f.createFn(payload)
}

func (f *fakeOwnCatalogAPI) UpdateOwnProduct(ctx context.Context, token, id string, payload map[string]any) (*marketplace.OwnProduct, error) {
	return &marketplace.OwnProduct{ID: id}, nil
}

func (f *fakeOwnCatalogAPI) GetOwnProduct(ctx context.Context, token, id string) (*marketplace.OwnProduct, error) {
	if f.getFn == nil {
		return &marketplace.OwnProduct{ID: id}, nil
	}
	return f.getFn(id)
}

func (f *fakeOwnCatalogAPI) DeleteOwnProduct(ctx context.Context, token, id string) error {
	f.deleteCalls++
	f.deletedID = id
	return nil
}

func (f *fakeOwnCatalogAPI) MySubmissions(ctx context.Context, token string, q marketplace.ListQuery) (*marketplace.OwnProductList, error) {
	return &marketplace.OwnProductList{Items: []marketplace.OwnProduct{{ID: "op1", ApprovalStatus: "pending"}}, Total: 1}, nil
}

func TestOwnCatalogService_CreateNestsPayload(t *testing.T) {
	var gotPayload map[string]any
	api := &fakeOwnCatalogAPI{
		createFn: func(payload map[string]any) (*marketplace.OwnProduct, error) {
			gotPayload = payload
			return &marketplace.OwnProduct{ID: "op1"}, nil
		},
	}
	svc := service.NewOwnCatalogService(api)

	form := &models.OwnProductForm{Name: "Mug", Price: 120, CostPrice: 80}
	_, err := svc.Create(context.Background(), testSession(), form)
	require.NoError(t, err)

	pricing, ok := gotPayload["pricing"].(map[string]any)
	require.True(t, ok, "flat form fields nest on submit")
	assert.Equal(t, 120.0, pricing["sellingPrice"])
}

func TestOwnCatalogService_EditFormFlattens(t *testing.T) {
	api := &fakeOwnCatalogAPI{
		getFn: func(id string) (*marketplace.OwnProduct, error) {
			return &marketplace.OwnProduct{
				ID:       id,
				Name:     "Mug",
				Category: marketplace.Category{ID: "cat1", Name: "Kitchen"},
				Pricing:  marketplace.OwnPricing{SellingPrice: 120},
				Weight:   marketplace.OwnWeight{Value: 0.4, Unit: "kg"},
			}, nil
		},
	}
	svc := service.NewOwnCatalogService(api)

	form, err := svc.EditForm(context.Background(), testSession(), "op1")
	require.NoError(t, err)

	assert.Equal(t, "Mug", form.Name)
	assert.Equal(t, "cat1", form.Category)
	assert.Equal(t, 120.0, form.Price)
	assert.Equal(t, 0.4, form.Weight)
}

func TestOwnCatalogService_DeleteRequiresConfirmation(t *testing.T) {
	api := &fakeOwnCatalogAPI{}
	svc := service.NewOwnCatalogService(api)

	err := svc.Delete(context.Background(), testSession(), "op1", false)
	assert.ErrorIs(t, err, utils.ErrDeleteNotConfirmed)
	assert.Equal(t, 0, api.deleteCalls, "an unconfirmed delete never reaches the wire")

	require.NoError(t, svc.Delete(context.Background(), testSession(), "op1", true))
	assert.Equal(t, 1, api.deleteCalls)
	assert.Equal(t, "op1", api.deletedID)
}

func TestOwnCatalogService_Submissions(t *testing.T) {
	svc := service.NewOwnCatalogService(&fakeOwnCatalogAPI{})

	list, err := svc.Submissions(context.Background(), testSession(), marketplace.ListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "pending", list.Items[0].ApprovalStatus)
}
