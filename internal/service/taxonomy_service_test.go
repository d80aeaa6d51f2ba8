package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalajistore/vendor-gateway/internal/service"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// fakeTaxonomyAPI implements service.TaxonomyAPI.
type fakeTaxonomyAPI struct {
	categories    []marketplace.Category
	subcategories map[string][]marketplace.Subcategory
	err           error

	categoryCalls    int
	subcategoryCalls int
}

func (f *fakeTaxonomyAPI) Categories(ctx context.Context, token string) ([]marketplace.Category, error) {
	f.categoryCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeTaxonomyAPI) Subcategories(ctx context.Context, token, categoryID string) ([]marketplace.Subcategory, error) {
	f.subcategoryCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.subcategories[categoryID], nil
}

func TestTaxonomyService_CategoriesCached(t *testing.T) {
	api := &fakeTaxonomyAPI{categories: []marketplace.Category{{ID: "cat1", Name: "Kitchen"}}}
	svc := service.NewTaxonomyService(api)

	first, err := svc.Categories(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = svc.Categories(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, api.categoryCalls, "warm cache serves without a fetch")
}

func TestTaxonomyService_SubcategoriesRequireConcreteCategory(t *testing.T) {
	api := &fakeTaxonomyAPI{}
	svc := service.NewTaxonomyService(api)

	for _, category := range []string{"", "all"} {
		subs, err := svc.Subcategories(context.Background(), "tok", category)
		require.NoError(t, err)
		assert.Empty(t, subs)
	}
	assert.Equal(t, 0, api.subcategoryCalls)
}

func TestTaxonomyService_RefreshSwapsSnapshot(t *testing.T) {
	api := &fakeTaxonomyAPI{
		categories: []marketplace.Category{{ID: "cat1", Name: "Kitchen"}},
		subcategories: map[string][]marketplace.Subcategory{
			"cat1": {{ID: "sub1", Name: "Mugs", Category: "cat1"}},
		},
	}
	svc := service.NewTaxonomyService(api)

	require.NoError(t, svc.Refresh(context.Background(), "tok"))

	subs, err := svc.Subcategories(context.Background(), "tok", "cat1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "sub1", subs[0].ID)
	assert.Equal(t, 1, api.subcategoryCalls, "served from the refreshed snapshot")
}

func TestTaxonomyService_RefreshFailureKeepsOldSnapshot(t *testing.T) {
	api := &fakeTaxonomyAPI{
		categories: []marketplace.Category{{ID: "cat1", Name: "Kitchen"}},
		subcategories: map[string][]marketplace.Subcategory{
			"cat1": {{ID: "sub1", Name: "Mugs"}},
		},
	}
	svc := service.NewTaxonomyService(api)
	require.NoError(t, svc.Refresh(context.Background(), "tok"))

	api.err = errors.New("marketplace down")
	require.Error(t, svc.Refresh(context.Background(), "tok"))

	categories, err := svc.Categories(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, categories, 1, "the old snapshot survives a failed refresh")
}
