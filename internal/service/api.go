package service

import (
	"context"

	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// CatalogAPI is the slice of the marketplace client used by the catalog
// and selection services. Narrow interfaces keep the services testable
// against a fake marketplace.
type CatalogAPI interface {
	AvailableProducts(ctx context.Context, token string, q marketplace.ListQuery) (*marketplace.ProductList, error)
	Products(ctx context.Context, token string, q marketplace.ListQuery) (*marketplace.ProductList, error)
	MyProducts(ctx context.Context, token string, q marketplace.ListQuery) (*marketplace.VendorProductList, error)
	Select(ctx context.Context, token string, req marketplace.SelectRequest) (*marketplace.VendorProduct, error)
	RemoveSelection(ctx context.Context, token, vendorProductID string) error
}

// OwnCatalogAPI is the slice of the marketplace client used for
// vendor-authored products.
type OwnCatalogAPI interface {
	CreateOwnProduct(ctx context.Context, token string, payload map[string]any) (*marketplace.OwnProduct, error)
	UpdateOwnProduct(ctx context.Context, token, id string, payload map[string]any) (*marketplace.OwnProduct, error)
	GetOwnProduct(ctx context.Context, token, id string) (*marketplace.OwnProduct, error)
	DeleteOwnProduct(ctx context.Context, token, id string) error
	MySubmissions(ctx context.Context, token string, q marketplace.ListQuery) (*marketplace.OwnProductList, error)
}

// TaxonomyAPI is the slice of the marketplace client used for the
// category taxonomy.
type TaxonomyAPI interface {
	Categories(ctx context.Context, token string) ([]marketplace.Category, error)
	Subcategories(ctx context.Context, token, categoryID string) ([]marketplace.Subcategory, error)
}
