package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListQuery holds the common listing parameters. Zero values and the "all"
// placeholder are omitted from the query string, matching what the backend
// expects for unfiltered requests.
type ListQuery struct {
	Page        int
	Limit       int
	Search      string
	Status      string
	Category    string
	Subcategory string
}

// Values encodes the query, dropping empty and "all" entries.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	set := func(key, val string) {
		if val != "" && val != "all" {
			v.Set(key, val)
		}
	}
	set("search", q.Search)
	set("status", q.Status)
	set("category", q.Category)
	set("subcategory", q.Subcategory)
	return v
}

func pageMeta(env *Envelope) (page, pages int) {
	if env.Pagination != nil {
		return env.Pagination.Page, env.Pagination.Pages
	}
	return 0, 0
}

// MyProducts returns the vendor's own selection records, paginated. The
// vendor is resolved server-side from the bearer token.
func (c *Client) MyProducts(ctx context.Context, token string, q ListQuery) (*VendorProductList, error) {
	env, err := c.get(ctx, "/vendor-products/my-products", token, q.Values())
	if err != nil {
		return nil, err
	}
	var items []VendorProduct
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode vendor products: %w", err)
		}
	}
	page, pages := pageMeta(env)
	return &VendorProductList{Items: items, Total: env.Total, Page: page, Pages: pages}, nil
}

// AvailableProducts returns marketplace products open for selection from
// the vendor-scoped endpoint. Items may arrive pre-annotated.
func (c *Client) AvailableProducts(ctx context.Context, token string, q ListQuery) (*ProductList, error) {
	env, err := c.get(ctx, "/vendor-products/available", token, q.Values())
	if err != nil {
		return nil, err
	}
	var items []AnnotatedProduct
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode available products: %w", err)
		}
	}
	page, pages := pageMeta(env)
	return &ProductList{Items: items, Total: env.Total, Page: page, Pages: pages}, nil
}

// Products returns the general marketplace listing. The data payload shape
// varies historically, so it is normalized before use.
func (c *Client) Products(ctx context.Context, token string, q ListQuery) (*ProductList, error) {
	env, err := c.get(ctx, "/products", token, q.Values())
	if err != nil {
		return nil, err
	}
	items, _ := NormalizeProducts(env.Data)
	page, pages := pageMeta(env)
	return &ProductList{Items: items, Total: env.Total, Page: page, Pages: pages}, nil
}

// Select creates a VendorProduct for the given marketplace product. The
// backend enforces the one-selection-per-product invariant.
func (c *Client) Select(ctx context.Context, token string, req SelectRequest) (*VendorProduct, error) {
	env, err := c.do(ctx, http.MethodPost, "/vendor-products/select", token, nil, req)
	if err != nil {
		return nil, err
	}
	var vp VendorProduct
	if err := json.Unmarshal(env.Data, &vp); err != nil {
		return nil, fmt.Errorf("failed to decode vendor product: %w", err)
	}
	return &vp, nil
}

// RemoveSelection deletes a selection record by its VendorProduct id.
func (c *Client) RemoveSelection(ctx context.Context, token, vendorProductID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/vendor-products/"+vendorProductID, token, nil, nil)
	return err
}

// CreateOwnProduct submits a vendor-authored product for approval.
func (c *Client) CreateOwnProduct(ctx context.Context, token string, payload map[string]any) (*OwnProduct, error) {
	env, err := c.do(ctx, http.MethodPost, "/vendor/products", token, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeOwnProduct(env.Data)
}

// UpdateOwnProduct updates a vendor-authored product.
func (c *Client) UpdateOwnProduct(ctx context.Context, token, id string, payload map[string]any) (*OwnProduct, error) {
	env, err := c.do(ctx, http.MethodPut, "/vendor/products/"+id, token, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeOwnProduct(env.Data)
}

// GetOwnProduct fetches a single vendor-authored product.
func (c *Client) GetOwnProduct(ctx context.Context, token, id string) (*OwnProduct, error) {
	env, err := c.get(ctx, "/vendor/products/"+id, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeOwnProduct(env.Data)
}

// DeleteOwnProduct deletes a vendor-authored product.
func (c *Client) DeleteOwnProduct(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/vendor/products/"+id, token, nil, nil)
	return err
}

// MySubmissions returns the vendor's authored products with their approval
// status, paginated.
func (c *Client) MySubmissions(ctx context.Context, token string, q ListQuery) (*OwnProductList, error) {
	env, err := c.get(ctx, "/products/vendor/my-submissions", token, q.Values())
	if err != nil {
		return nil, err
	}
	var items []OwnProduct
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode submissions: %w", err)
		}
	}
	page, pages := pageMeta(env)
	return &OwnProductList{Items: items, Total: env.Total, Page: page, Pages: pages}, nil
}

// Categories returns the category taxonomy.
func (c *Client) Categories(ctx context.Context, token string) ([]Category, error) {
	env, err := c.get(ctx, "/categories", token, nil)
	if err != nil {
		return nil, err
	}
	var items []Category
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode categories: %w", err)
		}
	}
	return items, nil
}

// Subcategories returns the subcategories of a category.
func (c *Client) Subcategories(ctx context.Context, token, categoryID string) ([]Subcategory, error) {
	env, err := c.get(ctx, "/categories/"+categoryID+"/subcategories", token, nil)
	if err != nil {
		return nil, err
	}
	var items []Subcategory
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, fmt.Errorf("failed to decode subcategories: %w", err)
		}
	}
	return items, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token  string  `json:"token"`
	Vendor *Vendor `json:"vendor"`
	User   *Vendor `json:"user"`
}

// Login exchanges vendor credentials for a marketplace API token.
func (c *Client) Login(ctx context.Context, email, password string) (string, *Vendor, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		return "", nil, err
	}
	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	vendor := data.Vendor
	if vendor == nil {
		vendor = data.User
	}
	if data.Token == "" || vendor == nil {
		return "", nil, &APIError{Status: http.StatusOK, Message: "login response missing token or profile"}
	}
	return data.Token, vendor, nil
}

func decodeOwnProduct(data json.RawMessage) (*OwnProduct, error) {
	var p OwnProduct
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &p, nil
}
