package marketplace

import (
	"encoding/json"
	"time"
)

// Envelope is the standard response wrapper returned by every marketplace
// endpoint: {success, data, count?, total?, pagination?, error?/message?}.
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Count      int             `json:"count,omitempty"`
	Total      int             `json:"total,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
	Error      string          `json:"error,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// Pagination holds page metadata for list responses. Pages is the total
// number of pages for the query, Page the 1-indexed current page.
type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

// ErrMessage returns the server-provided error text, preferring the
// explicit error field over the generic message field.
func (e *Envelope) ErrMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// Category is a taxonomy entry used for catalog filtering.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Subcategory is a category-scoped taxonomy entry.
type Subcategory struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Pricing is the marketplace-owned price block of a product.
type Pricing struct {
	BasePrice          float64  `json:"basePrice"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
}

// Product is a marketplace-owned catalog entry. Immutable from the
// vendor's perspective.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Pricing     Pricing  `json:"pricing"`
	Images      []string `json:"images,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// AnnotatedProduct is a Product carrying the vendor's selection status.
// The vendor-scoped listing endpoint returns products already annotated;
// the reconciler produces the same shape for the fallback path.
type AnnotatedProduct struct {
	Product
	IsSelectedByVendor bool   `json:"isSelectedByVendor"`
	VendorProductID    string `json:"vendorProductId,omitempty"`
}

// ProductRef is a reference to a Product that the backend serializes
// either as a bare identifier or as a populated document.
type ProductRef struct {
	ID      string
	Product *Product
}

// UnmarshalJSON accepts both a quoted id and an embedded product object.
func (r *ProductRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}
	var p Product
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	r.Product = &p
	r.ID = p.ID
	return nil
}

// MarshalJSON mirrors the backend encoding: populated document when
// present, bare id otherwise.
func (r ProductRef) MarshalJSON() ([]byte, error) {
	if r.Product != nil {
		return json.Marshal(r.Product)
	}
	return json.Marshal(r.ID)
}

// VendorProduct is the join record representing a vendor's choice to carry
// a marketplace product. At most one exists per (vendor, product).
type VendorProduct struct {
	ID        string     `json:"_id"`
	Product   ProductRef `json:"product"`
	Stock     int        `json:"stock"`
	Notes     string     `json:"notes,omitempty"`
	Status    string     `json:"status,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
}

// OwnPricing is the nested pricing block of a vendor-authored product.
type OwnPricing struct {
	SellingPrice    float64 `json:"sellingPrice,omitempty"`
	CostPrice       float64 `json:"costPrice,omitempty"`
	SuggestedMRP    float64 `json:"suggestedMRP,omitempty"`
	MinSellingPrice float64 `json:"minSellingPrice,omitempty"`
}

// OwnWeight is the nested weight block of a vendor-authored product.
type OwnWeight struct {
	Value float64 `json:"value,omitempty"`
	Unit  string  `json:"unit,omitempty"`
}

// OwnProduct is a product record authored by the vendor, subject to its
// own approval lifecycle (pending → approved/rejected).
type OwnProduct struct {
	ID               string     `json:"_id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	ShortDescription string     `json:"shortDescription,omitempty"`
	SKU              string     `json:"sku,omitempty"`
	Category         Category   `json:"category"`
	Subcategory      string     `json:"subcategory,omitempty"`
	Status           string     `json:"status,omitempty"`
	ApprovalStatus   string     `json:"approvalStatus,omitempty"`
	Pricing          OwnPricing `json:"pricing"`
	Weight           OwnWeight  `json:"weight"`
	Tags             []string   `json:"tags,omitempty"`
	CreatedAt        time.Time  `json:"createdAt,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt,omitempty"`
}

// Vendor is the profile payload returned at login.
type Vendor struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SelectRequest is the body of POST /vendor-products/select.
type SelectRequest struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
	Notes     string `json:"notes,omitempty"`
}

// ProductList is a page of annotated marketplace products.
type ProductList struct {
	Items []AnnotatedProduct
	Total int
	Page  int
	Pages int
}

// VendorProductList is a page of the vendor's selection records.
type VendorProductList struct {
	Items []VendorProduct
	Total int
	Page  int
	Pages int
}

// OwnProductList is a page of vendor-authored products.
type OwnProductList struct {
	Items []OwnProduct
	Total int
	Page  int
	Pages int
}
