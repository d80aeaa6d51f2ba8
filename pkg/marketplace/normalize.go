package marketplace

import "encoding/json"

// ListShape tags the payload structure the general listing endpoint used.
// The endpoint historically returned either a bare product array or an
// object with a nested products field; anything else is treated as empty
// rather than silently coerced.
type ListShape int

const (
	ShapeArray ListShape = iota
	ShapeNested
	ShapeUnrecognized
)

type nestedProducts struct {
	Products []AnnotatedProduct `json:"products"`
}

// NormalizeProducts flattens the general listing data payload into an
// ordered product slice, reporting which shape was encountered.
func NormalizeProducts(data json.RawMessage) ([]AnnotatedProduct, ListShape) {
	if len(data) == 0 || string(data) == "null" {
		return nil, ShapeUnrecognized
	}

	var items []AnnotatedProduct
	if err := json.Unmarshal(data, &items); err == nil {
		return items, ShapeArray
	}

	var nested nestedProducts
	if err := json.Unmarshal(data, &nested); err == nil && nested.Products != nil {
		return nested.Products, ShapeNested
	}

	return nil, ShapeUnrecognized
}
