package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalajistore/vendor-gateway/internal/models"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

func TestOwnProductForm_Payload(t *testing.T) {
	form := &models.OwnProductForm{
		Name:        "Handmade Mug",
		Description: "Ceramic",
		Category:    "cat1",
		Price:       120,
		CostPrice:   80,
		Weight:      0.4,
		Tags:        []string{"ceramic", "kitchen"},
	}

	payload := form.Payload()

	assert.Equal(t, "Handmade Mug", payload["name"])
	assert.Equal(t, "cat1", payload["category"])

	pricing, ok := payload["pricing"].(map[string]any)
	require.True(t, ok, "pricing fields nest under a pricing block")
	assert.Equal(t, 120.0, pricing["sellingPrice"])
	assert.Equal(t, 80.0, pricing["costPrice"])
	assert.NotContains(t, pricing, "suggestedMRP", "zero values are dropped")

	weight, ok := payload["weight"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0.4, weight["value"])
	assert.Equal(t, "kg", weight["unit"], "weight unit defaults to kg")

	assert.NotContains(t, payload, "sku")
	assert.NotContains(t, payload, "subcategory")
}

func TestOwnProductForm_PayloadMinimal(t *testing.T) {
	form := &models.OwnProductForm{Name: "Bare"}
	payload := form.Payload()

	assert.Equal(t, "Bare", payload["name"])
	assert.NotContains(t, payload, "pricing")
	assert.NotContains(t, payload, "weight")
	assert.NotContains(t, payload, "tags")
}

func TestFormFromProduct_RoundTrip(t *testing.T) {
	product := &marketplace.OwnProduct{
		ID:          "op1",
		Name:        "Handmade Mug",
		Description: "Ceramic",
		SKU:         "MUG-01",
		Category:    marketplace.Category{ID: "cat1", Name: "Kitchen"},
		Subcategory: "sub1",
		Status:      "active",
		Pricing: marketplace.OwnPricing{
			SellingPrice:    120,
			CostPrice:       80,
			MinSellingPrice: 100,
		},
		Weight: marketplace.OwnWeight{Value: 0.4, Unit: "kg"},
		Tags:   []string{"ceramic"},
	}

	form := models.FormFromProduct(product)

	assert.Equal(t, "Handmade Mug", form.Name)
	assert.Equal(t, "MUG-01", form.SKU)
	assert.Equal(t, "cat1", form.Category, "category flattens to its id")
	assert.Equal(t, 120.0, form.Price)
	assert.Equal(t, 100.0, form.MinSellingPrice)
	assert.Equal(t, 0.4, form.Weight)

	// Submitting the hydrated form reproduces the nested record.
	payload := form.Payload()
	pricing := payload["pricing"].(map[string]any)
	assert.Equal(t, 120.0, pricing["sellingPrice"])
	assert.Equal(t, 100.0, pricing["minSellingPrice"])
}
