package models

import (
	"github.com/go-playground/validator/v10"

	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// weightUnits are the units the marketplace accepts for product weight.
var weightUnits = map[string]bool{"kg": true, "g": true, "lb": true, "oz": true}

// RegisterValidations installs the form-level validation rules on gin's
// binding validator. Called once at startup.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("weightunit", func(fl validator.FieldLevel) bool {
		return weightUnits[fl.Field().String()]
	})
}

// OwnProductForm is the flat editable representation of a vendor-authored
// product. The dashboard edits flat fields; the backend stores nested
// pricing/weight substructures. Payload and FormFromProduct translate
// between the two.
type OwnProductForm struct {
	Name             string   `json:"name" binding:"required"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	SKU              string   `json:"sku"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	Status           string   `json:"status"`
	Price            float64  `json:"price" binding:"omitempty,gt=0"`
	CostPrice        float64  `json:"costPrice" binding:"omitempty,gte=0"`
	SuggestedMRP     float64  `json:"suggestedMRP" binding:"omitempty,gte=0"`
	MinSellingPrice  float64  `json:"minSellingPrice" binding:"omitempty,gte=0"`
	Weight           float64  `json:"weight" binding:"omitempty,gt=0"`
	WeightUnit       string   `json:"weightUnit" binding:"omitempty,weightunit"`
	Tags             []string `json:"tags"`
}

// Payload nests the flat fields into the backend submission shape,
// dropping zero values so partial updates do not overwrite with blanks.
func (f *OwnProductForm) Payload() map[string]any {
	payload := map[string]any{
		"name": f.Name,
	}
	setStr := func(key, val string) {
		if val != "" {
			payload[key] = val
		}
	}
	setStr("description", f.Description)
	setStr("shortDescription", f.ShortDescription)
	setStr("sku", f.SKU)
	setStr("category", f.Category)
	setStr("subcategory", f.Subcategory)
	setStr("status", f.Status)

	pricing := map[string]any{}
	if f.Price > 0 {
		pricing["sellingPrice"] = f.Price
	}
	if f.CostPrice > 0 {
		pricing["costPrice"] = f.CostPrice
	}
	if f.SuggestedMRP > 0 {
		pricing["suggestedMRP"] = f.SuggestedMRP
	}
	if f.MinSellingPrice > 0 {
		pricing["minSellingPrice"] = f.MinSellingPrice
	}
	if len(pricing) > 0 {
		payload["pricing"] = pricing
	}

	if f.Weight > 0 {
		unit := f.WeightUnit
		if unit == "" {
			unit = "kg"
		}
		payload["weight"] = map[string]any{"value": f.Weight, "unit": unit}
	}

	if len(f.Tags) > 0 {
		payload["tags"] = f.Tags
	}
	return payload
}

// FormFromProduct flattens a fetched record into editable fields,
// hydrating an edit form.
func FormFromProduct(p *marketplace.OwnProduct) *OwnProductForm {
	return &OwnProductForm{
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		SKU:              p.SKU,
		Category:         p.Category.ID,
		Subcategory:      p.Subcategory,
		Status:           p.Status,
		Price:            p.Pricing.SellingPrice,
		CostPrice:        p.Pricing.CostPrice,
		SuggestedMRP:     p.Pricing.SuggestedMRP,
		MinSellingPrice:  p.Pricing.MinSellingPrice,
		Weight:           p.Weight.Value,
		WeightUnit:       p.Weight.Unit,
		Tags:             p.Tags,
	}
}
