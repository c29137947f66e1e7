package dto

import "github.com/eliasbui/asia-shop/internal/model"

// ProductAttribute pairs an attribute definition with the product's stored
// value(s), decoded for display. MULTISELECT attributes yield one display
// value per selected option.
type ProductAttribute struct {
	Attribute     model.Attribute               `json:"attribute"`
	Values        []model.ProductAttributeValue `json:"values"`
	DisplayValues []string                      `json:"display_values"`
}
