package dto

import "github.com/shopspring/decimal"

// AttributeValueInput carries one raw attribute value from the transport
// layer. Value stays untyped here; the codec resolves it into a tagged
// variant before anything touches storage. MULTISELECT attributes may send
// an array of allowed-value ids.
type AttributeValueInput struct {
	AttributeID string
	Value       interface{}
}

type CreateProductInput struct {
	ShopID      string
	CategoryID  string // optional
	SKU         string
	Name        string
	Description string
	Attributes  []AttributeValueInput
}

type UpdateProductInput struct {
	ID          string
	CategoryID  string
	SKU         string
	Name        string
	Description string
}

type ProductFilters struct {
	ShopID      string
	CategoryID  string
	Status      string
	SearchQuery string
	Page        int
	PageSize    int
}

type CreateVariantInput struct {
	ProductID    string
	SKU          string
	Name         string
	Price        decimal.Decimal
	ComparePrice *decimal.Decimal
	Weight       *decimal.Decimal
	Barcode      string
	ImageURL     string
	Position     int
}

type UpdateVariantInput struct {
	ID           string
	ProductID    string
	SKU          string
	Name         string
	Price        decimal.Decimal
	ComparePrice *decimal.Decimal
	Weight       *decimal.Decimal
	Barcode      string
	ImageURL     string
	Position     int
	Status       string
}
