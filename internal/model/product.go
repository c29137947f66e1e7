package model

import "github.com/shopspring/decimal"

type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
	ProductSoldOut  ProductStatus = "SOLD_OUT"
)

func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductActive, ProductInactive, ProductSoldOut:
		return true
	}
	return false
}

type Product struct {
	BaseModel
	ShopID      string        `db:"shop_id" json:"shop_id"`
	CategoryID  *string       `db:"category_id" json:"category_id"` // Nullable
	SKU         string        `db:"sku" json:"sku"`
	Name        string        `db:"name" json:"name"`
	Description *string       `db:"description" json:"description"`
	Status      ProductStatus `db:"status" json:"status"`

	Variants []ProductVariant `db:"-" json:"variants,omitempty"` // Joined data
}

type ProductVariant struct {
	BaseModel
	ProductID    string           `db:"product_id" json:"product_id"`
	SKU          string           `db:"sku" json:"sku"`
	Name         string           `db:"name" json:"name"` // e.g. "Red - Large", "32GB - Black"
	Price        decimal.Decimal  `db:"price" json:"price"`
	ComparePrice *decimal.Decimal `db:"compare_price" json:"compare_price"`
	Weight       *decimal.Decimal `db:"weight" json:"weight"`
	Barcode      *string          `db:"barcode" json:"barcode"`
	ImageURL     *string          `db:"image_url" json:"image_url"`
	Position     int              `db:"position" json:"position"`
	Status       ProductStatus    `db:"status" json:"status"`
}
