package product

import (
	"context"

	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	SoftDelete(ctx context.Context, id string) error
	SKUExists(ctx context.Context, shopID, sku, excludeID string) (bool, error)
	ShopExists(ctx context.Context, id string) (bool, error)
	CategoryExists(ctx context.Context, id string) (bool, error)

	// Variants
	CreateVariant(ctx context.Context, variant *model.ProductVariant) error
	FindVariantByID(ctx context.Context, id string) (*model.ProductVariant, error)
	FindVariantsByProduct(ctx context.Context, productID string) ([]model.ProductVariant, error)
	UpdateVariant(ctx context.Context, variant *model.ProductVariant) error
	SoftDeleteVariant(ctx context.Context, id string) error
	VariantSKUExists(ctx context.Context, productID, sku, excludeID string) (bool, error)

	// Attribute values. MULTISELECT attributes hold several rows per
	// (product, attribute); everything else at most one.
	FindValuesByProduct(ctx context.Context, productID string) ([]model.ProductAttributeValue, error)
	FindValues(ctx context.Context, productID, attributeID string) ([]model.ProductAttributeValue, error)
	// ReplaceValues soft-deletes the rows for the listed attributes and
	// inserts the new rows, all in one transaction.
	ReplaceValues(ctx context.Context, productID string, attributeIDs []string, rows []model.ProductAttributeValue) error
	// SoftDeleteValues is a no-op when no rows exist.
	SoftDeleteValues(ctx context.Context, productID, attributeID string) error
}
