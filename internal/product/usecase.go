package product

import (
	"context"

	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id, locale string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	UpdateStatus(ctx context.Context, id string, status model.ProductStatus) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)

	// Attribute binder
	ProductAttributes(ctx context.Context, productID, locale string) ([]dto.ProductAttribute, error)
	SetAttributeValue(ctx context.Context, productID, attributeID string, value interface{}) ([]dto.ProductAttribute, error)
	// UpdateAttributes applies the whole set or nothing, and enforces the
	// required attributes of the product's category.
	UpdateAttributes(ctx context.Context, productID string, inputs []dto.AttributeValueInput) ([]dto.ProductAttribute, error)
	// RemoveAttributeValue is idempotent; removing an absent value is a
	// no-op.
	RemoveAttributeValue(ctx context.Context, productID, attributeID string) error

	// Variants
	Variants(ctx context.Context, productID string) ([]model.ProductVariant, error)
	AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.ProductVariant, error)
	UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.ProductVariant, error)
	DeleteVariant(ctx context.Context, productID, variantID string) error
}

// SchemaRegistry is the slice of the attribute registry the binder needs.
type SchemaRegistry interface {
	EffectiveAttributes(ctx context.Context, categoryID string) ([]model.Attribute, error)
	GetAttribute(ctx context.Context, id string) (*model.Attribute, error)
	AllowedValues(ctx context.Context, attributeID string) ([]model.AttributeAllowedValue, error)
}

// Translator resolves localized text; absence means the canonical value
// stands.
type Translator interface {
	Resolve(ctx context.Context, entityType model.EntityType, entityID, locale, field string) (*string, error)
	ResolveAll(ctx context.Context, entityType model.EntityType, entityID, locale string) (map[string]string, error)
}
