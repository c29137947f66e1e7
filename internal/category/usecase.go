package category

import (
	"context"

	"github.com/eliasbui/asia-shop/internal/category/dto"
	"github.com/eliasbui/asia-shop/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	GetCategory(ctx context.Context, id, locale string) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	// Children returns direct children only, in display order.
	Children(ctx context.Context, id, locale string) ([]model.Category, error)
	// Ancestors returns the chain root-first, excluding the category itself.
	Ancestors(ctx context.Context, id, locale string) ([]model.Category, error)
	Move(ctx context.Context, id string, newParentID *string) (*model.Category, error)
}

// Translator decorates entities with locale-specific text. Implemented by
// the translation usecase; absence of a translation means the canonical
// field value stands.
type Translator interface {
	ResolveAll(ctx context.Context, entityType model.EntityType, entityID, locale string) (map[string]string, error)
}
