package category

import (
	"context"

	"github.com/eliasbui/asia-shop/internal/category/dto"
	"github.com/eliasbui/asia-shop/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	// FindByID returns nil when the id is unknown or soft-deleted.
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	FindChildren(ctx context.Context, parentID string) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	SoftDelete(ctx context.Context, id string) error
	HasChildren(ctx context.Context, id string) (bool, error)
	HasProducts(ctx context.Context, id string) (bool, error)
	// Move re-walks the ancestor chain of newParentID inside the same
	// transaction that flips the parent pointer, so a concurrent
	// conflicting move fails instead of corrupting the forest.
	Move(ctx context.Context, categoryID string, newParentID *string, maxDepth int) error
}
