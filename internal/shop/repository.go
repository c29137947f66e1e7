package shop

import (
	"context"

	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/shop/dto"
)

type Repository interface {
	Create(ctx context.Context, s *model.Shop) error
	// FindByID returns nil when the shop is unknown or tombstoned.
	FindByID(ctx context.Context, id string) (*model.Shop, error)
	FindAll(ctx context.Context, filters *dto.ShopFilters) ([]model.Shop, int, error)
	Update(ctx context.Context, s *model.Shop) error
	SoftDelete(ctx context.Context, id string) error

	CountProductsByStatus(ctx context.Context, shopID string) (map[string]int, error)
	CountCategoriesUsed(ctx context.Context, shopID string) (int, error)
	FindCategoryIDsUsed(ctx context.Context, shopID string) ([]string, error)
}
