package shop

import (
	"context"

	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/shop/dto"
)

type UseCase interface {
	CreateShop(ctx context.Context, input *dto.CreateShopInput) (*model.Shop, error)
	GetShop(ctx context.Context, id, locale string) (*model.Shop, error)
	ListShops(ctx context.Context, filters *dto.ShopFilters) ([]model.Shop, int, error)
	UpdateShop(ctx context.Context, input *dto.UpdateShopInput) (*model.Shop, error)
	DeleteShop(ctx context.Context, id string) error
	Statistics(ctx context.Context, id string) (*dto.ShopStatistics, error)
	CategoriesUsed(ctx context.Context, id string) ([]string, error)
}

// Translator resolves localized shop fields; absence means the canonical
// value stands.
type Translator interface {
	ResolveAll(ctx context.Context, entityType model.EntityType, entityID, locale string) (map[string]string, error)
}
