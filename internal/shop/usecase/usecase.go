package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/shop"
	"github.com/eliasbui/asia-shop/internal/shop/dto"
	"github.com/eliasbui/asia-shop/pkg/logger"
)

type shopUseCase struct {
	repo       shop.Repository
	translator shop.Translator
	logger     logger.ZapLogger
}

func NewShopUseCase(repo shop.Repository, translator shop.Translator, log logger.ZapLogger) shop.UseCase {
	return &shopUseCase{
		repo:       repo,
		translator: translator,
		logger:     log,
	}
}

func (uc *shopUseCase) CreateShop(ctx context.Context, input *dto.CreateShopInput) (*model.Shop, error) {
	now := time.Now()
	s := &model.Shop{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: input.Name,
	}
	applyOptional(s, input.Description, input.Address, input.Phone, input.Email, input.Website, input.LogoURL)

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *shopUseCase) GetShop(ctx context.Context, id, locale string) (*model.Shop, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.NotFound("shop", id)
	}

	uc.localize(ctx, s, locale)
	return s, nil
}

func (uc *shopUseCase) ListShops(ctx context.Context, filters *dto.ShopFilters) ([]model.Shop, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *shopUseCase) UpdateShop(ctx context.Context, input *dto.UpdateShopInput) (*model.Shop, error) {
	s, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.NotFound("shop", input.ID)
	}

	s.Name = input.Name
	s.Description = nil
	s.Address = nil
	s.Phone = nil
	s.Email = nil
	s.Website = nil
	s.LogoURL = nil
	applyOptional(s, input.Description, input.Address, input.Phone, input.Email, input.Website, input.LogoURL)
	s.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *shopUseCase) DeleteShop(ctx context.Context, id string) error {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return apperr.NotFound("shop", id)
	}
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *shopUseCase) Statistics(ctx context.Context, id string) (*dto.ShopStatistics, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.NotFound("shop", id)
	}

	byStatus, err := uc.repo.CountProductsByStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range byStatus {
		total += n
	}

	categories, err := uc.repo.CountCategoriesUsed(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.ShopStatistics{
		ShopID:           id,
		TotalProducts:    total,
		ProductsByStatus: byStatus,
		CategoriesUsed:   categories,
	}, nil
}

func (uc *shopUseCase) CategoriesUsed(ctx context.Context, id string) ([]string, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.NotFound("shop", id)
	}
	return uc.repo.FindCategoryIDsUsed(ctx, id)
}

func applyOptional(s *model.Shop, description, address, phone, email, website, logoURL string) {
	if description != "" {
		s.Description = &description
	}
	if address != "" {
		s.Address = &address
	}
	if phone != "" {
		s.Phone = &phone
	}
	if email != "" {
		s.Email = &email
	}
	if website != "" {
		s.Website = &website
	}
	if logoURL != "" {
		s.LogoURL = &logoURL
	}
}

func (uc *shopUseCase) localize(ctx context.Context, s *model.Shop, locale string) {
	if locale == "" || uc.translator == nil {
		return
	}
	fields, err := uc.translator.ResolveAll(ctx, model.EntityShop, s.ID, locale)
	if err != nil {
		uc.logger.Warn("failed to resolve shop translations",
			zap.String("shop_id", s.ID), zap.Error(err))
		return
	}
	if name, ok := fields["name"]; ok {
		s.Name = name
	}
	if desc, ok := fields["description"]; ok {
		s.Description = &desc
	}
}
