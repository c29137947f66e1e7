package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/product/dto"
)

func (uc *productUseCase) Variants(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", productID)
	}
	return uc.repo.FindVariantsByProduct(ctx, productID)
}

func (uc *productUseCase) AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.ProductVariant, error) {
	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", input.ProductID)
	}

	skuTaken, err := uc.repo.VariantSKUExists(ctx, input.ProductID, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if skuTaken {
		return nil, apperr.AlreadyExists("variant SKU %q already exists for product %s", input.SKU, input.ProductID)
	}

	now := time.Now()
	v := &model.ProductVariant{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProductID:    input.ProductID,
		SKU:          input.SKU,
		Name:         input.Name,
		Price:        input.Price,
		ComparePrice: input.ComparePrice,
		Weight:       input.Weight,
		Position:     input.Position,
		Status:       model.ProductActive,
	}
	if input.Barcode != "" {
		v.Barcode = &input.Barcode
	}
	if input.ImageURL != "" {
		v.ImageURL = &input.ImageURL
	}

	if err := uc.repo.CreateVariant(ctx, v); err != nil {
		return nil, err
	}
	uc.invalidateProduct(ctx, v.ProductID)
	return v, nil
}

func (uc *productUseCase) UpdateVariant(ctx context.Context, input *dto.UpdateVariantInput) (*model.ProductVariant, error) {
	v, err := uc.repo.FindVariantByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if v == nil || v.ProductID != input.ProductID {
		return nil, apperr.NotFound("variant", input.ID)
	}

	if input.SKU != v.SKU {
		skuTaken, err := uc.repo.VariantSKUExists(ctx, v.ProductID, input.SKU, v.ID)
		if err != nil {
			return nil, err
		}
		if skuTaken {
			return nil, apperr.AlreadyExists("variant SKU %q already exists for product %s", input.SKU, v.ProductID)
		}
	}

	v.SKU = input.SKU
	v.Name = input.Name
	v.Price = input.Price
	v.ComparePrice = input.ComparePrice
	v.Weight = input.Weight
	v.Position = input.Position
	v.Barcode = nil
	if input.Barcode != "" {
		barcode := input.Barcode
		v.Barcode = &barcode
	}
	v.ImageURL = nil
	if input.ImageURL != "" {
		imageURL := input.ImageURL
		v.ImageURL = &imageURL
	}
	if input.Status != "" {
		if !model.ProductStatus(input.Status).IsValid() {
			return nil, apperr.New(apperr.CodeInvalidInput, "unknown variant status %q", input.Status)
		}
		v.Status = model.ProductStatus(input.Status)
	}
	v.UpdatedAt = time.Now()

	if err := uc.repo.UpdateVariant(ctx, v); err != nil {
		return nil, err
	}
	uc.invalidateProduct(ctx, v.ProductID)
	return v, nil
}

func (uc *productUseCase) DeleteVariant(ctx context.Context, productID, variantID string) error {
	v, err := uc.repo.FindVariantByID(ctx, variantID)
	if err != nil {
		return err
	}
	if v == nil || v.ProductID != productID {
		return apperr.NotFound("variant", variantID)
	}
	if err := uc.repo.SoftDeleteVariant(ctx, variantID); err != nil {
		return err
	}
	uc.invalidateProduct(ctx, productID)
	return nil
}
