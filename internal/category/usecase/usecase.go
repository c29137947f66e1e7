package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/category"
	"github.com/eliasbui/asia-shop/internal/category/dto"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/pkg/logger"
)

// maxTreeDepth bounds every parent-pointer walk. Move() is the only cycle
// guard, so walks must fail rather than loop if the forest is corrupted.
const maxTreeDepth = 32

type categoryUseCase struct {
	repo       category.Repository
	translator category.Translator
	logger     logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, translator category.Translator, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:       repo,
		translator: translator,
		logger:     log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if input.ParentID != nil && *input.ParentID != "" {
		parent, err := uc.repo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperr.NotFound("category", *input.ParentID)
		}
	} else {
		input.ParentID = nil
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ParentID:    input.ParentID,
		Name:        input.Name,
		Description: &input.Description,
		SortOrder:   input.SortOrder,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id, locale string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category", id)
	}
	uc.localize(ctx, cat, locale)
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category", input.ID)
	}

	cat.Name = input.Name
	cat.Description = &input.Description
	cat.SortOrder = input.SortOrder
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return apperr.NotFound("category", id)
	}

	hasChildren, err := uc.repo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return apperr.New(apperr.CodeCategoryHasChildren, "category %s still has child categories", id)
	}

	hasProducts, err := uc.repo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return apperr.New(apperr.CodeCategoryHasProducts, "category %s still has products", id)
	}

	return uc.repo.SoftDelete(ctx, id)
}

func (uc *categoryUseCase) Children(ctx context.Context, id, locale string) ([]model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category", id)
	}

	children, err := uc.repo.FindChildren(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range children {
		uc.localize(ctx, &children[i], locale)
	}
	return children, nil
}

func (uc *categoryUseCase) Ancestors(ctx context.Context, id, locale string) ([]model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category", id)
	}

	var chain []model.Category
	cur := cat.ParentID
	for depth := 0; cur != nil; depth++ {
		if depth >= maxTreeDepth {
			return nil, apperr.New(apperr.CodeInvalidHierarchy,
				"ancestor walk exceeded depth %d; tree may be corrupted", maxTreeDepth)
		}
		parent, err := uc.repo.FindByID(ctx, *cur)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			// Parent was soft-deleted out from under us; stop the chain.
			break
		}
		chain = append(chain, *parent)
		cur = parent.ParentID
	}

	// Walked leaf-to-root; callers expect root-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	for i := range chain {
		uc.localize(ctx, &chain[i], locale)
	}
	return chain, nil
}

func (uc *categoryUseCase) Move(ctx context.Context, id string, newParentID *string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperr.NotFound("category", id)
	}

	if newParentID != nil && *newParentID == "" {
		newParentID = nil
	}
	if newParentID != nil {
		if *newParentID == id {
			return nil, apperr.New(apperr.CodeInvalidHierarchy, "category %s cannot be its own parent", id)
		}
		parent, err := uc.repo.FindByID(ctx, *newParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperr.NotFound("category", *newParentID)
		}
	}

	// The repository re-verifies the cycle check inside the transaction
	// that performs the update.
	if err := uc.repo.Move(ctx, id, newParentID, maxTreeDepth); err != nil {
		return nil, err
	}

	uc.logger.Info("category moved", zap.String("category_id", id))

	moved, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if moved == nil {
		return nil, apperr.NotFound("category", id)
	}
	return moved, nil
}

func (uc *categoryUseCase) localize(ctx context.Context, cat *model.Category, locale string) {
	if locale == "" || uc.translator == nil {
		return
	}
	fields, err := uc.translator.ResolveAll(ctx, model.EntityCategory, cat.ID, locale)
	if err != nil {
		uc.logger.Warn("failed to resolve category translations",
			zap.String("category_id", cat.ID), zap.Error(err))
		return
	}
	if name, ok := fields["name"]; ok {
		cat.Name = name
	}
	if desc, ok := fields["description"]; ok {
		cat.Description = &desc
	}
}
