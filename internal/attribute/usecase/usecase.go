package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/attribute"
	"github.com/eliasbui/asia-shop/internal/attribute/dto"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/pkg/cache"
	"github.com/eliasbui/asia-shop/pkg/logger"
)

const effectiveAttrsCacheTTL = 5 * time.Minute

type attributeUseCase struct {
	repo   attribute.Repository
	cache  *cache.RedisClient
	logger logger.ZapLogger
}

func NewAttributeUseCase(repo attribute.Repository, cache *cache.RedisClient, log logger.ZapLogger) attribute.UseCase {
	return &attributeUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func (uc *attributeUseCase) CreateGroup(ctx context.Context, input *dto.CreateGroupInput) (*model.AttributeGroup, error) {
	exists, err := uc.repo.GroupNameExists(ctx, input.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExists("attribute group %q already exists", input.Name)
	}

	now := time.Now()
	group := &model.AttributeGroup{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         input.Name,
		DisplayOrder: input.DisplayOrder,
	}

	if err := uc.repo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (uc *attributeUseCase) ListGroups(ctx context.Context) ([]model.AttributeGroup, error) {
	return uc.repo.FindAllGroups(ctx)
}

func (uc *attributeUseCase) CreateAttribute(ctx context.Context, input *dto.CreateAttributeInput) (*model.Attribute, error) {
	if !input.InputType.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown input type %q", input.InputType)
	}
	if !input.DataType.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown data type %q", input.DataType)
	}
	if !input.InputType.Compatible(input.DataType) {
		return nil, apperr.New(apperr.CodeInvalidInput,
			"input type %s is not compatible with data type %s", input.InputType, input.DataType)
	}

	group, err := uc.repo.FindGroupByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperr.NotFound("attribute group", input.GroupID)
	}

	// Checked before persistence so duplicate codes surface as a domain
	// error rather than a storage constraint violation.
	exists, err := uc.repo.CodeExists(ctx, input.Code, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExists("attribute code %q already exists", input.Code)
	}

	now := time.Now()
	attr := &model.Attribute{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:         input.Code,
		InputType:    input.InputType,
		DataType:     input.DataType,
		GroupID:      input.GroupID,
		IsFilterable: input.IsFilterable,
		IsRequired:   input.IsRequired,
	}
	if input.Unit != "" {
		attr.Unit = &input.Unit
	}

	if err := uc.repo.CreateAttribute(ctx, attr); err != nil {
		return nil, err
	}
	return attr, nil
}

func (uc *attributeUseCase) GetAttribute(ctx context.Context, id string) (*model.Attribute, error) {
	attr, err := uc.repo.FindAttributeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, apperr.NotFound("attribute", id)
	}
	return attr, nil
}

func (uc *attributeUseCase) ListAttributes(ctx context.Context, filters *dto.AttributeFilters) ([]model.Attribute, int, error) {
	return uc.repo.FindAttributes(ctx, filters)
}

func (uc *attributeUseCase) UpdateAttribute(ctx context.Context, input *dto.UpdateAttributeInput) (*model.Attribute, error) {
	attr, err := uc.repo.FindAttributeByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, apperr.NotFound("attribute", input.ID)
	}

	if !input.InputType.IsValid() || !input.DataType.IsValid() {
		return nil, apperr.New(apperr.CodeInvalidInput, "unknown input or data type")
	}
	if !input.InputType.Compatible(input.DataType) {
		return nil, apperr.New(apperr.CodeInvalidInput,
			"input type %s is not compatible with data type %s", input.InputType, input.DataType)
	}

	if input.Code != attr.Code {
		exists, err := uc.repo.CodeExists(ctx, input.Code, attr.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.AlreadyExists("attribute code %q already exists", input.Code)
		}
	}

	if input.GroupID != attr.GroupID {
		group, err := uc.repo.FindGroupByID(ctx, input.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, apperr.NotFound("attribute group", input.GroupID)
		}
	}

	attr.Code = input.Code
	attr.InputType = input.InputType
	attr.DataType = input.DataType
	attr.GroupID = input.GroupID
	attr.IsFilterable = input.IsFilterable
	attr.IsRequired = input.IsRequired
	attr.Unit = nil
	if input.Unit != "" {
		unit := input.Unit
		attr.Unit = &unit
	}
	attr.UpdatedAt = time.Now()

	if err := uc.repo.UpdateAttribute(ctx, attr); err != nil {
		return nil, err
	}

	uc.invalidateCachesForAttribute(ctx, attr.ID)
	return attr, nil
}

func (uc *attributeUseCase) DeleteAttribute(ctx context.Context, id string) error {
	attr, err := uc.repo.FindAttributeByID(ctx, id)
	if err != nil {
		return err
	}
	if attr == nil {
		return apperr.NotFound("attribute", id)
	}

	// Bindings cascade logically with the attribute. Historical product
	// values survive; products are not re-validated retroactively.
	uc.invalidateCachesForAttribute(ctx, id)
	if err := uc.repo.SoftDeleteBindingsByAttribute(ctx, id); err != nil {
		return err
	}
	return uc.repo.SoftDeleteAttribute(ctx, id)
}

func (uc *attributeUseCase) AllowedValues(ctx context.Context, attributeID string) ([]model.AttributeAllowedValue, error) {
	attr, err := uc.repo.FindAttributeByID(ctx, attributeID)
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, apperr.NotFound("attribute", attributeID)
	}
	return uc.repo.FindAllowedValues(ctx, attributeID)
}

func (uc *attributeUseCase) AddAllowedValue(ctx context.Context, attributeID string, input *dto.AllowedValueInput) (*model.AttributeAllowedValue, error) {
	attr, err := uc.repo.FindAttributeByID(ctx, attributeID)
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, apperr.NotFound("attribute", attributeID)
	}
	if !attr.InputType.IsOption() {
		return nil, apperr.New(apperr.CodeInvalidInput,
			"attribute %s does not take allowed values (input type %s)", attr.Code, attr.InputType)
	}

	exists, err := uc.repo.AllowedValueExists(ctx, attributeID, input.Value, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.AlreadyExists("value %q already exists for attribute %s", input.Value, attr.Code)
	}

	now := time.Now()
	value := &model.AttributeAllowedValue{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		AttributeID:  attributeID,
		Value:        input.Value,
		DisplayOrder: input.DisplayOrder,
	}

	if err := uc.repo.CreateAllowedValue(ctx, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (uc *attributeUseCase) UpdateAllowedValue(ctx context.Context, attributeID, valueID string, input *dto.AllowedValueInput) (*model.AttributeAllowedValue, error) {
	value, err := uc.repo.FindAllowedValueByID(ctx, valueID)
	if err != nil {
		return nil, err
	}
	if value == nil || value.AttributeID != attributeID {
		return nil, apperr.NotFound("allowed value", valueID)
	}

	if input.Value != value.Value {
		exists, err := uc.repo.AllowedValueExists(ctx, attributeID, input.Value, valueID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.AlreadyExists("value %q already exists for attribute %s", input.Value, attributeID)
		}
	}

	value.Value = input.Value
	value.DisplayOrder = input.DisplayOrder
	value.UpdatedAt = time.Now()

	if err := uc.repo.UpdateAllowedValue(ctx, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (uc *attributeUseCase) DeleteAllowedValue(ctx context.Context, attributeID, valueID string) error {
	value, err := uc.repo.FindAllowedValueByID(ctx, valueID)
	if err != nil {
		return err
	}
	if value == nil || value.AttributeID != attributeID {
		return apperr.NotFound("allowed value", valueID)
	}
	return uc.repo.SoftDeleteAllowedValue(ctx, valueID)
}

func (uc *attributeUseCase) EffectiveAttributes(ctx context.Context, categoryID string) ([]model.Attribute, error) {
	exists, err := uc.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("category", categoryID)
	}

	cacheKey := effectiveAttrsCacheKey(categoryID)
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var attrs []model.Attribute
			if err := json.Unmarshal([]byte(val), &attrs); err == nil {
				return attrs, nil
			}
		}
	}

	attrs, err := uc.repo.FindAttributesByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(attrs); err == nil {
			if err := uc.cache.Client.Set(ctx, cacheKey, data, effectiveAttrsCacheTTL).Err(); err != nil {
				uc.logger.Warn("failed to cache effective attributes",
					zap.String("category_id", categoryID), zap.Error(err))
			}
		}
	}
	return attrs, nil
}

func (uc *attributeUseCase) BindAttribute(ctx context.Context, categoryID, attributeID string, displayOrder int) error {
	exists, err := uc.repo.CategoryExists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("category", categoryID)
	}

	attr, err := uc.repo.FindAttributeByID(ctx, attributeID)
	if err != nil {
		return err
	}
	if attr == nil {
		return apperr.NotFound("attribute", attributeID)
	}

	// Duplicate binding is rejected, not treated as a no-op.
	binding, err := uc.repo.FindBinding(ctx, categoryID, attributeID)
	if err != nil {
		return err
	}
	if binding != nil {
		return apperr.AlreadyExists("attribute %s is already bound to category %s", attr.Code, categoryID)
	}

	now := time.Now()
	if err := uc.repo.CreateBinding(ctx, &model.CategoryAttribute{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CategoryID:   categoryID,
		AttributeID:  attributeID,
		DisplayOrder: displayOrder,
	}); err != nil {
		return err
	}

	uc.invalidateEffectiveAttrs(ctx, categoryID)
	return nil
}

func (uc *attributeUseCase) UnbindAttribute(ctx context.Context, categoryID, attributeID string) error {
	binding, err := uc.repo.FindBinding(ctx, categoryID, attributeID)
	if err != nil {
		return err
	}
	if binding == nil {
		return apperr.NotFound("category attribute binding", categoryID+"/"+attributeID)
	}

	// Historical product values survive unbinding.
	if err := uc.repo.SoftDeleteBinding(ctx, categoryID, attributeID); err != nil {
		return err
	}

	uc.invalidateEffectiveAttrs(ctx, categoryID)
	return nil
}

func effectiveAttrsCacheKey(categoryID string) string {
	return "catalog:effective-attrs:" + categoryID
}

func (uc *attributeUseCase) invalidateEffectiveAttrs(ctx context.Context, categoryID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, effectiveAttrsCacheKey(categoryID)).Err(); err != nil {
		uc.logger.Warn("failed to invalidate effective attributes cache",
			zap.String("category_id", categoryID), zap.Error(err))
	}
}

func (uc *attributeUseCase) invalidateCachesForAttribute(ctx context.Context, attributeID string) {
	bindings, err := uc.repo.FindBindingsByAttribute(ctx, attributeID)
	if err != nil {
		uc.logger.Warn("failed to list bindings for cache invalidation",
			zap.String("attribute_id", attributeID), zap.Error(err))
		return
	}
	for _, b := range bindings {
		uc.invalidateEffectiveAttrs(ctx, b.CategoryID)
	}
}
