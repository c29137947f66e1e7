package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/codec"
	"github.com/eliasbui/asia-shop/internal/model"
	"github.com/eliasbui/asia-shop/internal/product/dto"
)

func (uc *productUseCase) ProductAttributes(ctx context.Context, productID, locale string) ([]dto.ProductAttribute, error) {
	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", productID)
	}

	values, err := uc.repo.FindValuesByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.decorateValues(ctx, values, locale)
}

func (uc *productUseCase) SetAttributeValue(ctx context.Context, productID, attributeID string, value interface{}) ([]dto.ProductAttribute, error) {
	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", productID)
	}

	attr, err := uc.effectiveAttribute(ctx, p.CategoryID, attributeID)
	if err != nil {
		return nil, err
	}

	rows, err := uc.encodeValue(ctx, productID, attr, value)
	if err != nil {
		return nil, err
	}

	// ReplaceValues tombstones the old rows and inserts the new ones in one
	// transaction, so MULTISELECT updates never leave a partial set behind.
	if err := uc.repo.ReplaceValues(ctx, productID, []string{attributeID}, rows); err != nil {
		return nil, err
	}

	stored, err := uc.repo.FindValues(ctx, productID, attributeID)
	if err != nil {
		return nil, err
	}
	return uc.decorateValues(ctx, stored, "")
}

func (uc *productUseCase) UpdateAttributes(ctx context.Context, productID string, inputs []dto.AttributeValueInput) ([]dto.ProductAttribute, error) {
	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("product", productID)
	}

	rows, attrIDs, err := uc.validateAttributeSet(ctx, productID, p.CategoryID, inputs)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceValues(ctx, productID, attrIDs, rows); err != nil {
		return nil, err
	}

	values, err := uc.repo.FindValuesByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.decorateValues(ctx, values, "")
}

func (uc *productUseCase) RemoveAttributeValue(ctx context.Context, productID, attributeID string) error {
	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("product", productID)
	}
	// Removing an absent value is a no-op.
	return uc.repo.SoftDeleteValues(ctx, productID, attributeID)
}

// validateAttributeSet resolves every submitted value against the category's
// effective attribute set and checks that all required attributes are
// covered. Nothing is written until the entire batch passes.
func (uc *productUseCase) validateAttributeSet(ctx context.Context, productID string, categoryID *string, inputs []dto.AttributeValueInput) ([]model.ProductAttributeValue, []string, error) {
	if categoryID == nil {
		if len(inputs) == 0 {
			return nil, nil, nil
		}
		return nil, nil, apperr.New(apperr.CodeAttributeNotApplicable,
			"product %s has no category, attributes do not apply", productID)
	}

	effective, err := uc.schema.EffectiveAttributes(ctx, *categoryID)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]*model.Attribute, len(effective))
	for i := range effective {
		byID[effective[i].ID] = &effective[i]
	}

	submitted := make(map[string]bool, len(inputs))
	var rows []model.ProductAttributeValue
	var attrIDs []string
	for _, in := range inputs {
		attr, ok := byID[in.AttributeID]
		if !ok {
			return nil, nil, apperr.New(apperr.CodeAttributeNotApplicable,
				"attribute %s is not bound to category %s", in.AttributeID, *categoryID)
		}
		if submitted[in.AttributeID] {
			return nil, nil, apperr.New(apperr.CodeInvalidInput,
				"attribute %s submitted more than once", attr.Code)
		}
		submitted[in.AttributeID] = true

		encoded, err := uc.encodeValue(ctx, productID, attr, in.Value)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, encoded...)
		attrIDs = append(attrIDs, in.AttributeID)
	}

	for i := range effective {
		if effective[i].IsRequired && !submitted[effective[i].ID] {
			return nil, nil, apperr.New(apperr.CodeRequiredAttributeMissing,
				"required attribute %s has no value", effective[i].Code)
		}
	}
	return rows, attrIDs, nil
}

// encodeValue turns one raw input into storage rows. MULTISELECT accepts an
// array and yields one row per selected option; everything else yields
// exactly one row.
func (uc *productUseCase) encodeValue(ctx context.Context, productID string, attr *model.Attribute, value interface{}) ([]model.ProductAttributeValue, error) {
	var allowed []model.AttributeAllowedValue
	if attr.InputType.IsOption() {
		var err error
		allowed, err = uc.schema.AllowedValues(ctx, attr.ID)
		if err != nil {
			return nil, err
		}
	}

	raws, err := parseRaws(attr, value)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]model.ProductAttributeValue, 0, len(raws))
	seen := make(map[string]bool, len(raws))
	for _, raw := range raws {
		row, err := codec.Encode(attr, allowed, raw)
		if err != nil {
			return nil, err
		}
		if row.ValueOptionID != nil {
			if seen[*row.ValueOptionID] {
				return nil, apperr.New(apperr.CodeInvalidAttributeValue,
					"attribute %s selects value %s twice", attr.Code, *row.ValueOptionID)
			}
			seen[*row.ValueOptionID] = true
		}
		row.ID = uuid.New().String()
		row.ProductID = productID
		row.CreatedAt = now
		row.UpdatedAt = now
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRaws(attr *model.Attribute, value interface{}) ([]codec.Raw, error) {
	list, isList := value.([]interface{})
	if !isList {
		raw, err := codec.ParseRaw(attr, value)
		if err != nil {
			return nil, err
		}
		return []codec.Raw{raw}, nil
	}

	if attr.InputType != model.InputMultiSelect {
		return nil, apperr.New(apperr.CodeInvalidAttributeValue,
			"attribute %s does not accept multiple values", attr.Code)
	}
	if len(list) == 0 {
		return nil, apperr.New(apperr.CodeInvalidAttributeValue,
			"attribute %s received an empty selection", attr.Code)
	}

	raws := make([]codec.Raw, 0, len(list))
	for _, v := range list {
		raw, err := codec.ParseRaw(attr, v)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}
	return raws, nil
}

// effectiveAttribute resolves a single attribute from the product's
// effective set, rejecting attributes the category does not carry.
func (uc *productUseCase) effectiveAttribute(ctx context.Context, categoryID *string, attributeID string) (*model.Attribute, error) {
	if categoryID == nil {
		return nil, apperr.New(apperr.CodeAttributeNotApplicable,
			"product has no category, attributes do not apply")
	}
	effective, err := uc.schema.EffectiveAttributes(ctx, *categoryID)
	if err != nil {
		return nil, err
	}
	for i := range effective {
		if effective[i].ID == attributeID {
			return &effective[i], nil
		}
	}
	return nil, apperr.New(apperr.CodeAttributeNotApplicable,
		"attribute %s is not bound to category %s", attributeID, *categoryID)
}

// decorateValues groups stored rows by attribute and decodes them for
// display. Rows whose attribute definition was since removed are skipped;
// the stored data itself survives.
func (uc *productUseCase) decorateValues(ctx context.Context, values []model.ProductAttributeValue, locale string) ([]dto.ProductAttribute, error) {
	result := make([]dto.ProductAttribute, 0)
	var current *dto.ProductAttribute

	for _, v := range values {
		if current == nil || current.Attribute.ID != v.AttributeID {
			attr, err := uc.schema.GetAttribute(ctx, v.AttributeID)
			if err != nil {
				if apperr.IsCode(err, apperr.CodeNotFound) {
					uc.logger.Warn("skipping value of removed attribute",
						zap.String("attribute_id", v.AttributeID))
					current = nil
					continue
				}
				return nil, err
			}
			result = append(result, dto.ProductAttribute{Attribute: *attr})
			current = &result[len(result)-1]
		}
		if current == nil {
			continue
		}

		var allowed []model.AttributeAllowedValue
		if current.Attribute.InputType.IsOption() {
			var err error
			allowed, err = uc.schema.AllowedValues(ctx, current.Attribute.ID)
			if err != nil {
				return nil, err
			}
		}

		label := ""
		if locale != "" && v.ValueOptionID != nil && uc.translator != nil {
			resolved, err := uc.translator.Resolve(ctx, model.EntityAttributeValue, *v.ValueOptionID, locale, "name")
			if err != nil {
				return nil, err
			}
			if resolved != nil {
				label = *resolved
			}
		}

		current.Values = append(current.Values, v)
		current.DisplayValues = append(current.DisplayValues, codec.Decode(&current.Attribute, v, allowed, label))
	}
	return result, nil
}
