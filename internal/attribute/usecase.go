package attribute

import (
	"context"

	"github.com/eliasbui/asia-shop/internal/attribute/dto"
	"github.com/eliasbui/asia-shop/internal/model"
)

type UseCase interface {
	CreateGroup(ctx context.Context, input *dto.CreateGroupInput) (*model.AttributeGroup, error)
	ListGroups(ctx context.Context) ([]model.AttributeGroup, error)

	CreateAttribute(ctx context.Context, input *dto.CreateAttributeInput) (*model.Attribute, error)
	GetAttribute(ctx context.Context, id string) (*model.Attribute, error)
	ListAttributes(ctx context.Context, filters *dto.AttributeFilters) ([]model.Attribute, int, error)
	UpdateAttribute(ctx context.Context, input *dto.UpdateAttributeInput) (*model.Attribute, error)
	DeleteAttribute(ctx context.Context, id string) error

	AllowedValues(ctx context.Context, attributeID string) ([]model.AttributeAllowedValue, error)
	AddAllowedValue(ctx context.Context, attributeID string, input *dto.AllowedValueInput) (*model.AttributeAllowedValue, error)
	UpdateAllowedValue(ctx context.Context, attributeID, valueID string, input *dto.AllowedValueInput) (*model.AttributeAllowedValue, error)
	DeleteAllowedValue(ctx context.Context, attributeID, valueID string) error

	// EffectiveAttributes is the attribute set applicable to products of
	// the category: its own bindings only, ordered by display order.
	// No inheritance from ancestor categories.
	EffectiveAttributes(ctx context.Context, categoryID string) ([]model.Attribute, error)
	BindAttribute(ctx context.Context, categoryID, attributeID string, displayOrder int) error
	UnbindAttribute(ctx context.Context, categoryID, attributeID string) error
}
