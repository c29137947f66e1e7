package attribute

import (
	"context"

	"github.com/eliasbui/asia-shop/internal/attribute/dto"
	"github.com/eliasbui/asia-shop/internal/model"
)

type Repository interface {
	// Groups
	CreateGroup(ctx context.Context, group *model.AttributeGroup) error
	FindGroupByID(ctx context.Context, id string) (*model.AttributeGroup, error)
	FindAllGroups(ctx context.Context) ([]model.AttributeGroup, error)
	GroupNameExists(ctx context.Context, name, excludeID string) (bool, error)

	// Attributes
	CreateAttribute(ctx context.Context, attr *model.Attribute) error
	FindAttributeByID(ctx context.Context, id string) (*model.Attribute, error)
	FindAttributes(ctx context.Context, filters *dto.AttributeFilters) ([]model.Attribute, int, error)
	UpdateAttribute(ctx context.Context, attr *model.Attribute) error
	SoftDeleteAttribute(ctx context.Context, id string) error
	CodeExists(ctx context.Context, code, excludeID string) (bool, error)

	// Allowed values
	CreateAllowedValue(ctx context.Context, value *model.AttributeAllowedValue) error
	FindAllowedValueByID(ctx context.Context, id string) (*model.AttributeAllowedValue, error)
	FindAllowedValues(ctx context.Context, attributeID string) ([]model.AttributeAllowedValue, error)
	UpdateAllowedValue(ctx context.Context, value *model.AttributeAllowedValue) error
	SoftDeleteAllowedValue(ctx context.Context, id string) error
	AllowedValueExists(ctx context.Context, attributeID, value, excludeID string) (bool, error)

	// Category bindings
	CreateBinding(ctx context.Context, binding *model.CategoryAttribute) error
	FindBinding(ctx context.Context, categoryID, attributeID string) (*model.CategoryAttribute, error)
	FindBindingsByAttribute(ctx context.Context, attributeID string) ([]model.CategoryAttribute, error)
	SoftDeleteBinding(ctx context.Context, categoryID, attributeID string) error
	SoftDeleteBindingsByAttribute(ctx context.Context, attributeID string) error
	// FindAttributesByCategory returns the attributes bound to the
	// category, ordered by the binding's display order.
	FindAttributesByCategory(ctx context.Context, categoryID string) ([]model.Attribute, error)

	CategoryExists(ctx context.Context, id string) (bool, error)
}
