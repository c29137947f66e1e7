package dto

import "github.com/eliasbui/asia-shop/internal/model"

type CreateGroupInput struct {
	Name         string
	DisplayOrder int
}

type CreateAttributeInput struct {
	Code         string
	InputType    model.InputType
	DataType     model.DataType
	Unit         string
	GroupID      string
	IsFilterable bool
	IsRequired   bool
}

type UpdateAttributeInput struct {
	ID           string
	Code         string
	InputType    model.InputType
	DataType     model.DataType
	Unit         string
	GroupID      string
	IsFilterable bool
	IsRequired   bool
}

type AllowedValueInput struct {
	Value        string
	DisplayOrder int
}

type AttributeFilters struct {
	GroupID      string
	DataType     string
	IsFilterable *bool
	Page         int
	PageSize     int
}
