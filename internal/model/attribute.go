package model

import "time"

// InputType describes how an attribute is captured.
type InputType string

const (
	InputText        InputType = "TEXT"
	InputNumber      InputType = "NUMBER"
	InputBoolean     InputType = "BOOLEAN"
	InputDate        InputType = "DATE"
	InputSelect      InputType = "SELECT"
	InputMultiSelect InputType = "MULTISELECT"
)

func (t InputType) IsValid() bool {
	switch t {
	case InputText, InputNumber, InputBoolean, InputDate, InputSelect, InputMultiSelect:
		return true
	}
	return false
}

// IsOption reports whether values are references to allowed-value rows.
func (t InputType) IsOption() bool {
	return t == InputSelect || t == InputMultiSelect
}

// DataType describes which typed slot stores the value.
type DataType string

const (
	DataString  DataType = "STRING"
	DataNumber  DataType = "NUMBER"
	DataBoolean DataType = "BOOLEAN"
	DataDate    DataType = "DATE"
)

func (t DataType) IsValid() bool {
	switch t {
	case DataString, DataNumber, DataBoolean, DataDate:
		return true
	}
	return false
}

// Compatible reports whether the input/data type pairing is consistent.
// SELECT and MULTISELECT store option references, which are string-typed.
func (t InputType) Compatible(d DataType) bool {
	switch t {
	case InputText:
		return d == DataString
	case InputNumber:
		return d == DataNumber
	case InputBoolean:
		return d == DataBoolean
	case InputDate:
		return d == DataDate
	case InputSelect, InputMultiSelect:
		return d == DataString
	}
	return false
}

type AttributeGroup struct {
	BaseModel
	Name         string `db:"name" json:"name"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
}

type Attribute struct {
	BaseModel
	Code         string    `db:"code" json:"code"` // Globally unique among non-deleted rows
	InputType    InputType `db:"input_type" json:"input_type"`
	DataType     DataType  `db:"data_type" json:"data_type"`
	Unit         *string   `db:"unit" json:"unit"`
	GroupID      string    `db:"group_id" json:"group_id"`
	IsFilterable bool      `db:"is_filterable" json:"is_filterable"`
	IsRequired   bool      `db:"is_required" json:"is_required"`
}

type AttributeAllowedValue struct {
	BaseModel
	AttributeID  string `db:"attribute_id" json:"attribute_id"`
	Value        string `db:"value" json:"value"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
}

// CategoryAttribute binds an attribute to a category; the binding is what
// makes the attribute applicable to products in that category.
type CategoryAttribute struct {
	BaseModel
	CategoryID   string `db:"category_id" json:"category_id"`
	AttributeID  string `db:"attribute_id" json:"attribute_id"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
}

// ProductAttributeValue is one EAV row. Exactly one typed slot is populated,
// matching the attribute's data type; option-input attributes populate
// ValueOptionID instead. MULTISELECT stores one row per selected option.
type ProductAttributeValue struct {
	BaseModel
	ProductID     string     `db:"product_id" json:"product_id"`
	AttributeID   string     `db:"attribute_id" json:"attribute_id"`
	ValueString   *string    `db:"value_string" json:"value_string"`
	ValueNumber   *float64   `db:"value_number" json:"value_number"`
	ValueBoolean  *bool      `db:"value_boolean" json:"value_boolean"`
	ValueDate     *time.Time `db:"value_date" json:"value_date"`
	ValueOptionID *string    `db:"value_option_id" json:"value_option_id"`
}
