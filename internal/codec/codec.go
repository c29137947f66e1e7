// Package codec converts between raw attribute values and their typed
// storage slots. It is pure: validation and transformation only, no storage.
package codec

import (
	"strconv"
	"time"

	"github.com/eliasbui/asia-shop/internal/apperr"
	"github.com/eliasbui/asia-shop/internal/model"
)

// Kind tags a Raw value.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindDate
	KindOption
)

// Raw is a tagged attribute value. The transport layer hands over untyped
// JSON; ParseRaw resolves it into a Raw before it ever reaches storage.
type Raw struct {
	kind     Kind
	str      string
	num      float64
	boolean  bool
	date     time.Time
	optionID string
}

func String(s string) Raw        { return Raw{kind: KindString, str: s} }
func Number(n float64) Raw       { return Raw{kind: KindNumber, num: n} }
func Bool(b bool) Raw            { return Raw{kind: KindBool, boolean: b} }
func Date(t time.Time) Raw       { return Raw{kind: KindDate, date: t} }
func Option(valueID string) Raw  { return Raw{kind: KindOption, optionID: valueID} }

func (r Raw) Kind() Kind       { return r.kind }
func (r Raw) OptionID() string { return r.optionID }

// ParseRaw resolves an untyped value (as decoded from JSON) into a Raw
// matching the attribute's declared types. SELECT/MULTISELECT attributes
// expect an allowed-value id string.
func ParseRaw(attr *model.Attribute, v interface{}) (Raw, error) {
	if attr.InputType.IsOption() {
		s, ok := v.(string)
		if !ok {
			return Raw{}, apperr.New(apperr.CodeInvalidAttributeValue,
				"attribute %s expects an allowed-value id", attr.Code)
		}
		return Option(s), nil
	}

	switch attr.DataType {
	case model.DataString:
		s, ok := v.(string)
		if !ok {
			return Raw{}, kindMismatch(attr, "string")
		}
		return String(s), nil
	case model.DataNumber:
		switch n := v.(type) {
		case float64:
			return Number(n), nil
		case int:
			return Number(float64(n)), nil
		case int64:
			return Number(float64(n)), nil
		}
		return Raw{}, kindMismatch(attr, "number")
	case model.DataBoolean:
		b, ok := v.(bool)
		if !ok {
			return Raw{}, kindMismatch(attr, "boolean")
		}
		return Bool(b), nil
	case model.DataDate:
		s, ok := v.(string)
		if !ok {
			return Raw{}, kindMismatch(attr, "RFC 3339 date string")
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return Raw{}, apperr.New(apperr.CodeInvalidAttributeValue,
				"attribute %s: cannot parse %q as date: %v", attr.Code, s, err)
		}
		return Date(t), nil
	}
	return Raw{}, apperr.New(apperr.CodeInvalidAttributeValue,
		"attribute %s has unsupported data type %s", attr.Code, attr.DataType)
}

func kindMismatch(attr *model.Attribute, want string) error {
	return apperr.New(apperr.CodeInvalidAttributeValue,
		"attribute %s expects a %s value", attr.Code, want)
}

// Encode validates raw against the attribute definition and produces the
// typed storage row. Exactly one slot is populated. For option-input
// attributes the referenced allowed value must belong to the attribute.
// ProductID is left for the caller to fill.
func Encode(attr *model.Attribute, allowed []model.AttributeAllowedValue, raw Raw) (model.ProductAttributeValue, error) {
	row := model.ProductAttributeValue{AttributeID: attr.ID}

	if attr.InputType.IsOption() {
		if raw.kind != KindOption {
			return row, apperr.New(apperr.CodeInvalidAttributeValue,
				"attribute %s expects an allowed-value reference", attr.Code)
		}
		if !ownsAllowedValue(allowed, raw.optionID) {
			return row, apperr.New(apperr.CodeAttributeValueNotAllowed,
				"value %s is not allowed for attribute %s", raw.optionID, attr.Code)
		}
		optionID := raw.optionID
		row.ValueOptionID = &optionID
		return row, nil
	}

	switch {
	case attr.DataType == model.DataString && raw.kind == KindString:
		s := raw.str
		row.ValueString = &s
	case attr.DataType == model.DataNumber && raw.kind == KindNumber:
		n := raw.num
		row.ValueNumber = &n
	case attr.DataType == model.DataBoolean && raw.kind == KindBool:
		b := raw.boolean
		row.ValueBoolean = &b
	case attr.DataType == model.DataDate && raw.kind == KindDate:
		t := raw.date
		row.ValueDate = &t
	default:
		return row, apperr.New(apperr.CodeInvalidAttributeValue,
			"value kind does not match data type %s of attribute %s", attr.DataType, attr.Code)
	}
	return row, nil
}

// Decode produces a human-readable string for a stored value. For option
// references, optionLabel takes precedence (a localized label resolved by
// the caller); otherwise the allowed value's canonical text is used.
// Numbers get the attribute's unit appended when present.
func Decode(attr *model.Attribute, value model.ProductAttributeValue, allowed []model.AttributeAllowedValue, optionLabel string) string {
	if attr.InputType.IsOption() {
		if value.ValueOptionID == nil {
			return ""
		}
		if optionLabel != "" {
			return optionLabel
		}
		for _, av := range allowed {
			if av.ID == *value.ValueOptionID {
				return av.Value
			}
		}
		return *value.ValueOptionID
	}

	switch attr.DataType {
	case model.DataString:
		if value.ValueString != nil {
			return *value.ValueString
		}
	case model.DataNumber:
		if value.ValueNumber != nil {
			s := strconv.FormatFloat(*value.ValueNumber, 'f', -1, 64)
			if attr.Unit != nil && *attr.Unit != "" {
				return s + " " + *attr.Unit
			}
			return s
		}
	case model.DataBoolean:
		if value.ValueBoolean != nil {
			return strconv.FormatBool(*value.ValueBoolean)
		}
	case model.DataDate:
		if value.ValueDate != nil {
			return value.ValueDate.Format(time.RFC3339)
		}
	}
	return ""
}

func ownsAllowedValue(allowed []model.AttributeAllowedValue, valueID string) bool {
	for _, av := range allowed {
		if av.ID == valueID && !av.IsDeleted {
			return true
		}
	}
	return false
}
