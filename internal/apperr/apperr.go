// Package apperr defines the catalog's domain error taxonomy. Usecases
// return *Error for business failures; the HTTP layer maps Code to a status
// code. Infrastructure failures stay plain wrapped errors.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Lookup failures
	CodeNotFound Code = "NOT_FOUND"

	// Unique-key conflicts
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// Category tree
	CodeInvalidHierarchy    Code = "INVALID_CATEGORY_HIERARCHY"
	CodeCategoryHasChildren Code = "CATEGORY_HAS_CHILDREN"
	CodeCategoryHasProducts Code = "CATEGORY_HAS_PRODUCTS"

	// Attribute values
	CodeInvalidAttributeValue    Code = "INVALID_ATTRIBUTE_VALUE"
	CodeAttributeValueNotAllowed Code = "ATTRIBUTE_VALUE_NOT_ALLOWED"
	CodeAttributeNotApplicable   Code = "ATTRIBUTE_NOT_APPLICABLE"
	CodeRequiredAttributeMissing Code = "REQUIRED_ATTRIBUTE_MISSING"

	// Request validation
	CodeInvalidInput Code = "INVALID_INPUT"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeCategoryHasChildren, CodeCategoryHasProducts:
		return http.StatusConflict
	case CodeInvalidHierarchy,
		CodeInvalidAttributeValue,
		CodeAttributeValueNotAllowed,
		CodeAttributeNotApplicable,
		CodeRequiredAttributeMissing,
		CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity, id string) *Error {
	return New(CodeNotFound, "%s not found with id: %s", entity, id)
}

func AlreadyExists(format string, args ...interface{}) *Error {
	return New(CodeAlreadyExists, format, args...)
}

// From extracts a domain error from err, if there is one.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err carries the given domain code.
func IsCode(err error, code Code) bool {
	e, ok := From(err)
	return ok && e.Code == code
}
