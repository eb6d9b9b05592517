// Package validation validates request DTOs against their declared struct
// tags and turns violations into one readable message listing every failing
// field, so a 400 response names everything wrong with the payload at once.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Error wraps all constraint violations of one payload.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// Struct validates a single DTO.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return toError(err)
	}
	return nil
}

// Slice validates every element of a DTO slice. An empty slice is itself a
// violation: batch endpoints require at least one record.
func Slice[T any](items []T) error {
	wrapper := struct {
		Items []T `validate:"required,min=1,dive"`
	}{Items: items}
	if err := validate.Struct(wrapper); err != nil {
		return toError(err)
	}
	return nil
}

func toError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Error{Message: err.Error()}
	}

	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, describe(fe))
	}
	return &Error{Message: "Validation error: " + strings.Join(parts, "; ")}
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s element(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// fieldPath strips the synthetic wrapper/struct prefix so messages read
// "Items[2].Username" for batches and "Username" for single payloads.
func fieldPath(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
