package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator plugs go-playground/validator into echo.Echo.Validator so
// handlers can call c.Validate on bound request structs.
type requestValidator struct {
	v *validator.Validate
}

func NewValidator() *requestValidator {
	return &requestValidator{v: validator.New()}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = describe(fe)
	}
	return errors.New(strings.Join(msgs, "; "))
}

// describe turns one failed rule into a client-facing message.
func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
