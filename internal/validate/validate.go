// Package validate checks local preconditions with go-playground/validator and
// reports the first failure as an *oshi.ValidationError.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/prilive-com/oshibot/oshi"
)

var (
	once sync.Once
	std  *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		std = v
	})
	return std
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return convert(instance().Struct(s), "")
}

// Field validates a single value against tag, reporting failures under name.
func Field(name string, value any, tag string) error {
	return convert(instance().Var(value, tag), name)
}

// Required validates that a string is not empty.
func Required(field, value string) error {
	return Field(field, value, "required")
}

func convert(err error, name string) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("%w: %w", oshi.ErrInvalidConfig, err)
	}
	fe := errs[0]
	field := name
	if field == "" {
		field = fe.Field()
	}
	if field == "" {
		field = fe.StructField()
	}
	return oshi.NewValidationError(field, message(fe))
}

func message(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url", "http_url":
		return "must be a valid URL"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "hexadecimal":
		return "must be hexadecimal"
	default:
		return fmt.Sprintf("failed validation on '%s'", fe.Tag())
	}
}
