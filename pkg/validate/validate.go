// Package validate checks form input before it is sent to the API.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/VishalGhuge111/hirely/pkg/models"
	"github.com/VishalGhuge111/hirely/pkg/richtext"
	"github.com/go-playground/validator/v10"
)

// OTPLength is the number of digits in an emailed one-time code.
const OTPLength = 6

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report fields by their json names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	must(validate.RegisterValidation("otp", func(fl validator.FieldLevel) bool {
		return IsOTP(fl.Field().String())
	}))
	must(validate.RegisterValidation("richtext", func(fl validator.FieldLevel) bool {
		return !richtext.IsEmpty(fl.Field().String())
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// IsOTP reports whether code is exactly OTPLength ASCII digits.
func IsOTP(code string) bool {
	if len(code) != OTPLength {
		return false
	}
	for _, r := range code {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Struct validates s and returns the first failure as a *models.ValidationError.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("invalid validation error: %w", err)
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err
	}
	first := validationErrors[0]
	return models.NewFieldValidationError(first.Field(), message(first.Field(), first.Tag(), first.Param()))
}

// Var validates a single value against tag, reporting failures under field.
func Var(field string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("invalid validation error: %w", err)
	}
	first := validationErrors[0]
	return models.NewFieldValidationError(field, message(field, first.Tag(), first.Param()))
}

func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "otp":
		return fmt.Sprintf("%s must be a %d-digit code", field, OTPLength)
	case "richtext":
		return fmt.Sprintf("%s must not be empty", field)
	default:
		return fmt.Sprintf("%s failed validation on %s", field, tag)
	}
}
