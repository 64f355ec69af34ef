package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/barstock/backend/internal/domain/catalog"
	"github.com/barstock/backend/internal/domain/shared"
)

// SetupValidator configures the binding validator: error messages use
// JSON field names, and the unittype tag checks product unit types.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("unittype", func(fl validator.FieldLevel) bool {
		return catalog.UnitType(fl.Field().String()).IsValid()
	})
}

// FormatBindingError converts binding failures into field-level
// validation errors. Non-validator errors (malformed JSON, type
// mismatches) come back as a single message with no field breakdown.
func FormatBindingError(err error) *shared.ValidationError {
	verr := &shared.ValidationError{}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.Add("", err.Error())
		return verr
	}
	for _, e := range validationErrors {
		verr.Add(e.Field(), validationMessage(e))
	}
	return verr
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "unittype":
		return "Unknown unit type"
	default:
		return "Invalid value"
	}
}
