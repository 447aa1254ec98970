package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
)

// Validator instance
var validate *validator.Validate

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Calendar date in YYYY-MM-DD form
	validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	// Wall clock time in HH:MM form
	validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	fieldErrs, _ := validateStruct(s)
	return fieldErrs
}

// Check validates a struct and returns a validation error naming the first failing field.
func Check(s interface{}) error {
	fieldErrs, first := validateStruct(s)
	if fieldErrs == nil {
		return nil
	}
	if first == nil {
		return apperror.ValidationFields("Invalid request", fieldErrs)
	}

	message := "Invalid value for field: " + fieldName(first)
	if first.Tag() == "required" {
		message = "Missing required field: " + fieldName(first)
	}
	return apperror.ValidationFields(message, fieldErrs)
}

func validateStruct(s interface{}) (map[string]string, validator.FieldError) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return map[string]string{"_": err.Error()}, nil
	}

	fieldErrs := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs[fieldName(fe)] = describe(fe)
	}
	return fieldErrs, validationErrs[0]
}

// fieldName drops the root struct from the namespace, so nested fields read as items[0].name.
func fieldName(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short (min: " + fe.Param() + ")"
	case "max":
		return "Value is too long (max: " + fe.Param() + ")"
	case "gte":
		return "Value must be at least " + fe.Param()
	case "lte":
		return "Value must be at most " + fe.Param()
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "isodate":
		return "Invalid date. Must be YYYY-MM-DD"
	case "clock":
		return "Invalid time. Must be HH:MM"
	case "url":
		return "Invalid URL format"
	default:
		return "Invalid value"
	}
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
