package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (v *ValidationError) Error() string {
	return v.Message
}

type Validation struct {
	Validator *validator.Validate
}

func NewValidation() *Validation {
	return &Validation{
		Validator: validator.New(),
	}
}

// Validate checks every validate tag of data, a pointer to a struct.
func (v *Validation) Validate(data interface{}) error {
	return v.collect(data, v.Validator.Struct(data))
}

func (v *Validation) collect(data interface{}, err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	dataType := reflect.TypeOf(data)
	if dataType.Kind() == reflect.Pointer {
		dataType = dataType.Elem()
	}

	errs := make(map[string][]string)
	for _, fieldErr := range validationErrors {
		name := jsonName(dataType, fieldErr.StructField())

		var message string
		switch fieldErr.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", name)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters long", name, fieldErr.Param())
		case "max":
			message = fmt.Sprintf("%s must not exceed %s characters", name, fieldErr.Param())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", name, jsonName(dataType, fieldErr.Param()))
		default:
			message = fmt.Sprintf("%s is invalid (%s)", name, fieldErr.Tag())
		}

		errs[name] = append(errs[name], message)
	}

	return &ValidationError{
		Message: "Validation failed",
		Errors:  errs,
	}
}

// jsonName returns the json tag of the field, falling back to its lowercase name.
func jsonName(t reflect.Type, fieldName string) string {
	field, ok := t.FieldByName(fieldName)
	if !ok {
		return strings.ToLower(fieldName)
	}
	tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if tag == "" {
		return strings.ToLower(fieldName)
	}
	return tag
}
