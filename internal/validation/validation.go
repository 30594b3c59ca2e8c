package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"mythworld/internal/models"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is the list of problems found in one request
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names rather than Go field names
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		validate.RegisterValidation("agegroup", func(fl validator.FieldLevel) bool {
			return models.AgeGroup(fl.Field().String()).Valid()
		})
		validate.RegisterValidation("controlkey", func(fl validator.FieldLevel) bool {
			return models.ControlKey(fl.Field().String()).Valid()
		})
		validate.RegisterValidation("action", func(fl validator.FieldLevel) bool {
			return models.Action(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Struct validates v using its `validate` tags. Field failures come back as
// Errors; anything else is returned as is.
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "agegroup":
		return fmt.Sprintf("unknown age group %q", fe.Value())
	case "controlkey":
		return fmt.Sprintf("unknown control %q", fe.Value())
	case "action":
		return fmt.Sprintf("unknown action %q", fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
