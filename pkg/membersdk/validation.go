package membersdk

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var reUsername = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON names.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return reUsername.MatchString(strings.TrimSpace(fl.Field().String()))
		})

		validate = v
	})
	return validate
}

// Validate checks a request struct against its validate tags. It returns a
// map of JSON field names to messages, or nil when v is valid.
func Validate(v any) map[string]string {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"body": err.Error()}
	}

	errs := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = fieldError(fe)
		}
	}
	return errs
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("too short (min %s)", fe.Param())
		}
		return fmt.Sprintf("must have at least %s items", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("too long (max %s)", fe.Param())
		}
		return fmt.Sprintf("must have at most %s items", fe.Param())
	case "alphanum":
		return "must only contain a-z, A-Z or 0-9"
	case "username":
		return "must only contain a-z, A-Z, 0-9, _, . or -"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
