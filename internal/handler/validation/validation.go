package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once

	messages = map[string]string{
		"required": "{field} is required",
		"min":      "{field} must be at least {param} characters",
		"max":      "{field} must be at most {param} characters",
		"len":      "{field} must be exactly {param} characters",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"uuid":     "{field} must be a valid UUID",
		"datetime": "{field} must be a date in YYYY-MM-DD format",
		"oneof":    "{field} must be one of {param}",
		"url":      "{field} must be a valid URL",
		"alphanum": "{field} must contain only letters and digits",
	}
)

// Register makes gin's validator report json/form tag names instead of Go
// field names. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*val.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(tagName)
	})
}

func tagName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Details maps each invalid field to a human readable message. It returns
// nil when err is not a validation failure (e.g. malformed JSON).
func Details(err error) map[string]string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return nil
	}

	details := make(map[string]string, len(valErrors))
	for _, fe := range valErrors {
		field := fe.Field()
		if _, seen := details[field]; seen {
			continue
		}
		details[field] = message(fe)
	}
	return details
}

func message(fe val.FieldError) string {
	tmpl, ok := messages[fe.Tag()]
	if !ok {
		return fe.Field() + " is invalid"
	}
	msg := strings.ReplaceAll(tmpl, "{field}", fe.Field())
	return strings.ReplaceAll(msg, "{param}", fe.Param())
}
