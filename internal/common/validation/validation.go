// Package validation runs struct tag validation for client side forms and
// reports failures as apperrors.ValidationErrors keyed by JSON field name.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/pkg/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// V returns the shared validator with the SkillSwap custom validations registered.
func V() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
		_ = validate.RegisterValidation("category", categoryValidator)
	})
	return validate
}

// categoryValidator accepts only the canonical category values.
func categoryValidator(fl validator.FieldLevel) bool {
	return types.Category(fl.Field().String()).Valid()
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Check validates v. It returns nil when v is valid.
func Check(v any) error {
	err := V().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.ErrValidation.MsgErr("validation failed", err)
	}

	out := make(apperrors.ValidationErrors, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, apperrors.ValidationError{
			Field:  e.Field(),
			Value:  e.Value(),
			ErrStr: message(e),
		})
	}
	return out
}

// Label turns a JSON field name into a display label: "max_price" becomes "Max Price".
func Label(field string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(field, "_", " "))
}

func message(e validator.FieldError) string {
	label := Label(e.Field())
	switch e.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return label + " must be at least " + e.Param()
	case "max":
		return label + " must be at most " + e.Param()
	case "category":
		names := make([]string, 0, len(types.Categories))
		for _, c := range types.Categories {
			names = append(names, string(c))
		}
		return label + " must be one of " + strings.Join(names, ", ")
	default:
		return label + " is invalid"
	}
}
