package services

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/yungbote/foodexplorer-backend/internal/domain/catalog"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func payloadValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return fl.Field().Kind() == reflect.String && strings.TrimSpace(fl.Field().String()) != ""
		})
		// Prices reach rules as float64 through the custom type func below.
		_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			if fl.Field().Kind() != reflect.Float64 {
				return false
			}
			f := fl.Field().Float()
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return false
			}
			d := decimal.NewFromFloat(f)
			return d.Exponent() >= -catalog.PriceScale && d.Abs().LessThan(catalog.PriceLimit)
		})
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		validate = v
	})
	return validate
}

// ValidatePayload checks a create/update body. Fields are checked in
// declaration order and only the first violation is reported.
func ValidatePayload(cat catalog.Category, p catalog.Payload) error {
	err := payloadValidator().Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apierr.Validation(fmt.Sprintf("invalid %s payload", cat.Name))
	}
	return apierr.Validation(payloadMessage(cat, verrs[0]))
}

func payloadMessage(cat catalog.Category, fe validator.FieldError) string {
	field := fe.StructField()
	element := false
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
		element = true
	}
	tooLong := fe.Tag() == "max"
	switch field {
	case "Name", "Category", "Description":
		label := strings.ToLower(field)
		if tooLong {
			return fmt.Sprintf("%s %s must be at most %s characters", cat.Name, label, fe.Param())
		}
		return fmt.Sprintf("%s %s is required and cannot be empty", cat.Name, label)
	case "Price":
		if fe.Tag() == "money" {
			return fmt.Sprintf("%s price must have at most %d decimal places and be less than %s",
				cat.Name, catalog.PriceScale, catalog.PriceLimit.String())
		}
		return fmt.Sprintf("%s price must be a number greater than zero", cat.Name)
	case "Tags", "Ingredients":
		label := strings.ToLower(field)
		switch {
		case element && tooLong:
			return fmt.Sprintf("%s %s must be at most %s characters each", cat.Name, label, fe.Param())
		case element:
			return fmt.Sprintf("%s %s cannot contain empty names", cat.Name, label)
		case field == "Tags":
			return fmt.Sprintf("%s must have at least one tag", cat.Name)
		default:
			return fmt.Sprintf("%s must have at least one ingredient", cat.Name)
		}
	case "Image":
		return fmt.Sprintf("%s image must be at most %s characters", cat.Name, fe.Param())
	default:
		return fmt.Sprintf("%s %s is invalid", cat.Name, strings.ToLower(field))
	}
}
