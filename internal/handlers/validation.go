package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

const skuFormatMessage = "It must comply with the format FAL-XXXXXXX, where X is a number"

var (
	skuPattern      = regexp.MustCompile(`^FAL-\d+$`)
	imageURLPattern = regexp.MustCompile(`^(http|https)://[-a-zA-Z0-9+&@#/%?=~_|!:,.;]*[-a-zA-Z0-9+&@#/%=~_|]$`)
)

// newValidator builds the validator shared by every product endpoint.
func newValidator() *validator.Validate {
	v := validator.New()

	// Prices are compared as numbers by the gte/lte tags.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "notblank", validators.NotBlank)
	mustRegister(v, "sku", matches(skuPattern))
	mustRegister(v, "image_url", matches(imageURLPattern))
	mustRegister(v, "length", lengthBetween)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

func matches(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}
}

// lengthBetween implements length=MIN-MAX, counting characters rather than bytes.
func lengthBetween(fl validator.FieldLevel) bool {
	lower, upper, err := parseRange(fl.Param())
	if err != nil {
		panic(fmt.Sprintf("bad length parameter %q: %v", fl.Param(), err))
	}
	n := utf8.RuneCountInString(fl.Field().String())
	return n >= lower && n <= upper
}

func parseRange(param string) (int, int, error) {
	lo, hi, ok := strings.Cut(param, "-")
	if !ok {
		return 0, 0, fmt.Errorf("expected MIN-MAX")
	}
	lower, err := strconv.Atoi(lo)
	if err != nil {
		return 0, 0, err
	}
	upper, err := strconv.Atoi(hi)
	if err != nil {
		return 0, 0, err
	}
	return lower, upper, nil
}

// violationMessage renders the client-facing text for one failed rule.
func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "You must enter a value"
	case "length":
		return fmt.Sprintf("The value must be between %s characters", strings.Replace(fe.Param(), "-", " and ", 1))
	case "sku":
		return skuFormatMessage
	case "gte":
		return fmt.Sprintf("The minimum value is %s", fe.Param())
	case "lte":
		return fmt.Sprintf("The maximum value is %s", fe.Param())
	case "image_url":
		return "It must comply with the URL format"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// checkRules validates every rule of every tagged field of req on its own, so
// a field breaking several rules reports each of them. Embedded structs are
// walked in declaration order. Only "required" runs against a nil pointer.
func checkRules(v *validator.Validate, req interface{}) error {
	var details []string
	if err := collectViolations(v, reflect.Indirect(reflect.ValueOf(req)), &details); err != nil {
		return err
	}
	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}

func collectViolations(v *validator.Validate, value reflect.Value, details *[]string) error {
	t := value.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := collectViolations(v, value.Field(i), details); err != nil {
				return err
			}
			continue
		}
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		fieldValue := value.Field(i)
		isNil := fieldValue.Kind() == reflect.Ptr && fieldValue.IsNil()
		for _, rule := range strings.Split(tag, ",") {
			if isNil && rule != "required" {
				continue
			}
			err := v.Var(fieldValue.Interface(), rule)
			if err == nil {
				continue
			}
			var validationErrors validator.ValidationErrors
			if !errors.As(err, &validationErrors) {
				return err
			}
			for _, fe := range validationErrors {
				*details = append(*details, violationMessage(fe))
			}
		}
	}
	return nil
}
