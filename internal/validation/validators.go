package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Tiliavir/wdc/internal/timecalc"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Value types are validated through their string form.
	Validate.RegisterCustomTypeFunc(dateValue, timecalc.Date{})

	if err := Validate.RegisterValidation("hhmm", validateHHMM); err != nil {
		panic(fmt.Sprintf("failed to register hhmm validator: %v", err))
	}
	if err := Validate.RegisterValidation("isodate", validateISODate); err != nil {
		panic(fmt.Sprintf("failed to register isodate validator: %v", err))
	}
}

func dateValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(timecalc.Date); ok {
		return d.String()
	}
	return nil
}

// validateHHMM validates a four digit 24-hour clock string
func validateHHMM(fl validator.FieldLevel) bool {
	return timecalc.IsTimeValid(fl.Field().String())
}

// validateISODate validates a YYYY-MM-DD calendar date
func validateISODate(fl validator.FieldLevel) bool {
	return timecalc.NewDate(fl.Field().String()).IsValid()
}

// Describe turns validator errors into a single readable line.
func Describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
