package services

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wadjakorntonsri/linkpulse/pkg/core/domain"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// validateProfile checks a profile before it is published. Failures wrap
// domain.ErrInvalidProfile and the validator's field errors.
func validateProfile(v *validator.Validate, p *domain.Profile) error {
	if err := v.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidProfile, err)
	}
	return nil
}
