package types

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateIDPresent ensures a path identifier is non-blank.
func ValidateIDPresent(id string) error {
	return validatorInstance().Var(strings.TrimSpace(id), "required")
}

// ValidateStruct runs the `validate` tags of v.
func ValidateStruct(v any) error {
	return validatorInstance().Struct(v)
}
