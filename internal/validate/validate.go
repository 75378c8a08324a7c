package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

func Instance() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})

	return instance
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	return Instance().Struct(v)
}

// IsSchemaError reports whether err came from tag validation, i.e. the
// request body was well-formed JSON but failed the declared constraints.
func IsSchemaError(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}
