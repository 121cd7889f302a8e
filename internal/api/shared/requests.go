package shared

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CategoryRequest carries a category taken from the URL or a form.
// Only the transport limits are checked here; the browser accepts any
// label, including ones outside its configured list.
type CategoryRequest struct {
	Category string `validate:"required,max=128"`
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}
