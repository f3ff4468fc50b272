package handlers

import (
	"github.com/go-playground/validator/v10"
)

type apiValidator struct {
	validate *validator.Validate
}

// NewValidator returns a Validator that checks the validate tags of the
// request models.
func NewValidator() Validator {
	return apiValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (v apiValidator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}
