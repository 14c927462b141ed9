// Package validator adapts github.com/go-playground/validator/v10 to echo's
// echo.Validator interface.
package validator

import "github.com/go-playground/validator/v10"

// CustomValidator wraps a go-playground validator instance so it can be
// registered as an echo.Echo's Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds a CustomValidator using struct `validate` tags.
func New() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *CustomValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
