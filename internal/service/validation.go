package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/community-hub-api/internal/mention"
)

// NewValidator returns the request validator shared by every service, with
// the "username" tag registered.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return mention.ValidUsername(fl.Field().String())
	})
	return v
}
