package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/aradsms/contacts_service/internal/contacts_service/domain"
)

// NewValidator returns a validator that also understands the contact_category
// and phone_kind tags. Both decode through the domain token tables.
func NewValidator() *validator.Validate {
	validate := validator.New()
	// Registration only fails for empty tags or nil functions.
	_ = validate.RegisterValidation("contact_category", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCategory(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("phone_kind", func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePhoneKind(fl.Field().String())
		return err == nil
	})
	return validate
}
