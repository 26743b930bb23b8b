package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"estatehub_backend/internal/models"
)

// registerCustomRules installs the domain-specific tags. A failed
// registration is a startup misconfiguration, so it is fatal.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("register validation tag %q: %v", tag, err)
		}
	}

	mustRegister("propertytype", validatePropertyType)
}

func validatePropertyType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidPropertyTypes[value]
}
