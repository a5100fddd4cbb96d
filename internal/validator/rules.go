package validator

import (
	"log"
	"regexp"

	"nibash_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Same shape the legacy handlers accepted: digits with optional +, -, spaces
// and parentheses, 10-15 characters.
var phoneRe = regexp.MustCompile(`^[0-9+\-\s()]{10,15}$`)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup defect.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-phone", validatePhone)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	switch models.UserRole(value) {
	case models.UserRoleCustomer, models.UserRoleProfessional, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return phoneRe.MatchString(value)
}
