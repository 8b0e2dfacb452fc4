package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// loginIDRegex: letters, digits, '_', '.', '-' (3-30 chars)
var loginIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,30}$`)

// ValidateLoginID validates a sign-in id
func ValidateLoginID(fl validator.FieldLevel) bool {
	return loginIDRegex.MatchString(fl.Field().String())
}
