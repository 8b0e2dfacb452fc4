package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const birthdayLayout = "2006-01-02"

// oldest birthday accepted by the form
var minBirthday = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ValidateBirthday accepts YYYY-MM-DD dates between 1900-01-01 and today
func ValidateBirthday(fl validator.FieldLevel) bool {
	return IsValidBirthday(fl.Field().String(), time.Now())
}

// IsValidBirthday is the tag-free form of ValidateBirthday, used by CSV import
func IsValidBirthday(s string, today time.Time) bool {
	d, err := time.Parse(birthdayLayout, s)
	if err != nil {
		return false
	}
	todayUTC := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(minBirthday) && !d.After(todayUTC)
}
