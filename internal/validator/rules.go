package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Indian mobile numbers: 10 digits, first digit 6-9.
var indianPhonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// IsIndianPhone reports whether phone matches the accepted mobile format.
// Exposed so services can validate numbers arriving outside DTO binding.
func IsIndianPhone(phone string) bool {
	return indianPhonePattern.MatchString(phone)
}

func registerCustomRules(v *validator.Validate) error {
	return v.RegisterValidation("in_phone", func(fl validator.FieldLevel) bool {
		return IsIndianPhone(fl.Field().String())
	})
}
