package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Letters, digits, spaces and common punctuation: . ' - / & ( ) , +
var benefitNameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),+-]+$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("benefit_name", BenefitName)
	_ = v.RegisterValidation("no_control", NoControl)
}

// BenefitName validates a benefit name picked from a suggestion list
func BenefitName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // pair with required when mandatory
	}
	return benefitNameRegex.MatchString(val)
}

// NoControl rejects control characters other than tab, newline and carriage return
func NoControl(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
