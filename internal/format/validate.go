package format

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[1-9][\d]{0,15}$`)
	phoneNoise   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")

	// fieldValidator applies the same email rule the repository enforces on
	// records, so a form that passes here is never rejected there.
	fieldValidator = validator.New()
)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email) && fieldValidator.Var(email, "email") == nil
}

// ValidPhone ignores spaces, dashes and parentheses.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phoneNoise.Replace(phone))
}
