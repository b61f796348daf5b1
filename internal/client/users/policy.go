package users

import (
	"unicode"

	"github.com/zenloop/zenloop/internal/client/apperr"
)

// ValidatePassword enforces the password policy for locally registered
// accounts: at least 6 characters, one uppercase letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return apperr.New(apperr.CodeWeakPassword, "password must be at least 6 characters")
	}

	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return apperr.New(apperr.CodeWeakPassword, "password must contain an uppercase letter")
	}
	if !hasDigit {
		return apperr.New(apperr.CodeWeakPassword, "password must contain a digit")
	}

	return nil
}
