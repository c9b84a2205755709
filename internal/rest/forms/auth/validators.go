package auth

import (
	"net/mail"
	"strings"
	"unicode"
)

const passwordSpecials = "@$!%*?&"

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// checkPasswordPolicy returns an empty string for an acceptable password:
// at least 8 characters mixing lower, upper, digit and one of the special
// characters.
func checkPasswordPolicy(password string) string {
	if len(password) < 8 {
		return "must be at least 8 characters"
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return "must contain a lowercase letter, an uppercase letter, a digit and a special character"
	}
	return ""
}
