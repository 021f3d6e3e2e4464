package auth

import (
	"regexp"
	"unicode/utf8"
)

const minFullnameLength = 3

var (
	emailRegexp = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

	// RE2 has no lookaheads, so the password rule is split into its parts.
	passwordLength = regexp.MustCompile(`^.{6,20}$`)
	passwordDigit  = regexp.MustCompile(`[0-9]`)
	passwordLower  = regexp.MustCompile(`[a-z]`)
	passwordUpper  = regexp.MustCompile(`[A-Z]`)
)

//ValidateSignup checks the signup fields in a fixed order and returns the first failure.
func ValidateSignup(fullname, email, password string) error {
	if utf8.RuneCountInString(fullname) < minFullnameLength {
		return ErrNameTooShort
	}

	if email == "" {
		return ErrEmailMissing
	}

	if !emailRegexp.MatchString(email) {
		return ErrEmailInvalid
	}

	if !isStrongPassword(password) {
		return ErrPasswordWeak
	}

	return nil
}

func isStrongPassword(password string) bool {
	return passwordLength.MatchString(password) &&
		passwordDigit.MatchString(password) &&
		passwordLower.MatchString(password) &&
		passwordUpper.MatchString(password)
}
