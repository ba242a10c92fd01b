// Package validation holds the request field validators shared by the
// registration and login handlers.
package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"unicode"
)

// ValidationError names the field that failed and why. It maps to a 400
// response at the HTTP layer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

var (
	usernameRe   = regexp.MustCompile(`^[a-zA-Z0-9_]{3,18}$`)
	nameRe       = regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ-]{1,50}$`)
	codeRe       = regexp.MustCompile(`^[0-9]{6}$`)
	passwordSpec = `!@#$%^&*()\-_=+[]{};:'",.<>/?\|` + "`~"
)

// Username accepts 3-18 characters of letters, digits and underscore.
func Username(username string) error {
	if !usernameRe.MatchString(username) {
		return &ValidationError{Field: "username", Reason: "must be 3-18 characters of letters, digits or underscore"}
	}
	return nil
}

// Email validates the address form via net/mail.
func Email(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	return nil
}

// Password requires 8-50 characters with at least one uppercase letter, one
// lowercase letter, one digit and one special character.
func Password(password string) error {
	runes := []rune(password)
	if len(runes) < 8 || len(runes) > 50 {
		return &ValidationError{Field: "password", Reason: "must be 8-50 characters"}
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case containsRune(passwordSpec, r):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return &ValidationError{
			Field:  "password",
			Reason: "must contain an uppercase letter, a lowercase letter, a digit and a special character",
		}
	}
	return nil
}

// Name accepts 1-50 letters or hyphens, for profile name fields.
func Name(field, value string) error {
	if !nameRe.MatchString(value) {
		return &ValidationError{Field: field, Reason: "must be 1-50 letters or hyphens"}
	}
	return nil
}

// OptionalName is Name but permits the empty string.
func OptionalName(field, value string) error {
	if value == "" {
		return nil
	}
	return Name(field, value)
}

// ConfirmationCode accepts exactly six digits.
func ConfirmationCode(code string) error {
	if !codeRe.MatchString(code) {
		return &ValidationError{Field: "confirmation_code", Reason: "must be a 6-digit code"}
	}
	return nil
}

// URL accepts an empty string or an absolute http(s) URL.
func URL(field, value string) error {
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return &ValidationError{Field: field, Reason: "must be an absolute http(s) URL"}
	}
	return nil
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
