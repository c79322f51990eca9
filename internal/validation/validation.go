package validation

import (
	"errors"
	"net/url"
	"regexp"
	"unicode"
	"unicode/utf8"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsEmail reports whether s looks like a syntactically valid email address.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsURL reports whether s is an absolute http(s) URL.
func IsURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsStrongPassword requires at least 6 characters with at least one
// lowercase letter, one uppercase letter, one digit and one symbol.
func IsStrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < 6 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// ValidateSignup checks a signup payload. Checks run in a fixed order and
// the first failing one wins, so callers see exactly one error per call.
func ValidateSignup(firstName, lastName, email, password string) error {
	// Length limits count characters, not bytes, so multibyte names are
	// measured the way a user would count them.
	switch {
	case firstName == "" || lastName == "" || email == "" || password == "":
		return errors.New("All fields are required")
	case utf8.RuneCountInString(firstName) < 3 || utf8.RuneCountInString(firstName) > 20:
		return errors.New("First name must be between 3 and 20 characters")
	case utf8.RuneCountInString(lastName) > 20:
		return errors.New("Last name must be less than 20 characters")
	case !IsEmail(email):
		return errors.New("Email is not valid")
	case utf8.RuneCountInString(password) < 6:
		return errors.New("Password must be at least 6 characters long")
	case !IsStrongPassword(password):
		return errors.New("Password is not strong enough")
	}
	return nil
}
