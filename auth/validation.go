package auth

import (
	"regexp"
	"strings"

	apperrors "github.com/basebase-ai/basebase-go/internal/errors"
)

var usernameRegexp = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateUsername checks the sign-in username: non-empty, letters,
// numbers and underscores only.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.NewValidation("Please enter both username and phone number")
	}
	if !usernameRegexp.MatchString(username) {
		return apperrors.NewValidation("Username must contain only letters, numbers, and underscores")
	}
	return nil
}

// ValidatePhone checks that a phone number was supplied. Format
// validation is the authentication service's job.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return apperrors.NewValidation("Please enter both username and phone number")
	}
	return nil
}

// ValidateCode checks that a verification code was supplied.
func ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return apperrors.NewValidation("Please enter the verification code")
	}
	return nil
}
