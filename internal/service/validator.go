package service

import (
	"regexp"
	"strings"

	"github.com/opsdesk/agentdesk/internal/domain"
)

const minPasswordLength = 6

// mobilePattern is the E.164 international phone format: a plus sign, a
// non-zero leading digit, then up to 14 more digits.
var mobilePattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateCredentials checks an email/password pair for login and registration.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return domain.ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return domain.ErrShortPassword
	}
	return nil
}

// ValidateNewAgent checks the fields of an agent creation request.
func ValidateNewAgent(name, email, mobile, password string) error {
	if strings.TrimSpace(name) == "" {
		return domain.ErrNameRequired
	}
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}
	if !mobilePattern.MatchString(mobile) {
		return domain.ErrInvalidMobile
	}
	return nil
}
