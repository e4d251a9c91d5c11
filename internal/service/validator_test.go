package service_test

import (
	"testing"

	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, service.ValidateCredentials("admin@example.com", "secret1"))

	assert.ErrorIs(t, service.ValidateCredentials("", "secret1"), domain.ErrEmailRequired)
	assert.ErrorIs(t, service.ValidateCredentials("not-an-email", "secret1"), domain.ErrInvalidEmail)
	assert.ErrorIs(t, service.ValidateCredentials("admin@example.com", "short"), domain.ErrShortPassword)
}

func TestValidateNewAgent_Mobile(t *testing.T) {
	valid := []string{"+14155550101", "+919876543210", "+12"}
	for _, mobile := range valid {
		assert.NoError(t, service.ValidateNewAgent("Agent", "a@example.com", mobile, "secret1"), mobile)
	}

	invalid := []string{
		"14155550101",      // missing plus
		"+014155550101",    // leading zero
		"+1",               // too short
		"+1234567890123456", // more than 15 digits
		"+1415555 0101",    // whitespace
		"+1415555O101",     // letter
		"",
	}
	for _, mobile := range invalid {
		assert.ErrorIs(t, service.ValidateNewAgent("Agent", "a@example.com", mobile, "secret1"), domain.ErrInvalidMobile, mobile)
	}
}

func TestValidateNewAgent_Fields(t *testing.T) {
	assert.ErrorIs(t, service.ValidateNewAgent("  ", "a@example.com", "+14155550101", "secret1"), domain.ErrNameRequired)
	assert.ErrorIs(t, service.ValidateNewAgent("Agent", "", "+14155550101", "secret1"), domain.ErrEmailRequired)
	assert.ErrorIs(t, service.ValidateNewAgent("Agent", "a@example.com", "+14155550101", "12345"), domain.ErrShortPassword)
}
