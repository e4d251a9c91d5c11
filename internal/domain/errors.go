package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Auth errors
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid authentication token")

	// Agent errors
	ErrAgentNotFound   = errors.New("agent not found")
	ErrAgentEmailTaken = errors.New("an agent with this email already exists")
	ErrInvalidMobile   = errors.New("mobile must include country code, e.g. +1234567890")
	ErrNoAgents        = errors.New("no agents available for distribution")

	// Upload errors
	ErrListNotFound   = errors.New("list not found")
	ErrEmptyFile      = errors.New("uploaded file contains no items")
	ErrUnsupportedExt = errors.New("only CSV, XLSX, and XLS files are allowed")
	ErrNoFile         = errors.New("please select a file to upload")

	// Validation errors
	ErrEmailRequired = errors.New("email is required")
	ErrNameRequired  = errors.New("name is required")
	ErrShortPassword = errors.New("password must be at least 6 characters long")
	ErrInvalidEmail  = errors.New("invalid email address")
)
