package domain

import "time"

// Admin represents an administrator account that can manage agents and uploads.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
