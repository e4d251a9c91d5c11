package domain

import "time"

// Agent represents a field agent to whom uploaded list items are distributed.
type Agent struct {
	ID           string
	Name         string
	Email        string
	Mobile       string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
