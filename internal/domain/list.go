package domain

import "time"

// Item is a single contact record parsed from an uploaded spreadsheet row.
type Item struct {
	ID        string
	FirstName string
	Phone     string
	Notes     string
}

// Distribution is the subset of an uploaded list assigned to one agent.
type Distribution struct {
	ID            string
	ListID        string
	AgentID       string
	AgentName     string
	AgentEmail    string
	AssignedCount int
	Items         []Item
}

// UploadedList is one spreadsheet upload event and its resulting distribution.
// Lists are immutable once created; they are read-only history.
type UploadedList struct {
	ID            string
	FileName      string
	TotalItems    int
	UploadedBy    string
	CreatedAt     time.Time
	Distributions []Distribution
}

// AgentCount returns the number of agents the list was distributed across.
func (l *UploadedList) AgentCount() int {
	return len(l.Distributions)
}
