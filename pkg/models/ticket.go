package models

import (
	"time"

	"github.com/google/uuid"
)

// Ticket statuses as stored in the database.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketBlocked    = "blocked"
	TicketDone       = "done"
)

// Ticket represents a maintenance ticket for a rental property
type Ticket struct {
	ID          int64
	Code        string // stable external identifier, assigned at creation
	Title       string
	Description string
	Property    string
	Category    string
	Assignee    string
	Status      string
	DesiredDate *string // YYYY-MM-DD, the day the work should happen; nil if unscheduled
	ScheduledAt *int64  // Unix timestamp for an intra-day slot, nil if only the day is known
	CreatedAt   int64
}

// NewTicket creates an open Ticket with a fresh code and the current timestamp
func NewTicket(title, property, category string) *Ticket {
	return &Ticket{
		Code:      uuid.NewString(),
		Title:     title,
		Property:  property,
		Category:  category,
		Status:    TicketOpen,
		CreatedAt: time.Now().Unix(),
	}
}

// SearchText returns the fields free-text search matches against
func (t *Ticket) SearchText() []string {
	return []string{t.Title, t.Description, t.Property, t.Assignee}
}
