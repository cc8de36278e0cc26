package models

import "time"

// Lead statuses. New leads always start as StatusNew.
const (
	StatusNew       = "NEW"
	StatusContacted = "CONTACTED"
	StatusQualified = "QUALIFIED"
	StatusWon       = "WON"
	StatusLost      = "LOST"
)

type Lead struct {
	ID         int       `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName,omitempty"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	AssignedTo int       `json:"assignedTo"`
	CreatedBy  int       `json:"createdBy"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}
