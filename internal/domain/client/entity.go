package client

import "time"

// Status enum
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusLead     Status = "lead"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusLead
}

type Client struct {
	ID        string
	Name      string
	Company   *string
	Email     *string
	Phone     string
	Address   *string
	GSTNumber *string
	Status    Status
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
