package models

import "time"

type Ticket struct {
	TicketID      string     `json:"ticket_id"`
	TicketNumber  string     `json:"ticket_number"`
	InstitutionID int64      `json:"institution_id"`
	ServiceID     *int64     `json:"service_id,omitempty"`
	UserID        *int64     `json:"user_id,omitempty"`
	OperatorID    *int64     `json:"operator_id,omitempty"`
	Status        string     `json:"status"`
	QueuePosition int        `json:"queue_position"`
	CreatedAt     time.Time  `json:"created_at"`
	CalledAt      *time.Time `json:"called_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

const (
	StatusWaiting   = "waiting"
	StatusCalled    = "called"
	StatusInService = "in_service"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusMissed    = "missed"
)

func TerminalStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusCancelled, StatusMissed:
		return true
	default:
		return false
	}
}
