package store

import (
	"context"
	"encoding/json"
	"time"

	"queueflow/internal/models"
)

type CreateTicketInput struct {
	InstitutionID int64
	ServiceID     *int64
	UserID        *int64
	CreatedAt     time.Time
}

type CallNextInput struct {
	InstitutionID int64
	ServiceID     *int64
	OperatorID    int64
	CalledAt      time.Time
}

type TicketActionInput struct {
	InstitutionID int64
	TicketNumber  string
	OperatorID    *int64
	ActorUserID   *int64
	Admin         bool
	OccurredAt    time.Time
}

// TicketReceipt is what the kiosk prints on creation: the ticket plus the
// derived queue facts at that instant.
type TicketReceipt struct {
	Ticket               models.Ticket `json:"ticket"`
	PeopleAhead          int           `json:"people_ahead"`
	EstimatedWaitMinutes int           `json:"estimated_wait_minutes"`
	InstitutionName      string        `json:"institution_name"`
}

type TicketStats struct {
	TicketNumber         string `json:"ticket_number"`
	Status               string `json:"status"`
	QueuePosition        int    `json:"queue_position"`
	PeopleAhead          int    `json:"people_ahead"`
	EstimatedWaitMinutes int    `json:"estimated_wait_minutes"`
	InstitutionName      string `json:"institution_name"`
}

type TicketStore interface {
	CreateTicket(ctx context.Context, input CreateTicketInput) (TicketReceipt, error)
	GetTicketByNumber(ctx context.Context, institutionID int64, number string) (models.Ticket, error)
	GetTicketStats(ctx context.Context, institutionID int64, number string) (TicketStats, error)
	ListWaitingTickets(ctx context.Context, institutionID int64, serviceID *int64) ([]models.Ticket, error)
	CallNext(ctx context.Context, input CallNextInput) (models.Ticket, bool, error)
	StartService(ctx context.Context, input TicketActionInput) (models.Ticket, error)
	CompleteTicket(ctx context.Context, input TicketActionInput) (models.Ticket, error)
	MissTicket(ctx context.Context, input TicketActionInput) (models.Ticket, error)
	CancelTicket(ctx context.Context, input TicketActionInput) (models.Ticket, error)
	QueueSummary(ctx context.Context, institutionID int64, serviceID *int64) (models.QueueSummary, error)
	AutoMiss(ctx context.Context, grace time.Duration, batchSize int) (int, error)
	ListOutboxEvents(ctx context.Context, after time.Time, limit int) ([]OutboxEvent, error)
}

type CreateUserInput struct {
	Name          string
	Email         string
	Password      string
	Role          string
	InstitutionID *int64
}

type Session struct {
	SessionID string
	UserID    int64
	ExpiresAt time.Time
}

type LoginResult struct {
	User    models.User
	Session Session
}

type OperatorStats struct {
	OperatorID         int64  `json:"operator_id"`
	Name               string `json:"name"`
	TicketsServedToday int    `json:"tickets_served_today"`
	CurrentTicket      string `json:"current_ticket,omitempty"`
}

type UserStore interface {
	CreateUser(ctx context.Context, input CreateUserInput) (models.User, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	GetSession(ctx context.Context, sessionID string) (Session, models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	ListUserTickets(ctx context.Context, userID int64, limit int) ([]models.Ticket, error)
	ListOperators(ctx context.Context, institutionID *int64) ([]models.User, error)
	OperatorStats(ctx context.Context, operatorID int64) (OperatorStats, error)
}

type CreateInstitutionInput struct {
	Name     string
	Category string
	Location string
	Address  *string
	Phone    *string
}

type CreateServiceInput struct {
	InstitutionID int64
	Name          string
	AvgMinutes    int
}

type AdminStats struct {
	TotalInstitutions     int `json:"total_institutions"`
	TotalUsers            int `json:"total_users"`
	TotalOperators        int `json:"total_operators"`
	TotalTicketsToday     int `json:"total_tickets_today"`
	TicketsWaiting        int `json:"tickets_waiting"`
	TicketsCompletedToday int `json:"tickets_completed_today"`
	TicketsMissedToday    int `json:"tickets_missed_today"`
}

type AdminStore interface {
	CreateInstitution(ctx context.Context, input CreateInstitutionInput) (models.Institution, error)
	GetInstitution(ctx context.Context, institutionID int64) (models.Institution, error)
	ListInstitutions(ctx context.Context, category string) ([]models.Institution, error)
	CreateService(ctx context.Context, input CreateServiceInput) (models.Service, error)
	ListServices(ctx context.Context, institutionID int64) ([]models.Service, error)
	AdminStats(ctx context.Context) (AdminStats, error)
}

type OutboxEvent struct {
	EventID   string          `json:"event_id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
