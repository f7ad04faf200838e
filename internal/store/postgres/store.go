package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"queueflow/internal/models"
	"queueflow/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultAvgServiceMinutes = 3

const ticketColumns = "ticket_id, ticket_number, institution_id, service_id, user_id, operator_id, status, queue_position, created_at, called_at, completed_at"

type Store struct {
	pool       *pgxpool.Pool
	dailyReset bool
}

type Options struct {
	// DailyCountReset resets the tickets_today counter when the counter row
	// is first touched on a new day. The ticket-number sequence itself is
	// never reset.
	DailyCountReset bool
}

func NewStore(pool *pgxpool.Pool, options Options) *Store {
	return &Store{
		pool:       pool,
		dailyReset: options.DailyCountReset,
	}
}

func (s *Store) CreateTicket(ctx context.Context, input store.CreateTicketInput) (store.TicketReceipt, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return store.TicketReceipt{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	institution, err := getInstitution(ctx, tx, input.InstitutionID)
	if err != nil {
		return store.TicketReceipt{}, err
	}

	seedAvg := defaultAvgServiceMinutes
	if input.ServiceID != nil {
		var service models.Service
		service, err = getActiveService(ctx, tx, *input.ServiceID, input.InstitutionID)
		if err != nil {
			return store.TicketReceipt{}, err
		}
		seedAvg = service.AvgMinutes
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	// The institution-wide counter row (scope 0) owns the number sequence.
	// Locking it first, and the service scope second, keeps lock order
	// consistent across create, call-next and cancel.
	instCounter, err := lockCounter(ctx, tx, input.InstitutionID, 0, defaultAvgServiceMinutes)
	if err != nil {
		return store.TicketReceipt{}, err
	}

	seq := instCounter.LastNumber + 1
	ticketsToday := instCounter.TicketsToday + 1
	counterDate := instCounter.CounterDate
	if s.dailyReset && beforeDay(instCounter.CounterDate, createdAt) {
		ticketsToday = 1
		counterDate = createdAt
	}
	if err = updateCounterSequence(ctx, tx, input.InstitutionID, 0, seq, ticketsToday, counterDate); err != nil {
		return store.TicketReceipt{}, err
	}

	scopeCounter := instCounter
	scope := scopeID(input.ServiceID)
	if scope != 0 {
		scopeCounter, err = lockCounter(ctx, tx, input.InstitutionID, scope, seedAvg)
		if err != nil {
			return store.TicketReceipt{}, err
		}
	}

	var waiting int
	waiting, err = countWaiting(ctx, tx, input.InstitutionID, scope)
	if err != nil {
		return store.TicketReceipt{}, err
	}
	position := waiting + 1

	number := store.FormatTicketNumber(institution.Category, seq)

	row := tx.QueryRow(ctx, `
		INSERT INTO tickets (
			ticket_id, ticket_number, institution_id, service_id, user_id,
			status, queue_position, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+ticketColumns+`
	`, uuid.NewString(), number, input.InstitutionID, input.ServiceID, input.UserID, models.StatusWaiting, position, createdAt)

	var ticket models.Ticket
	if ticket, err = scanTicket(row); err != nil {
		return store.TicketReceipt{}, err
	}

	if err = insertOutboxEvent(ctx, tx, "ticket.created", ticket); err != nil {
		return store.TicketReceipt{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return store.TicketReceipt{}, err
	}

	return store.TicketReceipt{
		Ticket:               ticket,
		PeopleAhead:          position - 1,
		EstimatedWaitMinutes: store.EstimateWaitMinutes(position-1, scopeCounter.AvgServiceMinutes),
		InstitutionName:      institution.Name,
	}, nil
}

func (s *Store) GetTicketByNumber(ctx context.Context, institutionID int64, number string) (models.Ticket, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE institution_id = $1 AND ticket_number = $2
	`, institutionID, number)
	ticket, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Ticket{}, store.ErrTicketNotFound
		}
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (s *Store) GetTicketStats(ctx context.Context, institutionID int64, number string) (store.TicketStats, error) {
	ticket, err := s.GetTicketByNumber(ctx, institutionID, number)
	if err != nil {
		return store.TicketStats{}, err
	}

	var institutionName string
	row := s.pool.QueryRow(ctx, `SELECT name FROM institutions WHERE id = $1`, institutionID)
	if err := row.Scan(&institutionName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.TicketStats{}, store.ErrInstitutionNotFound
		}
		return store.TicketStats{}, err
	}

	stats := store.TicketStats{
		TicketNumber:    ticket.TicketNumber,
		Status:          ticket.Status,
		QueuePosition:   ticket.QueuePosition,
		InstitutionName: institutionName,
	}
	if ticket.Status != models.StatusWaiting {
		return stats, nil
	}

	scope := scopeID(ticket.ServiceID)
	var ahead int
	row = s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tickets
		WHERE institution_id = $1 AND COALESCE(service_id, 0) = $2
			AND status = 'waiting' AND queue_position < $3
	`, institutionID, scope, ticket.QueuePosition)
	if err := row.Scan(&ahead); err != nil {
		return store.TicketStats{}, err
	}

	avg, err := readAvgServiceMinutes(ctx, s.pool, institutionID, scope)
	if err != nil {
		return store.TicketStats{}, err
	}

	stats.PeopleAhead = ahead
	stats.EstimatedWaitMinutes = store.EstimateWaitMinutes(ahead, avg)
	return stats, nil
}

func (s *Store) ListWaitingTickets(ctx context.Context, institutionID int64, serviceID *int64) ([]models.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE institution_id = $1 AND status = 'waiting'
	`
	args := []interface{}{institutionID}
	if serviceID != nil {
		query += " AND COALESCE(service_id, 0) = $2"
		args = append(args, *serviceID)
	}
	query += " ORDER BY queue_position ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *Store) CallNext(ctx context.Context, input store.CallNextInput) (models.Ticket, bool, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Ticket{}, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = getInstitution(ctx, tx, input.InstitutionID); err != nil {
		return models.Ticket{}, false, err
	}

	seedAvg := defaultAvgServiceMinutes
	if input.ServiceID != nil {
		var service models.Service
		service, err = getActiveService(ctx, tx, *input.ServiceID, input.InstitutionID)
		if err != nil {
			return models.Ticket{}, false, err
		}
		seedAvg = service.AvgMinutes
	}

	scope := scopeID(input.ServiceID)
	if _, err = lockCounter(ctx, tx, input.InstitutionID, scope, seedAvg); err != nil {
		return models.Ticket{}, false, err
	}

	calledAt := input.CalledAt
	if calledAt.IsZero() {
		calledAt = time.Now().UTC()
	}

	row := tx.QueryRow(ctx, `
		WITH next_ticket AS (
			SELECT ticket_id
			FROM tickets
			WHERE institution_id = $1 AND COALESCE(service_id, 0) = $2 AND status = 'waiting'
			ORDER BY queue_position ASC
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		UPDATE tickets
		SET status = 'called',
			called_at = $3,
			operator_id = $4
		FROM next_ticket
		WHERE tickets.ticket_id = next_ticket.ticket_id
		RETURNING `+prefixedTicketColumns("tickets"), input.InstitutionID, scope, calledAt, input.OperatorID)

	var ticket models.Ticket
	if ticket, err = scanTicket(row); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = tx.Commit(ctx)
			if err != nil {
				return models.Ticket{}, false, err
			}
			return models.Ticket{}, false, nil
		}
		return models.Ticket{}, false, err
	}

	if err = closePositionGap(ctx, tx, input.InstitutionID, scope, ticket.QueuePosition); err != nil {
		return models.Ticket{}, false, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE queue_counters
		SET current_number = $3, updated_at = NOW()
		WHERE institution_id = $1 AND service_id = $2
	`, input.InstitutionID, scope, ticket.TicketNumber)
	if err != nil {
		return models.Ticket{}, false, err
	}

	if err = insertOutboxEvent(ctx, tx, "ticket.called", ticket); err != nil {
		return models.Ticket{}, false, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Ticket{}, false, err
	}

	return ticket, true, nil
}

func (s *Store) StartService(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
	return s.updateTicketStatus(ctx, input, "start_service", models.StatusInService, "", "ticket.in_service")
}

func (s *Store) CompleteTicket(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
	return s.updateTicketStatus(ctx, input, "complete", models.StatusCompleted, "completed_at", "ticket.completed")
}

func (s *Store) MissTicket(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
	return s.updateTicketStatus(ctx, input, "miss", models.StatusMissed, "", "ticket.missed")
}

func (s *Store) CancelTicket(ctx context.Context, input store.TicketActionInput) (models.Ticket, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Ticket{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE institution_id = $1 AND ticket_number = $2
	`, input.InstitutionID, input.TicketNumber)
	var current models.Ticket
	if current, err = scanTicket(row); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrTicketNotFound
		}
		return models.Ticket{}, err
	}

	if !input.Admin && current.UserID != nil {
		if input.ActorUserID == nil || *input.ActorUserID != *current.UserID {
			err = store.ErrAccessDenied
			return models.Ticket{}, err
		}
	}
	if !store.ValidTransition("cancel", current.Status) {
		err = store.ErrInvalidState
		return models.Ticket{}, err
	}

	scope := scopeID(current.ServiceID)
	if _, err = lockCounter(ctx, tx, input.InstitutionID, scope, defaultAvgServiceMinutes); err != nil {
		return models.Ticket{}, err
	}

	// Guarded update: the ticket may have been called between the read above
	// and taking the scope lock.
	row = tx.QueryRow(ctx, `
		UPDATE tickets
		SET status = 'cancelled'
		WHERE institution_id = $1 AND ticket_number = $2 AND status = 'waiting'
		RETURNING `+ticketColumns, input.InstitutionID, input.TicketNumber)
	var ticket models.Ticket
	if ticket, err = scanTicket(row); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrInvalidState
		}
		return models.Ticket{}, err
	}

	if err = closePositionGap(ctx, tx, input.InstitutionID, scope, ticket.QueuePosition); err != nil {
		return models.Ticket{}, err
	}

	if err = insertOutboxEvent(ctx, tx, "ticket.cancelled", ticket); err != nil {
		return models.Ticket{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Ticket{}, err
	}

	return ticket, nil
}

func (s *Store) QueueSummary(ctx context.Context, institutionID int64, serviceID *int64) (models.QueueSummary, error) {
	var exists bool
	row := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM institutions WHERE id = $1)`, institutionID)
	if err := row.Scan(&exists); err != nil {
		return models.QueueSummary{}, err
	}
	if !exists {
		return models.QueueSummary{}, store.ErrInstitutionNotFound
	}

	scope := scopeID(serviceID)
	summary := models.QueueSummary{
		InstitutionID:     institutionID,
		ServiceID:         serviceID,
		AvgServiceMinutes: defaultAvgServiceMinutes,
	}

	var currentNumber sql.NullString
	var avg int
	row = s.pool.QueryRow(ctx, `
		SELECT current_number, avg_service_minutes
		FROM queue_counters
		WHERE institution_id = $1 AND service_id = $2
	`, institutionID, scope)
	if err := row.Scan(&currentNumber, &avg); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return models.QueueSummary{}, err
		}
	} else {
		summary.AvgServiceMinutes = avg
		if currentNumber.Valid {
			summary.CurrentNumber = currentNumber.String
		}
	}

	var waiting int
	row = s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tickets
		WHERE institution_id = $1 AND COALESCE(service_id, 0) = $2 AND status = 'waiting'
	`, institutionID, scope)
	if err := row.Scan(&waiting); err != nil {
		return models.QueueSummary{}, err
	}

	summary.PeopleWaiting = waiting
	summary.EstimatedWaitMinutes = store.EstimateWaitMinutes(waiting, summary.AvgServiceMinutes)
	return summary, nil
}

func (s *Store) AutoMiss(ctx context.Context, grace time.Duration, batchSize int) (int, error) {
	if grace <= 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	cutoff := time.Now().UTC().Add(-grace)
	rows, err := tx.Query(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE status = 'called' AND called_at <= $1
		ORDER BY called_at ASC
		FOR UPDATE SKIP LOCKED
		LIMIT $2
	`, cutoff, batchSize)
	if err != nil {
		return 0, err
	}
	var stale []models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		if ticket, err = scanTicket(rows); err != nil {
			rows.Close()
			return 0, err
		}
		stale = append(stale, ticket)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		if err = tx.Commit(ctx); err != nil {
			return 0, err
		}
		return 0, nil
	}

	for i := range stale {
		if _, err = tx.Exec(ctx, `
			UPDATE tickets
			SET status = 'missed'
			WHERE ticket_id = $1
		`, stale[i].TicketID); err != nil {
			return 0, err
		}
		stale[i].Status = models.StatusMissed
		if err = insertOutboxEvent(ctx, tx, "ticket.missed", stale[i]); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(stale), nil
}

func (s *Store) ListOutboxEvents(ctx context.Context, after time.Time, limit int) ([]store.OutboxEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT event_id, type, payload_json, created_at
		FROM outbox_events
	`
	args := []interface{}{}
	if !after.IsZero() {
		query += " WHERE created_at > $1 ORDER BY created_at ASC LIMIT $2"
		args = append(args, after, limit)
	} else {
		query += " ORDER BY created_at ASC LIMIT $1"
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []store.OutboxEvent
	for rows.Next() {
		var event store.OutboxEvent
		if err := rows.Scan(&event.EventID, &event.Type, &event.Payload, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) updateTicketStatus(ctx context.Context, input store.TicketActionInput, action, toStatus, timestampColumn, eventType string) (models.Ticket, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Ticket{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	row := tx.QueryRow(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE institution_id = $1 AND ticket_number = $2
		FOR UPDATE
	`, input.InstitutionID, input.TicketNumber)
	var current models.Ticket
	if current, err = scanTicket(row); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = store.ErrTicketNotFound
		}
		return models.Ticket{}, err
	}
	if !store.ValidTransition(action, current.Status) {
		err = store.ErrInvalidState
		return models.Ticket{}, err
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	updateQuery := `
		UPDATE tickets
		SET status = $1
	`
	args := []interface{}{toStatus}
	argPos := 2

	if timestampColumn != "" {
		updateQuery += fmt.Sprintf(", %s = $%d", timestampColumn, argPos)
		args = append(args, occurredAt)
		argPos++
	}
	if input.OperatorID != nil {
		updateQuery += fmt.Sprintf(", operator_id = $%d", argPos)
		args = append(args, *input.OperatorID)
		argPos++
	}

	updateQuery += fmt.Sprintf(" WHERE ticket_id = $%d RETURNING ", argPos) + ticketColumns
	args = append(args, current.TicketID)

	row = tx.QueryRow(ctx, updateQuery, args...)
	var ticket models.Ticket
	if ticket, err = scanTicket(row); err != nil {
		return models.Ticket{}, err
	}

	if err = insertOutboxEvent(ctx, tx, eventType, ticket); err != nil {
		return models.Ticket{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Ticket{}, err
	}

	return ticket, nil
}

type counterRow struct {
	LastNumber        int64
	TicketsToday      int
	CounterDate       time.Time
	CurrentNumber     string
	AvgServiceMinutes int
}

// lockCounter upserts the scope's counter row and locks it until commit,
// serializing every waiting-set mutation within the scope.
func lockCounter(ctx context.Context, tx pgx.Tx, institutionID, scope int64, seedAvg int) (counterRow, error) {
	if seedAvg <= 0 {
		seedAvg = defaultAvgServiceMinutes
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO queue_counters (institution_id, service_id, avg_service_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (institution_id, service_id) DO NOTHING
	`, institutionID, scope, seedAvg)
	if err != nil {
		return counterRow{}, err
	}

	var counter counterRow
	var currentNumber sql.NullString
	row := tx.QueryRow(ctx, `
		SELECT last_number, tickets_today, counter_date, current_number, avg_service_minutes
		FROM queue_counters
		WHERE institution_id = $1 AND service_id = $2
		FOR UPDATE
	`, institutionID, scope)
	if err := row.Scan(&counter.LastNumber, &counter.TicketsToday, &counter.CounterDate, &currentNumber, &counter.AvgServiceMinutes); err != nil {
		return counterRow{}, err
	}
	if currentNumber.Valid {
		counter.CurrentNumber = currentNumber.String
	}
	return counter, nil
}

func updateCounterSequence(ctx context.Context, tx pgx.Tx, institutionID, scope, lastNumber int64, ticketsToday int, counterDate time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE queue_counters
		SET last_number = $3,
			tickets_today = $4,
			counter_date = $5,
			updated_at = NOW()
		WHERE institution_id = $1 AND service_id = $2
	`, institutionID, scope, lastNumber, ticketsToday, counterDate)
	return err
}

// closePositionGap restores position contiguity after a ticket leaves the
// waiting set. Callers must hold the scope's counter lock.
func closePositionGap(ctx context.Context, tx pgx.Tx, institutionID, scope int64, removedPosition int) error {
	_, err := tx.Exec(ctx, `
		UPDATE tickets
		SET queue_position = queue_position - 1
		WHERE institution_id = $1 AND COALESCE(service_id, 0) = $2
			AND status = 'waiting' AND queue_position > $3
	`, institutionID, scope, removedPosition)
	return err
}

func countWaiting(ctx context.Context, tx pgx.Tx, institutionID, scope int64) (int, error) {
	var count int
	row := tx.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tickets
		WHERE institution_id = $1 AND COALESCE(service_id, 0) = $2 AND status = 'waiting'
	`, institutionID, scope)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func getInstitution(ctx context.Context, tx pgx.Tx, institutionID int64) (models.Institution, error) {
	var institution models.Institution
	var address, phone sql.NullString
	row := tx.QueryRow(ctx, `
		SELECT id, name, category, location, address, phone, created_at
		FROM institutions
		WHERE id = $1
	`, institutionID)
	if err := row.Scan(&institution.ID, &institution.Name, &institution.Category, &institution.Location, &address, &phone, &institution.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Institution{}, store.ErrInstitutionNotFound
		}
		return models.Institution{}, err
	}
	institution.Address = nullStringPtr(address)
	institution.Phone = nullStringPtr(phone)
	return institution, nil
}

func getActiveService(ctx context.Context, tx pgx.Tx, serviceID, institutionID int64) (models.Service, error) {
	var service models.Service
	row := tx.QueryRow(ctx, `
		SELECT id, institution_id, name, avg_minutes, active
		FROM services
		WHERE id = $1 AND institution_id = $2 AND active = TRUE
	`, serviceID, institutionID)
	if err := row.Scan(&service.ID, &service.InstitutionID, &service.Name, &service.AvgMinutes, &service.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Service{}, store.ErrServiceNotFound
		}
		return models.Service{}, err
	}
	return service, nil
}

type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func readAvgServiceMinutes(ctx context.Context, q queryer, institutionID, scope int64) (int, error) {
	var avg int
	row := q.QueryRow(ctx, `
		SELECT avg_service_minutes
		FROM queue_counters
		WHERE institution_id = $1 AND service_id = $2
	`, institutionID, scope)
	if err := row.Scan(&avg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defaultAvgServiceMinutes, nil
		}
		return 0, err
	}
	return avg, nil
}

func insertOutboxEvent(ctx context.Context, tx pgx.Tx, eventType string, ticket models.Ticket) error {
	payload := map[string]interface{}{
		"ticket_id":      ticket.TicketID,
		"ticket_number":  ticket.TicketNumber,
		"status":         ticket.Status,
		"institution_id": ticket.InstitutionID,
		"service_id":     ticket.ServiceID,
		"queue_position": ticket.QueuePosition,
		"created_at":     ticket.CreatedAt,
		"called_at":      ticket.CalledAt,
		"completed_at":   ticket.CompletedAt,
		"operator_id":    ticket.OperatorID,
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO outbox_events (event_id, type, payload_json, created_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.NewString(), eventType, payloadJSON, time.Now().UTC())
	return err
}

func scanTicket(row pgx.Row) (models.Ticket, error) {
	var ticket models.Ticket
	var serviceID, userID, operatorID sql.NullInt64
	var calledAt, completedAt sql.NullTime
	if err := row.Scan(&ticket.TicketID, &ticket.TicketNumber, &ticket.InstitutionID, &serviceID, &userID, &operatorID, &ticket.Status, &ticket.QueuePosition, &ticket.CreatedAt, &calledAt, &completedAt); err != nil {
		return models.Ticket{}, err
	}
	ticket.ServiceID = nullInt64Ptr(serviceID)
	ticket.UserID = nullInt64Ptr(userID)
	ticket.OperatorID = nullInt64Ptr(operatorID)
	ticket.CalledAt = nullTimePtr(calledAt)
	ticket.CompletedAt = nullTimePtr(completedAt)
	return ticket, nil
}

func prefixedTicketColumns(prefix string) string {
	return fmt.Sprintf("%[1]s.ticket_id, %[1]s.ticket_number, %[1]s.institution_id, %[1]s.service_id, %[1]s.user_id, %[1]s.operator_id, %[1]s.status, %[1]s.queue_position, %[1]s.created_at, %[1]s.called_at, %[1]s.completed_at", prefix)
}

func scopeID(serviceID *int64) int64 {
	if serviceID == nil {
		return 0
	}
	return *serviceID
}

func beforeDay(last, now time.Time) bool {
	ly, lm, ld := last.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	if ly != ny {
		return ly < ny
	}
	if lm != nm {
		return lm < nm
	}
	return ld < nd
}

func nullInt64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	return &value.Int64
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	return &value.Time
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}
