package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"queueflow/internal/models"
	"queueflow/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 8 * time.Hour

const userColumns = "id, name, email, role, institution_id, is_active, created_at, last_login"

func (s *Store) CreateUser(ctx context.Context, input store.CreateUserInput) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, institution_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		input.Name, strings.ToLower(input.Email), string(hash), input.Role, input.InstitutionID)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, store.ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) Login(ctx context.Context, email, password string) (store.LoginResult, error) {
	var user models.User
	var passwordHash string
	var institutionID sql.NullInt64
	var lastLogin sql.NullTime
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, institution_id, is_active, created_at, last_login
		FROM users
		WHERE lower(email) = lower($1) AND is_active = TRUE
	`, email)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &passwordHash, &user.Role, &institutionID, &user.IsActive, &user.CreatedAt, &lastLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.LoginResult{}, store.ErrInvalidCredentials
		}
		return store.LoginResult{}, err
	}
	user.InstitutionID = nullInt64Ptr(institutionID)
	user.LastLogin = nullTimePtr(lastLogin)

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return store.LoginResult{}, store.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := store.Session{
		SessionID: uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(sessionTTL),
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return store.LoginResult{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `
		INSERT INTO sessions (session_id, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, session.SessionID, session.UserID, session.ExpiresAt); err != nil {
		return store.LoginResult{}, err
	}
	if _, err = tx.Exec(ctx, `
		UPDATE users SET last_login = $2 WHERE id = $1
	`, user.ID, now); err != nil {
		return store.LoginResult{}, err
	}
	if err = tx.Commit(ctx); err != nil {
		return store.LoginResult{}, err
	}

	user.LastLogin = &now
	return store.LoginResult{User: user, Session: session}, nil
}

func (s *Store) GetSession(ctx context.Context, sessionID string) (store.Session, models.User, error) {
	var session store.Session
	var user models.User
	var institutionID sql.NullInt64
	var lastLogin sql.NullTime
	row := s.pool.QueryRow(ctx, `
		SELECT s.session_id, s.user_id, s.expires_at,
			u.id, u.name, u.email, u.role, u.institution_id, u.is_active, u.created_at, u.last_login
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.session_id = $1 AND s.expires_at > NOW() AND u.is_active = TRUE
	`, sessionID)
	if err := row.Scan(
		&session.SessionID, &session.UserID, &session.ExpiresAt,
		&user.ID, &user.Name, &user.Email, &user.Role, &institutionID, &user.IsActive, &user.CreatedAt, &lastLogin,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Session{}, models.User{}, store.ErrSessionNotFound
		}
		return store.Session{}, models.User{}, err
	}
	user.InstitutionID = nullInt64Ptr(institutionID)
	user.LastLogin = nullTimePtr(lastLogin)
	return session, user, nil
}

func (s *Store) GetUser(ctx context.Context, userID int64) (models.User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, userID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, store.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) ListUserTickets(ctx context.Context, userID int64, limit int) ([]models.Ticket, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
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

func (s *Store) ListOperators(ctx context.Context, institutionID *int64) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = 'operator' AND is_active = TRUE
	`
	args := []interface{}{}
	if institutionID != nil {
		query += " AND institution_id = $1"
		args = append(args, *institutionID)
	}
	query += " ORDER BY id ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var operators []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		operators = append(operators, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return operators, nil
}

func (s *Store) OperatorStats(ctx context.Context, operatorID int64) (store.OperatorStats, error) {
	user, err := s.GetUser(ctx, operatorID)
	if err != nil {
		return store.OperatorStats{}, err
	}

	stats := store.OperatorStats{
		OperatorID: user.ID,
		Name:       user.Name,
	}

	row := s.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM tickets
		WHERE operator_id = $1 AND status = 'completed' AND completed_at >= CURRENT_DATE
	`, operatorID)
	if err := row.Scan(&stats.TicketsServedToday); err != nil {
		return store.OperatorStats{}, err
	}

	var current sql.NullString
	row = s.pool.QueryRow(ctx, `
		SELECT ticket_number
		FROM tickets
		WHERE operator_id = $1 AND status IN ('called', 'in_service')
		ORDER BY called_at DESC
		LIMIT 1
	`, operatorID)
	if err := row.Scan(&current); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return store.OperatorStats{}, err
	}
	if current.Valid {
		stats.CurrentTicket = current.String
	}
	return stats, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	var institutionID sql.NullInt64
	var lastLogin sql.NullTime
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &institutionID, &user.IsActive, &user.CreatedAt, &lastLogin); err != nil {
		return models.User{}, err
	}
	user.InstitutionID = nullInt64Ptr(institutionID)
	user.LastLogin = nullTimePtr(lastLogin)
	return user, nil
}
