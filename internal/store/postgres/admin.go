package postgres

import (
	"context"
	"database/sql"
	"errors"

	"queueflow/internal/models"
	"queueflow/internal/store"

	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateInstitution(ctx context.Context, input store.CreateInstitutionInput) (models.Institution, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Institution{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var institution models.Institution
	var address, phone sql.NullString
	row := tx.QueryRow(ctx, `
		INSERT INTO institutions (name, category, location, address, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, category, location, address, phone, created_at
	`, input.Name, input.Category, input.Location, input.Address, input.Phone)
	if err = row.Scan(&institution.ID, &institution.Name, &institution.Category, &institution.Location, &address, &phone, &institution.CreatedAt); err != nil {
		return models.Institution{}, err
	}
	institution.Address = nullStringPtr(address)
	institution.Phone = nullStringPtr(phone)

	// Seed the institution-wide counter row up front so the first kiosk
	// request never races another on the upsert.
	if _, err = tx.Exec(ctx, `
		INSERT INTO queue_counters (institution_id, service_id, avg_service_minutes)
		VALUES ($1, 0, $2)
		ON CONFLICT (institution_id, service_id) DO NOTHING
	`, institution.ID, defaultAvgServiceMinutes); err != nil {
		return models.Institution{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Institution{}, err
	}
	return institution, nil
}

func (s *Store) GetInstitution(ctx context.Context, institutionID int64) (models.Institution, error) {
	var institution models.Institution
	var address, phone sql.NullString
	row := s.pool.QueryRow(ctx, `
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

func (s *Store) ListInstitutions(ctx context.Context, category string) ([]models.Institution, error) {
	query := `
		SELECT id, name, category, location, address, phone, created_at
		FROM institutions
	`
	args := []interface{}{}
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY id ASC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var institutions []models.Institution
	for rows.Next() {
		var institution models.Institution
		var address, phone sql.NullString
		if err := rows.Scan(&institution.ID, &institution.Name, &institution.Category, &institution.Location, &address, &phone, &institution.CreatedAt); err != nil {
			return nil, err
		}
		institution.Address = nullStringPtr(address)
		institution.Phone = nullStringPtr(phone)
		institutions = append(institutions, institution)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return institutions, nil
}

func (s *Store) CreateService(ctx context.Context, input store.CreateServiceInput) (models.Service, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Service{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = getInstitution(ctx, tx, input.InstitutionID); err != nil {
		return models.Service{}, err
	}

	avg := input.AvgMinutes
	if avg <= 0 {
		avg = defaultAvgServiceMinutes
	}

	var service models.Service
	row := tx.QueryRow(ctx, `
		INSERT INTO services (institution_id, name, avg_minutes)
		VALUES ($1, $2, $3)
		RETURNING id, institution_id, name, avg_minutes, active
	`, input.InstitutionID, input.Name, avg)
	if err = row.Scan(&service.ID, &service.InstitutionID, &service.Name, &service.AvgMinutes, &service.Active); err != nil {
		return models.Service{}, err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO queue_counters (institution_id, service_id, avg_service_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (institution_id, service_id) DO NOTHING
	`, input.InstitutionID, service.ID, avg); err != nil {
		return models.Service{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return models.Service{}, err
	}
	return service, nil
}

func (s *Store) ListServices(ctx context.Context, institutionID int64) ([]models.Service, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, institution_id, name, avg_minutes, active
		FROM services
		WHERE institution_id = $1
		ORDER BY id ASC
	`, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var service models.Service
		if err := rows.Scan(&service.ID, &service.InstitutionID, &service.Name, &service.AvgMinutes, &service.Active); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return services, nil
}

func (s *Store) AdminStats(ctx context.Context) (store.AdminStats, error) {
	var stats store.AdminStats
	row := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM institutions),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = 'operator' AND is_active = TRUE),
			(SELECT COUNT(*) FROM tickets WHERE created_at >= CURRENT_DATE),
			(SELECT COUNT(*) FROM tickets WHERE status = 'waiting'),
			(SELECT COUNT(*) FROM tickets WHERE status = 'completed' AND completed_at >= CURRENT_DATE),
			(SELECT COUNT(*) FROM tickets WHERE status = 'missed' AND created_at >= CURRENT_DATE)
	`)
	if err := row.Scan(
		&stats.TotalInstitutions,
		&stats.TotalUsers,
		&stats.TotalOperators,
		&stats.TotalTicketsToday,
		&stats.TicketsWaiting,
		&stats.TicketsCompletedToday,
		&stats.TicketsMissedToday,
	); err != nil {
		return store.AdminStats{}, err
	}
	return stats, nil
}
