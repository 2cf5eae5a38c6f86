package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/zeon-projects/beach-cleanup-api/internal/models"
)

// RegistrationRepository manages persistence for registration records.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Insert stores a new registration record. A single statement, so a
// failure leaves no partial state behind.
func (r *RegistrationRepository) Insert(ctx context.Context, reg *models.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	const query = `INSERT INTO registrations (id, name, email, phone, roll_no, emergency_contact, emergency_phone, year, branch, registration_date)
        VALUES (:id, :name, :email, :phone, :roll_no, :emergency_contact, :emergency_phone, :year, :branch, :registration_date)`
	if _, err := r.db.NamedExecContext(ctx, query, reg); err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// Count returns the total number of persisted registrations.
func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM registrations"); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return total, nil
}

// HealthCheck verifies database connectivity with a trivial query.
func (r *RegistrationRepository) HealthCheck(ctx context.Context) error {
	var one int
	if err := r.db.GetContext(ctx, &one, "SELECT 1"); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}
