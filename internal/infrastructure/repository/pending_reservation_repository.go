package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

type pendingReservationRepository struct {
	db *sql.DB
}

// NewPendingReservationRepository creates a new pending reservation
// repository backed by Postgres
func NewPendingReservationRepository(db *sql.DB) domain.PendingReservationRepository {
	return &pendingReservationRepository{db: db}
}

// Create inserts a new pending reservation. The slot selections are stored
// as a JSONB document alongside the row.
func (r *pendingReservationRepository) Create(pending *domain.PendingReservation) error {
	selections, err := json.Marshal(pending.Selections)
	if err != nil {
		return fmt.Errorf("failed to encode slot selections: %w", err)
	}

	query := `
		INSERT INTO pending_reservation (id, email, token, selections, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.Exec(query, pending.ID, pending.Email, pending.Token, selections, pending.ExpiresAt, pending.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pending reservation: %w", err)
	}

	return nil
}

// GetByToken looks up a pending reservation by its token value
func (r *pendingReservationRepository) GetByToken(token string) (*domain.PendingReservation, error) {
	query := `
		SELECT id, email, token, selections, expires_at, created_at
		FROM pending_reservation
		WHERE token = $1
	`

	pending := &domain.PendingReservation{}
	var selections []byte
	err := r.db.QueryRow(query, token).Scan(
		&pending.ID,
		&pending.Email,
		&pending.Token,
		&selections,
		&pending.ExpiresAt,
		&pending.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending reservation: %w", err)
	}

	if err := json.Unmarshal(selections, &pending.Selections); err != nil {
		return nil, fmt.Errorf("failed to decode slot selections: %w", err)
	}

	return pending, nil
}

// DeleteByToken removes a pending reservation. Deleting a missing row is
// not an error.
func (r *pendingReservationRepository) DeleteByToken(token string) error {
	query := `
		DELETE FROM pending_reservation
		WHERE token = $1
	`

	_, err := r.db.Exec(query, token)
	if err != nil {
		return fmt.Errorf("failed to delete pending reservation: %w", err)
	}

	return nil
}
