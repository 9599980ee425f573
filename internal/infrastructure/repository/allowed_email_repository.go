package repository

import (
	"database/sql"
	"fmt"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

type allowedEmailRepository struct {
	db *sql.DB
}

// NewAllowedEmailRepository creates a new allow-list repository backed by Postgres
func NewAllowedEmailRepository(db *sql.DB) domain.AllowedEmailRepository {
	return &allowedEmailRepository{db: db}
}

// FindByEmail looks up an allow-list entry by email address
func (r *allowedEmailRepository) FindByEmail(email string) (*domain.AllowedEmail, error) {
	query := `
		SELECT id, email, added_at
		FROM allowed_email
		WHERE email = $1
	`

	entry := &domain.AllowedEmail{}
	err := r.db.QueryRow(query, email).Scan(
		&entry.ID,
		&entry.Email,
		&entry.AddedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find allowed email: %w", err)
	}

	return entry, nil
}

// GetByID looks up an allow-list entry by ID
func (r *allowedEmailRepository) GetByID(id string) (*domain.AllowedEmail, error) {
	query := `
		SELECT id, email, added_at
		FROM allowed_email
		WHERE id = $1
	`

	entry := &domain.AllowedEmail{}
	err := r.db.QueryRow(query, id).Scan(
		&entry.ID,
		&entry.Email,
		&entry.AddedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get allowed email: %w", err)
	}

	return entry, nil
}

// Create inserts a new allow-list entry
func (r *allowedEmailRepository) Create(entry *domain.AllowedEmail) error {
	query := `
		INSERT INTO allowed_email (id, email, added_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(query, entry.ID, entry.Email, entry.AddedAt)
	if err != nil {
		return fmt.Errorf("failed to create allowed email: %w", err)
	}

	return nil
}

// Delete removes an allow-list entry by ID
func (r *allowedEmailRepository) Delete(id string) error {
	query := `
		DELETE FROM allowed_email
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete allowed email: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ListWithActiveCounts returns all allow-list entries newest first, each
// with its count of active reservations
func (r *allowedEmailRepository) ListWithActiveCounts() ([]domain.AllowedEmailSummary, error) {
	query := `
		SELECT
			ae.id,
			ae.email,
			ae.added_at,
			COUNT(res.id) FILTER (WHERE res.cancelled_at IS NULL) AS active_reservations
		FROM allowed_email ae
		LEFT JOIN reservation res ON res.allowed_email_id = ae.id
		GROUP BY ae.id, ae.email, ae.added_at
		ORDER BY ae.added_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowed emails: %w", err)
	}
	defer rows.Close()

	var entries []domain.AllowedEmailSummary
	for rows.Next() {
		var entry domain.AllowedEmailSummary
		err := rows.Scan(
			&entry.ID,
			&entry.Email,
			&entry.AddedAt,
			&entry.ActiveReservations,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allowed email: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
