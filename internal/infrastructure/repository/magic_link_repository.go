package repository

import (
	"database/sql"
	"fmt"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

type magicLinkRepository struct {
	db *sql.DB
}

// NewMagicLinkRepository creates a new magic link repository backed by Postgres
func NewMagicLinkRepository(db *sql.DB) domain.MagicLinkRepository {
	return &magicLinkRepository{db: db}
}

// Create inserts a new magic link
func (r *magicLinkRepository) Create(link *domain.MagicLink) error {
	query := `
		INSERT INTO magic_link (id, email, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(query, link.ID, link.Email, link.Token, link.ExpiresAt, link.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create magic link: %w", err)
	}

	return nil
}

// GetByToken looks up a magic link by its token value. Expired rows are
// returned as-is; expiry is the caller's decision.
func (r *magicLinkRepository) GetByToken(token string) (*domain.MagicLink, error) {
	query := `
		SELECT id, email, token, expires_at, created_at
		FROM magic_link
		WHERE token = $1
	`

	link := &domain.MagicLink{}
	err := r.db.QueryRow(query, token).Scan(
		&link.ID,
		&link.Email,
		&link.Token,
		&link.ExpiresAt,
		&link.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get magic link: %w", err)
	}

	return link, nil
}
