package repository

import (
	"database/sql"
	"fmt"

	"github.com/OthmanASSAS/slotify/internal/domain"
)

type adminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new admin credential repository backed by Postgres
func NewAdminRepository(db *sql.DB) domain.AdminRepository {
	return &adminRepository{db: db}
}

// FindByEmail looks up an admin by email address
func (r *adminRepository) FindByEmail(email string) (*domain.Admin, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM admin
		WHERE email = $1
	`

	admin := &domain.Admin{}
	err := r.db.QueryRow(query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	return admin, nil
}

// Create inserts a new admin credential
func (r *adminRepository) Create(admin *domain.Admin) error {
	query := `
		INSERT INTO admin (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(query, admin.ID, admin.Email, admin.PasswordHash, admin.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}
