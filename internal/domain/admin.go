package domain

import "time"

// Admin is an administrator credential. Session handling lives in the HTTP
// layer; the domain only stores the email and bcrypt password hash that gate
// admin-only mutations.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AdminRepository defines the operations on administrator credentials.
// FindByEmail returns (nil, nil) when no row matches.
type AdminRepository interface {
	// FindByEmail looks up an admin by email address.
	FindByEmail(email string) (*Admin, error)
	// Create inserts a new admin credential.
	Create(admin *Admin) error
}
