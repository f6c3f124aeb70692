package model

import "time"

// Theme is a free-text categorization label applied to agreements. Agreements
// reference a theme by name, not by foreign key, so renames cascade through a
// bulk update of referencing rows.
type Theme struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// User is an admin account for the management interface.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
