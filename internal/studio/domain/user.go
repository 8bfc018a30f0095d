package domain

import "time"

type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string // argon2 encoded
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
