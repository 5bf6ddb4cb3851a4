package domain

import "time"

type Admin struct {
	ID           int64
	Username     string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
