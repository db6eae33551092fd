package domain

import "time"

type User struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        string
	BusinessType        string
	IsPremium           bool
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
