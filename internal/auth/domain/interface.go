package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	UpdateProfile(ctx context.Context, user *User) error
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	GetByValidResetToken(ctx context.Context, token string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// Mailer delivers the password-reset token to the account's email address.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}
