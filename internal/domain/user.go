package domain

import "time"

type User struct {
	ID               string
	Username         string
	Email            string
	RoleID           string // Foreign key to roles table
	Salt             string // uuid4; rotated to revoke all outstanding tokens
	IsEmailConfirmed bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LoginData holds the credential record for a user, kept separate from the
// identity row so credential churn never touches the users table.
type LoginData struct {
	UserID           string
	PasswordHash     string // argon2 encoded
	ConfirmationCode *string
	CodeExpiresAt    *time.Time
	RecoveryToken    *string // issued at registration, consumed by password recovery
	RecoveryGenAt    *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Termination records an account closure. One per user; the identity row
// stays so historical references keep resolving.
type Termination struct {
	UserID       string
	Reason       string
	TerminatedAt time.Time
	CreatedAt    time.Time
}

type Profile struct {
	UserID     string
	Name       string
	Surname    string
	Patronymic string
	AvatarURL  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
