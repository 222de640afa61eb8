package domain

import "time"

// User represents a user of the contacts service
type User struct {
	ID               string    `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Email            string    `json:"email" db:"email"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	AvatarURL        *string   `json:"avatar_url" db:"avatar_url"`
	IsEmailVerified  bool      `json:"is_email_verified" db:"is_email_verified"`
	RefreshTokenHash *string   `json:"-" db:"refresh_token_hash"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
