package repository

import (
	"context"

	"github.com/mhrytsenko/contacts-api/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateName(ctx context.Context, userID, name string) error
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error
	ConfirmEmail(ctx context.Context, email string) error
	SetRefreshFingerprint(ctx context.Context, userID string, fingerprint *string) error
	SwapRefreshFingerprint(ctx context.Context, userID, oldFingerprint, newFingerprint string) error
}

// ContactRepository defines methods for owner-scoped contact operations
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, userID, contactID string) (*domain.Contact, error)
	List(ctx context.Context, userID string, filter ContactFilter) ([]*domain.Contact, error)
	ListUpcomingBirthdays(ctx context.Context, userID string, days int) ([]*domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, userID, contactID string) error
}

// ContactFilter holds pagination and optional substring filters for listing
type ContactFilter struct {
	Limit   int
	Offset  int
	Name    string
	Surname string
	Email   string
}
