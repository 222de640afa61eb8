package service

import (
	"context"
	"mime/multipart"

	"github.com/mhrytsenko/contacts-api/internal/domain"
	"github.com/mhrytsenko/contacts-api/internal/dto"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*AuthResponseWithRefreshToken, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponseWithRefreshToken, error)
	Logout(ctx context.Context, userID, accessToken string) error
	ConfirmEmail(ctx context.Context, token string) (alreadyConfirmed bool, err error)
	RequestEmail(ctx context.Context, email string) error
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// UserService defines methods for profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UserResponse, error)
}

// ContactService defines methods for owner-scoped contact operations
type ContactService interface {
	Create(ctx context.Context, userID string, req *dto.CreateContactRequest) (*dto.ContactResponse, error)
	Get(ctx context.Context, userID, contactID string) (*dto.ContactResponse, error)
	List(ctx context.Context, userID string, query *dto.ListContactsQuery) ([]dto.ContactResponse, error)
	UpcomingBirthdays(ctx context.Context, userID string, days int) ([]dto.ContactBirthdayResponse, error)
	Update(ctx context.Context, userID, contactID string, req *dto.UpdateContactRequest) (*dto.ContactResponse, error)
	Patch(ctx context.Context, userID, contactID string, req *dto.PatchContactRequest) (*dto.ContactResponse, error)
	Delete(ctx context.Context, userID, contactID string) error
}

// EmailSender delivers outbound verification mail. Failures are surfaced to
// the caller but never fail the triggering request.
type EmailSender interface {
	SendVerification(to, name, confirmURL string) error
}

// AvatarStorage stores raw image bytes and returns a public URL
type AvatarStorage interface {
	UploadFromHeader(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error)
}
