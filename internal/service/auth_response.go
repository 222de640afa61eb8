package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mhrytsenko/contacts-api/internal/domain"
	"github.com/mhrytsenko/contacts-api/internal/dto"
	"github.com/mhrytsenko/contacts-api/internal/repository"
)

// AuthResponseWithRefreshToken contains auth response and refresh token
type AuthResponseWithRefreshToken struct {
	AuthResponse *dto.AuthResponse
	RefreshToken string
	ExpiresIn    int // Refresh token expiry in seconds
}

// issueTokenPair generates a fresh access/refresh pair and persists the new
// refresh fingerprint. With an empty oldFingerprint (login) the fingerprint is
// stored unconditionally, replacing any previous session. With a non-empty one
// (refresh) the store is a compare-and-set on the old value: a mismatch means
// the presented token was already rotated out and the attempt is rejected.
func (s *authService) issueTokenPair(ctx context.Context, user *domain.User, oldFingerprint string) (*AuthResponseWithRefreshToken, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	newFingerprint := hashToken(refreshToken)

	if oldFingerprint == "" {
		if err := s.userRepo.SetRefreshFingerprint(ctx, user.ID, &newFingerprint); err != nil {
			return nil, fmt.Errorf("failed to store refresh fingerprint: %w", err)
		}
	} else {
		err := s.userRepo.SwapRefreshFingerprint(ctx, user.ID, oldFingerprint, newFingerprint)
		if err != nil {
			if errors.Is(err, repository.ErrFingerprintMismatch) {
				return nil, ErrInvalidToken
			}
			return nil, fmt.Errorf("failed to rotate refresh fingerprint: %w", err)
		}
	}

	return &AuthResponseWithRefreshToken{
		AuthResponse: &dto.AuthResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   s.jwtManager.GetAccessTokenExpiry(),
			User: dto.UserInfo{
				ID:    user.ID,
				Name:  user.Name,
				Email: user.Email,
			},
		},
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtManager.GetRefreshTokenExpiry().Seconds()),
	}, nil
}

func userToResponse(user *domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		AvatarURL:       user.AvatarURL,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       user.UpdatedAt.Format(time.RFC3339),
	}
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
