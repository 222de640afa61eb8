package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/mhrytsenko/contacts-api/internal/domain"
	"github.com/mhrytsenko/contacts-api/internal/dto"
	"github.com/mhrytsenko/contacts-api/internal/repository"
	"github.com/mhrytsenko/contacts-api/internal/utils"
	"go.uber.org/zap"
)

// authService implements AuthService interface
type authService struct {
	userRepo         repository.UserRepository
	jwtManager       *utils.JWTManager
	blacklistService *TokenBlacklistService
	mailer           EmailSender
	logger           *zap.Logger
	bcryptCost       int
	baseURL          string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	blacklistService *TokenBlacklistService,
	mailer EmailSender,
	logger *zap.Logger,
	bcryptCost int,
	baseURL string,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		jwtManager:       jwtManager,
		blacklistService: blacklistService,
		mailer:           mailer,
		logger:           logger,
		bcryptCost:       bcryptCost,
		baseURL:          baseURL,
	}
}

// Register registers a new user and triggers the verification mail.
// The account stays unconfirmed until the emailed token is presented.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, ErrInvalidEmail
	}

	if !utils.ValidatePassword(req.Password) {
		return nil, ErrWeakPassword
	}

	email := utils.SanitizeEmail(req.Email)

	// Check if user already exists
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:            req.Name,
		Email:           email,
		PasswordHash:    passwordHash,
		IsEmailVerified: false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendVerificationMail(user)

	return userToResponse(user), nil
}

// Login authenticates a user and issues an access/refresh token pair.
// Every failure surfaces the same ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResponseWithRefreshToken, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, user, "")
}

// RefreshToken rotates the refresh token. The stored fingerprint is replaced
// by a compare-and-set keyed on the presented token's fingerprint, so a
// rotated-out token can never be exchanged again and of two concurrent
// refreshes exactly one wins. A failed attempt leaves the stored fingerprint
// untouched.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponseWithRefreshToken, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	oldFingerprint := hashToken(refreshToken)
	if user.RefreshTokenHash == nil {
		return nil, ErrInvalidToken
	}

	return s.issueTokenPair(ctx, user, oldFingerprint)
}

// Logout revokes the user's session: the refresh fingerprint is cleared and
// the presented access token is blacklisted for its remaining lifetime
func (s *authService) Logout(ctx context.Context, userID, accessToken string) error {
	if err := s.userRepo.SetRefreshFingerprint(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear refresh fingerprint: %w", err)
	}

	if accessToken != "" {
		ttl := s.jwtManager.GetAccessTokenExpiry()
		if err := s.blacklistService.AddToken(ctx, accessToken, secondsToDuration(ttl)); err != nil {
			s.logger.Warn("failed to blacklist access token on logout", zap.Error(err))
		}
	}

	return nil
}

// ConfirmEmail flips the verification flag for the email embedded in the
// token. Confirming twice reports alreadyConfirmed without error.
func (s *authService) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	email, err := s.jwtManager.ValidateEmailToken(token)
	if err != nil {
		return false, ErrInvalidToken
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrInvalidToken
		}
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsEmailVerified {
		return true, nil
	}

	if err := s.userRepo.ConfirmEmail(ctx, email); err != nil {
		return false, fmt.Errorf("failed to confirm email: %w", err)
	}

	return false, nil
}

// RequestEmail re-sends the verification mail. The response is identical
// whether the email is unknown, unconfirmed or already confirmed.
func (s *authService) RequestEmail(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsEmailVerified {
		return nil
	}

	s.sendVerificationMail(user)
	return nil
}

// ValidateToken validates an access token against signature, expiry and the
// logout blacklist
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	isBlacklisted, err := s.blacklistService.IsTokenBlacklisted(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if isBlacklisted {
		return nil, ErrInvalidToken
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// sendVerificationMail fires the verification mail in the background.
// Delivery failure is logged and never fails the triggering request.
func (s *authService) sendVerificationMail(user *domain.User) {
	token, err := s.jwtManager.GenerateEmailToken(user.Email)
	if err != nil {
		s.logger.Warn("failed to generate email token",
			zap.String("email", user.Email),
			zap.Error(err),
		)
		return
	}

	confirmURL := fmt.Sprintf("%s/api/v1/auth/confirm/%s", s.baseURL, token)

	go func() {
		if err := s.mailer.SendVerification(user.Email, user.Name, confirmURL); err != nil {
			s.logger.Warn("failed to send verification email",
				zap.String("email", user.Email),
				zap.Error(err),
			)
		}
	}()
}

// hashToken hashes a token using SHA256
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
