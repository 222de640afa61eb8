package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/mhrytsenko/contacts-api/internal/dto"
	"github.com/mhrytsenko/contacts-api/internal/repository"
)

const avatarFolder = "contacts-api/avatars"

// userService implements UserService interface
type userService struct {
	userRepo repository.UserRepository
	storage  AvatarStorage
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, storage AvatarStorage) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
	}
}

// GetProfile returns the caller's own profile
func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return userToResponse(user), nil
}

// UpdateProfile updates the caller's display name
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if req.Name != nil {
		if err := s.userRepo.UpdateName(ctx, userID, *req.Name); err != nil {
			return nil, fmt.Errorf("failed to update name: %w", err)
		}
	}

	return s.GetProfile(ctx, userID)
}

// UpdateAvatar uploads the image to the file storage and persists the
// returned public URL
func (s *userService) UpdateAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UserResponse, error) {
	url, err := s.storage.UploadFromHeader(ctx, file, avatarFolder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAvatarStorage, err)
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, fmt.Errorf("failed to store avatar url: %w", err)
	}

	return s.GetProfile(ctx, userID)
}
