package handler

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mhrytsenko/contacts-api/internal/dto"
	"github.com/mhrytsenko/contacts-api/internal/repository"
	"github.com/mhrytsenko/contacts-api/internal/service"
)

type stubUserService struct {
	avatarErr error
}

func (s *stubUserService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID}, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID}, nil
}

func (s *stubUserService) UpdateAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (*dto.UserResponse, error) {
	if s.avatarErr != nil {
		return nil, s.avatarErr
	}
	return &dto.UserResponse{ID: userID}, nil
}

func avatarRequest(t *testing.T) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "avatar.png")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte("not really a png")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/users/me/avatar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func uploadAvatarStatus(t *testing.T, svc service.UserService) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewUserHandler(svc)
	router := gin.New()
	router.POST("/users/me/avatar", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.UploadAvatar(c)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, avatarRequest(t))
	return rec.Code
}

func TestUploadAvatar_StorageFailureIsBadGateway(t *testing.T) {
	svc := &stubUserService{avatarErr: fmt.Errorf("%w: connection refused", service.ErrAvatarStorage)}

	if got := uploadAvatarStatus(t, svc); got != http.StatusBadGateway {
		t.Errorf("expected 502 for storage failure, got %d", got)
	}
}

func TestUploadAvatar_MissingUserIsNotFound(t *testing.T) {
	svc := &stubUserService{avatarErr: fmt.Errorf("failed to store avatar url: %w", repository.ErrNotFound)}

	if got := uploadAvatarStatus(t, svc); got != http.StatusNotFound {
		t.Errorf("expected 404 for missing user, got %d", got)
	}
}

func TestUploadAvatar_Success(t *testing.T) {
	if got := uploadAvatarStatus(t, &stubUserService{}); got != http.StatusOK {
		t.Errorf("expected 200, got %d", got)
	}
}
