package acceptance

import (
	"encoding/json"
	"net/http"

	"github.com/mhrytsenko/contacts-api/internal/dto"
)

func (s *Suite) TestMe_ReturnsProfile() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	resp := s.doJSON(http.MethodGet, "/api/v1/users/me", nil, token)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&user))
	s.Equal("Alice", user.Name)
	s.Equal("alice@example.com", user.Email)
	s.True(user.IsEmailVerified)
	s.Nil(user.AvatarURL)
}

func (s *Suite) TestMe_RequiresAuth() {
	resp := s.doJSON(http.MethodGet, "/api/v1/users/me", nil, "")
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestMe_MalformedToken() {
	resp := s.doJSON(http.MethodGet, "/api/v1/users/me", nil, "not-a-jwt")
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestMe_RateLimited() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	for i := 0; i < 5; i++ {
		resp := s.doJSON(http.MethodGet, "/api/v1/users/me", nil, token)
		resp.Body.Close()
		s.Require().Equal(http.StatusOK, resp.StatusCode, "Request %d should pass", i+1)
	}

	resp := s.doJSON(http.MethodGet, "/api/v1/users/me", nil, token)
	defer resp.Body.Close()
	s.Equal(http.StatusTooManyRequests, resp.StatusCode)
	s.Equal("5", resp.Header.Get("X-RateLimit-Limit"))
}

func (s *Suite) TestUpdateMe_ChangesName() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	newName := "Alice Updated"
	resp := s.doJSON(http.MethodPatch, "/api/v1/users/me", dto.UpdateProfileRequest{Name: &newName}, token)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var user dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&user))
	s.Equal("Alice Updated", user.Name)
	s.Equal("alice@example.com", user.Email)
}

func (s *Suite) TestUploadAvatar_RequiresFile() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	resp := s.doJSON(http.MethodPost, "/api/v1/users/me/avatar", nil, token)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}
