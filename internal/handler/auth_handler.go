package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mhrytsenko/contacts-api/internal/dto"
	"github.com/mhrytsenko/contacts-api/internal/service"
)

const refreshCookiePath = "/api/v1/auth/refresh"

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a new user and send the verification mail
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	// Set refresh token in httpOnly cookie
	c.SetCookie("refresh_token", response.RefreshToken, response.ExpiresIn, refreshCookiePath, "", true, true)

	c.JSON(http.StatusOK, response.AuthResponse)
}

// Refresh handles token refresh
// @Summary Refresh tokens
// @Description Exchange the refresh token cookie for a new access/refresh pair
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	// A missing cookie is just another invalid credential
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Invalid or expired token",
		})
		return
	}

	response, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	// Set new refresh token in httpOnly cookie
	c.SetCookie("refresh_token", response.RefreshToken, response.ExpiresIn, refreshCookiePath, "", true, true)

	c.JSON(http.StatusOK, response.AuthResponse)
}

// Logout handles user logout
// @Summary Logout user
// @Description Revoke the refresh session and blacklist the access token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "User ID not found in context",
		})
		return
	}

	accessToken := c.GetString("access_token")

	if err := h.authService.Logout(c.Request.Context(), userID.(string), accessToken); err != nil {
		respondError(c, err)
		return
	}

	// Clear refresh token cookie
	c.SetCookie("refresh_token", "", -1, refreshCookiePath, "", true, true)

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Logged out successfully",
	})
}

// Confirm handles email confirmation
// @Summary Confirm email address
// @Description Confirm the email address embedded in the verification token
// @Tags auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/confirm/{token} [get]
func (h *AuthHandler) Confirm(c *gin.Context) {
	token := c.Param("token")

	alreadyConfirmed, err := h.authService.ConfirmEmail(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	if alreadyConfirmed {
		c.JSON(http.StatusOK, dto.SuccessResponse{
			Message: "Your email is already confirmed",
		})
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Email confirmed",
	})
}

// RequestEmail re-sends the verification mail
// @Summary Request verification email
// @Description Re-send the verification mail for an unconfirmed account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RequestEmailRequest true "Email request"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/request-email [post]
func (h *AuthHandler) RequestEmail(c *gin.Context) {
	var req dto.RequestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.authService.RequestEmail(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	// Same response whether or not the address is registered
	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Check your email for confirmation",
	})
}
