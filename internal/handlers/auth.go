// Package handlers contains HTTP request handlers for the auth service.
package handlers

import (
	"errors"
	"net/http"

	"github.com/coopworks/auth-service/internal/metrics"
	"github.com/coopworks/auth-service/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	msgDuplicateIdentity  = "User already exists (Email or Username taken)"
	msgInvalidCredentials = "Invalid Credentials"
	msgAccountLocked      = "Account temporarily locked. Please try again later."
	msgServerError        = "Server Error"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	cookies     *CookieHelper
	metrics     *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, cookies *CookieHelper, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		metrics:     m,
	}
}

// SignupRequest represents the signup request payload.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Unit     string `json:"unit"`
	Grade    string `json:"grade"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateRequest represents the profile update request payload.
// The session token travels in the body, matching the client contract.
type UpdateRequest struct {
	Token string `json:"token" binding:"required"`
	Unit  string `json:"unit"`
	Grade string `json:"grade"`
	Name  string `json:"name"`
}

// Signup godoc
// @Summary Register a new account
// @Description Create a user and return a session token (signup implies login)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup fields"
// @Success 200 {object} service.AuthResponse
// @Failure 400 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Unit:     req.Unit,
		Grade:    req.Grade,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateIdentity) {
			h.metrics.SignupTotal.WithLabelValues(metrics.ResultDuplicate).Inc()
			respondError(c, http.StatusBadRequest, msgDuplicateIdentity)
			return
		}
		h.metrics.SignupTotal.WithLabelValues(metrics.ResultError).Inc()
		logAndRespondError(c, http.StatusInternalServerError, err, msgServerError)
		return
	}

	h.metrics.SignupTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	h.cookies.SetSessionCookie(c, response.Token)
	c.JSON(http.StatusOK, response)
}

// Login godoc
// @Summary Authenticate with email and password
// @Description Verify credentials and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			// Uniform message for unknown user and wrong password.
			h.metrics.LoginTotal.WithLabelValues(metrics.ResultInvalidCredentials).Inc()
			respondError(c, http.StatusBadRequest, msgInvalidCredentials)
		case errors.Is(err, service.ErrAccountLocked):
			// Lockout is the only credential failure disclosed explicitly.
			h.metrics.LoginTotal.WithLabelValues(metrics.ResultLocked).Inc()
			respondError(c, http.StatusLocked, msgAccountLocked)
		default:
			h.metrics.LoginTotal.WithLabelValues(metrics.ResultError).Inc()
			logAndRespondError(c, http.StatusInternalServerError, err, msgServerError)
		}
		return
	}

	h.metrics.LoginTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	h.cookies.SetSessionCookie(c, response.Token)
	c.JSON(http.StatusOK, response)
}

// Update godoc
// @Summary Update profile fields
// @Description Patch unit, grade and display name for the token's user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdateRequest true "Profile fields"
// @Success 200 {object} map[string]service.UserView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/update [put]
func (h *AuthHandler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.authService.UpdateProfile(c.Request.Context(), req.Token, service.UpdateInput{
		Unit:        req.Unit,
		Grade:       req.Grade,
		DisplayName: req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			respondError(c, http.StatusUnauthorized, "invalid token")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found")
		default:
			logAndRespondError(c, http.StatusInternalServerError, err, msgServerError)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": view})
}

// DemoGoogleLogin godoc
// @Summary Simulated federated sign-in
// @Description Demo-only Google sign-in; never routed in production
// @Tags auth
// @Produce json
// @Success 200 {object} service.AuthResponse
// @Router /auth/demo/google [post]
func (h *AuthHandler) DemoGoogleLogin(c *gin.Context) {
	response, err := h.authService.DemoFederatedLogin(c.Request.Context())
	if err != nil {
		h.metrics.LoginTotal.WithLabelValues(metrics.ResultError).Inc()
		logAndRespondError(c, http.StatusInternalServerError, err, msgServerError)
		return
	}

	h.metrics.LoginTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	h.cookies.SetSessionCookie(c, response.Token)
	c.JSON(http.StatusOK, response)
}
