package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"khata/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService         service.AuthService
	registrationService service.RegistrationService
}

// NewAuthHandler creates a new AuthHandler. A nil registrationService
// disables self-service sign-up.
func NewAuthHandler(authService service.AuthService, registrationService service.RegistrationService) *AuthHandler {
	return &AuthHandler{authService: authService, registrationService: registrationService}
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Exchange tenant slug, email and password for an access and refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} Response{data=TokenResponse} "Token pair"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Invalid credentials"
// @Failure 403 {object} ErrorResponseBody "Tenant or user inactive"
// @Failure 429 {object} ErrorResponseBody "Too many attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// RefreshToken handles POST /api/v1/auth/refresh
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} Response{data=TokenResponse} "Token pair"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Invalid or expired token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input service.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// Register handles POST /api/v1/auth/register
// @Summary Register a business
// @Description Create a tenant together with its first admin user and log that user in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Business and admin details"
// @Success 201 {object} Response{data=service.RegisterOutput} "Registered"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Slug already exists"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	if h.registrationService == nil {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "registration is not enabled")
		return
	}

	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	output, err := h.registrationService.Register(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, output)
}
