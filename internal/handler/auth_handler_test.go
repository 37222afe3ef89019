package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/handler"
	"khata/internal/service"
	"khata/mocks"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc, nil)

	authSvc.On("Login", mock.Anything, service.LoginInput{
		TenantSlug: "sharma-traders", Email: "admin@sharmatraders.in", Password: "securepassword123",
	}).Return(&service.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now().Add(time.Hour)}, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"tenant_slug": "sharma-traders", "email": "admin@sharmatraders.in", "password": "securepassword123",
	})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "a", data["access_token"])
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"wrong password", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"inactive user", domain.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := new(mocks.MockAuthService)
			h := handler.NewAuthHandler(authSvc, nil)
			authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, tt.svcErr)

			c, w := newContext(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
				"tenant_slug": "t", "email": "a@b.in", "password": "password123",
			})

			h.Login(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	authSvc := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(authSvc, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/auth/login", `{"email":"not-an-email","password":"short"}`)

	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	authSvc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h := handler.NewAuthHandler(new(mocks.MockAuthService), nil)
		c, w := newContext(t, http.MethodPost, "/api/v1/auth/register", `{}`)

		h.Register(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("created", func(t *testing.T) {
		regSvc := new(mocks.MockRegistrationService)
		h := handler.NewAuthHandler(new(mocks.MockAuthService), regSvc)
		regSvc.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterInput) bool {
			return in.Company.Slug == "sharma-traders" && in.Email == "owner@sharmatraders.in"
		})).Return(&service.RegisterOutput{
			Tenant: &domain.Tenant{ID: uuid.New(), Slug: "sharma-traders"},
			User:   &domain.User{ID: uuid.New(), Role: domain.RoleAdmin},
			Tokens: &service.TokenPair{AccessToken: "a"},
		}, nil)

		c, w := newContext(t, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
			"company":   map[string]string{"name": "Sharma Traders", "slug": "sharma-traders"},
			"email":     "owner@sharmatraders.in",
			"password":  "securepassword123",
			"full_name": "Ravi Sharma",
		})

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		regSvc.AssertExpectations(t)
	})
}
