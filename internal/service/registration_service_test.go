package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/service"
	"khata/mocks"
)

func TestRegistrationService_Register(t *testing.T) {
	tenantSvc := new(mocks.MockTenantService)
	userRepo := new(mocks.MockUserRepo)
	authSvc := new(mocks.MockAuthService)
	svc := service.NewRegistrationService(tenantSvc, userRepo, authSvc, mocks.NewPassthroughTransactor())

	tenant := &domain.Tenant{ID: uuid.New(), Slug: "acme"}
	company := service.CreateTenantInput{Name: "Acme", Slug: "acme"}
	tenantSvc.On("Create", mock.Anything, company).Return(tenant, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.TenantID == tenant.ID && u.Role == domain.RoleAdmin && u.Email == "owner@acme.test"
	})).Return(nil)
	authSvc.On("IssueTokens", mock.AnythingOfType("*domain.User")).Return(&service.TokenPair{AccessToken: "a", RefreshToken: "r"}, nil)

	out, err := svc.Register(context.Background(), service.RegisterInput{
		Company: company, Email: "Owner@Acme.test", Password: "password123", FullName: "Owner",
	})

	require.NoError(t, err)
	assert.Equal(t, tenant, out.Tenant)
	assert.Equal(t, "a", out.Tokens.AccessToken)
	userRepo.AssertExpectations(t)
}

func TestRegistrationService_Register_DuplicateSlug(t *testing.T) {
	tenantSvc := new(mocks.MockTenantService)
	userRepo := new(mocks.MockUserRepo)
	authSvc := new(mocks.MockAuthService)
	svc := service.NewRegistrationService(tenantSvc, userRepo, authSvc, mocks.NewPassthroughTransactor())

	tenantSvc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateTenantSlug)

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Company: service.CreateTenantInput{Name: "Acme", Slug: "acme"}, Email: "a@b.test", Password: "password123", FullName: "A",
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateTenantSlug)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	authSvc.AssertNotCalled(t, "IssueTokens", mock.Anything)
}
