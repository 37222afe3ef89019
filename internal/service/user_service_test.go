package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"khata/internal/domain"
	"khata/internal/service"
	"khata/mocks"
)

func TestUserService_Create(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)
	tenantID := uuid.New()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Create(context.Background(), tenantID, service.CreateUserInput{
		Email: " Clerk@Acme.test ", Password: "password123", FullName: "Clerk", Role: domain.RoleAccountant,
	})

	require.NoError(t, err)
	assert.Equal(t, "clerk@acme.test", user.Email)
	assert.Equal(t, tenantID, user.TenantID)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), service.CreateUserInput{
		Email: "a@b.test", Password: "password123", FullName: "A", Role: "owner",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Update(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)
	user := &domain.User{ID: uuid.New(), TenantID: uuid.New(), Email: "a@b.test", Role: domain.RoleViewer, IsActive: true}

	repo.On("GetByID", mock.Anything, user.TenantID, user.ID).Return(user, nil)
	repo.On("Update", mock.Anything, user).Return(nil)

	role := domain.RoleAccountant
	active := false
	got, err := svc.Update(context.Background(), user.TenantID, user.ID, service.UpdateUserInput{Role: &role, IsActive: &active})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAccountant, got.Role)
	assert.False(t, got.IsActive)
}

func TestUserService_Delete_NotFound(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)
	tenantID, id := uuid.New(), uuid.New()
	repo.On("Delete", mock.Anything, tenantID, id).Return(domain.ErrUserNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), tenantID, id), domain.ErrNotFound)
}
