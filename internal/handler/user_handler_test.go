package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"khata/internal/domain"
	"khata/internal/handler"
	"khata/internal/service"
	"khata/mocks"
)

func newUserHandler() (*handler.UserHandler, *mocks.MockUserService) {
	mockSvc := new(mocks.MockUserService)
	return handler.NewUserHandler(mockSvc), mockSvc
}

func TestUserHandler_Create_Success(t *testing.T) {
	h, mockSvc := newUserHandler()
	tenantID, adminID := uuid.New(), uuid.New()

	mockSvc.On("Create", mock.Anything, tenantID, mock.MatchedBy(func(in service.CreateUserInput) bool {
		return in.Email == "priya@sharmatraders.in" && in.Role == domain.RoleAccountant
	})).Return(&domain.User{ID: uuid.New(), TenantID: tenantID, Role: domain.RoleAccountant}, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/users", map[string]string{
		"email": "priya@sharmatraders.in", "password": "securepassword", "full_name": "Priya Sharma", "role": "accountant",
	})
	setAuthContext(c, tenantID, adminID, "admin")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	h, mockSvc := newUserHandler()
	mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicateEmail)

	c, w := newContext(t, http.MethodPost, "/api/v1/users", map[string]string{
		"email": "priya@sharmatraders.in", "password": "securepassword", "full_name": "Priya", "role": "viewer",
	})
	setAuthContext(c, uuid.New(), uuid.New(), "admin")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_EMAIL", decodeResponse(t, w).Error.Code)
}

func TestUserHandler_List_Pagination(t *testing.T) {
	h, mockSvc := newUserHandler()
	tenantID := uuid.New()
	mockSvc.On("List", mock.Anything, tenantID, 0, 20).Return([]domain.User{{ID: uuid.New()}}, 1, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/users?offset=-5&limit=0", nil)
	setAuthContext(c, tenantID, uuid.New(), "admin")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodeResponse(t, w).Meta.Total)
}

func TestUserHandler_SelfLockout(t *testing.T) {
	t.Run("cannot demote self", func(t *testing.T) {
		h, mockSvc := newUserHandler()
		tenantID, adminID := uuid.New(), uuid.New()

		c, w := newContext(t, http.MethodPut, "/api/v1/users/"+adminID.String(), `{"role":"viewer"}`)
		c.Params = gin.Params{{Key: "id", Value: adminID.String()}}
		setAuthContext(c, tenantID, adminID, "admin")

		h.Update(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("may rename self", func(t *testing.T) {
		h, mockSvc := newUserHandler()
		tenantID, adminID := uuid.New(), uuid.New()
		mockSvc.On("Update", mock.Anything, tenantID, adminID, mock.Anything).Return(&domain.User{ID: adminID}, nil)

		c, w := newContext(t, http.MethodPut, "/api/v1/users/"+adminID.String(), `{"full_name":"Ravi S"}`)
		c.Params = gin.Params{{Key: "id", Value: adminID.String()}}
		setAuthContext(c, tenantID, adminID, "admin")

		h.Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cannot delete self", func(t *testing.T) {
		h, mockSvc := newUserHandler()
		adminID := uuid.New()

		c, w := newContext(t, http.MethodDelete, "/api/v1/users/"+adminID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: adminID.String()}}
		setAuthContext(c, uuid.New(), adminID, "admin")

		h.Delete(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockSvc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
