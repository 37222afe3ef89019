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
	"khata/internal/port"
	"khata/internal/service"
	"khata/mocks"
)

func newItemHandler() (*handler.ItemHandler, *mocks.MockItemService) {
	mockSvc := new(mocks.MockItemService)
	return handler.NewItemHandler(mockSvc), mockSvc
}

func TestItemHandler_Create(t *testing.T) {
	h, mockSvc := newItemHandler()
	tenantID, userID := uuid.New(), uuid.New()
	mockSvc.On("Create", mock.Anything, tenantID, userID, mock.MatchedBy(func(in service.CreateItemInput) bool {
		return in.Name == "Audit fee" && in.HSNSAC == "998221" && in.GSTRate != nil && in.GSTRate.String() == "18"
	})).Return(&domain.Item{ID: uuid.New(), Name: "Audit fee"}, nil)

	c, w := newContext(t, http.MethodPost, "/api/v1/items", `{"name":"Audit fee","hsn_sac":"998221","gst_rate":18}`)
	setAuthContext(c, tenantID, userID, "accountant")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestItemHandler_Create_MissingName(t *testing.T) {
	h, mockSvc := newItemHandler()

	c, w := newContext(t, http.MethodPost, "/api/v1/items", `{"unit":"hrs"}`)
	setAuthContext(c, uuid.New(), uuid.New(), "accountant")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestItemHandler_Create_DuplicateName(t *testing.T) {
	h, mockSvc := newItemHandler()
	mockSvc.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrDuplicateItemName)

	c, w := newContext(t, http.MethodPost, "/api/v1/items", `{"name":"Audit fee"}`)
	setAuthContext(c, uuid.New(), uuid.New(), "accountant")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "item name already exists", decodeResponse(t, w).Error.Message)
}

func TestItemHandler_List(t *testing.T) {
	h, mockSvc := newItemHandler()
	tenantID := uuid.New()
	mockSvc.On("List", mock.Anything, tenantID, port.ItemFilter{Search: "audit", IncludeInactive: true, Offset: 0, Limit: 20}).
		Return([]domain.Item{{Name: "Audit fee"}}, 1, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/items?search=audit&include_inactive=true", nil)
	setAuthContext(c, tenantID, uuid.New(), "viewer")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodeResponse(t, w).Meta.Total)
}

func TestItemHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newItemHandler()
	tenantID, itemID := uuid.New(), uuid.New()
	mockSvc.On("GetByID", mock.Anything, tenantID, itemID).Return(nil, domain.ErrItemNotFound)

	c, w := newContext(t, http.MethodGet, "/api/v1/items/"+itemID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: itemID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "viewer")

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemHandler_Update(t *testing.T) {
	h, mockSvc := newItemHandler()
	tenantID, itemID := uuid.New(), uuid.New()
	mockSvc.On("Update", mock.Anything, tenantID, itemID, mock.MatchedBy(func(in service.UpdateItemInput) bool {
		return in.IsActive != nil && !*in.IsActive && in.Name == nil
	})).Return(&domain.Item{ID: itemID}, nil)

	c, w := newContext(t, http.MethodPut, "/api/v1/items/"+itemID.String(), `{"is_active":false}`)
	c.Params = gin.Params{{Key: "id", Value: itemID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "accountant")

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestItemHandler_Delete(t *testing.T) {
	h, mockSvc := newItemHandler()
	tenantID, itemID := uuid.New(), uuid.New()
	mockSvc.On("Delete", mock.Anything, tenantID, itemID).Return(nil)

	c, w := newContext(t, http.MethodDelete, "/api/v1/items/"+itemID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: itemID.String()}}
	setAuthContext(c, tenantID, uuid.New(), "admin")

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
