package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/port"
	"khata/internal/service"
	"khata/mocks"
)

func TestItemService_Create_Defaults(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	svc := service.NewItemService(repo)
	tenantID, userID := uuid.New(), uuid.New()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Item")).Return(nil)

	item, err := svc.Create(context.Background(), tenantID, userID, service.CreateItemInput{
		Name:        "  Website maintenance ",
		HSNSAC:      "998314",
		DefaultRate: dec("2500.456"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Website maintenance", item.Name)
	assert.Equal(t, domain.ItemService, item.Type)
	assert.Equal(t, "nos", item.Unit)
	assert.Equal(t, "18", item.GSTRate.String())
	assert.Equal(t, "2500.46", item.DefaultRate.StringFixed(2))
	assert.True(t, item.IsActive)
	assert.Equal(t, userID, item.CreatedBy)
	assert.Equal(t, tenantID, item.TenantID)
	repo.AssertExpectations(t)
}

func TestItemService_Create_ZeroRatedGoods(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	svc := service.NewItemService(repo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Item")).Return(nil)

	item, err := svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateItemInput{
		Name: "Fresh produce", Type: domain.ItemGoods, Unit: "kg", GSTRate: ptr(dec("0")),
	})

	require.NoError(t, err)
	assert.True(t, item.GSTRate.IsZero())
	assert.Equal(t, "kg", item.Unit)
}

func TestItemService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input service.CreateItemInput
	}{
		{"missing name", service.CreateItemInput{}},
		{"blank name", service.CreateItemInput{Name: "   "}},
		{"unknown type", service.CreateItemInput{Name: "X", Type: "bundle"}},
		{"hsn letters", service.CreateItemInput{Name: "X", HSNSAC: "99AB"}},
		{"hsn too short", service.CreateItemInput{Name: "X", HSNSAC: "99"}},
		{"negative rate", service.CreateItemInput{Name: "X", DefaultRate: dec("-1")}},
		{"gst not a slab", service.CreateItemInput{Name: "X", GSTRate: ptr(dec("15"))}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mocks.MockItemRepo)
			svc := service.NewItemService(repo)

			_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), tc.input)

			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestItemService_Create_DuplicateName(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	svc := service.NewItemService(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateItemName)

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateItemInput{Name: "Audit fee"})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestItemService_Update(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	svc := service.NewItemService(repo)
	tenantID := uuid.New()
	item := &domain.Item{
		ID: uuid.New(), TenantID: tenantID, Name: "Audit fee", Type: domain.ItemService,
		Unit: "nos", DefaultRate: dec("10000"), GSTRate: dec("18"), IsActive: true,
	}
	repo.On("GetByID", mock.Anything, tenantID, item.ID).Return(item, nil)
	repo.On("Update", mock.Anything, item).Return(nil)

	got, err := svc.Update(context.Background(), tenantID, item.ID, service.UpdateItemInput{
		DefaultRate: ptr(dec("12000")),
		IsActive:    ptr(false),
		HSNSAC:      ptr(" 998221 "),
	})

	require.NoError(t, err)
	assert.Equal(t, "12000", got.DefaultRate.String())
	assert.False(t, got.IsActive)
	assert.Equal(t, "998221", got.HSNSAC)
	assert.Equal(t, "Audit fee", got.Name)
	repo.AssertExpectations(t)
}

func TestItemService_Update_RejectsBadSlab(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	svc := service.NewItemService(repo)
	tenantID := uuid.New()
	item := &domain.Item{ID: uuid.New(), TenantID: tenantID, Name: "Audit fee", GSTRate: dec("18")}
	repo.On("GetByID", mock.Anything, tenantID, item.ID).Return(item, nil)

	_, err := svc.Update(context.Background(), tenantID, item.ID, service.UpdateItemInput{GSTRate: ptr(dec("30"))})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestItemService_List_TrimsSearch(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	svc := service.NewItemService(repo)
	tenantID := uuid.New()
	repo.On("List", mock.Anything, tenantID, port.ItemFilter{Search: "9983", Limit: 20}).
		Return([]domain.Item{{Name: "Consulting"}}, 1, nil)

	items, total, err := svc.List(context.Background(), tenantID, port.ItemFilter{Search: " 9983 ", Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)
}

func TestItemService_Delete(t *testing.T) {
	repo := new(mocks.MockItemRepo)
	svc := service.NewItemService(repo)
	tenantID, itemID := uuid.New(), uuid.New()
	repo.On("SoftDelete", mock.Anything, tenantID, itemID).Return(domain.ErrItemNotFound)

	err := svc.Delete(context.Background(), tenantID, itemID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
