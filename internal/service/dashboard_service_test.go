package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/service"
	"khata/internal/timeutil"
	"khata/mocks"
)

func TestDashboardService_Get_UsesMonthStartInIST(t *testing.T) {
	repo := new(mocks.MockDashboardRepo)
	svc := service.NewDashboardService(repo)
	tenantID := uuid.New()

	today := timeutil.Today()
	want := &domain.Dashboard{OverdueCount: 2, TotalReceivable: dec("1500")}
	repo.On("GetSummary", mock.Anything, tenantID, mock.MatchedBy(func(ts time.Time) bool {
		return ts.Day() == 1 && ts.Month() == today.Month() && ts.Location() == timeutil.IST
	})).Return(want, nil)

	got, err := svc.Get(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestDashboardService_Reminders_EmptyListsNotNil(t *testing.T) {
	repo := new(mocks.MockDashboardRepo)
	svc := service.NewDashboardService(repo)
	tenantID := uuid.New()
	overdue := []domain.ReminderItem{{DocumentID: uuid.New(), DocumentNumber: "INV/2025-26/003"}}
	repo.On("Reminders", mock.Anything, tenantID, timeutil.Today()).
		Return(&domain.Reminders{OverdueInvoices: overdue, UnfiledGSTBills: 4}, nil)

	got, err := svc.Reminders(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Equal(t, overdue, got.OverdueInvoices)
	assert.NotNil(t, got.PendingTDSCertificates)
	assert.Empty(t, got.UpcomingFollowUps)
	assert.NotNil(t, got.OverdueBills)
	assert.Equal(t, 4, got.UnfiledGSTBills)
}
