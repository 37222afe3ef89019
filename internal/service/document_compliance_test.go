package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/service"
	"khata/internal/timeutil"
)

func ptr[T any](v T) *T { return &v }

func tdsInvoice(f *docFixture) *domain.Document {
	doc := openInvoice(f.tenant.ID, domain.StatusSent, "11800", "0", timeutil.Today().AddDate(0, 0, 10))
	doc.TaxableAmount = dec("10000")
	doc.TDSApplicable = true
	doc.TDSRate = dec("10")
	doc.TDSAmount = dec("1000")
	doc.TDSCertificateStatus = domain.CertificatePending
	return doc
}

func TestDocumentService_UpdateCompliance_CertificateReceivedDefaultsDate(t *testing.T) {
	f := newDocFixture()
	doc := tdsInvoice(f)
	doc.Status = domain.StatusPaid
	f.docs.On("LockByID", mock.Anything, f.tenant.ID, doc.ID).Return(doc, nil)
	f.docs.On("UpdateCompliance", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	got, err := f.svc.UpdateCompliance(context.Background(), service.UpdateComplianceInput{
		TenantID:             f.tenant.ID,
		DocumentID:           doc.ID,
		TDSCertificateStatus: ptr(domain.CertificateReceived),
		FollowUpNotes:        ptr("  got it from accounts  "),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CertificateReceived, got.TDSCertificateStatus)
	require.NotNil(t, got.TDSCertificateReceivedDate)
	assert.True(t, got.TDSCertificateReceivedDate.Equal(timeutil.Today()))
	assert.Equal(t, "got it from accounts", got.FollowUpNotes)
	assert.Equal(t, "1000", got.TDSAmount.String())
	f.docs.AssertExpectations(t)
}

func TestDocumentService_UpdateCompliance_ExplicitDateAndClear(t *testing.T) {
	f := newDocFixture()
	doc := tdsInvoice(f)
	followUp := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	doc.NextFollowUpDate = &followUp
	f.docs.On("LockByID", mock.Anything, f.tenant.ID, doc.ID).Return(doc, nil)
	f.docs.On("UpdateCompliance", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	received := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	got, err := f.svc.UpdateCompliance(context.Background(), service.UpdateComplianceInput{
		TenantID:                   f.tenant.ID,
		DocumentID:                 doc.ID,
		TDSCertificateStatus:       ptr(domain.CertificateReceived),
		TDSCertificateReceivedDate: &service.NullableDate{Time: &received},
		NextFollowUpDate:           &service.NullableDate{},
	})

	require.NoError(t, err)
	require.NotNil(t, got.TDSCertificateReceivedDate)
	assert.True(t, got.TDSCertificateReceivedDate.Equal(received))
	assert.Nil(t, got.NextFollowUpDate)
}

func TestDocumentService_UpdateCompliance_TDSOffForcesNotApplicable(t *testing.T) {
	f := newDocFixture()
	doc := tdsInvoice(f)
	received := timeutil.Today()
	doc.TDSCertificateStatus = domain.CertificateReceived
	doc.TDSCertificateReceivedDate = &received
	f.docs.On("LockByID", mock.Anything, f.tenant.ID, doc.ID).Return(doc, nil)
	f.docs.On("UpdateCompliance", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	got, err := f.svc.UpdateCompliance(context.Background(), service.UpdateComplianceInput{
		TenantID:      f.tenant.ID,
		DocumentID:    doc.ID,
		TDSApplicable: ptr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CertificateNotApplicable, got.TDSCertificateStatus)
	assert.Nil(t, got.TDSCertificateReceivedDate)
	assert.True(t, got.TDSAmount.IsZero())
}

func TestDocumentService_UpdateCompliance_BillFilingChecks(t *testing.T) {
	f := newDocFixture()
	bill := openInvoice(f.tenant.ID, domain.StatusPending, "5900", "0", timeutil.Today())
	bill.Kind = domain.DocumentPurchase
	bill.TDSCertificateStatus = domain.CertificateNotApplicable
	f.docs.On("LockByID", mock.Anything, f.tenant.ID, bill.ID).Return(bill, nil)
	f.docs.On("UpdateCompliance", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.GSTFiled && d.GSTR2BReflected && d.PortalCheckDate != nil
	})).Return(nil)

	checked := time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC)
	got, err := f.svc.UpdateCompliance(context.Background(), service.UpdateComplianceInput{
		TenantID:        f.tenant.ID,
		DocumentID:      bill.ID,
		GSTFiled:        ptr(true),
		GSTR2BReflected: ptr(true),
		PortalCheckDate: &service.NullableDate{Time: &checked},
		ComplianceNotes: ptr("matched on portal"),
	})

	require.NoError(t, err)
	assert.Equal(t, "matched on portal", got.ComplianceNotes)
	assert.Equal(t, domain.CertificateNotApplicable, got.TDSCertificateStatus)
	f.docs.AssertExpectations(t)
}

func TestDocumentService_UpdateCompliance_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		sales bool
		input func(*service.UpdateComplianceInput)
	}{
		{"bill field on invoice", true, func(in *service.UpdateComplianceInput) { in.GSTFiled = ptr(true) }},
		{"invoice field on bill", false, func(in *service.UpdateComplianceInput) { in.FollowUpNotes = ptr("call") }},
		{"unknown status", true, func(in *service.UpdateComplianceInput) {
			in.TDSCertificateStatus = ptr(domain.TDSCertificateStatus("lost"))
		}},
		{"status without tds", true, func(in *service.UpdateComplianceInput) {
			in.TDSApplicable = ptr(false)
			in.TDSCertificateStatus = ptr(domain.CertificateRequested)
		}},
		{"rate out of range", true, func(in *service.UpdateComplianceInput) { in.TDSRate = ptr(dec("101")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDocFixture()
			doc := tdsInvoice(f)
			if !tt.sales {
				doc.Kind = domain.DocumentPurchase
			}
			f.docs.On("LockByID", mock.Anything, f.tenant.ID, doc.ID).Return(doc, nil).Maybe()

			in := service.UpdateComplianceInput{TenantID: f.tenant.ID, DocumentID: doc.ID}
			tt.input(&in)
			_, err := f.svc.UpdateCompliance(context.Background(), in)

			assert.ErrorIs(t, err, domain.ErrValidation)
			f.docs.AssertNotCalled(t, "UpdateCompliance", mock.Anything, mock.Anything)
		})
	}
}

func TestDocumentService_UpdateCompliance_DeletedIsNotFound(t *testing.T) {
	f := newDocFixture()
	doc := tdsInvoice(f)
	now := time.Now()
	doc.DeletedAt = &now
	f.docs.On("LockByID", mock.Anything, f.tenant.ID, doc.ID).Return(doc, nil)

	_, err := f.svc.UpdateCompliance(context.Background(), service.UpdateComplianceInput{
		TenantID: f.tenant.ID, DocumentID: doc.ID, FollowUpNotes: ptr("x"),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_CreateInvoice_TDSStartsPending(t *testing.T) {
	f := newDocFixture()
	f.tenants.On("ReserveInvoiceSerial", mock.Anything, f.tenant.ID).Return(int64(8), f.tenant, nil)
	f.docs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Document")).Return(nil)

	doc, err := f.svc.CreateInvoice(context.Background(), service.CreateInvoiceInput{
		TenantID:      f.tenant.ID,
		CustomerID:    f.customer.ID,
		DocumentDate:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		TDSApplicable: true,
		TDSRate:       dec("10"),
		Lines:         consultingLine(),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CertificatePending, doc.TDSCertificateStatus)
}
