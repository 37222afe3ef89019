package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"khata/internal/domain"
	"khata/internal/reconcile"
	"khata/internal/service"
	"khata/internal/timeutil"
	"khata/mocks"
)

type bankFixture struct {
	bank     *mocks.MockBankTxnRepo
	docs     *mocks.MockDocumentRepo
	payments *mocks.MockPaymentRepo
	parties  *mocks.MockPartyRepo
	tenants  *mocks.MockTenantRepo
	svc      service.BankService
	tenantID uuid.UUID
}

func newBankFixture() *bankFixture {
	f := &bankFixture{
		bank:     new(mocks.MockBankTxnRepo),
		docs:     new(mocks.MockDocumentRepo),
		payments: new(mocks.MockPaymentRepo),
		parties:  new(mocks.MockPartyRepo),
		tenants:  new(mocks.MockTenantRepo),
		tenantID: uuid.New(),
	}
	f.svc = service.NewBankService(f.bank, f.docs, f.payments, f.parties, f.tenants,
		mocks.NewPassthroughTransactor(), new(mocks.MockEmailSender), zap.NewNop())
	return f
}

func unmatchedCredit(tenantID uuid.UUID, credit, description string) *domain.BankTransaction {
	return &domain.BankTransaction{
		ID:              uuid.New(),
		TenantID:        tenantID,
		TxnDate:         time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC),
		Description:     description,
		ReferenceNumber: "UTR998877",
		Credit:          dec(credit),
		Debit:           dec("0"),
		Status:          domain.BankTxnUnmatched,
	}
}

func TestBankService_Import_SkipsDuplicates(t *testing.T) {
	f := newBankFixture()
	statement := "Date,Description,Debit,Credit\n" +
		"2025-05-02,NEFT ACME,,59000\n" +
		"2025-05-02,NEFT ACME,,59000\n"
	f.bank.On("InsertIfAbsent", mock.Anything, mock.AnythingOfType("*domain.BankTransaction")).Return(true, nil).Once()
	f.bank.On("InsertIfAbsent", mock.Anything, mock.AnythingOfType("*domain.BankTransaction")).Return(false, nil).Once()

	res, err := f.svc.Import(context.Background(), f.tenantID, " HDFC current ", strings.NewReader(statement))

	require.NoError(t, err)
	assert.Equal(t, &domain.ImportResult{Imported: 1, Skipped: 1, Total: 2}, res)
	f.bank.AssertExpectations(t)
}

func TestBankService_ImportRows_StampsTenantAndHash(t *testing.T) {
	f := newBankFixture()
	row := reconcile.StatementRow{
		Line: 2, TxnDate: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), Description: "Rent", Debit: dec("25000"), Credit: dec("0"),
	}
	f.bank.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(txn *domain.BankTransaction) bool {
		return txn.TenantID == f.tenantID &&
			txn.AccountLabel == "HDFC" &&
			txn.Status == domain.BankTxnUnmatched &&
			txn.ImportHash != ""
	})).Return(true, nil)

	res, err := f.svc.ImportRows(context.Background(), f.tenantID, "HDFC", []reconcile.StatementRow{row})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
}

func TestBankService_Import_SecondPassSkipsEverything(t *testing.T) {
	f := newBankFixture()
	statement := "Date,Description,Debit,Credit\n" +
		"2025-05-02,NEFT ACME,,59000\n" +
		"2025-05-03,ATM WDL,2000,\n" +
		"2025-05-04,IMPS ZENITH,,1200\n"
	seen := map[string]bool{}
	f.bank.On("InsertIfAbsent", mock.Anything, mock.AnythingOfType("*domain.BankTransaction")).
		Return(func(_ context.Context, txn *domain.BankTransaction) bool {
			if seen[txn.ImportHash] {
				return false
			}
			seen[txn.ImportHash] = true
			return true
		}, nil)

	first, err := f.svc.Import(context.Background(), f.tenantID, "HDFC", strings.NewReader(statement))
	require.NoError(t, err)
	assert.Equal(t, &domain.ImportResult{Imported: 3, Skipped: 0, Total: 3}, first)

	second, err := f.svc.Import(context.Background(), f.tenantID, "HDFC", strings.NewReader(statement))
	require.NoError(t, err)
	assert.Equal(t, &domain.ImportResult{Imported: 0, Skipped: 3, Total: 3}, second)
	f.bank.AssertNumberOfCalls(t, "InsertIfAbsent", 6)
}

func TestBankService_ImportRows_RejectsInvalidRow(t *testing.T) {
	f := newBankFixture()
	date := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	rows := []reconcile.StatementRow{
		{Line: 2, TxnDate: date, Description: "NEFT ACME", Debit: dec("0"), Credit: dec("59000")},
		{Line: 3, TxnDate: date, Description: "Opening balance", Debit: dec("0"), Credit: dec("0")},
	}

	_, err := f.svc.ImportRows(context.Background(), f.tenantID, "HDFC", rows)

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.bank.AssertNotCalled(t, "InsertIfAbsent", mock.Anything, mock.Anything)
}

func TestBankService_Import_MalformedStatement(t *testing.T) {
	f := newBankFixture()
	_, err := f.svc.Import(context.Background(), f.tenantID, "HDFC", strings.NewReader("Date,Description\n2025-05-02,x\n"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	f.bank.AssertNotCalled(t, "InsertIfAbsent", mock.Anything, mock.Anything)
}

func TestBankService_Suggest_RanksInvoice(t *testing.T) {
	f := newBankFixture()
	inv := openInvoice(f.tenantID, domain.StatusSent, "59000", "0", timeutil.Today().AddDate(0, 0, 10))
	inv.DocumentNumber = "INV/2025-26/008"
	other := openInvoice(f.tenantID, domain.StatusSent, "1200", "0", timeutil.Today().AddDate(0, 0, 10))
	other.PartyName = "Zenith Labs"
	other.DocumentNumber = "INV/2025-26/009"
	txn := unmatchedCredit(f.tenantID, "59000", "NEFT ACME INV/2025-26/008")

	f.bank.On("ListUnmatchedCredits", mock.Anything, f.tenantID, 100).Return([]domain.BankTransaction{*txn}, nil)
	f.docs.On("ListOpen", mock.Anything, f.tenantID, domain.DocumentSales).Return([]domain.Document{*other, *inv}, nil)

	out, err := f.svc.Suggest(context.Background(), f.tenantID)

	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Candidates, 1)
	assert.Equal(t, inv.ID, out[0].Candidates[0].Document.ID)
	assert.Equal(t, reconcile.ScoreExactBalance+reconcile.ScorePartyName+reconcile.ScoreNumberInNarrative,
		out[0].Candidates[0].Score)
}

func TestBankService_Suggest_NothingUnmatched(t *testing.T) {
	f := newBankFixture()
	f.bank.On("ListUnmatchedCredits", mock.Anything, f.tenantID, 100).Return([]domain.BankTransaction{}, nil)

	out, err := f.svc.Suggest(context.Background(), f.tenantID)

	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	f.docs.AssertNotCalled(t, "ListOpen", mock.Anything, mock.Anything, mock.Anything)
}

func TestBankService_Match_DefaultsFromTransaction(t *testing.T) {
	f := newBankFixture()
	inv := openInvoice(f.tenantID, domain.StatusSent, "59000", "0", timeutil.Today().AddDate(0, 0, 10))
	txn := unmatchedCredit(f.tenantID, "60000", "NEFT ACME")
	f.bank.On("LockByID", mock.Anything, f.tenantID, txn.ID).Return(txn, nil)
	f.docs.On("LockByID", mock.Anything, f.tenantID, inv.ID).Return(inv, nil)
	f.docs.On("UpdateBalance", mock.Anything, inv).Return(nil)
	f.payments.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	f.bank.On("MarkMatched", mock.Anything, f.tenantID, txn.ID, mock.AnythingOfType("uuid.UUID")).Return(nil)
	f.parties.On("GetByID", mock.Anything, f.tenantID, inv.PartyID).
		Return(&domain.Party{ID: inv.PartyID, Kind: domain.PartyCustomer}, nil)

	p, err := f.svc.Match(context.Background(), service.MatchInput{
		TenantID: f.tenantID, TxnID: txn.ID, DocumentID: inv.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, "59000.00", p.Amount.StringFixed(2))
	assert.Equal(t, txn.TxnDate, p.PaymentDate)
	assert.Equal(t, "UTR998877", p.Reference)
	assert.Equal(t, domain.ModeBankTransfer, p.Mode)
	assert.Equal(t, domain.StatusPaid, inv.Status)
	f.bank.AssertCalled(t, "MarkMatched", mock.Anything, f.tenantID, txn.ID, p.ID)
}

func TestBankService_Match_RoundsExplicitAmount(t *testing.T) {
	f := newBankFixture()
	inv := openInvoice(f.tenantID, domain.StatusSent, "5000", "0", timeutil.Today().AddDate(0, 0, 10))
	txn := unmatchedCredit(f.tenantID, "6000", "NEFT ACME")
	amount := dec("100.005")
	f.bank.On("LockByID", mock.Anything, f.tenantID, txn.ID).Return(txn, nil)
	f.docs.On("LockByID", mock.Anything, f.tenantID, inv.ID).Return(inv, nil)
	f.docs.On("UpdateBalance", mock.Anything, inv).Return(nil)
	f.payments.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	f.bank.On("MarkMatched", mock.Anything, f.tenantID, txn.ID, mock.AnythingOfType("uuid.UUID")).Return(nil)
	f.parties.On("GetByID", mock.Anything, f.tenantID, inv.PartyID).
		Return(&domain.Party{ID: inv.PartyID, Kind: domain.PartyCustomer}, nil)

	p, err := f.svc.Match(context.Background(), service.MatchInput{
		TenantID: f.tenantID, TxnID: txn.ID, DocumentID: inv.ID, Amount: &amount,
	})

	require.NoError(t, err)
	assert.Equal(t, "100.01", p.Amount.String())
	assert.Equal(t, "100.01", inv.AmountPaid.String())
	assert.True(t, inv.AmountPaid.Add(inv.BalanceDue).Equal(inv.TotalAmount))
	assert.Equal(t, domain.StatusPartiallyPaid, inv.Status)
}

func TestBankService_Match_Rejects(t *testing.T) {
	t.Run("already matched", func(t *testing.T) {
		f := newBankFixture()
		txn := unmatchedCredit(f.tenantID, "100", "x")
		txn.Status = domain.BankTxnMatched
		f.bank.On("LockByID", mock.Anything, f.tenantID, txn.ID).Return(txn, nil)

		_, err := f.svc.Match(context.Background(), service.MatchInput{TenantID: f.tenantID, TxnID: txn.ID, DocumentID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrBankTxnNotUnmatched)
	})

	t.Run("debit row", func(t *testing.T) {
		f := newBankFixture()
		txn := unmatchedCredit(f.tenantID, "0", "x")
		txn.Debit = dec("100")
		f.bank.On("LockByID", mock.Anything, f.tenantID, txn.ID).Return(txn, nil)

		_, err := f.svc.Match(context.Background(), service.MatchInput{TenantID: f.tenantID, TxnID: txn.ID, DocumentID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrNoCreditAmount)
	})

	t.Run("amount above credit", func(t *testing.T) {
		f := newBankFixture()
		inv := openInvoice(f.tenantID, domain.StatusSent, "5000", "0", timeutil.Today())
		txn := unmatchedCredit(f.tenantID, "100", "x")
		amount := dec("100.01")
		f.bank.On("LockByID", mock.Anything, f.tenantID, txn.ID).Return(txn, nil)
		f.docs.On("LockByID", mock.Anything, f.tenantID, inv.ID).Return(inv, nil)

		_, err := f.svc.Match(context.Background(), service.MatchInput{
			TenantID: f.tenantID, TxnID: txn.ID, DocumentID: inv.ID, Amount: &amount,
		})
		assert.ErrorIs(t, err, domain.ErrMatchExceedsCredit)
		f.bank.AssertNotCalled(t, "MarkMatched", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("amount rounds to zero", func(t *testing.T) {
		f := newBankFixture()
		inv := openInvoice(f.tenantID, domain.StatusSent, "5000", "0", timeutil.Today())
		txn := unmatchedCredit(f.tenantID, "100", "x")
		amount := dec("0.004")
		f.bank.On("LockByID", mock.Anything, f.tenantID, txn.ID).Return(txn, nil)
		f.docs.On("LockByID", mock.Anything, f.tenantID, inv.ID).Return(inv, nil)

		_, err := f.svc.Match(context.Background(), service.MatchInput{
			TenantID: f.tenantID, TxnID: txn.ID, DocumentID: inv.ID, Amount: &amount,
		})
		assert.ErrorIs(t, err, domain.ErrNonPositiveAmount)
		f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("vendor bill", func(t *testing.T) {
		f := newBankFixture()
		bill := openInvoice(f.tenantID, domain.StatusPending, "100", "0", timeutil.Today())
		bill.Kind = domain.DocumentPurchase
		txn := unmatchedCredit(f.tenantID, "100", "x")
		f.bank.On("LockByID", mock.Anything, f.tenantID, txn.ID).Return(txn, nil)
		f.docs.On("LockByID", mock.Anything, f.tenantID, bill.ID).Return(bill, nil)

		_, err := f.svc.Match(context.Background(), service.MatchInput{TenantID: f.tenantID, TxnID: txn.ID, DocumentID: bill.ID})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestBankService_IgnoreAndUnignore(t *testing.T) {
	f := newBankFixture()
	txn := unmatchedCredit(f.tenantID, "100", "bank interest")
	f.bank.On("LockByID", mock.Anything, f.tenantID, txn.ID).Return(txn, nil)
	f.bank.On("SetStatus", mock.Anything, f.tenantID, txn.ID, domain.BankTxnIgnored).Return(nil).Once()
	f.bank.On("SetStatus", mock.Anything, f.tenantID, txn.ID, domain.BankTxnUnmatched).Return(nil).Once()

	got, err := f.svc.Ignore(context.Background(), f.tenantID, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BankTxnIgnored, got.Status)

	_, err = f.svc.Ignore(context.Background(), f.tenantID, txn.ID)
	assert.ErrorIs(t, err, domain.ErrBankTxnNotUnmatched)

	got, err = f.svc.Unignore(context.Background(), f.tenantID, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BankTxnUnmatched, got.Status)

	_, err = f.svc.Unignore(context.Background(), f.tenantID, txn.ID)
	assert.ErrorIs(t, err, domain.ErrBankTxnNotIgnored)
	f.bank.AssertExpectations(t)
}
