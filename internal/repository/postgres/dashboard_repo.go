package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"khata/internal/domain"
	"khata/internal/port"
)

type dashboardRepo struct {
	db *sqlx.DB
}

// NewDashboardRepo creates a new PostgreSQL-backed DashboardRepository.
func NewDashboardRepo(db *sqlx.DB) port.DashboardRepository {
	return &dashboardRepo{db: db}
}

const documentTotalsQuery = `SELECT
	COALESCE(SUM(CASE WHEN kind = 'sales' THEN balance_due END), 0) AS total_receivable,
	COALESCE(SUM(CASE WHEN kind = 'purchase' THEN balance_due END), 0) AS total_payable,
	COUNT(CASE WHEN status = 'overdue' THEN 1 END) AS overdue_count,
	COALESCE(SUM(CASE WHEN status = 'overdue' THEN balance_due END), 0) AS overdue_amount,
	COUNT(CASE WHEN kind = 'sales' THEN 1 END) AS invoice_count
FROM documents
WHERE tenant_id = $1 AND deleted_at IS NULL AND status NOT IN ('draft', 'cancelled')`

const paymentTotalsQuery = `SELECT
	COALESCE(SUM(CASE WHEN direction = 'received' THEN amount END), 0) AS received_this_month,
	COALESCE(SUM(CASE WHEN direction = 'made' THEN amount END), 0) AS paid_this_month
FROM payments
WHERE tenant_id = $1 AND deleted_at IS NULL AND payment_date >= $2`

func (r *dashboardRepo) GetSummary(ctx context.Context, tenantID uuid.UUID, monthStart time.Time) (*domain.Dashboard, error) {
	var dash domain.Dashboard
	if err := conn(ctx, r.db).GetContext(ctx, &dash, documentTotalsQuery, tenantID); err != nil {
		return nil, fmt.Errorf("dashboardRepo.GetSummary documents: %w", err)
	}

	var flows struct {
		Received decimal.Decimal `db:"received_this_month"`
		Paid     decimal.Decimal `db:"paid_this_month"`
	}
	if err := conn(ctx, r.db).GetContext(ctx, &flows, paymentTotalsQuery, tenantID, monthStart); err != nil {
		return nil, fmt.Errorf("dashboardRepo.GetSummary payments: %w", err)
	}
	dash.ReceivedThisMonth = flows.Received
	dash.PaidThisMonth = flows.Paid

	if err := conn(ctx, r.db).GetContext(ctx, &dash.UnmatchedBankCount,
		"SELECT COUNT(*) FROM bank_transactions WHERE tenant_id = $1 AND status = 'unmatched'", tenantID); err != nil {
		return nil, fmt.Errorf("dashboardRepo.GetSummary bank: %w", err)
	}
	return &dash, nil
}

const reminderColumns = `id, kind, document_number, party_name, document_date, due_date,
	total_amount, balance_due, tds_amount, tds_certificate_status, next_follow_up_date, follow_up_notes`

const (
	reminderLimit     = 20
	billReminderLimit = 10
)

// Queries that compare against today take it as $2 and the limit as $3.
var reminderQueries = []struct {
	name     string
	query    string
	limit    int
	datedArg bool
}{
	{"overdue invoices", `SELECT ` + reminderColumns + ` FROM documents
		WHERE tenant_id = $1 AND deleted_at IS NULL AND kind = 'sales'
		AND status IN ('sent', 'partially_paid', 'overdue') AND due_date < $2 AND balance_due > 0
		ORDER BY due_date, document_number LIMIT $3`, reminderLimit, true},
	{"pending certificates", `SELECT ` + reminderColumns + ` FROM documents
		WHERE tenant_id = $1 AND deleted_at IS NULL AND kind = 'sales' AND tds_applicable
		AND tds_certificate_status IN ('pending', 'requested')
		ORDER BY document_date DESC, document_number LIMIT $2`, reminderLimit, false},
	{"follow-ups", `SELECT ` + reminderColumns + ` FROM documents
		WHERE tenant_id = $1 AND deleted_at IS NULL AND kind = 'sales'
		AND status NOT IN ('paid', 'cancelled')
		AND next_follow_up_date BETWEEN $2::date - 1 AND $2::date + 7
		ORDER BY next_follow_up_date, document_number LIMIT $3`, reminderLimit, true},
	{"overdue bills", `SELECT ` + reminderColumns + ` FROM documents
		WHERE tenant_id = $1 AND deleted_at IS NULL AND kind = 'purchase'
		AND status IN ('pending', 'partially_paid', 'overdue') AND due_date < $2 AND balance_due > 0
		ORDER BY due_date, document_number LIMIT $3`, billReminderLimit, true},
}

const reminderCountsQuery = `SELECT
	(SELECT COUNT(*) FROM bank_transactions
		WHERE tenant_id = $1 AND status = 'unmatched' AND credit > 0) AS unmatched_bank_credits,
	(SELECT COUNT(*) FROM documents
		WHERE tenant_id = $1 AND deleted_at IS NULL AND kind = 'purchase'
		AND status <> 'cancelled' AND NOT gst_filed) AS unfiled_gst_bills`

func (r *dashboardRepo) Reminders(ctx context.Context, tenantID uuid.UUID, today time.Time) (*domain.Reminders, error) {
	var rem domain.Reminders
	lists := []*[]domain.ReminderItem{
		&rem.OverdueInvoices, &rem.PendingTDSCertificates, &rem.UpcomingFollowUps, &rem.OverdueBills,
	}
	for i, rq := range reminderQueries {
		args := []any{tenantID, rq.limit}
		if rq.datedArg {
			args = []any{tenantID, today, rq.limit}
		}
		if err := conn(ctx, r.db).SelectContext(ctx, lists[i], rq.query, args...); err != nil {
			return nil, fmt.Errorf("dashboardRepo.Reminders %s: %w", rq.name, err)
		}
	}

	var counts struct {
		UnmatchedBankCredits int `db:"unmatched_bank_credits"`
		UnfiledGSTBills      int `db:"unfiled_gst_bills"`
	}
	if err := conn(ctx, r.db).GetContext(ctx, &counts, reminderCountsQuery, tenantID); err != nil {
		return nil, fmt.Errorf("dashboardRepo.Reminders counts: %w", err)
	}
	rem.UnmatchedBankCredits = counts.UnmatchedBankCredits
	rem.UnfiledGSTBills = counts.UnfiledGSTBills
	return &rem, nil
}
