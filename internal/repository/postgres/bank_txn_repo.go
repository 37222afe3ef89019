package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"khata/internal/domain"
	"khata/internal/port"
)

type bankTxnRepo struct {
	db *sqlx.DB
}

// NewBankTransactionRepo creates a new PostgreSQL-backed BankTransactionRepository.
func NewBankTransactionRepo(db *sqlx.DB) port.BankTransactionRepository {
	return &bankTxnRepo{db: db}
}

const insertBankTxnQuery = `INSERT INTO bank_transactions (id, tenant_id, account_label, txn_date,
	description, narration, reference_number, debit, credit, balance, import_hash, status,
	created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (tenant_id, import_hash) DO NOTHING`

func (r *bankTxnRepo) InsertIfAbsent(ctx context.Context, txn *domain.BankTransaction) (bool, error) {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.Status == "" {
		txn.Status = domain.BankTxnUnmatched
	}
	now := time.Now().UTC()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	result, err := conn(ctx, r.db).ExecContext(ctx, insertBankTxnQuery,
		txn.ID, txn.TenantID, txn.AccountLabel, txn.TxnDate, txn.Description, txn.Narration,
		txn.ReferenceNumber, txn.Debit, txn.Credit, txn.Balance, txn.ImportHash, txn.Status,
		txn.CreatedAt, txn.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("bankTxnRepo.InsertIfAbsent: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("bankTxnRepo.InsertIfAbsent: %w", err)
	}
	return rows > 0, nil
}

func (r *bankTxnRepo) get(ctx context.Context, query, op string, args ...interface{}) (*domain.BankTransaction, error) {
	var txn domain.BankTransaction
	if err := conn(ctx, r.db).GetContext(ctx, &txn, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBankTxnNotFound
		}
		return nil, fmt.Errorf("bankTxnRepo.%s: %w", op, err)
	}
	return &txn, nil
}

func (r *bankTxnRepo) GetByID(ctx context.Context, tenantID, txnID uuid.UUID) (*domain.BankTransaction, error) {
	return r.get(ctx, "SELECT * FROM bank_transactions WHERE id = $1 AND tenant_id = $2",
		"GetByID", txnID, tenantID)
}

func (r *bankTxnRepo) LockByID(ctx context.Context, tenantID, txnID uuid.UUID) (*domain.BankTransaction, error) {
	return r.get(ctx, "SELECT * FROM bank_transactions WHERE id = $1 AND tenant_id = $2 FOR UPDATE",
		"LockByID", txnID, tenantID)
}

func (r *bankTxnRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.BankTxnFilter) ([]domain.BankTransaction, int, error) {
	where := "WHERE tenant_id = $1"
	args := []interface{}{tenantID}
	if filter.Status != "" {
		where += " AND status = $2"
		args = append(args, filter.Status)
	}

	var total int
	if err := conn(ctx, r.db).GetContext(ctx, &total, "SELECT COUNT(*) FROM bank_transactions "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("bankTxnRepo.List count: %w", err)
	}

	query, args := paginate("SELECT * FROM bank_transactions "+where+" ORDER BY txn_date DESC, created_at DESC",
		args, filter.Offset, filter.Limit)
	var txns []domain.BankTransaction
	if err := conn(ctx, r.db).SelectContext(ctx, &txns, query, args...); err != nil {
		return nil, 0, fmt.Errorf("bankTxnRepo.List: %w", err)
	}
	return txns, total, nil
}

func (r *bankTxnRepo) ListUnmatchedCredits(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.BankTransaction, error) {
	query, args := paginate(`SELECT * FROM bank_transactions
		WHERE tenant_id = $1 AND status = 'unmatched' AND credit > 0
		ORDER BY txn_date DESC, created_at DESC`, []interface{}{tenantID}, 0, limit)
	var txns []domain.BankTransaction
	if err := conn(ctx, r.db).SelectContext(ctx, &txns, query, args...); err != nil {
		return nil, fmt.Errorf("bankTxnRepo.ListUnmatchedCredits: %w", err)
	}
	return txns, nil
}

func (r *bankTxnRepo) MarkMatched(ctx context.Context, tenantID, txnID, paymentID uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE bank_transactions SET status = 'matched', matched_payment_id = $1, updated_at = NOW()
		 WHERE id = $2 AND tenant_id = $3`, paymentID, txnID, tenantID)
	if err != nil {
		return fmt.Errorf("bankTxnRepo.MarkMatched: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrBankTxnNotFound)
}

func (r *bankTxnRepo) SetStatus(ctx context.Context, tenantID, txnID uuid.UUID, status domain.BankTxnStatus) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE bank_transactions SET status = $1, matched_payment_id = NULL, updated_at = NOW()
		 WHERE id = $2 AND tenant_id = $3`, status, txnID, tenantID)
	if err != nil {
		return fmt.Errorf("bankTxnRepo.SetStatus: %w", err)
	}
	return affectedOrNotFound(result, domain.ErrBankTxnNotFound)
}

func (r *bankTxnRepo) UnmatchByPayment(ctx context.Context, tenantID, paymentID uuid.UUID) (int64, error) {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE bank_transactions SET status = 'unmatched', matched_payment_id = NULL, updated_at = NOW()
		 WHERE tenant_id = $1 AND matched_payment_id = $2`, tenantID, paymentID)
	if err != nil {
		return 0, fmt.Errorf("bankTxnRepo.UnmatchByPayment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bankTxnRepo.UnmatchByPayment: %w", err)
	}
	return rows, nil
}
