package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"khata/internal/port"
)

type txKey struct{}

type txManager struct {
	db *sqlx.DB
}

// NewTxManager creates a Transactor backed by db. Calls nested inside an
// open transaction join it.
func NewTxManager(db *sqlx.DB) port.Transactor {
	return &txManager{db: db}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("txManager.WithinTx begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("txManager.WithinTx commit: %w", err)
	}
	return nil
}

const savepointName = "khata_sp"

func (m *txManager) WithinSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	if !ok {
		return m.WithinTx(ctx, fn)
	}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+savepointName); err != nil {
		return fmt.Errorf("txManager.WithinSavepoint: %w", err)
	}
	if err := fn(ctx); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepointName); rbErr != nil {
			return fmt.Errorf("txManager.WithinSavepoint rollback: %w", rbErr)
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+savepointName); err != nil {
		return fmt.Errorf("txManager.WithinSavepoint release: %w", err)
	}
	return nil
}
