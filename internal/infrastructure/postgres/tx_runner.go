package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinic-api/internal/application/billing"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constructs the runner from the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling begins a transaction, runs fn with tx-bound repositories and
// commits, or rolls back when fn fails. Line writes, stock adjustments and
// the totals recalculation of one bill mutation share this transaction.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	billRepo repository.BillRepository,
	itemRepo repository.BillItemRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	billRepo := NewBillRepository(tx)
	itemRepo := NewBillItemRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(billRepo, itemRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
