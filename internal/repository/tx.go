package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the query surface shared by *pgxpool.Pool and pgx.Tx, so the
// same repositories serve pool-scoped reads and transaction-scoped writes.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Tx groups the repositories that participate in one lifecycle transaction.
// The ticket write and its history append always commit together.
type Tx interface {
	Tickets() TicketRepository
	History() StatusHistoryRepository
}

// TxRunner executes fn inside a single database transaction, committing on
// nil and rolling back on error.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

type pgxTxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds a pgx-backed TxRunner.
func NewTxRunner(pool *pgxpool.Pool) TxRunner {
	return &pgxTxRunner{pool: pool}
}

func (r *pgxTxRunner) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	dbTx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = dbTx.Rollback(ctx)
	}()

	if err := fn(&pgxTx{q: dbTx}); err != nil {
		return err
	}
	return dbTx.Commit(ctx)
}

type pgxTx struct {
	q pgx.Tx
}

func (t *pgxTx) Tickets() TicketRepository {
	return NewTicketRepository(t.q)
}

func (t *pgxTx) History() StatusHistoryRepository {
	return NewStatusHistoryRepository(t.q)
}
