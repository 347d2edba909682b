package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zjrosen/quickactions/internal/ledger"
	"github.com/zjrosen/quickactions/internal/log"
	"github.com/zjrosen/quickactions/internal/tracing"
)

const transactionColumns = `id, title, merchant, amount_cents, currency, occurred_at, created_at`

// transactionRepository implements ledger.Repository using SQLite.
type transactionRepository struct {
	db *sql.DB
}

var _ ledger.Repository = (*transactionRepository)(nil)

func newTransactionRepository(db *sql.DB) *transactionRepository {
	return &transactionRepository{db: db}
}

func scanTransaction(scanner interface{ Scan(...any) error }) (TransactionModel, error) {
	var m TransactionModel
	err := scanner.Scan(&m.ID, &m.Title, &m.Merchant, &m.AmountCents, &m.Currency, &m.OccurredAt, &m.CreatedAt)
	return m, err
}

// Add inserts t.
func (r *transactionRepository) Add(ctx context.Context, t ledger.Transaction) error {
	ctx, span := otel.Tracer("quickactions/sqlite").Start(ctx, tracing.SpanStoreAdd)
	defer span.End()

	if err := t.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("invalid transaction: %w", err)
	}
	m := toTransactionModel(t)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Merchant, m.AmountCents, m.Currency, m.OccurredAt, m.CreatedAt,
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	log.Debug(log.CatStore, "added transaction", "id", t.ID)
	return nil
}

// Recent returns up to limit transactions, newest first. Undated rows sort last.
func (r *transactionRepository) Recent(ctx context.Context, limit int) ([]ledger.Transaction, error) {
	ctx, span := otel.Tracer("quickactions/sqlite").Start(ctx, tracing.SpanStoreRecent)
	defer span.End()
	span.SetAttributes(attribute.Int(tracing.AttrLimit, limit))

	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		ORDER BY occurred_at IS NULL, occurred_at DESC, created_at DESC, rowid DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to query recent transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []ledger.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, m.toDomain())
	}
	if err := rows.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	span.SetAttributes(attribute.Int(tracing.AttrRows, len(out)))
	return out, nil
}

// Get returns the transaction with id.
// A missing id is not a span error; it is recorded as store.found=false.
func (r *transactionRepository) Get(ctx context.Context, id string) (ledger.Transaction, error) {
	ctx, span := otel.Tracer("quickactions/sqlite").Start(ctx, tracing.SpanStoreGet)
	defer span.End()
	span.SetAttributes(attribute.String(tracing.AttrTxID, id))

	row := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	m, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetAttributes(attribute.Bool(tracing.AttrFound, false))
		return ledger.Transaction{}, fmt.Errorf("%w: %s", ledger.ErrTransactionNotFound, id)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return ledger.Transaction{}, fmt.Errorf("failed to find transaction: %w", err)
	}
	span.SetAttributes(attribute.Bool(tracing.AttrFound, true))
	return m.toDomain(), nil
}

// Count returns the number of rows.
func (r *transactionRepository) Count(ctx context.Context) (int, error) {
	ctx, span := otel.Tracer("quickactions/sqlite").Start(ctx, tracing.SpanStoreCount)
	defer span.End()

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	span.SetAttributes(attribute.Int(tracing.AttrRows, n))
	return n, nil
}
