package ledger

import "context"

// Repository persists transactions.
type Repository interface {
	// Add stores a new transaction. The id must be unique.
	Add(ctx context.Context, t Transaction) error

	// Recent returns at most limit transactions, newest first by occurrence
	// and then by creation time.
	Recent(ctx context.Context, limit int) ([]Transaction, error)

	// Get returns the transaction with id, or ErrTransactionNotFound.
	Get(ctx context.Context, id string) (Transaction, error)

	// Count returns the number of stored transactions.
	Count(ctx context.Context) (int, error)
}
