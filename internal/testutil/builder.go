package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quickactions/internal/ledger"
)

// Builder accumulates transactions and stores them in insertion order.
type Builder struct {
	t    testing.TB
	repo ledger.Repository
	txs  []ledger.Transaction
}

// NewBuilder creates a builder writing to repo.
func NewBuilder(t testing.TB, repo ledger.Repository) *Builder {
	t.Helper()
	return &Builder{t: t, repo: repo}
}

// WithTransaction adds a transaction with optional configuration.
func (b *Builder) WithTransaction(id string, opts ...TxOption) *Builder {
	tx := defaultTx(id)
	for _, opt := range opts {
		opt(&tx)
	}
	b.txs = append(b.txs, tx)
	return b
}

// Transactions returns what Build will insert.
func (b *Builder) Transactions() []ledger.Transaction {
	return append([]ledger.Transaction(nil), b.txs...)
}

// Build inserts all accumulated transactions.
func (b *Builder) Build() {
	b.t.Helper()
	for _, tx := range b.txs {
		require.NoError(b.t, b.repo.Add(context.Background(), tx))
	}
}
