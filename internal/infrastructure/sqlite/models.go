package sqlite

import (
	"time"

	"github.com/zjrosen/quickactions/internal/ledger"
)

// TransactionModel is the row shape of the transactions table.
// Times are Unix seconds.
type TransactionModel struct {
	ID          string
	Title       *string // nullable
	Merchant    *string // nullable
	AmountCents int64
	Currency    string
	OccurredAt  *int64 // nullable
	CreatedAt   int64
}

func toTransactionModel(t ledger.Transaction) TransactionModel {
	m := TransactionModel{
		ID:          t.ID,
		Title:       nullString(t.Title),
		Merchant:    nullString(t.Merchant),
		AmountCents: t.AmountCents,
		Currency:    t.Currency,
		CreatedAt:   t.CreatedAt.Unix(),
	}
	if m.Currency == "" {
		m.Currency = "USD"
	}
	if t.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().Unix()
	}
	if !t.OccurredAt.IsZero() {
		at := t.OccurredAt.Unix()
		m.OccurredAt = &at
	}
	return m
}

func (m TransactionModel) toDomain() ledger.Transaction {
	t := ledger.Transaction{
		ID:          m.ID,
		AmountCents: m.AmountCents,
		Currency:    m.Currency,
		CreatedAt:   time.Unix(m.CreatedAt, 0).UTC(),
	}
	if m.Title != nil {
		t.Title = *m.Title
	}
	if m.Merchant != nil {
		t.Merchant = *m.Merchant
	}
	if m.OccurredAt != nil {
		t.OccurredAt = time.Unix(*m.OccurredAt, 0).UTC()
	}
	return t
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
