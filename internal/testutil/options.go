package testutil

import (
	"time"

	"github.com/zjrosen/quickactions/internal/ledger"
)

// BaseTime anchors fixture dates so output is stable.
var BaseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// TxOption configures a transaction during builder setup.
type TxOption func(*ledger.Transaction)

// defaultTx returns a transaction titled by its id that occurred at BaseTime.
func defaultTx(id string) ledger.Transaction {
	return ledger.Transaction{
		ID:          id,
		Title:       id,
		AmountCents: 1000,
		Currency:    "USD",
		OccurredAt:  BaseTime,
		CreatedAt:   BaseTime,
	}
}

// Title sets the title.
func Title(title string) TxOption {
	return func(t *ledger.Transaction) { t.Title = title }
}

// Untitled clears the title so the palette falls back to the id.
func Untitled() TxOption {
	return func(t *ledger.Transaction) { t.Title = "" }
}

// Merchant sets the merchant.
func Merchant(merchant string) TxOption {
	return func(t *ledger.Transaction) { t.Merchant = merchant }
}

// Amount sets the amount in cents.
func Amount(cents int64) TxOption {
	return func(t *ledger.Transaction) { t.AmountCents = cents }
}

// Currency sets the currency code.
func Currency(code string) TxOption {
	return func(t *ledger.Transaction) { t.Currency = code }
}

// OccurredAt sets the occurrence time; the zero time means undated.
func OccurredAt(at time.Time) TxOption {
	return func(t *ledger.Transaction) { t.OccurredAt = at }
}

// DaysAgo sets the occurrence time relative to BaseTime.
func DaysAgo(days int) TxOption {
	return func(t *ledger.Transaction) { t.OccurredAt = BaseTime.AddDate(0, 0, -days) }
}
