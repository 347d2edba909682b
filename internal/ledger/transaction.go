// Package ledger holds the transaction entity that feeds the palette's
// recent list, and the persistence interface for it.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrTransactionNotFound is returned when no transaction has the requested id.
var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction is a single ledger entry.
type Transaction struct {
	ID          string
	Title       string // optional
	Merchant    string // optional
	AmountCents int64
	Currency    string    // ISO 4217, empty means USD
	OccurredAt  time.Time // zero when unknown
	CreatedAt   time.Time
}

// NewTransaction creates a transaction with a fresh random id.
func NewTransaction(title, merchant string, amountCents int64, occurredAt time.Time) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Merchant:    strings.TrimSpace(merchant),
		AmountCents: amountCents,
		Currency:    "USD",
		OccurredAt:  occurredAt,
		CreatedAt:   time.Now(),
	}
}

// Validate checks the fields the store requires.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("transaction id is required")
	}
	if t.Currency != "" && len(t.Currency) != 3 {
		return fmt.Errorf("currency %q is not a 3-letter code", t.Currency)
	}
	return nil
}

// Amount renders the amount with its currency symbol, e.g. "$54.20" or "-€3.05".
func (t Transaction) Amount() string {
	return FormatAmount(t.AmountCents, t.Currency)
}

var symbols = map[string]string{
	"":    "$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// FormatAmount renders cents in currency.
func FormatAmount(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	symbol, ok := symbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/100, cents%100)
}
