package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quickactions/internal/ledger"
	"github.com/zjrosen/quickactions/internal/palette"
)

// recentLoadedMsg carries a fresh read of the recent transactions.
type recentLoadedMsg struct {
	txs []ledger.Transaction
	err error
}

// transactionLoadedMsg carries the transaction shown on its detail page.
type transactionLoadedMsg struct {
	id  string
	tx  ledger.Transaction
	err error
}

// transactionAddedMsg reports the outcome of the Add Transaction action.
type transactionAddedMsg struct {
	tx  ledger.Transaction
	err error
}

// dbChangedMsg is sent when the watcher sees the database change.
type dbChangedMsg struct{}

const storeTimeout = 5 * time.Second

func loadRecent(repo ledger.Repository, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		txs, err := repo.Recent(ctx, limit)
		return recentLoadedMsg{txs: txs, err: err}
	}
}

func loadTransaction(repo ledger.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		tx, err := repo.Get(ctx, id)
		return transactionLoadedMsg{id: id, tx: tx, err: err}
	}
}

func addTransaction(repo ledger.Repository, now time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		tx := ledger.NewTransaction("New transaction", "", 0, now)
		return transactionAddedMsg{tx: tx, err: repo.Add(ctx, tx)}
	}
}

// waitForChange blocks on the watcher channel until it fires or ctx ends.
func waitForChange(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			return dbChangedMsg{}
		}
	}
}

// ToEntities adapts stored transactions to palette entities.
func ToEntities(txs []ledger.Transaction) []palette.Entity {
	out := make([]palette.Entity, 0, len(txs))
	for _, tx := range txs {
		out = append(out, palette.Entity{
			ID:       tx.ID,
			Title:    tx.Title,
			Merchant: tx.Merchant,
			Amount:   tx.Amount(),
			Date:     tx.OccurredAt,
		})
	}
	return out
}
