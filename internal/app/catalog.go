package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quickactions/internal/palette"
	"github.com/zjrosen/quickactions/internal/router"
)

// Catalog item ids.
const (
	ItemDashboard    = "nav:dashboard"
	ItemTransactions = "nav:transactions"
	ItemAddTx        = "action:add-transaction"
	ItemImport       = "action:import-statement"
	ItemToggleTheme  = "action:toggle-theme"
	ItemShortcuts    = "action:shortcuts"
	ItemJoinBudget   = "action:join-budget"
)

// effects queues messages requested by palette actions. Actions run inside
// the palette's Update, so the root model drains the queue afterwards.
type effects struct {
	msgs []tea.Msg
}

func (e *effects) emit(msg tea.Msg) palette.Action {
	return func() { e.msgs = append(e.msgs, msg) }
}

func (e *effects) drain() tea.Cmd {
	if len(e.msgs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(e.msgs))
	for _, msg := range e.msgs {
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	e.msgs = nil
	return tea.Batch(cmds...)
}

// Catalog returns the static palette items.
func Catalog(fx *effects) []palette.Item {
	return []palette.Item{
		{
			ID:          ItemDashboard,
			Label:       "Go to Dashboard",
			Description: "Balances and recent activity",
			Category:    palette.CategoryNavigation,
			Keywords:    []string{"home", "overview"},
			Action:      fx.emit(navigateMsg{route: router.Dashboard}),
		},
		{
			ID:          ItemTransactions,
			Label:       "Go to Transactions",
			Description: "Browse recorded transactions",
			Category:    palette.CategoryNavigation,
			Keywords:    []string{"ledger", "history"},
			Action:      fx.emit(navigateMsg{route: router.Transactions}),
		},
		{
			ID:          ItemAddTx,
			Label:       "Add Transaction",
			Description: "Record a new expense or income",
			Category:    palette.CategoryActions,
			Keywords:    []string{"new", "create", "expense"},
			Action:      fx.emit(addTransactionMsg{}),
		},
		{
			ID:          ItemImport,
			Label:       "Import Statement",
			Description: "Load a bank export",
			Category:    palette.CategoryActions,
			Keywords:    []string{"csv", "upload", "bank"},
			Action:      fx.emit(navigateMsg{route: router.Settings, status: "Import: choose a statement file in Settings"}),
		},
		{
			ID:          ItemToggleTheme,
			Label:       "Toggle Theme",
			Description: "Switch between light and dark",
			Category:    palette.CategoryActions,
			Keywords:    []string{"dark mode", "light mode", "appearance"},
			Action:      fx.emit(toggleThemeMsg{}),
		},
		{
			ID:       ItemShortcuts,
			Label:    "Show Keyboard Shortcuts",
			Category: palette.CategoryActions,
			Keywords: []string{"help", "keys", "bindings"},
			Action:   fx.emit(navigateMsg{route: router.Help}),
		},
		{
			ID:          ItemJoinBudget,
			Label:       "Join Shared Budget",
			Description: "Accept an invite from a partner",
			Category:    palette.CategoryActions,
			Keywords:    []string{"household", "invite", "share"},
			Action:      fx.emit(navigateMsg{route: router.Budgets, status: "Paste an invite code to join a shared budget"}),
		},
	}
}

// openTransaction returns the action behind a recent-transaction item.
func openTransaction(fx *effects) palette.Opener {
	return func(e palette.Entity) palette.Action {
		return fx.emit(navigateMsg{route: router.TransactionRoute(e.ID)})
	}
}

// StaticCatalog returns the catalog detached from any running program, for
// listing outside the TUI. Running its actions has no effect.
func StaticCatalog() []palette.Item {
	return Catalog(&effects{})
}
