package palette

import (
	"context"
	"fmt"
	"time"
)

func contextBG() context.Context { return context.Background() }

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// invocations counts action calls per item ID.
type invocations map[string]int

func (inv invocations) action(id string) Action {
	return func() { inv[id]++ }
}

// testCatalog has two navigation items followed by five actions.
func testCatalog(inv invocations) []Item {
	mk := func(id, label, desc string, cat Category, kw ...string) Item {
		return Item{ID: id, Label: label, Description: desc, Category: cat, Keywords: kw, Action: inv.action(id)}
	}
	return []Item{
		mk("nav:dashboard", "Go to Dashboard", "Overview of balances", CategoryNavigation, "home"),
		mk("nav:transactions", "Go to Transactions", "Browse every transaction", CategoryNavigation, "ledger"),
		mk("action:add", "Add Transaction", "Record a new expense or income", CategoryActions, "new", "create"),
		mk("action:import", "Import Statement", "Load a bank CSV export", CategoryActions, "csv", "upload"),
		mk("action:theme", "Toggle Theme", "Switch between light and dark", CategoryActions, "dark mode"),
		mk("action:shortcuts", "Show Keyboard Shortcuts", "", CategoryActions, "help", "keys"),
		mk("action:join", "Join Shared Budget", "Accept an invite from a partner", CategoryActions, "household"),
	}
}

func testEntities() []Entity {
	return []Entity{
		{ID: "txn-001", Title: "Groceries", Merchant: "Fresh Market", Amount: "$54.20", Date: time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)},
		{ID: "txn-002", Title: "Gym joining fee", Merchant: "Iron Works", Amount: "$25.00"},
		{ID: "txn-003", Title: "", Merchant: "Metro", Amount: "$2.75"},
	}
}

func manyEntities(n int) []Entity {
	out := make([]Entity, n)
	for i := range out {
		out[i] = Entity{ID: fmt.Sprintf("txn-%03d", i), Title: fmt.Sprintf("Payment %d", i)}
	}
	return out
}

// openEngine returns an open engine over testCatalog and entities, revision 1.
func openEngine(inv invocations, clock Clock, entities []Entity) *Engine {
	reg := NewRegistry(RegistryConfig{
		Catalog: testCatalog(inv),
		Open: func(e Entity) Action {
			return inv.action(DynamicID(e.ID))
		},
	})
	e := New(Config{Registry: reg, Clock: clock})
	e.Open(contextBG(), EntityList{Revision: 1, Entities: entities})
	return e
}
