package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quickactions/internal/config"
	"github.com/zjrosen/quickactions/internal/ledger"
	"github.com/zjrosen/quickactions/internal/palette"
	"github.com/zjrosen/quickactions/internal/pubsub"
	"github.com/zjrosen/quickactions/internal/router"
	"github.com/zjrosen/quickactions/internal/testutil"
	"github.com/zjrosen/quickactions/internal/ui/styles"
	"github.com/zjrosen/quickactions/internal/ui/toaster"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type harness struct {
	repo       ledger.Repository
	clock      *testClock
	configPath string
}

func newTestApp(t *testing.T) (Model, *harness) {
	t.Helper()
	db := testutil.NewTestDB(t)
	testutil.NewBuilder(t, db.Transactions()).WithRecentTestData().Build()

	h := &harness{
		repo:       db.Transactions(),
		clock:      &testClock{now: testutil.BaseTime.Add(time.Hour)},
		configPath: filepath.Join(t.TempDir(), "config.yaml"),
	}
	require.NoError(t, config.WriteDefaultConfig(h.configPath))

	cfg := config.Defaults()
	cfg.UI.ToastDuration = 0
	m := New(Options{
		Config:     cfg,
		ConfigPath: h.configPath,
		Repository: h.repo,
		Clock:      h.clock,
		HitTest: func(msg tea.MouseMsg) (int, bool) {
			return msg.Y, msg.X >= 0
		},
	})
	t.Cleanup(func() {
		m.Close()
		styles.ApplyTheme(config.ThemeDark)
	})
	return m, h
}

// step applies msg and returns the concrete model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// run executes cmd and returns the messages it produced, flattening batches.
// Only use it on commands that do not block.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// settle applies msgs and every non-blocking follow-up they produce.
func settle(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for len(msgs) > 0 {
		msg := msgs[0]
		msgs = msgs[1:]
		var cmd tea.Cmd
		m, cmd = step(t, m, msg)
		switch msg.(type) {
		case pubsub.Event[palette.Event], tea.KeyMsg:
			// follow-ups block on listeners or tick
			continue
		}
		msgs = append(msgs, run(cmd)...)
	}
	return m
}

func loaded(t *testing.T, m Model, h *harness) Model {
	t.Helper()
	return settle(t, m, run(loadRecent(h.repo, config.Defaults().Palette.MaxRecent))...)
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestCatalog_SevenValidItems(t *testing.T) {
	items := Catalog(&effects{})

	require.Len(t, items, 7)
	require.NoError(t, palette.ValidateCatalog(items))

	var nav, actions int
	for _, item := range items {
		switch item.Category {
		case palette.CategoryNavigation:
			nav++
		case palette.CategoryActions:
			actions++
		}
		require.NotNil(t, item.Action, item.ID)
	}
	require.Equal(t, 2, nav)
	require.Equal(t, 5, actions)
}

func TestEffects_ActionsQueueMessages(t *testing.T) {
	fx := &effects{}
	items := Catalog(fx)
	require.Nil(t, fx.drain())

	items[0].Action()
	require.Equal(t, []tea.Msg{navigateMsg{route: router.Dashboard}}, run(fx.drain()))
	require.Nil(t, fx.drain(), "drained once")

	items[4].Action()
	openTransaction(fx)(palette.Entity{ID: "txn-9"})()
	require.ElementsMatch(t, []tea.Msg{
		toggleThemeMsg{},
		navigateMsg{route: router.TransactionRoute("txn-9")},
	}, run(fx.drain()))
}

func TestRecentLoaded_BumpsRevision(t *testing.T) {
	m, h := newTestApp(t)
	require.Zero(t, m.Recent().Revision)

	m = loaded(t, m, h)
	require.Equal(t, uint64(1), m.Recent().Revision)
	require.Len(t, m.Recent().Entities, 3)
	require.Equal(t, "txn-001", m.Recent().Entities[0].ID)
	require.Equal(t, "$54.20", m.Recent().Entities[0].Amount)
	require.Contains(t, m.View(), "Recent transactions: 3")

	m = loaded(t, m, h)
	require.Equal(t, uint64(2), m.Recent().Revision)
}

func TestPalette_JoinOpensTransaction(t *testing.T) {
	m, h := newTestApp(t)
	m = loaded(t, m, h)

	m, _ = step(t, m, keyMsg(tea.KeyCtrlK))
	require.True(t, m.palette.IsOpen())
	require.Contains(t, m.View(), "Quick Actions")

	m, _ = step(t, m, runes("join"))
	m, _ = step(t, m, keyMsg(tea.KeyDown))
	m, cmd := step(t, m, keyMsg(tea.KeyEnter))
	require.False(t, m.palette.IsOpen())

	m = settle(t, m, run(cmd)...)
	require.Equal(t, router.TransactionRoute("txn-002"), m.Route())
	require.NotNil(t, m.detail)

	view := m.View()
	require.Contains(t, view, "Gym joining fee")
	require.Contains(t, view, "Iron Works")
	require.Contains(t, view, "$25.00")

	// The executed event reaches the status bar through the broker.
	for {
		msg := m.eventListener.Listen()()
		ev, ok := msg.(pubsub.Event[palette.Event])
		require.True(t, ok)
		m, _ = step(t, m, ev)
		if ev.Type == pubsub.ExecutedEvent {
			break
		}
	}
	require.Equal(t, "Ran: Gym joining fee", m.Status())
	require.Contains(t, m.View(), "Ran: Gym joining fee")
}

func TestPalette_ToggleKeyClosesWithoutRunning(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = step(t, m, keyMsg(tea.KeyCtrlK))
	require.True(t, m.palette.IsOpen())
	m, cmd := step(t, m, keyMsg(tea.KeyCtrlK))
	require.Nil(t, cmd)
	require.False(t, m.palette.IsOpen())
	require.Equal(t, router.Dashboard, m.Route())
}

func TestPalette_LettersGoToSearch(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = step(t, m, keyMsg(tea.KeyCtrlK))
	m, _ = step(t, m, runes("q"))
	require.True(t, m.palette.IsOpen())
	require.Equal(t, "q", m.palette.Query())
}

func TestPalette_ClickRunsItem(t *testing.T) {
	m, _ := newTestApp(t)
	m = settle(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = step(t, m, keyMsg(tea.KeyCtrlK))
	m, cmd := step(t, m, tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})

	m = settle(t, m, run(cmd)...)
	require.False(t, m.palette.IsOpen())
	require.Equal(t, router.Transactions, m.Route())
}

func TestKeys_QuitWhenClosed(t *testing.T) {
	m, _ := newTestApp(t)

	_, cmd := step(t, m, runes("q"))
	require.Equal(t, []tea.Msg{tea.QuitMsg{}}, run(cmd))

	_, cmd = step(t, m, keyMsg(tea.KeyCtrlC))
	require.Equal(t, []tea.Msg{tea.QuitMsg{}}, run(cmd))
}

func TestKeys_HelpAndBack(t *testing.T) {
	m, _ := newTestApp(t)
	m = settle(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = step(t, m, runes("?"))
	require.Equal(t, router.Help, m.Route())
	require.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = step(t, m, runes("?"))
	require.Equal(t, router.Dashboard, m.Route())

	m = settle(t, m, navigateMsg{route: router.Transactions})
	m, _ = step(t, m, keyMsg(tea.KeyEsc))
	require.Equal(t, router.Dashboard, m.Route())
}

func TestToggleTheme_SavesConfig(t *testing.T) {
	m, h := newTestApp(t)
	require.Equal(t, config.ThemeDark, m.Theme())

	m = settle(t, m, toggleThemeMsg{})
	require.Equal(t, config.ThemeLight, m.Theme())
	require.Equal(t, "Theme: light", m.Toast())
	require.False(t, lipgloss.HasDarkBackground())

	v := viper.New()
	v.SetConfigFile(h.configPath)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, config.ThemeLight, v.GetString("ui.theme"))
	require.Equal(t, 5, v.GetInt("palette.max_recent"), "other settings kept")

	m = settle(t, m, toggleThemeMsg{})
	require.Equal(t, config.ThemeDark, m.Theme())
	require.True(t, lipgloss.HasDarkBackground())
}

func TestToggleTheme_ReportsSaveFailure(t *testing.T) {
	m, h := newTestApp(t)
	require.NoError(t, os.WriteFile(h.configPath, []byte("- not\n- a mapping\n"), 0o600))

	m = settle(t, m, toggleThemeMsg{})
	require.Equal(t, config.ThemeLight, m.Theme())
	require.Equal(t, "Theme: light (not saved)", m.Toast())
}

func TestAddTransaction_OpensNewTransaction(t *testing.T) {
	m, h := newTestApp(t)
	m = loaded(t, m, h)

	m = settle(t, m, addTransactionMsg{})
	require.Equal(t, router.PageTransaction, m.Route().Page)
	require.Equal(t, "Added transaction", m.Status())
	require.NotNil(t, m.detail)
	require.Equal(t, "New transaction", m.detail.Title)

	require.Equal(t, uint64(2), m.Recent().Revision)
	require.Len(t, m.Recent().Entities, 4)
	require.Equal(t, m.Route().Param, m.Recent().Entities[0].ID, "newest first")

	n, err := h.repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestTransactionLoaded_NotFound(t *testing.T) {
	m, _ := newTestApp(t)

	m = settle(t, m, navigateMsg{route: router.TransactionRoute("missing")})
	require.Nil(t, m.detail)
	require.Equal(t, "Transaction missing not found", m.Toast())
	require.Contains(t, m.View(), "Loading missing")
}

func TestTransactionLoaded_IgnoresStaleResult(t *testing.T) {
	m, _ := newTestApp(t)

	m, _ = step(t, m, transactionLoadedMsg{id: "txn-001", tx: ledger.Transaction{ID: "txn-001"}})
	require.Nil(t, m.detail, "not on that page")
}

func TestDBChanged_Reloads(t *testing.T) {
	changes := make(chan struct{}, 1)
	m, h := newTestApp(t)
	m.changes = changes

	changes <- struct{}{}
	msgs := run(waitForChange(m.ctx, m.changes))
	require.Equal(t, []tea.Msg{dbChangedMsg{}}, msgs)

	m, cmd := step(t, m, dbChangedMsg{})
	require.NotNil(t, cmd)
	m, _ = step(t, m, run(loadRecent(h.repo, 5))[0])
	require.Equal(t, uint64(1), m.Recent().Revision)
}

func TestWaitForChange(t *testing.T) {
	require.Nil(t, waitForChange(context.Background(), nil))

	closed := make(chan struct{})
	close(closed)
	require.Nil(t, waitForChange(context.Background(), closed)())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Nil(t, waitForChange(ctx, make(chan struct{}))())
}

func TestDateLabel(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	require.Equal(t, "undated", dateLabel(time.Time{}, now))
	require.Equal(t, "today", dateLabel(now.Add(-17*time.Hour), now))
	require.Equal(t, "yesterday", dateLabel(now.AddDate(0, 0, -1), now))
	require.Equal(t, "Feb 20, 2026", dateLabel(time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC), now))
}

func TestToEntities(t *testing.T) {
	at := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	got := ToEntities([]ledger.Transaction{
		{ID: "a", Title: "Rent", Merchant: "Landlord", AmountCents: -120000, Currency: "EUR", OccurredAt: at},
	})

	require.Equal(t, []palette.Entity{
		{ID: "a", Title: "Rent", Merchant: "Landlord", Amount: "-€1200.00", Date: at},
	}, got)
}

func TestToast_DrawnAndDismissed(t *testing.T) {
	m, _ := newTestApp(t)
	m = settle(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	m.toast = toaster.New(time.Millisecond)

	var cmd tea.Cmd
	m, cmd = m.notify("Theme: light", toaster.StyleSuccess)
	require.Contains(t, m.View(), "✓ Theme: light")

	m = settle(t, m, run(cmd)...)
	require.Empty(t, m.Toast())
	require.NotContains(t, m.View(), "Theme: light")
}
