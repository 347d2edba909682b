// Package app contains the root application model.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/quickactions/internal/config"
	"github.com/zjrosen/quickactions/internal/keys"
	"github.com/zjrosen/quickactions/internal/ledger"
	"github.com/zjrosen/quickactions/internal/log"
	"github.com/zjrosen/quickactions/internal/palette"
	"github.com/zjrosen/quickactions/internal/pubsub"
	"github.com/zjrosen/quickactions/internal/router"
	"github.com/zjrosen/quickactions/internal/ui/commandpalette"
	"github.com/zjrosen/quickactions/internal/ui/help"
	"github.com/zjrosen/quickactions/internal/ui/styles"
	"github.com/zjrosen/quickactions/internal/ui/toaster"
)

// navigateMsg moves the router, optionally replacing the status line.
type navigateMsg struct {
	route  router.Route
	status string
}

// toggleThemeMsg flips between the light and dark theme.
type toggleThemeMsg struct{}

// addTransactionMsg records a blank transaction and opens it.
type addTransactionMsg struct{}

// Options configures a Model.
type Options struct {
	Config     config.Config
	ConfigPath string // where theme changes are saved; empty skips saving
	Repository ledger.Repository
	Changes    <-chan struct{} // database change notifications, optional
	Tracer     trace.Tracer
	Clock      palette.Clock
	HitTest    commandpalette.HitTest // overrides zone hit-testing in tests
	Debug      bool                   // show the latest log line in the status bar
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	repo       ledger.Repository
	clock      palette.Clock

	router  *router.Router
	engine  *palette.Engine
	palette commandpalette.Model
	help    help.Model
	toast   toaster.Model
	fx      *effects

	recent palette.EntityList
	detail *ledger.Transaction

	// Palette events drive the status bar.
	events        *pubsub.Broker[palette.Event]
	eventListener *pubsub.ContinuousListener[palette.Event]
	logListener   *log.LogListener
	changes       <-chan struct{}
	ctx           context.Context
	cancel        context.CancelFunc

	status  string
	lastLog string
	width   int
	height  int
}

// New creates the root model. Call Close when the program exits.
func New(opts Options) Model {
	cfg := opts.Config
	clock := opts.Clock
	if clock == nil {
		clock = palette.RealClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())

	fx := &effects{}
	events := pubsub.NewBroker[palette.Event]()
	registry := palette.NewRegistry(palette.RegistryConfig{
		Catalog:    Catalog(fx),
		Open:       openTransaction(fx),
		MaxDynamic: cfg.Palette.MaxRecent,
		CacheTTL:   cfg.Palette.CacheTTL,
	})
	if err := palette.ValidateCatalog(registry.Catalog()); err != nil {
		log.ErrorErr(log.CatPalette, "invalid catalog", err)
	}
	engine := palette.New(palette.Config{
		Registry:   registry,
		Clock:      clock,
		LockWindow: cfg.Palette.LockWindow,
		Tracer:     opts.Tracer,
		Events:     events,
	})

	m := Model{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		repo:       opts.Repository,
		clock:      clock,
		router:     router.New(router.Dashboard),
		engine:     engine,
		palette: commandpalette.New(commandpalette.Config{
			Engine:          engine,
			Placeholder:     cfg.Palette.Placeholder,
			MaxVisibleItems: cfg.Palette.MaxVisibleItems,
			HitTest:         opts.HitTest,
		}),
		help:          help.New(cfg.UI.Theme),
		toast:         toaster.New(cfg.UI.ToastDuration),
		fx:            fx,
		events:        events,
		eventListener: pubsub.NewContinuousListener(ctx, events),
		changes:       opts.Changes,
		ctx:           ctx,
		cancel:        cancel,
	}
	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}
	styles.ApplyTheme(cfg.UI.Theme)
	return m
}

// Close stops background listeners.
func (m Model) Close() {
	m.cancel()
	m.events.Close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.reload(),
		m.eventListener.Listen(),
		m.logListener.Listen(),
		waitForChange(m.ctx, m.changes),
	)
}

func (m Model) reload() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return loadRecent(m.repo, m.cfg.Palette.MaxRecent)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette = m.palette.SetSize(msg.Width, msg.Height)
		m.help = m.help.SetSize(msg.Width, m.pageHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.palette.IsOpen() {
			return m.updatePalette(msg)
		}
		return m, nil

	case commandpalette.ClosedMsg:
		if !msg.Executed {
			log.Debug(log.CatUI, "palette dismissed")
		}
		return m, nil

	case pubsub.Event[palette.Event]:
		if msg.Type == pubsub.ExecutedEvent {
			m.status = "Ran: " + msg.Payload.Label
		}
		return m, m.eventListener.Listen()

	case pubsub.Event[string]:
		m.lastLog = msg.Payload
		return m, m.logListener.Listen()

	case navigateMsg:
		return m.navigate(msg.route, msg.status)

	case toggleThemeMsg:
		return m.toggleTheme()

	case toaster.DismissMsg:
		m.toast = m.toast.Update(msg)
		return m, nil

	case addTransactionMsg:
		if m.repo == nil {
			return m, nil
		}
		return m, addTransaction(m.repo, m.clock.Now())

	case transactionAddedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatStore, "adding transaction", msg.err)
			return m.notify("Could not add transaction: "+msg.err.Error(), toaster.StyleError)
		}
		next, cmd := m.navigate(router.TransactionRoute(msg.tx.ID), "Added transaction")
		return next, tea.Batch(cmd, m.reload())

	case recentLoadedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatStore, "loading recent transactions", msg.err)
			return m.notify("Could not load recent transactions", toaster.StyleError)
		}
		m.recent = palette.EntityList{
			Revision: m.recent.Revision + 1,
			Entities: ToEntities(msg.txs),
		}
		log.Debug(log.CatStore, "recent transactions loaded", "count", len(msg.txs), "revision", m.recent.Revision)
		return m, nil

	case transactionLoadedMsg:
		if m.router.Current() != router.TransactionRoute(msg.id) {
			return m, nil
		}
		if msg.err != nil {
			if !errors.Is(msg.err, ledger.ErrTransactionNotFound) {
				log.ErrorErr(log.CatStore, "loading transaction", msg.err, "id", msg.id)
			}
			m.detail = nil
			return m.notify(fmt.Sprintf("Transaction %s not found", msg.id), toaster.StyleError)
		}
		tx := msg.tx
		m.detail = &tx
		return m, nil

	case dbChangedMsg:
		log.Debug(log.CatWatcher, "database changed, reloading recent transactions")
		cmds := []tea.Cmd{m.reload(), waitForChange(m.ctx, m.changes)}
		if id := m.router.Current().Param; m.router.Current().Page == router.PageTransaction && m.repo != nil {
			cmds = append(cmds, loadTransaction(m.repo, id))
		}
		return m, tea.Batch(cmds...)
	}

	if m.palette.IsOpen() {
		return m.updatePalette(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if key.Matches(msg, keys.App.Toggle) {
		if m.palette.IsOpen() {
			m.palette = m.palette.Close()
			return m, nil
		}
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Open(m.ctx, m.recent)
		return m, cmd
	}
	if m.palette.IsOpen() {
		return m.updatePalette(msg)
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.App.Help):
		if m.router.Current() == router.Help {
			m.router.Back()
			return m, nil
		}
		return m.navigate(router.Help, "")
	case key.Matches(msg, keys.App.Back):
		m.router.Back()
		return m.afterRouteChange()
	}
	return m, nil
}

// updatePalette forwards msg to the palette and runs whatever its actions
// queued.
func (m Model) updatePalette(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.palette, cmd = m.palette.Update(msg)
	return m, tea.Batch(cmd, m.fx.drain())
}

func (m Model) navigate(to router.Route, status string) (tea.Model, tea.Cmd) {
	m.router.Navigate(to)
	if status != "" {
		m.status = status
	}
	log.Info(log.CatUI, "navigate", "route", to)
	return m.afterRouteChange()
}

// afterRouteChange loads whatever the new page needs.
func (m Model) afterRouteChange() (tea.Model, tea.Cmd) {
	current := m.router.Current()
	if current.Page != router.PageTransaction {
		m.detail = nil
		return m, nil
	}
	if m.detail != nil && m.detail.ID == current.Param {
		return m, nil
	}
	m.detail = nil
	if m.repo == nil {
		return m, nil
	}
	return m, loadTransaction(m.repo, current.Param)
}

func (m Model) notify(message string, style toaster.Style) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(message, style)
	return m, cmd
}

func (m Model) toggleTheme() (Model, tea.Cmd) {
	next := config.ThemeLight
	if m.cfg.UI.Theme == config.ThemeLight {
		next = config.ThemeDark
	}
	m.cfg.UI.Theme = next
	styles.ApplyTheme(next)
	m.help = m.help.SetTheme(next)

	if m.configPath != "" {
		if err := config.SaveTheme(m.configPath, next); err != nil {
			log.ErrorErr(log.CatConfig, "saving theme", err, "path", m.configPath)
			return m.notify("Theme: "+next+" (not saved)", toaster.StyleError)
		}
	}
	return m.notify("Theme: "+next, toaster.StyleSuccess)
}

// Route returns the page being shown.
func (m Model) Route() router.Route {
	return m.router.Current()
}

// Status returns the status bar message.
func (m Model) Status() string {
	return m.status
}

// Toast returns the notification being shown, or "" when there is none.
func (m Model) Toast() string {
	return m.toast.Message()
}

// Theme returns the active theme.
func (m Model) Theme() string {
	return m.cfg.UI.Theme
}

// Recent returns the entity list the palette opens with.
func (m Model) Recent() palette.EntityList {
	return m.recent
}

func (m Model) pageHeight() int {
	if m.cfg.UI.ShowStatusBar {
		return max(m.height-1, 1)
	}
	return m.height
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.renderPage()
	if m.cfg.UI.ShowStatusBar {
		view += "\n" + m.renderStatusBar()
	}
	if m.width > 0 && m.height > 0 {
		view = m.toast.Overlay(view, m.width, m.height)
	}
	if m.palette.IsOpen() {
		view = m.palette.Overlay(view)
	}
	return zone.Scan(view)
}

// now returns the model clock's time, for page rendering.
func (m Model) now() time.Time {
	return m.clock.Now()
}
