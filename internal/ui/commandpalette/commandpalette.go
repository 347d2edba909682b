// Package commandpalette renders a palette.Engine as a searchable overlay
// and translates terminal input into engine events.
package commandpalette

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/quickactions/internal/keys"
	"github.com/zjrosen/quickactions/internal/log"
	"github.com/zjrosen/quickactions/internal/palette"
	"github.com/zjrosen/quickactions/internal/ui/overlay"
	"github.com/zjrosen/quickactions/internal/ui/styles"
)

const (
	defaultWidth      = 64
	defaultMaxVisible = 10
	minVisible        = 3

	// border (2) + title and divider (2) + search and divider (2) + more (1) + up to 3 headers
	chromeLines = 10
)

// HitTest maps a mouse event to the global index of the row under it.
type HitTest func(msg tea.MouseMsg) (int, bool)

// Config defines command palette configuration.
type Config struct {
	Engine          *palette.Engine
	Title           string  // default "Quick Actions"
	Placeholder     string  // search placeholder
	Width           int     // box width (default 64)
	MaxVisibleItems int     // rows shown before scrolling (default 10)
	HitTest         HitTest // nil uses the zones marked during View
}

// ClosedMsg is sent when the palette closes. Item is set when an item ran.
type ClosedMsg struct {
	Executed bool
	Item     palette.Item
}

// lockExpiredMsg re-renders once the keyboard lock ends so a row the pointer
// rested on during the lock picks up hover styling.
type lockExpiredMsg struct{}

// Model holds the palette's presentation state. Selection, filtering and
// execution live in the engine.
type Model struct {
	config    Config
	engine    *palette.Engine
	ctx       context.Context
	textInput textinput.Model
	zones     string

	offset  int // first visible global index
	pointer int // row under the mouse, -1 for none

	viewportWidth  int
	viewportHeight int
}

// New creates a closed palette.
func New(cfg Config) Model {
	if cfg.Title == "" {
		cfg.Title = "Quick Actions"
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.MaxVisibleItems <= 0 {
		cfg.MaxVisibleItems = defaultMaxVisible
	}

	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	if ti.Placeholder == "" {
		ti.Placeholder = "Type a command or search..."
	}
	ti.Prompt = ""
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor)

	return Model{
		config:    cfg,
		engine:    cfg.Engine,
		ctx:       context.Background(),
		textInput: ti,
		zones:     zone.NewPrefix(),
		pointer:   -1,
	}
}

// Open starts a session over list with an empty query.
func (m Model) Open(ctx context.Context, list palette.EntityList) (Model, tea.Cmd) {
	if ctx == nil {
		ctx = context.Background()
	}
	m.ctx = ctx
	m.offset = 0
	m.pointer = -1
	m.textInput.SetValue("")
	m.engine.Open(ctx, list)
	return m, m.textInput.Focus()
}

// Close ends the session without running anything.
func (m Model) Close() Model {
	m.engine.Close()
	m.textInput.Blur()
	m.pointer = -1
	return m
}

// IsOpen reports whether the palette is showing.
func (m Model) IsOpen() bool {
	return m.engine.IsOpen()
}

// Init returns the initial command (starts cursor blink).
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case lockExpiredMsg:
		return m, nil
	}
	if !m.engine.IsOpen() {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Palette.Up):
		return m.apply(m.engine.HandleKey(m.ctx, palette.KeyArrowUp), true)

	case key.Matches(msg, keys.Palette.Down):
		return m.apply(m.engine.HandleKey(m.ctx, palette.KeyArrowDown), true)

	case key.Matches(msg, keys.Palette.Enter):
		return m.apply(m.engine.HandleKey(m.ctx, palette.KeyEnter), false)

	case key.Matches(msg, keys.Palette.Escape):
		return m.apply(m.engine.HandleKey(m.ctx, palette.KeyEscape), false)

	case key.Matches(msg, keys.Palette.Clear):
		m.textInput.SetValue("")
		m = m.syncQuery()
		return m, nil

	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		m = m.syncQuery()
		return m, cmd
	}
}

// syncQuery pushes the search field into the engine. A new query resets the
// selection, so the window goes back to the top.
func (m Model) syncQuery() Model {
	query := m.textInput.Value()
	if query == m.engine.Query() {
		return m
	}
	m.engine.SetQuery(query)
	m.offset = 0
	m.pointer = -1
	return m
}

// apply turns an engine outcome into view updates and commands.
func (m Model) apply(out palette.Outcome, arrow bool) (Model, tea.Cmd) {
	if out.Closed {
		m.textInput.Blur()
		m.pointer = -1
		closed := ClosedMsg{Executed: out.Executed, Item: out.Item}
		return m, func() tea.Msg { return closed }
	}
	if out.Scrolled {
		m.offset = palette.ScrollNearest(out.Scroll.Index, m.offset, m.maxVisibleItems(), m.engine.View().Len())
		if !m.engine.CompleteScroll(out.Scroll.Seq) {
			log.Debug(log.CatUI, "stale scroll request", "seq", out.Scroll.Seq)
		}
	}
	if arrow {
		if d := m.engine.LockRemaining(); d > 0 {
			return m, tea.Tick(d, func(time.Time) tea.Msg { return lockExpiredMsg{} })
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		return m.scrollBy(-1), nil

	case msg.Button == tea.MouseButtonWheelDown:
		return m.scrollBy(1), nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		i, ok := m.hitTest(msg)
		if !ok {
			return m, nil
		}
		return m.apply(m.engine.Click(m.ctx, i), false)

	case msg.Action == tea.MouseActionMotion:
		i, ok := m.hitTest(msg)
		switch {
		case ok && i != m.pointer:
			if m.pointer >= 0 {
				m.engine.PointerLeave(m.pointer)
			}
			m.engine.PointerEnter(i)
			m.pointer = i
		case !ok && m.pointer >= 0:
			m.engine.PointerLeave(m.pointer)
			m.pointer = -1
		}
	}
	return m, nil
}

// scrollBy moves the window by delta rows. A different row now sits under
// the mouse, so the next motion event enters it afresh.
func (m Model) scrollBy(delta int) Model {
	maxOffset := max(0, m.engine.View().Len()-m.maxVisibleItems())
	next := min(max(m.offset+delta, 0), maxOffset)
	if next == m.offset {
		return m
	}
	m.offset = next
	if m.pointer >= 0 {
		m.engine.PointerLeave(m.pointer)
		m.pointer = -1
	}
	return m
}

// hitTest resolves a mouse event against the current window.
func (m Model) hitTest(msg tea.MouseMsg) (int, bool) {
	if m.config.HitTest != nil {
		return m.config.HitTest(msg)
	}
	return m.zoneHit(msg)
}

// zoneHit finds the visible row whose zone contains the event.
func (m Model) zoneHit(msg tea.MouseMsg) (int, bool) {
	start, end := m.window()
	for i := start; i < end; i++ {
		if z := zone.Get(m.zoneID(i)); z != nil && z.InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}

func (m Model) zoneID(i int) string {
	return fmt.Sprintf("%srow-%d", m.zones, i)
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// Offset returns the first visible global index.
func (m Model) Offset() int {
	return m.offset
}

// Query returns the search text.
func (m Model) Query() string {
	return m.textInput.Value()
}

// maxVisibleItems returns the configured row count, shrunk only when the
// viewport is too short.
func (m Model) maxVisibleItems() int {
	target := m.config.MaxVisibleItems
	if m.viewportHeight > 0 {
		if fit := max(m.viewportHeight-chromeLines, minVisible); fit < target {
			return fit
		}
	}
	return target
}

// window returns the visible global index range [start, end).
func (m Model) window() (int, int) {
	total := m.engine.View().Len()
	start := min(m.offset, max(0, total-m.maxVisibleItems()))
	return start, min(start+m.maxVisibleItems(), total)
}

func (m Model) contentWidth() int {
	w := m.config.Width
	if m.viewportWidth > 0 && m.viewportWidth-2 < w {
		w = max(m.viewportWidth-2, 20)
	}
	return w
}

// View renders the palette box, or nothing while closed.
func (m Model) View() string {
	if !m.engine.IsOpen() {
		return ""
	}
	width := m.contentWidth()
	inner := width - 2 // frame padding

	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", inner))

	var content strings.Builder

	title := styles.TitleStyle.Render(m.config.Title)
	hints := styles.PaletteHintStyle.Render("↑/↓ • Enter • Esc")
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(hints), 1)
	content.WriteString(title + strings.Repeat(" ", gap) + hints)
	content.WriteString("\n" + divider + "\n")

	m.textInput.Width = inner - 4
	searchIcon := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("> ")
	content.WriteString(searchIcon + m.textInput.View())
	content.WriteString("\n" + divider)

	view := m.engine.View()
	if view.Empty() {
		content.WriteString("\n")
		content.WriteString(styles.PaletteHintStyle.Render("No matching commands"))
	} else {
		content.WriteString(m.renderRows(view, inner))
	}

	return styles.PaletteFrameStyle.Width(width).Render(content.String())
}

// renderRows writes the visible window. A bucket header is repeated at the top
// of the window so the first row never appears without its category.
func (m Model) renderRows(view palette.Grouped, width int) string {
	start, end := m.window()
	var b strings.Builder
	for _, bucket := range view.Buckets() {
		header := false
		for _, entry := range bucket.Entries {
			if entry.Index < start || entry.Index >= end {
				continue
			}
			if !header {
				b.WriteString("\n")
				b.WriteString(styles.PaletteHeaderStyle.Render(bucket.Category.Title()))
				header = true
			}
			b.WriteString("\n")
			b.WriteString(zone.Mark(m.zoneID(entry.Index), m.renderRow(entry, width)))
		}
	}
	if end < view.Len() {
		more := styles.PaletteHintStyle.Render("↓ more")
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", max((width-lipgloss.Width(more))/2, 0)) + more)
	}
	return b.String()
}

func (m Model) renderRow(entry palette.Entry, width int) string {
	active := m.engine.IsActive(entry.Index)

	indicator := "  "
	labelStyle := styles.PaletteItemStyle
	switch {
	case active:
		indicator = styles.SelectionIndicatorStyle.Render(">") + " "
		labelStyle = styles.PaletteActiveItemStyle
	case m.engine.IsHoverOnly(entry.Index):
		labelStyle = styles.PaletteHoverItemStyle
	}

	avail := width - 2
	label := truncateLabel(entry.Item.Label, avail)
	row := indicator + labelStyle.Render(label)

	if descWidth := avail - displayWidth(label) - 2; entry.Item.Description != "" && descWidth >= 8 {
		desc := truncateDescription(entry.Item.Description, descWidth)
		row += "  " + styles.PaletteDescriptionStyle.Render(desc)
	}
	return row
}

// Overlay renders the palette near the top of background.
func (m Model) Overlay(background string) string {
	box := m.View()
	if box == "" {
		return background
	}
	if background == "" {
		return lipgloss.Place(
			m.viewportWidth, m.viewportHeight,
			lipgloss.Center, lipgloss.Top,
			box,
		)
	}
	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Top,
		PadY:     2,
	}, box, background)
}
