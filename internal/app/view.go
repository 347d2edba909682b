package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quickactions/internal/keys"
	"github.com/zjrosen/quickactions/internal/palette"
	"github.com/zjrosen/quickactions/internal/router"
	"github.com/zjrosen/quickactions/internal/ui/styles"
)

var (
	pageStyle  = lipgloss.NewStyle().Padding(1, 2)
	labelStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Width(10)
)

func (m Model) renderPage() string {
	var body string
	switch m.router.Current().Page {
	case router.PageDashboard:
		body = m.renderDashboard()
	case router.PageTransactions:
		body = m.renderTransactions()
	case router.PageTransaction:
		body = m.renderTransaction()
	case router.PageBudgets:
		body = styles.TitleStyle.Render("Budgets") + "\n\n" +
			styles.PaletteHintStyle.Render("No shared budgets yet.")
	case router.PageSettings:
		body = m.renderSettings()
	case router.PageHelp:
		return lipgloss.NewStyle().Height(m.pageHeight()).Render(m.help.View())
	}
	return pageStyle.Height(m.pageHeight()).Render(body)
}

func (m Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Dashboard"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Recent transactions: %d\n", len(m.recent.Entities))
	for _, e := range m.recent.Entities {
		b.WriteString("\n")
		b.WriteString(m.renderEntityLine(e))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.PaletteHintStyle.Render("Press ctrl+k for quick actions."))
	return b.String()
}

func (m Model) renderTransactions() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Transactions"))
	b.WriteString("\n")
	if len(m.recent.Entities) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.PaletteHintStyle.Render("Nothing recorded yet."))
		return b.String()
	}
	for _, e := range m.recent.Entities {
		b.WriteString("\n")
		b.WriteString(m.renderEntityLine(e))
	}
	return b.String()
}

func (m Model) renderEntityLine(e palette.Entity) string {
	title := e.Title
	if title == "" {
		title = "Untitled"
	}
	parts := []string{title}
	if e.Merchant != "" {
		parts = append(parts, e.Merchant)
	}
	line := fmt.Sprintf("%-10s  %s", e.Amount, strings.Join(parts, " · "))
	return line + "  " + styles.PaletteDescriptionStyle.Render(dateLabel(e.Date, m.now()))
}

func (m Model) renderTransaction() string {
	id := m.router.Current().Param
	if m.detail == nil || m.detail.ID != id {
		return styles.TitleStyle.Render("Transaction") + "\n\n" +
			styles.PaletteHintStyle.Render("Loading "+id+"...")
	}
	tx := m.detail
	title := tx.Title
	if title == "" {
		title = "Untitled transaction"
	}
	rows := []struct{ k, v string }{
		{"Amount", tx.Amount()},
		{"Merchant", valueOr(tx.Merchant, "-")},
		{"Date", dateLabel(tx.OccurredAt, m.now())},
		{"ID", tx.ID},
	}
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(r.k) + r.v)
	}
	return b.String()
}

func (m Model) renderSettings() string {
	dbPath, err := m.cfg.DatabasePath()
	if err != nil {
		dbPath = m.cfg.Database.Path
	}
	rows := []struct{ k, v string }{
		{"Theme", m.cfg.UI.Theme},
		{"Database", dbPath},
		{"Lock", m.cfg.Palette.LockWindow.String()},
		{"Recent", fmt.Sprintf("%d items", m.cfg.Palette.MaxRecent)},
	}
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Settings"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(r.k) + r.v)
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	left := m.router.Current().String()
	if m.status != "" {
		left += " • " + m.status
	}
	if m.lastLog != "" {
		left += " • " + strings.TrimSpace(m.lastLog)
	}

	help := keys.App.ShortHelp()
	hints := make([]string, 0, len(help))
	for _, b := range help {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	right := strings.Join(hints, " • ")

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return styles.StatusBarStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// dateLabel renders t relative to now's calendar day.
func dateLabel(t, now time.Time) string {
	if t.IsZero() {
		return "undated"
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	day := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	switch today.Sub(day) {
	case 0:
		return "today"
	case 24 * time.Hour:
		return "yesterday"
	}
	return t.Format("Jan 2, 2006")
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
