// Package toaster shows short-lived notifications above the status bar.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quickactions/internal/ui/overlay"
	"github.com/zjrosen/quickactions/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows ✓ with a green border.
	StyleSuccess Style = iota
	// StyleError shows ✗ with a red border.
	StyleError
)

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq uint64
}

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	seq     uint64
	ttl     time.Duration
}

// New creates a toaster whose toasts disappear after ttl. A ttl of zero keeps
// each toast until it is replaced or hidden.
func New(ttl time.Duration) Model {
	return Model{ttl: ttl}
}

// Show replaces the current toast and returns the command that dismisses it.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.seq++
	if m.ttl <= 0 {
		return m, nil
	}
	seq := m.seq
	return m, tea.Tick(m.ttl, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.message = ""
	return m
}

// Update hides the toast when its own dismiss timer fires. Timers for toasts
// that were since replaced are ignored.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// Visible returns whether a toast is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// Message returns the text of the toast being shown.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.Visible() {
		return ""
	}
	style := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	if m.style == StyleError {
		return style.BorderForeground(styles.StatusErrorColor).Render("✗ " + m.message)
	}
	return style.BorderForeground(styles.StatusSuccessColor).Render("✓ " + m.message)
}

// Overlay draws the toast bottom-center on bg, one row above the bottom edge.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.Visible() {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
