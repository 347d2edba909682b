// Package help renders the keyboard shortcuts page.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quickactions/internal/keys"
	"github.com/zjrosen/quickactions/internal/log"
	"github.com/zjrosen/quickactions/internal/ui/markdown"
	"github.com/zjrosen/quickactions/internal/ui/styles"
)

// Section is a titled group of bindings.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Sections returns the bindings shown on the help page, app keys first.
func Sections() []Section {
	app := keys.App.FullHelp()
	pal := keys.Palette.FullHelp()
	return []Section{
		{Title: "General", Bindings: append(append([]key.Binding{}, app[0]...), app[1]...)},
		{Title: "Palette navigation", Bindings: pal[0]},
		{Title: "Palette actions", Bindings: pal[1]},
	}
}

// Document builds the markdown source of the help page.
func Document() string {
	var b strings.Builder
	b.WriteString("# Keyboard Shortcuts\n\n")
	b.WriteString("Press **ctrl+k** anywhere to open quick actions. ")
	b.WriteString("Type to filter, then pick a row with the arrows or the mouse.\n")
	for _, s := range Sections() {
		fmt.Fprintf(&b, "\n## %s\n\n", s.Title)
		b.WriteString("| Key | Action |\n|---|---|\n")
		for _, binding := range s.Bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	return b.String()
}

// Model holds the help page state.
type Model struct {
	theme    string
	width    int
	height   int
	rendered string
}

// New creates a help page rendered with theme ("dark", "light" or "notty").
func New(theme string) Model {
	return Model{theme: theme}
}

// SetSize updates dimensions and re-renders the page for the new width.
func (m Model) SetSize(width, height int) Model {
	if width == m.width && m.rendered != "" {
		m.height = height
		return m
	}
	m.width = width
	m.height = height
	m.rendered = m.render()
	return m
}

// SetTheme switches the markdown style.
func (m Model) SetTheme(theme string) Model {
	if theme == m.theme {
		return m
	}
	m.theme = theme
	if m.width > 0 {
		m.rendered = m.render()
	}
	return m
}

func (m Model) render() string {
	width := max(m.width-4, 20)
	r, err := markdown.New(width, m.theme)
	if err == nil {
		var out string
		if out, err = r.Render(Document()); err == nil {
			return strings.Trim(out, "\n")
		}
	}
	log.ErrorErr(log.CatUI, "rendering help", err)
	return Document()
}

// View renders the page, or a placeholder before the first SetSize.
func (m Model) View() string {
	if m.rendered == "" {
		return styles.PaletteHintStyle.Render("Loading help...")
	}
	footer := styles.StatusBarStyle.Render("esc back")
	body := lipgloss.NewStyle().MaxHeight(max(m.height-1, 1)).Render(m.rendered)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}
