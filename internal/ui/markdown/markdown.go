// Package markdown renders markdown for the TUI.
package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// noMarginStyle removes the document margin glamour adds by default.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour for a fixed width and theme.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer wrapping at width. theme is "dark", "light" or
// "notty" (plain output, used in tests).
func New(width int, theme string) (*Renderer, error) {
	style := styles.DarkStyle
	switch theme {
	case "light":
		style = styles.LightStyle
	case "notty":
		style = styles.NoTTYStyle
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the wrap width.
func (r *Renderer) Width() int { return r.width }

// Render transforms markdown into terminal output.
func (r *Renderer) Render(md string) (string, error) {
	return r.renderer.Render(md)
}
