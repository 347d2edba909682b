// Package overlay draws a floating block over an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where the foreground is anchored.
type Position int

const (
	Center Position = iota
	Top             // horizontally centered, PadY rows from the top
	Bottom          // horizontally centered, PadY rows from the bottom
)

// Config describes the viewport the overlay is drawn into.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int
}

// Origin returns the top-left cell for a w×h foreground, clamped to the viewport.
func Origin(cfg Config, w, h int) (x, y int) {
	x = (cfg.Width - w) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - h - cfg.PadY
	default:
		y = (cfg.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}

// Place splices fg into bg. Styling on both sides survives because cuts are
// made with ANSI-aware truncation.
func Place(cfg Config, fg, bg string) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < cfg.Height {
		rows = append(rows, strings.Repeat(" ", cfg.Width))
	}

	fgRows := strings.Split(fg, "\n")
	x, y := Origin(cfg, lipgloss.Width(fg), len(fgRows))
	for i, fgRow := range fgRows {
		if y+i >= len(rows) {
			break
		}
		rows[y+i] = splice(rows[y+i], fgRow, x)
	}
	return strings.Join(rows, "\n")
}

// splice overwrites row starting at column x with insert.
func splice(row, insert string, x int) string {
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(insert)
	var right string
	if end < ansi.StringWidth(row) {
		right = ansi.TruncateLeft(row, end, "")
	}
	return left + insert + right
}
