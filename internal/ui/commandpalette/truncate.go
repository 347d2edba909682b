package commandpalette

import (
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// displayWidth returns the terminal cell width of s.
func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// truncateLabel shortens s to width cells without splitting grapheme clusters.
func truncateLabel(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if displayWidth(s) <= width {
		return s
	}
	limit := width - runewidth.StringWidth(ellipsis)
	var (
		out   []byte
		used  int
		state = -1
		rest  = s
	)
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		w := runewidth.StringWidth(cluster)
		if used+w > limit {
			break
		}
		out = append(out, cluster...)
		used += w
	}
	return string(out) + ellipsis
}

// truncateDescription shortens an already styled or plain description.
func truncateDescription(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), ellipsis) //nolint:gosec // width is positive
}
