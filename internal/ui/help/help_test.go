package help

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSections_CoverEveryBinding(t *testing.T) {
	sections := Sections()
	require.Len(t, sections, 3)
	require.Equal(t, "General", sections[0].Title)
	require.Len(t, sections[0].Bindings, 4)
	require.Len(t, sections[1].Bindings, 2)
	require.Len(t, sections[2].Bindings, 3)
}

func TestDocument_ListsKeys(t *testing.T) {
	doc := Document()

	require.Contains(t, doc, "# Keyboard Shortcuts")
	require.Contains(t, doc, "## Palette navigation")
	require.Contains(t, doc, "| `ctrl+k` | quick actions |")
	require.Contains(t, doc, "| `ctrl+u` | clear query |")
	require.Contains(t, doc, "| `enter` | run |")
}

func TestView_BeforeSize(t *testing.T) {
	require.Contains(t, New("notty").View(), "Loading help")
}

func TestView_RendersMarkdown(t *testing.T) {
	m := New("notty").SetSize(80, 40)
	view := m.View()

	require.Contains(t, view, "Keyboard Shortcuts")
	require.Contains(t, view, "ctrl+k")
	require.Contains(t, view, "quick actions")
	require.Contains(t, view, "esc back")
}

func TestSetSize_KeepsRenderWhenWidthUnchanged(t *testing.T) {
	m := New("notty").SetSize(80, 40)
	rendered := m.rendered

	m2 := m.SetSize(80, 10)
	require.Equal(t, rendered, m2.rendered)
	require.Equal(t, 10, m2.height)
	require.Equal(t, 40, m.height, "original unchanged")
}

func TestSetTheme(t *testing.T) {
	m := New("notty")
	require.Equal(t, m, m.SetTheme("notty"))

	m = m.SetTheme("dark")
	require.Equal(t, "dark", m.theme)
	require.Empty(t, m.rendered, "nothing rendered before the first size")
}
