package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderer_Plain(t *testing.T) {
	r, err := New(40, "notty")
	require.NoError(t, err)
	require.Equal(t, 40, r.Width())

	out, err := r.Render("# Shortcuts\n\nPress **ctrl+k** to open quick actions.")
	require.NoError(t, err)
	require.Contains(t, out, "Shortcuts")
	require.Contains(t, out, "ctrl+k")
}

func TestRenderer_Wraps(t *testing.T) {
	r, err := New(20, "notty")
	require.NoError(t, err)

	out, err := r.Render(strings.Repeat("word ", 20))
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		require.LessOrEqual(t, len(strings.TrimRight(line, " ")), 20)
	}
}

func TestNew_Themes(t *testing.T) {
	for _, theme := range []string{"dark", "light", ""} {
		_, err := New(40, theme)
		require.NoError(t, err, theme)
	}
}
