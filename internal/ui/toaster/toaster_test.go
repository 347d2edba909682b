package toaster

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestNew(t *testing.T) {
	m := New(time.Second)

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New(time.Second).Show("Theme: light", StyleSuccess)

	assert.True(t, m.Visible())
	assert.Equal(t, "Theme: light", m.Message())
	assert.Contains(t, m.View(), "✓ Theme: light")
	assert.Contains(t, m.View(), "╭")
	assert.NotNil(t, cmd)
}

func TestShow_ErrorStyle(t *testing.T) {
	m, _ := New(time.Second).Show("Transaction txn-9 not found", StyleError)

	assert.Contains(t, m.View(), "✗ Transaction txn-9 not found")
}

func TestShow_ZeroTTLHasNoTimer(t *testing.T) {
	m, cmd := New(0).Show("sticky", StyleSuccess)

	assert.True(t, m.Visible())
	assert.Nil(t, cmd)
}

func TestHide(t *testing.T) {
	m, _ := New(0).Show("Hello", StyleSuccess)
	m = m.Hide()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestDismiss_FiresForCurrentToast(t *testing.T) {
	m, cmd := New(time.Millisecond).Show("Hello", StyleSuccess)
	require.NotNil(t, cmd)

	m = m.Update(cmd())

	assert.False(t, m.Visible())
}

func TestDismiss_IgnoresReplacedToast(t *testing.T) {
	m, first := New(time.Millisecond).Show("First", StyleSuccess)
	m, _ = m.Show("Second", StyleError)

	m = m.Update(first())

	assert.True(t, m.Visible())
	assert.Equal(t, "Second", m.Message())
}

func TestUpdate_IgnoresOtherMessages(t *testing.T) {
	m, _ := New(0).Show("Hello", StyleSuccess)

	m = m.Update("unrelated")

	assert.True(t, m.Visible())
}

func TestShow_DoesNotMutateReceiver(t *testing.T) {
	m1 := New(0)
	m2, _ := m1.Show("Hello", StyleSuccess)

	assert.False(t, m1.Visible())
	assert.True(t, m2.Visible())
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	bg := "Background\nContent"

	assert.Equal(t, bg, New(0).Overlay(bg, 20, 10))
}

func TestOverlay_PlacesAboveBottomEdge(t *testing.T) {
	m, _ := New(0).Show("Toast", StyleSuccess)
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 20)+"\n", 10), "\n")

	lines := strings.Split(m.Overlay(bg, 20, 10), "\n")

	require.Len(t, lines, 10)
	assert.Contains(t, lines[7], "Toast", "three-row box ends one row above the bottom")
	assert.Equal(t, strings.Repeat(".", 20), lines[9])
}
