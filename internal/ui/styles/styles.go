// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#696969"} // Hints, help text, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#57606A", Dark: "#999999"}
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#777777"}

	AccentColor        = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#54A0FF"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D0D7DE", Dark: "#696969"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8C959F", Dark: "#8C8C8C"}
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#C9C9C9"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF8787"}

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#FFFFFF"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Palette
	PaletteFrameStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(OverlayBorderColor).
				Padding(0, 1)

	PaletteHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextMutedColor)

	PaletteItemStyle        = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	PaletteActiveItemStyle  = lipgloss.NewStyle().Foreground(SelectionIndicatorColor).Bold(true)
	PaletteHoverItemStyle   = lipgloss.NewStyle().Foreground(TextPrimaryColor).Underline(true)
	PaletteDescriptionStyle = lipgloss.NewStyle().Foreground(TextDescriptionColor)
	PaletteHintStyle        = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)

	// App chrome
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
)

// ApplyTheme selects which half of the adaptive colors is used. Anything
// other than "light" renders the dark variants.
func ApplyTheme(theme string) {
	lipgloss.SetHasDarkBackground(theme != "light")
}
