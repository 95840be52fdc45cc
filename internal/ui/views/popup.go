package views

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopup renders a popup centered in the terminal
func (pr *PopupRenderer) RenderPopup(popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	// Keep a small margin around the modal
	if lipgloss.Width(styledPopup) > width-6 && width > 6 {
		styledPopup = popupStyle.Width(width - 6).Render(popupContent)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styledPopup)
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes color/style escape codes from a rendered string
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
