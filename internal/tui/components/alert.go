package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/rijks/internal/tui/styles"
)

// Alert is a dismissable error modal
type Alert struct {
	message string
	width   int
	height  int
}

// NewAlert creates a hidden alert
func NewAlert() Alert {
	return Alert{}
}

// Show displays message; an empty message hides the alert
func (a *Alert) Show(message string) {
	a.message = message
}

// Hide hides the alert
func (a *Alert) Hide() {
	a.message = ""
}

// IsVisible returns true if the alert is shown
func (a Alert) IsVisible() bool {
	return a.message != ""
}

// Message returns the shown message
func (a Alert) Message() string {
	return a.message
}

// SetSize updates the area the alert is centered in
func (a *Alert) SetSize(width, height int) {
	a.width = width
	a.height = height
}

// View renders the alert centered in its area
func (a Alert) View() string {
	modalWidth := min(max(a.width/2, 30), 60)

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Error"),
		lipgloss.NewStyle().Width(modalWidth).Foreground(styles.White).Render(a.message),
		"",
		styles.HelpKeyStyle.Render("enter/esc")+" "+styles.HelpDescStyle.Render("dismiss"),
	)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		styles.AlertStyle.Render(content),
	)
}
