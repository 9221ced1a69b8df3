package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/rijks/internal/tui/styles"
)

// Omnibar is the live collection search input shown above the list
type Omnibar struct {
	input textinput.Model
	width int
}

// NewOmnibar creates a new omnibar component
func NewOmnibar() Omnibar {
	ti := textinput.New()
	ti.Placeholder = "Search the collection..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/ "
	ti.PromptStyle = styles.SearchPromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Omnibar{input: ti}
}

// Focus gives the input keyboard focus
func (o *Omnibar) Focus() tea.Cmd {
	return o.input.Focus()
}

// Blur removes keyboard focus
func (o *Omnibar) Blur() {
	o.input.Blur()
}

// Focused returns true if the input has focus
func (o Omnibar) Focused() bool {
	return o.input.Focused()
}

// Value returns the current query text
func (o Omnibar) Value() string {
	return o.input.Value()
}

// SetValue replaces the query text
func (o *Omnibar) SetValue(s string) {
	o.input.SetValue(s)
}

// SetWidth updates the component width
func (o *Omnibar) SetWidth(width int) {
	o.width = width
	o.input.Width = max(width-lipgloss.Width(o.input.Prompt)-4, 10)
}

// Update routes key input to the text field. changed reports whether the
// query text differs from before the message.
func (o Omnibar) Update(msg tea.Msg) (Omnibar, tea.Cmd, bool) {
	before := o.input.Value()
	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return o, cmd, o.input.Value() != before
}

// View renders the component
func (o Omnibar) View() string {
	border := styles.InactiveBorder
	if o.input.Focused() {
		border = styles.ActiveBorder
	}
	w := o.width - 2
	if w < 12 {
		w = 12
	}
	return border.Width(w).Render(o.input.View())
}
