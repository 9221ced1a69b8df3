package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/rijks/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.Alert.IsVisible() {
		return m.Alert.View()
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	var content string
	layout := m.calculateColumnLayout(m.Width)
	switch {
	case m.ShowDetail:
		content = m.Inspector.View()
	case layout.inspectorWidth > 0:
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.List.View(), m.Inspector.View())
	default:
		content = m.List.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.Omnibar.View(),
		content,
		m.renderFooter(),
	)
}

// renderFooter renders the status line or key hints
func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		style := styles.SuccessStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		return style.Render(styles.Truncate(m.StatusMsg, m.Width))
	}

	hints := []key.Binding{Keys.Search, Keys.Enter, Keys.Favorite, Keys.Refresh, Keys.ToggleInspector, Keys.Help, Keys.Quit}
	if m.Omnibar.Focused() {
		hints = []key.Binding{Keys.Escape}
	}

	parts := make([]string, 0, len(hints)+1)
	for _, b := range hints {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	if n := m.Favorites.Count(); n > 0 {
		parts = append(parts, styles.FavoriteMark+styles.DimStyle.Render(fmt.Sprintf(" %d", n)))
	}
	return strings.Join(parts, "  ")
}

// renderHelp renders the key binding overlay
func (m Model) renderHelp() string {
	bindings := []key.Binding{
		m.ListKeys.Up, m.ListKeys.Down, m.ListKeys.Home, m.ListKeys.End,
		m.ListKeys.HalfUp, m.ListKeys.HalfDown,
		Keys.Search, Keys.Enter, Keys.Escape, Keys.Favorite,
		Keys.OpenImage, Keys.Refresh, Keys.ToggleInspector, Keys.Quit,
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Keys"))
	b.WriteString("\n")
	for _, binding := range bindings {
		h := binding.Help()
		b.WriteString(styles.HelpKeyStyle.Width(10).Render(h.Key))
		b.WriteString(styles.HelpDescStyle.Render(h.Desc))
		b.WriteString("\n")
	}

	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(strings.TrimRight(b.String(), "\n")))
}
