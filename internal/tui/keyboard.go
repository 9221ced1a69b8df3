package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	// Error alert is modal
	if m.Alert.IsVisible() {
		if key.Matches(msg, Keys.Enter, Keys.Escape) {
			m.Session.DismissError()
			m.sync()
		}
		return m, nil
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	if m.Omnibar.Focused() {
		return m.handleOmnibarKey(msg)
	}

	if m.ShowDetail {
		switch {
		case key.Matches(msg, Keys.Escape, Keys.Enter):
			m.ShowDetail = false
			m.Session.ClearSelection()
			m.sync()
			return m, nil
		case key.Matches(msg, Keys.Favorite):
			return m, m.toggleFavorite()
		case key.Matches(msg, Keys.OpenImage):
			return m, m.openImage()
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.List.SetFocused(false)
		return m, m.Omnibar.Focus()

	case key.Matches(msg, Keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, Keys.Favorite):
		return m, m.toggleFavorite()

	case key.Matches(msg, Keys.OpenImage):
		return m, m.openImage()

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		if m.ShowInspector {
			m.selectCursor()
		}
		return m, nil

	case key.Matches(msg, Keys.Enter):
		m.selectCursor()
		if !m.ShowInspector && m.Inspector.HasItem() {
			m.ShowDetail = true
		}
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Omnibar.Value() != "" {
			m.Omnibar.SetValue("")
			m.queryChanged()
		}
		return m, nil
	}

	if m.handleListMovement(msg) {
		if m.ShowInspector {
			m.selectCursor()
		}
		return m, m.loadMoreIfNeeded()
	}
	return m, nil
}

// handleOmnibarKey routes input while the search field has focus
func (m Model) handleOmnibarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		m.Omnibar.Blur()
		m.List.SetFocused(true)
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.Omnibar, cmd, changed = m.Omnibar.Update(msg)
	if changed {
		m.queryChanged()
	}
	return m, cmd
}

// handleListMovement applies cursor keys. Returns false if msg is not one.
func (m *Model) handleListMovement(msg tea.KeyMsg) bool {
	half := max(m.List.PageSize()/2, 1)
	switch {
	case key.Matches(msg, m.ListKeys.Up):
		m.List.MoveUp(1)
	case key.Matches(msg, m.ListKeys.Down):
		m.List.MoveDown(1)
	case key.Matches(msg, m.ListKeys.Home):
		m.List.Top()
	case key.Matches(msg, m.ListKeys.End):
		m.List.Bottom()
	case key.Matches(msg, m.ListKeys.HalfUp):
		m.List.MoveUp(half)
	case key.Matches(msg, m.ListKeys.HalfDown):
		m.List.MoveDown(half)
	case key.Matches(msg, m.ListKeys.PageUp):
		m.List.MoveUp(m.List.PageSize())
	case key.Matches(msg, m.ListKeys.PageDown):
		m.List.MoveDown(m.List.PageSize())
	default:
		return false
	}
	return true
}

// refresh re-runs the current query from page 1
func (m *Model) refresh() tea.Cmd {
	query := m.Omnibar.Value()
	if m.inFlight > 0 {
		m.Session.ResetPagination()
		m.pendingQuery = &query
		m.sync()
		return nil
	}
	m.inFlight++
	m.List.SetQuery(query)
	m.List.SetItems(nil)
	m.List.SetStatus(true, true, 0)
	return RefreshCmd(m.Session, query)
}

// openImage opens the image of the artwork under the cursor (or in detail)
func (m *Model) openImage() tea.Cmd {
	if m.Viewer == nil {
		return nil
	}
	if m.ShowDetail && m.snap.Selected != nil {
		return OpenImageCmd(m.Viewer, *m.snap.Selected)
	}
	a, ok := m.List.Selected()
	if !ok {
		return nil
	}
	return OpenImageCmd(m.Viewer, a)
}

// toggleFavorite flips the artwork under the cursor (or shown in detail)
func (m *Model) toggleFavorite() tea.Cmd {
	if m.ShowDetail && m.snap.Selected != nil {
		return ToggleFavoriteCmd(m.Favorites, *m.snap.Selected)
	}
	a, ok := m.List.Selected()
	if !ok {
		return nil
	}
	return ToggleFavoriteCmd(m.Favorites, a)
}
