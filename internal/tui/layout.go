package tui

// Layout proportions
const (
	ListColumnPercent = 55 // List share when the inspector is visible
	MinColumnWidth    = 20

	OmnibarHeight = 3 // bordered single-line input
	FooterHeight  = 1
	ChromeHeight  = OmnibarHeight + FooterHeight
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	listWidth      int
	inspectorWidth int // 0 if not shown
}

// calculateColumnLayout computes column widths based on inspector visibility
func (m Model) calculateColumnLayout(availableWidth int) columnLayout {
	if !m.ShowInspector {
		return columnLayout{listWidth: availableWidth}
	}

	listWidth := max(availableWidth*ListColumnPercent/100, MinColumnWidth)
	inspectorWidth := availableWidth - listWidth
	if inspectorWidth < MinColumnWidth {
		// Too narrow to split
		return columnLayout{listWidth: availableWidth}
	}
	return columnLayout{listWidth: listWidth, inspectorWidth: inspectorWidth}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(m.Height-ChromeHeight, 3)
	layout := m.calculateColumnLayout(m.Width)

	m.Omnibar.SetWidth(m.Width)
	m.List.SetSize(layout.listWidth, contentHeight)
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	} else {
		m.Inspector.SetSize(m.Width, contentHeight)
	}
	m.Alert.SetSize(m.Width, m.Height)
}
