package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/rijks/internal/domain"
	"github.com/mmcdole/rijks/internal/search"
	"github.com/mmcdole/rijks/internal/tui/styles"
)

// Layout constants for the artwork list
const (
	BorderWidth  = 2
	BorderHeight = 2
	// title + "more" indicators above and below the rows
	listChromeLines = 3
)

// FavoriteChecker reports whether an artwork is a favorite
type FavoriteChecker func(id string) bool

// ArtworkList is the scrollable result list
type ArtworkList struct {
	items      []domain.Artwork
	cursor     int
	offset     int
	width      int
	height     int
	maxVisible int

	query      string // Highlighted in titles
	loading    bool
	hasMore    bool
	total      int
	spinner    string
	isFavorite FavoriteChecker
	focused    bool
}

// NewArtworkList creates an empty list
func NewArtworkList() ArtworkList {
	return ArtworkList{
		isFavorite: func(string) bool { return false },
		maxVisible: 1,
	}
}

// SetItems replaces the items. The cursor is kept on the same artwork when
// it is still present, otherwise clamped.
func (l *ArtworkList) SetItems(items []domain.Artwork) {
	var currentID string
	if a, ok := l.Selected(); ok {
		currentID = a.ID
	}
	l.items = items

	if currentID != "" {
		for i, a := range items {
			if a.ID == currentID {
				l.cursor = i
				l.clamp()
				return
			}
		}
	}
	if len(items) == 0 {
		l.cursor = 0
		l.offset = 0
		return
	}
	l.clamp()
}

// SetStatus updates the footer state
func (l *ArtworkList) SetStatus(loading, hasMore bool, total int) {
	l.loading = loading
	l.hasMore = hasMore
	l.total = total
}

// SetQuery sets the query used for title highlighting
func (l *ArtworkList) SetQuery(q string) { l.query = q }

// SetSpinner sets the current spinner frame text
func (l *ArtworkList) SetSpinner(frame string) { l.spinner = frame }

// SetFavoriteChecker sets the function used to mark favorites
func (l *ArtworkList) SetFavoriteChecker(fn FavoriteChecker) {
	if fn != nil {
		l.isFavorite = fn
	}
}

// SetFocused marks the list as the focused pane
func (l *ArtworkList) SetFocused(focused bool) { l.focused = focused }

// SetSize updates the component dimensions
func (l *ArtworkList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.maxVisible = max(height-BorderHeight-listChromeLines, 1)
	l.clamp()
}

// Len returns the number of items
func (l ArtworkList) Len() int { return len(l.items) }

// Cursor returns the cursor position
func (l ArtworkList) Cursor() int { return l.cursor }

// Selected returns the artwork under the cursor
func (l ArtworkList) Selected() (domain.Artwork, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return domain.Artwork{}, false
	}
	return l.items[l.cursor], true
}

// AtEnd returns true if the cursor is on the last item
func (l ArtworkList) AtEnd() bool {
	return len(l.items) > 0 && l.cursor == len(l.items)-1
}

// MoveUp moves the cursor up n rows
func (l *ArtworkList) MoveUp(n int) {
	l.cursor -= n
	l.clamp()
}

// MoveDown moves the cursor down n rows
func (l *ArtworkList) MoveDown(n int) {
	l.cursor += n
	l.clamp()
}

// Top moves the cursor to the first item
func (l *ArtworkList) Top() {
	l.cursor = 0
	l.clamp()
}

// Bottom moves the cursor to the last item
func (l *ArtworkList) Bottom() {
	l.cursor = len(l.items) - 1
	l.clamp()
}

// PageSize returns the number of visible rows
func (l ArtworkList) PageSize() int { return l.maxVisible }

func (l *ArtworkList) clamp() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the component
func (l ArtworkList) View() string {
	border := styles.InactiveBorder
	if l.focused {
		border = styles.ActiveBorder
	}
	return border.
		Width(max(l.width-BorderWidth, 10)).
		Height(max(l.height-BorderHeight, 1)).
		Render(l.renderContent())
}

func (l ArtworkList) renderContent() string {
	itemWidth := max(l.width-BorderWidth, 10)

	title := "Collection"
	if l.total > 0 {
		title = fmt.Sprintf("Collection (%d of %d)", len(l.items), l.total)
	}
	titleLine := styles.AccentStyle.Render(styles.Truncate(title, itemWidth))

	if len(l.items) == 0 {
		msg := styles.DimStyle.Render("No artworks")
		if l.loading {
			msg = styles.DimStyle.Render(l.spinner + " Loading...")
		}
		return titleLine + "\n \n" + msg
	}

	end := min(l.offset+l.maxVisible, len(l.items))
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(l.items[i], i == l.cursor, itemWidth))
	}

	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	footer := " "
	switch {
	case l.loading:
		footer = styles.DimStyle.Render(l.spinner + " Loading more...")
	case end < len(l.items):
		footer = styles.DimStyle.Render("↓ more")
	case !l.hasMore:
		footer = styles.DimStyle.Render("End of results")
	}

	return titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func (l ArtworkList) renderRow(a domain.Artwork, selected bool, width int) string {
	mark := " "
	if l.isFavorite(a.ID) {
		mark = styles.FavoriteMark
	}

	maker := styles.Truncate(a.DisplayMaker(), max(width/3, 8))
	titleWidth := max(width-lipgloss.Width(maker)-6, 4)
	title := styles.Truncate(a.Title, titleWidth)

	row := highlightMatches(title, search.Highlight(l.query, title), selected)
	pad := titleWidth - lipgloss.Width(title)
	if pad > 0 {
		row += rowStyle(selected).Render(strings.Repeat(" ", pad))
	}
	makerStyle := styles.DimStyle
	if selected {
		makerStyle = makerStyle.Background(styles.SlateLight)
	}
	return mark + " " + row + rowStyle(selected).Render("  ") + makerStyle.Render(maker)
}

func rowStyle(selected bool) lipgloss.Style {
	if selected {
		return styles.RowSelectedStyle
	}
	return styles.RowStyle
}

// highlightMatches renders text with matched rune positions highlighted
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	normal := rowStyle(selected)
	if len(matchedIndexes) == 0 {
		return normal.Render(text)
	}

	match := styles.MatchHighlightStyle
	if selected {
		match = styles.MatchHighlightSelectedStyle
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	// Batch consecutive runes with the same style
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); {
		isMatch := matchSet[i]
		start := i
		for i < len(runes) && matchSet[i] == isMatch {
			i++
		}
		chunk := string(runes[start:i])
		if isMatch {
			b.WriteString(match.Render(chunk))
		} else {
			b.WriteString(normal.Render(chunk))
		}
	}
	return b.String()
}
