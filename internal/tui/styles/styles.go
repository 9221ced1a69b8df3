package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	RijksRed   = lipgloss.Color("#C8102E")
	Gold       = lipgloss.Color("#D4A017")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Borders
var (
	ActiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gold)

	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Gold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	LabelStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Width(12)
)

// Favorite marker
const (
	FavoriteChar    = "♥"
	NotFavoriteChar = "♡"
)

var (
	FavoriteStyle = lipgloss.NewStyle().Foreground(RijksRed)
	FavoriteMark  = FavoriteStyle.Render(FavoriteChar)
)

// List item styles
var (
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gold).
			Padding(1, 2).
			Background(SlateDark)

	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(RijksRed).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Gold)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Gold)
)

// Search bar styles
var (
	SearchPromptStyle = lipgloss.NewStyle().
				Foreground(Gold).
				Bold(true)
)

// Match highlight styles for search results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Gold).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(Gold).
					Background(SlateLight).
					Bold(true)

	RowStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	RowSelectedStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)
)

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Pad pads a string to the given visible width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
