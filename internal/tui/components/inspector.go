package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/rijks/internal/domain"
	"github.com/mmcdole/rijks/internal/tui/styles"
)

// Inspector displays the details of the selected artwork
type Inspector struct {
	item     *domain.Artwork
	favorite bool
	width    int
	height   int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetItem sets the artwork to display; nil clears it
func (i *Inspector) SetItem(item *domain.Artwork, favorite bool) {
	i.item = item
	i.favorite = favorite
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// HasItem returns true if there is an item to display
func (i Inspector) HasItem() bool {
	return i.item != nil
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder
	frameW, frameH := style.GetFrameSize()
	contentWidth := max(i.width-frameW-1, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate("Details", contentWidth))

	body := styles.DimStyle.Render("No artwork selected")
	if i.item != nil {
		body = renderArtwork(*i.item, i.favorite, contentWidth)
	}

	return style.
		Width(max(i.width-frameW, 1)).
		Height(max(i.height-frameH, 1)).
		Render(titleLine + "\n\n" + body)
}

func renderArtwork(a domain.Artwork, favorite bool, width int) string {
	var b strings.Builder

	title := lipgloss.NewStyle().Width(width).Render(styles.TitleStyle.Render(a.Title))
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(styles.Truncate(a.DisplayMaker(), width)))
	b.WriteString("\n\n")

	valueWidth := max(width-styles.LabelStyle.GetWidth(), 4)
	field := func(label, value string) {
		b.WriteString(styles.LabelStyle.Render(label))
		b.WriteString(styles.Truncate(value, valueWidth))
		b.WriteString("\n")
	}

	field("Object", a.ID)
	if a.HasImage() {
		field("Image", a.Image.Dimensions()+" "+a.Image.Orientation())
		field("URL", a.Image.URL)
	} else {
		field("Image", "none")
	}

	b.WriteString("\n")
	if favorite {
		b.WriteString(styles.FavoriteMark + " " + styles.FavoriteStyle.Render("Favorite"))
	} else {
		b.WriteString(styles.DimStyle.Render(styles.NotFavoriteChar + " Not a favorite"))
	}
	return b.String()
}
