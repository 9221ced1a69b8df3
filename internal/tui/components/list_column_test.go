package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mmcdole/rijks/internal/domain"
)

func artworks(n int) []domain.Artwork {
	items := make([]domain.Artwork, n)
	for i := range items {
		items[i] = domain.Artwork{ID: fmt.Sprintf("SK-A-%d", i), Title: fmt.Sprintf("Artwork %d", i)}
	}
	return items
}

func TestArtworkList_Navigation(t *testing.T) {
	l := NewArtworkList()
	l.SetSize(40, 8) // 3 visible rows
	l.SetItems(artworks(5))

	if l.PageSize() != 3 {
		t.Fatalf("PageSize = %d, want 3", l.PageSize())
	}

	l.MoveDown(10)
	if l.Cursor() != 4 || !l.AtEnd() {
		t.Fatalf("Cursor = %d, AtEnd = %v; want 4, true", l.Cursor(), l.AtEnd())
	}
	if l.offset != 2 {
		t.Fatalf("offset = %d, want 2", l.offset)
	}

	l.MoveUp(1)
	if l.AtEnd() {
		t.Fatalf("AtEnd = true after moving up")
	}
	l.Top()
	if l.Cursor() != 0 || l.offset != 0 {
		t.Fatalf("Top: cursor %d offset %d, want 0 0", l.Cursor(), l.offset)
	}
}

func TestArtworkList_SetItemsKeepsSelection(t *testing.T) {
	l := NewArtworkList()
	l.SetSize(40, 20)
	l.SetItems(artworks(3))
	l.MoveDown(1)

	// Appending a page keeps the cursor on the same artwork
	l.SetItems(artworks(6))
	if a, _ := l.Selected(); a.ID != "SK-A-1" {
		t.Fatalf("Selected = %q, want SK-A-1", a.ID)
	}

	// Clearing resets
	l.SetItems(nil)
	if _, ok := l.Selected(); ok || l.Cursor() != 0 || l.AtEnd() {
		t.Fatalf("empty list should have no selection")
	}
}

func TestArtworkList_ViewMarksFavorites(t *testing.T) {
	l := NewArtworkList()
	l.SetSize(60, 12)
	l.SetItems(artworks(2))
	l.SetFavoriteChecker(func(id string) bool { return id == "SK-A-1" })
	l.SetStatus(false, false, 2)

	view := l.View()
	if !strings.Contains(view, "♥") {
		t.Fatalf("view does not mark favorite:\n%s", view)
	}
	if !strings.Contains(view, "End of results") {
		t.Fatalf("view does not show end of results:\n%s", view)
	}
}

func TestHighlightMatches_PreservesText(t *testing.T) {
	out := highlightMatches("Night Watch", []int{0, 1, 2}, false)
	if !strings.Contains(out, "Nig") || !strings.Contains(out, "ht Watch") {
		t.Fatalf("highlightMatches lost text: %q", out)
	}
}

func TestAlert(t *testing.T) {
	a := NewAlert()
	if a.IsVisible() {
		t.Fatalf("new alert is visible")
	}
	a.Show("No internet connection.")
	a.SetSize(80, 24)
	if !a.IsVisible() || !strings.Contains(a.View(), "No internet") {
		t.Fatalf("alert not rendered")
	}
	a.Hide()
	if a.IsVisible() {
		t.Fatalf("alert visible after Hide")
	}
}
