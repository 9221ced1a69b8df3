package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/rijks/internal/domain"
	"github.com/mmcdole/rijks/internal/gallery"
	"github.com/mmcdole/rijks/internal/viewer"
)

// fetchTimeout bounds a single collection request issued from the UI
const fetchTimeout = 30 * time.Second

// Command factories for async operations

// SearchCmd runs a search for query
func SearchCmd(s *gallery.Session, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := s.Search(ctx, query)
		return SearchDoneMsg{Query: query, Err: err}
	}
}

// RefreshCmd resets pagination and searches query again
func RefreshCmd(s *gallery.Session, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := s.Refresh(ctx, query)
		return SearchDoneMsg{Query: query, Err: err}
	}
}

// LoadMoreCmd appends the next page for query
func LoadMoreCmd(s *gallery.Session, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := s.LoadMore(ctx, query)
		return PageLoadedMsg{Query: query, Err: err}
	}
}

// ToggleFavoriteCmd flips the favorite state of an artwork
func ToggleFavoriteCmd(favs domain.FavoritesCommands, a domain.Artwork) tea.Cmd {
	return func() tea.Msg {
		isFav, err := favs.Toggle(a.ID)
		return FavoriteToggledMsg{ID: a.ID, Title: a.Title, IsFavorite: isFav, Err: err}
	}
}

// OpenImageCmd opens the artwork's web image in the external viewer
func OpenImageCmd(v ImageOpener, a domain.Artwork) tea.Cmd {
	return func() tea.Msg {
		if !a.HasImage() {
			return ImageOpenedMsg{Title: a.Title, Err: viewer.ErrNoImage}
		}
		return ImageOpenedMsg{Title: a.Title, Err: v.Open(a.Image.URL)}
	}
}

// WaitForSearchCmd blocks until the debouncer emits a query
func WaitForSearchCmd(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return SearchRequestMsg{Query: <-ch}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
