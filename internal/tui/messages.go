package tui

// Message types for the TUI

// SearchRequestMsg carries a debounced query from the search input
type SearchRequestMsg struct {
	Query string
}

// SearchDoneMsg signals that a search (or refresh) finished
type SearchDoneMsg struct {
	Query string
	Err   error
}

// PageLoadedMsg signals that a load-more fetch finished
type PageLoadedMsg struct {
	Query string
	Err   error
}

// FavoriteToggledMsg reports the new favorite state of an artwork
type FavoriteToggledMsg struct {
	ID         string
	Title      string
	IsFavorite bool
	Err        error
}

// ImageOpenedMsg reports the result of opening an artwork image
type ImageOpenedMsg struct {
	Title string
	Err   error
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

