// Package gallery owns the browsing state of a collection search: the
// accumulated result list, the pagination cursor, loading and error state,
// and the selected artwork.
//
// A Session allows one fetch at a time. While a fetch is outstanding, Search
// and LoadMore return immediately without doing anything; they are not
// queued. Completed fetches are applied in call order because of this.
package gallery

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmcdole/rijks/internal/domain"
)

// Phase is the coarse state of a session
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseError
)

// String returns a human-readable representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the session state for presentation
type Snapshot struct {
	Items        []domain.Artwork
	Page         int    // Last page applied; LoadMore requests Page+1
	Query        string // Last executed search term
	HasQuery     bool   // False until the first Search runs
	HasMore      bool
	IsLoading    bool
	ErrorMessage string // User-facing message, "" when no error is shown
	LastError    error
	Selected     *domain.Artwork
	TotalCount   int

	fetched bool
}

// Phase derives the coarse state from the snapshot
func (s Snapshot) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseLoading
	case s.ErrorMessage != "":
		return PhaseError
	case s.fetched:
		return PhaseLoaded
	default:
		return PhaseIdle
	}
}

// Session sequences fetches against a CollectionRepository
type Session struct {
	repo       domain.CollectionRepository
	logger     *slog.Logger
	autoSelect bool

	mu         sync.Mutex
	state      Snapshot
	generation uint64 // bumped by ResetPagination; stale completions are dropped
}

// Option configures a Session
type Option func(*Session)

// WithAutoSelect selects the first result of a successful search when
// nothing is selected yet (split list/detail layouts).
func WithAutoSelect(enabled bool) Option {
	return func(s *Session) {
		s.autoSelect = enabled
	}
}

// NewSession creates a session with an empty result list
func NewSession(repo domain.CollectionRepository, logger *slog.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		repo:   repo,
		logger: logger,
		state: Snapshot{
			Page:    1,
			HasMore: true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	if len(s.state.Items) > 0 {
		snap.Items = make([]domain.Artwork, len(s.state.Items))
		copy(snap.Items, s.state.Items)
	}
	if s.state.Selected != nil {
		selected := *s.state.Selected
		snap.Selected = &selected
	}
	return snap
}

// Search replaces the result list with page 1 for query.
//
// It does nothing while a fetch is outstanding, or when query equals the last
// executed query and results are already present. A failed search clears the
// result list and disables LoadMore until the next reset; the error is
// returned and its message recorded.
func (s *Session) Search(ctx context.Context, query string) error {
	s.mu.Lock()
	if s.state.IsLoading {
		s.mu.Unlock()
		s.logger.Debug("search skipped, fetch in flight", "query", query)
		return nil
	}
	if s.state.HasQuery && s.state.Query == query && len(s.state.Items) > 0 {
		s.mu.Unlock()
		s.logger.Debug("search skipped, duplicate query", "query", query)
		return nil
	}
	s.state.IsLoading = true
	s.state.ErrorMessage = ""
	s.state.LastError = nil
	s.state.Query = query
	s.state.HasQuery = true
	s.state.Page = 1
	gen := s.generation
	s.mu.Unlock()

	page, err := s.repo.Fetch(ctx, 1, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false

	if gen != s.generation {
		s.logger.Debug("dropping stale search result", "query", query)
		return nil
	}
	s.state.fetched = true

	if err != nil {
		s.state.Items = nil
		s.state.TotalCount = 0
		s.state.HasMore = false
		s.failLocked(err, "search failed", query)
		return err
	}

	s.state.Items = append([]domain.Artwork(nil), page.Items...)
	s.state.TotalCount = page.TotalCount
	s.state.HasMore = !page.IsEmpty()

	if s.autoSelect && s.state.Selected == nil && len(s.state.Items) > 0 {
		first := s.state.Items[0]
		s.state.Selected = &first
	}

	s.logger.Debug("search complete", "query", query, "items", len(s.state.Items), "total", s.state.TotalCount)
	return nil
}

// LoadMore appends the next page for query.
//
// It does nothing while a fetch is outstanding or when no more pages are
// available. On failure the page cursor is restored so a retry requests the
// same page. An empty page (domain.ErrNoData) ends pagination without
// surfacing an error.
func (s *Session) LoadMore(ctx context.Context, query string) error {
	s.mu.Lock()
	if s.state.IsLoading || !s.state.HasMore {
		s.mu.Unlock()
		return nil
	}
	s.state.IsLoading = true
	s.state.Page++
	pageNum := s.state.Page
	gen := s.generation
	s.mu.Unlock()

	page, err := s.repo.Fetch(ctx, pageNum, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = false

	if gen != s.generation {
		s.logger.Debug("dropping stale page", "page", pageNum, "query", query)
		return nil
	}

	if err != nil {
		s.state.Page--
		if errors.Is(err, domain.ErrNoData) {
			s.state.HasMore = false
			s.logger.Debug("reached end of results", "page", pageNum, "query", query)
			return nil
		}
		s.failLocked(err, "load more failed", query)
		return err
	}

	if dups := countOverlap(s.state.Items, page.Items); dups > 0 {
		s.logger.Warn("page overlaps previous results", "page", pageNum, "duplicates", dups)
	}

	s.state.Items = append(s.state.Items, page.Items...)
	s.state.TotalCount = page.TotalCount
	s.state.HasMore = !page.IsEmpty()

	s.logger.Debug("loaded page", "page", pageNum, "items", len(s.state.Items))
	return nil
}

// ResetPagination clears the result list and rewinds to page 1.
// A fetch still in flight when this is called is discarded on completion.
func (s *Session) ResetPagination() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Page = 1
	s.state.Items = nil
	s.state.TotalCount = 0
	s.state.HasMore = true
	s.generation++
}

// Refresh resets pagination and searches again (pull-to-refresh)
func (s *Session) Refresh(ctx context.Context, query string) error {
	s.ResetPagination()
	return s.Search(ctx, query)
}

// DismissError clears the displayed error without retrying
func (s *Session) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ErrorMessage = ""
	s.state.LastError = nil
}

// Select marks the artwork with id as selected. Returns false if id is not
// in the current result list.
func (s *Session) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.state.Items {
		if a.ID == id {
			selected := a
			s.state.Selected = &selected
			return true
		}
	}
	return false
}

// ClearSelection removes the current selection
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Selected = nil
}

func (s *Session) failLocked(err error, msg, query string) {
	s.state.ErrorMessage = domain.UserMessage(err)
	s.state.LastError = err
	s.logger.Warn(msg, "query", query, "page", s.state.Page, "error", err)
}

// countOverlap counts artworks in next whose ID already appears in items
func countOverlap(items, next []domain.Artwork) int {
	if len(items) == 0 || len(next) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(items))
	for _, a := range items {
		seen[a.ID] = struct{}{}
	}
	n := 0
	for _, a := range next {
		if _, ok := seen[a.ID]; ok {
			n++
		}
	}
	return n
}
