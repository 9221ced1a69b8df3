package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mmcdole/rijks/internal/domain"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fetchCall struct {
	Page  int
	Query string
}

// fakeRepo serves scripted pages and records calls
type fakeRepo struct {
	mu    sync.Mutex
	calls []fetchCall
	errs  map[int]error // page -> error
	pages int           // pages available before ErrNoData

	block   chan struct{} // when non-nil, Fetch waits on it
	entered chan struct{}
}

func newFakeRepo(pages int) *fakeRepo {
	return &fakeRepo{pages: pages, errs: make(map[int]error)}
}

func (f *fakeRepo) Fetch(ctx context.Context, page int, query string) (*domain.SearchPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{Page: page, Query: query})
	err := f.errs[page]
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}

	if err != nil {
		return nil, err
	}
	if page > f.pages {
		return nil, domain.ErrNoData
	}
	items := make([]domain.Artwork, 2)
	for i := range items {
		items[i] = domain.Artwork{
			ID:    fmt.Sprintf("%s-p%d-%d", query, page, i),
			Title: fmt.Sprintf("Artwork %d.%d", page, i),
		}
	}
	return &domain.SearchPage{Items: items, TotalCount: f.pages * 2}, nil
}

func (f *fakeRepo) Calls() []fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fetchCall(nil), f.calls...)
}

func (f *fakeRepo) SetErr(page int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, page)
		return
	}
	f.errs[page] = err
}

func TestSearch_ReplacesItemsWithFirstPage(t *testing.T) {
	repo := newFakeRepo(3)
	s := NewSession(repo, quietLogger())

	if got := s.Snapshot().Phase(); got != PhaseIdle {
		t.Fatalf("Phase = %v, want idle", got)
	}

	if err := s.Search(context.Background(), "vermeer"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if err := s.LoadMore(context.Background(), "vermeer"); err != nil {
		t.Fatalf("LoadMore returned error: %v", err)
	}
	s.ResetPagination()
	if err := s.Search(context.Background(), "rembrandt"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Items) != 2 || snap.Items[0].ID != "rembrandt-p1-0" {
		t.Fatalf("Items = %#v, want page 1 of rembrandt only", snap.Items)
	}
	if snap.Page != 1 || !snap.HasMore || snap.Query != "rembrandt" || snap.TotalCount != 6 {
		t.Fatalf("snapshot = %+v, want page 1, has more, query rembrandt", snap)
	}
	if got := snap.Phase(); got != PhaseLoaded {
		t.Fatalf("Phase = %v, want loaded", got)
	}
}

func TestResetThenSearch_AlwaysRequestsPageOne(t *testing.T) {
	repo := newFakeRepo(10)
	s := NewSession(repo, quietLogger())
	ctx := context.Background()

	_ = s.Search(ctx, "")
	for range 4 {
		_ = s.LoadMore(ctx, "")
	}
	if s.Snapshot().Page != 5 {
		t.Fatalf("Page = %d, want 5 before reset", s.Snapshot().Page)
	}

	s.ResetPagination()
	snap := s.Snapshot()
	if snap.Page != 1 || len(snap.Items) != 0 || !snap.HasMore {
		t.Fatalf("after reset = %+v, want page 1, no items, has more", snap)
	}

	_ = s.Search(ctx, "night watch")
	calls := repo.Calls()
	last := calls[len(calls)-1]
	if last != (fetchCall{Page: 1, Query: "night watch"}) {
		t.Fatalf("last call = %+v, want page 1 night watch", last)
	}
}

func TestSearch_DuplicateQuerySuppressed(t *testing.T) {
	repo := newFakeRepo(3)
	s := NewSession(repo, quietLogger())
	ctx := context.Background()

	_ = s.Search(ctx, "milkmaid")
	_ = s.Search(ctx, "milkmaid")
	if n := len(repo.Calls()); n != 1 {
		t.Fatalf("fetch calls = %d, want 1", n)
	}

	// Once results are cleared the same query runs again
	s.ResetPagination()
	_ = s.Search(ctx, "milkmaid")
	if n := len(repo.Calls()); n != 2 {
		t.Fatalf("fetch calls after reset = %d, want 2", n)
	}
}

func TestSearch_EmptyQueryOnFreshSessionRuns(t *testing.T) {
	repo := newFakeRepo(1)
	s := NewSession(repo, quietLogger())

	_ = s.Search(context.Background(), "")
	if n := len(repo.Calls()); n != 1 {
		t.Fatalf("fetch calls = %d, want 1", n)
	}
}

func TestLoadMore_AppendsAndAdvancesPage(t *testing.T) {
	repo := newFakeRepo(3)
	s := NewSession(repo, quietLogger())
	ctx := context.Background()

	_ = s.Search(ctx, "q")
	if err := s.LoadMore(ctx, "q"); err != nil {
		t.Fatalf("LoadMore returned error: %v", err)
	}

	snap := s.Snapshot()
	if snap.Page != 2 || len(snap.Items) != 4 {
		t.Fatalf("snapshot = page %d, %d items; want page 2, 4 items", snap.Page, len(snap.Items))
	}
	if snap.Items[2].ID != "q-p2-0" {
		t.Fatalf("Items[2] = %q, want q-p2-0", snap.Items[2].ID)
	}
}

func TestLoadMore_FailureRestoresPage(t *testing.T) {
	repo := newFakeRepo(10)
	s := NewSession(repo, quietLogger())
	ctx := context.Background()

	_ = s.Search(ctx, "")
	_ = s.LoadMore(ctx, "")
	_ = s.LoadMore(ctx, "")
	before := s.Snapshot()
	if before.Page != 3 {
		t.Fatalf("Page = %d, want 3", before.Page)
	}

	repo.SetErr(4, domain.ErrServerError)
	err := s.LoadMore(ctx, "")
	if !errors.Is(err, domain.ErrServerError) {
		t.Fatalf("LoadMore error = %v, want ErrServerError", err)
	}

	after := s.Snapshot()
	if after.Page != 3 {
		t.Fatalf("Page after failure = %d, want 3", after.Page)
	}
	if len(after.Items) != len(before.Items) {
		t.Fatalf("Items changed on failure: %d -> %d", len(before.Items), len(after.Items))
	}
	if after.ErrorMessage != domain.ErrServerError.Error() || after.Phase() != PhaseError {
		t.Fatalf("ErrorMessage = %q, phase %v; want server error message", after.ErrorMessage, after.Phase())
	}

	// Retry fetches the same page
	repo.SetErr(4, nil)
	s.DismissError()
	_ = s.LoadMore(ctx, "")
	calls := repo.Calls()
	if calls[len(calls)-1].Page != 4 || calls[len(calls)-2].Page != 4 {
		t.Fatalf("calls = %+v, want page 4 requested twice", calls)
	}
	if s.Snapshot().Page != 4 {
		t.Fatalf("Page after retry = %d, want 4", s.Snapshot().Page)
	}
}

func TestLoadMore_NoDataEndsPagination(t *testing.T) {
	repo := newFakeRepo(2)
	s := NewSession(repo, quietLogger())
	ctx := context.Background()

	_ = s.Search(ctx, "")
	_ = s.LoadMore(ctx, "")
	if err := s.LoadMore(ctx, ""); err != nil {
		t.Fatalf("LoadMore past end returned error: %v", err)
	}

	snap := s.Snapshot()
	if snap.HasMore || snap.Page != 2 || snap.ErrorMessage != "" {
		t.Fatalf("snapshot = %+v, want no more pages, page 2, no error", snap)
	}

	calls := len(repo.Calls())
	_ = s.LoadMore(ctx, "")
	if len(repo.Calls()) != calls {
		t.Fatalf("LoadMore issued a request after HasMore became false")
	}
}

func TestSearch_FailureClearsResults(t *testing.T) {
	repo := newFakeRepo(3)
	s := NewSession(repo, quietLogger())
	ctx := context.Background()

	_ = s.Search(ctx, "first")
	repo.SetErr(1, fmt.Errorf("%w: boom", domain.ErrNetwork))

	err := s.Search(ctx, "second")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("Search error = %v, want ErrNetwork", err)
	}

	snap := s.Snapshot()
	if len(snap.Items) != 0 || snap.HasMore || snap.Page != 1 {
		t.Fatalf("snapshot = %+v, want cleared results", snap)
	}
	if snap.ErrorMessage != domain.ErrNetwork.Error() {
		t.Fatalf("ErrorMessage = %q, want network message", snap.ErrorMessage)
	}

	s.DismissError()
	if msg := s.Snapshot().ErrorMessage; msg != "" {
		t.Fatalf("ErrorMessage after dismiss = %q, want empty", msg)
	}
	if n := len(repo.Calls()); n != 2 {
		t.Fatalf("DismissError triggered a fetch: %d calls", n)
	}
}

func TestSearch_NoDataSurfacesMessage(t *testing.T) {
	repo := newFakeRepo(0)
	s := NewSession(repo, quietLogger())

	_ = s.Search(context.Background(), "zzzz")
	if msg := s.Snapshot().ErrorMessage; msg != "No artworks found. Try a different search." {
		t.Fatalf("ErrorMessage = %q, want no data message", msg)
	}
}

func TestLoadingGuard_RejectsConcurrentCalls(t *testing.T) {
	repo := newFakeRepo(5)
	s := NewSession(repo, quietLogger())
	ctx := context.Background()
	_ = s.Search(ctx, "")

	repo.mu.Lock()
	repo.block = make(chan struct{})
	repo.entered = make(chan struct{}, 1)
	block, entered := repo.block, repo.entered
	repo.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- s.LoadMore(ctx, "") }()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("LoadMore never reached Fetch")
	}

	during := s.Snapshot()
	if !during.IsLoading || during.Phase() != PhaseLoading {
		t.Fatalf("IsLoading = false during fetch")
	}

	if err := s.LoadMore(ctx, ""); err != nil {
		t.Fatalf("concurrent LoadMore returned error: %v", err)
	}
	if err := s.Search(ctx, "other"); err != nil {
		t.Fatalf("concurrent Search returned error: %v", err)
	}
	if after := s.Snapshot(); after.Page != during.Page || len(after.Items) != len(during.Items) || after.Query != during.Query {
		t.Fatalf("state changed by rejected calls: %+v -> %+v", during, after)
	}
	if n := len(repo.Calls()); n != 2 {
		t.Fatalf("fetch calls = %d, want 2 (initial search + one load more)", n)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("LoadMore returned error: %v", err)
	}
	if s.Snapshot().IsLoading {
		t.Fatalf("IsLoading still true after fetch completed")
	}
}

func TestResetDuringFetch_DropsStaleResult(t *testing.T) {
	repo := newFakeRepo(5)
	s := NewSession(repo, quietLogger())
	ctx := context.Background()
	_ = s.Search(ctx, "")

	repo.mu.Lock()
	repo.block = make(chan struct{})
	repo.entered = make(chan struct{}, 1)
	block, entered := repo.block, repo.entered
	repo.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- s.LoadMore(ctx, "") }()
	<-entered

	s.ResetPagination()
	close(block)
	<-done

	snap := s.Snapshot()
	if len(snap.Items) != 0 || snap.Page != 1 || snap.IsLoading {
		t.Fatalf("snapshot = %+v, want reset state kept", snap)
	}
}

func TestAutoSelectAndSelection(t *testing.T) {
	repo := newFakeRepo(2)
	s := NewSession(repo, quietLogger(), WithAutoSelect(true))
	ctx := context.Background()

	_ = s.Search(ctx, "a")
	snap := s.Snapshot()
	if snap.Selected == nil || snap.Selected.ID != "a-p1-0" {
		t.Fatalf("Selected = %#v, want first result", snap.Selected)
	}

	if !s.Select("a-p1-1") {
		t.Fatalf("Select(a-p1-1) = false, want true")
	}
	if s.Select("missing") {
		t.Fatalf("Select(missing) = true, want false")
	}

	// A later search keeps an existing selection
	s.ResetPagination()
	_ = s.Search(ctx, "b")
	if got := s.Snapshot().Selected; got == nil || got.ID != "a-p1-1" {
		t.Fatalf("Selected = %#v, want a-p1-1 kept", got)
	}

	s.ClearSelection()
	if s.Snapshot().Selected != nil {
		t.Fatalf("Selected not cleared")
	}
}

func TestSnapshot_IsIndependentCopy(t *testing.T) {
	repo := newFakeRepo(1)
	s := NewSession(repo, quietLogger())
	_ = s.Search(context.Background(), "")

	snap := s.Snapshot()
	snap.Items[0].Title = "mutated"
	if s.Snapshot().Items[0].Title == "mutated" {
		t.Fatalf("Snapshot should copy items")
	}
}

func TestRefresh(t *testing.T) {
	repo := newFakeRepo(3)
	s := NewSession(repo, quietLogger())
	ctx := context.Background()

	_ = s.Search(ctx, "q")
	_ = s.LoadMore(ctx, "q")
	if err := s.Refresh(ctx, "q"); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	snap := s.Snapshot()
	if snap.Page != 1 || len(snap.Items) != 2 {
		t.Fatalf("after refresh = page %d, %d items; want page 1, 2 items", snap.Page, len(snap.Items))
	}
	if n := len(repo.Calls()); n != 3 {
		t.Fatalf("fetch calls = %d, want 3 (refresh bypasses duplicate suppression)", n)
	}
}
