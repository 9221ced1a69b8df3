package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/rijks/internal/domain"
	"github.com/mmcdole/rijks/internal/gallery"
	"github.com/mmcdole/rijks/internal/tui/components"
	"github.com/mmcdole/rijks/internal/tui/styles"
)

// Favorites is the favorite set as seen by the UI
type Favorites interface {
	domain.FavoritesQueries
	domain.FavoritesCommands
}

// ImageOpener opens an image URL outside the terminal
type ImageOpener interface {
	Open(url string) error
}

// Options configures the model
type Options struct {
	Debounce      time.Duration // Quiet period before a typed query runs
	ShowInspector bool          // Split list/detail layout
	Viewer        ImageOpener   // Optional
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Core
	Session   *gallery.Session
	Favorites Favorites
	Viewer    ImageOpener
	Debouncer *gallery.SearchDebouncer
	searchCh  chan string

	// UI Components
	Omnibar   components.Omnibar
	List      components.ArtworkList
	Inspector components.Inspector
	Alert     components.Alert
	Spinner   spinner.Model
	ListKeys  components.ListKeyMap

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg     string
	StatusIsErr   bool
	ShowInspector bool // Split layout; moving the cursor selects
	ShowDetail    bool // Full-screen details (inspector hidden)
	ShowHelp      bool

	// Fetch bookkeeping. The session rejects calls while a fetch is out, so
	// the model issues one at a time and parks the latest debounced query.
	inFlight     int
	pendingQuery *string
	snap         gallery.Snapshot
}

// NewModel creates a new application model. The first search (empty query,
// the whole collection) is issued by Init.
func NewModel(session *gallery.Session, favorites Favorites, opts Options) Model {
	searchCh := make(chan string, 1)
	debouncer := gallery.NewSearchDebouncer(opts.Debounce, session.ResetPagination, func(q string) {
		// Keep only the newest query if the UI has not picked up the last one
		for {
			select {
			case searchCh <- q:
				return
			default:
				select {
				case <-searchCh:
				default:
				}
			}
		}
	})

	list := components.NewArtworkList()
	list.SetFavoriteChecker(favorites.IsFavorite)
	list.SetFocused(true)

	return Model{
		Session:       session,
		Favorites:     favorites,
		Viewer:        opts.Viewer,
		Debouncer:     debouncer,
		searchCh:      searchCh,
		Omnibar:       components.NewOmnibar(),
		List:          list,
		Inspector:     components.NewInspector(),
		Alert:         components.NewAlert(),
		Spinner:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		ListKeys:      components.DefaultListKeyMap(),
		ShowInspector: opts.ShowInspector,
		inFlight:      1, // initial search from Init
		snap:          session.Snapshot(),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		SearchCmd(m.Session, ""),
		WaitForSearchCmd(m.searchCh),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m.List.SetSpinner(m.Spinner.View())
		return m, cmd

	case SearchRequestMsg:
		cmd := m.requestSearch(msg.Query)
		return m, tea.Batch(cmd, WaitForSearchCmd(m.searchCh))

	case SearchDoneMsg:
		return m, m.fetchDone()

	case PageLoadedMsg:
		return m, m.fetchDone()

	case FavoriteToggledMsg:
		if msg.Err != nil {
			m.StatusMsg = fmt.Sprintf("Could not save favorite: %v", msg.Err)
			m.StatusIsErr = true
		} else if msg.IsFavorite {
			m.StatusMsg = "Added to favorites: " + msg.Title
			m.StatusIsErr = false
		} else {
			m.StatusMsg = "Removed from favorites: " + msg.Title
			m.StatusIsErr = false
		}
		m.syncInspector()
		return m, ClearStatusCmd(3 * time.Second)

	case ImageOpenedMsg:
		if msg.Err != nil {
			m.StatusMsg = fmt.Sprintf("Could not open image: %v", msg.Err)
			m.StatusIsErr = true
		} else {
			m.StatusMsg = "Opened image: " + msg.Title
			m.StatusIsErr = false
		}
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// requestSearch issues a search now, or parks it until the outstanding
// fetch completes.
func (m *Model) requestSearch(query string) tea.Cmd {
	if m.inFlight > 0 {
		m.pendingQuery = &query
		return nil
	}
	m.inFlight++
	m.List.SetQuery(query)
	m.sync()
	return SearchCmd(m.Session, query)
}

// fetchDone applies a completed fetch and runs any parked search
func (m *Model) fetchDone() tea.Cmd {
	if m.inFlight > 0 {
		m.inFlight--
	}
	m.sync()

	if m.inFlight == 0 && m.pendingQuery != nil {
		q := *m.pendingQuery
		m.pendingQuery = nil
		return m.requestSearch(q)
	}
	return nil
}

// loadMoreIfNeeded fetches the next page when the cursor sits on the last
// loaded artwork.
func (m *Model) loadMoreIfNeeded() tea.Cmd {
	if !m.List.AtEnd() || !m.snap.HasMore || m.snap.IsLoading || m.inFlight > 0 {
		return nil
	}
	m.inFlight++
	m.List.SetStatus(true, m.snap.HasMore, m.snap.TotalCount)
	return LoadMoreCmd(m.Session, m.snap.Query)
}

// sync copies session state into the components
func (m *Model) sync() {
	m.snap = m.Session.Snapshot()
	m.List.SetItems(m.snap.Items)
	m.List.SetStatus(m.snap.IsLoading || m.inFlight > 0, m.snap.HasMore, m.snap.TotalCount)

	if m.snap.ErrorMessage != "" {
		m.Alert.Show(m.snap.ErrorMessage)
	} else {
		m.Alert.Hide()
	}
	m.syncInspector()
}

func (m *Model) syncInspector() {
	sel := m.snap.Selected
	if sel == nil {
		m.Inspector.SetItem(nil, false)
		return
	}
	m.Inspector.SetItem(sel, m.Favorites.IsFavorite(sel.ID))
}

// selectCursor makes the artwork under the cursor the session selection
func (m *Model) selectCursor() {
	a, ok := m.List.Selected()
	if !ok {
		return
	}
	if m.Session.Select(a.ID) {
		m.snap = m.Session.Snapshot()
		m.syncInspector()
	}
}

// queryChanged resets the list and schedules a debounced search
func (m *Model) queryChanged() {
	m.Debouncer.QueryChanged(m.Omnibar.Value())
	m.sync()
}
