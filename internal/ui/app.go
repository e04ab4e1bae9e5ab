package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/farefinder/internal/flights"
	"github.com/five82/farefinder/internal/logtail"
	"github.com/five82/farefinder/internal/prefs"
	"github.com/five82/farefinder/internal/search"
	"github.com/five82/farefinder/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewSearch View = iota
	ViewResults
	ViewDetails
	ViewLogs
)

// source identifies which store a snapshot came from.
type source int

const (
	sourceSession source = iota
	sourceOrigin
	sourceDestination
)

// Options configures the UI.
type Options struct {
	Context context.Context

	// Session runs flight search, price calendar and details. Origin and
	// Destination each back one autocomplete field.
	Session     *search.Controller
	Origin      *search.Controller
	Destination *search.Controller

	Defaults  search.Defaults
	Live      func() bool
	Home      *flights.Coordinates // nil disables nearby lookups
	LogPath   string
	Prefs     prefs.Prefs
	PrefsPath string
	Now       func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	keys        keyMap
	session     *search.Controller
	origin      *search.Controller
	destination *search.Controller
	defaults    search.Defaults
	live        func() bool
	home        *flights.Coordinates
	logPath     string
	prefs       prefs.Prefs
	prefsPath   string

	// UI state
	theme    Theme
	view     View
	prevView View
	width    int
	height   int
	ready    bool
	showHelp bool
	spinner  spinner.Model

	// Search
	snapshot state.Snapshot
	form     searchForm
	query    *search.SearchQuery
	params   flights.SearchParams

	// Results
	selected       int
	showCalendar   bool
	detailViewport viewport.Model

	// Logs
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logErr      error
	logGen      int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	live := opts.Live
	if live == nil {
		live = func() bool { return false }
	}
	session := opts.Session
	if session == nil {
		session = search.NewController(flights.NewGateway(nil, nil), nil)
	}

	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Defaults()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		keys:        DefaultKeyMap(),
		session:     session,
		origin:      opts.Origin,
		destination: opts.Destination,
		defaults:    opts.Defaults,
		live:        live,
		home:        opts.Home,
		logPath:     opts.LogPath,
		prefs:       p,
		prefsPath:   prefsPath,
		theme:       GetTheme(p.Theme),
		view:        ViewSearch,
		spinner:     sp,
		form: newSearchForm(now(), opts.Origin, opts.Destination,
			tripFromPrefs(p.TripType), search.ParseCabinClass(p.CabinClass), search.ParseSortBy(p.SortBy)),
	}
	m.form.setFocus(fieldOrigin)
	return m
}

func tripFromPrefs(s string) search.TripType {
	switch t := search.TripType(s); t {
	case search.TripOneWay, search.TripMultiCity:
		return t
	}
	return search.TripRound
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		waitForUpdate(m.ctx, sourceSession, m.session.Store()),
	}
	if m.origin != nil {
		cmds = append(cmds, waitForUpdate(m.ctx, sourceOrigin, m.origin.Store()))
	}
	if m.destination != nil {
		cmds = append(cmds, waitForUpdate(m.ctx, sourceDestination, m.destination.Store()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(0, 0)
			m.logViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.resizeViewports()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case storeUpdateMsg:
		m.applySnapshot(msg)
		return m, m.rewait(msg.source)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logBatchMsg:
		m.logEntries = msg.entries
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil

	case logTickMsg:
		if m.view != ViewLogs || msg.gen != m.logGen {
			return m, nil
		}
		return m, tea.Batch(fetchLogsCmd(m.logPath), logTickCmd(msg.gen))
	}

	// Cursor blink and other input plumbing.
	if m.view == ViewSearch {
		return m, m.form.updateText(m.ctx, msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m *Model) applySnapshot(msg storeUpdateMsg) {
	switch msg.source {
	case sourceOrigin:
		m.form.origin.snap = msg.snap
		if m.form.origin.cursor >= len(m.form.origin.suggestions()) {
			m.form.origin.cursor = 0
		}
	case sourceDestination:
		m.form.destination.snap = msg.snap
		if m.form.destination.cursor >= len(m.form.destination.suggestions()) {
			m.form.destination.cursor = 0
		}
	default:
		m.snapshot = msg.snap
		if m.selected >= len(m.snapshot.Flights) {
			m.selected = max(len(m.snapshot.Flights)-1, 0)
		}
		m.updateDetailViewport()
	}
}

func (m Model) rewait(src source) tea.Cmd {
	switch src {
	case sourceOrigin:
		return waitForUpdate(m.ctx, src, m.origin.Store())
	case sourceDestination:
		return waitForUpdate(m.ctx, src, m.destination.Store())
	default:
		return waitForUpdate(m.ctx, src, m.session.Store())
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.cancelPending()
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	typing := m.view == ViewSearch && m.form.textFocused()
	if typing {
		if msg.String() == "ctrl+x" {
			m.dismissErrors()
			return m, nil
		}
	} else {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancelPending()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.CycleTheme):
			m.theme = GetTheme(NextTheme(m.theme.Name))
			m.prefs.Theme = m.theme.Name
			m.savePrefs()
			m.resizeViewports()
			m.updateDetailViewport()
			m.updateLogViewport()
			return m, nil
		case key.Matches(msg, m.keys.ViewLogs):
			if m.view != ViewLogs {
				return m, m.enterLogs()
			}
			return m, nil
		case key.Matches(msg, m.keys.Dismiss):
			m.dismissErrors()
			return m, nil
		}
	}

	switch m.view {
	case ViewResults:
		return m.handleResultsKey(msg)
	case ViewDetails:
		return m.handleDetailsKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleSearchKey(msg)
	}
}

// handleSearchKey processes keyboard input for the search form.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := m.form.activeAirport()
	dropdown := field != nil && len(field.suggestions()) > 0

	switch {
	case key.Matches(msg, m.keys.Escape):
		if field != nil {
			field.open = false
		}
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.form.move(1)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.move(-1)

	case key.Matches(msg, m.keys.Swap):
		m.form.swap()
		return m, nil

	case key.Matches(msg, m.keys.Nearby):
		return m, m.nearby(field)

	case key.Matches(msg, m.keys.Submit):
		if dropdown && field.choose() {
			return m, m.form.move(1)
		}
		return m.submit()

	case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		delta := 1
		if msg.Type == tea.KeyUp {
			delta = -1
		}
		if dropdown {
			field.moveCursor(delta)
			return m, nil
		}
		return m, m.form.move(delta)
	}

	if m.form.textFocused() {
		return m, m.form.updateText(m.ctx, msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m, m.form.move(-1)
	case key.Matches(msg, m.keys.Down):
		return m, m.form.move(1)
	case key.Matches(msg, m.keys.Increase):
		m.form.adjust(1)
	case key.Matches(msg, m.keys.Decrease):
		m.form.adjust(-1)
	}
	return m, nil
}

// nearby lists the airports closest to the configured home location in the
// focused field's dropdown.
func (m *Model) nearby(field *airportField) tea.Cmd {
	if field == nil || field.ctrl == nil {
		return nil
	}
	if m.home == nil {
		m.form.err = "Set home_lat and home_lng in config.toml to list nearby airports"
		return nil
	}
	m.form.err = ""
	field.ctrl.CancelPending()
	field.cursor = 0
	field.open = true
	ctx, ctrl, home := m.ctx, field.ctrl, *m.home
	return runCmd(func() { ctrl.NearbyAirports(ctx, home.Lat, home.Lng) })
}

// submit validates the form and starts a flight search. It is a no-op while
// a session request is in flight.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.snapshot.Loading {
		return m, nil
	}
	q, err := m.form.query()
	if err != nil {
		m.form.err = err.Error()
		return m, nil
	}
	m.form.err = ""
	m.query = &q
	m.params = q.Params(m.defaults)
	m.selected = 0
	m.showCalendar = false
	m.view = ViewResults

	m.prefs.TripType = string(q.TripType)
	m.prefs.CabinClass = string(q.CabinClass)
	m.prefs.SortBy = string(q.SortBy)
	m.savePrefs()

	// Reflect the cleared list right away instead of waiting for the store.
	m.snapshot.Flights = nil
	m.snapshot.PriceCalendar = nil
	m.snapshot.Details = nil
	m.snapshot.Loading = true

	session, params := m.session, m.params
	return m, runCmd(func() { session.SearchFlights(m.ctx, params) })
}

func (m *Model) dismissErrors() {
	m.session.ClearError()
	if m.origin != nil {
		m.origin.ClearError()
	}
	if m.destination != nil {
		m.destination.ClearError()
	}
	m.form.err = ""
}

func (m Model) cancelPending() {
	if m.origin != nil {
		m.origin.CancelPending()
	}
	if m.destination != nil {
		m.destination.CancelPending()
	}
}

// savePrefs persists preferences. A failed write leaves a hint on the form
// and the in-memory settings still apply.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.form.err = "Could not save preferences: " + err.Error()
	}
}

// errorMessage returns the first active error across the session and both
// autocomplete fields.
func (m Model) errorMessage() string {
	if m.snapshot.HasError() {
		return m.snapshot.Error
	}
	if m.form.origin.snap.HasError() {
		return m.form.origin.snap.Error
	}
	return m.form.destination.snap.Error
}

func (m Model) anyLoading() bool {
	return m.snapshot.Loading || m.form.origin.loading() || m.form.destination.loading()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	parts := []string{m.renderHeader(), m.renderCommandBar()}
	if banner := m.renderBanner(); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, m.renderContent())
	return strings.Join(parts, "\n")
}

// contentHeight is the height left below the header, command bar and
// error banner.
func (m Model) contentHeight() int {
	h := m.height - 2
	if m.errorMessage() != "" {
		h--
	}
	return max(h, 3)
}

func (m Model) renderBanner() string {
	msg := m.errorMessage()
	if msg == "" {
		return ""
	}
	styles := m.theme.Styles()
	hint := "  (x to dismiss)"
	if m.view == ViewSearch && m.form.textFocused() {
		hint = "  (ctrl+x to dismiss)"
	}
	return styles.Banner.Width(m.width).Render(truncate(msg+hint, m.width-2))
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.view {
	case ViewResults:
		return m.renderResults()
	case ViewDetails:
		return m.renderDetails()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderSearch()
	}
}

func (m *Model) resizeViewports() {
	h := m.contentHeight() - 2
	m.detailViewport.Width = m.width - 4
	m.detailViewport.Height = max(h, 1)
	m.logViewport.Width = m.width - 4
	m.logViewport.Height = max(h, 1)
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
}

// Messages

type storeUpdateMsg struct {
	source source
	snap   state.Snapshot
}

// Commands

// waitForUpdate blocks until store changes, then delivers its snapshot.
func waitForUpdate(ctx context.Context, src source, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-store.Updates():
			return storeUpdateMsg{source: src, snap: store.Snapshot()}
		case <-ctx.Done():
			return nil
		}
	}
}

// runCmd runs a blocking controller call off the update loop. Its result
// arrives through the store, not the returned message.
func runCmd(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
