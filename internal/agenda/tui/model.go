package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mara/innkeep/internal/agenda"
	"github.com/mara/innkeep/pkg/models"
)

// Fetcher supplies reservations for a day range. *db.DB satisfies it.
type Fetcher interface {
	ReservationsInRange(from, to string) ([]*models.Reservation, error)
}

// Mode controls the calendar layout and its default fetch window size
type Mode int

const (
	// Compact shows a single month and keeps a small window loaded
	Compact Mode = iota
	// Full shows a quarter spread and keeps a wider window loaded
	Full
)

// Default window half-widths per mode, in months before/after the
// cursor month.
const (
	compactBack, compactAhead = 1, 2
	fullBack, fullAhead       = 3, 3
)

// Model is the calendar TUI state
type Model struct {
	fetcher Fetcher

	// Navigation
	mode        Mode
	cursorMonth time.Time // first day of the month under the cursor
	weekStart   time.Weekday

	// Sliding fetch window
	window   agenda.Window
	expander *agenda.Expander

	// Data for the loaded window
	reservations []*models.Reservation
	byDay        map[agenda.DateKey][]*models.Reservation

	// New-arrival detection across refresh ticks
	registry  agenda.Registry
	signature string
	arrivals  []string // guest names from the latest tick, shown in the status bar

	refreshEvery time.Duration

	// UI dimensions
	width  int
	height int

	err error

	// For testing - allows injecting "today"
	now func() time.Time
}

// Option is a functional option for configuring the Model
type Option func(*Model)

// WithNow sets the function used to get the current time (for testing)
func WithNow(fn func() time.Time) Option {
	return func(m *Model) {
		m.now = fn
	}
}

// WithExpansion overrides the buffer/expansion thresholds
func WithExpansion(bufferDays, expansionDays int) Option {
	return func(m *Model) {
		m.expander = agenda.NewExpander(bufferDays, expansionDays)
	}
}

// WithWeekStart sets the weekday calendar rows begin on
func WithWeekStart(day time.Weekday) Option {
	return func(m *Model) {
		m.weekStart = day
	}
}

// WithRefreshInterval sets how often the calendar re-polls for new
// reservations
func WithRefreshInterval(d time.Duration) Option {
	return func(m *Model) {
		m.refreshEvery = d
	}
}

// New creates a calendar Model reading from fetcher
func New(fetcher Fetcher, opts ...Option) *Model {
	m := &Model{
		fetcher:      fetcher,
		mode:         Compact,
		weekStart:    time.Monday,
		expander:     agenda.NewExpander(agenda.DefaultBufferDays, agenda.DefaultExpansionDays),
		refreshEvery: 30 * time.Second,
		signature:    "calendar",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.cursorMonth = firstOfMonth(m.now())
	m.window = m.defaultWindow()

	return m
}

// defaultWindow computes the initial fetch window for the current mode,
// centered on the cursor month
func (m *Model) defaultWindow() agenda.Window {
	back, ahead := compactBack, compactAhead
	if m.mode == Full {
		back, ahead = fullBack, fullAhead
	}
	return agenda.Window{
		From: m.cursorMonth.AddDate(0, -back, 0),
		To:   m.cursorMonth.AddDate(0, ahead, 0),
	}
}

// viewport returns the interval currently on screen
func (m *Model) viewport() agenda.Interval {
	months := 1
	if m.mode == Full {
		months = 3
	}
	return agenda.Interval{Start: m.cursorMonth, End: m.cursorMonth.AddDate(0, months, 0)}
}

// Window returns the currently loaded fetch window
func (m *Model) Window() agenda.Window {
	return m.window
}

// SetMode switches layouts before the program starts. The initial
// window is recomputed for the mode's default size.
func (m *Model) SetMode(mode Mode) {
	m.mode = mode
	m.window = m.defaultWindow()
	m.expander.Reset()
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchWindow(m.window), m.scheduleRefresh())
}

type reservationsLoadedMsg struct {
	window       agenda.Window
	reservations []*models.Reservation
}

type refreshTickMsg struct{}

type errMsg struct{ err error }

// fetchWindow loads reservations for w. The message carries w so a
// result for a superseded window can be discarded (last-proposal-wins).
func (m *Model) fetchWindow(w agenda.Window) tea.Cmd {
	return func() tea.Msg {
		reservations, err := m.fetcher.ReservationsInRange(
			w.From.Format(agenda.DateLayout),
			w.To.Format(agenda.DateLayout),
		)
		if err != nil {
			return errMsg{err}
		}
		return reservationsLoadedMsg{window: w, reservations: reservations}
	}
}

func (m *Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reservationsLoadedMsg:
		// A stale fetch for a superseded window must never overwrite
		// the data for the current one
		if msg.window.Key() != m.window.Key() {
			return m, nil
		}
		m.acceptReservations(msg.reservations)
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.fetchWindow(m.window), m.scheduleRefresh())

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// acceptReservations installs a fetched result set, re-indexes it by
// checkout day, and diffs it against the registry for the status bar.
// The detector signature includes the window key: the result set is
// scoped to the loaded window, so a widened or rebuilt window changes
// the comparison basis and must reseed silently instead of announcing
// reservations that merely scrolled into range.
func (m *Model) acceptReservations(reservations []*models.Reservation) {
	m.reservations = reservations
	m.byDay = indexByDay(reservations)

	signature := m.signature + "|" + m.window.Key()
	newItems, next := agenda.DetectNew(reservations, m.registry, signature,
		func(r *models.Reservation) int64 { return r.ID })
	m.registry = next

	m.arrivals = m.arrivals[:0]
	for _, r := range newItems {
		m.arrivals = append(m.arrivals, r.GuestName)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "l", "right", "j", "down":
		return m.moveMonths(1)

	case "h", "left", "k", "up":
		return m.moveMonths(-1)

	case "L", "pgdown":
		return m.moveMonths(3)

	case "H", "pgup":
		return m.moveMonths(-3)

	case "t":
		m.cursorMonth = firstOfMonth(m.now())
		return m.afterNavigate()

	case "m":
		return m.toggleMode()
	}

	return m, nil
}

// moveMonths shifts the cursor and widens the fetch window when the
// viewport scrolls near a loaded edge
func (m *Model) moveMonths(delta int) (tea.Model, tea.Cmd) {
	m.cursorMonth = m.cursorMonth.AddDate(0, delta, 0)
	return m.afterNavigate()
}

func (m *Model) afterNavigate() (tea.Model, tea.Cmd) {
	vp := m.viewport()

	// A jump outside the loaded window rebuilds it from scratch
	if vp.Start.Before(m.window.From) || vp.End.After(m.window.To) {
		m.window = m.defaultWindow()
		m.expander.Reset()
		return m, m.fetchWindow(m.window)
	}

	if proposed := m.expander.MaybeExpand(m.window, vp); proposed != nil {
		m.window = *proposed
		return m, m.fetchWindow(m.window)
	}
	return m, nil
}

// toggleMode switches layouts; the modes use different default window
// sizes, so the window is recomputed rather than expanded incrementally
func (m *Model) toggleMode() (tea.Model, tea.Cmd) {
	if m.mode == Compact {
		m.mode = Full
	} else {
		m.mode = Compact
	}
	m.window = m.defaultWindow()
	m.expander.Reset()
	return m, m.fetchWindow(m.window)
}

func indexByDay(reservations []*models.Reservation) map[agenda.DateKey][]*models.Reservation {
	byDay := make(map[agenda.DateKey][]*models.Reservation)
	for _, r := range reservations {
		if r.CheckOut == nil {
			continue
		}
		key := agenda.DateKey(*r.CheckOut)
		byDay[key] = append(byDay[key], r)
	}
	return byDay
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
