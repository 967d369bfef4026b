package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mara/innkeep/internal/agenda"
	"github.com/mara/innkeep/pkg/models"
)

// fakeFetcher records range queries and serves canned reservations
type fakeFetcher struct {
	calls        []string
	reservations []*models.Reservation
	err          error
}

func (f *fakeFetcher) ReservationsInRange(from, to string) ([]*models.Reservation, error) {
	f.calls = append(f.calls, from+"|"+to)
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)
}

func newTestModel(f Fetcher) *Model {
	return New(f, WithNow(fixedNow))
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func resWithCheckout(id int64, guest, checkOut string) *models.Reservation {
	return &models.Reservation{
		ID:        id,
		GuestName: guest,
		Property:  "villa-9",
		Status:    models.ResBooked,
		Channel:   models.ChannelDirect,
		CheckOut:  &checkOut,
		CreatedAt: id,
	}
}

func TestNew_CompactWindowAroundCursor(t *testing.T) {
	m := newTestModel(&fakeFetcher{})

	w := m.Window()
	assert.Equal(t, "2024-02-01", w.From.Format(agenda.DateLayout))
	assert.Equal(t, "2024-05-01", w.To.Format(agenda.DateLayout))
}

func TestUpdate_LoadInstallsReservations(t *testing.T) {
	f := &fakeFetcher{reservations: []*models.Reservation{
		resWithCheckout(1, "Dana Reyes", "2024-03-20"),
	}}
	m := newTestModel(f)

	msg := m.fetchWindow(m.Window())()
	loaded, ok := msg.(reservationsLoadedMsg)
	require.True(t, ok)

	m.Update(loaded)

	assert.Len(t, m.reservations, 1)
	assert.Len(t, m.byDay[agenda.DateKey("2024-03-20")], 1)
}

func TestUpdate_StaleFetchDiscarded(t *testing.T) {
	f := &fakeFetcher{}
	m := newTestModel(f)

	// A fetch result tagged with a window that is no longer current
	stale := reservationsLoadedMsg{
		window:       agenda.Window{From: day(2020, 1, 1), To: day(2020, 6, 1)},
		reservations: []*models.Reservation{resWithCheckout(1, "Stale", "2020-03-01")},
	}

	m.Update(stale)

	assert.Empty(t, m.reservations, "stale window data must never be installed")
}

func TestUpdate_ScrollNearEdgeExpandsWindow(t *testing.T) {
	f := &fakeFetcher{}
	m := newTestModel(f)
	before := m.Window()

	// Scroll one month ahead: the viewport end reaches the loaded edge
	_, cmd := m.Update(keyMsg("l"))

	after := m.Window()
	assert.True(t, after.To.After(before.To), "window must widen forward")
	assert.Equal(t, before.From, after.From)
	assert.NotNil(t, cmd, "an expansion must trigger a fetch")
}

func TestUpdate_RepeatNavigationDoesNotRefetchSameWindow(t *testing.T) {
	f := &fakeFetcher{}
	m := newTestModel(f)

	_, cmd := m.Update(keyMsg("l"))
	require.NotNil(t, cmd)
	widened := m.Window()

	// Scrolling further inside the widened window proposes nothing
	_, cmd = m.Update(keyMsg("l"))
	assert.Nil(t, cmd)
	assert.Equal(t, widened.Key(), m.Window().Key(), "window never shrinks during a session")
}

func TestUpdate_ModeToggleRebuildsWindow(t *testing.T) {
	f := &fakeFetcher{}
	m := newTestModel(f)

	_, cmd := m.Update(keyMsg("m"))

	require.NotNil(t, cmd)
	w := m.Window()
	assert.Equal(t, "2023-12-01", w.From.Format(agenda.DateLayout), "full mode loads a wider default window")
	assert.Equal(t, "2024-06-01", w.To.Format(agenda.DateLayout))
}

func TestUpdate_RefreshTickDetectsArrivals(t *testing.T) {
	f := &fakeFetcher{reservations: []*models.Reservation{
		resWithCheckout(1, "Dana Reyes", "2024-03-20"),
	}}
	m := newTestModel(f)

	// First load seeds silently
	msg := m.fetchWindow(m.Window())()
	m.Update(msg)
	assert.Empty(t, m.arrivals)

	// A new reservation lands before the next refresh
	f.reservations = append(f.reservations, resWithCheckout(2, "Luis Ortega", "2024-03-22"))
	msg = m.fetchWindow(m.Window())()
	m.Update(msg)

	assert.Equal(t, []string{"Luis Ortega"}, m.arrivals)

	// The same data on the following tick is no longer "new"
	msg = m.fetchWindow(m.Window())()
	m.Update(msg)
	assert.Empty(t, m.arrivals)
}

// rangeFetcher serves only the reservations whose checkout falls in
// the requested range, like the real store does
type rangeFetcher struct {
	reservations []*models.Reservation
}

func (f *rangeFetcher) ReservationsInRange(from, to string) ([]*models.Reservation, error) {
	var out []*models.Reservation
	for _, r := range f.reservations {
		if r.CheckOut == nil {
			continue
		}
		if *r.CheckOut >= from && *r.CheckOut < to {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestUpdate_WindowExpansionDoesNotAnnounceExisting(t *testing.T) {
	f := &rangeFetcher{reservations: []*models.Reservation{
		resWithCheckout(1, "Dana Reyes", "2024-03-20"),
		// Booked long ago, outside the initial February-May window
		resWithCheckout(2, "Old Booking", "2024-01-10"),
	}}
	m := newTestModel(f)

	m.Update(m.fetchWindow(m.Window())())
	assert.Empty(t, m.arrivals)

	// Scrolling back to February reaches the loaded start edge and
	// widens the window; the January reservation scrolls into range
	_, cmd := m.Update(keyMsg("h"))
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Empty(t, m.arrivals, "a widened window must reseed, not announce pre-existing bookings")

	// A reservation landing under the same window is still announced
	f.reservations = append(f.reservations, resWithCheckout(3, "Luis Ortega", "2024-03-22"))
	m.Update(m.fetchWindow(m.Window())())
	assert.Equal(t, []string{"Luis Ortega"}, m.arrivals)
}

func TestUpdate_FetchErrorShownInStatusBar(t *testing.T) {
	f := &fakeFetcher{err: errors.New("disk gone")}
	m := newTestModel(f)

	msg := m.fetchWindow(m.Window())()
	m.Update(msg)

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "disk gone")
}

func TestView_RendersMonthAndStatus(t *testing.T) {
	f := &fakeFetcher{reservations: []*models.Reservation{
		resWithCheckout(1, "Dana Reyes", "2024-03-20"),
	}}
	m := newTestModel(f)
	msg := m.fetchWindow(m.Window())()
	m.Update(msg)

	view := m.View()

	assert.Contains(t, view, "March 2024")
	assert.Contains(t, view, "1 reservations")
	assert.Contains(t, view, "loaded 2024-02-01 to 2024-05-01")
}

func day(year, month, d int) time.Time {
	return time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.Local)
}
