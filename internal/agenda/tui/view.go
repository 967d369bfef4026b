package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mara/innkeep/internal/agenda"
)

// Styles
var (
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	weekdayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	todayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	busyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	quietStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	arrivalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const dayCellWidth = 7

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	months := 1
	if m.mode == Full {
		months = 3
	}

	for i := 0; i < months; i++ {
		month := m.cursorMonth.AddDate(0, i, 0)
		b.WriteString(m.renderMonth(month))
		if i < months-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderMonth draws one month grid with per-day checkout counts
func (m *Model) renderMonth(month time.Time) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(month.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(weekdayStyle.Render(m.weekdayHeader()))
	b.WriteString("\n")

	today := agenda.DateKey(m.now().Format(agenda.DateLayout))

	day := month
	// pad the first row to the week start
	offset := (int(day.Weekday()) - int(m.weekStart) + 7) % 7
	b.WriteString(strings.Repeat(" ", offset*dayCellWidth))

	column := offset
	for day.Month() == month.Month() {
		key := agenda.DateKey(day.Format(agenda.DateLayout))
		b.WriteString(m.renderDayCell(day, key, key == today))

		column++
		if column == 7 {
			b.WriteString("\n")
			column = 0
		}
		day = day.AddDate(0, 0, 1)
	}
	if column != 0 {
		b.WriteString("\n")
	}

	return b.String()
}

// renderDayCell shows the day number and the count of checkouts on it
func (m *Model) renderDayCell(day time.Time, key agenda.DateKey, isToday bool) string {
	count := len(m.byDay[key])

	cell := fmt.Sprintf("%2d", day.Day())
	if count > 0 {
		cell += fmt.Sprintf("·%d", count)
	}
	cell = fmt.Sprintf("%-*s", dayCellWidth, cell)

	switch {
	case isToday:
		return todayStyle.Render(cell)
	case count > 0:
		return busyStyle.Render(cell)
	default:
		return quietStyle.Render(cell)
	}
}

func (m *Model) weekdayHeader() string {
	var b strings.Builder
	for i := 0; i < 7; i++ {
		day := time.Weekday((int(m.weekStart) + i) % 7)
		b.WriteString(fmt.Sprintf("%-*s", dayCellWidth, day.String()[:2]))
	}
	return b.String()
}

func (m *Model) renderStatusBar() string {
	if m.err != nil {
		return errStyle.Render("error: " + m.err.Error())
	}

	mode := "compact"
	if m.mode == Full {
		mode = "full"
	}
	status := fmt.Sprintf("loaded %s to %s · %d reservations · %s · m:mode t:today q:quit",
		m.window.From.Format(agenda.DateLayout),
		m.window.To.Format(agenda.DateLayout),
		len(m.reservations),
		mode,
	)

	bar := statusBarStyle.Render(status)
	if len(m.arrivals) > 0 {
		bar += "\n" + arrivalStyle.Render(fmt.Sprintf("New: %s", strings.Join(m.arrivals, ", ")))
	}
	return bar
}
