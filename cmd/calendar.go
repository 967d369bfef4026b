package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/mara/innkeep/internal/agenda/tui"
	"github.com/mara/innkeep/internal/db"
)

var calendarFull bool

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Browse reservations in a scrollable calendar",
	Long: `Open an interactive calendar of reservations keyed by checkout day.
Scrolling toward the edge of the loaded date range fetches more data
automatically; 'm' toggles between compact and full layouts.`,
	RunE: runCalendar,
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVar(&calendarFull, "full", false, "Start in the full (quarter) layout")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	lipgloss.SetColorProfile(termenv.ColorProfile())

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	model := tui.New(database,
		tui.WithWeekStart(cfg.WeekStart),
		tui.WithExpansion(cfg.BufferDays, cfg.ExpansionDays),
		tui.WithRefreshInterval(cfg.PollInterval),
	)
	if calendarFull {
		model.SetMode(tui.Full)
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("calendar error: %w", err)
	}
	return nil
}
