package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mara/innkeep/internal/agenda"
	"github.com/mara/innkeep/internal/db"
	"github.com/mara/innkeep/pkg/models"
)

var (
	watchFilters    filterFlags
	watchChannel    string
	watchInterval   time.Duration
	watchIterations int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for new reservations",
	Long: `Poll the database and announce reservations that newly match the
current filters. The first poll seeds silently; only arrivals on later
polls are announced, and changing filters never replays the whole set.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchFilters.register(watchCmd, false)
	watchCmd.Flags().StringVar(&watchChannel, "channel", "all", "Filter by booking channel")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Poll interval (default from config)")
	watchCmd.Flags().IntVar(&watchIterations, "iterations", 0, "Stop after this many polls (0 = run until interrupted)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	interval := watchInterval
	if interval <= 0 {
		interval = cfg.PollInterval
	}

	criteria := watchFilters.criteria()
	criteria.Category = watchChannel
	signature := criteria.Signature()

	useColor := isTerminal(cmd.OutOrStdout())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	registry := agenda.Registry{}
	for i := 0; ; i++ {
		if watchIterations > 0 && i >= watchIterations {
			return nil
		}
		if i > 0 {
			select {
			case <-cmd.Context().Done():
				return nil
			case <-ticker.C:
			}
		}

		newItems, next, err := pollReservations(database, criteria, signature, registry)
		if err != nil {
			return err
		}
		registry = next

		for _, res := range newItems {
			fmt.Fprintln(cmd.OutOrStdout(), formatArrival(res, useColor))
		}
	}
}

// pollReservations runs one watch tick: query, filter through the
// agenda pipeline, and diff against the registry
func pollReservations(database *db.DB, criteria agenda.Criteria, signature string, registry agenda.Registry) ([]*models.Reservation, agenda.Registry, error) {
	reservations, err := database.ListReservations()
	if err != nil {
		return nil, registry, fmt.Errorf("failed to query reservations: %w", err)
	}

	// Change detection is scoped to the filtered set so an entity
	// entering the filter window counts as an arrival
	groups := agenda.Group(reservations, criteria, time.Now(), agenda.ReservationAdapter())
	var matching []*models.Reservation
	for _, g := range groups {
		matching = append(matching, g.Items...)
	}

	newItems, next := agenda.DetectNew(matching, registry, signature, func(r *models.Reservation) int64 { return r.ID })
	return newItems, next, nil
}

// formatArrival renders one new-reservation announcement
func formatArrival(r *models.Reservation, useColor bool) string {
	line := fmt.Sprintf("New reservation: %s at %s (%s, %s)",
		r.GuestName, r.Property, formatStay(r), r.Channel)
	if !useColor {
		return line
	}
	return color.New(color.FgGreen, color.Bold).Sprint(line)
}
