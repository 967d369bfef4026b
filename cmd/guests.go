package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosuri/uitable"
	"github.com/ncruces/go-strftime"
	"github.com/spf13/cobra"

	"github.com/mara/innkeep/internal/agenda"
	"github.com/mara/innkeep/internal/db"
	"github.com/mara/innkeep/pkg/models"
)

var (
	guestsAddProperty string
	guestsAddChannel  string
	guestsAddCheckIn  string
	guestsAddCheckOut string
	guestsAddCount    int

	guestsListFilters filterFlags
	guestsChannel     string
	guestsPageSize    int
	guestsPages       int
	guestsDateFormat  string
)

var guestsCmd = &cobra.Command{
	Use:   "guests",
	Short: "Manage guest reservations",
	Long:  "Create and browse guest reservations grouped by checkout day",
}

var guestsAddCmd = &cobra.Command{
	Use:   "add <guest name>",
	Short: "Record a reservation",
	Args:  cobra.ExactArgs(1),
	RunE:  runGuestsAdd,
}

var guestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the guest agenda",
	Long:  "Display reservations grouped by checkout day, filtered by period and facets, revealed a page at a time",
	RunE:  runGuestsList,
}

func init() {
	rootCmd.AddCommand(guestsCmd)
	guestsCmd.AddCommand(guestsAddCmd)
	guestsCmd.AddCommand(guestsListCmd)

	guestsAddCmd.Flags().StringVar(&guestsAddProperty, "property", "", "Property being booked (required)")
	guestsAddCmd.Flags().StringVar(&guestsAddChannel, "channel", models.ChannelDirect, "Booking channel (airbnb, booking, direct)")
	guestsAddCmd.Flags().StringVar(&guestsAddCheckIn, "check-in", "", "Check-in day (YYYY-MM-DD)")
	guestsAddCmd.Flags().StringVar(&guestsAddCheckOut, "check-out", "", "Check-out day (YYYY-MM-DD)")
	guestsAddCmd.Flags().IntVar(&guestsAddCount, "guests", 1, "Number of guests")
	guestsAddCmd.MarkFlagRequired("property")

	guestsListFilters.register(guestsListCmd, false)
	guestsListCmd.Flags().StringVar(&guestsChannel, "channel", "all", "Filter by booking channel")
	guestsListCmd.Flags().IntVar(&guestsPageSize, "page-size", 0, "Items revealed per page (default from config)")
	guestsListCmd.Flags().IntVar(&guestsPages, "pages", 1, "Number of pages to reveal")
	guestsListCmd.Flags().StringVarP(&guestsDateFormat, "time-format", "t", "", "Custom day header format (strftime)")
}

func runGuestsAdd(cmd *cobra.Command, args []string) error {
	res := models.NewReservation(args[0], guestsAddProperty, guestsAddChannel)
	res.Guests = guestsAddCount

	for flag, value := range map[string]string{"check-in": guestsAddCheckIn, "check-out": guestsAddCheckOut} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(agenda.DateLayout, value); err != nil {
			return fmt.Errorf("invalid --%s %q: use YYYY-MM-DD", flag, value)
		}
	}
	if guestsAddCheckIn != "" {
		res.CheckIn = &guestsAddCheckIn
	}
	if guestsAddCheckOut != "" {
		res.CheckOut = &guestsAddCheckOut
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	id, err := database.InsertReservation(res)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created reservation #%d (%s)\n", id, res.Code)
	return nil
}

func runGuestsList(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	reservations, err := database.ListReservations()
	if err != nil {
		return fmt.Errorf("failed to query reservations: %w", err)
	}

	criteria := guestsListFilters.criteria()
	// The booking channel rides the category facet for reservations
	criteria.Category = guestsChannel

	groups := agenda.Group(reservations, criteria, time.Now(), agenda.ReservationAdapter())

	pageSize := guestsPageSize
	if pageSize <= 0 {
		pageSize = cfg.PageSize
	}
	pager := agenda.NewPager(pageSize)
	pager.Sync(criteria.Signature())
	total := agenda.TotalItems(groups)
	for i := 1; i < guestsPages; i++ {
		pager.LoadMore(total)
	}

	result := agenda.Page(groups, pager.DisplayCount())
	fmt.Fprint(cmd.OutOrStdout(), formatGuestAgenda(result, guestsDateFormat))
	return nil
}

// formatGuestAgenda renders checkout-day buckets as aligned tables
func formatGuestAgenda(result agenda.PageResult[*models.Reservation], dateFormat string) string {
	var sb strings.Builder

	shown := 0
	for _, group := range result.Visible {
		sb.WriteString(formatGuestDayHeader(group.Key, dateFormat))
		sb.WriteString("\n")

		table := uitable.New()
		table.AddRow("  ID", "GUEST", "PROPERTY", "STAY", "CHANNEL", "STATUS")
		for _, res := range group.Items {
			table.AddRow(
				fmt.Sprintf("  #%d", res.ID),
				res.GuestName,
				res.Property,
				formatStay(res),
				res.Channel,
				res.Status,
			)
			shown++
		}
		sb.WriteString(table.String())
		sb.WriteString("\n\n")
	}

	if result.TotalItems == 0 {
		sb.WriteString("No reservations match the current filters.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Showing %d of %d reservations", shown, result.TotalItems))
	if result.HasMore {
		sb.WriteString(" (increase --pages to reveal more)")
	}
	sb.WriteString("\n")
	return sb.String()
}

// formatGuestDayHeader renders a checkout-day header, honoring a custom
// strftime format when one is set
func formatGuestDayHeader(key agenda.DateKey, dateFormat string) string {
	if key == agenda.UndatedKey {
		return "No checkout date"
	}
	t, ok := key.Time(time.Local)
	if !ok {
		return string(key)
	}
	if dateFormat != "" {
		return strftime.Format(dateFormat, t)
	}
	return t.Format("Monday, January 2 2006")
}

func formatStay(r *models.Reservation) string {
	checkIn := "?"
	if r.CheckIn != nil {
		checkIn = *r.CheckIn
	}
	checkOut := "?"
	if r.CheckOut != nil {
		checkOut = *r.CheckOut
	}
	return checkIn + " → " + checkOut
}
