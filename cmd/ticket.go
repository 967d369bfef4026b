package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mara/innkeep/internal/agenda"
	"github.com/mara/innkeep/internal/db"
	"github.com/mara/innkeep/pkg/models"
)

var (
	ticketAddDescription string
	ticketAddProperty    string
	ticketAddCategory    string
	ticketAddAssignee    string
	ticketAddDate        string
	ticketAddSlot        string

	ticketListFilters filterFlags
	ticketPageSize    int
	ticketPages       int
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Manage maintenance tickets",
	Long:  "Create, list, and close maintenance tickets for your properties",
}

var ticketAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a maintenance ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketAdd,
}

var ticketListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the maintenance agenda",
	Long:  "Display tickets grouped by their desired work day, filtered by period and facets, revealed a page at a time",
	RunE:  runTicketList,
}

var ticketDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a ticket as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTicketDone,
}

func init() {
	rootCmd.AddCommand(ticketCmd)
	ticketCmd.AddCommand(ticketAddCmd)
	ticketCmd.AddCommand(ticketListCmd)
	ticketCmd.AddCommand(ticketDoneCmd)

	ticketAddCmd.Flags().StringVar(&ticketAddDescription, "description", "", "Longer description of the work")
	ticketAddCmd.Flags().StringVar(&ticketAddProperty, "property", "", "Property the work is for (required)")
	ticketAddCmd.Flags().StringVar(&ticketAddCategory, "category", "general", "Work category (plumbing, hvac, cleaning, ...)")
	ticketAddCmd.Flags().StringVar(&ticketAddAssignee, "assignee", "", "Who the work is assigned to")
	ticketAddCmd.Flags().StringVar(&ticketAddDate, "date", "", "Desired work day (YYYY-MM-DD)")
	ticketAddCmd.Flags().StringVar(&ticketAddSlot, "slot", "", "Time slot on the desired day (HH:MM)")
	ticketAddCmd.MarkFlagRequired("property")

	ticketListFilters.register(ticketListCmd, true)
	ticketListCmd.Flags().IntVar(&ticketPageSize, "page-size", 0, "Items revealed per page (default from config)")
	ticketListCmd.Flags().IntVar(&ticketPages, "pages", 1, "Number of pages to reveal")
}

func runTicketAdd(cmd *cobra.Command, args []string) error {
	ticket := models.NewTicket(args[0], ticketAddProperty, ticketAddCategory)
	ticket.Description = ticketAddDescription
	ticket.Assignee = ticketAddAssignee

	if ticketAddDate != "" {
		if _, err := time.Parse(agenda.DateLayout, ticketAddDate); err != nil {
			return fmt.Errorf("invalid --date %q: use YYYY-MM-DD", ticketAddDate)
		}
		date := ticketAddDate
		ticket.DesiredDate = &date

		if ticketAddSlot != "" {
			slot, err := time.ParseInLocation(agenda.DateLayout+" 15:04", ticketAddDate+" "+ticketAddSlot, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --slot %q: use HH:MM", ticketAddSlot)
			}
			scheduledAt := slot.Unix()
			ticket.ScheduledAt = &scheduledAt
		}
	} else if ticketAddSlot != "" {
		return fmt.Errorf("--slot requires --date")
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	id, err := database.InsertTicket(ticket)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created ticket #%d (%s)\n", id, ticket.Code)
	return nil
}

func runTicketList(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	tickets, err := database.ListTickets()
	if err != nil {
		return fmt.Errorf("failed to query tickets: %w", err)
	}

	criteria := ticketListFilters.criteria()
	groups := agenda.Group(tickets, criteria, time.Now(), agenda.TicketAdapter())

	pageSize := ticketPageSize
	if pageSize <= 0 {
		pageSize = cfg.PageSize
	}
	pager := agenda.NewPager(pageSize)
	pager.Sync(criteria.Signature())
	total := agenda.TotalItems(groups)
	for i := 1; i < ticketPages; i++ {
		pager.LoadMore(total)
	}

	result := agenda.Page(groups, pager.DisplayCount())
	fmt.Fprint(cmd.OutOrStdout(), formatTicketAgenda(result))
	return nil
}

func runTicketDone(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ticket id %q", args[0])
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := database.UpdateTicketStatus(id, models.TicketDone); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ticket #%d marked done\n", id)
	return nil
}

// formatTicketAgenda renders day-bucketed tickets with a pagination footer
func formatTicketAgenda(result agenda.PageResult[*models.Ticket]) string {
	var sb strings.Builder

	shown := 0
	for _, group := range result.Visible {
		sb.WriteString(formatDayHeader(group.Key))
		sb.WriteString("\n")
		for _, ticket := range group.Items {
			sb.WriteString(formatTicketRow(ticket))
			sb.WriteString("\n")
			shown++
		}
		sb.WriteString("\n")
	}

	if result.TotalItems == 0 {
		sb.WriteString("No tickets match the current filters.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Showing %d of %d tickets", shown, result.TotalItems))
	if result.HasMore {
		sb.WriteString(" (increase --pages to reveal more)")
	}
	sb.WriteString("\n")
	return sb.String()
}

func formatDayHeader(key agenda.DateKey) string {
	if key == agenda.UndatedKey {
		return "Unscheduled"
	}
	t, ok := key.Time(time.Local)
	if !ok {
		return string(key)
	}
	return t.Format("Monday, January 2 2006")
}

func formatTicketRow(t *models.Ticket) string {
	slot := "     "
	if t.ScheduledAt != nil {
		slot = time.Unix(*t.ScheduledAt, 0).Format("15:04")
	}
	assignee := t.Assignee
	if assignee == "" {
		assignee = "-"
	}
	return fmt.Sprintf("  #%-4d %s  %-11s %-12s %-10s %s",
		t.ID, slot, t.Status, t.Property, assignee, t.Title)
}
