package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mara/innkeep/internal/db"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database information",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	version, err := database.SchemaVersion()
	if err != nil {
		return err
	}
	tickets, err := database.CountTickets()
	if err != nil {
		return err
	}
	reservations, err := database.CountReservations()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Database:       %s\n", database.Path())
	fmt.Fprintf(out, "Schema version: %d\n", version)
	fmt.Fprintf(out, "Tickets:        %d\n", tickets)
	fmt.Fprintf(out, "Reservations:   %d\n", reservations)
	return nil
}
