package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mara/innkeep/internal/agenda"
	"github.com/mara/innkeep/internal/config"
)

var dbPath string

// cfg holds the loaded configuration; flags still override its values
var cfg = config.Defaults()

var rootCmd = &cobra.Command{
	Use:   "innkeep",
	Short: "Rental operations agenda",
	Long:  "A command-line operations dashboard for short-term-rental management: maintenance tickets, guest reservations, and a scrollable calendar over a local SQLite store",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		agenda.DefaultResolver.WeekStart = cfg.WeekStart
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.local/share/innkeep/innkeep.db)")
}
