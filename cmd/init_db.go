package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mara/innkeep/internal/db"
)

var initDBForce bool

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize the database schema",
	Long: `Creates the innkeep database and initializes the schema. Safe to run
multiple times - will not overwrite existing data unless --force is given.`,
	RunE: runInitDB,
}

func init() {
	rootCmd.AddCommand(initDBCmd)
	initDBCmd.Flags().BoolVar(&initDBForce, "force", false, "Delete the existing database and recreate it")
}

func runInitDB(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")

	if initDBForce {
		if err := removeDatabase(dbPath); err != nil {
			return err
		}
	}

	// Open with SkipSchemaCheck, then call InitSchema to detect new vs existing
	database, err := db.NewWithOptions(dbPath, db.Options{SkipSchemaCheck: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	created, err := database.InitSchema()
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Database initialized: %s\n", database.Path())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Database already initialized: %s\n", database.Path())
	}

	return nil
}

// removeDatabase deletes the database file and its WAL sidecars
func removeDatabase(dbPath string) error {
	if dbPath == "" {
		return fmt.Errorf("--force requires an explicit --db path")
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(dbPath + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", dbPath+suffix, err)
		}
	}
	return nil
}
