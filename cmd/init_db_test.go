package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mara/innkeep/internal/db"
	"github.com/mara/innkeep/pkg/models"
)

func resetInitDBFlags() {
	initDBForce = false
}

func TestInitDB_CreatesThenReportsExisting(t *testing.T) {
	resetInitDBFlags()
	dbPath := filepath.Join(t.TempDir(), "innkeep.db")

	output := execute(t, "init-db", "--db", dbPath)
	assert.Contains(t, output, "Database initialized")
	assert.Contains(t, output, dbPath)

	output = execute(t, "init-db", "--db", dbPath)
	assert.Contains(t, output, "Database already initialized")
}

func TestInitDB_ForceRecreates(t *testing.T) {
	resetInitDBFlags()
	dbPath, database := newTestDB(t)

	_, err := database.InsertTicket(models.NewTicket("Fix leak", "villa-9", "plumbing"))
	require.NoError(t, err)
	database.Close()

	output := execute(t, "init-db", "--force", "--db", dbPath)
	assert.Contains(t, output, "Database initialized")

	fresh, err := db.New(dbPath)
	require.NoError(t, err)
	defer fresh.Close()

	count, err := fresh.CountTickets()
	require.NoError(t, err)
	assert.Zero(t, count, "--force must drop existing data")
}
