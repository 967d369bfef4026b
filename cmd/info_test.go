package cmd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mara/innkeep/internal/db/migrations"
	"github.com/mara/innkeep/pkg/models"
)

func TestInfo_ReportsPathVersionAndCounts(t *testing.T) {
	dbPath, database := newTestDB(t)

	_, err := database.InsertTicket(models.NewTicket("Fix leak", "villa-9", "plumbing"))
	require.NoError(t, err)
	_, err = database.InsertReservation(models.NewReservation("Dana Reyes", "villa-9", models.ChannelDirect))
	require.NoError(t, err)

	output := execute(t, "info", "--db", dbPath)

	assert.Contains(t, output, dbPath)
	assert.Contains(t, output, fmt.Sprintf("Schema version: %d", migrations.Latest))
	assert.Contains(t, output, "Tickets:        1")
	assert.Contains(t, output, "Reservations:   1")
}
