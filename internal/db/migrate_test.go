package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrationsEmbedded(t *testing.T) {
	names, err := pendingMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_init.up.sql", names[0])

	b, err := migrationsFS.ReadFile("migrations/" + names[0])
	require.NoError(t, err)
	for _, table := range []string{"users", "listings", "bookings", "payments", "audit_logs"} {
		assert.Contains(t, string(b), "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, string(b), "ON DELETE SET NULL")
}
