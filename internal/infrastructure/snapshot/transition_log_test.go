package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testLog(t *testing.T) *GormTransitionLog {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:transition_log_test?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&TransitionEvent{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM transition_events")
	})
	return NewGormTransitionLog(db)
}

func TestLogAndReadBack(t *testing.T) {
	log := testLog(t)
	ctx := context.Background()

	events := []TransitionEvent{
		{EscrowID: "e1", RequestID: "r1", Action: "PAY_DEPOSIT", OldStatus: "PENDING_PAYMENT", NewStatus: "PARTIALLY_FUNDED", ActorRole: "WHOLESALER", Source: "client"},
		{EscrowID: "e1", RequestID: "r2", Action: "MARK_READY_TO_HARVEST", OldStatus: "PARTIALLY_FUNDED", NewStatus: "READY_TO_HARVEST", ActorRole: "FARMER", Source: "client"},
		{EscrowID: "e2", RequestID: "r3", Action: "EXTERNAL", OldStatus: "DISPUTED", NewStatus: "REFUNDED", Source: "watcher"},
	}
	for _, event := range events {
		require.NoError(t, log.LogTransition(ctx, event))
	}

	recent, err := log.RecentTransitions(ctx, "e1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "MARK_READY_TO_HARVEST", recent[0].Action, "latest first")
	assert.Equal(t, "PAY_DEPOSIT", recent[1].Action)
	assert.False(t, recent[0].Timestamp.IsZero())

	recent, err = log.RecentTransitions(ctx, "e1", 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "r2", recent[0].RequestID)
}
