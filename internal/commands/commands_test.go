package commands

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStateCommand(t *testing.T) {
	cmd := SyncState{ID: "sync-1"}
	if cmd.CommandID() != "sync-1" {
		t.Fatalf("expected CommandID sync-1 got %s", cmd.CommandID())
	}
	if cmd.Name() != "SyncState" {
		t.Fatalf("expected name SyncState got %s", cmd.Name())
	}
}

func TestClickCommand(t *testing.T) {
	cmd := NewClick(3, 4)
	_, err := uuid.Parse(cmd.CommandID())
	require.NoError(t, err)
	assert.Equal(t, "Click", cmd.Name())
	assert.Equal(t, 3, cmd.X)
	assert.Equal(t, 4, cmd.Y)
}

func TestPurchaseCommand(t *testing.T) {
	cmd := NewPurchase("farm")
	_, err := uuid.Parse(cmd.CommandID())
	require.NoError(t, err)
	assert.Equal(t, "Purchase", cmd.Name())
	assert.Equal(t, "farm", cmd.UpgradeID)
}

func TestIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
