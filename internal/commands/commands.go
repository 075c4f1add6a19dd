package commands

import "github.com/google/uuid"

// Command represents a typed command for the GameService executor.
type Command interface {
	CommandID() string
	Name() string
}

// NewID returns a fresh command id.
func NewID() string {
	return uuid.NewString()
}

// SyncState requests a state snapshot without changing game state.
type SyncState struct {
	ID string
}

func (c SyncState) CommandID() string {
	return c.ID
}

func (c SyncState) Name() string {
	return "SyncState"
}

// Click credits one click. X and Y locate the feedback marker relative to
// the click target and do not affect game state.
type Click struct {
	ID   string
	X, Y int
}

func NewClick(x, y int) Click {
	return Click{ID: NewID(), X: x, Y: y}
}

func (c Click) CommandID() string {
	return c.ID
}

func (c Click) Name() string {
	return "Click"
}

// Purchase attempts to buy one unit of an upgrade.
type Purchase struct {
	ID        string
	UpgradeID string
}

func NewPurchase(upgradeID string) Purchase {
	return Purchase{ID: NewID(), UpgradeID: upgradeID}
}

func (c Purchase) CommandID() string {
	return c.ID
}

func (c Purchase) Name() string {
	return "Purchase"
}
