package events

import "time"

// EventType describes the kind of event emitted by the game.
type EventType string

const (
	EventTypeClicked           EventType = "Clicked"
	EventTypePurchaseSucceeded EventType = "PurchaseSucceeded"
	EventTypePurchaseFailed    EventType = "PurchaseFailed"
)

// ClickedData is the payload for a click acknowledgement.
type ClickedData struct {
	MarkerID string
	X, Y     int
	Amount   float64
}

// PurchaseSucceededData names what was bought and what it adds per second.
type PurchaseSucceededData struct {
	UpgradeID    string
	Name         string
	Contribution float64
	Paid         float64
	Owned        int
}

// PurchaseFailedData explains a rejected purchase.
type PurchaseFailedData struct {
	UpgradeID string
	Cost      float64
	Balance   float64
	Reason    error
}

// Event represents a game event produced by command execution.
type Event struct {
	ID        uint64
	At        time.Time
	CommandID string
	Type      EventType
	Data      any
}

// New constructs a new Event with the provided fields.
func New(id uint64, at time.Time, commandID string, eventType EventType, data any) Event {
	return Event{
		ID:        id,
		At:        at,
		CommandID: commandID,
		Type:      eventType,
		Data:      data,
	}
}

// IsNotification reports whether the event is meant for transient display.
func (e Event) IsNotification() bool {
	return e.Type == EventTypePurchaseSucceeded || e.Type == EventTypePurchaseFailed
}
