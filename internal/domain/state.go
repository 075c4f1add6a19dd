package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"kashko/internal/config"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
)

// State holds the current in-memory game state.
type State struct {
	Balance    float64
	ClickPower float64
	Rate       float64
	Upgrades   []Upgrade
	Markers    []Marker
	Scale      float64
}

// Upgrade is a catalog entry together with how many units have been bought.
type Upgrade struct {
	ID           string
	Name         string
	Icon         string
	Cost         float64
	Contribution float64
	Owned        int
}

// Marker is the transient "+N" shown where a click landed.
type Marker struct {
	ID        string
	X, Y      int
	Amount    float64
	CreatedAt time.Time
}

// NewState builds the process-start state from cfg.
func NewState(cfg config.Config) State {
	ups := make([]Upgrade, len(cfg.Catalog))
	for i, def := range cfg.Catalog {
		ups[i] = Upgrade{
			ID:           def.ID,
			Name:         def.Name,
			Icon:         def.Icon,
			Cost:         def.Cost,
			Contribution: def.Contribution,
		}
	}
	return State{
		ClickPower: cfg.ClickPower,
		Upgrades:   ups,
		Scale:      1,
	}
}

// Clone returns a deep copy that shares no slices with s.
func (s State) Clone() State {
	c := s
	c.Upgrades = append([]Upgrade(nil), s.Upgrades...)
	c.Markers = append([]Marker(nil), s.Markers...)
	return c
}

// Tick applies one sub-step of passive accrual.
func (s *State) Tick(ticksPerSecond float64) float64 {
	if s.Rate <= 0 {
		return 0
	}
	gain := s.Rate / ticksPerSecond
	s.Balance += gain
	return gain
}

// Click credits one click and returns the amount granted.
func (s *State) Click() float64 {
	s.Balance += s.ClickPower
	return s.ClickPower
}

// Receipt describes one successful purchase. Upgrade is the post-purchase
// entry; Paid is the cost that was debited.
type Receipt struct {
	Upgrade Upgrade
	Paid    float64
}

// Purchase buys one unit of the upgrade with the given id. On error the
// state is untouched.
func (s *State) Purchase(id string, growth float64) (Receipt, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Receipt{}, fmt.Errorf("purchase %q: %w", id, ErrUnknownUpgrade)
	}
	u := &s.Upgrades[i]
	if s.Balance < u.Cost {
		return Receipt{Upgrade: *u}, fmt.Errorf("purchase %q: need %v have %v: %w", id, u.Cost, s.Balance, ErrInsufficientFunds)
	}
	paid := u.Cost
	s.Balance -= paid
	u.Owned++
	u.Cost = math.Floor(paid * growth)
	s.Rate += u.Contribution
	return Receipt{Upgrade: *u, Paid: paid}, nil
}

// Upgrade looks up an upgrade by id.
func (s State) Upgrade(id string) (Upgrade, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Upgrade{}, false
	}
	return s.Upgrades[i], true
}

// ExpectedRate recomputes the accrual rate from owned counts.
func (s State) ExpectedRate() float64 {
	var r float64
	for _, u := range s.Upgrades {
		r += float64(u.Owned) * u.Contribution
	}
	return r
}

func (s *State) AddMarker(m Marker) {
	s.Markers = append(s.Markers, m)
}

// RemoveMarker drops the marker with the given id and reports whether it existed.
func (s *State) RemoveMarker(id string) bool {
	for i, m := range s.Markers {
		if m.ID == id {
			s.Markers = append(s.Markers[:i], s.Markers[i+1:]...)
			return true
		}
	}
	return false
}

func (s State) indexOf(id string) int {
	for i, u := range s.Upgrades {
		if u.ID == id {
			return i
		}
	}
	return -1
}
