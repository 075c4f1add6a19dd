package config

import (
	"errors"
	"fmt"
	"time"
)

// UpgradeDef is a static catalog entry. Cost is the price of the first unit.
type UpgradeDef struct {
	ID           string
	Name         string
	Cost         float64
	Contribution float64
	Icon         string
}

type Config struct {
	TickPeriod         time.Duration
	ClickPower         float64
	CostGrowth         float64
	MarkerTTL          time.Duration
	PulseScale         float64
	PulseDuration      time.Duration
	NotificationBuffer int
	Catalog            []UpgradeDef
}

func Default() Config {
	return Config{
		TickPeriod:         100 * time.Millisecond,
		ClickPower:         1,
		CostGrowth:         1.15,
		MarkerTTL:          time.Second,
		PulseScale:         1.2,
		PulseDuration:      100 * time.Millisecond,
		NotificationBuffer: 32,
		Catalog: []UpgradeDef{
			{ID: "cursor", Name: "Toilet Brush", Cost: 15, Contribution: 0.1, Icon: "Brush"},
			{ID: "toilet", Name: "Golden Toilet", Cost: 100, Contribution: 1, Icon: "Home"},
			{ID: "factory", Name: "Factory", Cost: 500, Contribution: 5, Icon: "Factory"},
			{ID: "farm", Name: "Farm", Cost: 2000, Contribution: 20, Icon: "Tractor"},
			{ID: "mine", Name: "Mine", Cost: 10000, Contribution: 100, Icon: "Mountain"},
		},
	}
}

// TicksPerSecond is how many tick sub-steps deliver one second of accrual.
func (c Config) TicksPerSecond() float64 {
	return float64(time.Second) / float64(c.TickPeriod)
}

var ErrInvalid = errors.New("invalid config")

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	if c.TickPeriod <= 0 || c.TickPeriod > time.Second {
		return fmt.Errorf("%w: tick period %v out of range", ErrInvalid, c.TickPeriod)
	}
	if c.ClickPower < 0 {
		return fmt.Errorf("%w: negative click power", ErrInvalid)
	}
	if c.CostGrowth < 1 {
		return fmt.Errorf("%w: cost growth %v below 1", ErrInvalid, c.CostGrowth)
	}
	if c.MarkerTTL <= 0 || c.PulseDuration <= 0 {
		return fmt.Errorf("%w: marker and pulse durations must be positive", ErrInvalid)
	}
	if c.NotificationBuffer < 0 {
		return fmt.Errorf("%w: negative notification buffer", ErrInvalid)
	}
	if len(c.Catalog) == 0 {
		return fmt.Errorf("%w: empty catalog", ErrInvalid)
	}
	seen := make(map[string]struct{}, len(c.Catalog))
	for _, def := range c.Catalog {
		if def.ID == "" {
			return fmt.Errorf("%w: upgrade with empty id", ErrInvalid)
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("%w: duplicate upgrade id %q", ErrInvalid, def.ID)
		}
		seen[def.ID] = struct{}{}
		if def.Cost <= 0 || def.Contribution <= 0 {
			return fmt.Errorf("%w: upgrade %q needs positive cost and contribution", ErrInvalid, def.ID)
		}
	}
	return nil
}
