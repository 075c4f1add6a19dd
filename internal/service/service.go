package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"kashko/internal/clock"
	"kashko/internal/commands"
	"kashko/internal/config"
	"kashko/internal/domain"
	"kashko/internal/events"
)

var (
	ErrStopped        = errors.New("game service stopped")
	ErrAlreadyRunning = errors.New("game service already running")
)

// GameService owns the game state. Every mutation runs on the goroutine
// inside Run, one request at a time; callers block until theirs is applied.
type GameService struct {
	cfg     config.Config
	clk     clock.Clock
	log     *slog.Logger
	running atomic.Bool

	reqs  chan request
	notes chan events.Event
	done  chan struct{}

	// Owned by the Run goroutine.
	st      domain.State
	ticker  clock.Ticker
	tickC   <-chan time.Time
	markers map[string]clock.Timer
	pulse   clock.Timer
	pulseN  uint64
	eventN  uint64
}

type request struct {
	apply func()
	done  chan struct{}
}

func NewGameService(cfg config.Config, clk clock.Clock, logger *slog.Logger) *GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameService{
		cfg:     cfg,
		clk:     clk,
		log:     logger,
		reqs:    make(chan request),
		notes:   make(chan events.Event, cfg.NotificationBuffer),
		done:    make(chan struct{}),
		st:      domain.NewState(cfg),
		markers: make(map[string]clock.Timer),
	}
}

// Notifications delivers purchase outcomes and click acknowledgements. The
// channel is closed when Run returns. Events are dropped rather than
// stalling the game when nobody keeps up.
func (s *GameService) Notifications() <-chan events.Event {
	return s.notes
}

// Done is closed once Run has returned.
func (s *GameService) Done() <-chan struct{} {
	return s.done
}

// Run processes requests and ticks until ctx is cancelled. It may be called
// only once.
func (s *GameService) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	s.log.Debug("game service started")
	defer func() {
		s.teardown()
		close(s.done)
		close(s.notes)
		s.log.Debug("game service stopped")
	}()

	tps := s.cfg.TicksPerSecond()
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-s.reqs:
			req.apply()
			if req.done != nil {
				close(req.done)
			}
		case <-s.tickC:
			s.st.Tick(tps)
		}
	}
}

// Execute applies cmd and returns the state as it stands right after.
func (s *GameService) Execute(ctx context.Context, cmd commands.Command) (domain.State, error) {
	var (
		snap   domain.State
		cmdErr error
	)
	var apply func()
	switch c := cmd.(type) {
	case commands.SyncState:
		apply = func() {}
	case commands.Click:
		apply = func() { s.click(c) }
	case commands.Purchase:
		apply = func() { cmdErr = s.purchase(c) }
	default:
		return domain.State{}, fmt.Errorf("execute %s: unsupported command", cmd.Name())
	}

	err := s.do(ctx, func() {
		apply()
		snap = s.st.Clone()
	})
	if err != nil {
		return domain.State{}, err
	}
	return snap, cmdErr
}

// GetState returns a deep copy of the current state.
func (s *GameService) GetState(ctx context.Context) (domain.State, error) {
	return s.Execute(ctx, commands.SyncState{ID: commands.NewID()})
}

func (s *GameService) Click(ctx context.Context, x, y int) (domain.State, error) {
	return s.Execute(ctx, commands.NewClick(x, y))
}

func (s *GameService) Purchase(ctx context.Context, upgradeID string) (domain.State, error) {
	return s.Execute(ctx, commands.NewPurchase(upgradeID))
}

func (s *GameService) do(ctx context.Context, fn func()) error {
	req := request{apply: fn, done: make(chan struct{})}
	select {
	case s.reqs <- req:
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	<-req.done
	return nil
}

// post queues fn from a timer callback. It is a no-op once Run has returned.
func (s *GameService) post(fn func()) {
	select {
	case s.reqs <- request{apply: fn}:
	case <-s.done:
	}
}

func (s *GameService) click(c commands.Click) {
	amount := s.st.Click()

	id := uuid.NewString()
	s.st.AddMarker(domain.Marker{ID: id, X: c.X, Y: c.Y, Amount: amount, CreatedAt: s.clk.Now()})
	s.markers[id] = s.clk.AfterFunc(s.cfg.MarkerTTL, func() {
		s.post(func() { s.expireMarker(id) })
	})

	s.st.Scale = s.cfg.PulseScale
	if s.pulse != nil {
		s.pulse.Stop()
	}
	s.pulseN++
	n := s.pulseN
	s.pulse = s.clk.AfterFunc(s.cfg.PulseDuration, func() {
		s.post(func() { s.endPulse(n) })
	})

	s.emit(c.ID, events.EventTypeClicked, events.ClickedData{MarkerID: id, X: c.X, Y: c.Y, Amount: amount})
}

func (s *GameService) expireMarker(id string) {
	if _, ok := s.markers[id]; !ok {
		return
	}
	delete(s.markers, id)
	s.st.RemoveMarker(id)
}

// endPulse resets the click target scale unless a newer click restarted it.
func (s *GameService) endPulse(n uint64) {
	if n != s.pulseN {
		return
	}
	s.st.Scale = 1
	s.pulse = nil
}

func (s *GameService) purchase(c commands.Purchase) error {
	rec, err := s.st.Purchase(c.UpgradeID, s.cfg.CostGrowth)
	if err != nil {
		s.log.Info("purchase rejected",
			"command_id", c.ID,
			"upgrade", c.UpgradeID,
			"cost", rec.Upgrade.Cost,
			"balance", s.st.Balance,
			"err", err,
		)
		s.emit(c.ID, events.EventTypePurchaseFailed, events.PurchaseFailedData{
			UpgradeID: c.UpgradeID,
			Cost:      rec.Upgrade.Cost,
			Balance:   s.st.Balance,
			Reason:    err,
		})
		return err
	}

	u := rec.Upgrade
	s.log.Info("purchase",
		"command_id", c.ID,
		"upgrade", u.ID,
		"paid", rec.Paid,
		"owned", u.Owned,
		"next_cost", u.Cost,
		"rate", s.st.Rate,
	)
	s.emit(c.ID, events.EventTypePurchaseSucceeded, events.PurchaseSucceededData{
		UpgradeID:    u.ID,
		Name:         u.Name,
		Contribution: u.Contribution,
		Paid:         rec.Paid,
		Owned:        u.Owned,
	})
	s.syncTicker()
	return nil
}

// syncTicker keeps a ticker alive exactly while the accrual rate is positive.
func (s *GameService) syncTicker() {
	switch {
	case s.st.Rate > 0 && s.ticker == nil:
		s.ticker = s.clk.NewTicker(s.cfg.TickPeriod)
		s.tickC = s.ticker.C()
		s.log.Debug("tick timer started", "period", s.cfg.TickPeriod, "rate", s.st.Rate)
	case s.st.Rate <= 0 && s.ticker != nil:
		s.stopTicker()
	}
}

func (s *GameService) stopTicker() {
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	s.ticker = nil
	s.tickC = nil
	s.log.Debug("tick timer stopped")
}

func (s *GameService) teardown() {
	s.stopTicker()
	for id, tm := range s.markers {
		tm.Stop()
		delete(s.markers, id)
	}
	if s.pulse != nil {
		s.pulse.Stop()
		s.pulse = nil
	}
}

func (s *GameService) emit(commandID string, typ events.EventType, data any) {
	s.eventN++
	ev := events.New(s.eventN, s.clk.Now(), commandID, typ, data)
	select {
	case s.notes <- ev:
	default:
		s.log.Debug("notification dropped", "type", typ, "command_id", commandID)
	}
}
