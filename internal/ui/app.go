// Package ui is the terminal front-end. It renders engine snapshots and
// turns mouse and key input into click and purchase intents.
package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"kashko/internal/audio"
	"kashko/internal/clock"
	"kashko/internal/domain"
	"kashko/internal/events"
	"kashko/internal/format"
	"kashko/internal/service"
)

const (
	frameInterval = 50 * time.Millisecond
	toastFrames   = 40
	maxToasts     = 3
)

// Engine is the part of the game service the UI drives.
type Engine interface {
	GetState(ctx context.Context) (domain.State, error)
	Click(ctx context.Context, x, y int) (domain.State, error)
	Purchase(ctx context.Context, upgradeID string) (domain.State, error)
	Notifications() <-chan events.Event
}

// Sounds plays audio cues.
type Sounds interface {
	Play(audio.Cue)
}

type App struct {
	screen tcell.Screen
	eng    Engine
	sounds Sounds
	clk    clock.Clock
	log    *slog.Logger

	st      domain.State
	lay     layout
	toasts  toastQueue
	buttons tcell.ButtonMask
}

// New builds an App on an initialised screen. sounds may be nil.
func New(screen tcell.Screen, eng Engine, sounds Sounds, clk clock.Clock, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		screen: screen,
		eng:    eng,
		sounds: sounds,
		clk:    clk,
		log:    logger,
		toasts: toastQueue{max: maxToasts},
	}
}

// Run draws frames and dispatches input until the user quits, ctx is
// cancelled, or the engine stops. The caller owns the screen and must Fini
// it afterwards.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.screen.HideCursor()
	if err := a.refresh(ctx); err != nil {
		return err
	}
	a.resize()

	input := make(chan tcell.Event)
	go func() {
		defer close(input)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case input <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	frames := a.clk.NewTicker(frameInterval)
	defer frames.Stop()
	notes := a.eng.Notifications()

	a.render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-input:
			if !ok {
				return nil
			}
			quit, err := a.handle(ctx, ev)
			if err != nil || quit {
				return err
			}
		case ev, ok := <-notes:
			if !ok {
				return nil
			}
			a.notify(ev)
		case <-frames.C():
			a.toasts.tick()
			if err := a.refresh(ctx); err != nil {
				return err
			}
		}
		a.render()
	}
}

func (a *App) refresh(ctx context.Context) error {
	st, err := a.eng.GetState(ctx)
	if err != nil {
		return stopErr(err)
	}
	a.st = st
	return nil
}

func (a *App) resize() {
	w, h := a.screen.Size()
	a.lay = computeLayout(w, h, len(a.st.Upgrades))
}

func (a *App) render() {
	draw(a.screen, view{st: a.st, lay: a.lay, toasts: a.toasts.items, now: a.clk.Now()})
}

// handle applies one input event and reports whether the user asked to quit.
func (a *App) handle(ctx context.Context, ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
	case *tcell.EventKey:
		return a.handleKey(ctx, ev)
	case *tcell.EventMouse:
		return false, a.handleMouse(ctx, ev)
	}
	return false, nil
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyEnter:
		return false, a.clickCenter(ctx)
	case tcell.KeyRune:
	default:
		return false, nil
	}

	switch r := ev.Rune(); {
	case r == 'q' || r == 'Q':
		return true, nil
	case r == ' ':
		return false, a.clickCenter(ctx)
	case r >= '1' && r <= '9':
		return false, a.buy(ctx, int(r-'1'))
	}
	return false, nil
}

// handleMouse acts on button-1 presses only, not on held or dragged buttons.
func (a *App) handleMouse(ctx context.Context, ev *tcell.EventMouse) error {
	prev := a.buttons
	a.buttons = ev.Buttons()
	if a.buttons&tcell.Button1 == 0 || prev&tcell.Button1 != 0 {
		return nil
	}

	x, y := ev.Position()
	if tx, ty, ok := a.lay.hitTarget(x, y); ok {
		return a.click(ctx, tx, ty)
	}
	if i := a.lay.hitUpgrade(x, y); i >= 0 {
		return a.buy(ctx, i)
	}
	return nil
}

func (a *App) clickCenter(ctx context.Context) error {
	cx, cy := a.lay.target.center()
	return a.click(ctx, cx-a.lay.target.X, cy-a.lay.target.Y)
}

func (a *App) click(ctx context.Context, x, y int) error {
	st, err := a.eng.Click(ctx, x, y)
	if err != nil {
		return stopErr(err)
	}
	a.st = st
	return nil
}

func (a *App) buy(ctx context.Context, index int) error {
	if index < 0 || index >= len(a.st.Upgrades) {
		return nil
	}
	st, err := a.eng.Purchase(ctx, a.st.Upgrades[index].ID)
	switch {
	case err == nil:
		a.st = st
	case errors.Is(err, domain.ErrInsufficientFunds), errors.Is(err, domain.ErrUnknownUpgrade):
		// The engine reports the rejection as a notification.
	default:
		return stopErr(err)
	}
	return nil
}

// notify turns an engine event into a sound and, for purchases, a toast.
func (a *App) notify(ev events.Event) {
	if a.sounds != nil {
		if cue, ok := audio.CueFor(ev); ok {
			a.sounds.Play(cue)
		}
	}
	if t, ok := toastFor(ev); ok {
		a.toasts.push(t)
	}
}

func toastFor(ev events.Event) (toast, bool) {
	switch data := ev.Data.(type) {
	case events.PurchaseSucceededData:
		return toast{
			Title:      "Bought: " + data.Name + "!",
			Detail:     format.Contribution(data.Contribution),
			Severity:   ToastSuccess,
			FramesLeft: toastFrames,
		}, true
	case events.PurchaseFailedData:
		title := "Not enough Kashko coins!"
		if errors.Is(data.Reason, domain.ErrUnknownUpgrade) {
			title = "No such upgrade"
		}
		return toast{Title: title, Severity: ToastError, FramesLeft: toastFrames}, true
	}
	return toast{}, false
}

// stopErr treats a stopped engine as a normal exit.
func stopErr(err error) error {
	if errors.Is(err, service.ErrStopped) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
