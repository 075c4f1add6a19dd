package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Clock. Tickers and timers fire from inside
// Advance, in deadline order, on the goroutine calling Advance. A tick send
// blocks until the ticker's owner receives it or stops the ticker, so once
// Advance returns every due tick has been handed over.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*fakeWaiter
}

type fakeWaiter struct {
	at     time.Time
	period time.Duration
	fn     func()
	ch     chan time.Time
	done   chan struct{}
	fired  bool
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker period")
	}
	w := &fakeWaiter{period: d, ch: make(chan time.Time), done: make(chan struct{})}
	f.add(w, d)
	return &fakeTicker{f: f, w: w}
}

func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	w := &fakeWaiter{fn: fn}
	f.add(w, d)
	return &fakeTimer{f: f, w: w}
}

// Pending returns the number of live tickers and unfired timers.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.waiters)
}

// Advance moves the clock forward by d, firing everything that comes due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		w := f.next(target)
		if w == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = w.at
		now := f.now
		if w.period > 0 {
			w.at = w.at.Add(w.period)
		} else {
			w.fired = true
			f.remove(w)
		}
		f.mu.Unlock()

		if w.ch != nil {
			select {
			case w.ch <- now:
			case <-w.done:
			}
		} else {
			w.fn()
		}
	}
}

func (f *Fake) add(w *fakeWaiter, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.at = f.now.Add(d)
	f.waiters = append(f.waiters, w)
}

// next returns the earliest waiter due at or before target. Callers hold mu.
func (f *Fake) next(target time.Time) *fakeWaiter {
	var best *fakeWaiter
	for _, w := range f.waiters {
		if w.at.After(target) {
			continue
		}
		if best == nil || w.at.Before(best.at) {
			best = w
		}
	}
	return best
}

// remove drops w from the waiter list and reports whether it was there.
// Callers hold mu.
func (f *Fake) remove(w *fakeWaiter) bool {
	for i, other := range f.waiters {
		if other == w {
			f.waiters = append(f.waiters[:i], f.waiters[i+1:]...)
			return true
		}
	}
	return false
}

type fakeTicker struct {
	f    *Fake
	w    *fakeWaiter
	once sync.Once
}

func (t *fakeTicker) C() <-chan time.Time { return t.w.ch }

func (t *fakeTicker) Stop() {
	t.once.Do(func() {
		t.f.mu.Lock()
		t.f.remove(t.w)
		t.f.mu.Unlock()
		close(t.w.done)
	})
}

type fakeTimer struct {
	f *Fake
	w *fakeWaiter
}

func (t *fakeTimer) Stop() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if t.w.fired {
		return false
	}
	return t.f.remove(t.w)
}
