package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRealClockNow(t *testing.T) {
	clk := RealClock{}
	if clk.Now().IsZero() {
		t.Fatalf("expected non-zero time")
	}
}

func TestRealClockAfterFunc(t *testing.T) {
	done := make(chan struct{})
	RealClock{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timer never fired")
	}
}

func TestFakeClockAdvance(t *testing.T) {
	clk := NewFake(start)

	if !clk.Now().Equal(start) {
		t.Fatalf("expected start time")
	}

	clk.Advance(1500 * time.Millisecond)
	want := start.Add(1500 * time.Millisecond)
	if !clk.Now().Equal(want) {
		t.Fatalf("expected %v got %v", want, clk.Now())
	}
}

func TestFakeAfterFuncFiresOnceInOrder(t *testing.T) {
	clk := NewFake(start)
	var order []string
	clk.AfterFunc(200*time.Millisecond, func() { order = append(order, "late") })
	clk.AfterFunc(100*time.Millisecond, func() { order = append(order, "early") })

	clk.Advance(99 * time.Millisecond)
	assert.Empty(t, order)

	clk.Advance(time.Second)
	assert.Equal(t, []string{"early", "late"}, order)
	assert.Zero(t, clk.Pending())

	clk.Advance(time.Second)
	assert.Len(t, order, 2)
}

func TestFakeTimerStop(t *testing.T) {
	clk := NewFake(start)
	fired := false
	tm := clk.AfterFunc(time.Second, func() { fired = true })

	require.True(t, tm.Stop())
	require.False(t, tm.Stop())
	clk.Advance(2 * time.Second)
	assert.False(t, fired)
}

func TestFakeTimerStopAfterFire(t *testing.T) {
	clk := NewFake(start)
	tm := clk.AfterFunc(time.Second, func() {})
	clk.Advance(time.Second)
	assert.False(t, tm.Stop())
}

func TestFakeTicker(t *testing.T) {
	clk := NewFake(start)
	tk := clk.NewTicker(100 * time.Millisecond)

	var got []time.Time
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ts := range tk.C() {
			got = append(got, ts)
			if len(got) == 3 {
				return
			}
		}
	}()

	clk.Advance(350 * time.Millisecond)
	<-done
	tk.Stop()

	require.Len(t, got, 3)
	for i, ts := range got {
		assert.Equal(t, start.Add(time.Duration(i+1)*100*time.Millisecond), ts)
	}
	assert.Zero(t, clk.Pending())
}

func TestFakeTickerStoppedDoesNotBlockAdvance(t *testing.T) {
	clk := NewFake(start)
	tk := clk.NewTicker(10 * time.Millisecond)
	tk.Stop()
	tk.Stop()

	clk.Advance(time.Second)
	assert.Equal(t, start.Add(time.Second), clk.Now())
}
