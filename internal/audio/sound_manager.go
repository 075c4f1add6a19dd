package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"kashko/internal/events"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a short sound tied to a game event.
type Cue int

const (
	CueClick Cue = iota
	CuePurchase
	CueError
)

// CueFor maps an engine event to the cue that should accompany it.
func CueFor(ev events.Event) (Cue, bool) {
	switch ev.Type {
	case events.EventTypeClicked:
		return CueClick, true
	case events.EventTypePurchaseSucceeded:
		return CuePurchase, true
	case events.EventTypePurchaseFailed:
		return CueError, true
	}
	return 0, false
}

// SoundManager plays cues through the system speaker. Until Initialize
// succeeds every Play is silently dropped, so the game runs fine without
// an audio device.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play queues cue on the mixer.
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := Streamer(cue, sampleRate)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup silences everything queued. beep has no speaker close, so the
// device stays open until exit.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}
