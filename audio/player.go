// Package audio plays synthesised sound cues for game events.
package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/pinflow/config"
	"github.com/pthm-cable/pinflow/game"
)

// steamGap is the minimum time between two steam cues.
const steamGap = 150 * time.Millisecond

// CueFor maps a game event to its cue.
func CueFor(kind game.EventKind) (Cue, bool) {
	switch kind {
	case game.EventPull:
		return CuePull, true
	case game.EventWin:
		return CueWin, true
	case game.EventLose:
		return CueLose, true
	case game.EventSteam:
		return CueSteam, true
	default:
		return 0, false
	}
}

// Player turns game events into cues. It implements game.Observer.
// Until Start opens the speaker, cues collect on a local mixer so they can be
// inspected without an audio device.
type Player struct {
	mu        sync.Mutex
	rate      beep.SampleRate
	volume    float64
	enabled   bool
	mixer     *beep.Mixer
	started   bool
	now       func() time.Time
	lastSteam time.Time
}

// NewPlayer creates a player from the audio config.
func NewPlayer(cfg config.AudioConfig) *Player {
	return &Player{
		rate:    beep.SampleRate(cfg.SampleRate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		mixer:   &beep.Mixer{},
		now:     time.Now,
	}
}

// Start opens the speaker and begins playing the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || !p.enabled {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return err
	}
	p.mixer.Clear()
	p.started = true
	return nil
}

// Close stops playback.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}

// SetEnabled mutes or unmutes future cues.
func (p *Player) SetEnabled(v bool) {
	p.mu.Lock()
	p.enabled = v
	p.mu.Unlock()
}

// Play queues a cue.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	if c == CueSteam {
		now := p.now()
		if now.Sub(p.lastSteam) < steamGap {
			return
		}
		p.lastSteam = now
	}

	s, err := NewCue(c, p.rate, p.volume)
	if err != nil {
		slog.Error("failed to build cue", "cue", c.String(), "error", err)
		return
	}
	if s == nil {
		return
	}

	if p.started {
		speaker.Play(s)
		return
	}
	p.mixer.Add(s)
}

// Held returns the number of unfinished cues collected while no speaker is
// open.
func (p *Player) Held() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mixer.Len()
}

// OnEvent implements game.Observer.
func (p *Player) OnEvent(e game.Event) {
	if c, ok := CueFor(e.Kind); ok {
		p.Play(c)
	}
}

// OnStateChange implements game.Observer.
func (p *Player) OnStateChange(game.State) {}
