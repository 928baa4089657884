package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue identifies a sound effect.
type Cue int

const (
	CuePull Cue = iota
	CueWin
	CueLose
	CueSteam
)

func (c Cue) String() string {
	switch c {
	case CuePull:
		return "pull"
	case CueWin:
		return "win"
	case CueLose:
		return "lose"
	case CueSteam:
		return "steam"
	default:
		return "unknown"
	}
}

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSaw
	WaveNoise
)

// Ramp is how a value moves between its start and end over a sound.
type Ramp int

const (
	RampLinear Ramp = iota
	RampExponential
)

func ramp(r Ramp, from, to, frac float64) float64 {
	if r == RampExponential && from > 0 && to > 0 {
		return from * math.Pow(to/from, frac)
	}
	return from + (to-from)*frac
}

// oscillator is an endless tone whose frequency sweeps from one value to
// another over n samples and then holds.
type oscillator struct {
	rate     beep.SampleRate
	wave     Wave
	from, to float64
	sweep    Ramp
	n, pos   int
	phase    float64
	rng      *rand.Rand
}

func newOscillator(rate beep.SampleRate, wave Wave, from, to float64, sweep Ramp, d time.Duration) *oscillator {
	return &oscillator{
		rate:  rate,
		wave:  wave,
		from:  from,
		to:    to,
		sweep: sweep,
		n:     max(rate.N(d), 1),
		rng:   rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		frac := min(float64(o.pos)/float64(o.n), 1)
		o.phase += ramp(o.sweep, o.from, o.to, frac) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope plays the first n samples of s with the gain moving from one value
// to another.
type envelope struct {
	s        beep.Streamer
	from, to float64
	shape    Ramp
	n, pos   int
}

func newEnvelope(s beep.Streamer, rate beep.SampleRate, d time.Duration, from, to float64, shape Ramp) beep.Streamer {
	n := rate.N(d)
	return &envelope{s: beep.Take(n, s), from: from, to: to, shape: shape, n: max(n, 1)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := ramp(e.shape, e.from, e.to, float64(e.pos)/float64(e.n))
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// Note durations.
const (
	pullDuration  = 100 * time.Millisecond
	loseDuration  = 500 * time.Millisecond
	steamDuration = 200 * time.Millisecond
	shortNote     = 100 * time.Millisecond
	longNote      = 400 * time.Millisecond
)

// Duration returns how long a cue plays.
func (c Cue) Duration() time.Duration {
	switch c {
	case CuePull:
		return pullDuration
	case CueWin:
		return 2*shortNote + longNote
	case CueLose:
		return loseDuration
	case CueSteam:
		return steamDuration
	default:
		return 0
	}
}

// NewCue synthesises a cue at the given sample rate and master volume (0..1).
// Each call returns a fresh streamer.
func NewCue(c Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	var s beep.Streamer
	switch c {
	case CuePull:
		// Short rising blip
		osc := newOscillator(rate, WaveSine, 400, 800, RampExponential, pullDuration)
		s = newEnvelope(osc, rate, pullDuration, 0.5, 0.01, RampExponential)
	case CueWin:
		// Ascending C major arpeggio
		notes := []struct {
			freq float64
			d    time.Duration
		}{{523.25, shortNote}, {659.25, shortNote}, {783.99, longNote}}
		parts := make([]beep.Streamer, 0, len(notes))
		for _, n := range notes {
			tone, err := generators.SineTone(rate, n.freq)
			if err != nil {
				return nil, err
			}
			parts = append(parts, newEnvelope(tone, rate, n.d, 0.3, 0.01, RampExponential))
		}
		s = beep.Seq(parts...)
	case CueLose:
		// Descending low saw
		osc := newOscillator(rate, WaveSaw, 150, 50, RampLinear, loseDuration)
		s = newEnvelope(osc, rate, loseDuration, 0.5, 0.01, RampLinear)
	case CueSteam:
		// Hiss with a faint low hum under it
		noise := newOscillator(rate, WaveNoise, 0, 0, RampLinear, steamDuration)
		hum := newOscillator(rate, WaveSine, 90, 60, RampLinear, steamDuration)
		mixed := beep.Mix(withVolume(noise, 0.8), withVolume(hum, 0.2))
		s = newEnvelope(mixed, rate, steamDuration, 0.4, 0, RampLinear)
	default:
		return nil, nil
	}
	return withVolume(s, volume), nil
}

// withVolume scales s by a linear gain. log2(0) is -Inf, so zero is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
