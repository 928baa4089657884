package game

import (
	"log/slog"
	"sort"
	"time"
)

// Tick phase names.
const (
	PhaseInput    = "input"
	PhasePhysics  = "physics"
	PhaseMonsters = "monsters"
	PhaseGoals    = "goals"
	PhaseTick     = "tick" // whole tick, including the phases above
)

// PerfStats tracks wall-clock time per tick phase over a rolling window.
type PerfStats struct {
	samples    map[string][]time.Duration
	maxSamples int
}

// NewPerfStats creates a new performance stats tracker.
func NewPerfStats() *PerfStats {
	return &PerfStats{
		samples:    make(map[string][]time.Duration),
		maxSamples: 120, // ~2 seconds of samples at 60fps
	}
}

// Record adds a duration sample for the named phase.
func (p *PerfStats) Record(name string, d time.Duration) {
	s := append(p.samples[name], d)
	if len(s) > p.maxSamples {
		s = s[1:]
	}
	p.samples[name] = s
}

// Avg returns the average duration for the named phase.
func (p *PerfStats) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Max returns the slowest sample in the window for the named phase.
func (p *PerfStats) Max(name string) time.Duration {
	var worst time.Duration
	for _, d := range p.samples[name] {
		worst = max(worst, d)
	}
	return worst
}

// SortedNames returns phase names sorted by average duration (descending).
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}

// LogValue implements slog.LogValuer for structured logging.
func (p *PerfStats) LogValue() slog.Value {
	names := p.SortedNames()
	attrs := make([]slog.Attr, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, slog.Group(name,
			slog.Duration("avg", p.Avg(name)),
			slog.Duration("max", p.Max(name)),
		))
	}
	return slog.GroupValue(attrs...)
}
