package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TimeStats summarizes a set of completion times in seconds.
type TimeStats struct {
	Count int     `csv:"count"`
	Mean  float64 `csv:"mean"`
	Std   float64 `csv:"std"`
	P50   float64 `csv:"p50"`
	P90   float64 `csv:"p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeTimeStats calculates mean, sample standard deviation and
// percentiles. A single value has zero spread.
func ComputeTimeStats(values []float64) TimeStats {
	n := len(values)
	if n == 0 {
		return TimeStats{}
	}

	ts := TimeStats{Count: n}
	if n == 1 {
		ts.Mean = values[0]
	} else {
		ts.Mean, ts.Std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	ts.P50 = Percentile(sorted, 0.50)
	ts.P90 = Percentile(sorted, 0.90)
	return ts
}

// LogValue implements slog.LogValuer for structured logging.
func (s TimeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("count", s.Count),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
	)
}

// Summary counts outcomes across finished sessions.
type Summary struct {
	Sessions int
	Wins     int
	Losses   int
	Resets   int
	Pulls    int
	WinTimes TimeStats
}

// Summarize aggregates sessions. Unfinished sessions are skipped.
func Summarize(sessions []Session) Summary {
	var s Summary
	var times []float64
	for i := range sessions {
		ss := &sessions[i]
		if !ss.Finished() {
			continue
		}
		s.Sessions++
		s.Resets += ss.ResetCount
		s.Pulls += len(ss.PinPullSequence)
		if ss.Success {
			s.Wins++
			times = append(times, *ss.CompletionTime)
		} else {
			s.Losses++
		}
	}
	s.WinTimes = ComputeTimeStats(times)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("sessions", s.Sessions),
		slog.Int("wins", s.Wins),
		slog.Int("losses", s.Losses),
		slog.Int("resets", s.Resets),
		slog.Int("pulls", s.Pulls),
		slog.Any("win_times", s.WinTimes),
	)
}

// LogSummary logs the summary at info level.
func (s Summary) LogSummary() {
	slog.Info("sessions", "summary", s)
}
