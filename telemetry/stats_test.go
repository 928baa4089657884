package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeTimeStats(t *testing.T) {
	ts := ComputeTimeStats([]float64{40, 20, 30, 10})

	if ts.Count != 4 {
		t.Errorf("count = %d, want 4", ts.Count)
	}
	if math.Abs(ts.Mean-25) > 0.001 {
		t.Errorf("mean = %v, want 25", ts.Mean)
	}
	// Sample std of 10,20,30,40
	if math.Abs(ts.Std-12.9099) > 0.001 {
		t.Errorf("std = %v, want ~12.91", ts.Std)
	}
	if math.Abs(ts.P50-25) > 0.001 {
		t.Errorf("p50 = %v, want 25", ts.P50)
	}
}

func TestComputeTimeStatsEdges(t *testing.T) {
	if ts := ComputeTimeStats(nil); ts != (TimeStats{}) {
		t.Errorf("empty = %+v, want zero", ts)
	}
	ts := ComputeTimeStats([]float64{7})
	if ts.Mean != 7 || ts.Std != 0 || ts.P90 != 7 {
		t.Errorf("single = %+v", ts)
	}
}

func TestSummarize(t *testing.T) {
	won, lost := 30.0, 12.0
	sessions := []Session{
		{LevelID: 1, CompletionTime: &won, Success: true, ResetCount: 2, PinPullSequence: []int{1, 2}},
		{LevelID: 1, CompletionTime: &lost, ResetCount: 1, PinPullSequence: []int{2}},
		{LevelID: 2}, // unfinished
	}

	s := Summarize(sessions)
	if s.Sessions != 2 || s.Wins != 1 || s.Losses != 1 {
		t.Errorf("summary = %+v", s)
	}
	if s.Resets != 3 || s.Pulls != 3 {
		t.Errorf("resets = %d pulls = %d, want 3 and 3", s.Resets, s.Pulls)
	}
	if s.WinTimes.Count != 1 || s.WinTimes.Mean != 30 {
		t.Errorf("win times = %+v", s.WinTimes)
	}
}
