// Package analytics aggregates exported playtest sessions per level and flags
// levels whose completion or reset numbers suggest a difficulty problem.
package analytics

import (
	"slices"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/pinflow/telemetry"
)

// Severity ranks how urgently a level needs attention.
type Severity string

const (
	SeverityNone   Severity = ""
	SeverityYellow Severity = "yellow"
	SeverityRed    Severity = "red"
)

// Flag labels.
const (
	FlagLowCompletion    = "Low Completion"
	FlagHighResets       = "High Resets"
	FlagMediumCompletion = "Medium Completion"
	FlagElevatedResets   = "Elevated Resets"
)

// Thresholds decide when a level is flagged. Yellow checks only run for
// levels with no red flag.
type Thresholds struct {
	RedCompletionRate    float64 // flag below this rate
	RedAvgResets         float64 // flag above this many resets per attempt
	YellowCompletionRate float64
	YellowAvgResets      float64
}

// DefaultThresholds returns the thresholds used by the analysis tool.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RedCompletionRate:    0.5,
		RedAvgResets:         10,
		YellowCompletionRate: 0.7,
		YellowAvgResets:      7,
	}
}

// Flags is a list of flag labels. It is written to CSV joined with "; ".
type Flags []string

// MarshalCSV implements gocsv.TypeMarshaller.
func (f Flags) MarshalCSV() (string, error) {
	return strings.Join(f, "; "), nil
}

// String joins the labels with ", ".
func (f Flags) String() string {
	return strings.Join(f, ", ")
}

// LevelStats aggregates the sessions of one level.
type LevelStats struct {
	LevelID        int      `csv:"level_id"`
	Attempts       int      `csv:"attempts"`
	Completions    int      `csv:"completions"`
	DropOffs       int      `csv:"drop_offs"`
	TotalTime      float64  `csv:"total_time"`
	AvgTime        float64  `csv:"avg_time"` // over completions only
	AvgResets      float64  `csv:"avg_resets"`
	CompletionRate float64  `csv:"completion_rate"`
	DropOffRate    float64  `csv:"drop_off_rate"`
	Severity       Severity `csv:"severity"`
	Flags          Flags    `csv:"flags"`
}

// Report is the result of analysing one or more metrics documents.
type Report struct {
	Generated time.Time
	Players   []string // unique player ids, sorted
	Sessions  int
	Levels    []LevelStats // ordered by level id
}

// Analyze aggregates every session in docs by level.
// A session counts as a completion only if it succeeded with a completion
// time; every other session is a drop-off.
func Analyze(docs []telemetry.Metrics, th Thresholds, now time.Time) Report {
	type acc struct {
		times  []float64
		resets []float64
	}
	byLevel := make(map[int]*acc)
	players := make(map[string]struct{})
	r := Report{Generated: now}

	for _, doc := range docs {
		players[doc.PlayerID] = struct{}{}
		for _, s := range doc.Sessions {
			r.Sessions++
			a, ok := byLevel[s.LevelID]
			if !ok {
				a = &acc{}
				byLevel[s.LevelID] = a
			}
			a.resets = append(a.resets, float64(s.ResetCount))
			if s.Success && s.CompletionTime != nil {
				a.times = append(a.times, *s.CompletionTime)
			}
		}
	}

	for id := range players {
		r.Players = append(r.Players, id)
	}
	slices.Sort(r.Players)

	for id, a := range byLevel {
		ls := LevelStats{
			LevelID:     id,
			Attempts:    len(a.resets),
			Completions: len(a.times),
			AvgResets:   stat.Mean(a.resets, nil),
		}
		ls.DropOffs = ls.Attempts - ls.Completions
		if ls.Completions > 0 {
			ls.TotalTime = floats.Sum(a.times)
			ls.AvgTime = stat.Mean(a.times, nil)
		}
		ls.CompletionRate = float64(ls.Completions) / float64(ls.Attempts)
		ls.DropOffRate = float64(ls.DropOffs) / float64(ls.Attempts)
		ls.Severity, ls.Flags = th.Classify(ls.CompletionRate, ls.AvgResets)
		r.Levels = append(r.Levels, ls)
	}
	slices.SortFunc(r.Levels, func(a, b LevelStats) int { return a.LevelID - b.LevelID })

	return r
}

// Classify returns the severity and flag labels for a level.
func (th Thresholds) Classify(completionRate, avgResets float64) (Severity, Flags) {
	var flags Flags
	if completionRate < th.RedCompletionRate {
		flags = append(flags, FlagLowCompletion)
	}
	if avgResets > th.RedAvgResets {
		flags = append(flags, FlagHighResets)
	}
	if len(flags) > 0 {
		return SeverityRed, flags
	}

	if completionRate < th.YellowCompletionRate {
		flags = append(flags, FlagMediumCompletion)
	}
	if avgResets > th.YellowAvgResets {
		flags = append(flags, FlagElevatedResets)
	}
	if len(flags) > 0 {
		return SeverityYellow, flags
	}
	return SeverityNone, nil
}

// BySeverity returns the levels with the given severity, in level order.
func (r Report) BySeverity(s Severity) []LevelStats {
	var out []LevelStats
	for _, ls := range r.Levels {
		if ls.Severity == s {
			out = append(out, ls)
		}
	}
	return out
}
