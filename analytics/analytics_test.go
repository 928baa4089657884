package analytics

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/pinflow/telemetry"
)

var reportTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func session(level int, success bool, t float64, resets int) telemetry.Session {
	s := telemetry.Session{LevelID: level, ResetCount: resets, Success: success}
	if t >= 0 {
		s.CompletionTime = &t
	}
	return s
}

func TestAnalyze(t *testing.T) {
	docs := []telemetry.Metrics{
		{PlayerID: "b", Sessions: []telemetry.Session{
			session(1, true, 30, 0),
			session(1, true, 50, 2),
			session(2, false, 80, 12),
		}},
		{PlayerID: "a", Sessions: []telemetry.Session{
			session(1, false, 20, 1),
			session(2, true, 40, 10),
			session(1, true, -1, 0), // success without a time is a drop-off
		}},
		{PlayerID: "b"},
	}

	r := Analyze(docs, DefaultThresholds(), reportTime)

	if r.Sessions != 6 {
		t.Errorf("sessions = %d, want 6", r.Sessions)
	}
	if len(r.Players) != 2 || r.Players[0] != "a" || r.Players[1] != "b" {
		t.Errorf("players = %v, want [a b]", r.Players)
	}
	if len(r.Levels) != 2 || r.Levels[0].LevelID != 1 || r.Levels[1].LevelID != 2 {
		t.Fatalf("levels = %+v", r.Levels)
	}

	l1 := r.Levels[0]
	if l1.Attempts != 4 || l1.Completions != 2 || l1.DropOffs != 2 {
		t.Errorf("level 1 counts = %+v", l1)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"avg time", l1.AvgTime, 40},
		{"total time", l1.TotalTime, 80},
		{"avg resets", l1.AvgResets, 0.75},
		{"completion rate", l1.CompletionRate, 0.5},
		{"drop-off rate", l1.DropOffRate, 0.5},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("level 1 %s = %v, want %v", c.name, c.got, c.want)
		}
	}
	// Exactly 0.5 is not below the red threshold.
	if l1.Severity != SeverityYellow {
		t.Errorf("level 1 severity = %q, want yellow", l1.Severity)
	}

	l2 := r.Levels[1]
	if l2.AvgResets != 11 || l2.Severity != SeverityRed {
		t.Errorf("level 2 = %+v, want red with 11 avg resets", l2)
	}
}

func TestClassify(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name     string
		rate     float64
		resets   float64
		severity Severity
		flags    string
	}{
		{"healthy", 0.9, 1, SeverityNone, ""},
		{"low completion", 0.4, 0, SeverityRed, FlagLowCompletion},
		{"high resets", 0.9, 10.5, SeverityRed, FlagHighResets},
		{"both red", 0.1, 20, SeverityRed, FlagLowCompletion + ", " + FlagHighResets},
		{"red hides yellow", 0.4, 8, SeverityRed, FlagLowCompletion},
		{"medium completion", 0.6, 0, SeverityYellow, FlagMediumCompletion},
		{"elevated resets", 0.8, 7.5, SeverityYellow, FlagElevatedResets},
		{"boundaries are not flagged", 0.7, 7, SeverityNone, ""},
		{"red reset boundary is yellow", 0.9, 10, SeverityYellow, FlagElevatedResets},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sev, flags := th.Classify(tc.rate, tc.resets)
			if sev != tc.severity || flags.String() != tc.flags {
				t.Errorf("Classify(%v, %v) = %q %q, want %q %q", tc.rate, tc.resets, sev, flags, tc.severity, tc.flags)
			}
		})
	}
}

func TestAnalyze_Empty(t *testing.T) {
	r := Analyze(nil, DefaultThresholds(), reportTime)
	if r.Sessions != 0 || len(r.Levels) != 0 {
		t.Errorf("report = %+v", r)
	}

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "All levels performing within target parameters.") {
		t.Errorf("empty report missing all-clear line:\n%s", buf.String())
	}
}

func TestWriteMarkdown(t *testing.T) {
	docs := []telemetry.Metrics{{PlayerID: "p", Sessions: []telemetry.Session{
		session(1, true, 10, 0),
		session(2, false, 5, 0),
		session(3, true, 12, 8),
	}}}
	r := Analyze(docs, DefaultThresholds(), reportTime)

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, r); err != nil {
		t.Fatal(err)
	}
	md := buf.String()

	for _, want := range []string{
		"# Playtest Analysis Report",
		"**Players**: 1 | **Sessions**: 3",
		"| 1 | 1 | 100.0% | 10.0s | 0.0 |  |",
		"| 2 | 1 | 0.0% | 0.0s | 0.0 | Low Completion |",
		"### Urgent Attention Required (Red Flags)",
		"- **Level 2**: Low Completion.",
		"### Monitoring Needed (Yellow Flags)",
		"- **Level 3**: Elevated Resets.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "All levels performing") {
		t.Error("flagged report should not claim all levels are fine")
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	docs := []telemetry.Metrics{{PlayerID: "p", Sessions: []telemetry.Session{
		session(1, true, 10, 0),
		session(1, false, 4, 3),
	}}}
	r := Analyze(docs, DefaultThresholds(), reportTime)

	mdPath, err := WriteFiles(dir, r)
	if err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}
	if filepath.Base(mdPath) != MarkdownFile {
		t.Errorf("markdown path = %s", mdPath)
	}

	data, err := os.ReadFile(filepath.Join(dir, CSVFile))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want header + 1:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "level_id,attempts,completions,drop_offs") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",yellow,Medium Completion") {
		t.Errorf("row = %q", lines[1])
	}
}
