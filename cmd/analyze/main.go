// Command analyze aggregates exported playtest metrics per level and writes a
// markdown and CSV report with difficulty flags.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/pinflow/analytics"
	"github.com/pthm-cable/pinflow/telemetry"
)

func main() {
	outputDir := flag.String("output", "reports", "Directory for the generated report")
	redRate := flag.Float64("red-rate", analytics.DefaultThresholds().RedCompletionRate, "Red flag below this completion rate")
	redResets := flag.Float64("red-resets", analytics.DefaultThresholds().RedAvgResets, "Red flag above this many resets per attempt")
	yellowRate := flag.Float64("yellow-rate", analytics.DefaultThresholds().YellowCompletionRate, "Yellow flag below this completion rate")
	yellowResets := flag.Float64("yellow-resets", analytics.DefaultThresholds().YellowAvgResets, "Yellow flag above this many resets per attempt")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <metrics.json...>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// Unreadable files are reported and skipped.
	var docs []telemetry.Metrics
	for _, path := range flag.Args() {
		m, err := telemetry.LoadMetrics(path)
		if err != nil {
			slog.Error("failed to process file", "path", path, "error", err)
			continue
		}
		docs = append(docs, m)
	}

	th := analytics.Thresholds{
		RedCompletionRate:    *redRate,
		RedAvgResets:         *redResets,
		YellowCompletionRate: *yellowRate,
		YellowAvgResets:      *yellowResets,
	}
	report := analytics.Analyze(docs, th, time.Now())

	fmt.Printf("Playtest Analysis Summary\n")
	fmt.Printf("Unique Players: %d\n", len(report.Players))
	fmt.Printf("Total Level Sessions: %d\n\n", report.Sessions)
	fmt.Printf("%-6s %-9s %-12s %-9s %-11s %s\n", "Level", "Attempts", "Success", "Avg Time", "Avg Resets", "Flags")
	for _, ls := range report.Levels {
		fmt.Printf("%-6d %-9d %-12s %-9s %-11.1f %s\n",
			ls.LevelID, ls.Attempts,
			fmt.Sprintf("%.1f%%", ls.CompletionRate*100),
			fmt.Sprintf("%.1fs", ls.AvgTime),
			ls.AvgResets, ls.Flags)
	}

	mdPath, err := analytics.WriteFiles(*outputDir, report)
	if err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	fmt.Printf("\nReport saved to %s\n", mdPath)
}
