package analytics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// Output file names written by WriteFiles.
const (
	MarkdownFile = "analysis-report.md"
	CSVFile      = "analysis-report.csv"
)

// WriteMarkdown renders the report as a markdown document with a level table
// and a recommendations section.
func WriteMarkdown(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# Playtest Analysis Report\n")
	fmt.Fprintf(bw, "**Generated**: %s\n", r.Generated.Format(time.DateTime))
	fmt.Fprintf(bw, "**Players**: %d | **Sessions**: %d\n\n", len(r.Players), r.Sessions)

	fmt.Fprintf(bw, "## Level Performance\n\n")
	fmt.Fprintf(bw, "| Level | Attempts | Success Rate | Avg Time | Avg Resets | Flags |\n")
	fmt.Fprintf(bw, "|-------|----------|--------------|----------|------------|-------|\n")
	for _, ls := range r.Levels {
		fmt.Fprintf(bw, "| %d | %d | %.1f%% | %.1fs | %.1f | %s |\n",
			ls.LevelID, ls.Attempts, ls.CompletionRate*100, ls.AvgTime, ls.AvgResets, ls.Flags)
	}

	fmt.Fprintf(bw, "\n## Recommendations\n")
	red := r.BySeverity(SeverityRed)
	yellow := r.BySeverity(SeverityYellow)

	if len(red) > 0 {
		fmt.Fprintf(bw, "\n### Urgent Attention Required (Red Flags)\n")
		for _, ls := range red {
			fmt.Fprintf(bw, "- **Level %d**: %s. Consider reducing difficulty or checking for bugs.\n", ls.LevelID, ls.Flags)
		}
	}
	if len(yellow) > 0 {
		fmt.Fprintf(bw, "\n### Monitoring Needed (Yellow Flags)\n")
		for _, ls := range yellow {
			fmt.Fprintf(bw, "- **Level %d**: %s. Watch for player frustration.\n", ls.LevelID, ls.Flags)
		}
	}
	if len(red) == 0 && len(yellow) == 0 {
		fmt.Fprintf(bw, "\nAll levels performing within target parameters.\n")
	}

	return bw.Flush()
}

// WriteCSV writes one row per level.
func WriteCSV(w io.Writer, r Report) error {
	rows := r.Levels
	if rows == nil {
		rows = []LevelStats{}
	}
	return gocsv.Marshal(rows, w)
}

// WriteFiles writes the markdown and CSV reports into dir, creating it if
// needed, and returns the markdown path.
func WriteFiles(dir string, r Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	mdPath := filepath.Join(dir, MarkdownFile)
	if err := writeFile(mdPath, func(w io.Writer) error { return WriteMarkdown(w, r) }); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(dir, CSVFile), func(w io.Writer) error { return WriteCSV(w, r) }); err != nil {
		return "", err
	}
	return mdPath, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
