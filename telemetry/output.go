package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/pinflow/config"
)

// SessionCSV is the flat row written to sessions.csv.
type SessionCSV struct {
	LevelID         int    `csv:"level_id"`
	StartTime       string `csv:"start_time"`
	CompletionTime  string `csv:"completion_time"` // empty while unfinished
	ResetCount      int    `csv:"reset_count"`
	PinPullSequence string `csv:"pin_pull_sequence"` // ids joined with ';'
	Success         bool   `csv:"success"`
}

// ToCSV flattens the session for CSV output.
func (s Session) ToCSV() SessionCSV {
	row := SessionCSV{
		LevelID:    s.LevelID,
		StartTime:  s.StartTime,
		ResetCount: s.ResetCount,
		Success:    s.Success,
	}
	if s.CompletionTime != nil {
		row.CompletionTime = strconv.FormatFloat(*s.CompletionTime, 'f', 3, 64)
	}
	ids := make([]string, len(s.PinPullSequence))
	for i, id := range s.PinPullSequence {
		ids[i] = strconv.Itoa(id)
	}
	row.PinPullSequence = strings.Join(ids, ";")
	return row
}

// OutputManager handles run output: finished sessions are appended to
// sessions.csv as they happen and the metrics document is written on demand.
type OutputManager struct {
	dir         string
	sessionFile *os.File

	// Track if headers have been written
	sessionHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "sessions.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating sessions.csv: %w", err)
	}

	return &OutputManager{dir: dir, sessionFile: f}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteSession appends a finished session to sessions.csv.
func (om *OutputManager) WriteSession(s Session) error {
	if om == nil {
		return nil
	}

	records := []SessionCSV{s.ToCSV()}

	if !om.sessionHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.sessionFile); err != nil {
			return fmt.Errorf("writing session: %w", err)
		}
		om.sessionHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.sessionFile); err != nil {
			return fmt.Errorf("writing session: %w", err)
		}
	}

	return nil
}

// WriteMetrics saves the metrics document as metrics.json.
func (om *OutputManager) WriteMetrics(m Metrics) error {
	if om == nil {
		return nil
	}
	if err := os.WriteFile(filepath.Join(om.dir, "metrics.json"), m.JSON(), 0644); err != nil {
		return fmt.Errorf("writing metrics.json: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil || om.sessionFile == nil {
		return nil
	}
	return om.sessionFile.Close()
}
