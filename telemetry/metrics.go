package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Metrics is the exported playtest document.
type Metrics struct {
	PlayerID   string    `json:"playerId"`
	ExportTime string    `json:"exportTime"`
	Sessions   []Session `json:"sessions"`
}

// NewMetrics builds an export document for the given sessions.
func NewMetrics(playerID string, now time.Time, sessions []Session) Metrics {
	if sessions == nil {
		sessions = []Session{}
	}
	return Metrics{
		PlayerID:   playerID,
		ExportTime: now.UTC().Format(TimeLayout),
		Sessions:   sessions,
	}
}

// JSON encodes the document with two-space indentation. Sessions hold only
// plain values, so encoding cannot fail.
func (m Metrics) JSON() []byte {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("telemetry: encoding metrics: %v", err))
	}
	return data
}

// ParseMetrics decodes an exported document.
func ParseMetrics(data []byte) (Metrics, error) {
	var m Metrics
	if err := json.Unmarshal(data, &m); err != nil {
		return Metrics{}, fmt.Errorf("parsing metrics: %w", err)
	}
	return m, nil
}

// LoadMetrics reads one or more exported documents and concatenates their
// sessions. The player id of the first file is kept.
func LoadMetrics(paths ...string) (Metrics, error) {
	var out Metrics
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return Metrics{}, fmt.Errorf("reading metrics: %w", err)
		}
		m, err := ParseMetrics(data)
		if err != nil {
			return Metrics{}, fmt.Errorf("%s: %w", path, err)
		}
		if i == 0 {
			out.PlayerID, out.ExportTime = m.PlayerID, m.ExportTime
		}
		out.Sessions = append(out.Sessions, m.Sessions...)
	}
	return out, nil
}
