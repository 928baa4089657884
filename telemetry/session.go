// Package telemetry records level attempts and exports them for offline
// analysis.
package telemetry

import (
	"log/slog"
	"slices"
	"time"
)

// TimeLayout is the timestamp format used in exported metrics.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Session is one recorded level attempt.
// CompletionTime is nil until the attempt ends.
type Session struct {
	LevelID         int      `json:"levelId"`
	StartTime       string   `json:"startTime"`
	CompletionTime  *float64 `json:"completionTime"`
	ResetCount      int      `json:"resetCount"`
	PinPullSequence []int    `json:"pinPullSequence"`
	Success         bool     `json:"success"`
}

// NewSession starts a session for levelID at now.
func NewSession(levelID int, now time.Time) *Session {
	return &Session{
		LevelID:         levelID,
		StartTime:       now.UTC().Format(TimeLayout),
		PinPullSequence: []int{},
	}
}

// Finished reports whether the session has ended.
func (s *Session) Finished() bool { return s.CompletionTime != nil }

// Clone returns a deep copy.
func (s Session) Clone() Session {
	s.PinPullSequence = slices.Clone(s.PinPullSequence)
	if s.PinPullSequence == nil {
		s.PinPullSequence = []int{}
	}
	if s.CompletionTime != nil {
		ct := *s.CompletionTime
		s.CompletionTime = &ct
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Session) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("level", s.LevelID),
		slog.String("start", s.StartTime),
		slog.Int("resets", s.ResetCount),
		slog.Int("pulls", len(s.PinPullSequence)),
		slog.Bool("success", s.Success),
	}
	if s.CompletionTime != nil {
		attrs = append(attrs, slog.Float64("completion_time", *s.CompletionTime))
	}
	return slog.GroupValue(attrs...)
}

// Recorder tracks the live session and the history of finished sessions.
// History only grows when a session is finished.
type Recorder struct {
	live    *Session
	history []Session
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start replaces the live session with a fresh one. The previous live
// session, if unfinished, is discarded.
func (r *Recorder) Start(levelID int, now time.Time, resetCount int) {
	r.live = NewSession(levelID, now)
	r.live.ResetCount = resetCount
}

// Live returns the live session, or nil before the first Start.
func (r *Recorder) Live() *Session { return r.live }

// RecordPull appends a pin id to the live session's pull sequence.
func (r *Recorder) RecordPull(pinID int) {
	if r.live == nil {
		return
	}
	r.live.PinPullSequence = append(r.live.PinPullSequence, pinID)
}

// RecordReset counts a reset against the live session.
func (r *Recorder) RecordReset() {
	if r.live == nil {
		return
	}
	r.live.ResetCount++
}

// Finish ends the live session and appends a copy to the history.
// It returns false if there is no live session or it already finished.
func (r *Recorder) Finish(success bool, elapsed float64) (Session, bool) {
	if r.live == nil || r.live.Finished() {
		return Session{}, false
	}
	r.live.Success = success
	r.live.CompletionTime = &elapsed
	done := r.live.Clone()
	r.history = append(r.history, done)
	return done.Clone(), true
}

// History returns copies of all finished sessions in completion order.
func (r *Recorder) History() []Session {
	out := make([]Session, len(r.history))
	for i := range r.history {
		out[i] = r.history[i].Clone()
	}
	return out
}

// Len returns the number of finished sessions.
func (r *Recorder) Len() int { return len(r.history) }
