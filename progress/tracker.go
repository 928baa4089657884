package progress

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/pthm-cable/pinflow/config"
)

// Policy holds the scoring and unlock rules.
type Policy struct {
	LevelCeiling  int     // highest level id that can be unlocked
	MaxHighScores int     // best times kept per level
	TwoStarFactor float64 // elapsed <= target*factor earns two stars
}

// DefaultPolicy returns the standard rules.
func DefaultPolicy() Policy {
	return Policy{LevelCeiling: 60, MaxHighScores: 5, TwoStarFactor: 1.5}
}

// PolicyFromConfig extracts the rules from cfg.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		LevelCeiling:  cfg.Progress.LevelCeiling,
		MaxHighScores: cfg.Progress.MaxHighScores,
		TwoStarFactor: cfg.Progress.TwoStarFactor,
	}
}

// Stars scores a completion: 3 within target, 2 within target*factor, else 1.
// Both bounds are inclusive.
func Stars(elapsed, target, factor float64) int {
	switch {
	case elapsed <= target:
		return 3
	case elapsed <= target*factor:
		return 2
	default:
		return 1
	}
}

// Tracker applies completions to a Record and persists it after every change.
// It is not safe for concurrent use.
type Tracker struct {
	policy Policy
	store  Store
	rec    Record
}

// NewTracker loads progress from store. A missing or unreadable record
// starts from DefaultRecord.
func NewTracker(store Store, p Policy) *Tracker {
	t := &Tracker{policy: p, store: store}
	rec, err := store.Load()
	switch {
	case errors.Is(err, ErrNoRecord):
		rec = DefaultRecord()
	case err != nil:
		slog.Warn("progress unreadable, starting fresh", "error", err)
		rec = DefaultRecord()
	}
	rec.normalize()
	if len(rec.UnlockedLevels) == 0 {
		rec.UnlockedLevels = []int{1}
	}
	t.rec = rec
	return t
}

// CompleteLevel records a finished level and returns the stars earned by this
// run. Stored stars never decrease. The next level is unlocked up to the
// ceiling.
func (t *Tracker) CompleteLevel(levelID int, elapsed, target float64) int {
	stars := Stars(elapsed, target, t.policy.TwoStarFactor)

	if stars > t.rec.LevelStars[levelID] {
		t.rec.LevelStars[levelID] = stars
	}

	scores := append(t.rec.HighScores[levelID], elapsed)
	slices.Sort(scores)
	if len(scores) > t.policy.MaxHighScores {
		scores = scores[:t.policy.MaxHighScores]
	}
	t.rec.HighScores[levelID] = scores

	next := levelID + 1
	if next <= t.policy.LevelCeiling && !slices.Contains(t.rec.UnlockedLevels, next) {
		t.rec.UnlockedLevels = append(t.rec.UnlockedLevels, next)
	}

	t.award(AchievementFirstClear)
	if stars == 3 {
		t.award(AchievementPerfectClear)
	}
	if len(t.rec.LevelStars) >= 10 {
		t.award(AchievementTenLevels)
	}

	t.save()
	return stars
}

func (t *Tracker) award(name string) {
	if !slices.Contains(t.rec.Achievements, name) {
		t.rec.Achievements = append(t.rec.Achievements, name)
		slog.Info("achievement unlocked", "achievement", name)
	}
}

func (t *Tracker) save() {
	if err := t.store.Save(t.rec); err != nil {
		slog.Error("failed to save progress", "error", err)
	}
}

// IsLevelUnlocked reports whether levelID can be played.
func (t *Tracker) IsLevelUnlocked(levelID int) bool {
	return slices.Contains(t.rec.UnlockedLevels, levelID)
}

// LevelStars returns the best stars for levelID, 0 if never completed.
func (t *Tracker) LevelStars(levelID int) int {
	return t.rec.LevelStars[levelID]
}

// HighScores returns the best times for levelID, fastest first.
func (t *Tracker) HighScores(levelID int) []float64 {
	return slices.Clone(t.rec.HighScores[levelID])
}

// UnlockedLevels returns the unlocked level ids in ascending order.
func (t *Tracker) UnlockedLevels() []int {
	out := slices.Clone(t.rec.UnlockedLevels)
	slices.Sort(out)
	return out
}

// Achievements returns the unlocked achievements in the order they were earned.
func (t *Tracker) Achievements() []string {
	return slices.Clone(t.rec.Achievements)
}

// Record returns a copy of the current record.
func (t *Tracker) Record() Record {
	return t.rec.Clone()
}

// ResetProgress discards all progress and saves the default record.
func (t *Tracker) ResetProgress() {
	t.rec = DefaultRecord()
	t.save()
}
