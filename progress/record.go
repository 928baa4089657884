// Package progress tracks per-player advancement: stars, best times, unlocked
// levels and achievements.
package progress

import (
	"maps"
	"slices"
)

// Achievement identifiers.
const (
	AchievementFirstClear   = "first_clear"
	AchievementPerfectClear = "perfect_clear"
	AchievementTenLevels    = "ten_levels"
)

// Record is the persisted progress document.
type Record struct {
	UnlockedLevels []int             `json:"unlockedLevels"`
	LevelStars     map[int]int       `json:"levelStars"`
	Achievements   []string          `json:"achievements"`
	HighScores     map[int][]float64 `json:"highScores"`
}

// DefaultRecord returns a fresh record with only level 1 unlocked.
func DefaultRecord() Record {
	return Record{
		UnlockedLevels: []int{1},
		LevelStars:     map[int]int{},
		Achievements:   []string{},
		HighScores:     map[int][]float64{},
	}
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := Record{
		UnlockedLevels: slices.Clone(r.UnlockedLevels),
		LevelStars:     maps.Clone(r.LevelStars),
		Achievements:   slices.Clone(r.Achievements),
		HighScores:     make(map[int][]float64, len(r.HighScores)),
	}
	for id, times := range r.HighScores {
		out.HighScores[id] = slices.Clone(times)
	}
	out.normalize()
	return out
}

// normalize fills nil collections so encoded records never contain null.
func (r *Record) normalize() {
	if r.UnlockedLevels == nil {
		r.UnlockedLevels = []int{}
	}
	if r.LevelStars == nil {
		r.LevelStars = map[int]int{}
	}
	if r.Achievements == nil {
		r.Achievements = []string{}
	}
	if r.HighScores == nil {
		r.HighScores = map[int][]float64{}
	}
}
