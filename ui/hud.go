package ui

import (
	"fmt"
	"strings"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pinflow/game"
)

// Action is a HUD button press.
type Action int

const (
	ActionNone Action = iota
	ActionReset
	ActionNext
	ActionExport
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	LevelIndex   int // 0 for levels outside the catalog
	LevelCount   int
	Elapsed      float64
	TargetTime   float64
	BestStars    int
	Resets       int
	PinsPulled   int
	Status       game.Status
	Hint         string // empty when no hint is offered
	HasNext      bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUDDataFromSnapshot builds HUD data from a game snapshot.
func HUDDataFromSnapshot(s *game.Snapshot, screenW, screenH int32) HUDData {
	d := HUDData{
		Title:        s.Title,
		LevelIndex:   s.LevelIndex,
		LevelCount:   s.LevelCount,
		Elapsed:      s.Elapsed,
		TargetTime:   s.TargetTime,
		BestStars:    s.BestStars,
		Resets:       s.State.Resets,
		PinsPulled:   s.State.PinsPulled,
		Status:       s.State.Status,
		HasNext:      s.LevelIndex > 0 && s.LevelIndex < s.LevelCount,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
	}
	if s.HintAvailable {
		d.Hint = s.Hint
	}
	return d
}

// FormatClock formats seconds as M:SS.
func FormatClock(seconds float64) string {
	d := time.Duration(max(seconds, 0) * float64(time.Second)).Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// StarBar renders a star count out of three, e.g. "**-".
func StarBar(stars int) string {
	stars = min(max(stars, 0), 3)
	return strings.Repeat("*", stars) + strings.Repeat("-", 3-stars)
}

// LevelLabel returns "Level 3/8", or "Custom level" outside the catalog.
func LevelLabel(index, count int) string {
	if index == 0 {
		return "Custom level"
	}
	return fmt.Sprintf("Level %d/%d", index, count)
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD and returns the button pressed this frame, if any.
func (h *HUD) Draw(data HUDData) Action {
	r := h.renderer
	th := r.Theme

	// Level panel
	r.DrawPanel(10, 10, 220, 118)
	y := r.DrawSectionHeader(20, 18, LevelLabel(data.LevelIndex, data.LevelCount))
	rl.DrawText(data.Title, 20, y, th.FontSize, th.ValueColor)
	y += th.LineHeight
	y = r.DrawLabelValue(20, y, "Time", fmt.Sprintf("%s / %s", FormatClock(data.Elapsed), FormatClock(data.TargetTime)))
	y = r.DrawLabelValue(20, y, "Best", StarBar(data.BestStars))
	r.DrawLabelValue(20, y, "Pins", fmt.Sprintf("%d  Resets: %d", data.PinsPulled, data.Resets))

	// Buttons
	action := ActionNone
	bx := float32(data.ScreenWidth) - 3*(th.ButtonWidth+8) - 2
	by := float32(12)
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: th.ButtonWidth, Height: th.ButtonHeight}, "Reset") {
		action = ActionReset
	}
	bx += th.ButtonWidth + 8
	if !(data.HasNext && data.Status == game.StatusWon) {
		gui.Disable()
	}
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: th.ButtonWidth, Height: th.ButtonHeight}, "Next") {
		action = ActionNext
	}
	gui.Enable()
	bx += th.ButtonWidth + 8
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: th.ButtonWidth, Height: th.ButtonHeight}, "Export") {
		action = ActionExport
	}

	// Result banner
	cx := data.ScreenWidth / 2
	switch data.Status {
	case game.StatusWon:
		r.DrawCentered("Treasure reached!", cx, data.ScreenHeight/2-40, 36, th.WinColor)
	case game.StatusLost:
		r.DrawCentered("Treasure lost. Press Reset to try again.", cx, data.ScreenHeight/2-40, 28, th.LoseColor)
	}

	if data.Hint != "" {
		r.DrawCentered("Hint: "+data.Hint, cx, data.ScreenHeight-60, th.FontSize+2, th.HintColor)
	}
	return action
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.DarkGray)
}

// PerfPanel renders per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(perf *game.PerfStats) {
	names := perf.SortedNames()
	r := p.renderer
	r.DrawPanel(p.x, p.y, 230, int32(len(names))*14+36)

	x, y := p.x+r.Theme.Padding, p.y+6
	rl.DrawText("Tick Timings", x, y, 16, rl.White)
	y += 20

	total := perf.Avg(game.PhaseTick)
	for _, name := range names {
		avg := perf.Avg(name)
		pct := float64(0)
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}

		color := rl.LightGray
		if name != game.PhaseTick && pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-9s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
