package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/pinflow/audio"
	"github.com/pthm-cable/pinflow/components"
	"github.com/pthm-cable/pinflow/config"
	"github.com/pthm-cable/pinflow/game"
	"github.com/pthm-cable/pinflow/renderer"
	"github.com/pthm-cable/pinflow/systems"
	"github.com/pthm-cable/pinflow/telemetry"
	"github.com/pthm-cable/pinflow/ui"
)

const controlsText = "Click pins to pull | R reset | N next | E export"

// runGraphical opens a window and runs the frame loop until it closes.
func runGraphical(g *game.Game, cfg *config.Config, output *telemetry.OutputManager, maxTicks int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Pinflow")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	player := audio.NewPlayer(cfg.Audio)
	if err := player.Start(); err != nil {
		// Non-fatal, game can run without sound
		slog.Warn("audio unavailable", "error", err)
		player.SetEnabled(false)
	}
	defer player.Close()
	unsubscribe := g.Subscribe(player)
	defer unsubscribe()

	screenW, screenH := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	scene := renderer.NewScene(screenW, screenH)
	hud := ui.NewHUD()
	perfPanel := ui.NewPerfPanel(screenW-240, 50)
	overlays := ui.NewOverlayRegistry()
	goals := systems.GoalDetectorFromConfig(cfg)

	var elapsed float32
	for ticks := 0; !rl.WindowShouldClose(); ticks++ {
		if maxTicks > 0 && ticks >= maxTicks {
			break
		}

		// Input
		mouse := rl.GetMousePosition()
		pos := components.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)}
		g.Submit(game.HoverCommand{Pos: pos})
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			g.Submit(game.PullCommand{Pos: pos})
		}
		switch {
		case rl.IsKeyPressed(rl.KeyR):
			g.Submit(game.ResetCommand{})
		case rl.IsKeyPressed(rl.KeyN):
			g.Submit(game.NextCommand{})
		case rl.IsKeyPressed(rl.KeyE):
			exportMetrics(g, output)
		}
		if key := rl.GetKeyPressed(); key != 0 {
			overlays.HandleKeyPress(key)
		}

		// Update
		frame := rl.GetFrameTime()
		elapsed += frame
		g.Tick(float64(frame) * 1000 / cfg.Physics.FrameMillis)

		// Draw
		snap := g.Snapshot()
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		scene.Draw(&snap, elapsed)
		if overlays.IsEnabled(ui.OverlayVelocity) {
			renderer.DrawVelocities(snap.Particles)
		}
		if overlays.IsEnabled(ui.OverlayGoalRadius) {
			renderer.DrawGoalRadii(snap.Treasure, goals)
		}

		switch hud.Draw(ui.HUDDataFromSnapshot(&snap, screenW, screenH)) {
		case ui.ActionReset:
			g.Submit(game.ResetCommand{})
		case ui.ActionNext:
			g.Submit(game.NextCommand{})
		case ui.ActionExport:
			exportMetrics(g, output)
		}
		if overlays.IsEnabled(ui.OverlayPerf) {
			perfPanel.Draw(g.Perf())
		}
		hud.DrawControls(screenH, controlsText+" | "+overlays.Legend())
		rl.EndDrawing()
	}
}

// exportMetrics writes the metrics document to the output directory, or to a
// timestamped file in the working directory when output is disabled.
func exportMetrics(g *game.Game, output *telemetry.OutputManager) {
	if output != nil {
		if err := output.WriteMetrics(g.Metrics()); err != nil {
			slog.Error("failed to export metrics", "error", err)
			return
		}
		slog.Info("metrics exported", "path", filepath.Join(output.Dir(), "metrics.json"))
		return
	}

	path := fmt.Sprintf("pinflow-metrics-%s.json", time.Now().Format("20060102-150405"))
	if err := os.WriteFile(path, g.ExportMetrics(), 0644); err != nil {
		slog.Error("failed to export metrics", "error", err)
		return
	}
	slog.Info("metrics exported", "path", path)
}
