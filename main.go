package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/pinflow/config"
	"github.com/pthm-cable/pinflow/game"
	"github.com/pthm-cable/pinflow/levels"
	"github.com/pthm-cable/pinflow/progress"
	"github.com/pthm-cable/pinflow/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, pulling pins in level order")
	levelsPath := flag.String("levels", "", "Level pack JSON/YAML (empty = config levels.path or embedded pack)")
	progressPath := flag.String("progress", "", "Progress file (empty = config progress.path; both empty = in memory)")
	outputDir := flag.String("output-dir", "", "Output directory for sessions.csv, metrics.json and config snapshot")
	startLevel := flag.Int("level", 0, "Level id to start on (0 = first in pack)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	pullInterval := flag.Int("pull-interval", 60, "Headless: ticks between pin pulls")
	logPerf := flag.Bool("log-perf", false, "Log tick phase timings on exit")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	catalog, err := loadCatalog(firstNonEmpty(*levelsPath, cfg.Levels.Path))
	if err != nil {
		slog.Error("failed to load levels", "error", err)
		os.Exit(1)
	}

	var store progress.Store = &progress.MemoryStore{}
	if path := firstNonEmpty(*progressPath, cfg.Progress.Path); path != "" {
		async := progress.NewAsyncStore(progress.NewFileStore(path))
		defer async.Close()
		store = async
	}
	tracker := progress.NewTracker(store, progress.PolicyFromConfig(cfg))

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	opts := []game.Option{
		game.WithRNG(rand.New(rand.NewSource(rngSeed))),
		game.WithOutput(output),
	}
	var clock *frameClock
	if *headless {
		// Elapsed times follow simulated frames, not the wall clock
		clock = newFrameClock(time.Now(), cfg.Physics.FrameMillis)
		opts = append(opts, game.WithClock(clock.Now))
	}

	g, err := game.New(cfg, catalog, tracker, opts...)
	if err != nil {
		slog.Error("failed to start game", "error", err)
		os.Exit(1)
	}
	if *startLevel != 0 {
		if err := g.LoadByID(*startLevel); err != nil {
			slog.Error("failed to load start level", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("starting",
		"seed", rngSeed,
		"headless", *headless,
		"levels", catalog.Len(),
		"player_id", g.PlayerID(),
		"backend", cfg.Physics.Backend,
	)

	if *headless {
		runHeadless(g, clock, *maxTicks, *pullInterval)
	} else {
		runGraphical(g, cfg, output, *maxTicks)
	}

	telemetry.Summarize(g.Sessions()).LogSummary()
	if *logPerf {
		slog.Info("perf", "phases", g.Perf())
	}
	if err := output.WriteMetrics(g.Metrics()); err != nil {
		slog.Error("failed to write metrics", "error", err)
	}
}

func loadCatalog(path string) (*levels.Catalog, error) {
	if path == "" {
		return levels.Default(), nil
	}
	return levels.Load(path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
