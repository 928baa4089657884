// Command genlevels extends a level pack with procedurally generated levels.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/pinflow/levels"
)

func main() {
	basePath := flag.String("base", "", "Level pack to extend (empty = embedded pack)")
	outputPath := flag.String("output", "levels.json", "Output pack; .yaml/.yml writes YAML")
	total := flag.Int("total", 60, "Number of levels in the output pack")
	template := flag.String("template", "", "Use only this template (empty = random per level)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	var defs []levels.Definition
	if *basePath == "" {
		defs = levels.Default().All()
	} else {
		var err error
		if defs, err = levels.LoadFile(*basePath); err != nil {
			log.Fatalf("failed to load base pack: %v", err)
		}
	}
	base := len(defs)

	if *template == "" {
		defs = levels.Extend(rng, defs, *total)
	} else {
		next := 1
		if len(defs) > 0 {
			next = defs[len(defs)-1].ID + 1
		}
		for ; len(defs) < *total; next++ {
			d, err := levels.GenerateFrom(rng, next, *template)
			if err != nil {
				log.Fatalf("failed to generate level %d: %v", next, err)
			}
			defs = append(defs, d)
		}
	}

	// Reject the pack the game would reject
	if _, err := levels.NewCatalog(defs); err != nil {
		log.Fatalf("generated pack is invalid: %v", err)
	}
	if err := levels.WriteFile(*outputPath, defs); err != nil {
		log.Fatalf("failed to write pack: %v", err)
	}

	slog.Info("level pack written",
		"path", *outputPath,
		"levels", len(defs),
		"generated", len(defs)-base,
		"seed", rngSeed,
	)
}
