package main

import (
	"bufio"
	"flag"
	"os"

	"github.com/ChizhovVadim/CounterReversi/internal/arena"
	"github.com/ChizhovVadim/CounterReversi/internal/logging"
)

func main() {
	var outputPath string
	var count, plies int
	var seed int64
	flag.StringVar(&outputPath, "output", "", "Path to output openings file")
	flag.IntVar(&count, "count", 1000, "number of openings")
	flag.IntVar(&plies, "plies", 8, "random plies per opening")
	flag.Int64Var(&seed, "seed", 1, "random seed")
	flag.Parse()

	var logger = logging.NewStderr("info")
	var openings, err = arena.GenerateOpenings(seed, count, plies)
	if err != nil {
		logger.Fatal().Err(err).Msg("generate-failed")
	}

	var out = os.Stdout
	if outputPath != "" {
		out, err = os.Create(outputPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("create-failed")
		}
		defer out.Close()
	}
	var w = bufio.NewWriter(out)
	if err := arena.SaveOpenings(w, openings); err != nil {
		logger.Fatal().Err(err).Msg("save-failed")
	}
	if err := w.Flush(); err != nil {
		logger.Fatal().Err(err).Msg("save-failed")
	}
	logger.Info().Int("openings", len(openings)).Str("output", outputPath).Msg("openings-saved")
}
