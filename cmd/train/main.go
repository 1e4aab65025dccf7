package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"github.com/ChizhovVadim/CounterReversi/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterReversi/internal/logging"
	"github.com/ChizhovVadim/CounterReversi/internal/train"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
	neural "github.com/ChizhovVadim/CounterReversi/pkg/eval/neural"
)

type Config struct {
	eval          string
	hidden        string
	netName       string
	netFolderPath string
	outputPath    string
	train         train.Config
}

func main() {
	var config = Config{train: train.DefaultConfig()}
	flag.StringVar(&config.eval, "eval", "weighted", "evaluation used by self-play")
	flag.StringVar(&config.hidden, "hidden", "32,16", "hidden layer sizes")
	flag.StringVar(&config.netName, "name", "selfplay", "network name")
	flag.StringVar(&config.netFolderPath, "net", "", "directory for per-epoch weights")
	flag.StringVar(&config.outputPath, "o", "weights.json", "final weights path")
	flag.IntVar(&config.train.Games, "games", config.train.Games, "self-play games")
	flag.IntVar(&config.train.Depth, "depth", config.train.Depth, "self-play search depth")
	flag.IntVar(&config.train.RandomPlies, "randomplies", config.train.RandomPlies, "random opening plies")
	flag.Float64Var(&config.train.Epsilon, "epsilon", config.train.Epsilon, "random move probability")
	flag.Int64Var(&config.train.Seed, "seed", config.train.Seed, "self-play seed")
	flag.IntVar(&config.train.Threads, "threads", runtime.NumCPU(), "Number of threads")
	flag.IntVar(&config.train.Epochs, "epochs", config.train.Epochs, "Number of epochs")
	flag.Float64Var(&config.train.LearningRate, "lr", config.train.LearningRate, "learning rate")
	flag.IntVar(&config.train.BatchSize, "batch", config.train.BatchSize, "batch size")
	flag.Parse()

	var logger = logging.NewStderr("info")
	logger.Info().Interface("config", config.train).Str("eval", config.eval).Msg("train-config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config); err != nil {
		logger.Fatal().Err(err).Msg("train-failed")
	}
}

func run(ctx context.Context, config Config) error {
	var logger = logging.NewStderr("info")
	hidden, err := parseLayers(config.hidden)
	if err != nil {
		return err
	}
	evalBuilder, err := evalbuilder.Get(config.eval)
	if err != nil {
		return err
	}
	var eng = engine.NewEngine(evalBuilder, engine.NewOptions())

	samples, err := train.SelfPlay(ctx, eng, config.train, logger)
	if err != nil {
		return err
	}
	samples.Shuffle()

	var netConfig = neural.Config{Name: config.netName, HiddenLayers: hidden}
	trained, err := train.Train(ctx, samples, netConfig, config.train, config.netFolderPath, logger)
	if err != nil {
		return err
	}
	if err := neural.SaveConfig(config.outputPath, trained); err != nil {
		return err
	}
	logger.Info().Str("path", config.outputPath).Msg("weights-saved")
	return nil
}

func parseLayers(s string) ([]int, error) {
	var result []int
	for _, field := range strings.Split(s, ",") {
		var n, err = strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}
