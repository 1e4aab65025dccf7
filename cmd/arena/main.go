package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/ChizhovVadim/CounterReversi/internal/arena"
	"github.com/ChizhovVadim/CounterReversi/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterReversi/internal/game"
	"github.com/ChizhovVadim/CounterReversi/internal/logging"
	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
)

type Config struct {
	Concurrency int
	EvalA       string
	EvalB       string
	DepthA      int
	DepthB      int
	Openings    string
	Games       int
	Plies       int
	Seed        int64
	MoveLimit   int
}

var config Config

func main() {
	flag.IntVar(&config.Concurrency, "concurrency", runtime.NumCPU(), "Number of threads")
	flag.StringVar(&config.EvalA, "evala", "weighted", "evaluation of engine A")
	flag.StringVar(&config.EvalB, "evalb", "material", "evaluation of engine B")
	flag.IntVar(&config.DepthA, "deptha", 4, "search depth of engine A")
	flag.IntVar(&config.DepthB, "depthb", 4, "search depth of engine B")
	flag.StringVar(&config.Openings, "openings", "", "openings file, one position per line")
	flag.IntVar(&config.Games, "openingcount", 100, "generated openings when no file is given")
	flag.IntVar(&config.Plies, "plies", 8, "random plies of generated openings")
	flag.Int64Var(&config.Seed, "seed", 1, "seed of generated openings")
	flag.IntVar(&config.MoveLimit, "movelimit", 0, "stop games at this turn depth")
	flag.Parse()

	var logger = logging.NewStderr("info")
	logger.Info().Interface("config", config).Msg("arena-config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var stats, err = run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("arena-failed")
	}
	fmt.Printf("games %v +%v -%v =%v elo %.1f los %.3f\n",
		stats.Games, stats.Wins, stats.Losses, stats.Draws, stats.EloDifference, stats.LOS)
}

func run(ctx context.Context) (arena.Stats, error) {
	var logger = logging.NewStderr("info")
	var openings, err = getOpenings()
	if err != nil {
		return arena.Stats{}, err
	}
	engineA, err := newContender("A", config.EvalA, config.DepthA)
	if err != nil {
		return arena.Stats{}, err
	}
	engineB, err := newContender("B", config.EvalB, config.DepthB)
	if err != nil {
		return arena.Stats{}, err
	}
	var a = arena.New(arena.Config{
		Concurrency: config.Concurrency,
		Rules:       common.Rules{MoveLimit: config.MoveLimit},
	}, logger, engineA, engineB)
	return a.Run(ctx, openings)
}

func getOpenings() ([]common.Position, error) {
	if config.Openings == "" {
		return arena.GenerateOpenings(config.Seed, config.Games, config.Plies)
	}
	var file, err = os.Open(config.Openings)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return arena.LoadOpenings(file)
}

func newContender(name, eval string, depth int) (arena.Contender, error) {
	var evalBuilder, err = evalbuilder.Get(eval)
	if err != nil {
		return arena.Contender{}, err
	}
	var eng = engine.NewEngine(evalBuilder, engine.NewOptions())
	var fullName = fmt.Sprintf("%v %v", name, eval)
	return arena.Contender{
		Name: fullName,
		NewPlayer: func() game.Player {
			return game.NewEnginePlayer(fullName, eng, depth)
		},
	}, nil
}
