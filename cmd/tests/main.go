package main

import (
	"os"

	"github.com/ChizhovVadim/CounterReversi/internal/arena"
	"github.com/ChizhovVadim/CounterReversi/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterReversi/internal/logging"
	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
)

var logger = logging.NewStderr("info")

// usage: tests <benchmark|perft|check|profile> [-name value ...]
func main() {
	if err := run(); err != nil {
		logger.Fatal().Err(err).Msg("tests-failed")
	}
}

func run() error {
	var cli = NewCli(os.Args)
	cli.AddCommand("benchmark", func() error {
		var openings, err = getOpenings(cli.Params())
		if err != nil {
			return err
		}
		var eng, errEng = newEngine(cli.Params().GetString("eval", ""), "alphabeta")
		if errEng != nil {
			return errEng
		}
		benchmark(openings, eng, cli.Params().GetInt("depth", 8))
		return nil
	})
	cli.AddCommand("perft", func() error {
		return runPerft(cli.Params().GetInt("depth", 9))
	})
	cli.AddCommand("check", func() error {
		var openings, err = getOpenings(cli.Params())
		if err != nil {
			return err
		}
		return runCheck(openings, cli.Params().GetString("eval", ""), cli.Params().GetInt("depth", 4))
	})
	cli.AddCommand("profile", func() error {
		return runProfile(mapPath(cli.Params().GetString("cpuprofile", "cpu.prof")),
			cli.Params().GetString("eval", ""), cli.Params().GetInt("depth", 10))
	})
	return cli.Execute()
}

func newEngine(evalName, algorithm string) (*engine.Engine, error) {
	var evalBuilder, err = evalbuilder.Get(evalName)
	if err != nil {
		return nil, err
	}
	var options = engine.NewOptions()
	options.Algorithm, err = engine.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(evalBuilder, options), nil
}

func getOpenings(params *CommandArgs) ([]common.Position, error) {
	var path = params.GetString("openings", "")
	if path == "" {
		return arena.GenerateOpenings(params.GetInt64("seed", 1), params.GetInt("count", 50), params.GetInt("plies", 8))
	}
	var file, err = os.Open(mapPath(path))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return arena.LoadOpenings(file)
}
