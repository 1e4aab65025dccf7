package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/ChizhovVadim/CounterReversi/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterReversi/internal/logging"
	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
	"github.com/ChizhovVadim/CounterReversi/pkg/protocol"
)

const (
	name   = "CounterReversi"
	author = "Vadim Chizhov"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

func main() {
	var flgEval, flgAlgorithm, flgLogLevel string
	flag.StringVar(&flgEval, "eval", "", "specifies evaluation function")
	flag.StringVar(&flgAlgorithm, "algorithm", "alphabeta", "alphabeta or minimax")
	flag.StringVar(&flgLogLevel, "loglevel", "info", "log level")
	flag.Parse()

	var logger = logging.NewStderr(flgLogLevel)
	logging.Startup(logger, name, versionName, buildDate, gitRevision)

	if err := evalbuilder.Validate(flgEval); err != nil {
		logger.Fatal().Err(err).Msg("bad-eval")
	}
	if _, err := engine.ParseAlgorithm(flgAlgorithm); err != nil {
		logger.Fatal().Err(err).Msg("bad-algorithm")
	}

	var options = engine.NewOptions()
	options.Threads = runtime.NumCPU()
	var moveLimit int

	var evalKey string
	var evalBuilder func() engine.Evaluator

	var newEngine = func() protocol.Engine {
		// options are validated on set
		if evalBuilder == nil || evalKey != flgEval {
			evalKey = flgEval
			evalBuilder, _ = evalbuilder.Get(flgEval)
		}
		var algorithm, _ = engine.ParseAlgorithm(flgAlgorithm)
		var opts = options
		opts.Algorithm = algorithm
		opts.Rules = common.Rules{MoveLimit: moveLimit}
		return engine.NewEngine(evalBuilder, opts)
	}

	var p = protocol.New(name, author, versionName, newEngine,
		[]protocol.Option{
			&protocol.IntOption{Name: "MoveLimit", Min: 0, Max: 1000, Value: &moveLimit},
			&protocol.StringOption{Name: "Algorithm", Value: &flgAlgorithm, Validate: validateAlgorithm},
			&protocol.StringOption{Name: "Eval", Value: &flgEval, Validate: evalbuilder.Validate},
		},
		os.Stdin, os.Stdout,
	)
	p.Run(logger)
}

func validateAlgorithm(s string) error {
	var _, err = engine.ParseAlgorithm(s)
	return err
}
