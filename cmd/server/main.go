package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ChizhovVadim/CounterReversi/internal/config"
	"github.com/ChizhovVadim/CounterReversi/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterReversi/internal/httpx"
	"github.com/ChizhovVadim/CounterReversi/internal/logging"
	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
)

const name = "CounterReversi server"

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

func main() {
	var cfg = config.DefaultConfig()
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to JSON config")
	var flgAddr = flag.String("addr", "", "listen address, overrides config")
	var flgEval = flag.String("eval", "", "evaluation function, overrides config")
	flag.Parse()

	if configPath != "" {
		var loaded, err = config.Load(configPath)
		if err != nil {
			var bootLogger = logging.NewStderr("info")
			bootLogger.Fatal().Err(err).Str("path", configPath).Msg("load-config-failed")
		}
		cfg = loaded
	}
	if *flgAddr != "" {
		cfg.Addr = *flgAddr
	}
	if *flgEval != "" {
		cfg.Eval = *flgEval
	}

	var logger = logging.NewStderr(cfg.LogLevel)
	logging.Startup(logger, name, versionName, buildDate, gitRevision)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("bad-config")
	}

	var evalBuilder, err = evalbuilder.Get(cfg.Eval)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad-eval")
	}
	var options = engine.NewOptions()
	options.Algorithm, _ = engine.ParseAlgorithm(cfg.Algorithm)
	options.Rules = common.Rules{MoveLimit: cfg.MoveLimit}
	options.Threads = cfg.Threads
	var eng = engine.NewEngine(evalBuilder, options)

	var handler = httpx.New(eng, logger, httpx.Limits{
		MaxSearchDepth:  cfg.MaxSearchDepth,
		MaxBatchSize:    cfg.MaxBatchSize,
		MaxPendingPorts: cfg.MaxPendingPorts,
		AllowedOrigins:  cfg.AllowedWSOrigins,
	}).Routes()

	var server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout.Std(),
		WriteTimeout: cfg.WriteTimeout.Std(),
	}
	var serverErrCh = make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logger.Info().
		Str("addr", cfg.Addr).
		Str("eval", cfg.Eval).
		Str("algorithm", options.Algorithm.String()).
		Msg("listening")

	var runErr error
	select {
	case <-sigCtx.Done():
		logger.Info().Msg("shutdown-signal")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Std())
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("graceful-shutdown-failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			logger.Error().Err(closeErr).Msg("forced-close-failed")
		}
	}
	if runErr != nil {
		logger.Fatal().Err(runErr).Msg("server-failed")
	}
}
