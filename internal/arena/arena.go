package arena

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CounterReversi/internal/game"
	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

// Config of a match between engine A and engine B.
type Config struct {
	Concurrency int
	Rules       common.Rules
}

// Contender builds a fresh player for every game, so players need not be safe for concurrent use.
type Contender struct {
	Name      string
	NewPlayer func() game.Player
}

type gameInfo struct {
	opening        common.Position
	engineAIsBlack bool
	gameNumber     int
}

type gameResult struct {
	gameInfo gameInfo
	result   game.Result
}

func (r *gameResult) engineAWins() bool {
	return r.result.Winner == common.Black && r.gameInfo.engineAIsBlack ||
		r.result.Winner == common.White && !r.gameInfo.engineAIsBlack
}

type Arena struct {
	config  Config
	logger  zerolog.Logger
	engineA Contender
	engineB Contender
}

func New(config Config, logger zerolog.Logger, engineA, engineB Contender) *Arena {
	return &Arena{
		config:  config,
		logger:  logger,
		engineA: engineA,
		engineB: engineB,
	}
}

// Run plays every opening twice with colors swapped and returns the score of engine A.
func (a *Arena) Run(ctx context.Context, openings []common.Position) (Stats, error) {
	a.logger.Info().Msg("arena-started")
	defer a.logger.Info().Msg("arena-finished")

	var gameConcurrency = common.Max(1, a.config.Concurrency)
	a.logger.Info().
		Int("num-cpu", runtime.NumCPU()).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Int("game-concurrency", gameConcurrency).
		Int("openings", len(openings)).
		Str("engine-a", a.engineA.Name).
		Str("engine-b", a.engineB.Name).
		Msg("arena-config")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)
	var stats Stats

	g.Go(func() error {
		defer close(gameInfos)
		return sendOpenings(ctx, openings, gameInfos)
	})

	g.Go(func() error {
		var err error
		stats, err = a.showResults(ctx, gameResults)
		return err
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < gameConcurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return a.playGames(ctx, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func sendOpenings(ctx context.Context, openings []common.Position, gameInfos chan<- gameInfo) error {
	for i, opening := range openings {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo{opening: opening, engineAIsBlack: true, gameNumber: 1 + 2*i}:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo{opening: opening, engineAIsBlack: false, gameNumber: 1 + 2*i + 1}:
		}
	}
	return nil
}

func (a *Arena) playGames(
	ctx context.Context,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	for info := range gameInfos {
		var playerA, playerB = a.engineA.NewPlayer(), a.engineB.NewPlayer()
		var black, white = playerA, playerB
		if !info.engineAIsBlack {
			black, white = playerB, playerA
		}
		var res, err = game.Play(ctx, info.opening, a.config.Rules, black, white)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- gameResult{gameInfo: info, result: res}:
		}
	}
	return nil
}

func (a *Arena) showResults(ctx context.Context, gameResults <-chan gameResult) (Stats, error) {
	var stats Stats
	for gameResult := range gameResults {
		stats.Games++
		a.logger.Info().
			Int("game", gameResult.gameInfo.gameNumber).
			Bool("engine-a-black", gameResult.gameInfo.engineAIsBlack).
			Str("result", gameResult.result.String()).
			Msg("game-finished")
		if gameResult.result.Winner == common.NoColor {
			stats.Draws++
		} else if gameResult.engineAWins() {
			stats.Wins++
		} else {
			stats.Losses++
		}
		stats.compute()
		a.logger.Info().
			Int("wins", stats.Wins).
			Int("losses", stats.Losses).
			Int("draws", stats.Draws).
			Float64("winning-fraction", stats.WinningFraction).
			Float64("elo-difference", stats.EloDifference).
			Float64("los", stats.LOS).
			Msg("score")
	}
	return stats, ctx.Err()
}
