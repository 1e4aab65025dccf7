package train

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/patrikeh/go-deep/training"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CounterReversi/internal/game"
	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
	neural "github.com/ChizhovVadim/CounterReversi/pkg/eval/neural"
)

// SelfPlay plays config.Games engine games and labels every position before a
// placement with the final disc difference from the mover's side, in [-1, 1].
// Game i is seeded with config.Seed+i, so the result does not depend on Threads.
func SelfPlay(ctx context.Context, eng *engine.Engine, config Config, logger zerolog.Logger) (training.Examples, error) {
	var games = make([]training.Examples, config.Games)
	var played int32
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(common.Max(1, config.Threads))
	for i := 0; i < config.Games; i++ {
		i := i
		g.Go(func() error {
			var player = newExplorePlayer(eng, config, config.Seed+int64(i))
			var result, err = game.Play(ctx, common.InitialPosition(), config.Rules, player, player)
			if err != nil {
				return fmt.Errorf("game %v: %w", i, err)
			}
			games[i] = label(result)
			if n := atomic.AddInt32(&played, 1); n%100 == 0 {
				logger.Info().Int32("games", n).Msg("self-play-progress")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var examples training.Examples
	for _, items := range games {
		examples = append(examples, items...)
	}
	logger.Info().Int("games", config.Games).Int("examples", len(examples)).Msg("self-play-finished")
	return examples, nil
}

func label(result game.Result) training.Examples {
	var examples = make(training.Examples, 0, len(result.History))
	var pos = result.Start
	for _, move := range result.History {
		var side = pos.SideToMove()
		if move.IsPlacement() {
			var input = make([]float64, neural.InputSize)
			neural.Features(&pos, side, input)
			examples = append(examples, training.Example{
				Input:    input,
				Response: []float64{discTarget(&result.Final, side)},
			})
		}
		var child common.Position
		if err := pos.MakeMove(side, move, &child); err != nil {
			// history was validated by game.Play
			panic(err)
		}
		pos = child
	}
	return examples
}

func discTarget(final *common.Position, side common.Color) float64 {
	var diff = final.Count(side) - final.Count(side.Opponent())
	return float64(diff) / common.SquareCount
}

// explorePlayer opens with random plies and later leaves the engine move with
// probability Epsilon.
type explorePlayer struct {
	engine *game.EnginePlayer
	rand   *rand.Rand
	config Config
}

func newExplorePlayer(eng *engine.Engine, config Config, seed int64) *explorePlayer {
	return &explorePlayer{
		engine: game.NewEnginePlayer("self-play", eng, config.Depth),
		rand:   rand.New(rand.NewSource(seed)),
		config: config,
	}
}

func (p *explorePlayer) Name() string {
	return p.engine.Name()
}

func (p *explorePlayer) TakeAction(state game.GameState) (common.Move, error) {
	if len(state.History) < p.config.RandomPlies || p.rand.Float64() < p.config.Epsilon {
		return state.Moves[p.rand.Intn(len(state.Moves))], nil
	}
	return p.engine.TakeAction(state)
}
