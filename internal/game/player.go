package game

import (
	"fmt"
	"math/rand"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
)

// EnginePlayer searches every position to a fixed depth.
type EnginePlayer struct {
	name   string
	engine *engine.Engine
	depth  int
}

func NewEnginePlayer(name string, eng *engine.Engine, depth int) *EnginePlayer {
	return &EnginePlayer{name: name, engine: eng, depth: depth}
}

func (p *EnginePlayer) Name() string {
	return fmt.Sprintf("%v (depth %v)", p.name, p.depth)
}

func (p *EnginePlayer) TakeAction(state GameState) (common.Move, error) {
	var result, err = p.engine.Search(common.SearchParams{
		Position: state.Position,
		Side:     state.Side,
		Depth:    p.depth,
	})
	if err != nil {
		return common.MoveEmpty, err
	}
	if result.Move == common.MoveEmpty {
		return state.Moves[0], nil
	}
	return result.Move, nil
}

// RandomPlayer is reproducible for a given seed. Not safe for concurrent use.
type RandomPlayer struct {
	rand *rand.Rand
}

func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{rand: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Name() string {
	return "random"
}

func (p *RandomPlayer) TakeAction(state GameState) (common.Move, error) {
	return state.Moves[p.rand.Intn(len(state.Moves))], nil
}

// FirstMovePlayer always plays the first generated move.
type FirstMovePlayer struct{}

func (FirstMovePlayer) Name() string {
	return "first"
}

func (FirstMovePlayer) TakeAction(state GameState) (common.Move, error) {
	return state.Moves[0], nil
}
