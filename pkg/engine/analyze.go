package engine

import (
	. "github.com/ChizhovVadim/CounterReversi/pkg/common"
)

// Analyze returns every root move with its exact value at params.Depth,
// best first. Equal values keep generator order.
// A leaf root (depth 0 or game over) has no moves to analyze.
func (e *Engine) Analyze(params SearchParams) ([]MoveScore, error) {
	if err := e.validate(&params); err != nil {
		return nil, err
	}
	var depth = params.Depth
	if depth == 0 {
		return nil, nil
	}
	var t = e.newThread(&params.Position)
	var ml []OrderedMove
	var err = t.run(func() {
		ml = t.analyzeRoot(params.Side, depth)
	})
	if err != nil {
		return nil, err
	}
	sortMoves(ml)
	var result = make([]MoveScore, len(ml))
	for i := range ml {
		result[i] = MoveScore{Move: ml[i].Move, Score: int(ml[i].Key)}
	}
	return result, nil
}

func (t *thread) analyzeRoot(side Color, depth int) []OrderedMove {
	const height = 0
	var position = &t.stack[height].position
	var moves = position.GenerateMoves(side, t.rules, t.stack[height].moveList[:])
	var result = make([]OrderedMove, 0, len(moves))
	for _, move := range moves {
		t.makeMove(side, move, height)
		var score int
		if t.engine.Algorithm == AlgorithmMinimax {
			score = -t.negamax(side.Opponent(), depth-1, height+1)
		} else {
			score = -t.alphaBeta(side.Opponent(), -valueInfinity, valueInfinity, depth-1, height+1)
		}
		result = append(result, OrderedMove{Move: move, Key: int32(score)})
	}
	return result
}
