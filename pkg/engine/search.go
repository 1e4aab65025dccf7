package engine

import (
	"fmt"

	. "github.com/ChizhovVadim/CounterReversi/pkg/common"
)

// main search method
func (t *thread) alphaBeta(side Color, alpha, beta, depth, height int) int {
	t.clearPV(height)
	var position = &t.stack[height].position
	if depth <= 0 {
		return t.evaluator.Evaluate(position, side)
	}
	var ml = position.GenerateMoves(side, t.rules, t.stack[height].moveList[:])
	if len(ml) == 0 {
		return t.evaluator.Evaluate(position, side)
	}

	var best = -valueInfinity
	for _, move := range ml {
		t.makeMove(side, move, height)
		var score = -t.alphaBeta(side.Opponent(), -beta, -alpha, depth-1, height+1)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			t.assignPV(height, move)
			if alpha >= beta {
				break
			}
		}
	}
	return best
}

// negamax visits the whole tree. It is the reference for alphaBeta.
func (t *thread) negamax(side Color, depth, height int) int {
	t.clearPV(height)
	var position = &t.stack[height].position
	if depth <= 0 {
		return t.evaluator.Evaluate(position, side)
	}
	var ml = position.GenerateMoves(side, t.rules, t.stack[height].moveList[:])
	if len(ml) == 0 {
		return t.evaluator.Evaluate(position, side)
	}

	var best = -valueInfinity
	for _, move := range ml {
		t.makeMove(side, move, height)
		var score = -t.negamax(side.Opponent(), depth-1, height+1)
		if score > best {
			best = score
			t.assignPV(height, move)
		}
	}
	return best
}

// makeMove aborts the search if the generator produced a move that does not apply.
func (t *thread) makeMove(side Color, move Move, height int) {
	var pos = &t.stack[height].position
	var child = &t.stack[height+1].position
	if err := pos.MakeMove(side, move, child); err != nil {
		panic(searchError{fmt.Errorf("generated move %v at %v: %w", move, pos.Text(), err)})
	}
	t.nodes++
}

func (t *thread) clearPV(height int) {
	t.stack[height].pv.clear()
}

func (t *thread) assignPV(height int, move Move) {
	t.stack[height].pv.assign(move, &t.stack[height+1].pv)
}
