package engine

import (
	"errors"
	"fmt"
	"time"

	. "github.com/ChizhovVadim/CounterReversi/pkg/common"
)

// Engine is immutable after NewEngine and safe for concurrent use.
// Every search runs on its own thread value.
type Engine struct {
	Options
	evalBuilder func() Evaluator
}

type thread struct {
	engine    *Engine
	evaluator Evaluator
	rules     Rules
	nodes     int64
	stack     [stackSize]struct {
		position Position
		moveList [MaxMoves]Move
		pv       pv
	}
}

type pv struct {
	items [stackSize]Move
	size  int
}

// Evaluator scores a position for side; higher is better for side.
type Evaluator interface {
	Evaluate(p *Position, side Color) int
}

type searchError struct {
	err error
}

func NewEngine(evalBuilder func() Evaluator, options Options) *Engine {
	return &Engine{
		Options:     options,
		evalBuilder: evalBuilder,
	}
}

// Search returns the best move for params.Side and its negamax score.
// Move is MoveEmpty when depth is 0 or the position is terminal.
func (e *Engine) Search(params SearchParams) (SearchResult, error) {
	var start = time.Now()
	if err := e.validate(&params); err != nil {
		return SearchResult{}, err
	}
	var t = e.newThread(&params.Position)
	var score int
	var err = t.run(func() {
		score = t.searchRoot(params.Side, params.Depth)
	})
	if err != nil {
		return SearchResult{}, err
	}
	var mainLine = t.stack[0].pv.toSlice()
	var bestMove = MoveEmpty
	if len(mainLine) != 0 {
		bestMove = mainLine[0]
	}
	return SearchResult{
		Move:     bestMove,
		Score:    score,
		Depth:    params.Depth,
		Nodes:    t.nodes,
		Time:     time.Since(start),
		MainLine: mainLine,
	}, nil
}

func (e *Engine) validate(params *SearchParams) error {
	if params.Depth < 0 || params.Depth > maxHeight {
		return fmt.Errorf("%w: %v", ErrInvalidDepth, params.Depth)
	}
	if !params.Side.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidColor, int(params.Side))
	}
	return params.Position.Validate()
}

func (e *Engine) newThread(p *Position) *thread {
	var t = &thread{
		engine:    e,
		evaluator: e.buildEvaluator(),
		rules:     e.Rules,
	}
	t.stack[0].position = *p
	return t
}

func (e *Engine) buildEvaluator() Evaluator {
	if e.evalBuilder == nil {
		panic(errors.New("bad eval builder"))
	}
	return e.evalBuilder()
}

// run converts an aborted search back into an error.
func (t *thread) run(search func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(searchError); ok {
				err = se.err
				return
			}
			panic(r)
		}
	}()
	search()
	return nil
}

func (t *thread) searchRoot(side Color, depth int) int {
	const height = 0
	if t.engine.Algorithm == AlgorithmMinimax {
		return t.negamax(side, depth, height)
	}
	return t.alphaBeta(side, -valueInfinity, valueInfinity, depth, height)
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []Move {
	var result = make([]Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}
