package eval

import (
	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

// Weights is the positional value of a disc on each square, a1 first.
var Weights = [common.SquareCount]int{
	30, -12, 0, -1, -1, 0, -12, 30,
	-12, -15, -3, -3, -3, -3, -15, -12,
	0, -3, 0, -1, -1, 0, -3, 0,
	-1, -3, -1, -1, -1, -1, -3, -1,
	-1, -3, -1, -1, -1, -1, -3, -1,
	0, -3, 0, -1, -1, 0, -3, 0,
	-12, -15, -3, -3, -3, -3, -15, -12,
	30, -12, 0, -1, -1, 0, -12, 30,
}

type EvaluationService struct {
	weights *[common.SquareCount]int
}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{weights: &Weights}
}

func (e *EvaluationService) Evaluate(p *common.Position, side common.Color) int {
	return e.sum(p.Discs(side)) - e.sum(p.Discs(side.Opponent()))
}

func (e *EvaluationService) sum(b uint64) int {
	var result = 0
	for x := b; x != 0; x &= x - 1 {
		result += e.weights[common.FirstOne(x)]
	}
	return result
}
