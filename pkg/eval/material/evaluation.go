package eval

import (
	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

// EvaluationService scores the disc difference.
type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (e *EvaluationService) Evaluate(p *common.Position, side common.Color) int {
	return p.Count(side) - p.Count(side.Opponent())
}
