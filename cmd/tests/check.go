package main

import (
	"fmt"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

// runCheck searches every opening with both algorithms and fails on the
// first position where move or score differ.
func runCheck(openings []common.Position, evalName string, depth int) error {
	logger.Info().Int("positions", len(openings)).Int("depth", depth).Msg("check-started")
	defer logger.Info().Msg("check-finished")

	alphaBeta, err := newEngine(evalName, "alphabeta")
	if err != nil {
		return err
	}
	minimax, err := newEngine(evalName, "minimax")
	if err != nil {
		return err
	}
	var nodesAlphaBeta, nodesMinimax int64
	for i := range openings {
		var params = common.SearchParams{
			Position: openings[i],
			Side:     openings[i].SideToMove(),
			Depth:    depth,
		}
		var r1, err1 = alphaBeta.Search(params)
		if err1 != nil {
			return err1
		}
		var r2, err2 = minimax.Search(params)
		if err2 != nil {
			return err2
		}
		if r1.Move != r2.Move || r1.Score != r2.Score {
			return fmt.Errorf("%v: alphabeta %v %v, minimax %v %v",
				params.Position.Text(), r1.Move, r1.Score, r2.Move, r2.Score)
		}
		nodesAlphaBeta += r1.Nodes
		nodesMinimax += r2.Nodes
	}
	logger.Info().
		Int64("nodes-alphabeta", nodesAlphaBeta).
		Int64("nodes-minimax", nodesMinimax).
		Msg("check-passed")
	return nil
}
