package main

import (
	"fmt"
	"time"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
)

func benchmark(openings []common.Position, eng *engine.Engine, depth int) {
	logger.Info().Int("positions", len(openings)).Int("depth", depth).Msg("benchmark-started")
	defer logger.Info().Msg("benchmark-finished")

	var start = time.Now()
	var nodes int64
	for i := range openings {
		var p = &openings[i]
		var result, err = eng.Search(common.SearchParams{
			Position: *p,
			Side:     p.SideToMove(),
			Depth:    depth,
		})
		if err != nil {
			logger.Error().Err(err).Str("position", p.Text()).Msg("search-failed")
			continue
		}
		nodes += result.Nodes
	}
	var elapsed = time.Since(start)
	fmt.Println("Time", elapsed)
	fmt.Println("Nodes", nodes)
	fmt.Println("kNPS", nodes/(elapsed.Milliseconds()+1))
}

func runPerft(depth int) error {
	var p = common.InitialPosition()
	for d := 1; d <= depth; d++ {
		var start = time.Now()
		var nodes = common.Perft(&p, common.Black, d)
		fmt.Printf("perft %v nodes %v time %v\n", d, nodes, time.Since(start))
	}
	return nil
}
