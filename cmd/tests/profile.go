package main

import (
	"os"
	"runtime/pprof"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

//go tool pprof cpu.prof
func runProfile(cpuprofile, evalName string, depth int) error {
	logger.Info().
		Str("cpuprofile", cpuprofile).
		Str("eval", evalName).
		Msg("profile-started")
	defer logger.Info().Msg("profile-finished")

	var eng, err = newEngine(evalName, "alphabeta")
	if err != nil {
		return err
	}
	f, err := os.Create(cpuprofile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return err
	}
	defer pprof.StopCPUProfile()

	_, err = eng.Search(common.SearchParams{
		Position: common.InitialPosition(),
		Side:     common.Black,
		Depth:    depth,
	})
	return err
}
