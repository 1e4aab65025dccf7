package engine

import (
	. "github.com/ChizhovVadim/CounterReversi/pkg/common"
)

const (
	stackSize = 128
	maxHeight = stackSize - 1
	// Evaluators keep their scores strictly inside the window.
	valueInfinity = 30001
)

// OrderedMove pairs a root move with its search value.
type OrderedMove struct {
	Move Move
	Key  int32
}

// sortMoves is a stable insertion sort, best key first.
func sortMoves(moves []OrderedMove) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}

func isSorted(moves []OrderedMove) bool {
	for i := 1; i < len(moves); i++ {
		if moves[i-1].Key < moves[i].Key {
			return false
		}
	}
	return true
}
