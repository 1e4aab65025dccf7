package engine

import (
	"fmt"
	"strings"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

type Algorithm int

const (
	AlgorithmAlphaBeta Algorithm = iota
	AlgorithmMinimax
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmAlphaBeta:
		return "alphabeta"
	case AlgorithmMinimax:
		return "minimax"
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "alphabeta", "nega-alpha", "negaalpha":
		return AlgorithmAlphaBeta, nil
	case "minimax", "negamax", "nega-max":
		return AlgorithmMinimax, nil
	}
	return AlgorithmAlphaBeta, fmt.Errorf("unknown algorithm %q", s)
}

type Options struct {
	Algorithm Algorithm
	Rules     common.Rules
	// Threads bounds the parallel searches of SearchBatch.
	Threads int
}

func NewOptions() Options {
	return Options{
		Algorithm: AlgorithmAlphaBeta,
		Threads:   1,
	}
}
