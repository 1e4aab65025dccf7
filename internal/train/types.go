package train

import (
	"github.com/ChizhovVadim/CounterReversi/pkg/common"
)

type Config struct {
	// self-play
	Games       int
	Depth       int
	RandomPlies int
	Epsilon     float64
	Seed        int64
	Rules       common.Rules
	// training
	Threads         int
	Epochs          int
	LearningRate    float64
	BatchSize       int
	ValidationShare float64
}

func DefaultConfig() Config {
	return Config{
		Games:           1000,
		Depth:           2,
		RandomPlies:     6,
		Epsilon:         0.1,
		Seed:            1,
		Threads:         1,
		Epochs:          10,
		LearningRate:    0.01,
		BatchSize:       64,
		ValidationShare: 0.2,
	}
}
