package evalbuilder

import (
	"fmt"
	"strings"

	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
	material "github.com/ChizhovVadim/CounterReversi/pkg/eval/material"
	neural "github.com/ChizhovVadim/CounterReversi/pkg/eval/neural"
	weighted "github.com/ChizhovVadim/CounterReversi/pkg/eval/weighted"
)

const neuralPrefix = "neural:"

// Get returns a builder that makes a fresh evaluator for every search.
// Keys: "" or "weighted", "material", "neural" (untrained) and "neural:<weights.json>".
func Get(key string) (func() engine.Evaluator, error) {
	switch key {
	case "", "weighted":
		return func() engine.Evaluator {
			return weighted.NewEvaluationService()
		}, nil
	case "material":
		return func() engine.Evaluator {
			return material.NewEvaluationService()
		}, nil
	case "neural":
		var config = neural.DefaultConfig()
		var weights = neural.NewNetwork(config).Dump().Weights
		return neuralBuilder(config, weights), nil
	}
	if path, ok := strings.CutPrefix(key, neuralPrefix); ok {
		var config, err = neural.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("bad eval %v: %w", key, err)
		}
		return neuralBuilder(config, config.Weights), nil
	}
	return nil, fmt.Errorf("bad eval %v", key)
}

// neuralBuilder pins the weights so every evaluator scores the same way.
func neuralBuilder(config neural.Config, weights [][][]float64) func() engine.Evaluator {
	config.Weights = weights
	return func() engine.Evaluator {
		return neural.NewEvaluationService(config)
	}
}

func Validate(key string) error {
	var _, err = Get(key)
	return err
}
