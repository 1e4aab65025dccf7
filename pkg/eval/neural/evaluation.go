package eval

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/patrikeh/go-deep"
)

// InputSize is one input per square for own discs and one for opponent discs.
const InputSize = 2 * common.SquareCount

// Scale maps the network output range [-1, 1] to engine score units.
const Scale = 1000

// Config describes the network layout and optionally its trained weights.
type Config struct {
	Name         string        `json:"name"`
	HiddenLayers []int         `json:"hidden_layers"`
	Weights      [][][]float64 `json:"weights,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Name:         "default",
		HiddenLayers: []int{32, 16},
	}
}

func NewNetwork(config Config) *deep.Neural {
	var layout = append(append([]int{}, config.HiddenLayers...), 1)
	var network = deep.NewNeural(&deep.Config{
		Inputs:     InputSize,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		// stddev first, then mean
		Weight:     deep.NewNormal(0.1, 0.0),
		Bias:       true,
	})
	if config.Weights != nil {
		network.ApplyWeights(config.Weights)
	}
	return network
}

func LoadConfig(path string) (Config, error) {
	var data, err = os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse %v: %w", path, err)
	}
	if len(config.Weights) != len(config.HiddenLayers)+1 {
		return Config{}, fmt.Errorf("%v: %v weight layers for %v hidden layers", path, len(config.Weights), len(config.HiddenLayers))
	}
	return config, nil
}

func SaveConfig(path string, config Config) error {
	var data, err = json.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EvaluationService is not safe for concurrent use: build one per search.
type EvaluationService struct {
	network *deep.Neural
	input   []float64
}

func NewEvaluationService(config Config) *EvaluationService {
	return NewEvaluationServiceFromNetwork(NewNetwork(config))
}

func NewEvaluationServiceFromNetwork(network *deep.Neural) *EvaluationService {
	return &EvaluationService{
		network: network,
		input:   make([]float64, InputSize),
	}
}

// Evaluate compares the network view of both sides, so swapping side negates the score.
func (e *EvaluationService) Evaluate(p *common.Position, side common.Color) int {
	var own = e.Predict(p, side)
	var opp = e.Predict(p, side.Opponent())
	return int(math.Round(Scale * (own - opp)))
}

// Predict is the network output for side, clamped to [-1, 1].
func (e *EvaluationService) Predict(p *common.Position, side common.Color) float64 {
	Features(p, side, e.input)
	var output = e.network.Predict(e.input)[0]
	return math.Max(-1, math.Min(1, output))
}

func (e *EvaluationService) Network() *deep.Neural {
	return e.network
}

// Features writes the perspective encoding of p for side into input.
func Features(p *common.Position, side common.Color, input []float64) {
	var own, opp = p.Discs(side), p.Discs(side.Opponent())
	for sq := 0; sq < common.SquareCount; sq++ {
		input[sq] = 0
		input[common.SquareCount+sq] = 0
		if own&common.SquareMask[sq] != 0 {
			input[sq] = 1
		} else if opp&common.SquareMask[sq] != 0 {
			input[common.SquareCount+sq] = 1
		}
	}
}
