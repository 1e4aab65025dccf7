package train

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	deep "github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	neural "github.com/ChizhovVadim/CounterReversi/pkg/eval/neural"
)

// Train fits the network of netConfig to samples and returns the trained
// config. With netFolderPath set, weights are saved after every epoch.
func Train(
	ctx context.Context,
	samples training.Examples,
	netConfig neural.Config,
	config Config,
	netFolderPath string,
	logger zerolog.Logger,
) (neural.Config, error) {
	logger.Info().Int("samples", len(samples)).Msg("train-started")
	defer logger.Info().Msg("train-finished")

	if len(samples) == 0 {
		return neural.Config{}, fmt.Errorf("no samples")
	}
	if netFolderPath != "" {
		if err := os.MkdirAll(netFolderPath, os.ModePerm); err != nil {
			return neural.Config{}, err
		}
	}

	var validationSize = int(float64(len(samples)) * config.ValidationShare)
	var validation = samples[:validationSize]
	var trainingSet = samples[validationSize:]

	var network = neural.NewNetwork(netConfig)
	var trainer = training.NewBatchTrainer(
		training.NewSGD(config.LearningRate, 0.5, 0, false),
		0, common.Max(1, config.BatchSize), common.Max(1, config.Threads))

	for epoch := 1; epoch <= config.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return neural.Config{}, err
		}
		trainer.Train(network, trainingSet, nil, 1)
		netConfig.Weights = network.Dump().Weights

		var event = logger.Info().Int("epoch", epoch)
		var validationCost = math.NaN()
		if len(validation) != 0 {
			validationCost = calcAverageCost(validation, netConfig, config.Threads)
			event = event.Float64("validation-cost", validationCost)
		}
		event.Msg("epoch-finished")

		if netFolderPath != "" {
			var err = neural.SaveConfig(buildNetPath(netFolderPath, epoch, validationCost), netConfig)
			if err != nil {
				return neural.Config{}, err
			}
		}
	}
	return netConfig, nil
}

// calcAverageCost is the mean squared error on samples. Each goroutine gets
// its own copy of the network.
func calcAverageCost(samples training.Examples, netConfig neural.Config, threads int) float64 {
	var index int32 = -1
	var wg = &sync.WaitGroup{}
	var totalCost float64
	var mu = &sync.Mutex{}
	for i := 0; i < common.Max(1, threads); i++ {
		wg.Add(1)
		go func(network *deep.Neural) {
			defer wg.Done()
			var localCost float64
			for {
				var i = int(atomic.AddInt32(&index, 1))
				if i >= len(samples) {
					break
				}
				var diff = network.Predict(samples[i].Input)[0] - samples[i].Response[0]
				localCost += diff * diff
			}
			mu.Lock()
			totalCost += localCost
			mu.Unlock()
		}(neural.NewNetwork(netConfig))
	}
	wg.Wait()
	return totalCost / float64(len(samples))
}

func buildNetPath(netFolderPath string, epoch int, validationCost float64) string {
	if math.IsNaN(validationCost) {
		return filepath.Join(netFolderPath, fmt.Sprintf("n-%02d.json", epoch))
	}
	var valCostInt = int(100000 * validationCost)
	return filepath.Join(netFolderPath, fmt.Sprintf("n-%02d-%v.json", epoch, valCostInt))
}
