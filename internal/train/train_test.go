package train

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
	material "github.com/ChizhovVadim/CounterReversi/pkg/eval/material"
	neural "github.com/ChizhovVadim/CounterReversi/pkg/eval/neural"
)

func newTestEngine() *engine.Engine {
	return engine.NewEngine(func() engine.Evaluator {
		return material.NewEvaluationService()
	}, engine.NewOptions())
}

func smallConfig() Config {
	var config = DefaultConfig()
	config.Games = 4
	config.Depth = 1
	config.Threads = 2
	config.Epochs = 2
	config.BatchSize = 16
	return config
}

func TestSelfPlay(t *testing.T) {
	var config = smallConfig()
	var examples, err = SelfPlay(context.Background(), newTestEngine(), config, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) < config.Games*20 {
		t.Fatalf("only %v examples", len(examples))
	}
	for _, e := range examples {
		if len(e.Input) != neural.InputSize || len(e.Response) != 1 {
			t.Fatalf("bad example shape %v %v", len(e.Input), len(e.Response))
		}
		if math.Abs(e.Response[0]) > 1 {
			t.Fatalf("target %v out of range", e.Response[0])
		}
	}

	config.Threads = 1
	again, err := SelfPlay(context.Background(), newTestEngine(), config, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again, examples) {
		t.Errorf("self-play is not reproducible: %v vs %v examples", len(again), len(examples))
	}

	config.Seed++
	other, err := SelfPlay(context.Background(), newTestEngine(), config, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(other, examples) {
		t.Error("seed does not change self-play")
	}
}

func TestSelfPlayCancelled(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	if _, err := SelfPlay(ctx, newTestEngine(), smallConfig(), zerolog.Nop()); err == nil {
		t.Error("expected error")
	}
}

func TestDiscTarget(t *testing.T) {
	var p = common.InitialPosition()
	var child common.Position
	if err := p.MakeMove(common.Black, common.MakePlacement(common.SquareD3), &child); err != nil {
		t.Fatal(err)
	}
	if got := discTarget(&child, common.Black); got != 3.0/64 {
		t.Errorf("black %v", got)
	}
	if got := discTarget(&child, common.White); got != -3.0/64 {
		t.Errorf("white %v", got)
	}
}

func TestTrain(t *testing.T) {
	var config = smallConfig()
	var samples, err = SelfPlay(context.Background(), newTestEngine(), config, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	var dir = t.TempDir()
	var netConfig = neural.Config{Name: "test", HiddenLayers: []int{8}}
	trained, err := Train(context.Background(), samples, netConfig, config, dir, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if len(trained.Weights) != 2 {
		t.Fatalf("%v weight layers", len(trained.Weights))
	}
	var hidden = trained.Weights[0]
	for i := 1; i < len(hidden); i++ {
		if fmt.Sprint(hidden[i]) == fmt.Sprint(hidden[0]) {
			t.Errorf("hidden unit %v equals unit 0 after training", i)
		}
	}
	var files, _ = filepath.Glob(filepath.Join(dir, "*.json"))
	if len(files) != config.Epochs {
		t.Fatalf("saved %v", files)
	}
	loaded, err := neural.LoadConfig(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "test" {
		t.Errorf("name %v", loaded.Name)
	}

	var cost = calcAverageCost(samples, trained, 2)
	if math.IsNaN(cost) || cost < 0 {
		t.Errorf("cost %v", cost)
	}
}

func TestTrainNoSamples(t *testing.T) {
	if _, err := Train(context.Background(), nil, neural.DefaultConfig(), smallConfig(), "", zerolog.Nop()); err == nil {
		t.Error("expected error")
	}
}

func TestBuildNetPath(t *testing.T) {
	if got := buildNetPath("nets", 3, 0.125); got != filepath.Join("nets", "n-03-12500.json") {
		t.Error(got)
	}
	if got := buildNetPath("nets", 3, math.NaN()); got != filepath.Join("nets", "n-03.json") {
		t.Error(got)
	}
}
