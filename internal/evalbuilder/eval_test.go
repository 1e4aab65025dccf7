package evalbuilder

import (
	"path/filepath"
	"testing"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	neural "github.com/ChizhovVadim/CounterReversi/pkg/eval/neural"
)

func TestGet(t *testing.T) {
	var weights = filepath.Join(t.TempDir(), "net.json")
	var config = neural.DefaultConfig()
	config.Weights = neural.NewNetwork(config).Dump().Weights
	if err := neural.SaveConfig(weights, config); err != nil {
		t.Fatal(err)
	}

	var p = common.InitialPosition()
	for _, key := range []string{"", "weighted", "material", "neural", "neural:" + weights} {
		var builder, err = Get(key)
		if err != nil {
			t.Fatalf("%q: %v", key, err)
		}
		var e1, e2 = builder(), builder()
		if e1.Evaluate(&p, common.Black) != e2.Evaluate(&p, common.Black) {
			t.Errorf("%q: evaluators disagree", key)
		}
	}
}

func TestValidate(t *testing.T) {
	for _, key := range []string{"pesto", "neural:", "neural:" + filepath.Join(t.TempDir(), "missing.json")} {
		if err := Validate(key); err == nil {
			t.Errorf("%q accepted", key)
		}
	}
}
