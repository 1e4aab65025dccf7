package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "server.json")
	var text = `{"addr": ":9000", "eval": "material", "read_timeout": "2s", "write_timeout": 1000000000}`
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	var config, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.Addr != ":9000" || config.Eval != "material" {
		t.Errorf("got %+v", config)
	}
	if config.ReadTimeout.Std() != 2*time.Second || config.WriteTimeout.Std() != time.Second {
		t.Errorf("timeouts %v %v", config.ReadTimeout.Std(), config.WriteTimeout.Std())
	}
	if config.MaxBatchSize != DefaultConfig().MaxBatchSize {
		t.Error("defaults must survive a partial file")
	}
}

func TestLoadErrors(t *testing.T) {
	var dir = t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file")
	}
	var tests = []struct {
		name string
		text string
	}{
		{"eval", `{"eval": "stockfish"}`},
		{"algorithm", `{"algorithm": "mcts"}`},
		{"threads", `{"threads": 0}`},
		{"depth", `{"max_search_depth": -1}`},
		{"addr", `{"addr": ""}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var path = filepath.Join(dir, test.name+".json")
			if err := os.WriteFile(path, []byte(test.text), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v", err)
			}
		})
	}
}

func TestDurationJSON(t *testing.T) {
	var data, err = json.Marshal(Duration(1500 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"1.5s"` {
		t.Errorf("got %s", data)
	}
	var d Duration
	if err := json.Unmarshal([]byte(`true`), &d); err == nil {
		t.Error("bool accepted")
	}
}
