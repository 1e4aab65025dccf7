// Package config holds the server settings loaded from a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ChizhovVadim/CounterReversi/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr             string   `json:"addr"`
	LogLevel         string   `json:"log_level"`
	Eval             string   `json:"eval"`
	Algorithm        string   `json:"algorithm"`
	MoveLimit        int      `json:"move_limit"`
	MaxSearchDepth   int      `json:"max_search_depth"`
	Threads          int      `json:"threads"`
	MaxPendingPorts  int      `json:"max_pending_ports"`
	MaxBatchSize     int      `json:"max_batch_size"`
	ReadTimeout      Duration `json:"read_timeout"`
	WriteTimeout     Duration `json:"write_timeout"`
	ShutdownTimeout  Duration `json:"shutdown_timeout"`
	AllowedWSOrigins []string `json:"allowed_ws_origins"`
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		LogLevel:        "info",
		Eval:            "weighted",
		Algorithm:       "alphabeta",
		MaxSearchDepth:  12,
		Threads:         4,
		MaxPendingPorts: 8,
		MaxBatchSize:    64,
		ReadTimeout:     Duration(10 * time.Second),
		WriteTimeout:    Duration(60 * time.Second),
		ShutdownTimeout: Duration(10 * time.Second),
	}
}

// Load reads path over the defaults, so a file may set only some fields.
func Load(path string) (Config, error) {
	var config = DefaultConfig()
	var data, err = os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse %v: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty addr", ErrInvalidConfig)
	}
	if err := evalbuilder.Validate(c.Eval); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := engine.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MoveLimit < 0 {
		return fmt.Errorf("%w: move_limit %v", ErrInvalidConfig, c.MoveLimit)
	}
	if c.MaxSearchDepth < 0 {
		return fmt.Errorf("%w: max_search_depth %v", ErrInvalidConfig, c.MaxSearchDepth)
	}
	if c.Threads < 1 || c.MaxPendingPorts < 1 || c.MaxBatchSize < 1 {
		return fmt.Errorf("%w: threads, max_pending_ports and max_batch_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// Duration reads "5s" style strings or integer nanoseconds.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		var parsed, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	return fmt.Errorf("invalid duration %s", data)
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
