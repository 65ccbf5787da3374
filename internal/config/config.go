package config

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/mines"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil

	default:
		return errors.New("invalid duration")
	}
}

type LogConfig struct {
	// File enables a rotating JSON log file next to the console output.
	File       string `json:"file"`
	MaxSize    int    `json:"max_size"` // megabytes
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
}

type WebSocketConfig struct {
	ReadBufferSize  int      `json:"read_buffer_size"`
	WriteBufferSize int      `json:"write_buffer_size"`
	IdleTimeout     Duration `json:"idle_timeout"`
	ReadLimit       int64    `json:"read_limit"` // bytes per message
}

type Config struct {
	Mode      string           `json:"mode"`
	Addr      string           `json:"addr"`
	Board     mines.GameParams `json:"board"`
	MaxCells  int              `json:"max_cells"`
	Seed      *uint64          `json:"seed,omitempty"`
	Log       LogConfig        `json:"log"`
	WebSocket WebSocketConfig  `json:"websocket"`
}

func Default() *Config {
	return &Config{
		Mode:     "production",
		Addr:     ":8080",
		Board:    mines.DefaultParams(),
		MaxCells: mines.DefaultMaxCells,
		Log: LogConfig{
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			IdleTimeout:     Duration{10 * time.Minute},
			ReadLimit:       4096,
		},
	}
}

func (c Config) Fields() logrus.Fields {
	fields := map[string]any{
		"mode":             c.Mode,
		"addr":             c.Addr,
		"board":            c.Board.Seed(),
		"max_cells":        c.MaxCells,
		"log_file":         c.Log.File,
		"log_max_size_mb":  c.Log.MaxSize,
		"log_max_backups":  c.Log.MaxBackups,
		"log_max_age_days": c.Log.MaxAge,
		"ws_read_buffer":   c.WebSocket.ReadBufferSize,
		"ws_write_buffer":  c.WebSocket.WriteBufferSize,
		"ws_idle_timeout":  c.WebSocket.IdleTimeout.Duration.String(),
		"ws_read_limit":    c.WebSocket.ReadLimit,
	}
	if c.Seed != nil {
		fields["seed"] = *c.Seed
	}
	return fields
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

// Validate checks the default board against the params and size limits
// applied to client requests.
func (c Config) Validate() error {
	if err := c.Board.Validate(); err != nil {
		return err
	}
	return c.Board.ValidateSize(c.MaxCells)
}

// Rand returns the board generator: reproducible when a seed is set,
// freshly seeded otherwise.
func (c Config) Rand() *rand.Rand {
	if c.Seed != nil {
		return rand.New(rand.NewPCG(*c.Seed, *c.Seed))
	}
	return mines.NewRand()
}

// ReadConfig overlays the JSON file at path onto config. Keys missing
// from the file keep their current values.
func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else if err := json.Unmarshal(b, config); err != nil {
		return err
	}
	return config.Validate()
}
