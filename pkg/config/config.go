// Package config loads editor settings from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/attackgraph/pkg/attack"
	"github.com/dd0wney/attackgraph/pkg/diagram"
)

const (
	DefaultCanvasWidth  = 1280
	DefaultCanvasHeight = 720
	DefaultCellWidth    = 8.0
	DefaultCellHeight   = 16.0
	DefaultLogLevel     = "info"
	DefaultSnapshotDir  = "snapshots"
)

// DefaultPalette is the set of draggable items offered by the editor.
var DefaultPalette = []string{
	diagram.TypeAttacker,
	diagram.TypeFirewall,
	"server",
	"workstation",
	diagram.TypeDatabase,
	diagram.PayloadArrow,
}

// Config holds all editor settings.
type Config struct {
	Canvas      CanvasConfig  `yaml:"canvas"`
	Attack      AttackConfig  `yaml:"attack"`
	Palette     []string      `yaml:"palette" validate:"min=1,max=9,dive,required,max=24"`
	Log         LogConfig     `yaml:"log"`
	Inspect     InspectConfig `yaml:"inspect"`
	SnapshotDir string        `yaml:"snapshot_dir" validate:"required"`
}

// CanvasConfig sizes the drawing surface. Width and Height are the initial
// size before the host reports its own; cells map terminal characters to
// canvas pixels.
type CanvasConfig struct {
	Width      int     `yaml:"width" validate:"min=100,max=20000"`
	Height     int     `yaml:"height" validate:"min=100,max=20000"`
	CellWidth  float64 `yaml:"cell_width" validate:"gt=0"`
	CellHeight float64 `yaml:"cell_height" validate:"gt=0"`
}

// AttackConfig controls the attack animation.
type AttackConfig struct {
	Interval     time.Duration `yaml:"interval"`
	MaxHops      int           `yaml:"max_hops" validate:"min=1,max=10000"`
	CancelOnEdit bool          `yaml:"cancel_on_edit"`
	AttackerType string        `yaml:"attacker_type" validate:"required"`
	TargetType   string        `yaml:"target_type" validate:"required"`
	Color        string        `yaml:"color" validate:"required,hexcolor"`
}

// LogConfig selects the log level and, for the terminal editor, the file the
// log goes to.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// InspectConfig enables the read-only HTTP inspection server when Listen is
// set.
type InspectConfig struct {
	Listen string `yaml:"listen" validate:"omitempty,hostname_port"`
}

// Default returns a config with every field set to its default.
func Default() Config {
	palette := make([]string, len(DefaultPalette))
	copy(palette, DefaultPalette)

	return Config{
		Canvas: CanvasConfig{
			Width:      DefaultCanvasWidth,
			Height:     DefaultCanvasHeight,
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
		},
		Attack: AttackConfig{
			Interval:     attack.DefaultInterval,
			MaxHops:      attack.DefaultMaxHops,
			AttackerType: diagram.TypeAttacker,
			TargetType:   diagram.TypeDatabase,
			Color:        string(diagram.AlertColor),
		},
		Palette:     palette,
		Log:         LogConfig{Level: DefaultLogLevel},
		SnapshotDir: DefaultSnapshotDir,
	}
}

// Load reads a YAML config file. Fields missing from the file keep their
// defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyDefaults fills zero values left by a partial file (for example an
// explicit empty palette).
func ApplyDefaults(cfg *Config) {
	d := Default()
	if len(cfg.Palette) == 0 {
		cfg.Palette = d.Palette
	}
	if cfg.Attack.Interval == 0 {
		cfg.Attack.Interval = d.Attack.Interval
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = d.SnapshotDir
	}
}

// Validate checks struct tags and the cross-field rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	cv := NewConfigValidator("config")
	cv.RangeDuration("attack.interval", c.Attack.Interval, 10*time.Millisecond, time.Minute)
	cv.Custom("attack.target_type", func() error {
		if c.Attack.TargetType == c.Attack.AttackerType {
			return fmt.Errorf("must differ from attacker_type %q", c.Attack.AttackerType)
		}
		return nil
	})
	cv.Custom("palette", func() error {
		seen := make(map[string]bool, len(c.Palette))
		for _, item := range c.Palette {
			if seen[item] {
				return fmt.Errorf("duplicate item %q", item)
			}
			seen[item] = true
		}
		return nil
	})
	return cv.Validate()
}

// AttackSettings converts the attack section for the sequencer.
func (c Config) AttackSettings() attack.Config {
	return attack.Config{
		Interval:     c.Attack.Interval,
		MaxHops:      c.Attack.MaxHops,
		AttackerType: c.Attack.AttackerType,
		TargetType:   c.Attack.TargetType,
		Color:        diagram.Color(c.Attack.Color),
	}
}

// Marshal renders the config as YAML (used by `attackgraph config`).
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
