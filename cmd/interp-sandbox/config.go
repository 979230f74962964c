package main

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SandboxConfig holds the scene manifest and loop tuning.
type SandboxConfig struct {
	Loop    LoopConfig    `yaml:"loop"`
	Sprites SpritesConfig `yaml:"sprites"`
}

// LoopConfig tunes the fixed-step loop. A deliberately coarse step makes
// the difference between blended and raw presentation visible by eye.
type LoopConfig struct {
	Step         time.Duration `yaml:"step"`
	Speed        float64       `yaml:"speed"`
	MaxFPS       float64       `yaml:"max_fps"`
	FPSTolerance float64       `yaml:"fps_tolerance"`
}

// SpritesConfig controls the generated scene.
type SpritesConfig struct {
	Count    int     `yaml:"count"`
	MinSpeed float64 `yaml:"min_speed"` // cells per second
	MaxSpeed float64 `yaml:"max_speed"`
	Wrap     bool    `yaml:"wrap"` // wrap at the edges instead of bouncing
}

func (c *SandboxConfig) defaults() {
	if c.Loop.Step <= 0 {
		c.Loop.Step = 100 * time.Millisecond
	}
	if c.Loop.Speed <= 0 {
		c.Loop.Speed = 1.0
	}
	if c.Loop.MaxFPS == 0 {
		c.Loop.MaxFPS = 60
	}
	if c.Sprites.Count <= 0 {
		c.Sprites.Count = 12
	}
	if c.Sprites.MinSpeed <= 0 {
		c.Sprites.MinSpeed = 4
	}
	if c.Sprites.MaxSpeed < c.Sprites.MinSpeed {
		c.Sprites.MaxSpeed = c.Sprites.MinSpeed * 4
	}
}

// loadConfig reads a YAML manifest; a missing path yields the defaults.
func loadConfig(path string) (*SandboxConfig, error) {
	cfg := &SandboxConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.defaults()
	return cfg, nil
}
