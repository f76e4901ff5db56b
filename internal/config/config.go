// Package config provides YAML-based game configuration loading and
// difficulty presets for the tiles game.
package config

import (
	"errors"
	"fmt"
)

// TilesConfig contains all configuration for the tiles game.
type TilesConfig struct {
	Scroll    ScrollConfig    `yaml:"scroll"`
	Layout    LayoutConfig    `yaml:"layout"`
	Animation AnimationConfig `yaml:"animation"`
}

// ScrollConfig defines how fast the tile strip moves and how it speeds up.
type ScrollConfig struct {
	BaseSpeed  float64 `yaml:"base_speed"`  // Speed at the start of a run
	SpeedStep  float64 `yaml:"speed_step"`  // Added to speed every time a container is recycled
	StepFactor float64 `yaml:"step_factor"` // Pixels moved per tick per unit of speed
}

// LayoutConfig defines the virtual playfield, measured in pixels.
// The renderer scales pixels to terminal rows.
type LayoutConfig struct {
	ViewportHeight   float64 `yaml:"viewport_height"`    // Height of the visible area
	VisibleRows      int     `yaml:"visible_rows"`       // Rows that fit into the viewport
	RowsPerContainer int     `yaml:"rows_per_container"` // Rows generated per container
	TriggerTolerance float64 `yaml:"trigger_tolerance"`  // Slack before an untapped tile counts as missed
}

// AnimationConfig defines tap feedback animations. Durations are in seconds.
type AnimationConfig struct {
	ScoreScale      float64 `yaml:"score_scale"`       // Peak scale of the score pop
	ScoreUpSecs     float64 `yaml:"score_up_secs"`     // Time to reach the peak scale
	ScoreSettleSecs float64 `yaml:"score_settle_secs"` // Elastic settle back to 1.0
	TileFadeSecs    float64 `yaml:"tile_fade_secs"`    // Fade-out of a tapped tile
}

// RowHeight returns the height of one tile row in pixels.
func (c TilesConfig) RowHeight() float64 {
	return c.Layout.ViewportHeight / float64(c.Layout.VisibleRows)
}

// ContainerHeight returns the height of a full container in pixels.
func (c TilesConfig) ContainerHeight() float64 {
	return c.RowHeight() * float64(c.Layout.RowsPerContainer)
}

// Validate reports configuration values the game cannot run with.
func (c TilesConfig) Validate() error {
	var errs []error
	if c.Scroll.BaseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("scroll.base_speed must be positive, got %v", c.Scroll.BaseSpeed))
	}
	if c.Scroll.SpeedStep < 0 {
		errs = append(errs, fmt.Errorf("scroll.speed_step must not be negative, got %v", c.Scroll.SpeedStep))
	}
	if c.Scroll.StepFactor <= 0 {
		errs = append(errs, fmt.Errorf("scroll.step_factor must be positive, got %v", c.Scroll.StepFactor))
	}
	if c.Layout.ViewportHeight <= 0 {
		errs = append(errs, fmt.Errorf("layout.viewport_height must be positive, got %v", c.Layout.ViewportHeight))
	}
	if c.Layout.VisibleRows < 1 {
		errs = append(errs, fmt.Errorf("layout.visible_rows must be at least 1, got %d", c.Layout.VisibleRows))
	}
	if c.Layout.RowsPerContainer < c.Layout.VisibleRows {
		errs = append(errs, fmt.Errorf("layout.rows_per_container (%d) must cover the viewport (%d rows)",
			c.Layout.RowsPerContainer, c.Layout.VisibleRows))
	}
	if c.Layout.TriggerTolerance < 0 {
		errs = append(errs, fmt.Errorf("layout.trigger_tolerance must not be negative, got %v", c.Layout.TriggerTolerance))
	}
	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset maps a CLI/menu string to a preset.
// An empty or unknown string yields "" and false (keep config values).
func ParsePreset(s string) (DifficultyPreset, bool) {
	for _, p := range Presets {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// ApplyTilesPreset modifies the config based on a difficulty preset.
// Fixed keeps the configured base speed but never speeds up.
func ApplyTilesPreset(cfg *TilesConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Scroll.BaseSpeed = 0.15
		cfg.Scroll.SpeedStep = 0.03
	case DifficultyNormal:
		cfg.Scroll.BaseSpeed = 0.2
		cfg.Scroll.SpeedStep = 0.05
	case DifficultyHard:
		cfg.Scroll.BaseSpeed = 0.3
		cfg.Scroll.SpeedStep = 0.07
	case DifficultyFixed:
		cfg.Scroll.SpeedStep = 0
	}
}
