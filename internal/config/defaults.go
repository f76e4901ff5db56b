package config

import (
	_ "embed"
)

//go:embed defaults/tiles.yaml
var defaultTilesYAML []byte

// DefaultTilesConfig returns the default tiles configuration.
func DefaultTilesConfig() TilesConfig {
	return TilesConfig{
		Scroll: ScrollConfig{
			BaseSpeed:  0.2,
			SpeedStep:  0.05,
			StepFactor: 20,
		},
		Layout: LayoutConfig{
			ViewportHeight:   800,
			VisibleRows:      4,
			RowsPerContainer: 10,
			TriggerTolerance: 2,
		},
		Animation: AnimationConfig{
			ScoreScale:      1.2,
			ScoreUpSecs:     0.3,
			ScoreSettleSecs: 0.7,
			TileFadeSecs:    0.3,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTilesYAML
}
