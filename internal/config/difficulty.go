package config

import (
	"fmt"
	"strings"
)

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty accepts the level names case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Easy, Medium, Hard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfiguration, s)
	}
}

type DifficultyConfig struct {
	ReactionFrames    int        `yaml:"reaction_frames"`
	BotDamageScale    float64    `yaml:"bot_damage_scale"`
	PlayerDamageScale float64    `yaml:"player_damage_scale"`
	Weights           BotWeights `yaml:"weights"`
}

type BotWeights struct {
	Light float64 `yaml:"light"`
	Heavy float64 `yaml:"heavy"`
	Block float64 `yaml:"block"`
}

func (w BotWeights) Total() float64 { return w.Light + w.Heavy + w.Block }
