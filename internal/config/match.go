package config

type MatchConfig struct {
	MaxRounds             int `yaml:"max_rounds"`
	RoundSeconds          int `yaml:"round_seconds"`
	FramesPerSecond       int `yaml:"frames_per_second"`
	StaminaRegenPerSecond int `yaml:"stamina_regen_per_second"`
}

// ArenaConfig is the 1-D stage. Positions are in the same units the page
// used for the sprite's left offset.
type ArenaConfig struct {
	MinX       int `yaml:"min_x"`
	MaxX       int `yaml:"max_x"`
	MoveStep   int `yaml:"move_step"`
	MeleeRange int `yaml:"melee_range"`
}
