package config

type MovesConfig struct {
	Jump       JumpDef   `yaml:"jump"`
	Block      BlockDef  `yaml:"block"`
	Punch      AttackDef `yaml:"punch"`
	Kick       AttackDef `yaml:"kick"`
	ComboBonus float64   `yaml:"combo_bonus"`
	ComboCap   int       `yaml:"combo_cap"`
}

type JumpDef struct {
	StaminaCost    int `yaml:"stamina_cost"`
	DurationFrames int `yaml:"duration_frames"`
}

// BlockDef: Reduction is the fraction of incoming damage removed while the
// flag is up; StaminaCost is charged to the blocker per absorbed hit.
type BlockDef struct {
	DurationFrames int     `yaml:"duration_frames"`
	Reduction      float64 `yaml:"reduction"`
	StaminaCost    int     `yaml:"stamina_cost"`
}

type AttackDef struct {
	StaminaCost    int    `yaml:"stamina_cost"`
	CooldownFrames int    `yaml:"cooldown_frames"`
	BaseDamage     int    `yaml:"base_damage"`
	Variance       int    `yaml:"variance"`
	CriticalAbove  int    `yaml:"critical_above"`
	CriticalTag    string `yaml:"critical_tag"`
}
