package config

type FightersConfig struct {
	Player FighterDef `yaml:"player"`
	Bot    FighterDef `yaml:"bot"`
}

type FighterDef struct {
	Name       string `yaml:"name"`
	MaxHealth  int    `yaml:"max_health"`
	MaxStamina int    `yaml:"max_stamina"`
	Spawn      int    `yaml:"spawn"`
}
