package combat

import "brawl/internal/config"

// Fighter is a plain value; the resolver takes and returns copies.
type Fighter struct {
	ID   string
	Side Side

	Health     int
	MaxHealth  int
	Stamina    int
	MaxStamina int

	Position int
	Spawn    int

	Blocking   bool
	BlockUntil int
	Jumping    bool
	JumpUntil  int

	AttackCooldown int
	Combo          int
}

func NewFighter(side Side, def config.FighterDef) Fighter {
	f := Fighter{
		ID:         def.Name,
		Side:       side,
		MaxHealth:  def.MaxHealth,
		MaxStamina: def.MaxStamina,
		Spawn:      def.Spawn,
	}
	if f.ID == "" {
		f.ID = string(side)
	}
	f.Reset()
	return f
}

// Reset restores the round-start state: full bars, spawn position, no
// flags, no cooldown, no combo.
func (f *Fighter) Reset() {
	f.Health = f.MaxHealth
	f.Stamina = f.MaxStamina
	f.Position = f.Spawn
	f.Blocking, f.BlockUntil = false, 0
	f.Jumping, f.JumpUntil = false, 0
	f.AttackCooldown = 0
	f.Combo = 0
}

// Decay runs once per frame: cooldown counts down and time-boxed flags drop
// once frame reaches their expire-at mark.
func (f *Fighter) Decay(frame int) {
	if f.AttackCooldown > 0 {
		f.AttackCooldown--
	}
	if f.Jumping && frame >= f.JumpUntil {
		f.Jumping = false
	}
	if f.Blocking && frame >= f.BlockUntil {
		f.Blocking = false
	}
}

func (f *Fighter) Regen(n int) {
	f.Stamina = clamp(f.Stamina+n, 0, f.MaxStamina)
}

func (f *Fighter) Damage(n int) {
	f.Health = clamp(f.Health-n, 0, f.MaxHealth)
}

func (f Fighter) KnockedOut() bool { return f.Health <= 0 }
