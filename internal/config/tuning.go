package config

import (
	"errors"
	"fmt"
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

type Tuning struct {
	Match             MatchConfig                     `yaml:"match"`
	Arena             ArenaConfig                     `yaml:"arena"`
	Fighters          FightersConfig                  `yaml:"fighters"`
	Moves             MovesConfig                     `yaml:"moves"`
	DefaultDifficulty Difficulty                      `yaml:"default_difficulty"`
	Difficulty        map[Difficulty]DifficultyConfig `yaml:"difficulty"`
}

// Default mirrors assets/tuning.yaml. Durations are frames at 20 fps, so the
// 800ms jump is 16 frames and the 500ms block is 10.
func Default() *Tuning {
	return &Tuning{
		Match: MatchConfig{
			MaxRounds:             3,
			RoundSeconds:          60,
			FramesPerSecond:       20,
			StaminaRegenPerSecond: 5,
		},
		Arena: ArenaConfig{MinX: 50, MaxX: 850, MoveStep: 20, MeleeRange: 100},
		Fighters: FightersConfig{
			Player: FighterDef{Name: "Player", MaxHealth: 100, MaxStamina: 100, Spawn: 150},
			Bot:    FighterDef{Name: "Bot", MaxHealth: 100, MaxStamina: 100, Spawn: 750},
		},
		Moves: MovesConfig{
			Jump:  JumpDef{StaminaCost: 20, DurationFrames: 16},
			Block: BlockDef{DurationFrames: 10, Reduction: 0.7, StaminaCost: 5},
			Punch: AttackDef{
				StaminaCost: 15, CooldownFrames: 20, BaseDamage: 8, Variance: 8,
				CriticalAbove: 15, CriticalTag: "critical",
			},
			Kick: AttackDef{
				StaminaCost: 25, CooldownFrames: 30, BaseDamage: 12, Variance: 10,
				CriticalAbove: 20, CriticalTag: "heavy",
			},
			ComboBonus: 0.1,
			ComboCap:   5,
		},
		DefaultDifficulty: Medium,
		Difficulty: map[Difficulty]DifficultyConfig{
			Easy: {
				ReactionFrames: 16, BotDamageScale: 0.8, PlayerDamageScale: 1.1,
				Weights: BotWeights{Light: 5, Heavy: 1, Block: 4},
			},
			Medium: {
				ReactionFrames: 10, BotDamageScale: 1.0, PlayerDamageScale: 1.0,
				Weights: BotWeights{Light: 5, Heavy: 3, Block: 2},
			},
			Hard: {
				ReactionFrames: 5, BotDamageScale: 1.25, PlayerDamageScale: 0.9,
				Weights: BotWeights{Light: 4, Heavy: 4, Block: 2},
			},
		},
	}
}

// Level returns the bot tuning for d.
func (t *Tuning) Level(d Difficulty) (DifficultyConfig, error) {
	dc, ok := t.Difficulty[d]
	if !ok {
		return DifficultyConfig{}, fmt.Errorf("%w: no tuning for difficulty %q", ErrInvalidConfiguration, d)
	}
	return dc, nil
}

// Validate rejects tunings that would let play reach an out-of-range state.
func (t *Tuning) Validate() error {
	m := t.Match
	switch {
	case m.MaxRounds < 1:
		return invalid("match.max_rounds must be >= 1, got %d", m.MaxRounds)
	case m.RoundSeconds < 1:
		return invalid("match.round_seconds must be >= 1, got %d", m.RoundSeconds)
	case m.FramesPerSecond < 1:
		return invalid("match.frames_per_second must be >= 1, got %d", m.FramesPerSecond)
	case m.StaminaRegenPerSecond < 0:
		return invalid("match.stamina_regen_per_second must be >= 0, got %d", m.StaminaRegenPerSecond)
	}

	a := t.Arena
	if a.MinX >= a.MaxX {
		return invalid("arena.min_x (%d) must be below arena.max_x (%d)", a.MinX, a.MaxX)
	}
	if a.MoveStep <= 0 || a.MeleeRange <= 0 {
		return invalid("arena.move_step and arena.melee_range must be > 0")
	}

	for name, f := range map[string]FighterDef{"player": t.Fighters.Player, "bot": t.Fighters.Bot} {
		if f.MaxHealth <= 0 || f.MaxStamina <= 0 {
			return invalid("fighters.%s: max_health and max_stamina must be > 0", name)
		}
		if f.Spawn < a.MinX || f.Spawn > a.MaxX {
			return invalid("fighters.%s.spawn %d outside arena [%d, %d]", name, f.Spawn, a.MinX, a.MaxX)
		}
	}

	mv := t.Moves
	if mv.Jump.StaminaCost < 0 || mv.Jump.DurationFrames <= 0 {
		return invalid("moves.jump: stamina_cost >= 0 and duration_frames > 0 required")
	}
	if mv.Block.DurationFrames <= 0 || mv.Block.StaminaCost < 0 {
		return invalid("moves.block: duration_frames > 0 and stamina_cost >= 0 required")
	}
	if mv.Block.Reduction < 0 || mv.Block.Reduction > 1 {
		return invalid("moves.block.reduction must be within [0, 1], got %g", mv.Block.Reduction)
	}
	for name, ad := range map[string]AttackDef{"punch": mv.Punch, "kick": mv.Kick} {
		if ad.StaminaCost < 0 || ad.CooldownFrames < 0 || ad.BaseDamage < 0 || ad.Variance < 0 {
			return invalid("moves.%s: costs, cooldown and damage must be >= 0", name)
		}
	}
	if mv.ComboBonus < 0 || mv.ComboCap < 0 {
		return invalid("moves.combo_bonus and moves.combo_cap must be >= 0")
	}

	for _, d := range []Difficulty{Easy, Medium, Hard} {
		dc, err := t.Level(d)
		if err != nil {
			return err
		}
		if dc.ReactionFrames < 1 {
			return invalid("difficulty.%s.reaction_frames must be >= 1", d)
		}
		if dc.BotDamageScale <= 0 || dc.PlayerDamageScale <= 0 {
			return invalid("difficulty.%s: damage scales must be > 0", d)
		}
		w := dc.Weights
		if w.Light < 0 || w.Heavy < 0 || w.Block < 0 || w.Total() <= 0 {
			return invalid("difficulty.%s.weights must be >= 0 with a positive total", d)
		}
	}
	if _, err := ParseDifficulty(string(t.DefaultDifficulty)); err != nil {
		return err
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfiguration}, args...)...)
}
