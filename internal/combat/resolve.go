package combat

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"brawl/internal/config"
)

// ErrActionRejected means a precondition failed. Nothing was spent and no
// event was produced.
var ErrActionRejected = errors.New("action rejected")

// Params is everything Resolve reads besides the two fighters.
type Params struct {
	Tuning *config.Tuning
	// DamageScale is the difficulty multiplier for the attacker's side.
	DamageScale float64
	Frame       int
	Rng         *rand.Rand
}

// Resolve applies mv from att against def and returns the updated pair plus
// the events it produced. On error both fighters come back unchanged.
func Resolve(att, def Fighter, mv Move, p Params) (Fighter, Fighter, []Event, error) {
	switch mv.Kind {
	case KindMove:
		return resolveMove(att, def, mv, p)
	case KindJump:
		return resolveJump(att, def, p)
	case KindBlock:
		return resolveBlock(att, def, p)
	case KindLightAttack:
		return resolveAttack(att, def, mv, p.Tuning.Moves.Punch, p)
	case KindHeavyAttack:
		return resolveAttack(att, def, mv, p.Tuning.Moves.Kick, p)
	}
	return att, def, nil, reject("unknown move %q", mv.Kind)
}

func reject(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrActionRejected}, args...)...)
}

func resolveMove(att, def Fighter, mv Move, p Params) (Fighter, Fighter, []Event, error) {
	if mv.Dir != -1 && mv.Dir != 1 {
		return att, def, nil, reject("move direction must be -1 or 1, got %d", mv.Dir)
	}
	a := p.Tuning.Arena
	from := att.Position
	att.Position = clamp(from+mv.Dir*a.MoveStep, a.MinX, a.MaxX)
	if att.Position == from {
		return att, def, nil, nil
	}
	return att, def, []Event{{T: p.Frame, Type: EventMove, Payload: map[string]any{
		"id": att.ID, "side": att.Side, "from": from, "to": att.Position,
	}}}, nil
}

func resolveJump(att, def Fighter, p Params) (Fighter, Fighter, []Event, error) {
	j := p.Tuning.Moves.Jump
	if att.Jumping {
		return att, def, nil, reject("%s is already jumping", att.ID)
	}
	if att.Stamina < j.StaminaCost {
		return att, def, nil, reject("%s needs %d stamina to jump, has %d", att.ID, j.StaminaCost, att.Stamina)
	}
	att.Stamina -= j.StaminaCost
	att.Jumping = true
	att.JumpUntil = p.Frame + j.DurationFrames
	return att, def, []Event{{T: p.Frame, Type: EventJump, Payload: map[string]any{
		"id": att.ID, "side": att.Side, "until": att.JumpUntil,
	}}}, nil
}

// Block has no precondition; a second block refreshes the window.
func resolveBlock(att, def Fighter, p Params) (Fighter, Fighter, []Event, error) {
	att.Blocking = true
	att.BlockUntil = p.Frame + p.Tuning.Moves.Block.DurationFrames
	return att, def, []Event{{T: p.Frame, Type: EventBlock, Payload: map[string]any{
		"id": att.ID, "side": att.Side, "until": att.BlockUntil,
	}}}, nil
}

func resolveAttack(att, def Fighter, mv Move, ad config.AttackDef, p Params) (Fighter, Fighter, []Event, error) {
	if att.AttackCooldown > 0 {
		return att, def, nil, reject("%s on cooldown for %d frames", att.ID, att.AttackCooldown)
	}
	if att.Stamina < ad.StaminaCost {
		return att, def, nil, reject("%s needs %d stamina for %s, has %d", att.ID, ad.StaminaCost, mv.Kind, att.Stamina)
	}
	att.Stamina -= ad.StaminaCost
	att.AttackCooldown = ad.CooldownFrames

	events := []Event{{T: p.Frame, Type: EventAttack, Payload: map[string]any{
		"id": att.ID, "side": att.Side, "move": mv.Kind,
	}}}

	if distance(att.Position, def.Position) > p.Tuning.Arena.MeleeRange {
		att.Combo = 0
		events = append(events, Event{T: p.Frame, Type: EventWhiff, Payload: map[string]any{
			"id": att.ID, "side": att.Side, "move": mv.Kind,
			"distance": distance(att.Position, def.Position),
		}})
		return att, def, events, nil
	}

	dmg := RollDamage(ad, att.Combo, p)
	blocked := def.Blocking
	if blocked {
		dmg = Mitigate(dmg, p.Tuning.Moves.Block.Reduction)
		def.Stamina = clamp(def.Stamina-p.Tuning.Moves.Block.StaminaCost, 0, def.MaxStamina)
	}
	def.Damage(dmg)
	att.Combo++
	def.Combo = 0

	events = append(events, Event{T: p.Frame, Type: EventHit, Payload: map[string]any{
		"attacker": att.ID, "side": att.Side, "target": def.ID, "move": mv.Kind,
		"dmg": dmg, "hp": def.Health, "blocked": blocked, "combo": att.Combo,
	}})
	if ad.CriticalAbove > 0 && dmg > ad.CriticalAbove {
		events = append(events, Event{T: p.Frame, Type: EventCritical, Payload: map[string]any{
			"attacker": att.ID, "side": att.Side, "move": mv.Kind, "tag": ad.CriticalTag, "dmg": dmg,
		}})
	}
	return att, def, events, nil
}

// RollDamage is base plus a uniform variance roll, scaled by difficulty and
// by the attacker's combo (capped). Never below 1.
func RollDamage(ad config.AttackDef, combo int, p Params) int {
	raw := ad.BaseDamage
	if ad.Variance > 0 && p.Rng != nil {
		raw += p.Rng.Intn(ad.Variance + 1)
	}
	scale := p.DamageScale
	if scale <= 0 {
		scale = 1
	}
	mv := p.Tuning.Moves
	if combo > mv.ComboCap {
		combo = mv.ComboCap
	}
	dmg := int(math.Round(float64(raw) * scale * (1 + mv.ComboBonus*float64(combo))))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

// Mitigate removes the blocked fraction of dmg. A blocked hit still deals 1.
func Mitigate(dmg int, reduction float64) int {
	out := int(math.Round(float64(dmg) * (1 - reduction)))
	if out < 1 {
		out = 1
	}
	return out
}
