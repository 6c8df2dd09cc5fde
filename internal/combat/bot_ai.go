package combat

import (
	"math/rand"

	"brawl/internal/config"
)

// BotAI: close in, then pick punch / kick / block by weight. It only thinks
// every ReactionFrames frames, which is what makes easy bots slow.
type BotAI struct {
	rng       *rand.Rand
	nextThink int
}

func NewBotAI(rng *rand.Rand) *BotAI {
	return &BotAI{rng: rng}
}

func (ai *BotAI) Reset() { ai.nextThink = 0 }

type weightedMove struct {
	move   Move
	weight float64
}

// Decide returns the move for this frame, or false while the bot is still
// reacting. Attacks the resolver would reject are left out of the draw.
func (ai *BotAI) Decide(frame int, self, target Fighter, t *config.Tuning, dc config.DifficultyConfig) (Move, bool) {
	if frame < ai.nextThink {
		return Move{}, false
	}
	ai.nextThink = frame + dc.ReactionFrames

	if distance(self.Position, target.Position) > t.Arena.MeleeRange {
		dir := toward(self.Position, target.Position)
		if dir == 0 {
			return Move{}, false
		}
		return Move{Kind: KindMove, Dir: dir}, true
	}

	options := make([]weightedMove, 0, 3)
	if canAttack(self, t.Moves.Punch) {
		options = append(options, weightedMove{Move{Kind: KindLightAttack}, dc.Weights.Light})
	}
	if canAttack(self, t.Moves.Kick) {
		options = append(options, weightedMove{Move{Kind: KindHeavyAttack}, dc.Weights.Heavy})
	}
	if !self.Blocking {
		options = append(options, weightedMove{Move{Kind: KindBlock}, dc.Weights.Block})
	}

	total := 0.0
	for _, o := range options {
		total += o.weight
	}
	if total <= 0 {
		return Move{}, false
	}
	pick := ai.rng.Float64() * total
	acc := 0.0
	for _, o := range options {
		acc += o.weight
		if pick < acc {
			return o.move, true
		}
	}
	return options[len(options)-1].move, true
}

func canAttack(f Fighter, ad config.AttackDef) bool {
	return f.AttackCooldown == 0 && f.Stamina >= ad.StaminaCost
}
