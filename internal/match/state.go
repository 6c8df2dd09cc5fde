package match

import (
	"brawl/internal/combat"
	"brawl/internal/config"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseActive    Phase = "active"
	PhasePaused    Phase = "paused"
	PhaseRoundOver Phase = "round_over"
	PhaseMatchOver Phase = "match_over"
)

// Outcome names who took a round or the match.
type Outcome string

const (
	OutcomeNone   Outcome = ""
	OutcomePlayer Outcome = "player"
	OutcomeBot    Outcome = "bot"
	OutcomeDraw   Outcome = "draw"
)

// State is the umbrella match record. Frame is the logical clock every
// time-boxed effect is measured against.
type State struct {
	Phase         Phase
	Round         int
	MaxRounds     int
	TimeRemaining int
	PlayerWins    int
	BotWins       int
	Draws         int
	Difficulty    config.Difficulty
	Winner        Outcome
	Elapsed       int
	Frame         int
}

// Snapshot is what the presentation surface renders. It makes no decisions.
type Snapshot struct {
	Player     combat.Fighter
	Bot        combat.Fighter
	Match      State
	LastEvents []combat.Event
}

type ActionKind string

const (
	ActMove          ActionKind = "move"
	ActJump          ActionKind = "jump"
	ActBlock         ActionKind = "block"
	ActLightAttack   ActionKind = "light_attack"
	ActHeavyAttack   ActionKind = "heavy_attack"
	ActStart         ActionKind = "start"
	ActPause         ActionKind = "pause"
	ActResume        ActionKind = "resume"
	ActRestart       ActionKind = "restart"
	ActSetDifficulty ActionKind = "set_difficulty"
)

// Action is one item of the input stream. Dir is read by ActMove, Level by
// ActSetDifficulty.
type Action struct {
	Kind  ActionKind
	Dir   int
	Level string
}

func (a Action) fighterMove() (combat.Move, bool) {
	switch a.Kind {
	case ActMove:
		return combat.Move{Kind: combat.KindMove, Dir: a.Dir}, true
	case ActJump:
		return combat.Move{Kind: combat.KindJump}, true
	case ActBlock:
		return combat.Move{Kind: combat.KindBlock}, true
	case ActLightAttack:
		return combat.Move{Kind: combat.KindLightAttack}, true
	case ActHeavyAttack:
		return combat.Move{Kind: combat.KindHeavyAttack}, true
	}
	return combat.Move{}, false
}
