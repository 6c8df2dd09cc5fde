package combat

// Event is a tagged record of something that happened on frame T. The
// presentation side turns these into log lines and animations.
type Event struct {
	T       int            `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventMove       = "Move"
	EventJump       = "Jump"
	EventBlock      = "Block"
	EventAttack     = "Attack"
	EventHit        = "Hit"
	EventWhiff      = "Whiff"
	EventCritical   = "Critical"
	EventRoundStart = "RoundStart"
	EventRoundOver  = "RoundOver"
	EventMatchOver  = "MatchOver"
	EventPause      = "Pause"
	EventResume     = "Resume"
	EventRestart    = "Restart"
	EventDifficulty = "DifficultyChanged"
)

type Side string

const (
	SidePlayer Side = "player"
	SideBot    Side = "bot"
)

type MoveKind string

const (
	KindMove        MoveKind = "move"
	KindJump        MoveKind = "jump"
	KindBlock       MoveKind = "block"
	KindLightAttack MoveKind = "light_attack"
	KindHeavyAttack MoveKind = "heavy_attack"
)

// Move is one fighter action. Dir is only read for KindMove: -1 left, +1 right.
type Move struct {
	Kind MoveKind
	Dir  int
}
