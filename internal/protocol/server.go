package protocol

import (
	"brawl/internal/combat"
	"brawl/internal/match"
)

// Outbound payloads.

type Welcome struct {
	ViewerID        string `json:"viewerId"`
	Room            string `json:"room"`
	FramesPerSecond int    `json:"framesPerSecond"`
}

type State struct {
	Player FighterSnapshot `json:"player"`
	Bot    FighterSnapshot `json:"bot"`
	Match  MatchSnapshot   `json:"match"`
	Events []combat.Event  `json:"events,omitempty"`
}

type FighterSnapshot struct {
	ID         string `json:"id"`
	Health     int    `json:"health"`
	MaxHealth  int    `json:"maxHealth"`
	Stamina    int    `json:"stamina"`
	MaxStamina int    `json:"maxStamina"`
	Position   int    `json:"position"`
	Blocking   bool   `json:"blocking,omitempty"`
	Jumping    bool   `json:"jumping,omitempty"`
	Cooldown   int    `json:"cooldown,omitempty"`
	Combo      int    `json:"combo"`
}

type MatchSnapshot struct {
	Phase         string `json:"phase"`
	Round         int    `json:"round"`
	MaxRounds     int    `json:"maxRounds"`
	TimeRemaining int    `json:"timeRemaining"`
	PlayerWins    int    `json:"playerWins"`
	BotWins       int    `json:"botWins"`
	Draws         int    `json:"draws"`
	Difficulty    string `json:"difficulty"`
	Winner        string `json:"winner,omitempty"`
	Elapsed       int    `json:"elapsed"`
	Frame         int    `json:"frame"`
}

type Error struct {
	Message string `json:"message"`
}

func FromFighter(f combat.Fighter) FighterSnapshot {
	return FighterSnapshot{
		ID:         f.ID,
		Health:     f.Health,
		MaxHealth:  f.MaxHealth,
		Stamina:    f.Stamina,
		MaxStamina: f.MaxStamina,
		Position:   f.Position,
		Blocking:   f.Blocking,
		Jumping:    f.Jumping,
		Cooldown:   f.AttackCooldown,
		Combo:      f.Combo,
	}
}

func FromSnapshot(s match.Snapshot) State {
	m := s.Match
	return State{
		Player: FromFighter(s.Player),
		Bot:    FromFighter(s.Bot),
		Match: MatchSnapshot{
			Phase:         string(m.Phase),
			Round:         m.Round,
			MaxRounds:     m.MaxRounds,
			TimeRemaining: m.TimeRemaining,
			PlayerWins:    m.PlayerWins,
			BotWins:       m.BotWins,
			Draws:         m.Draws,
			Difficulty:    string(m.Difficulty),
			Winner:        string(m.Winner),
			Elapsed:       m.Elapsed,
			Frame:         m.Frame,
		},
		Events: s.LastEvents,
	}
}
