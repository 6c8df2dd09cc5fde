package match

import (
	"encoding/json"

	"brawl/internal/combat"
	"brawl/internal/config"
)

type SimResult struct {
	Winner     Outcome             `json:"winner"`
	PlayerWins int                 `json:"player_wins"`
	BotWins    int                 `json:"bot_wins"`
	Draws      int                 `json:"draws"`
	Rounds     int                 `json:"rounds"`
	Duration   int                 `json:"duration"`
	Frames     int                 `json:"frames"`
	Hits       map[combat.Side]int `json:"hits"`
	Whiffs     map[combat.Side]int `json:"whiffs"`
	Damage     map[combat.Side]int `json:"damage"`
	MaxCombo   map[combat.Side]int `json:"max_combo"`
	Criticals  map[combat.Side]int `json:"criticals"`
	Events     []combat.Event      `json:"events,omitempty"`
	Meta       SimMeta             `json:"meta"`
}

type SimMeta struct {
	Difficulty  config.Difficulty `json:"difficulty"`
	PilotLevel  config.Difficulty `json:"pilot_level"`
	MaxRounds   int               `json:"max_rounds"`
	RoundLength int               `json:"round_seconds"`
	FPS         int               `json:"frames_per_second"`
}

// RunSingle plays a whole match with a second BotAI standing in for the
// player, tuned by pilot. The controller must be Idle; it is started here.
func RunSingle(c *Controller, pilot config.Difficulty, record bool) (SimResult, error) {
	pilotLevel, err := c.tuning.Level(pilot)
	if err != nil {
		return SimResult{}, err
	}
	m := c.tuning.Match
	res := SimResult{
		Hits:      map[combat.Side]int{},
		Whiffs:    map[combat.Side]int{},
		Damage:    map[combat.Side]int{},
		MaxCombo:  map[combat.Side]int{},
		Criticals: map[combat.Side]int{},
		Meta: SimMeta{
			Difficulty:  c.state.Difficulty,
			PilotLevel:  pilot,
			MaxRounds:   m.MaxRounds,
			RoundLength: m.RoundSeconds,
			FPS:         m.FramesPerSecond,
		},
	}

	autopilot := combat.NewBotAI(c.rng)
	c.Start()
	limit := (m.MaxRounds*m.RoundSeconds + 1) * m.FramesPerSecond
	for frame := 0; frame < limit && c.state.Phase != PhaseMatchOver; frame++ {
		if mv, ok := autopilot.Decide(c.state.Frame, c.player, c.bot, c.tuning, pilotLevel); ok {
			_ = c.act(combat.SidePlayer, mv)
		}
		c.Step()
		res.tally(c.Snapshot().LastEvents, record)
	}

	st := c.state
	res.Winner = st.Winner
	res.PlayerWins, res.BotWins, res.Draws = st.PlayerWins, st.BotWins, st.Draws
	res.Rounds = st.Round
	res.Duration = st.Elapsed
	res.Frames = st.Frame
	return res, nil
}

func (r *SimResult) tally(evs []combat.Event, record bool) {
	for _, ev := range evs {
		side, _ := ev.Payload["side"].(combat.Side)
		switch ev.Type {
		case combat.EventHit:
			r.Hits[side]++
			if dmg, ok := ev.Payload["dmg"].(int); ok {
				r.Damage[side] += dmg
			}
			if combo, ok := ev.Payload["combo"].(int); ok && combo > r.MaxCombo[side] {
				r.MaxCombo[side] = combo
			}
		case combat.EventWhiff:
			r.Whiffs[side]++
		case combat.EventCritical:
			r.Criticals[side]++
		}
	}
	if record {
		r.Events = append(r.Events, evs...)
	}
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
