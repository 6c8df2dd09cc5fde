package match

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"brawl/internal/combat"
	"brawl/internal/config"
	"brawl/internal/util"
)

var ErrUnknownAction = errors.New("unknown action")

// Controller owns one match: the State, both fighters and the bot. It is not
// safe for concurrent use; room.Room drives it from a single goroutine.
type Controller struct {
	tuning *config.Tuning
	rng    *rand.Rand
	log    *slog.Logger

	state  State
	player combat.Fighter
	bot    combat.Fighter
	ai     *combat.BotAI
	level  config.DifficultyConfig

	frameInSecond int
	events        []combat.Event
}

func New(t *config.Tuning, d config.Difficulty, rng *rand.Rand, log *slog.Logger) (*Controller, error) {
	if t == nil {
		t = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		rng = util.New(1)
	}
	if d == "" {
		d = t.DefaultDifficulty
	}
	d, err := config.ParseDifficulty(string(d))
	if err != nil {
		return nil, err
	}
	level, err := t.Level(d)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		tuning: t,
		rng:    rng,
		log:    log,
		ai:     combat.NewBotAI(rng),
		level:  level,
	}
	c.state.Difficulty = d
	c.reset()
	return c, nil
}

func (c *Controller) State() State                   { return c.state }
func (c *Controller) Player() combat.Fighter         { return c.player }
func (c *Controller) Bot() combat.Fighter            { return c.bot }
func (c *Controller) Tuning() *config.Tuning         { return c.tuning }
func (c *Controller) Level() config.DifficultyConfig { return c.level }

// Snapshot returns the current projection and drains the pending events.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{Player: c.player, Bot: c.bot, Match: c.state, LastEvents: c.events}
	c.events = nil
	return s
}

func (c *Controller) emit(typ string, payload map[string]any) {
	c.events = append(c.events, combat.Event{T: c.state.Frame, Type: typ, Payload: payload})
}

// reset puts everything back to a fresh Idle match, keeping the difficulty.
func (c *Controller) reset() {
	m := c.tuning.Match
	c.player = combat.NewFighter(combat.SidePlayer, c.tuning.Fighters.Player)
	c.bot = combat.NewFighter(combat.SideBot, c.tuning.Fighters.Bot)
	c.ai.Reset()
	c.frameInSecond = 0
	c.state = State{
		Phase:         PhaseIdle,
		Round:         1,
		MaxRounds:     m.MaxRounds,
		TimeRemaining: m.RoundSeconds,
		Difficulty:    c.state.Difficulty,
	}
}

func (c *Controller) resetRound() {
	c.player.Reset()
	c.bot.Reset()
	c.ai.Reset()
	c.frameInSecond = 0
	c.state.TimeRemaining = c.tuning.Match.RoundSeconds
}

// Start begins a match from Idle. From MatchOver it starts a new one with
// the scores cleared. Anywhere else it does nothing.
func (c *Controller) Start() {
	switch c.state.Phase {
	case PhaseIdle:
	case PhaseMatchOver:
		c.reset()
	default:
		return
	}
	c.state.Phase = PhaseActive
	c.emit(combat.EventRoundStart, map[string]any{"round": c.state.Round, "difficulty": c.state.Difficulty})
	c.log.Info("match started", "difficulty", c.state.Difficulty, "rounds", c.state.MaxRounds)
}

func (c *Controller) Pause() {
	if c.state.Phase != PhaseActive {
		return
	}
	c.state.Phase = PhasePaused
	c.emit(combat.EventPause, nil)
}

func (c *Controller) Resume() {
	if c.state.Phase != PhasePaused {
		return
	}
	c.state.Phase = PhaseActive
	c.emit(combat.EventResume, nil)
}

// Restart discards all progress and returns to Idle.
func (c *Controller) Restart() {
	c.reset()
	c.emit(combat.EventRestart, nil)
}

func (c *Controller) SetDifficulty(level string) error {
	d, err := config.ParseDifficulty(level)
	if err != nil {
		return err
	}
	dc, err := c.tuning.Level(d)
	if err != nil {
		return err
	}
	c.state.Difficulty = d
	c.level = dc
	c.emit(combat.EventDifficulty, map[string]any{"difficulty": d})
	return nil
}

// Apply dispatches one input action. Fighter actions outside Active are
// ignored; rejected fighter actions return combat.ErrActionRejected.
func (c *Controller) Apply(a Action) error {
	if mv, ok := a.fighterMove(); ok {
		return c.act(combat.SidePlayer, mv)
	}
	switch a.Kind {
	case ActStart:
		c.Start()
	case ActPause:
		c.Pause()
	case ActResume:
		c.Resume()
	case ActRestart:
		c.Restart()
	case ActSetDifficulty:
		return c.SetDifficulty(a.Level)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
	return nil
}

func (c *Controller) fighters(side combat.Side) (*combat.Fighter, *combat.Fighter) {
	if side == combat.SideBot {
		return &c.bot, &c.player
	}
	return &c.player, &c.bot
}

func (c *Controller) damageScale(side combat.Side) float64 {
	if side == combat.SideBot {
		return c.level.BotDamageScale
	}
	return c.level.PlayerDamageScale
}

// act runs mv through the resolver for side and resolves the round on a KO.
func (c *Controller) act(side combat.Side, mv combat.Move) error {
	if c.state.Phase != PhaseActive {
		return nil
	}
	att, def := c.fighters(side)
	p := combat.Params{
		Tuning:      c.tuning,
		DamageScale: c.damageScale(side),
		Frame:       c.state.Frame,
		Rng:         c.rng,
	}
	na, nd, evs, err := combat.Resolve(*att, *def, mv, p)
	if err != nil {
		return err
	}
	*att, *def = na, nd
	c.events = append(c.events, evs...)
	if c.player.KnockedOut() || c.bot.KnockedOut() {
		c.ResolveRound(c.RoundOutcome())
	}
	return nil
}

// RoundOutcome compares health: higher wins, equal is a draw. This covers
// both a KO (zero loses) and timer expiry.
func (c *Controller) RoundOutcome() Outcome {
	switch {
	case c.player.Health > c.bot.Health:
		return OutcomePlayer
	case c.bot.Health > c.player.Health:
		return OutcomeBot
	}
	return OutcomeDraw
}

// Step advances the logical clock by one frame: cooldowns and flags decay,
// the bot gets a chance to act, and every FramesPerSecond frames the match
// timer ticks. Nothing moves unless the match is Active.
func (c *Controller) Step() {
	if c.state.Phase != PhaseActive {
		return
	}
	c.state.Frame++
	c.player.Decay(c.state.Frame)
	c.bot.Decay(c.state.Frame)

	if mv, ok := c.ai.Decide(c.state.Frame, c.bot, c.player, c.tuning, c.level); ok {
		if err := c.act(combat.SideBot, mv); err != nil {
			c.log.Debug("bot action rejected", "move", mv.Kind, "err", err)
		}
	}
	if c.state.Phase != PhaseActive {
		return
	}

	c.frameInSecond++
	if c.frameInSecond >= c.tuning.Match.FramesPerSecond {
		c.frameInSecond = 0
		c.Tick()
	}
}

// Tick is one second of match time.
func (c *Controller) Tick() {
	if c.state.Phase != PhaseActive {
		return
	}
	c.state.TimeRemaining--
	c.state.Elapsed++
	regen := c.tuning.Match.StaminaRegenPerSecond
	c.player.Regen(regen)
	c.bot.Regen(regen)
	if c.state.TimeRemaining <= 0 {
		c.state.TimeRemaining = 0
		c.ResolveRound(c.RoundOutcome())
	}
}

// ResolveRound books the round for o and either ends the match or resets
// the fighters for the next round. A draw awards nobody but still uses up
// the round.
func (c *Controller) ResolveRound(o Outcome) {
	if c.state.Phase != PhaseActive {
		return
	}
	c.state.Phase = PhaseRoundOver
	switch o {
	case OutcomePlayer:
		c.state.PlayerWins++
	case OutcomeBot:
		c.state.BotWins++
	default:
		o = OutcomeDraw
		c.state.Draws++
	}
	c.emit(combat.EventRoundOver, map[string]any{
		"round": c.state.Round, "winner": o,
		"player_wins": c.state.PlayerWins, "bot_wins": c.state.BotWins,
		"player_hp": c.player.Health, "bot_hp": c.bot.Health,
	})
	c.log.Debug("round over", "round", c.state.Round, "winner", o)

	lead := max(c.state.PlayerWins, c.state.BotWins)
	if c.state.Round >= c.state.MaxRounds || lead > c.state.MaxRounds/2 {
		c.finish()
		return
	}
	c.state.Round++
	c.resetRound()
	c.state.Phase = PhaseActive
	c.emit(combat.EventRoundStart, map[string]any{"round": c.state.Round, "difficulty": c.state.Difficulty})
}

func (c *Controller) finish() {
	switch {
	case c.state.PlayerWins > c.state.BotWins:
		c.state.Winner = OutcomePlayer
	case c.state.BotWins > c.state.PlayerWins:
		c.state.Winner = OutcomeBot
	default:
		c.state.Winner = OutcomeDraw
	}
	c.state.Phase = PhaseMatchOver
	c.emit(combat.EventMatchOver, map[string]any{
		"winner": c.state.Winner, "rounds": c.state.Round,
		"player_wins": c.state.PlayerWins, "bot_wins": c.state.BotWins,
		"elapsed": c.state.Elapsed,
	})
	c.log.Info("match over", "winner", c.state.Winner,
		"player_wins", c.state.PlayerWins, "bot_wins", c.state.BotWins, "elapsed", c.state.Elapsed)
}
