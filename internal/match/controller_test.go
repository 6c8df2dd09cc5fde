package match

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"brawl/internal/combat"
	"brawl/internal/config"
)

func newController(t *testing.T, tn *config.Tuning) *Controller {
	t.Helper()
	if tn == nil {
		tn = config.Default()
	}
	c, err := New(tn, config.Medium, rand.New(rand.NewSource(5)), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// koRound ends the current round in favour of winner by emptying the
// loser's health bar the way a final blow would.
func koRound(c *Controller, winner Outcome) {
	switch winner {
	case OutcomePlayer:
		c.bot.Health = 0
	case OutcomeBot:
		c.player.Health = 0
	default:
		c.player.Health, c.bot.Health = 0, 0
	}
	c.ResolveRound(c.RoundOutcome())
}

func TestNewRejectsUnknownDifficulty(t *testing.T) {
	_, err := New(config.Default(), "brutal", rand.New(rand.NewSource(1)), nil)
	if !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Fatalf("New err = %v, want ErrInvalidConfiguration", err)
	}
}

func TestNewUsesTuningDefaultDifficulty(t *testing.T) {
	tn := config.Default()
	tn.DefaultDifficulty = config.Hard
	c, err := New(tn, "", rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.State().Difficulty != config.Hard {
		t.Fatalf("difficulty = %q, want hard", c.State().Difficulty)
	}
}

func TestNewWithoutRngStillPlays(t *testing.T) {
	c, err := New(config.Default(), config.Medium, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Start()
	for i := 0; i < 400; i++ {
		c.Step()
	}
	if st := c.State(); st.Frame == 0 {
		t.Fatalf("frame = 0 after stepping, want progress")
	}
}

func TestStartInitializesAndIsIdempotent(t *testing.T) {
	c := newController(t, nil)
	if c.State().Phase != PhaseIdle {
		t.Fatalf("phase = %q, want idle", c.State().Phase)
	}
	c.Start()
	st := c.State()
	if st.Phase != PhaseActive || st.Round != 1 || st.TimeRemaining != 60 {
		t.Fatalf("after Start: %+v", st)
	}
	c.Tick()
	c.Start()
	if got := c.State().TimeRemaining; got != 59 {
		t.Fatalf("second Start reset the timer: %d, want 59", got)
	}
}

func TestTickIsNoopUnlessActive(t *testing.T) {
	c := newController(t, nil)
	c.Tick()
	c.Step()
	st := c.State()
	if st.TimeRemaining != 60 || st.Frame != 0 || st.Elapsed != 0 {
		t.Fatalf("idle controller advanced: %+v", st)
	}
}

func TestPauseFreezesTimerAndActions(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	c.Tick()
	c.Pause()
	before := c.Snapshot()

	for i := 0; i < 500; i++ {
		c.Tick()
		c.Step()
	}
	if err := c.Apply(Action{Kind: ActMove, Dir: 1}); err != nil {
		t.Fatalf("move while paused: %v", err)
	}
	after := c.Snapshot()
	if after.Match != before.Match || after.Player != before.Player || after.Bot != before.Bot {
		t.Fatalf("paused match changed:\n before %+v\n after  %+v", before, after)
	}
	if len(after.LastEvents) != 0 {
		t.Fatalf("paused match produced events: %+v", after.LastEvents)
	}

	c.Resume()
	c.Tick()
	if got, want := c.State().TimeRemaining, before.Match.TimeRemaining-1; got != want {
		t.Fatalf("TimeRemaining after resume+tick = %d, want %d", got, want)
	}
}

func TestPauseSuspendsFlagExpiry(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	if err := c.Apply(Action{Kind: ActJump}); err != nil {
		t.Fatalf("jump: %v", err)
	}
	until := c.Player().JumpUntil
	c.Pause()
	for i := 0; i < 100; i++ {
		c.Step()
	}
	if !c.Player().Jumping {
		t.Fatalf("jump expired while paused")
	}
	c.Resume()
	for c.State().Frame < until-1 {
		c.Step()
	}
	if !c.Player().Jumping {
		t.Fatalf("jump expired early at frame %d (until %d)", c.State().Frame, until)
	}
	c.Step()
	if c.Player().Jumping {
		t.Fatalf("jump still up at frame %d (until %d)", c.State().Frame, until)
	}
}

func TestStepTicksTimerOncePerSecond(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	fps := c.Tuning().Match.FramesPerSecond
	for i := 0; i < fps-1; i++ {
		c.Step()
	}
	if got := c.State().TimeRemaining; got != 60 {
		t.Fatalf("timer moved before a full second: %d", got)
	}
	c.Step()
	if got := c.State().TimeRemaining; got != 59 {
		t.Fatalf("TimeRemaining = %d after %d frames, want 59", got, fps)
	}
}

func TestResolveRoundAwardsBotAndResetsFighters(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	c.player.Health, c.bot.Health = 0, 40
	c.player.Position, c.bot.Position = 300, 320
	c.player.Combo = 3

	c.ResolveRound(c.RoundOutcome())

	st := c.State()
	if st.BotWins != 1 || st.PlayerWins != 0 {
		t.Fatalf("wins player=%d bot=%d, want 0 and 1", st.PlayerWins, st.BotWins)
	}
	if st.Round != 2 || st.Phase != PhaseActive || st.TimeRemaining != 60 {
		t.Fatalf("next round state: %+v", st)
	}
	p, b := c.Player(), c.Bot()
	if p.Health != p.MaxHealth || b.Health != b.MaxHealth {
		t.Fatalf("health not reset: player=%d bot=%d", p.Health, b.Health)
	}
	if p.Position != 150 || b.Position != 750 || p.Combo != 0 {
		t.Fatalf("fighters not back at spawn: player=%+v bot=%+v", p, b)
	}
}

func TestBotTakesMatchAfterTwoRounds(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	koRound(c, OutcomeBot)
	if c.State().Phase != PhaseActive {
		t.Fatalf("match ended after one round")
	}
	koRound(c, OutcomeBot)

	st := c.State()
	if st.Phase != PhaseMatchOver || st.Winner != OutcomeBot {
		t.Fatalf("after 2 bot rounds: phase=%q winner=%q", st.Phase, st.Winner)
	}
	if st.TimeRemaining != 60 {
		t.Fatalf("timer = %d; match should end regardless of time left", st.TimeRemaining)
	}
	c.Tick()
	if err := c.Apply(Action{Kind: ActLightAttack}); err != nil {
		t.Fatalf("attack after match over: %v", err)
	}
	if c.State() != st {
		t.Fatalf("finished match still advancing")
	}
}

func TestTimerExpiryGoesToHealthLeader(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	c.player.Health, c.bot.Health = 50, 60
	for i := 0; i < 60; i++ {
		c.Tick()
	}
	st := c.State()
	if st.BotWins != 1 || st.Round != 2 {
		t.Fatalf("timeout: %+v, want bot round and round 2", st)
	}
	if st.Elapsed != 60 {
		t.Fatalf("Elapsed = %d, want 60", st.Elapsed)
	}
}

func TestDrawConsumesRoundWithoutPoint(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	for i := 0; i < 60; i++ {
		c.Tick()
	}
	st := c.State()
	if st.Draws != 1 || st.PlayerWins != 0 || st.BotWins != 0 || st.Round != 2 {
		t.Fatalf("equal-health timeout: %+v", st)
	}
}

func TestTiedFinalRoundIsDrawnMatch(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	koRound(c, OutcomePlayer)
	koRound(c, OutcomeBot)
	koRound(c, OutcomeDraw)
	st := c.State()
	if st.Phase != PhaseMatchOver || st.Winner != OutcomeDraw {
		t.Fatalf("1-1-draw: phase=%q winner=%q", st.Phase, st.Winner)
	}
}

func TestKnockoutFromPlayerAttackEndsRound(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	c.player.Position = c.bot.Position - 40
	c.bot.Health = 1

	if err := c.Apply(Action{Kind: ActLightAttack}); err != nil {
		t.Fatalf("attack: %v", err)
	}
	st := c.State()
	if st.PlayerWins != 1 || st.Round != 2 {
		t.Fatalf("after KO: %+v", st)
	}
	evs := c.Snapshot().LastEvents
	var sawHit, sawRoundOver bool
	for _, e := range evs {
		sawHit = sawHit || e.Type == combat.EventHit
		sawRoundOver = sawRoundOver || e.Type == combat.EventRoundOver
	}
	if !sawHit || !sawRoundOver {
		t.Fatalf("events = %+v, want Hit and RoundOver", evs)
	}
}

func TestApplyReportsRejection(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	c.player.AttackCooldown = 5
	before := c.Player()
	err := c.Apply(Action{Kind: ActHeavyAttack})
	if !errors.Is(err, combat.ErrActionRejected) {
		t.Fatalf("err = %v, want ErrActionRejected", err)
	}
	if c.Player() != before {
		t.Fatalf("rejected attack changed the player")
	}
}

func TestRestartDiscardsProgress(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	koRound(c, OutcomePlayer)
	c.Tick()
	c.Restart()
	st := c.State()
	if st.Phase != PhaseIdle || st.Round != 1 || st.PlayerWins != 0 || st.TimeRemaining != 60 || st.Frame != 0 {
		t.Fatalf("after Restart: %+v", st)
	}
	if st.Difficulty != config.Medium {
		t.Fatalf("Restart dropped difficulty: %q", st.Difficulty)
	}
}

func TestStartAfterMatchOverPlaysAgain(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	koRound(c, OutcomePlayer)
	koRound(c, OutcomePlayer)
	if c.State().Winner != OutcomePlayer {
		t.Fatalf("winner = %q, want player", c.State().Winner)
	}
	c.Start()
	st := c.State()
	if st.Phase != PhaseActive || st.PlayerWins != 0 || st.Winner != OutcomeNone || st.Round != 1 {
		t.Fatalf("play again: %+v", st)
	}
}

func TestSetDifficulty(t *testing.T) {
	c := newController(t, nil)
	if err := c.Apply(Action{Kind: ActSetDifficulty, Level: "hard"}); err != nil {
		t.Fatalf("set hard: %v", err)
	}
	if c.State().Difficulty != config.Hard || c.Level().BotDamageScale != 1.25 {
		t.Fatalf("difficulty not applied: %q %+v", c.State().Difficulty, c.Level())
	}
	err := c.SetDifficulty("impossible")
	if !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}
	if c.State().Difficulty != config.Hard {
		t.Fatalf("bad level changed difficulty to %q", c.State().Difficulty)
	}
}

func TestUnknownAction(t *testing.T) {
	c := newController(t, nil)
	if err := c.Apply(Action{Kind: "taunt"}); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("err = %v, want ErrUnknownAction", err)
	}
}

func TestSnapshotDrainsEvents(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	if evs := c.Snapshot().LastEvents; len(evs) == 0 {
		t.Fatalf("Start produced no events")
	}
	if evs := c.Snapshot().LastEvents; len(evs) != 0 {
		t.Fatalf("events not drained: %+v", evs)
	}
}

func TestInvariantsHoldThroughRandomMatch(t *testing.T) {
	c := newController(t, nil)
	c.Start()
	rng := rand.New(rand.NewSource(99))
	kinds := []ActionKind{ActMove, ActJump, ActBlock, ActLightAttack, ActHeavyAttack}
	for i := 0; i < 20000 && c.State().Phase != PhaseMatchOver; i++ {
		if rng.Intn(3) == 0 {
			_ = c.Apply(Action{Kind: kinds[rng.Intn(len(kinds))], Dir: 1 - 2*rng.Intn(2)})
		}
		c.Step()
		tn := c.Tuning()
		for _, f := range []combat.Fighter{c.Player(), c.Bot()} {
			if f.Health < 0 || f.Health > f.MaxHealth || f.Stamina < 0 || f.Stamina > f.MaxStamina {
				t.Fatalf("step %d: bars out of range %+v", i, f)
			}
			if f.Position < tn.Arena.MinX || f.Position > tn.Arena.MaxX || f.AttackCooldown < 0 {
				t.Fatalf("step %d: position/cooldown out of range %+v", i, f)
			}
		}
		st := c.State()
		if st.Round < 1 || st.Round > st.MaxRounds || st.TimeRemaining < 0 {
			t.Fatalf("step %d: match out of range %+v", i, st)
		}
	}
	if c.State().Phase != PhaseMatchOver {
		t.Fatalf("match did not finish: %+v", c.State())
	}
}
