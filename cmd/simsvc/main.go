package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"brawl/internal/combat"
	"brawl/internal/config"
	"brawl/internal/logging"
	"brawl/internal/match"
	"brawl/internal/util"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "simsvc:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("simsvc", flag.ContinueOnError)
	var cfgDir, out, difficulty, pilot, level string
	var seed int64
	var n, workers int
	var saveLog bool
	fs.StringVar(&cfgDir, "config", "assets", "config dir")
	fs.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	fs.StringVar(&difficulty, "difficulty", "", "bot difficulty (default from tuning)")
	fs.StringVar(&pilot, "pilot", "medium", "difficulty of the bot playing the player side")
	fs.Int64Var(&seed, "seed", 12345, "seed")
	fs.IntVar(&n, "n", 1, "number of simulations")
	fs.IntVar(&workers, "workers", 8, "batch workers")
	fs.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	fs.StringVar(&level, "loglevel", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	closer, err := logging.Init(os.Stderr, level, "")
	if err != nil {
		return err
	}
	defer closer.Close()

	tuning, err := config.Load(cfgDir)
	if err != nil {
		return fmt.Errorf("load tuning from %s: %w", cfgDir, err)
	}
	pilotLevel, err := config.ParseDifficulty(pilot)
	if err != nil {
		return fmt.Errorf("pilot: %w", err)
	}
	// Match logs stay quiet in batch mode.
	matchLog := slog.Default()
	if n > 1 {
		matchLog = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	simulate := func(s int64, record bool) (match.SimResult, error) {
		c, err := match.New(tuning, config.Difficulty(difficulty), util.New(s), matchLog)
		if err != nil {
			return match.SimResult{}, err
		}
		return match.RunSingle(c, pilotLevel, record)
	}

	if n <= 1 {
		res, err := simulate(seed, saveLog)
		if err != nil {
			return fmt.Errorf("simulate: %w", err)
		}
		if err := os.WriteFile(out, match.MarshalPretty(res), 0644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		slog.Info("single sim finished", "winner", res.Winner, "rounds", res.Rounds, "duration", res.Duration, "out", out)
		return nil
	}

	type stat struct {
		Wins     map[match.Outcome]int
		Draws    int
		SumT     int
		SumRound int
		Hits     map[combat.Side]int
		Damage   map[combat.Side]int
		Crits    map[combat.Side]int
		Failed   int
	}
	st := stat{
		Wins:   map[match.Outcome]int{},
		Hits:   map[combat.Side]int{},
		Damage: map[combat.Side]int{},
		Crits:  map[combat.Side]int{},
	}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				res, err := simulate(util.Stream(seed, workerID, i), false)

				mu.Lock()
				if err != nil {
					st.Failed++
					mu.Unlock()
					continue
				}
				st.Wins[res.Winner]++
				st.Draws += res.Draws
				st.SumT += res.Duration
				st.SumRound += res.Rounds
				for side, v := range res.Hits {
					st.Hits[side] += v
				}
				for side, v := range res.Damage {
					st.Damage[side] += v
				}
				for side, v := range res.Criticals {
					st.Crits[side] += v
				}
				mu.Unlock()
			}
		}(w)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	done := n - st.Failed
	if done == 0 {
		return fmt.Errorf("all %d simulations failed", n)
	}
	avg := func(m map[combat.Side]int) map[combat.Side]float64 {
		out := map[combat.Side]float64{}
		for k, v := range m {
			out[k] = float64(v) / float64(done)
		}
		return out
	}

	summary := map[string]any{
		"runs":            done,
		"failed":          st.Failed,
		"player_win_rate": float64(st.Wins[match.OutcomePlayer]) / float64(done),
		"bot_win_rate":    float64(st.Wins[match.OutcomeBot]) / float64(done),
		"draw_rate":       float64(st.Wins[match.OutcomeDraw]) / float64(done),
		"drawn_rounds":    st.Draws,
		"avg_time":        float64(st.SumT) / float64(done),
		"avg_rounds":      float64(st.SumRound) / float64(done),
		"avg_hits":        avg(st.Hits),
		"avg_damage":      avg(st.Damage),
		"avg_criticals":   avg(st.Crits),
	}
	if err := os.WriteFile(out, match.MarshalPretty(summary), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	slog.Info("batch done", "runs", done, "out", filepath.Base(out))
	return nil
}
