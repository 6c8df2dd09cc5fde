package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, TuningFile), []byte(body), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}
	return dir
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestShippedTuningMatchesDefault(t *testing.T) {
	got, err := Load(filepath.Join("..", "..", "assets"))
	if err != nil {
		t.Fatalf("Load(assets): %v", err)
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Fatalf("assets/tuning.yaml drifted from Default():\n got  %+v\n want %+v", got, Default())
	}
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	got, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load(empty dir): %v", err)
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Fatalf("Load(empty dir) = %+v, want defaults", got)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := writeTuning(t, "match:\n  max_rounds: 5\narena:\n  melee_range: 120\ndefault_difficulty: HARD\n")
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Match.MaxRounds != 5 {
		t.Fatalf("MaxRounds = %d, want 5", got.Match.MaxRounds)
	}
	if got.Match.RoundSeconds != 60 {
		t.Fatalf("RoundSeconds = %d, want default 60", got.Match.RoundSeconds)
	}
	if got.Arena.MeleeRange != 120 || got.Arena.MinX != 50 {
		t.Fatalf("Arena = %+v, want melee 120 and default bounds", got.Arena)
	}
	if got.DefaultDifficulty != Hard {
		t.Fatalf("DefaultDifficulty = %q, want %q", got.DefaultDifficulty, Hard)
	}
}

func TestLoadRejectsBadTuning(t *testing.T) {
	cases := map[string]string{
		"zero rounds":       "match:\n  max_rounds: 0\n",
		"inverted arena":    "arena:\n  min_x: 900\n",
		"unknown level":     "default_difficulty: nightmare\n",
		"block over 100%":   "moves:\n  block:\n    reduction: 1.5\n",
		"spawn outside":     "fighters:\n  bot:\n    spawn: 2000\n",
		"partial level":     "difficulty:\n  hard:\n    reaction_frames: 3\n",
		"malformed yaml":    "match: [",
		"no health":         "fighters:\n  player:\n    max_health: 0\n",
		"negative variance": "moves:\n  kick:\n    variance: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeTuning(t, body))
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("Load err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"easy", Easy, false},
		{" Medium ", Medium, false},
		{"HARD", Hard, false},
		{"", "", true},
		{"insane", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("ParseDifficulty(%q) err = %v, want ErrInvalidConfiguration", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseDifficulty(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("TUNING_DIR", "")
	t.Setenv("LOG_LEVEL", "debug")
	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Addr != ":8080" || s.TuningDir != "assets" || s.LogLevel != "debug" {
		t.Fatalf("settings = %+v", s)
	}
}

func TestLoadSettingsReadsEnvFile(t *testing.T) {
	t.Setenv("ADDR", "")
	os.Unsetenv("ADDR")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ADDR=:9999\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Addr != ":9999" {
		t.Fatalf("Addr = %q, want :9999", s.Addr)
	}
}
