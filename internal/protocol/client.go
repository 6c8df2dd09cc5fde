package protocol

import (
	"errors"
	"fmt"
	"strings"

	"brawl/internal/match"
)

var ErrUnknownInput = errors.New("unknown input")

// Inbound payloads.

type Action struct {
	Kind  string `json:"kind"`
	Dir   int    `json:"dir,omitempty"`
	Level string `json:"level,omitempty"`
}

type Key struct {
	Key string `json:"key"`
}

var actionKinds = map[string]match.ActionKind{
	"move":           match.ActMove,
	"jump":           match.ActJump,
	"block":          match.ActBlock,
	"light_attack":   match.ActLightAttack,
	"punch":          match.ActLightAttack,
	"heavy_attack":   match.ActHeavyAttack,
	"kick":           match.ActHeavyAttack,
	"start":          match.ActStart,
	"pause":          match.ActPause,
	"resume":         match.ActResume,
	"restart":        match.ActRestart,
	"set_difficulty": match.ActSetDifficulty,
}

func (a Action) ToMatch() (match.Action, error) {
	kind, ok := actionKinds[strings.ToLower(a.Kind)]
	if !ok {
		return match.Action{}, fmt.Errorf("%w: action %q", ErrUnknownInput, a.Kind)
	}
	return match.Action{Kind: kind, Dir: a.Dir, Level: a.Level}, nil
}

// Keyboard layout of the browser page: a/d walk, w jump, j punch, k kick,
// l block.
var keyBindings = map[string]match.Action{
	"a": {Kind: match.ActMove, Dir: -1},
	"d": {Kind: match.ActMove, Dir: 1},
	"w": {Kind: match.ActJump},
	"j": {Kind: match.ActLightAttack},
	"k": {Kind: match.ActHeavyAttack},
	"l": {Kind: match.ActBlock},
}

func (k Key) ToMatch() (match.Action, error) {
	a, ok := keyBindings[strings.ToLower(k.Key)]
	if !ok {
		return match.Action{}, fmt.Errorf("%w: key %q", ErrUnknownInput, k.Key)
	}
	return a, nil
}
