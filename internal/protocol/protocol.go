package protocol

import "encoding/json"

const (
	MsgAction  = "action"
	MsgKey     = "key"
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgError   = "error"
)

// BroadcastHz caps how often a room pushes state between input-driven
// pushes. The simulation rate comes from the tuning file.
const BroadcastHz = 10

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
