package room

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"brawl/internal/combat"
	"brawl/internal/match"
	"brawl/internal/protocol"
)

const DefaultIdleTimeout = 60 * time.Second

// Room owns one match and is the only goroutine that touches it. Inputs
// arrive on Inbox; the ticker drives match.Controller.Step.
type Room struct {
	Inbox chan any

	Code    string            // room code handed out by the manager
	OnEmpty func(code string) // called when last viewer leaves or the room idles out

	// IdleTimeout closes a room that has had no viewers for this long.
	// Zero disables it.
	IdleTimeout time.Duration

	ctl            *match.Controller
	fps            int
	broadcastEvery int
	frame          int
	surfaces       map[string]Surface
	viewers        atomic.Int32
	idleSince      time.Time
	idleFired      bool
	nextID         int
	quit           chan struct{}
	stopOnce       sync.Once
	log            *slog.Logger
}

func New(ctl *match.Controller, log *slog.Logger) *Room {
	if log == nil {
		log = slog.Default()
	}
	fps := ctl.Tuning().Match.FramesPerSecond
	broadcastEvery := fps / protocol.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	return &Room{
		Inbox:          make(chan any, 256),
		ctl:            ctl,
		fps:            fps,
		broadcastEvery: broadcastEvery,
		surfaces:       make(map[string]Surface),
		IdleTimeout:    DefaultIdleTimeout,
		idleSince:      time.Now(),
		nextID:         1,
		quit:           make(chan struct{}),
		log:            log,
	}
}

func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// NumViewers returns the number of connected surfaces. Safe from any
// goroutine.
func (r *Room) NumViewers() int {
	return int(r.viewers.Load())
}

func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.fps))
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			for id := range r.surfaces {
				r.removeViewer(id)
			}
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.ctl.Step()
			r.frame++
			if r.frame%r.broadcastEvery == 0 {
				r.broadcastState()
			}
			r.checkIdle(time.Now())
		}
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		viewerID := fmt.Sprintf("v%d", r.nextID)
		r.nextID++
		r.surfaces[viewerID] = c.Surface
		r.viewers.Store(int32(len(r.surfaces)))
		c.Reply <- JoinResult{ViewerID: viewerID}
		r.sendTo(c.Surface, protocol.MsgWelcome, protocol.Welcome{
			ViewerID: viewerID, Room: r.Code, FramesPerSecond: r.fps,
		})
		r.sendStateTo(c.Surface)
		r.log.Info("viewer joined", "room", r.Code, "viewer", viewerID)
	case Act:
		s, ok := r.surfaces[c.ViewerID]
		if !ok {
			return
		}
		if err := r.ctl.Apply(c.Action); err != nil {
			if errors.Is(err, combat.ErrActionRejected) {
				r.log.Debug("action rejected", "room", r.Code, "action", c.Action.Kind, "err", err)
			} else {
				r.log.Warn("bad action", "room", r.Code, "viewer", c.ViewerID, "err", err)
				r.sendTo(s, protocol.MsgError, protocol.Error{Message: err.Error()})
			}
		}
		r.broadcastState()
	case Leave:
		r.handleLeave(c.ViewerID)
	}
}

func (r *Room) handleLeave(viewerID string) {
	if _, ok := r.surfaces[viewerID]; ok {
		r.removeViewer(viewerID)
		r.log.Info("viewer left", "room", r.Code, "viewer", viewerID)
	}
	if len(r.surfaces) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

// checkIdle closes the room once it has had no viewers for IdleTimeout.
func (r *Room) checkIdle(now time.Time) {
	if len(r.surfaces) > 0 {
		r.idleSince = now
		return
	}
	if r.IdleTimeout <= 0 || r.idleFired || now.Sub(r.idleSince) < r.IdleTimeout {
		return
	}
	r.idleFired = true
	r.log.Info("room idle", "room", r.Code, "idle", now.Sub(r.idleSince))
	if r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
		return
	}
	r.Stop()
}

func (r *Room) removeViewer(viewerID string) {
	if s, ok := r.surfaces[viewerID]; ok {
		_ = s.Close()
	}
	delete(r.surfaces, viewerID)
	r.viewers.Store(int32(len(r.surfaces)))
}

func (r *Room) broadcastState() {
	b, err := protocol.Encode(protocol.MsgState, protocol.FromSnapshot(r.ctl.Snapshot()))
	if err != nil {
		r.log.Error("encode state", "room", r.Code, "err", err)
		return
	}

	var failed []string
	for id, s := range r.surfaces {
		if err := s.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.removeViewer(id)
	}
}

// sendStateTo gives a newcomer the current picture without draining events
// the other viewers have not seen yet.
func (r *Room) sendStateTo(s Surface) {
	snap := match.Snapshot{Player: r.ctl.Player(), Bot: r.ctl.Bot(), Match: r.ctl.State()}
	r.sendTo(s, protocol.MsgState, protocol.FromSnapshot(snap))
}

func (r *Room) sendTo(s Surface, t string, payload any) {
	b, err := protocol.Encode(t, payload)
	if err != nil {
		return
	}
	_ = s.Send(b)
}

// Done is closed once the room stops.
func (r *Room) Done() <-chan struct{} {
	return r.quit
}
