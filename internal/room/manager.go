package room

import (
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"brawl/internal/config"
	"brawl/internal/match"
	"brawl/internal/util"
)

var ErrRoomNotFound = errors.New("room not found")

// RoomInfo is returned by the API for the room list.
type RoomInfo struct {
	Code    string `json:"code"`
	Viewers int    `json:"viewers"`
}

// Manager holds rooms by code. Rooms are removed when the last viewer leaves
// or when nobody has joined within the idle timeout.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	tuning *config.Tuning
	seed   func() int64
	idle   time.Duration
	log    *slog.Logger
}

func NewManager(t *config.Tuning, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		rooms:  make(map[string]*Room),
		tuning: t,
		seed:   util.ClockSeed,
		idle:   DefaultIdleTimeout,
		log:    log,
	}
}

// CreateRoom starts a fresh Idle match at difficulty d (empty means the
// tuning default) and returns its code.
func (m *Manager) CreateRoom(d config.Difficulty) (string, error) {
	ctl, err := match.New(m.tuning, d, rand.New(rand.NewSource(m.seed())), m.log)
	if err != nil {
		return "", err
	}
	code := uuid.NewString()
	r := New(ctl, m.log)
	r.Code = code
	r.IdleTimeout = m.idle
	r.OnEmpty = func(c string) {
		m.removeRoom(c)
	}

	m.mu.Lock()
	m.rooms[code] = r
	m.mu.Unlock()

	go r.Run()
	m.log.Info("room created", "room", code, "difficulty", ctl.State().Difficulty)
	return code, nil
}

func (m *Manager) Get(code string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// OnEmpty runs on the room goroutine, so only signal Stop here.
func (m *Manager) removeRoom(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[code]; ok {
		r.Stop()
		delete(m.rooms, code)
		m.log.Info("room closed", "room", code)
	}
}

// ListRooms returns all active rooms with their viewer counts.
func (m *Manager) ListRooms() []RoomInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RoomInfo, 0, len(m.rooms))
	for code, r := range m.rooms {
		out = append(out, RoomInfo{Code: code, Viewers: r.NumViewers()})
	}
	return out
}

// Shutdown stops every room.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, r := range m.rooms {
		r.Stop()
		delete(m.rooms, code)
	}
}
