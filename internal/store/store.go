// Package store is the in-memory reference implementation of the
// persistence collaborator the engine is specified against. The engine is
// pure and performs no locking; this layer supplies the serialization
// guarantee by versioning every room snapshot and rejecting stale writes
// with a compare-and-swap, so two racing actions can never both apply.
package store

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pokerrooms/internal/engine"
)

var (
	// ErrVersionConflict rejects a write based on a stale snapshot read.
	// The caller re-reads and recomputes.
	ErrVersionConflict = errors.New("snapshot version conflict")

	// ErrRoomNotFound rejects operations on unknown rooms.
	ErrRoomNotFound = errors.New("room not found")
)

// RoomSnapshot is one room's durable state. A nil HandState is the
// authoritative "no active hand" signal; the secret row lives and dies with
// it and is never part of any player-facing read.
type RoomSnapshot struct {
	Room    engine.Room
	Players []engine.SeatedPlayer
	State   *engine.HandState
	Secret  *engine.HandSecret
	Version uint64
}

type idemRecord struct {
	result  *engine.ActionResult
	expires time.Time
}

// Memory is a mutex-guarded snapshot store with per-token idempotency
// records. The clock is injectable so record expiry is testable.
type Memory struct {
	mu      sync.Mutex
	rooms   map[string]RoomSnapshot
	results map[string][]engine.HandResult
	idem    map[string]idemRecord
	clock   quartz.Clock
	idemTTL time.Duration
	logger  *log.Logger
}

// Option configures a Memory store.
type Option func(*Memory)

// WithClock injects a clock, usually a quartz.Mock in tests.
func WithClock(clock quartz.Clock) Option {
	return func(m *Memory) { m.clock = clock }
}

// WithLogger sets the store's logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Memory) { m.logger = logger }
}

// WithIdempotencyTTL overrides how long action outcomes are remembered for
// retried tokens. Default is one hour.
func WithIdempotencyTTL(ttl time.Duration) Option {
	return func(m *Memory) { m.idemTTL = ttl }
}

// NewMemory creates an empty store.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		rooms:   make(map[string]RoomSnapshot),
		results: make(map[string][]engine.HandResult),
		idem:    make(map[string]idemRecord),
		clock:   quartz.NewReal(),
		idemTTL: time.Hour,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateRoom registers a room at version 1.
func (m *Memory) CreateRoom(room engine.Room, players []engine.SeatedPlayer) RoomSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := RoomSnapshot{Room: room, Players: players, Version: 1}
	m.rooms[room.ID] = snap
	m.logger.Debug("room created", "room", room.ID, "players", len(players))
	return snap
}

// Get returns the latest snapshot for a room.
func (m *Memory) Get(roomID string) (RoomSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.rooms[roomID]
	if !ok {
		return RoomSnapshot{}, ErrRoomNotFound
	}
	return snap, nil
}

// CompareAndSwap writes the next snapshot only if the stored version still
// matches the one the caller computed from. The version is bumped on write.
// When the next snapshot's hand state is nil, the secret row is destroyed
// with it regardless of what the caller passed.
func (m *Memory) CompareAndSwap(roomID string, expected uint64, next RoomSnapshot) (RoomSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.rooms[roomID]
	if !ok {
		return RoomSnapshot{}, ErrRoomNotFound
	}
	if current.Version != expected {
		m.logger.Debug("compare-and-swap rejected", "room", roomID, "expected", expected, "current", current.Version)
		return RoomSnapshot{}, ErrVersionConflict
	}

	next.Version = expected + 1
	if next.State == nil {
		next.Secret = nil
	}
	m.rooms[roomID] = next
	return next, nil
}

// AppendResult writes the once-per-hand result row.
func (m *Memory) AppendResult(roomID string, result engine.HandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[roomID] = append(m.results[roomID], result)
	m.logger.Debug("hand result recorded", "room", roomID, "hand", result.HandID, "pot", result.FinalPot)
}

// Results returns the recorded hand results for a room.
func (m *Memory) Results(roomID string) []engine.HandResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]engine.HandResult(nil), m.results[roomID]...)
}

// Remembered returns the recorded outcome for an idempotency token, if the
// token was seen and has not expired. A remembered outcome is replayed
// verbatim; the action is never applied a second time.
func (m *Memory) Remembered(token string) (*engine.ActionResult, bool) {
	if token == "" {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.idem[token]
	if !ok {
		return nil, false
	}
	if m.clock.Now().After(rec.expires) {
		delete(m.idem, token)
		return nil, false
	}
	return rec.result, true
}

// Remember records an action outcome against its idempotency token.
func (m *Memory) Remember(token string, result *engine.ActionResult) {
	if token == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.idem[token] = idemRecord{result: result, expires: m.clock.Now().Add(m.idemTTL)}
}
