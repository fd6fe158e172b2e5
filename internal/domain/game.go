package domain

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var ErrUnknownStatus = errors.New("unknown game status")

type Status byte

const (
	InProgress = Status(iota)
	Check
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for _, v := range []Status{InProgress, Check, Checkmate, Stalemate} {
		if v.String() == string(text) {
			*s = v
			return nil
		}
	}
	return errors.WithMessagef(ErrUnknownStatus, "unmarshal status %q", text)
}

func (s Status) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

// GameState is treated as a value: reducers return a new one instead of editing it.
type GameState struct {
	Board       Board
	Turn        Color
	Selected    *Position
	Highlighted []Position
	Status      Status
}

type Snapshot struct {
	GameUuid    string                       `json:"game_uuid"`
	Board       [BoardSize][BoardSize]*Piece `json:"board"`
	Turn        Color                        `json:"turn"`
	Status      Status                       `json:"status"`
	Selected    *Position                    `json:"selected,omitempty"`
	Highlighted []Position                   `json:"highlighted"`
	StatusLine  string                       `json:"status_line"`
}

// Session is one game and the client that plays it. State is guarded because the hub
// reads it while the client loop writes it. At most one connection is attached at a time.
type Session struct {
	uuid       string
	clientUuid string
	mu         sync.RWMutex
	state      GameState
	attached   bool
	lastSeen   time.Time
}

func NewSession(uuid, clientUuid string, state GameState) *Session {
	return &Session{
		uuid:       uuid,
		clientUuid: clientUuid,
		state:      state,
		lastSeen:   time.Now(),
	}
}

func (s *Session) Uuid() string {
	return s.uuid
}

func (s *Session) ClientUuid() string {
	return s.clientUuid
}

func (s *Session) State() GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) SetState(state GameState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Update replaces the state with fn(state) under the write lock and returns both.
func (s *Session) Update(fn func(GameState) GameState) (prev, next GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev = s.state
	s.state = fn(prev)
	s.lastSeen = time.Now()
	return prev, s.state
}

// Attach marks the session as played by a live connection. It reports false when
// another connection already holds it.
func (s *Session) Attach() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attached {
		return false
	}
	s.attached = true
	s.lastSeen = time.Now()
	return true
}

func (s *Session) Detach() {
	s.mu.Lock()
	s.attached = false
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// IsIdle reports whether no connection holds the session and nothing happened
// to it for at least ttl before now.
func (s *Session) IsIdle(now time.Time, ttl time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.attached && now.Sub(s.lastSeen) >= ttl
}

func (s *Session) IsFinished() bool {
	return s.State().Status.IsTerminal()
}

type GameUseCase interface {
	Play(ctx context.Context, client Client, session *Session) error
	Snapshot(session *Session) Snapshot
}
