package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/echolingo/echolingo/backend/internal/model/chat"
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps conversation history in memory, keyed by session ID.
// Sessions live for the lifetime of the process; there is no expiry.
//
// Besides the map lock, the store hands out a per-session mutex so that a
// caller can make a whole read-model-append exchange atomic with respect
// to other requests on the same session.
type Store struct {
	mu           sync.Mutex
	systemPrompt string
	sessions     map[string]chat.Session
	turns        map[string][]chat.Turn
	locks        map[string]*sync.Mutex
}

// NewStore bootstraps the in-memory session store. New sessions are
// seeded with systemPrompt as their first, system-role turn.
func NewStore(systemPrompt string) *Store {
	return &Store{
		systemPrompt: systemPrompt,
		sessions:     make(map[string]chat.Session),
		turns:        make(map[string][]chat.Turn),
		locks:        make(map[string]*sync.Mutex),
	}
}

// GetOrCreate resumes the session with the given ID, or provisions a new
// one when the ID is empty or unknown. It returns the effective session ID
// and a copy of the accumulated turns.
func (s *Store) GetOrCreate(_ context.Context, sessionID string) (string, []chat.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" {
		if _, ok := s.sessions[sessionID]; ok {
			return sessionID, copyTurns(s.turns[sessionID])
		}
	}

	id := s.nextSessionID()
	s.sessions[id] = chat.Session{ID: id, CreatedAt: time.Now().UTC()}
	s.turns[id] = []chat.Turn{{
		ID:        uuid.NewString(),
		Role:      chat.RoleSystem,
		Content:   s.systemPrompt,
		CreatedAt: time.Now().UTC(),
	}}

	return id, copyTurns(s.turns[id])
}

// Append adds a turn to the session history. It is the only mutator;
// turns are never updated or removed.
func (s *Store) Append(_ context.Context, sessionID string, turn chat.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}

	turn.ID = uuid.NewString()
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	s.turns[sessionID] = append(s.turns[sessionID], turn)
	return nil
}

// Turns returns the full turn sequence including the system turn, in the
// order it is replayed to the model.
func (s *Store) Turns(_ context.Context, sessionID string) ([]chat.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.turns[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return copyTurns(turns), nil
}

// History returns the visible transcript: every turn except system ones.
func (s *Store) History(ctx context.Context, sessionID string) ([]chat.Turn, error) {
	turns, err := s.Turns(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	history := make([]chat.Turn, 0, len(turns))
	for _, turn := range turns {
		if turn.Role == chat.RoleSystem {
			continue
		}
		history = append(history, turn)
	}
	return history, nil
}

// LockSession acquires the exclusive lock for one session and returns the
// release func. Callers hold it across a full exchange so concurrent
// requests for the same session cannot interleave their appends.
func (s *Store) LockSession(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// nextSessionID allocates a session_<epoch-millis> identifier, bumping
// the millisecond while the candidate is already taken so that two
// creates in the same millisecond cannot collide. Caller holds s.mu.
func (s *Store) nextSessionID() string {
	millis := time.Now().UnixMilli()
	for {
		id := fmt.Sprintf("session_%d", millis)
		if _, ok := s.sessions[id]; !ok {
			return id
		}
		millis++
	}
}

func copyTurns(turns []chat.Turn) []chat.Turn {
	copied := make([]chat.Turn, len(turns))
	copy(copied, turns)
	return copied
}
