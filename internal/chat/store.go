package chat

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultMaxMessages caps the number of turns kept per session, system turn
// included.
const DefaultMaxMessages = 20

// SessionStore maps session ids to bounded, ordered turn sequences. Sessions
// are volatile: they live in process memory and disappear at shutdown. A
// single mutex guards the whole map, so each mutation (including the
// truncation that follows an append) is atomic per store.
type SessionStore struct {
	mu           sync.Mutex
	sessions     map[string][]Turn
	systemPrompt string
	maxMessages  int
}

func NewSessionStore(systemPrompt string, maxMessages int) *SessionStore {
	if maxMessages < 2 {
		maxMessages = DefaultMaxMessages
	}
	return &SessionStore{
		sessions:     map[string][]Turn{},
		systemPrompt: systemPrompt,
		maxMessages:  maxMessages,
	}
}

// Create registers a new session seeded with the system turn and returns its
// generated id.
func (s *SessionStore) Create() string {
	sid := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = []Turn{{Role: RoleSystem, Content: s.systemPrompt}}
	return sid
}

// Append adds a turn to the session, initializing unknown ids first so that
// client-chosen ids work on first use. If the sequence would exceed the cap,
// it is truncated to the system turn plus the most recent maxMessages-1
// turns; the system turn is never evicted.
func (s *SessionStore) Append(sessionID string, role Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.sessions[sessionID]
	if !ok {
		turns = []Turn{{Role: RoleSystem, Content: s.systemPrompt}}
	}
	turns = append(turns, Turn{Role: role, Content: content})
	if len(turns) > s.maxMessages {
		kept := make([]Turn, 0, s.maxMessages)
		kept = append(kept, turns[0])
		kept = append(kept, turns[len(turns)-(s.maxMessages-1):]...)
		turns = kept
	}
	s.sessions[sessionID] = turns
}

// Read returns a snapshot of the session's turns. Unknown ids yield the
// single-element system-only sequence without registering the id.
func (s *SessionStore) Read(sessionID string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns, ok := s.sessions[sessionID]
	if !ok {
		return []Turn{{Role: RoleSystem, Content: s.systemPrompt}}
	}
	snapshot := make([]Turn, len(turns))
	copy(snapshot, turns)
	return snapshot
}

// Reset unconditionally reinitializes the session to the single system turn.
// The id need not exist yet; reset on an unknown id creates it.
func (s *SessionStore) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = []Turn{{Role: RoleSystem, Content: s.systemPrompt}}
}
