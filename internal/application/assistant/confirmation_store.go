package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultConfirmationTTL bounds how long a pending action stays executable.
// A confirmation arriving later than this is treated as unknown: the user is
// asked to repeat the command rather than executing a stale mutation.
const DefaultConfirmationTTL = 5 * time.Minute

// PendingAction is a mutation the user has been asked to confirm. The action
// is stored server-side and referenced by an opaque confirmation id, so a
// client cannot alter the payload between command and confirm.
type PendingAction struct {
	Intent   string
	Entities map[string]any
}

type pendingEntry struct {
	action    PendingAction
	expiresAt time.Time
}

// ConfirmationStore holds pending actions in memory, keyed by confirmation id.
type ConfirmationStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[string]pendingEntry
	now     func() time.Time
}

// NewConfirmationStore creates a store with the given TTL; a non-positive TTL
// falls back to the default.
func NewConfirmationStore(ttl time.Duration) *ConfirmationStore {
	if ttl <= 0 {
		ttl = DefaultConfirmationTTL
	}
	return &ConfirmationStore{
		ttl:     ttl,
		pending: make(map[string]pendingEntry),
		now:     time.Now,
	}
}

// Put stores a pending action and returns its confirmation id.
func (s *ConfirmationStore) Put(action PendingAction) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	id := uuid.NewString()
	s.pending[id] = pendingEntry{action: action, expiresAt: s.now().Add(s.ttl)}
	return id
}

// Take removes and returns the pending action for an id. A missing or
// expired id reports false; either way the id is no longer usable, each
// confirmation executes at most once.
func (s *ConfirmationStore) Take(id string) (PendingAction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.pending[id]
	if !ok {
		return PendingAction{}, false
	}
	delete(s.pending, id)
	if s.now().After(entry.expiresAt) {
		return PendingAction{}, false
	}
	return entry.action, true
}

// purgeLocked drops expired entries. Caller holds the lock.
func (s *ConfirmationStore) purgeLocked() {
	now := s.now()
	for id, entry := range s.pending {
		if now.After(entry.expiresAt) {
			delete(s.pending, id)
		}
	}
}
