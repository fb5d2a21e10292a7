package sessions

import (
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"negar/internal/models"
)

// DefaultTTL is how long a generation session stays addressable after
// creation. Sessions are a process-local cache, not durable state.
const DefaultTTL = 30 * time.Minute

// Session tracks one generation's retry budget, message history, and
// latest evaluation across independent requests. Callers must hold the
// session lock around any read-modify-write of the mutable fields.
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time

	Prompt          string
	Messages        []*schema.Message
	GeneratorModel  string
	BaseTemperature float64
	MaxTokens       int

	EvaluationEnabled bool
	EvaluatorModel    string
	Criteria          models.Criteria
	QualityThreshold  float64

	Remaining         int
	LastScore         *float64
	LastEvaluation    *models.EvaluationResult
	LastParseError    bool
	RegenerationCount int
	LastTemperature   float64
}

// Lock serializes regeneration against this session. Concurrent
// regenerate calls on the same identifier must not decrement the
// retry budget from the same stale value.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Store is a process-wide map from generation identifier to session
// state. Entries expire after the configured TTL; eviction runs
// opportunistically via EvictExpired rather than on a timer.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
}

// NewStore creates a store with the given TTL, falling back to
// DefaultTTL for non-positive values.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Put registers the session under a fresh identifier and stamps its
// creation time. Returns the identifier.
func (st *Store) Put(sess *Session) string {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess.ID = uuid.New().String()
	sess.CreatedAt = time.Now()
	st.sessions[sess.ID] = sess
	return sess.ID
}

// Get returns the session for id, if it exists and has not been
// evicted.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

// Delete removes the session for id, if present.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// EvictExpired removes every session whose creation time plus TTL is
// in the past and reports how many were dropped.
func (st *Store) EvictExpired(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	evicted := 0
	for id, sess := range st.sessions {
		if now.Sub(sess.CreatedAt) > st.ttl {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len reports how many sessions are currently stored.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
