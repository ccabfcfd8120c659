package session

import (
	"sync"
	"time"

	"ai-helpdesk-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store is the process-wide table of per-identity sessions. Read-modify-write
// is atomic per identity: the inactivity sweep and the message path both go
// through Update, so neither can lose the other's mutation. Different
// identities never block each other beyond the map lookup.
type Store struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates a session store. Sessions idle past the given TTL are
// purged wholesale; 0 disables expiry.
func NewStore(idleTTL time.Duration) *Store {
	if idleTTL <= 0 {
		idleTTL = cache.NoExpiration
	}
	return &Store{
		cache: cache.New(idleTTL, 10*time.Minute),
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Store) lockFor(identity string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[identity]
	if !ok {
		l = &sync.Mutex{}
		s.locks[identity] = l
	}
	return l
}

// Update applies fn to the identity's session under its lock, creating a
// fresh Idle session first if none exists. It returns a copy of the state
// after the mutation.
func (s *Store) Update(identity string, fn func(*store.Session)) store.Session {
	l := s.lockFor(identity)
	l.Lock()
	defer l.Unlock()

	sess := s.load(identity)
	if sess == nil {
		sess = &store.Session{
			Identity:     identity,
			Id:           uuid.New(),
			Phase:        store.PhaseIdle,
			LastActivity: time.Now(),
		}
	}

	fn(sess)
	s.cache.Set(identity, sess, cache.DefaultExpiration)
	return *sess
}

// Get returns a copy of the identity's session, if one exists.
func (s *Store) Get(identity string) (store.Session, bool) {
	l := s.lockFor(identity)
	l.Lock()
	defer l.Unlock()

	sess := s.load(identity)
	if sess == nil {
		return store.Session{}, false
	}
	return *sess, true
}

// Reset discards the identity's session entirely. The next message starts a
// new session with a new correlation id.
func (s *Store) Reset(identity string) {
	l := s.lockFor(identity)
	l.Lock()
	defer l.Unlock()
	s.cache.Delete(identity)
}

// Snapshot returns copies of all live sessions for the inactivity sweep.
// Each session is read under its identity lock; Update mutates the stored
// struct in place, so dereferencing the cached pointer unlocked would race
// with the message path.
func (s *Store) Snapshot() []store.Session {
	items := s.cache.Items()
	sessions := make([]store.Session, 0, len(items))
	for identity := range items {
		if sess, ok := s.Get(identity); ok {
			sessions = append(sessions, sess)
		}
	}
	return sessions
}

func (s *Store) load(identity string) *store.Session {
	if x, found := s.cache.Get(identity); found {
		return x.(*store.Session)
	}
	return nil
}
