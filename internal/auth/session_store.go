package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"easyfindshub/internal/model"
)

// DefaultSweepInterval is how often the janitor looks for expired sessions.
const DefaultSweepInterval = time.Minute

// SessionStore is the in-memory registry of live admin sessions.
// Nothing is persisted: a restart logs everybody out.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.Session
	onEvict  func(id uuid.UUID)
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSessionStore creates an empty session registry.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*model.Session),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Create registers a session under id that ends at expiresAt and returns a copy of it.
func (s *SessionStore) Create(id uuid.UUID, email string, isAdmin bool, expiresAt time.Time) *model.Session {
	session := &model.Session{
		ID:        id,
		Email:     email,
		IsAdmin:   isAdmin,
		CreatedAt: s.now(),
		ExpiresAt: expiresAt,
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	cp := *session
	return &cp
}

// Get returns a copy of a live session. Expired sessions are evicted on access.
func (s *SessionStore) Get(id uuid.UUID) (*model.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	var cp model.Session
	if ok {
		cp = *session
	}
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(&cp, s.now()) {
		s.evict([]uuid.UUID{id})
		return nil, false
	}
	return &cp, true
}

// Delete removes a session. Deleting an unknown session is a no-op.
func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of registered sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts every expired session and returns their IDs.
func (s *SessionStore) Sweep() []uuid.UUID {
	now := s.now()
	var expired []uuid.UUID
	s.mu.RLock()
	for id, session := range s.sessions {
		if s.expired(session, now) {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	return s.evict(expired)
}

// StartJanitor sweeps expired sessions every interval until Close. onEvict,
// when set, is called once for each evicted session ID, also for sessions
// found expired by Get.
func (s *SessionStore) StartJanitor(interval time.Duration, onEvict func(id uuid.UUID)) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	s.mu.Lock()
	s.onEvict = onEvict
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Close stops the janitor and drops every session.
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.wg.Wait()

	s.mu.Lock()
	s.sessions = make(map[uuid.UUID]*model.Session)
	s.mu.Unlock()
}

func (s *SessionStore) expired(session *model.Session, now time.Time) bool {
	return !session.ExpiresAt.IsZero() && now.After(session.ExpiresAt)
}

// evict deletes ids that are still expired and notifies onEvict for each one
// actually removed.
func (s *SessionStore) evict(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	now := s.now()
	removed := make([]uuid.UUID, 0, len(ids))

	s.mu.Lock()
	for _, id := range ids {
		if session, ok := s.sessions[id]; ok && s.expired(session, now) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	onEvict := s.onEvict
	s.mu.Unlock()

	if onEvict != nil {
		for _, id := range removed {
			onEvict(id)
		}
	}
	return removed
}
