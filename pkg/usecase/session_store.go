package usecase

import (
	"sync"
	"time"

	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// sessionStore holds in-flight intake sessions and pending deletions,
// both keyed by user. One user has at most one of each; a new photo
// replaces any existing session.
//
// All session mutation happens under this lock, which is what makes the
// exactly-once completion guarantee hold under concurrent delivery.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[types.UserID]*model.IntakeSession
	deletes  map[types.UserID]pendingDelete
}

// pendingDelete is the first phase of a two-phase stone deletion
type pendingDelete struct {
	stoneID   types.StoneID
	requested time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[types.UserID]*model.IntakeSession),
		deletes:  make(map[types.UserID]pendingDelete),
	}
}

// withSession runs fn with the user's session under the store lock.
// fn receives nil when the user has no session.
func (s *sessionStore) withSession(user types.UserID, fn func(session *model.IntakeSession)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.sessions[user])
}

func (s *sessionStore) replace(session *model.IntakeSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.User] = session
}

func (s *sessionStore) drop(user types.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, user)
}

func (s *sessionStore) setPendingDelete(user types.UserID, stoneID types.StoneID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes[user] = pendingDelete{stoneID: stoneID, requested: time.Now().UTC()}
}

// takePendingDelete removes and returns the user's pending deletion.
// Taking is what makes confirm buttons single-shot.
func (s *sessionStore) takePendingDelete(user types.UserID) (types.StoneID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pd, ok := s.deletes[user]
	if ok {
		delete(s.deletes, user)
	}
	return pd.stoneID, ok
}

// pruneExpired drops sessions and pending deletions idle for longer
// than idleFor and returns how many were removed
func (s *sessionStore) pruneExpired(idleFor time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-idleFor)
	pruned := 0
	for user, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, user)
			pruned++
		}
	}
	for user, pd := range s.deletes {
		if pd.requested.Before(cutoff) {
			delete(s.deletes, user)
			pruned++
		}
	}
	return pruned
}
