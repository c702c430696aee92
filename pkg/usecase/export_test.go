package usecase

import (
	"time"

	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// BackdateSessions is exported for testing: it shifts every in-flight
// session and pending deletion into the past so prune behavior can be
// tested without sleeping.
func (uc *IntakeUseCase) BackdateSessions(d time.Duration) {
	uc.sessions.mu.Lock()
	defer uc.sessions.mu.Unlock()
	for _, session := range uc.sessions.sessions {
		session.UpdatedAt = session.UpdatedAt.Add(-d)
	}
	for user, pd := range uc.sessions.deletes {
		pd.requested = pd.requested.Add(-d)
		uc.sessions.deletes[user] = pd
	}
}

// SessionCount is exported for testing
func (uc *IntakeUseCase) SessionCount() int {
	uc.sessions.mu.Lock()
	defer uc.sessions.mu.Unlock()
	return len(uc.sessions.sessions)
}

// SetExifLocation is exported for testing: it plants photo metadata
// coordinates on the user's in-flight session, standing in for a JPEG
// fixture with a real GPS block.
func (uc *IntakeUseCase) SetExifLocation(user types.UserID, loc *model.Location) {
	uc.sessions.mu.Lock()
	defer uc.sessions.mu.Unlock()
	if session, ok := uc.sessions.sessions[user]; ok {
		session.ExifLocation = loc
	}
}
