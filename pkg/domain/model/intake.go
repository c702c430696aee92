package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// IntakeSession is the ephemeral working state of one photo submission.
// It is created when a photo is accepted, owned exclusively by the
// submitting user's conversation, and discarded on completion,
// cancellation, or replacement by a new photo.
//
// The session itself is a plain state machine; all locking is done by the
// store that owns it.
type IntakeSession struct {
	ID        types.SessionID
	User      types.UserID
	Channel   string
	State     types.IntakeState
	CreatedAt time.Time
	UpdatedAt time.Time

	// Extraction results carried through the flow
	Embedding []float32
	CropRef   string
	ThumbRef  string

	// Candidate is set when resolution matched an existing stone;
	// completion then appends a sighting instead of creating a stone
	Candidate *Match

	// Collected answers
	Name        string
	Description *string
	Location    *Location

	// ExifLocation holds GPS coordinates recovered from the photo's EXIF
	// data, used as a location suggestion when the user skips
	ExifLocation *Location

	// AwaitingZip is set after the enter-zip signal so that the next text
	// input is interpreted as a postal code even if it is short
	AwaitingZip bool

	committed bool
}

// NewIntakeSession creates a session in the initial state
func NewIntakeSession(user types.UserID, channel string) *IntakeSession {
	now := time.Now().UTC()
	return &IntakeSession{
		ID:        types.NewSessionID(),
		User:      user,
		Channel:   channel,
		State:     types.IntakeStateInitial,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Begin consumes the resolution decision and picks the entry branch:
// matched stones skip straight to the location step, new stones start
// with name collection.
func (s *IntakeSession) Begin(decision Decision) error {
	if s.State != types.IntakeStateInitial {
		return goerr.New("intake session already started", goerr.V("state", s.State))
	}
	if decision.Matched {
		s.Candidate = &Match{StoneID: decision.StoneID, Similarity: decision.Similarity}
		s.State = types.IntakeStateAwaitingLocation
	} else {
		s.State = types.IntakeStateAwaitingName
	}
	s.touch()
	return nil
}

// ApplyName accepts a stone name. An invalid name keeps the session in
// the awaiting-name state so the caller can reprompt.
func (s *IntakeSession) ApplyName(name string) error {
	if s.State != types.IntakeStateAwaitingName {
		return goerr.New("not awaiting a name", goerr.V("state", s.State))
	}
	trimmed, err := ValidateName(name)
	if err != nil {
		return err
	}
	s.Name = trimmed
	s.State = types.IntakeStateAwaitingDescription
	s.touch()
	return nil
}

// ApplyDescription accepts a free-text description, or records its
// absence when skip is set.
func (s *IntakeSession) ApplyDescription(text string, skip bool) error {
	if s.State != types.IntakeStateAwaitingDescription {
		return goerr.New("not awaiting a description", goerr.V("state", s.State))
	}
	if !skip {
		trimmed := strings.TrimSpace(text)
		if trimmed != "" {
			s.Description = &trimmed
		}
	}
	s.State = types.IntakeStateAwaitingLocation
	s.touch()
	return nil
}

// ApplyLocation accepts the final step's answer and moves the session to
// the terminal state. A nil location means the user skipped.
func (s *IntakeSession) ApplyLocation(loc *Location) error {
	if s.State != types.IntakeStateAwaitingLocation {
		return goerr.New("not awaiting a location", goerr.V("state", s.State))
	}
	if loc != nil && !loc.IsEmpty() {
		s.Location = loc
	}
	s.State = types.IntakeStateDone
	s.touch()
	return nil
}

// Cancel moves the session to the terminal state with no persistence.
// Cancelling an already terminal session is a no-op.
func (s *IntakeSession) Cancel() {
	s.State = types.IntakeStateDone
	s.committed = true // block any late terminal write
	s.touch()
}

// CompleteOnce returns true exactly once after the session reaches the
// terminal state. Duplicate delivery of the terminating input must not
// produce a second registry write.
func (s *IntakeSession) CompleteOnce() bool {
	if s.State != types.IntakeStateDone || s.committed {
		return false
	}
	s.committed = true
	return true
}

// IsExistingStone reports whether completion appends a sighting to a
// matched stone rather than creating a new one
func (s *IntakeSession) IsExistingStone() bool {
	return s.Candidate != nil
}

func (s *IntakeSession) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// LooksLikePostalCode reports whether text is a postal-code-shaped token:
// 3 to 10 alphanumeric characters, hyphens and spaces allowed.
func LooksLikePostalCode(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 3 || len(trimmed) > 10 {
		return false
	}
	stripped := strings.NewReplacer("-", "", " ", "").Replace(trimmed)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
