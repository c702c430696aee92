package types

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// StoneID is the user-visible identifier of a registered stone.
// IDs are small sequential integers so that people can type them in
// chat commands like "/stone 42".
type StoneID int64

func (s StoneID) String() string {
	return strconv.FormatInt(int64(s), 10)
}

// ParseStoneID parses a chat-supplied stone ID argument.
func ParseStoneID(s string) (StoneID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, goerr.Wrap(ErrInvalidInput, "invalid stone ID", goerr.V("input", s))
	}
	return StoneID(v), nil
}

// UserID identifies a chat user (Slack user ID).
type UserID string

func (u UserID) String() string {
	return string(u)
}

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// SightingID identifies one sighting record.
type SightingID string

// NewSightingID generates a new time-ordered sighting ID
func NewSightingID() SightingID {
	return SightingID(uuid.Must(uuid.NewV7()).String())
}

func (s SightingID) String() string {
	return string(s)
}

// SessionID identifies one intake session.
type SessionID string

// NewSessionID generates a new session ID
func NewSessionID() SessionID {
	return SessionID(uuid.Must(uuid.NewV7()).String())
}

func (s SessionID) String() string {
	return string(s)
}
