package model

import (
	"time"

	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// UserPref is a per-user preference record. Language falls back to
// types.DefaultLanguage when the user never picked one.
type UserPref struct {
	User      types.UserID
	Language  types.Language
	CreatedAt time.Time
	UpdatedAt time.Time
}
