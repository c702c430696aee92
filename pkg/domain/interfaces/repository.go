package interfaces

import (
	"context"

	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// Repository defines the interface for data persistence
type Repository interface {
	Stone() StoneRepository
	Sighting() SightingRepository
	UserPref() UserPrefRepository

	Close() error
}

// StoneRepository defines the interface for Stone data access. It is also
// the identity index: embeddings are stored with the stones and queried
// through FindNearest.
type StoneRepository interface {
	// Create persists a new stone together with its originating sighting
	// in one atomic unit and assigns the stone ID. The embedding becomes
	// visible to FindNearest no later than the transaction commit.
	Create(ctx context.Context, stone *model.Stone, first *model.Sighting) (*model.Stone, error)

	// Get retrieves a stone with its sightings ordered ascending by
	// ObservedAt. Returns types.ErrStoneNotFound when absent.
	Get(ctx context.Context, id types.StoneID) (*model.Stone, error)

	// FindNearest returns the single best match for the query embedding
	// with its cosine similarity, or nil when no stones exist.
	FindNearest(ctx context.Context, embedding []float32) (*model.Match, error)

	// ListByRegistrant returns one page of the user's stones ordered by
	// stone ID ascending. Page indexes out of range are clamped to
	// [0, totalPages-1].
	ListByRegistrant(ctx context.Context, user types.UserID, page int) (*model.StonePage, error)

	// ListAll returns every stone ordered by stone ID ascending, without
	// sightings loaded. Serves the public map listing.
	ListAll(ctx context.Context) ([]*model.Stone, error)

	// Delete removes the stone and all its sightings atomically and
	// returns the deleted stone's name. Fails with types.ErrStoneNotFound
	// or types.ErrNotOwner without deleting anything.
	Delete(ctx context.Context, id types.StoneID, requester types.UserID) (string, error)
}

// SightingRepository defines the interface for Sighting data access
type SightingRepository interface {
	// Append records one observation of an existing stone. Fails with
	// types.ErrStoneNotFound when the stone does not exist.
	Append(ctx context.Context, stoneID types.StoneID, s *model.Sighting) (*model.Sighting, error)

	// ListByStone retrieves all sightings of a stone ordered ascending
	// by ObservedAt
	ListByStone(ctx context.Context, stoneID types.StoneID) ([]*model.Sighting, error)
}

// UserPrefRepository stores per-user preference records
type UserPrefRepository interface {
	// Get returns the user's preferences, or a default record when the
	// user has none yet
	Get(ctx context.Context, user types.UserID) (*model.UserPref, error)

	// Put creates or replaces the user's preferences
	Put(ctx context.Context, pref *model.UserPref) error
}
