package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// EmbeddingDimension is the fixed length of visual embeddings. The CLIP
// ViT-B/32 extractor produces 512-dimensional unit-norm vectors.
const EmbeddingDimension = 512

// MinNameLength is the minimum accepted stone name length after trimming
const MinNameLength = 2

// Stone is a physical decorated object with a persistent identity.
// The embedding is set exactly once at creation from the first photo and
// never recomputed.
type Stone struct {
	ID          types.StoneID
	Name        string
	Description string
	Embedding   []float32
	Registrant  types.UserID
	ImageRef    string
	CreatedAt   time.Time

	// Sightings are ordered ascending by ObservedAt; the first element
	// is the registration event
	Sightings []*Sighting
}

// ValidateName checks a user-supplied stone name. Returns the trimmed name.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < MinNameLength {
		return "", goerr.Wrap(types.ErrInvalidInput, "stone name too short",
			goerr.V("name", trimmed), goerr.V("min", MinNameLength))
	}
	return trimmed, nil
}

// Validate checks the stone invariants before persistence
func (s *Stone) Validate() error {
	if _, err := ValidateName(s.Name); err != nil {
		return err
	}
	if err := s.Registrant.Validate(); err != nil {
		return goerr.Wrap(err, "stone registrant is required")
	}
	if len(s.Embedding) != EmbeddingDimension {
		return goerr.New("stone embedding has wrong dimension",
			goerr.V("got", len(s.Embedding)), goerr.V("want", EmbeddingDimension))
	}
	// ImageRef is an opaque handle and may be empty when the image store
	// is unavailable; registration proceeds without it.
	return nil
}

// Match is a nearest-neighbor search result
type Match struct {
	StoneID    types.StoneID
	Similarity float64
}

// Decision is the outcome of resolving a photo's embedding against the
// identity index
type Decision struct {
	Matched    bool
	StoneID    types.StoneID
	Similarity float64
}

// StoneWithCount pairs a stone with its sighting count for listings
type StoneWithCount struct {
	Stone         *Stone
	SightingCount int
}

// StonePage is one fixed-size page of a registrant's stones, ordered by
// stone ID ascending
type StonePage struct {
	Stones     []*StoneWithCount
	Page       int
	TotalPages int
	Total      int
}
