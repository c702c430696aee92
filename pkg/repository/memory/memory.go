package memory

import (
	"sync"

	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// Memory is an in-memory repository for development and tests. Its
// nearest-neighbor search is an exact linear scan, which doubles as the
// correctness reference for the approximate Firestore index.
type Memory struct {
	stones    *stoneRepository
	sightings *sightingRepository
	prefs     *userPrefRepository
}

var _ interfaces.Repository = &Memory{}

// store holds all data behind a single mutex so that stone creation and
// deletion can mutate stones and sightings atomically.
type store struct {
	mu        sync.RWMutex
	stones    map[types.StoneID]*model.Stone
	sightings map[types.StoneID][]*model.Sighting
	prefs     map[types.UserID]*model.UserPref
	nextID    types.StoneID
}

func New() *Memory {
	s := &store{
		stones:    make(map[types.StoneID]*model.Stone),
		sightings: make(map[types.StoneID][]*model.Sighting),
		prefs:     make(map[types.UserID]*model.UserPref),
		nextID:    1,
	}

	return &Memory{
		stones:    &stoneRepository{store: s},
		sightings: &sightingRepository{store: s},
		prefs:     &userPrefRepository{store: s},
	}
}

func (m *Memory) Stone() interfaces.StoneRepository {
	return m.stones
}

func (m *Memory) Sighting() interfaces.SightingRepository {
	return m.sightings
}

func (m *Memory) UserPref() interfaces.UserPrefRepository {
	return m.prefs
}

func (m *Memory) Close() error {
	return nil
}

func copyStone(s *model.Stone) *model.Stone {
	copied := &model.Stone{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Registrant:  s.Registrant,
		ImageRef:    s.ImageRef,
		CreatedAt:   s.CreatedAt,
	}
	if s.Embedding != nil {
		copied.Embedding = make([]float32, len(s.Embedding))
		copy(copied.Embedding, s.Embedding)
	}
	return copied
}

func copySighting(s *model.Sighting) *model.Sighting {
	copied := &model.Sighting{
		ID:         s.ID,
		StoneID:    s.StoneID,
		Reporter:   s.Reporter,
		ImageRef:   s.ImageRef,
		ObservedAt: s.ObservedAt,
	}
	if s.Location != nil {
		loc := &model.Location{PostalCode: s.Location.PostalCode}
		if s.Location.Latitude != nil {
			lat := *s.Location.Latitude
			loc.Latitude = &lat
		}
		if s.Location.Longitude != nil {
			lon := *s.Location.Longitude
			loc.Longitude = &lon
		}
		copied.Location = loc
	}
	return copied
}
