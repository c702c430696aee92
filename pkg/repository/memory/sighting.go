package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

type sightingRepository struct {
	store *store
}

func (r *sightingRepository) Append(ctx context.Context, stoneID types.StoneID, s *model.Sighting) (*model.Sighting, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.stones[stoneID]; !exists {
		return nil, goerr.Wrap(types.ErrStoneNotFound, "cannot append sighting", goerr.V("stoneID", stoneID))
	}

	created := copySighting(s)
	if created.ID == "" {
		created.ID = types.NewSightingID()
	}
	created.StoneID = stoneID
	created.ObservedAt = time.Now().UTC()

	r.store.sightings[stoneID] = append(r.store.sightings[stoneID], created)
	return copySighting(created), nil
}

func (r *sightingRepository) ListByStone(ctx context.Context, stoneID types.StoneID) ([]*model.Sighting, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if _, exists := r.store.stones[stoneID]; !exists {
		return nil, goerr.Wrap(types.ErrStoneNotFound, "no such stone", goerr.V("stoneID", stoneID))
	}

	result := make([]*model.Sighting, 0, len(r.store.sightings[stoneID]))
	for _, s := range r.store.sightings[stoneID] {
		result = append(result, copySighting(s))
	}
	model.SortSightings(result)
	return result, nil
}
