package memory

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// StonePageSize is the fixed listing page size
const StonePageSize = 10

type stoneRepository struct {
	store *store
}

func (r *stoneRepository) Create(ctx context.Context, stone *model.Stone, first *model.Sighting) (*model.Stone, error) {
	if first == nil {
		return nil, goerr.New("first sighting is required")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	created := copyStone(stone)
	created.ID = r.store.nextID
	created.CreatedAt = time.Now().UTC()
	if err := created.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid stone")
	}
	r.store.nextID++

	sighting := copySighting(first)
	if sighting.ID == "" {
		sighting.ID = types.NewSightingID()
	}
	sighting.StoneID = created.ID
	sighting.ObservedAt = created.CreatedAt

	r.store.stones[created.ID] = created
	r.store.sightings[created.ID] = []*model.Sighting{sighting}

	result := copyStone(created)
	result.Sightings = []*model.Sighting{copySighting(sighting)}
	return result, nil
}

func (r *stoneRepository) Get(ctx context.Context, id types.StoneID) (*model.Stone, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stone, exists := r.store.stones[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrStoneNotFound, "no such stone", goerr.V("stoneID", id))
	}

	result := copyStone(stone)
	for _, s := range r.store.sightings[id] {
		result.Sightings = append(result.Sightings, copySighting(s))
	}
	model.SortSightings(result.Sightings)
	return result, nil
}

func (r *stoneRepository) FindNearest(ctx context.Context, embedding []float32) (*model.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var best *model.Match
	for id, stone := range r.store.stones {
		if len(stone.Embedding) == 0 {
			continue
		}
		sim := cosineSimilarity(embedding, stone.Embedding)
		if best == nil || sim > best.Similarity {
			best = &model.Match{StoneID: id, Similarity: sim}
		}
	}

	return best, nil
}

func (r *stoneRepository) ListByRegistrant(ctx context.Context, user types.UserID, page int) (*model.StonePage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var owned []*model.Stone
	for _, stone := range r.store.stones {
		if stone.Registrant == user {
			owned = append(owned, stone)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })

	total := len(owned)
	totalPages := (total + StonePageSize - 1) / StonePageSize
	if totalPages == 0 {
		totalPages = 1
	}
	page = clampPage(page, totalPages)

	start := page * StonePageSize
	end := start + StonePageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]*model.StoneWithCount, 0, end-start)
	for _, stone := range owned[start:end] {
		items = append(items, &model.StoneWithCount{
			Stone:         copyStone(stone),
			SightingCount: len(r.store.sightings[stone.ID]),
		})
	}

	return &model.StonePage{
		Stones:     items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

func (r *stoneRepository) ListAll(ctx context.Context) ([]*model.Stone, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stones := make([]*model.Stone, 0, len(r.store.stones))
	for _, stone := range r.store.stones {
		stones = append(stones, copyStone(stone))
	}
	sort.Slice(stones, func(i, j int) bool { return stones[i].ID < stones[j].ID })
	return stones, nil
}

func (r *stoneRepository) Delete(ctx context.Context, id types.StoneID, requester types.UserID) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stone, exists := r.store.stones[id]
	if !exists {
		return "", goerr.Wrap(types.ErrStoneNotFound, "no such stone", goerr.V("stoneID", id))
	}
	if stone.Registrant != requester {
		return "", goerr.Wrap(types.ErrNotOwner, "stone belongs to another user",
			goerr.V("stoneID", id), goerr.V("requester", requester))
	}

	delete(r.store.sightings, id)
	delete(r.store.stones, id)
	return stone.Name, nil
}

func clampPage(page, totalPages int) int {
	if page < 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
