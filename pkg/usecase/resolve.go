package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/logging"
)

// DefaultSimilarityThreshold is the decision boundary for treating a
// photo as a re-sighting of a known stone. Tuned against ViT-B/32
// embeddings of painted stones.
const DefaultSimilarityThreshold = 0.82

// ResolveUseCase decides whether an embedding belongs to a registered
// stone. It only reads; registration belongs to intake completion.
type ResolveUseCase struct {
	repo      interfaces.Repository
	threshold float64
}

func NewResolveUseCase(repo interfaces.Repository, threshold float64) *ResolveUseCase {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &ResolveUseCase{
		repo:      repo,
		threshold: threshold,
	}
}

// Resolve finds the nearest registered stone and applies the similarity
// threshold. The boundary is inclusive: similarity equal to the
// threshold counts as a match.
func (uc *ResolveUseCase) Resolve(ctx context.Context, embedding []float32) (model.Decision, error) {
	match, err := uc.repo.Stone().FindNearest(ctx, embedding)
	if err != nil {
		return model.Decision{}, goerr.Wrap(err, "failed to search for nearest stone")
	}
	if match == nil {
		return model.Decision{}, nil
	}

	decision := model.Decision{
		Matched:    match.Similarity >= uc.threshold,
		StoneID:    match.StoneID,
		Similarity: match.Similarity,
	}
	logging.From(ctx).Debug("resolved embedding",
		"stoneID", match.StoneID,
		"similarity", match.Similarity,
		"matched", decision.Matched)

	return decision, nil
}
