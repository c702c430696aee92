package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/repository/memory"
	"github.com/wanderstone-dev/wanderstone/pkg/usecase"
)

func TestResolve_EmptyRegistry(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewResolveUseCase(memory.New(), 0)

	decision, err := uc.Resolve(ctx, basisEmbedding(0))
	gt.NoError(t, err).Required()
	gt.Bool(t, decision.Matched).False()
	gt.Value(t, decision.StoneID).Equal(types.StoneID(0))
}

func TestResolve_ThresholdBoundary(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	_, err := repo.Stone().Create(ctx, &model.Stone{
		Name:       "Wzorzec",
		Embedding:  basisEmbedding(0),
		Registrant: testUser,
	}, &model.Sighting{Reporter: testUser})
	gt.NoError(t, err).Required()

	// Unit vector with 0.5 in the first axis: every component is exactly
	// representable, so the similarity against the stored basis vector is
	// exactly 0.5
	query := make([]float32, 512)
	query[0], query[1], query[2], query[3] = 0.5, 0.5, 0.5, 0.5

	t.Run("similarity equal to the threshold matches", func(t *testing.T) {
		uc := usecase.NewResolveUseCase(repo, 0.5)
		decision, err := uc.Resolve(ctx, query)
		gt.NoError(t, err).Required()
		gt.Bool(t, decision.Matched).True()
		gt.Value(t, decision.StoneID).Equal(types.StoneID(1))
		gt.Value(t, decision.Similarity).Equal(0.5)
	})

	t.Run("similarity below the threshold does not match", func(t *testing.T) {
		uc := usecase.NewResolveUseCase(repo, 0.51)
		decision, err := uc.Resolve(ctx, query)
		gt.NoError(t, err).Required()
		gt.Bool(t, decision.Matched).False()
		// The nearest candidate is still reported for logging
		gt.Value(t, decision.StoneID).Equal(types.StoneID(1))
	})

	t.Run("identical embedding matches at the default threshold", func(t *testing.T) {
		uc := usecase.NewResolveUseCase(repo, 0)
		decision, err := uc.Resolve(ctx, basisEmbedding(0))
		gt.NoError(t, err).Required()
		gt.Bool(t, decision.Matched).True()
		gt.Value(t, decision.Similarity).Equal(1.0)
	})
}
