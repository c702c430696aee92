package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

func runSightingRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	newStone := func(t *testing.T, repo interfaces.Repository) *model.Stone {
		created, err := repo.Stone().Create(context.Background(), &model.Stone{
			Name:       "Wanderer",
			Embedding:  basisEmbedding(0),
			Registrant: "U100",
		}, &model.Sighting{Reporter: "U100"})
		gt.NoError(t, err).Required()
		return created
	}

	t.Run("Append records an observation with generated ID and time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		stone := newStone(t, repo)

		lat, lon := 52.2297, 21.0122
		created, err := repo.Sighting().Append(ctx, stone.ID, &model.Sighting{
			Reporter: "U200",
			Location: &model.Location{Latitude: &lat, Longitude: &lon, PostalCode: "00-001"},
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(types.SightingID(""))
		gt.Value(t, created.StoneID).Equal(stone.ID)
		gt.Bool(t, created.ObservedAt.IsZero()).False()

		listed, err := repo.Sighting().ListByStone(ctx, stone.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(2).Required()
		last := listed[len(listed)-1]
		gt.Value(t, last.Reporter).Equal(types.UserID("U200"))
		gt.Value(t, last.Location).NotNil().Required()
		gt.Value(t, *last.Location.Latitude).Equal(lat)
		gt.Value(t, *last.Location.Longitude).Equal(lon)
		gt.Value(t, last.Location.PostalCode).Equal("00-001")
	})

	t.Run("Append to unknown stone fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Sighting().Append(ctx, types.StoneID(987654), &model.Sighting{Reporter: "U200"})
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrStoneNotFound))
	})

	t.Run("ListByStone returns observations oldest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		stone := newStone(t, repo)

		for _, reporter := range []types.UserID{"U201", "U202", "U203"} {
			_, err := repo.Sighting().Append(ctx, stone.ID, &model.Sighting{Reporter: reporter})
			gt.NoError(t, err).Required()
		}

		listed, err := repo.Sighting().ListByStone(ctx, stone.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(4).Required()
		for i := 1; i < len(listed); i++ {
			gt.Bool(t, listed[i-1].ObservedAt.After(listed[i].ObservedAt)).False()
		}
		gt.Value(t, listed[0].Reporter).Equal(types.UserID("U100"))
		gt.Value(t, listed[3].Reporter).Equal(types.UserID("U203"))
	})

	t.Run("ListByStone for unknown stone fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Sighting().ListByStone(ctx, types.StoneID(987654))
		gt.True(t, errors.Is(err, types.ErrStoneNotFound))
	})
}

func TestSightingRepository_Memory(t *testing.T) {
	runSightingRepositoryTest(t, newMemoryRepo)
}

func TestSightingRepository_Firestore(t *testing.T) {
	runSightingRepositoryTest(t, newFirestoreRepo)
}
