package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/repository/memory"
	"github.com/wanderstone-dev/wanderstone/pkg/usecase"
)

func seedStones(t *testing.T, ctx context.Context, repo *memory.Memory, owner types.UserID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := repo.Stone().Create(ctx, &model.Stone{
			Name:       fmt.Sprintf("Kamyk %02d", i+1),
			Embedding:  basisEmbedding(i % 512),
			Registrant: owner,
		}, &model.Sighting{Reporter: owner})
		gt.NoError(t, err).Required()
	}
}

func TestStone_ListPagination(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedStones(t, ctx, repo, testUser, 12)
	uc := usecase.New(repo, stoneExtractor(basisEmbedding(0)))

	replies, err := uc.Stone.List(ctx, testUser, 0)
	gt.NoError(t, err).Required()
	gt.Array(t, replies).Length(1)
	gt.String(t, replies[0].Text).Contains("Kamyk 01")
	gt.String(t, replies[0].Text).Contains("Kamyk 10")

	// First page only offers the next button
	gt.Array(t, replies[0].Buttons).Length(1)
	gt.Value(t, replies[0].Buttons[0].Signal).Equal(types.SignalPageNext)
	gt.Value(t, replies[0].Buttons[0].Value).Equal("1")

	replies, err = uc.Stone.List(ctx, testUser, 1)
	gt.NoError(t, err).Required()
	gt.String(t, replies[0].Text).Contains("Kamyk 12")
	gt.Array(t, replies[0].Buttons).Length(1)
	gt.Value(t, replies[0].Buttons[0].Signal).Equal(types.SignalPagePrev)
	gt.Value(t, replies[0].Buttons[0].Value).Equal("0")
}

func TestStone_ListEmpty(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), stoneExtractor(basisEmbedding(0)))

	replies, err := uc.Stone.List(ctx, testUser, 0)
	gt.NoError(t, err).Required()
	gt.Array(t, replies).Length(1)
	gt.Array(t, replies[0].Buttons).Length(0)
}

func TestStone_Info(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	renderer := &mockRenderer{image: []byte("png")}
	_, err := repo.Stone().Create(ctx, &model.Stone{
		Name:        "Wędrowiec",
		Description: "szary z niebieskim wzorem",
		Embedding:   basisEmbedding(0),
		Registrant:  testUser,
	}, &model.Sighting{Reporter: testUser, Location: coords(52.23, 21.01)})
	gt.NoError(t, err).Required()

	uc := usecase.New(repo, stoneExtractor(basisEmbedding(0)),
		usecase.WithMapRenderer(renderer))

	replies, err := uc.Stone.Info(ctx, testUser, types.StoneID(1))
	gt.NoError(t, err).Required()
	gt.Array(t, replies).Length(2)
	gt.String(t, replies[0].Text).Contains("Wędrowiec")
	gt.String(t, replies[0].Text).Contains("szary z niebieskim wzorem")
	gt.Value(t, replies[1].Image).Equal([]byte("png"))

	replies, err = uc.Stone.Info(ctx, testUser, types.StoneID(42))
	gt.NoError(t, err).Required()
	gt.Array(t, replies).Length(1)
	gt.String(t, replies[0].Text).Contains("42")
}

func TestStone_Find(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedStones(t, ctx, repo, testUser, 3)
	uc := usecase.New(repo, stoneExtractor(basisEmbedding(1)))

	// The query embedding is closest to the second stone
	replies, err := uc.Stone.Find(ctx, testUser, "niebieska biedronka")
	gt.NoError(t, err).Required()
	gt.Array(t, replies).Length(2)
	gt.String(t, replies[0].Text).Contains("100%")
	gt.String(t, replies[1].Text).Contains("Kamyk 02")
}

func TestStone_FindEmptyRegistry(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), stoneExtractor(basisEmbedding(0)))

	replies, err := uc.Stone.Find(ctx, testUser, "cokolwiek")
	gt.NoError(t, err).Required()
	gt.Array(t, replies).Length(1)
}

func TestStone_DeleteFlow(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedStones(t, ctx, repo, testUser, 1)
	uc := usecase.New(repo, stoneExtractor(basisEmbedding(0)))

	replies, err := uc.Stone.RequestDelete(ctx, testUser, types.StoneID(1))
	gt.NoError(t, err).Required()
	gt.Array(t, replies).Length(1)
	gt.Array(t, replies[0].Buttons).Length(2)
	gt.Value(t, replies[0].Buttons[0].Signal).Equal(types.SignalConfirmDelete)

	replies, err = uc.Stone.ConfirmDelete(ctx, testUser)
	gt.NoError(t, err).Required()
	gt.String(t, replies[0].Text).Contains("Kamyk 01")

	_, err = repo.Stone().Get(ctx, types.StoneID(1))
	gt.Error(t, err)

	// A doubled confirm press is a no-op
	replies, err = uc.Stone.ConfirmDelete(ctx, testUser)
	gt.NoError(t, err)
	gt.Array(t, replies).Length(0)
}

func TestStone_DeleteRejections(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedStones(t, ctx, repo, types.UserID("U99"), 1)
	uc := usecase.New(repo, stoneExtractor(basisEmbedding(0)))

	t.Run("not the owner", func(t *testing.T) {
		replies, err := uc.Stone.RequestDelete(ctx, testUser, types.StoneID(1))
		gt.NoError(t, err).Required()
		gt.Array(t, replies).Length(1)
		gt.Array(t, replies[0].Buttons).Length(0)

		// No pending deletion was armed
		replies, err = uc.Stone.ConfirmDelete(ctx, testUser)
		gt.NoError(t, err)
		gt.Array(t, replies).Length(0)
	})

	t.Run("unknown stone", func(t *testing.T) {
		replies, err := uc.Stone.RequestDelete(ctx, testUser, types.StoneID(42))
		gt.NoError(t, err).Required()
		gt.Array(t, replies[0].Buttons).Length(0)
	})

	t.Run("cancel abandons the pending deletion", func(t *testing.T) {
		_, err := uc.Stone.RequestDelete(ctx, types.UserID("U99"), types.StoneID(1))
		gt.NoError(t, err).Required()

		replies, err := uc.Stone.CancelDelete(ctx, types.UserID("U99"))
		gt.NoError(t, err).Required()
		gt.Array(t, replies).Length(1)

		replies, err = uc.Stone.ConfirmDelete(ctx, types.UserID("U99"))
		gt.NoError(t, err)
		gt.Array(t, replies).Length(0)

		_, err = repo.Stone().Get(ctx, types.StoneID(1))
		gt.NoError(t, err)
	})
}
