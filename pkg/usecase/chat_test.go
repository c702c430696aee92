package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/repository/memory"
	"github.com/wanderstone-dev/wanderstone/pkg/usecase"
)

func TestChat_Commands(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedStones(t, ctx, repo, testUser, 1)
	uc := usecase.New(repo, stoneExtractor(basisEmbedding(0)))

	t.Run("start and help", func(t *testing.T) {
		replies, err := uc.Chat.OnMessage(ctx, testUser, "/start")
		gt.NoError(t, err).Required()
		gt.String(t, replies[0].Text).Contains("wanderstone")

		replies, err = uc.Chat.OnMessage(ctx, testUser, "/help")
		gt.NoError(t, err).Required()
		gt.String(t, replies[0].Text).Contains("/stones")
	})

	t.Run("stone detail by ID", func(t *testing.T) {
		replies, err := uc.Chat.OnMessage(ctx, testUser, "/stone 1")
		gt.NoError(t, err).Required()
		gt.String(t, replies[0].Text).Contains("Kamyk 01")
	})

	t.Run("malformed stone ID shows usage", func(t *testing.T) {
		replies, err := uc.Chat.OnMessage(ctx, testUser, "/stone abc")
		gt.NoError(t, err).Required()
		gt.String(t, replies[0].Text).Contains("/stone")

		replies, err = uc.Chat.OnMessage(ctx, testUser, "/delete")
		gt.NoError(t, err).Required()
		gt.String(t, replies[0].Text).Contains("/delete")
	})

	t.Run("find without a query shows usage", func(t *testing.T) {
		replies, err := uc.Chat.OnMessage(ctx, testUser, "/find")
		gt.NoError(t, err).Required()
		gt.String(t, replies[0].Text).Contains("/find")
	})

	t.Run("language picker", func(t *testing.T) {
		replies, err := uc.Chat.OnMessage(ctx, testUser, "/lang")
		gt.NoError(t, err).Required()
		gt.Array(t, replies[0].Buttons).Length(3)
		gt.Value(t, replies[0].Buttons[0].Signal).Equal(types.SignalSetLanguage)
	})

	t.Run("unknown command falls back to help", func(t *testing.T) {
		replies, err := uc.Chat.OnMessage(ctx, testUser, "/teleport")
		gt.NoError(t, err).Required()
		gt.String(t, replies[0].Text).Contains("/stones")
	})

	t.Run("bot mention suffix is stripped", func(t *testing.T) {
		replies, err := uc.Chat.OnMessage(ctx, testUser, "/stones@wanderstone")
		gt.NoError(t, err).Required()
		gt.String(t, replies[0].Text).Contains("Kamyk 01")
	})
}

func TestChat_SetLanguage(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), stoneExtractor(basisEmbedding(0)))

	replies, err := uc.Chat.OnSignal(ctx, testUser, types.SignalSetLanguage, "en")
	gt.NoError(t, err).Required()
	gt.String(t, replies[0].Text).Contains("English")
	gt.Value(t, uc.Pref.Language(ctx, testUser)).Equal(types.LanguageEnglish)

	// An unsupported code keeps the stored preference
	replies, err = uc.Chat.OnSignal(ctx, testUser, types.SignalSetLanguage, "xx")
	gt.NoError(t, err).Required()
	gt.Array(t, replies).Length(1)
	gt.Value(t, uc.Pref.Language(ctx, testUser)).Equal(types.LanguageEnglish)
}

func TestChat_FreeTextOutsideSession(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New(), stoneExtractor(basisEmbedding(0)))

	replies, err := uc.Chat.OnMessage(ctx, testUser, "hello?")
	gt.NoError(t, err).Required()
	gt.Array(t, replies).Length(1)
	gt.String(t, replies[0].Text).Contains("/stones")

	replies, err = uc.Chat.OnMessage(ctx, testUser, "   ")
	gt.NoError(t, err)
	gt.Array(t, replies).Length(0)
}

func TestChat_SignalRouting(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	seedStones(t, ctx, repo, testUser, 11)
	uc := usecase.New(repo, stoneExtractor(basisEmbedding(0)))

	t.Run("paging signals carry the target page", func(t *testing.T) {
		replies, err := uc.Chat.OnSignal(ctx, testUser, types.SignalPageNext, "1")
		gt.NoError(t, err).Required()
		gt.String(t, replies[0].Text).Contains("Kamyk 11")
	})

	t.Run("location outside a session is ignored", func(t *testing.T) {
		replies, err := uc.Chat.OnLocation(ctx, testUser, 52.23, 21.01)
		gt.NoError(t, err)
		gt.Array(t, replies).Length(0)
	})

	t.Run("unknown signal is ignored", func(t *testing.T) {
		replies, err := uc.Chat.OnSignal(ctx, testUser, types.Signal("bogus"), "")
		gt.NoError(t, err)
		gt.Array(t, replies).Length(0)
	})
}
