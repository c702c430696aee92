package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

func runUserPrefRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Get without a stored record falls back to the default language", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		pref, err := repo.UserPref().Get(ctx, "U300")
		gt.NoError(t, err).Required()
		gt.Value(t, pref.User).Equal(types.UserID("U300"))
		gt.Value(t, pref.Language).Equal(types.DefaultLanguage)
	})

	t.Run("Put then Get round-trips the chosen language", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.UserPref().Put(ctx, &model.UserPref{
			User:     "U301",
			Language: types.LanguageEnglish,
		})
		gt.NoError(t, err).Required()

		pref, err := repo.UserPref().Get(ctx, "U301")
		gt.NoError(t, err).Required()
		gt.Value(t, pref.Language).Equal(types.LanguageEnglish)
		gt.Bool(t, pref.CreatedAt.IsZero()).False()
		gt.Bool(t, pref.UpdatedAt.IsZero()).False()
	})

	t.Run("Put replaces the language and keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.UserPref().Put(ctx, &model.UserPref{
			User:     "U302",
			Language: types.LanguageRussian,
		})).Required()

		first, err := repo.UserPref().Get(ctx, "U302")
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.UserPref().Put(ctx, &model.UserPref{
			User:     "U302",
			Language: types.LanguagePolish,
		})).Required()

		second, err := repo.UserPref().Get(ctx, "U302")
		gt.NoError(t, err).Required()
		gt.Value(t, second.Language).Equal(types.LanguagePolish)
		gt.Bool(t, second.CreatedAt.Equal(first.CreatedAt)).True()
		gt.Bool(t, second.UpdatedAt.Before(first.UpdatedAt)).False()
	})

	t.Run("Put rejects an empty user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.UserPref().Put(ctx, &model.UserPref{Language: types.LanguageEnglish})
		gt.Error(t, err)
	})
}

func TestUserPrefRepository_Memory(t *testing.T) {
	runUserPrefRepositoryTest(t, newMemoryRepo)
}

func TestUserPrefRepository_Firestore(t *testing.T) {
	runUserPrefRepositoryTest(t, newFirestoreRepo)
}
