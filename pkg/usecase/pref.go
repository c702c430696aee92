package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/logging"
)

// PrefUseCase manages per-user preferences
type PrefUseCase struct {
	repo interfaces.Repository
}

func NewPrefUseCase(repo interfaces.Repository) *PrefUseCase {
	return &PrefUseCase{repo: repo}
}

// Language returns the user's message language. Lookup failures fall
// back to the default so a preference outage never blocks the bot.
func (uc *PrefUseCase) Language(ctx context.Context, user types.UserID) types.Language {
	pref, err := uc.repo.UserPref().Get(ctx, user)
	if err != nil {
		logging.From(ctx).Warn("failed to load user preference, using default",
			"user", user, "error", err)
		return types.DefaultLanguage
	}
	return pref.Language.Normalize()
}

// SetLanguage stores the user's language choice
func (uc *PrefUseCase) SetLanguage(ctx context.Context, user types.UserID, lang types.Language) error {
	if !lang.IsValid() {
		return goerr.Wrap(types.ErrInvalidInput, "unsupported language", goerr.V("lang", lang))
	}
	return uc.repo.UserPref().Put(ctx, &model.UserPref{
		User:     user,
		Language: lang,
	})
}
