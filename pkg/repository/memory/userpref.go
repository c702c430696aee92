package memory

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

type userPrefRepository struct {
	store *store
}

func (r *userPrefRepository) Get(ctx context.Context, user types.UserID) (*model.UserPref, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if pref, exists := r.store.prefs[user]; exists {
		copied := *pref
		return &copied, nil
	}
	return &model.UserPref{
		User:     user,
		Language: types.DefaultLanguage,
	}, nil
}

func (r *userPrefRepository) Put(ctx context.Context, pref *model.UserPref) error {
	if err := pref.User.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user preference")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	copied := *pref
	now := time.Now().UTC()
	if existing, exists := r.store.prefs[pref.User]; exists {
		copied.CreatedAt = existing.CreatedAt
	} else {
		copied.CreatedAt = now
	}
	copied.UpdatedAt = now
	r.store.prefs[pref.User] = &copied
	return nil
}
