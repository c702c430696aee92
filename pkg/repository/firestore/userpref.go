package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userPrefDoc struct {
	User      string    `firestore:"User"`
	Language  string    `firestore:"Language"`
	CreatedAt time.Time `firestore:"CreatedAt"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

type userPrefRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUserPrefRepository(client *firestore.Client) *userPrefRepository {
	return &userPrefRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *userPrefRepository) collection() *firestore.CollectionRef {
	name := "user_prefs"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_user_prefs"
	}
	return r.client.Collection(name)
}

func (r *userPrefRepository) Get(ctx context.Context, user types.UserID) (*model.UserPref, error) {
	docSnap, err := r.collection().Doc(user.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &model.UserPref{
				User:     user,
				Language: types.DefaultLanguage,
			}, nil
		}
		return nil, goerr.Wrap(err, "failed to get user preference", goerr.V("user", user))
	}

	var d userPrefDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user preference", goerr.V("user", user))
	}

	return &model.UserPref{
		User:      types.UserID(d.User),
		Language:  types.Language(d.Language).Normalize(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func (r *userPrefRepository) Put(ctx context.Context, pref *model.UserPref) error {
	if err := pref.User.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user preference")
	}

	now := time.Now().UTC()
	createdAt := pref.CreatedAt
	if createdAt.IsZero() {
		if existing, err := r.Get(ctx, pref.User); err == nil && !existing.CreatedAt.IsZero() {
			createdAt = existing.CreatedAt
		} else {
			createdAt = now
		}
	}

	doc := &userPrefDoc{
		User:      string(pref.User),
		Language:  string(pref.Language),
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	if _, err := r.collection().Doc(pref.User.String()).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put user preference", goerr.V("user", pref.User))
	}

	return nil
}
