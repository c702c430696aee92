package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
)

type Firestore struct {
	client    *firestore.Client
	stones    *stoneRepository
	sightings *sightingRepository
	prefs     *userPrefRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, used by tests to
// isolate runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.stones.collectionPrefix = prefix
		f.prefs.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	stoneRepo := newStoneRepository(client)

	f := &Firestore{
		client:    client,
		stones:    stoneRepo,
		sightings: newSightingRepository(client, stoneRepo),
		prefs:     newUserPrefRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Stone() interfaces.StoneRepository {
	return f.stones
}

func (f *Firestore) Sighting() interfaces.SightingRepository {
	return f.sightings
}

func (f *Firestore) UserPref() interfaces.UserPrefRepository {
	return f.prefs
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
