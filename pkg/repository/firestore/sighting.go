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

// sightingDoc is the Firestore document representation of model.Sighting.
// Sightings live in a subcollection under their stone document so that
// stone deletion can remove both in one transaction.
type sightingDoc struct {
	ID         string    `firestore:"ID"`
	StoneID    int64     `firestore:"StoneID"`
	Reporter   string    `firestore:"Reporter"`
	ImageRef   string    `firestore:"ImageRef"`
	Latitude   *float64  `firestore:"Latitude,omitempty"`
	Longitude  *float64  `firestore:"Longitude,omitempty"`
	PostalCode string    `firestore:"PostalCode,omitempty"`
	ObservedAt time.Time `firestore:"ObservedAt"`
}

func toSightingDoc(s *model.Sighting) *sightingDoc {
	doc := &sightingDoc{
		ID:         string(s.ID),
		StoneID:    int64(s.StoneID),
		Reporter:   string(s.Reporter),
		ImageRef:   s.ImageRef,
		ObservedAt: s.ObservedAt,
	}
	if s.Location != nil {
		doc.Latitude = s.Location.Latitude
		doc.Longitude = s.Location.Longitude
		doc.PostalCode = s.Location.PostalCode
	}
	return doc
}

func fromSightingDoc(d *sightingDoc) *model.Sighting {
	s := &model.Sighting{
		ID:         types.SightingID(d.ID),
		StoneID:    types.StoneID(d.StoneID),
		Reporter:   types.UserID(d.Reporter),
		ImageRef:   d.ImageRef,
		ObservedAt: d.ObservedAt,
	}
	if d.Latitude != nil || d.Longitude != nil || d.PostalCode != "" {
		s.Location = &model.Location{
			Latitude:   d.Latitude,
			Longitude:  d.Longitude,
			PostalCode: d.PostalCode,
		}
	}
	return s
}

func docToSighting(doc *firestore.DocumentSnapshot) (*model.Sighting, error) {
	var d sightingDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return fromSightingDoc(&d), nil
}

type sightingRepository struct {
	client *firestore.Client
	stones *stoneRepository
}

func newSightingRepository(client *firestore.Client, stones *stoneRepository) *sightingRepository {
	return &sightingRepository{
		client: client,
		stones: stones,
	}
}

func (r *sightingRepository) Append(ctx context.Context, stoneID types.StoneID, s *model.Sighting) (*model.Sighting, error) {
	stoneRef := r.stones.stonesCollection().Doc(stoneID.String())
	if _, err := stoneRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrStoneNotFound, "cannot append sighting", goerr.V("stoneID", stoneID))
		}
		return nil, goerr.Wrap(err, "failed to get stone", goerr.V("stoneID", stoneID))
	}

	created := &model.Sighting{
		ID:         s.ID,
		StoneID:    stoneID,
		Reporter:   s.Reporter,
		ImageRef:   s.ImageRef,
		Location:   s.Location,
		ObservedAt: time.Now().UTC(),
	}
	if created.ID == "" {
		created.ID = types.NewSightingID()
	}

	docRef := r.stones.sightingsCollection(stoneID).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toSightingDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create sighting", goerr.V("stoneID", stoneID))
	}

	return created, nil
}

func (r *sightingRepository) ListByStone(ctx context.Context, stoneID types.StoneID) ([]*model.Sighting, error) {
	stoneRef := r.stones.stonesCollection().Doc(stoneID.String())
	if _, err := stoneRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrStoneNotFound, "stone not found", goerr.V("stoneID", stoneID))
		}
		return nil, goerr.Wrap(err, "failed to get stone", goerr.V("stoneID", stoneID))
	}

	docs, err := r.stones.sightingsCollection(stoneID).Documents(ctx).GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sightings", goerr.V("stoneID", stoneID))
	}

	sightings := make([]*model.Sighting, 0, len(docs))
	for _, doc := range docs {
		s, err := docToSighting(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal sighting", goerr.V("stoneID", stoneID))
		}
		sightings = append(sightings, s)
	}
	model.SortSightings(sightings)

	return sightings, nil
}
