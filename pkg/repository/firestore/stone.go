package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/repository/memory"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// distanceField is the document field FindNearest writes the cosine
// distance into. Cosine similarity is 1 - distance.
const distanceField = "vector_distance"

// stoneDoc is the Firestore document representation of model.Stone.
// Embedding is stored as firestore.Vector32 so that FindNearest vector
// search works.
type stoneDoc struct {
	ID          int64              `firestore:"ID"`
	Name        string             `firestore:"Name"`
	Description string             `firestore:"Description"`
	Embedding   firestore.Vector32 `firestore:"Embedding,omitempty"`
	Registrant  string             `firestore:"Registrant"`
	ImageRef    string             `firestore:"ImageRef"`
	CreatedAt   time.Time          `firestore:"CreatedAt"`
}

func toStoneDoc(s *model.Stone) *stoneDoc {
	doc := &stoneDoc{
		ID:          int64(s.ID),
		Name:        s.Name,
		Description: s.Description,
		Registrant:  string(s.Registrant),
		ImageRef:    s.ImageRef,
		CreatedAt:   s.CreatedAt,
	}
	if len(s.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(s.Embedding)
	}
	return doc
}

func fromStoneDoc(d *stoneDoc) *model.Stone {
	s := &model.Stone{
		ID:          types.StoneID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Registrant:  types.UserID(d.Registrant),
		ImageRef:    d.ImageRef,
		CreatedAt:   d.CreatedAt,
	}
	if len(d.Embedding) > 0 {
		s.Embedding = []float32(d.Embedding)
	}
	return s
}

func docToStone(doc *firestore.DocumentSnapshot) (*model.Stone, error) {
	var d stoneDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return fromStoneDoc(&d), nil
}

type stoneRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newStoneRepository(client *firestore.Client) *stoneRepository {
	return &stoneRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *stoneRepository) stonesCollection() *firestore.CollectionRef {
	name := "stones"
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + "_stones"
	}
	return r.client.Collection(name)
}

func (r *stoneRepository) sightingsCollection(id types.StoneID) *firestore.CollectionRef {
	return r.stonesCollection().Doc(id.String()).Collection("sightings")
}

func (r *stoneRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *stoneRepository) getNextID(ctx context.Context) (types.StoneID, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc("stone_counter")

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		nextID = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return types.StoneID(nextID), nil
}

func (r *stoneRepository) Create(ctx context.Context, stone *model.Stone, first *model.Sighting) (*model.Stone, error) {
	if first == nil {
		return nil, goerr.New("first sighting is required")
	}

	nextID, err := r.getNextID(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next ID")
	}

	now := time.Now().UTC()
	created := &model.Stone{
		ID:          nextID,
		Name:        stone.Name,
		Description: stone.Description,
		Embedding:   stone.Embedding,
		Registrant:  stone.Registrant,
		ImageRef:    stone.ImageRef,
		CreatedAt:   now,
	}
	if err := created.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid stone")
	}

	origin := &model.Sighting{
		ID:         first.ID,
		StoneID:    created.ID,
		Reporter:   first.Reporter,
		ImageRef:   first.ImageRef,
		Location:   first.Location,
		ObservedAt: now,
	}
	if origin.ID == "" {
		origin.ID = types.NewSightingID()
	}

	stoneRef := r.stonesCollection().Doc(created.ID.String())
	sightingRef := r.sightingsCollection(created.ID).Doc(origin.ID.String())

	// One transaction so the stone never exists without its origin
	// sighting, and the embedding is queryable as soon as Create returns.
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(stoneRef, toStoneDoc(created)); err != nil {
			return err
		}
		return tx.Set(sightingRef, toSightingDoc(origin))
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create stone", goerr.V("id", created.ID))
	}

	created.Sightings = []*model.Sighting{origin}
	return created, nil
}

func (r *stoneRepository) Get(ctx context.Context, id types.StoneID) (*model.Stone, error) {
	docSnap, err := r.stonesCollection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrStoneNotFound, "stone not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get stone", goerr.V("id", id))
	}

	stone, err := docToStone(docSnap)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal stone", goerr.V("id", id))
	}

	sightingDocs, err := r.sightingsCollection(id).Documents(ctx).GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get sightings", goerr.V("id", id))
	}
	for _, doc := range sightingDocs {
		s, err := docToSighting(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal sighting", goerr.V("id", id))
		}
		stone.Sightings = append(stone.Sightings, s)
	}
	model.SortSightings(stone.Sightings)

	return stone, nil
}

func (r *stoneRepository) FindNearest(ctx context.Context, embedding []float32) (*model.Match, error) {
	vq := r.stonesCollection().
		FindNearest("Embedding", firestore.Vector32(embedding), 1, firestore.DistanceMeasureCosine,
			&firestore.FindNearestOptions{
				DistanceResultField: distanceField,
			})

	docs, err := vq.Documents(ctx).GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to run vector search")
	}
	if len(docs) == 0 {
		return nil, nil
	}

	stone, err := docToStone(docs[0])
	if err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal vector search result")
	}

	distance, err := docs[0].DataAt(distanceField)
	if err != nil {
		return nil, goerr.Wrap(err, "vector search result has no distance field")
	}
	dist, ok := distance.(float64)
	if !ok {
		return nil, goerr.New("distance is not of type float64", goerr.V("distance", distance))
	}

	return &model.Match{
		StoneID:    stone.ID,
		Similarity: 1 - dist,
	}, nil
}

func (r *stoneRepository) ListByRegistrant(ctx context.Context, user types.UserID, page int) (*model.StonePage, error) {
	base := r.stonesCollection().Where("Registrant", "==", string(user))

	// Keys-only fetch for the total count
	countDocs, err := base.Select().Documents(ctx).GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count stones", goerr.V("user", user))
	}
	total := len(countDocs)

	totalPages := (total + memory.StonePageSize - 1) / memory.StonePageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}

	docs, err := base.
		OrderBy("ID", firestore.Asc).
		Offset(page * memory.StonePageSize).
		Limit(memory.StonePageSize).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list stones", goerr.V("user", user))
	}

	items := make([]*model.StoneWithCount, len(docs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		stone, err := docToStone(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal stone")
		}
		items[i] = &model.StoneWithCount{Stone: stone}

		// One keys-only count query per stone on the page; fetched
		// concurrently to keep page rendering flat.
		eg.Go(func() error {
			refs, err := r.sightingsCollection(stone.ID).Select().Documents(egCtx).GetAll()
			if err != nil {
				return goerr.Wrap(err, "failed to count sightings", goerr.V("id", stone.ID))
			}
			items[i].SightingCount = len(refs)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &model.StonePage{
		Stones:     items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

func (r *stoneRepository) ListAll(ctx context.Context) ([]*model.Stone, error) {
	docs, err := r.stonesCollection().
		OrderBy("ID", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list all stones")
	}

	stones := make([]*model.Stone, 0, len(docs))
	for _, doc := range docs {
		stone, err := docToStone(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal stone")
		}
		stones = append(stones, stone)
	}
	return stones, nil
}

func (r *stoneRepository) Delete(ctx context.Context, id types.StoneID, requester types.UserID) (string, error) {
	stoneRef := r.stonesCollection().Doc(id.String())

	var name string
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(stoneRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(types.ErrStoneNotFound, "stone not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get stone", goerr.V("id", id))
		}

		stone, err := docToStone(docSnap)
		if err != nil {
			return goerr.Wrap(err, "failed to unmarshal stone", goerr.V("id", id))
		}
		if stone.Registrant != requester {
			return goerr.Wrap(types.ErrNotOwner, "stone belongs to another user",
				goerr.V("id", id), goerr.V("requester", requester))
		}
		name = stone.Name

		sightingRefs, err := tx.Documents(r.sightingsCollection(id).Select()).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to list sightings", goerr.V("id", id))
		}
		for _, ref := range sightingRefs {
			if err := tx.Delete(ref.Ref); err != nil {
				return err
			}
		}

		return tx.Delete(stoneRef)
	})
	if err != nil {
		return "", err
	}

	return name, nil
}
