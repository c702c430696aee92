package usecase_test

import (
	"context"

	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/service/narrative"
)

// basisEmbedding returns a unit vector along one axis of the embedding
// space, a convenient way to get exact similarities in tests
func basisEmbedding(axis int) []float32 {
	v := make([]float32, 512)
	v[axis] = 1
	return v
}

// coords builds a Location from literals
func coords(lat, lon float64) *model.Location {
	return &model.Location{Latitude: &lat, Longitude: &lon}
}

type mockExtractor struct {
	processFn func(ctx context.Context, image []byte) (*model.Extraction, error)
	embedFn   func(ctx context.Context, query string) ([]float32, error)
}

func (m *mockExtractor) Process(ctx context.Context, image []byte) (*model.Extraction, error) {
	return m.processFn(ctx, image)
}

func (m *mockExtractor) EmbedText(ctx context.Context, query string) ([]float32, error) {
	return m.embedFn(ctx, query)
}

// stoneExtractor accepts every photo as a stone with the given embedding
func stoneExtractor(embedding []float32) *mockExtractor {
	return &mockExtractor{
		processFn: func(ctx context.Context, image []byte) (*model.Extraction, error) {
			return &model.Extraction{
				Subject:    true,
				Confidence: 0.2,
				Embedding:  embedding,
				Crop:       []byte("crop"),
				Thumbnail:  []byte("thumb"),
			}, nil
		},
		embedFn: func(ctx context.Context, query string) ([]float32, error) {
			return embedding, nil
		},
	}
}

type mockGeocoder struct {
	reverseFn func(ctx context.Context, lat, lon float64) (*model.Place, error)
	forwardFn func(ctx context.Context, postalCode string) (float64, float64, bool, error)
}

func (m *mockGeocoder) Reverse(ctx context.Context, lat, lon float64) (*model.Place, error) {
	if m.reverseFn == nil {
		return nil, nil
	}
	return m.reverseFn(ctx, lat, lon)
}

func (m *mockGeocoder) Forward(ctx context.Context, postalCode string) (float64, float64, bool, error) {
	if m.forwardFn == nil {
		return 0, 0, false, nil
	}
	return m.forwardFn(ctx, postalCode)
}

type mockRenderer struct {
	image []byte
	calls int
}

func (m *mockRenderer) Render(ctx context.Context, points []model.MapPoint) ([]byte, error) {
	m.calls++
	return m.image, nil
}

type mockNarrative struct {
	story string
}

func (m *mockNarrative) Journey(ctx context.Context, req *narrative.Request) (string, error) {
	return m.story, nil
}
