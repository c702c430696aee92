package interfaces

import (
	"context"

	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
)

// Extractor is the visual feature extraction collaborator. The model
// itself (background removal, classification, embedding) is a black box
// behind an HTTP endpoint.
type Extractor interface {
	// Process isolates the subject, classifies it, and embeds it. Returns
	// types.ErrNoSubjectDetected when background removal finds nothing;
	// any other failure is types.ErrExtractionFailure. A non-stone result
	// comes back with Subject=false rather than an error so the caller
	// can log the score.
	Process(ctx context.Context, image []byte) (*model.Extraction, error)

	// EmbedText encodes a text query into the same embedding space for
	// text-to-stone semantic search
	EmbedText(ctx context.Context, query string) ([]float32, error)
}

// Geocoder resolves between coordinates and postal codes. Both directions
// are best-effort: a failure or empty result must never abort intake.
type Geocoder interface {
	// Reverse looks up the place containing the coordinates. Returns
	// nil without error when nothing is found.
	Reverse(ctx context.Context, lat, lon float64) (*model.Place, error)

	// Forward looks up coordinates for a postal code. ok is false when
	// the code is unknown.
	Forward(ctx context.Context, postalCode string) (lat, lon float64, ok bool, err error)
}

// MapRenderer renders a stone's journey as a static image. Returns nil
// bytes without error when no point carries coordinates.
type MapRenderer interface {
	Render(ctx context.Context, points []model.MapPoint) ([]byte, error)
}

// ImageStore persists image blobs (crops, thumbnails) and hands back
// opaque references
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, ref string) ([]byte, error)
}
