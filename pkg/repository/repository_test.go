package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/repository/firestore"
	"github.com/wanderstone-dev/wanderstone/pkg/repository/memory"
)

// basisEmbedding builds a 512-dim unit vector along one axis. Distinct
// axes are orthogonal, which makes similarity assertions exact.
func basisEmbedding(axis int) []float32 {
	vec := make([]float32, model.EmbeddingDimension)
	vec[axis%model.EmbeddingDimension] = 1
	return vec
}

// blendEmbedding mixes two basis axes so the result is closer to the
// dominant one.
func blendEmbedding(major, minor int, weight float32) []float32 {
	vec := make([]float32, model.EmbeddingDimension)
	vec[major%model.EmbeddingDimension] = weight
	vec[minor%model.EmbeddingDimension] = 1 - weight
	return vec
}

func newMemoryRepo(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(context.Background(), projectID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	return repo
}
