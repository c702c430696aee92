package imagestore_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/service/imagestore"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := imagestore.NewMemory()

	ref, err := store.Put(ctx, "crops/42.jpg", []byte("jpeg-bytes"), "image/jpeg")
	gt.NoError(t, err).Required()
	gt.Value(t, ref).Equal("mem://crops/42.jpg")

	data, err := store.Get(ctx, ref)
	gt.NoError(t, err).Required()
	gt.Value(t, string(data)).Equal("jpeg-bytes")

	_, err = store.Get(ctx, "mem://crops/missing.jpg")
	gt.Error(t, err)

	_, err = store.Get(ctx, "gs://other/scheme.jpg")
	gt.Error(t, err)
}
