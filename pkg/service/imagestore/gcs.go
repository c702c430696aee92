package imagestore

import (
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/safe"
)

const refScheme = "gs://"

// gcsStore implements interfaces.ImageStore on Cloud Storage. References
// are "gs://bucket/key" so they stay resolvable if the bucket changes.
type gcsStore struct {
	bucketName string
	client     *storage.Client
}

// NewGCS creates a Cloud Storage backed image store
func NewGCS(ctx context.Context, bucketName string) (interfaces.ImageStore, error) {
	if bucketName == "" {
		return nil, goerr.New("bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &gcsStore{
		bucketName: bucketName,
		client:     client,
	}, nil
}

func (s *gcsStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		safe.Close(ctx, w)
		return "", goerr.Wrap(err, "failed to write image", goerr.V("key", key))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize image upload", goerr.V("key", key))
	}

	return refScheme + s.bucketName + "/" + key, nil
}

func (s *gcsStore) Get(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := parseRef(ref)
	if err != nil {
		return nil, err
	}

	r, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open image", goerr.V("ref", ref))
	}
	defer safe.Close(ctx, r)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read image", goerr.V("ref", ref))
	}
	return data, nil
}

func parseRef(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, refScheme)
	if !ok {
		return "", "", goerr.New("not a storage reference", goerr.V("ref", ref))
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", goerr.New("malformed storage reference", goerr.V("ref", ref))
	}
	return bucket, key, nil
}
