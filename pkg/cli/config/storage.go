package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/service/imagestore"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/logging"
)

// Storage holds CLI flags for crop and thumbnail persistence
type Storage struct {
	bucket string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "GCS bucket for stone images (in-memory store when unset)",
			Sources:     cli.EnvVars("WANDERSTONE_STORAGE_BUCKET"),
			Destination: &s.bucket,
		},
	}
}

// Configure builds the image store
func (s *Storage) Configure(ctx context.Context) (interfaces.ImageStore, error) {
	if s.bucket == "" {
		logging.Default().Info("Using in-memory image store (development mode)")
		return imagestore.NewMemory(), nil
	}

	store, err := imagestore.NewGCS(ctx, s.bucket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build GCS image store", goerr.V("bucket", s.bucket))
	}
	logging.Default().Info("Using GCS image store", "bucket", s.bucket)
	return store, nil
}
