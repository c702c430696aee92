package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/service/extractor"
)

// Extractor holds CLI flags for the feature extraction service
type Extractor struct {
	endpoint     string
	textEndpoint string
}

// Flags returns CLI flags for extractor configuration
func (e *Extractor) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "extractor-endpoint",
			Usage:       "URL of the visual feature extraction service (required)",
			Required:    true,
			Sources:     cli.EnvVars("WANDERSTONE_EXTRACTOR_ENDPOINT"),
			Destination: &e.endpoint,
		},
		&cli.StringFlag{
			Name:        "extractor-text-endpoint",
			Usage:       "URL of the text embedding endpoint (defaults to <endpoint>/text)",
			Sources:     cli.EnvVars("WANDERSTONE_EXTRACTOR_TEXT_ENDPOINT"),
			Destination: &e.textEndpoint,
		},
	}
}

// Configure builds the extractor client
func (e *Extractor) Configure() (interfaces.Extractor, error) {
	var opts []extractor.Option
	if e.textEndpoint != "" {
		opts = append(opts, extractor.WithTextEndpoint(e.textEndpoint))
	}
	svc, err := extractor.New(e.endpoint, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build extractor client")
	}
	return svc, nil
}
