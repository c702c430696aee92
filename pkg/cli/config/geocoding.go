package config

import (
	"github.com/urfave/cli/v3"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/service/geocoding"
)

// Geocoding holds CLI flags for the Nominatim geocoding client
type Geocoding struct {
	disabled bool
	baseURL  string
}

// Flags returns CLI flags for geocoding configuration
func (g *Geocoding) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "geocoding-disabled",
			Usage:       "Disable location resolution (sightings keep raw coordinates only)",
			Sources:     cli.EnvVars("WANDERSTONE_GEOCODING_DISABLED"),
			Destination: &g.disabled,
		},
		&cli.StringFlag{
			Name:        "geocoding-base-url",
			Usage:       "Nominatim endpoint base URL",
			Value:       geocoding.DefaultBaseURL,
			Sources:     cli.EnvVars("WANDERSTONE_GEOCODING_BASE_URL"),
			Destination: &g.baseURL,
		},
	}
}

// Configure builds the geocoding client, or returns nil when disabled
func (g *Geocoding) Configure() interfaces.Geocoder {
	if g.disabled {
		return nil
	}
	return geocoding.New(geocoding.WithBaseURL(g.baseURL))
}
