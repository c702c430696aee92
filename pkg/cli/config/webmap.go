package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/wanderstone-dev/wanderstone/pkg/service/webtoken"
)

// WebMap holds CLI flags for the journey map web viewer
type WebMap struct {
	secret   string
	baseURL  string
	tokenTTL time.Duration
}

// Flags returns CLI flags for web map configuration
func (w *WebMap) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "map-token-secret",
			Usage:       "HMAC secret for journey map access tokens (map links disabled when unset)",
			Sources:     cli.EnvVars("WANDERSTONE_MAP_TOKEN_SECRET"),
			Destination: &w.secret,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "External base URL used to build journey map links",
			Sources:     cli.EnvVars("WANDERSTONE_BASE_URL"),
			Destination: &w.baseURL,
		},
		&cli.DurationFlag{
			Name:        "map-token-ttl",
			Usage:       "Lifetime of journey map access tokens",
			Sources:     cli.EnvVars("WANDERSTONE_MAP_TOKEN_TTL"),
			Value:       7 * 24 * time.Hour,
			Destination: &w.tokenTTL,
		},
	}
}

// LogValue masks the token secret
func (w WebMap) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("hasSecret", w.secret != ""),
		slog.String("baseURL", w.baseURL),
		slog.Duration("tokenTTL", w.tokenTTL),
	)
}

// BaseURL returns the configured external base URL
func (w *WebMap) BaseURL() string {
	return w.baseURL
}

// Configure builds the web token service. Returns nil when no secret is set,
// which disables map links in chat replies.
func (w *WebMap) Configure() (*webtoken.Service, error) {
	if w.secret == "" {
		return nil, nil
	}
	if w.baseURL == "" {
		return nil, goerr.New("base-url is required when map-token-secret is set")
	}

	svc, err := webtoken.New([]byte(w.secret), webtoken.WithTTL(w.tokenTTL))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build web token service")
	}
	return svc, nil
}
