package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/wanderstone-dev/wanderstone/pkg/service/slack"
)

// Slack holds CLI flags for the Slack integration
type Slack struct {
	botToken      string
	signingSecret string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token (xoxb-...)",
			Required:    true,
			Sources:     cli.EnvVars("WANDERSTONE_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack signing secret for webhook verification",
			Required:    true,
			Sources:     cli.EnvVars("WANDERSTONE_SLACK_SIGNING_SECRET"),
			Destination: &s.signingSecret,
		},
	}
}

// LogValue implements slog.LogValuer, masking the credentials
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("bot_token_configured", s.botToken != ""),
		slog.Bool("signing_secret_configured", s.signingSecret != ""),
	)
}

// SigningSecret returns the webhook signing secret
func (s *Slack) SigningSecret() string {
	return s.signingSecret
}

// Configure builds the Slack API client
func (s *Slack) Configure() (slack.Service, error) {
	svc, err := slack.New(s.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build slack client")
	}
	return svc, nil
}
