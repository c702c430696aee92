package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Service provides the Slack API surface the bot needs
type Service interface {
	// PostMessage posts a Block Kit message to a channel and returns the
	// message timestamp. The text parameter is used as a fallback for
	// notifications.
	PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error)

	// UpdateMessage updates an existing Block Kit message identified by
	// channel and timestamp.
	UpdateMessage(ctx context.Context, channelID string, timestamp string, blocks []slack.Block, text string) error

	// UploadImage uploads an image (thumbnail, journey map) to a channel
	UploadImage(ctx context.Context, channelID string, filename, title string, data []byte, comment string) error

	// DownloadFile downloads a user-shared file via its private URL,
	// authenticated with the bot token
	DownloadFile(ctx context.Context, privateURL string) ([]byte, error)
}
