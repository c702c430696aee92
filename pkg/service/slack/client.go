package slack

import (
	"bytes"
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// client implements Service interface
type client struct {
	api *slack.Client
}

// New creates a new Slack service with the provided bot token
func New(token string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	return &client{api: slack.New(token)}, nil
}

// PostMessage posts a Block Kit message to a channel
func (c *client) PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error) {
	opts := []slack.MsgOption{
		slack.MsgOptionText(text, false),
	}
	if len(blocks) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(blocks...))
	}

	_, timestamp, err := c.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post message", goerr.V("channelID", channelID))
	}

	return timestamp, nil
}

// UpdateMessage updates an existing Block Kit message
func (c *client) UpdateMessage(ctx context.Context, channelID string, timestamp string, blocks []slack.Block, text string) error {
	opts := []slack.MsgOption{
		slack.MsgOptionText(text, false),
	}
	if len(blocks) > 0 {
		opts = append(opts, slack.MsgOptionBlocks(blocks...))
	}

	if _, _, _, err := c.api.UpdateMessageContext(ctx, channelID, timestamp, opts...); err != nil {
		return goerr.Wrap(err, "failed to update message",
			goerr.V("channelID", channelID), goerr.V("timestamp", timestamp))
	}

	return nil
}

// UploadImage uploads an image to a channel
func (c *client) UploadImage(ctx context.Context, channelID string, filename, title string, data []byte, comment string) error {
	_, err := c.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:        channelID,
		Filename:       filename,
		Title:          title,
		FileSize:       len(data),
		Reader:         bytes.NewReader(data),
		InitialComment: comment,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to upload image",
			goerr.V("channelID", channelID), goerr.V("filename", filename))
	}

	return nil
}

// DownloadFile downloads a user-shared file via its private URL
func (c *client) DownloadFile(ctx context.Context, privateURL string) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.api.GetFileContext(ctx, privateURL, &buf); err != nil {
		return nil, goerr.Wrap(err, "failed to download file", goerr.V("url", privateURL))
	}

	return buf.Bytes(), nil
}
