package http

import (
	"context"

	slackapi "github.com/slack-go/slack"
	"github.com/wanderstone-dev/wanderstone/pkg/service/slack"
	"github.com/wanderstone-dev/wanderstone/pkg/usecase"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/errutil"
)

// renderReplies posts a usecase reply sequence to a Slack channel.
// Images go through the file upload API; text, buttons, and links are
// built as Block Kit blocks.
func renderReplies(ctx context.Context, svc slack.Service, channelID string, replies []usecase.Reply) error {
	for _, reply := range replies {
		if len(reply.Image) > 0 {
			if err := svc.UploadImage(ctx, channelID, reply.ImageName, reply.ImageText, reply.Image, reply.ImageText); err != nil {
				_ = errutil.Handle(ctx, err, "failed to upload image reply")
			}
			if reply.Text == "" && len(reply.Buttons) == 0 && reply.LinkURL == "" {
				continue
			}
		}

		blocks := replyBlocks(reply)
		if len(blocks) == 0 {
			continue
		}
		if _, err := svc.PostMessage(ctx, channelID, blocks, reply.Text); err != nil {
			return err
		}
	}
	return nil
}

func replyBlocks(reply usecase.Reply) []slackapi.Block {
	var blocks []slackapi.Block

	if reply.Text != "" {
		blocks = append(blocks, slackapi.NewSectionBlock(
			slackapi.NewTextBlockObject(slackapi.MarkdownType, reply.Text, false, false),
			nil, nil,
		))
	}

	var elements []slackapi.BlockElement
	for _, btn := range reply.Buttons {
		label := slackapi.NewTextBlockObject(slackapi.PlainTextType, btn.Label, true, false)
		elements = append(elements, slackapi.NewButtonBlockElement(string(btn.Signal), btn.Value, label))
	}
	if reply.LinkURL != "" {
		label := slackapi.NewTextBlockObject(slackapi.PlainTextType, reply.LinkLabel, true, false)
		link := slackapi.NewButtonBlockElement("open_link", "", label)
		link.URL = reply.LinkURL
		elements = append(elements, link)
	}
	if len(elements) > 0 {
		blocks = append(blocks, slackapi.NewActionBlock("", elements...))
	}

	return blocks
}
