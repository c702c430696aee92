package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	slackapi "github.com/slack-go/slack"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/service/slack"
	"github.com/wanderstone-dev/wanderstone/pkg/usecase"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/async"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/errutil"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/logging"
)

// SlackInteractionHandler handles interactive component payloads. Button
// action IDs carry the signal, values carry the signal argument.
type SlackInteractionHandler struct {
	chatUC   *usecase.ChatUseCase
	slackSvc slack.Service
}

func NewSlackInteractionHandler(chatUC *usecase.ChatUseCase, slackSvc slack.Service) *SlackInteractionHandler {
	return &SlackInteractionHandler{
		chatUC:   chatUC,
		slackSvc: slackSvc,
	}
}

// ServeHTTP handles Slack interaction webhook requests
func (h *SlackInteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Slack sends interaction payloads as application/x-www-form-urlencoded
	// with a "payload" field containing JSON
	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing payload field in interaction request"), http.StatusBadRequest)
		return
	}

	var callback slackapi.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	if callback.Type != slackapi.InteractionTypeBlockActions {
		w.WriteHeader(http.StatusOK)
		return
	}

	w.WriteHeader(http.StatusOK)

	user := types.UserID(callback.User.ID)
	channel := callback.Channel.ID
	actions := callback.ActionCallback.BlockActions

	async.Dispatch(ctx, func(ctx context.Context) error {
		for _, action := range actions {
			signal := types.Signal(action.ActionID)
			if !signal.IsValid() {
				// Link buttons and the like carry no signal
				continue
			}

			replies, err := h.chatUC.OnSignal(ctx, user, signal, action.Value)
			if err != nil {
				logging.From(ctx).Error("failed to handle interaction",
					"signal", signal, "user", user, "error", err)
				continue
			}
			if err := renderReplies(ctx, h.slackSvc, channel, replies); err != nil {
				return err
			}
		}
		return nil
	})
}
