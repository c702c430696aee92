package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack/slackevents"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/service/slack"
	"github.com/wanderstone-dev/wanderstone/pkg/usecase"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/async"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/errutil"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/logging"
)

// verifySlackSignature verifies the Slack request signature
func verifySlackSignature(signingSecret, timestamp, signature string, body []byte) error {
	if timestamp == "" {
		return goerr.New("missing timestamp")
	}
	if signature == "" {
		return goerr.New("missing signature")
	}

	// Reject stale timestamps to prevent replay attacks
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}
	now := time.Now().Unix()
	if now-ts > 60*5 {
		return goerr.New("timestamp too old", goerr.V("timestamp", timestamp), goerr.V("now", now))
	}

	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	if _, err := mac.Write([]byte(baseString)); err != nil {
		return goerr.Wrap(err, "failed to compute HMAC")
	}
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// SlackSignatureMiddleware verifies Slack request signatures and restores
// the body for downstream handlers
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}
			defer func() {
				if err := r.Body.Close(); err != nil {
					logging.From(ctx).Error("failed to close request body", "error", err)
				}
			}()

			timestamp := r.Header.Get("X-Slack-Request-Timestamp")
			signature := r.Header.Get("X-Slack-Signature")

			if err := verifySlackSignature(signingSecret, timestamp, signature, body); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "slack signature verification failed"), http.StatusUnauthorized)
				return
			}

			r.Body = io.NopCloser(bytes.NewBuffer(body))
			next.ServeHTTP(w, r)
		})
	}
}

// SlackEventHandler handles Slack Events API webhook requests. Photos,
// text, and coordinate messages are routed into the chat usecase.
type SlackEventHandler struct {
	chatUC   *usecase.ChatUseCase
	slackSvc slack.Service
}

func NewSlackEventHandler(chatUC *usecase.ChatUseCase, slackSvc slack.Service) *SlackEventHandler {
	return &SlackEventHandler{
		chatUC:   chatUC,
		slackSvc: slackSvc,
	}
}

// ServeHTTP handles Slack webhook requests
func (h *SlackEventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slack event"), http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to unmarshal challenge"), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(challenge.Challenge)); err != nil {
			logging.From(ctx).Error("failed to write challenge response", "error", err)
		}
		return

	case slackevents.CallbackEvent:
		// Ack inside Slack's 3-second window, process in the background
		w.WriteHeader(http.StatusOK)

		async.Dispatch(ctx, func(ctx context.Context) error {
			if err := h.handleCallback(ctx, &event, body); err != nil {
				return goerr.Wrap(err, "failed to handle slack event")
			}
			return nil
		})

	default:
		logging.From(ctx).Warn("unknown slack event type", "type", event.Type)
		w.WriteHeader(http.StatusOK)
	}
}

func (h *SlackEventHandler) handleCallback(ctx context.Context, event *slackevents.EventsAPIEvent, body []byte) error {
	msg, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		return nil
	}
	// Ignore our own and other bots' messages, and message edits
	if msg.BotID != "" || msg.SubType == "bot_message" || msg.SubType == "message_changed" {
		return nil
	}

	user := types.UserID(msg.User)
	channel := msg.Channel

	files, err := extractMessageFiles(body)
	if err != nil {
		logging.From(ctx).Warn("failed to decode message files", "error", err)
	}
	if len(files) > 0 {
		return h.handlePhotoMessage(ctx, user, channel, files)
	}

	var replies []usecase.Reply
	if lat, lon, ok := parseCoordinates(msg.Text); ok {
		replies, err = h.chatUC.OnLocation(ctx, user, lat, lon)
	} else {
		replies, err = h.chatUC.OnMessage(ctx, user, msg.Text)
	}
	if err != nil {
		return err
	}

	return renderReplies(ctx, h.slackSvc, channel, replies)
}

// messageFile is the attachment subset of a message event. The
// slackevents message type carries no file list, so attachments are
// decoded from the raw callback payload instead.
type messageFile struct {
	ID                 string `json:"id"`
	Mimetype           string `json:"mimetype"`
	URLPrivateDownload string `json:"url_private_download"`
}

func extractMessageFiles(body []byte) ([]messageFile, error) {
	var payload struct {
		Event struct {
			Files []messageFile `json:"files"`
		} `json:"event"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal event files")
	}
	return payload.Event.Files, nil
}

func (h *SlackEventHandler) handlePhotoMessage(ctx context.Context, user types.UserID, channel string, files []messageFile) error {
	notified := false
	for _, f := range files {
		if !strings.HasPrefix(f.Mimetype, "image/") {
			continue
		}

		// Tell the user the photo is being analyzed before the slow
		// extraction round trip
		if !notified {
			notified = true
			if err := renderReplies(ctx, h.slackSvc, channel, h.chatUC.PhotoReceived(ctx, user)); err != nil {
				logging.From(ctx).Warn("failed to post analyzing notice", "error", err)
			}
		}

		data, err := h.slackSvc.DownloadFile(ctx, f.URLPrivateDownload)
		if err != nil {
			return goerr.Wrap(err, "failed to download photo", goerr.V("file", f.ID))
		}

		replies, err := h.chatUC.OnPhoto(ctx, user, channel, data)
		if err != nil {
			return err
		}
		if err := renderReplies(ctx, h.slackSvc, channel, replies); err != nil {
			return err
		}
	}
	return nil
}

// coordinatePattern accepts "52.2297, 21.0122" style messages, the chat
// substitute for native location sharing
var coordinatePattern = regexp.MustCompile(`^\s*(-?\d{1,3}(?:\.\d+)?)\s*,\s*(-?\d{1,3}(?:\.\d+)?)\s*$`)

func parseCoordinates(text string) (lat, lon float64, ok bool) {
	m := coordinatePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(m[1], 64)
	lon, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}
