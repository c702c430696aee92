package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	httpctrl "github.com/wanderstone-dev/wanderstone/pkg/controller/http"
	"github.com/wanderstone-dev/wanderstone/pkg/repository/memory"
	"github.com/wanderstone-dev/wanderstone/pkg/usecase"
)

func postInteraction(t *testing.T, handler *httpctrl.SlackInteractionHandler, payload string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{"payload": {payload}}
	req := httptest.NewRequest(http.MethodPost, "/hooks/slack/interaction", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSlackInteractionHandler(t *testing.T) {
	t.Run("language button press", func(t *testing.T) {
		svc := &mockSlackService{}
		uc := usecase.New(memory.New(), &mockTextExtractor{})
		handler := httpctrl.NewSlackInteractionHandler(uc.Chat, svc)

		payload := `{
			"type": "block_actions",
			"user": {"id": "U123"},
			"channel": {"id": "C123"},
			"actions": [{"action_id": "set_language", "block_id": "actions", "value": "en"}]
		}`

		rec := postInteraction(t, handler, payload)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		time.Sleep(100 * time.Millisecond)

		if svc.postCount() != 1 {
			t.Fatalf("expected 1 posted message, got %d", svc.postCount())
		}
		post := svc.lastPost()
		if !strings.Contains(post.text, "English") {
			t.Errorf("expected language confirmation, got %q", post.text)
		}
	})

	t.Run("unknown action IDs are skipped", func(t *testing.T) {
		svc := &mockSlackService{}
		uc := usecase.New(memory.New(), &mockTextExtractor{})
		handler := httpctrl.NewSlackInteractionHandler(uc.Chat, svc)

		payload := `{
			"type": "block_actions",
			"user": {"id": "U123"},
			"channel": {"id": "C123"},
			"actions": [{"action_id": "open_link", "block_id": "actions", "value": ""}]
		}`

		rec := postInteraction(t, handler, payload)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		time.Sleep(100 * time.Millisecond)

		if svc.postCount() != 0 {
			t.Errorf("expected no posted messages, got %d", svc.postCount())
		}
	})

	t.Run("missing payload is rejected", func(t *testing.T) {
		svc := &mockSlackService{}
		uc := usecase.New(memory.New(), &mockTextExtractor{})
		handler := httpctrl.NewSlackInteractionHandler(uc.Chat, svc)

		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/interaction", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}
