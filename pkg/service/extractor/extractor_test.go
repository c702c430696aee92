package extractor_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/service/extractor"
)

func embeddingOfDim(n int) []float32 {
	vec := make([]float32, n)
	vec[0] = 1
	return vec
}

func TestProcess(t *testing.T) {
	crop := []byte("cropped-jpeg")
	thumb := []byte("thumb-jpeg")

	t.Run("decodes a stone result", func(t *testing.T) {
		var gotBody map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.Method).Equal(http.MethodPost)
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"is_stone":      true,
				"confidence":    0.31,
				"embedding":     embeddingOfDim(model.EmbeddingDimension),
				"cropped_image": base64.StdEncoding.EncodeToString(crop),
				"thumbnail":     base64.StdEncoding.EncodeToString(thumb),
			}))
		}))
		defer srv.Close()

		svc, err := extractor.New(srv.URL)
		gt.NoError(t, err).Required()
		extraction, err := svc.Process(context.Background(), []byte("raw-photo"))
		gt.NoError(t, err).Required()

		gt.Value(t, gotBody["image_base64"]).Equal(base64.StdEncoding.EncodeToString([]byte("raw-photo")))
		gt.Value(t, extraction.Subject).Equal(true)
		gt.Value(t, extraction.Confidence).Equal(0.31)
		gt.Array(t, extraction.Embedding).Length(model.EmbeddingDimension)
		gt.Value(t, string(extraction.Crop)).Equal(string(crop))
		gt.Value(t, string(extraction.Thumbnail)).Equal(string(thumb))
	})

	t.Run("no crop means no subject", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"is_stone":   false,
				"confidence": 0.0,
			}))
		}))
		defer srv.Close()

		svc, err := extractor.New(srv.URL)
		gt.NoError(t, err).Required()
		_, err = svc.Process(context.Background(), []byte("raw-photo"))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrNoSubjectDetected))
	})

	t.Run("cropped non-stone is not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"is_stone":      false,
				"confidence":    -0.02,
				"cropped_image": base64.StdEncoding.EncodeToString(crop),
			}))
		}))
		defer srv.Close()

		svc, err := extractor.New(srv.URL)
		gt.NoError(t, err).Required()
		extraction, err := svc.Process(context.Background(), []byte("raw-photo"))
		gt.NoError(t, err).Required()
		gt.Value(t, extraction.Subject).Equal(false)
		gt.Value(t, extraction.Confidence).Equal(-0.02)
		gt.Array(t, extraction.Embedding).Length(0)
	})

	t.Run("server error is an extraction failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		svc, err := extractor.New(srv.URL)
		gt.NoError(t, err).Required()
		_, err = svc.Process(context.Background(), []byte("raw-photo"))
		gt.True(t, errors.Is(err, types.ErrExtractionFailure))
	})

	t.Run("wrong embedding dimension is an extraction failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"is_stone":      true,
				"confidence":    0.2,
				"embedding":     embeddingOfDim(16),
				"cropped_image": base64.StdEncoding.EncodeToString(crop),
			}))
		}))
		defer srv.Close()

		svc, err := extractor.New(srv.URL)
		gt.NoError(t, err).Required()
		_, err = svc.Process(context.Background(), []byte("raw-photo"))
		gt.True(t, errors.Is(err, types.ErrExtractionFailure))
	})
}

func TestEmbedText(t *testing.T) {
	t.Run("encodes a text query", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) {
			var req map[string]string
			gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			gt.Value(t, req["text"]).Equal("blue ladybug")
			gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"embedding": embeddingOfDim(model.EmbeddingDimension),
			}))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		svc, err := extractor.New(srv.URL)
		gt.NoError(t, err).Required()
		vec, err := svc.EmbedText(context.Background(), "blue ladybug")
		gt.NoError(t, err).Required()
		gt.Array(t, vec).Length(model.EmbeddingDimension)
	})

	t.Run("rejects empty query", func(t *testing.T) {
		svc, err := extractor.New("http://localhost:1")
		gt.NoError(t, err).Required()
		_, err = svc.EmbedText(context.Background(), "")
		gt.True(t, errors.Is(err, types.ErrInvalidInput))
	})
}

func TestNew(t *testing.T) {
	_, err := extractor.New("")
	gt.Error(t, err)
}
