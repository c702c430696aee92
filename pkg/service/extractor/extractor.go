package extractor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// DefaultTimeout covers cold starts of the serverless inference backend
const DefaultTimeout = 60 * time.Second

// client implements interfaces.Extractor against the inference HTTP
// endpoint. The ML model itself (background removal, classification,
// CLIP embedding) runs behind that endpoint; this client only speaks
// its base64-JSON wire format.
type client struct {
	endpoint     string
	textEndpoint string
	httpClient   *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the HTTP client, used by tests
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithTextEndpoint sets the text embedding endpoint. Defaults to
// endpoint + "/text".
func WithTextEndpoint(url string) Option {
	return func(c *client) {
		c.textEndpoint = url
	}
}

// New creates an extractor client for the given inference endpoint
func New(endpoint string, opts ...Option) (interfaces.Extractor, error) {
	if endpoint == "" {
		return nil, goerr.New("extractor endpoint is required")
	}

	c := &client{
		endpoint:     endpoint,
		textEndpoint: endpoint + "/text",
		httpClient:   &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type processRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type processResponse struct {
	IsStone      bool      `json:"is_stone"`
	Confidence   float64   `json:"confidence"`
	Embedding    []float32 `json:"embedding"`
	CroppedImage string    `json:"cropped_image"`
	Thumbnail    string    `json:"thumbnail"`
}

func (c *client) Process(ctx context.Context, image []byte) (*model.Extraction, error) {
	body, err := json.Marshal(&processRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, goerr.Wrap(types.ErrExtractionFailure, "failed to marshal request", goerr.V("cause", err))
	}

	var resp processResponse
	if err := c.post(ctx, c.endpoint, body, &resp); err != nil {
		return nil, err
	}

	// No crop at all means background removal found no subject
	if resp.CroppedImage == "" {
		return nil, goerr.Wrap(types.ErrNoSubjectDetected, "no subject in image",
			goerr.V("confidence", resp.Confidence))
	}

	crop, err := base64.StdEncoding.DecodeString(resp.CroppedImage)
	if err != nil {
		return nil, goerr.Wrap(types.ErrExtractionFailure, "invalid cropped image encoding", goerr.V("cause", err))
	}
	var thumbnail []byte
	if resp.Thumbnail != "" {
		thumbnail, err = base64.StdEncoding.DecodeString(resp.Thumbnail)
		if err != nil {
			return nil, goerr.Wrap(types.ErrExtractionFailure, "invalid thumbnail encoding", goerr.V("cause", err))
		}
	}

	extraction := &model.Extraction{
		Subject:    resp.IsStone,
		Confidence: resp.Confidence,
		Crop:       crop,
		Thumbnail:  thumbnail,
	}
	if resp.IsStone {
		if len(resp.Embedding) != model.EmbeddingDimension {
			return nil, goerr.Wrap(types.ErrExtractionFailure, "unexpected embedding dimension",
				goerr.V("got", len(resp.Embedding)), goerr.V("want", model.EmbeddingDimension))
		}
		extraction.Embedding = resp.Embedding
	}

	return extraction, nil
}

type embedTextRequest struct {
	Text string `json:"text"`
}

type embedTextResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (c *client) EmbedText(ctx context.Context, query string) ([]float32, error) {
	if query == "" {
		return nil, goerr.Wrap(types.ErrInvalidInput, "empty text query")
	}

	body, err := json.Marshal(&embedTextRequest{Text: query})
	if err != nil {
		return nil, goerr.Wrap(types.ErrExtractionFailure, "failed to marshal request", goerr.V("cause", err))
	}

	var resp embedTextResponse
	if err := c.post(ctx, c.textEndpoint, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) != model.EmbeddingDimension {
		return nil, goerr.Wrap(types.ErrExtractionFailure, "unexpected embedding dimension",
			goerr.V("got", len(resp.Embedding)), goerr.V("want", model.EmbeddingDimension))
	}

	return resp.Embedding, nil
}

func (c *client) post(ctx context.Context, url string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(types.ErrExtractionFailure, "failed to build request", goerr.V("cause", err))
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(types.ErrExtractionFailure, "inference request failed", goerr.V("cause", err))
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(httpResp.Body, 1024))
		return goerr.Wrap(types.ErrExtractionFailure, "inference endpoint returned an error",
			goerr.V("status", httpResp.StatusCode), goerr.V("body", string(data)))
	}

	if err := json.NewDecoder(httpResp.Body).Decode(out); err != nil {
		return goerr.Wrap(types.ErrExtractionFailure, "failed to decode response", goerr.V("cause", err))
	}
	return nil
}
