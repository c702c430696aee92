package geocoding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

const (
	// DefaultBaseURL is the public Nominatim instance
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	// DefaultTimeout follows Nominatim's usage policy of short requests
	DefaultTimeout = 10 * time.Second

	userAgent = "wanderstone/1.0"
)

// client implements interfaces.Geocoder on top of the Nominatim API
type client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithBaseURL points the client at a different Nominatim instance,
// used by tests
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a Nominatim geocoder
func New(opts ...Option) interfaces.Geocoder {
	c := &client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Postcode string `json:"postcode"`
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		Country  string `json:"country"`
	} `json:"address"`
}

func (c *client) Reverse(ctx context.Context, lat, lon float64) (*model.Place, error) {
	params := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', -1, 64)},
		"format":         {"json"},
		"addressdetails": {"1"},
	}

	var resp reverseResponse
	if err := c.get(ctx, "/reverse", params, &resp); err != nil {
		return nil, err
	}

	city := resp.Address.City
	if city == "" {
		city = resp.Address.Town
	}
	if city == "" {
		city = resp.Address.Village
	}

	place := &model.Place{
		PostalCode:  resp.Address.Postcode,
		City:        city,
		Country:     resp.Address.Country,
		DisplayName: resp.DisplayName,
	}
	if place.PostalCode == "" && place.City == "" && place.Country == "" {
		return nil, nil
	}

	return place, nil
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *client) Forward(ctx context.Context, postalCode string) (float64, float64, bool, error) {
	params := url.Values{
		"postalcode": {postalCode},
		"format":     {"json"},
		"limit":      {"1"},
	}

	var results []searchResult
	if err := c.get(ctx, "/search", params, &results); err != nil {
		return 0, 0, false, err
	}
	if len(results) == 0 {
		return 0, 0, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, false, goerr.Wrap(types.ErrGeocodingUnavailable, "invalid latitude in response", goerr.V("lat", results[0].Lat))
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, false, goerr.Wrap(types.ErrGeocodingUnavailable, "invalid longitude in response", goerr.V("lon", results[0].Lon))
	}

	return lat, lon, true, nil
}

func (c *client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return goerr.Wrap(types.ErrGeocodingUnavailable, "failed to build request", goerr.V("cause", err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(types.ErrGeocodingUnavailable, "geocoding request failed", goerr.V("cause", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return goerr.Wrap(types.ErrGeocodingUnavailable, "geocoding endpoint returned an error",
			goerr.V("status", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(types.ErrGeocodingUnavailable, "failed to decode response", goerr.V("cause", err))
	}
	return nil
}
