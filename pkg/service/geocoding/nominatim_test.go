package geocoding_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/service/geocoding"
)

func TestReverse(t *testing.T) {
	t.Run("maps address fields with town fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.URL.Path).Equal("/reverse")
			gt.Value(t, r.URL.Query().Get("addressdetails")).Equal("1")
			gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{
				"display_name": "Sopot, Pomorskie, Polska",
				"address": map[string]string{
					"postcode": "81-701",
					"town":     "Sopot",
					"country":  "Polska",
				},
			}))
		}))
		defer srv.Close()

		geo := geocoding.New(geocoding.WithBaseURL(srv.URL))
		place, err := geo.Reverse(context.Background(), 54.44, 18.56)
		gt.NoError(t, err).Required()
		gt.Value(t, place).NotNil().Required()
		gt.Value(t, place.PostalCode).Equal("81-701")
		gt.Value(t, place.City).Equal("Sopot")
		gt.Value(t, place.Country).Equal("Polska")
		gt.Value(t, place.DisplayName).Equal("Sopot, Pomorskie, Polska")
	})

	t.Run("empty address yields nil place", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{}))
		}))
		defer srv.Close()

		geo := geocoding.New(geocoding.WithBaseURL(srv.URL))
		place, err := geo.Reverse(context.Background(), 0, 0)
		gt.NoError(t, err).Required()
		gt.Value(t, place == nil).Equal(true)
	})

	t.Run("server error surfaces as geocoding failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		geo := geocoding.New(geocoding.WithBaseURL(srv.URL))
		_, err := geo.Reverse(context.Background(), 54.44, 18.56)
		gt.True(t, errors.Is(err, types.ErrGeocodingUnavailable))
	})
}

func TestForward(t *testing.T) {
	t.Run("resolves postal code to coordinates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.URL.Path).Equal("/search")
			gt.Value(t, r.URL.Query().Get("postalcode")).Equal("00-001")
			gt.NoError(t, json.NewEncoder(w).Encode([]map[string]string{
				{"lat": "52.2297", "lon": "21.0122"},
			}))
		}))
		defer srv.Close()

		geo := geocoding.New(geocoding.WithBaseURL(srv.URL))
		lat, lon, ok, err := geo.Forward(context.Background(), "00-001")
		gt.NoError(t, err).Required()
		gt.Value(t, ok).Equal(true)
		gt.Value(t, lat).Equal(52.2297)
		gt.Value(t, lon).Equal(21.0122)
	})

	t.Run("unknown postal code is not found, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.NoError(t, json.NewEncoder(w).Encode([]map[string]string{}))
		}))
		defer srv.Close()

		geo := geocoding.New(geocoding.WithBaseURL(srv.URL))
		_, _, ok, err := geo.Forward(context.Background(), "99999")
		gt.NoError(t, err).Required()
		gt.Value(t, ok).Equal(false)
	})
}
