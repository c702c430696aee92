package http

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
	"github.com/wanderstone-dev/wanderstone/pkg/service/webtoken"
	"github.com/wanderstone-dev/wanderstone/pkg/utils/errutil"
)

//go:embed map.html
var mapPageHTML []byte

// MapHandler serves the interactive journey map: a static viewer page
// and a token-gated JSON endpoint with the stone's located sightings.
type MapHandler struct {
	repo       interfaces.Repository
	tokens     *webtoken.Service
	publicList bool
}

type MapOption func(*MapHandler)

// WithPublicListing opens the unauthenticated stone listing endpoint
func WithPublicListing() MapOption {
	return func(h *MapHandler) {
		h.publicList = true
	}
}

func NewMapHandler(repo interfaces.Repository, tokens *webtoken.Service, opts ...MapOption) *MapHandler {
	h := &MapHandler{
		repo:   repo,
		tokens: tokens,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type mapPointResponse struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ObservedAt time.Time `json:"observed_at"`
	PostalCode string    `json:"postal_code,omitempty"`
}

type mapDataResponse struct {
	StoneID   types.StoneID      `json:"stone_id"`
	Name      string             `json:"name"`
	Sightings int                `json:"sightings"`
	Points    []mapPointResponse `json:"points"`
}

// ServePage serves the map viewer page
func (h *MapHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(mapPageHTML) //nolint:errcheck // header already committed
}

type stoneListEntry struct {
	StoneID   types.StoneID `json:"stone_id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
}

// ServeList serves the unauthenticated stone listing. Disabled unless
// the handler was built with WithPublicListing.
func (h *MapHandler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.publicList {
		http.NotFound(w, r)
		return
	}

	stones, err := h.repo.Stone().ListAll(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to list stones"), http.StatusInternalServerError)
		return
	}

	entries := make([]stoneListEntry, 0, len(stones))
	for _, s := range stones {
		entries = append(entries, stoneListEntry{
			StoneID:   s.ID,
			Name:      s.Name,
			CreatedAt: s.CreatedAt,
		})
	}

	data, err := json.Marshal(entries)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal stone list"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data) //nolint:errcheck // header already committed
}

// ServeData serves the journey data for one stone. The token in the
// query string must be scoped to the requested stone.
func (h *MapHandler) ServeData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stoneID, err := types.ParseStoneID(chi.URLParam(r, "stoneID"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	tokenStone, err := h.tokens.Verify(r.URL.Query().Get("token"))
	if err != nil || tokenStone != stoneID {
		errutil.HandleHTTP(ctx, w, goerr.New("invalid map token", goerr.V("stoneID", stoneID)), http.StatusUnauthorized)
		return
	}

	stone, err := h.repo.Stone().Get(ctx, stoneID)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to load stone"), http.StatusNotFound)
		return
	}

	points := model.MapPoints(stone.Sightings)
	resp := mapDataResponse{
		StoneID:   stone.ID,
		Name:      stone.Name,
		Sightings: len(stone.Sightings),
		Points:    make([]mapPointResponse, 0, len(points)),
	}
	for _, p := range points {
		resp.Points = append(resp.Points, mapPointResponse{
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
			ObservedAt: p.ObservedAt,
			PostalCode: p.PostalCode,
		})
	}

	data, err := json.Marshal(resp)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal map data"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data) //nolint:errcheck // header already committed
}
