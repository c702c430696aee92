package staticmap

import (
	"bytes"
	"context"
	"image/color"
	"image/png"

	sm "github.com/flopp/go-staticmaps"
	"github.com/golang/geo/s2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/interfaces"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/model"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
)

// Marker palette: origin green, latest red, intermediate blue.
var (
	originColor = color.RGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	latestColor = color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	routeColor  = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
)

// renderer implements interfaces.MapRenderer with OSM tiles
type renderer struct {
	width  int
	height int
}

// Option is a functional option for renderer configuration
type Option func(*renderer)

// WithSize overrides the rendered image dimensions
func WithSize(width, height int) Option {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// New creates a journey map renderer
func New(opts ...Option) interfaces.MapRenderer {
	r := &renderer{
		width:  defaultWidth,
		height: defaultHeight,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// markerStyle picks the marker color and size for the i-th of n
// sightings. The latest sighting wins over the origin when a journey
// has a single point.
func markerStyle(i, n int) (color.RGBA, float64) {
	switch {
	case i == n-1:
		return latestColor, 12.0
	case i == 0:
		return originColor, 12.0
	default:
		return routeColor, 8.0
	}
}

func (r *renderer) Render(ctx context.Context, points []model.MapPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, nil
	}

	mapCtx := sm.NewContext()
	mapCtx.SetSize(r.width, r.height)

	coords := make([]s2.LatLng, 0, len(points))
	for i, p := range points {
		pos := s2.LatLngFromDegrees(p.Latitude, p.Longitude)
		coords = append(coords, pos)

		markerColor, size := markerStyle(i, len(points))
		mapCtx.AddObject(sm.NewMarker(pos, markerColor, size))
	}

	if len(coords) > 1 {
		mapCtx.AddObject(sm.NewPath(coords, routeColor, 3.0))
	}

	img, err := mapCtx.Render()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render journey map", goerr.V("points", len(points)))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, goerr.Wrap(err, "failed to encode journey map")
	}

	return buf.Bytes(), nil
}
