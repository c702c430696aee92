package staticmap

import "image/color"

func MarkerStyle(i, n int) (color.RGBA, float64) {
	return markerStyle(i, n)
}

var (
	OriginColor = originColor
	LatestColor = latestColor
	RouteColor  = routeColor
)
