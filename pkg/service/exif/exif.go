package exif

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"
)

// GPS extracts GPS coordinates from a photo's EXIF block. Missing or
// unreadable EXIF data is a normal condition, not an error, so the
// result just reports absence.
func GPS(image []byte) (lat, lon float64, ok bool) {
	x, err := exif.Decode(bytes.NewReader(image))
	if err != nil {
		return 0, 0, false
	}

	lat, lon, err = x.LatLong()
	if err != nil {
		return 0, 0, false
	}

	return lat, lon, true
}
