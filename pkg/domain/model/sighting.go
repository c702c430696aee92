package model

import (
	"sort"
	"time"

	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// Location is an optional observation location. Every field is
// independently optional; a sighting may carry only a postal code, only
// coordinates, or nothing at all.
type Location struct {
	Latitude   *float64
	Longitude  *float64
	PostalCode string
}

// HasCoordinates reports whether both latitude and longitude are present
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// IsEmpty reports whether the location carries no information
func (l *Location) IsEmpty() bool {
	return l == nil || (l.Latitude == nil && l.Longitude == nil && l.PostalCode == "")
}

// Place is a reverse-geocoding result
type Place struct {
	PostalCode  string
	City        string
	Country     string
	DisplayName string
}

// Label builds a short human-readable place description, e.g.
// "Warszawa, 00-001, Polska". Returns "" when nothing is known.
func (p *Place) Label() string {
	if p == nil {
		return ""
	}
	var parts []string
	if p.City != "" {
		parts = append(parts, p.City)
	}
	if p.PostalCode != "" {
		parts = append(parts, p.PostalCode)
	}
	if p.Country != "" {
		parts = append(parts, p.Country)
	}
	out := ""
	for i, part := range parts {
		if i > 0 {
			out += ", "
		}
		out += part
	}
	return out
}

// Sighting is one observation event of a stone. The registration event is
// itself the first sighting.
type Sighting struct {
	ID         types.SightingID
	StoneID    types.StoneID
	Reporter   types.UserID
	ImageRef   string
	Location   *Location
	ObservedAt time.Time
}

// SortSightings orders sightings ascending by observation time, oldest
// first. The first element is the origin, the last the most recent.
func SortSightings(sightings []*Sighting) {
	sort.Slice(sightings, func(i, j int) bool {
		return sightings[i].ObservedAt.Before(sightings[j].ObservedAt)
	})
}

// MapPoint is one located sighting prepared for map rendering
type MapPoint struct {
	Latitude   float64
	Longitude  float64
	ObservedAt time.Time
	PostalCode string
}

// MapPoints extracts located sightings in chronological order. Sightings
// without coordinates are dropped.
func MapPoints(sightings []*Sighting) []MapPoint {
	ordered := make([]*Sighting, len(sightings))
	copy(ordered, sightings)
	SortSightings(ordered)

	points := make([]MapPoint, 0, len(ordered))
	for _, s := range ordered {
		if !s.Location.HasCoordinates() {
			continue
		}
		points = append(points, MapPoint{
			Latitude:   *s.Location.Latitude,
			Longitude:  *s.Location.Longitude,
			ObservedAt: s.ObservedAt,
			PostalCode: s.Location.PostalCode,
		})
	}
	return points
}
