package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinates is a point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"lat" bson:"lat"`
	Longitude float64 `json:"lon" bson:"lon"`
}

// ParseCoordinates reads the string pair geocoders answer with.
func ParseCoordinates(lat, lon string) (Coordinates, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid longitude %q: %w", lon, err)
	}
	c := Coordinates{Latitude: la, Longitude: lo}
	if !c.Valid() {
		return Coordinates{}, fmt.Errorf("coordinates out of range: %s,%s", lat, lon)
	}
	return c, nil
}

func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// BoundingBox uses independent per-axis ranges, bounds inclusive.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

func BoxAround(c Coordinates, delta float64) BoundingBox {
	return BoundingBox{
		MinLat: c.Latitude - delta,
		MaxLat: c.Latitude + delta,
		MinLon: c.Longitude - delta,
		MaxLon: c.Longitude + delta,
	}
}

func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}
