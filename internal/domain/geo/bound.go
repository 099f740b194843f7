package geo

import "math"

// Bound restricts a search to a geographic area.
// A bound that is not Valid contains nothing.
type Bound interface {
	Valid() bool
	Contains(p Point) bool
}

// Circle is a proximity bound: everything within RadiusKm of Center.
type Circle struct {
	Center   Point
	RadiusKm float64
}

// Valid reports whether the radius is positive and the center is a real coordinate.
func (c Circle) Valid() bool {
	return c.RadiusKm > 0 && !math.IsInf(c.RadiusKm, 0) && c.Center.Valid()
}

// Contains reports whether p lies within the radius, edge inclusive.
func (c Circle) Contains(p Point) bool {
	if !c.Valid() {
		return false
	}
	return Distance(c.Center, p) <= c.RadiusKm*1000
}

// Rect is a viewport bound using plain latitude/longitude range checks.
// Viewports crossing the antimeridian are not representable (MinLon > MaxLon is invalid).
type Rect struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lng"`
}

// Valid reports whether both corners are real coordinates and min <= max on both axes.
func (r Rect) Valid() bool {
	return ValidateCoordinates(r.MinLat, r.MinLon) &&
		ValidateCoordinates(r.MaxLat, r.MaxLon) &&
		r.MinLat <= r.MaxLat && r.MinLon <= r.MaxLon
}

// Contains reports whether p lies inside the rectangle, edges inclusive.
func (r Rect) Contains(p Point) bool {
	if !r.Valid() {
		return false
	}
	return p.Lat >= r.MinLat && p.Lat <= r.MaxLat &&
		p.Lon >= r.MinLon && p.Lon <= r.MaxLon
}

// FitBounds returns the rectangle covering points, grown by padding degrees on each side
// and clamped to valid coordinates. ok is false when there are no points to fit.
func FitBounds(points []Point, padding float64) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r := Rect{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		r.MinLat = math.Min(r.MinLat, p.Lat)
		r.MaxLat = math.Max(r.MaxLat, p.Lat)
		r.MinLon = math.Min(r.MinLon, p.Lon)
		r.MaxLon = math.Max(r.MaxLon, p.Lon)
	}
	r.MinLat = math.Max(r.MinLat-padding, -90)
	r.MaxLat = math.Min(r.MaxLat+padding, 90)
	r.MinLon = math.Max(r.MinLon-padding, -180)
	r.MaxLon = math.Min(r.MaxLon+padding, 180)
	return r, true
}
