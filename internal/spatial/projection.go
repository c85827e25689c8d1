package spatial

import (
	"math"

	"github.com/paulmach/orb"
)

// Screen describes a web-mercator camera in pixel space.
type Screen struct {
	Center  orb.Point // [lng, lat]
	Zoom    float64
	Bearing float64 // degrees clockwise from north
	Width   float64
	Height  float64
}

// worldPixel projects [lng, lat] to absolute world pixels at the given zoom.
func worldPixel(p orb.Point, zoom float64) (float64, float64) {
	scale := TileSize * math.Pow(2, zoom)
	lat := math.Max(math.Min(p.Lat(), 85.05112878), -85.05112878)
	x := (p.Lon() + 180) / 360 * scale
	sinLat := math.Sin(lat * math.Pi / 180)
	y := (0.5 - math.Log((1+sinLat)/(1-sinLat))/(4*math.Pi)) * scale
	return x, y
}

// Project returns the screen pixel for a [lng, lat] point. Pitch is not
// modelled; bearing rotates around the screen centre.
func (s Screen) Project(p orb.Point) (float64, float64) {
	cx, cy := worldPixel(s.Center, s.Zoom)
	px, py := worldPixel(p, s.Zoom)
	dx, dy := px-cx, py-cy

	if s.Bearing != 0 {
		rad := -s.Bearing * math.Pi / 180
		dx, dy = dx*math.Cos(rad)-dy*math.Sin(rad), dx*math.Sin(rad)+dy*math.Cos(rad)
	}

	return s.Width/2 + dx, s.Height/2 + dy
}

// SegmentIntersectsBox reports whether the pixel segment (x1,y1)-(x2,y2)
// touches the axis-aligned box [minX,maxX]x[minY,maxY]. Liang-Barsky clipping.
func SegmentIntersectsBox(x1, y1, x2, y2, minX, minY, maxX, maxY float64) bool {
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}

	return clip(-dx, x1-minX) &&
		clip(dx, maxX-x1) &&
		clip(-dy, y1-minY) &&
		clip(dy, maxY-y1)
}

// Unproject is the inverse of Project.
func (s Screen) Unproject(x, y float64) orb.Point {
	dx, dy := x-s.Width/2, y-s.Height/2

	if s.Bearing != 0 {
		rad := s.Bearing * math.Pi / 180
		dx, dy = dx*math.Cos(rad)-dy*math.Sin(rad), dx*math.Sin(rad)+dy*math.Cos(rad)
	}

	cx, cy := worldPixel(s.Center, s.Zoom)
	scale := TileSize * math.Pow(2, s.Zoom)
	wx, wy := (cx+dx)/scale, (cy+dy)/scale

	lng := wx*360 - 180
	lat := math.Atan(math.Sinh(math.Pi*(1-2*wy))) * 180 / math.Pi
	return orb.Point{lng, lat}
}
