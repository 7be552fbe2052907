package lightbox

import (
	"strconv"
)

// Point is a position in page coordinates.
type Point struct {
	X, Y float64
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is the bounding box of the viewport container.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// PointerKind distinguishes mouse from touch input.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

// PointerEvent is a mouse or touch event as delivered by the host.
type PointerEvent struct {
	Kind PointerKind
	// Page is the mouse position. Unused for touch events.
	Page Point
	// Touches are the active touch points. Only the first one counts.
	Touches []Point
}

// MouseAt builds a mouse event at (x, y).
func MouseAt(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMouse, Page: Point{X: x, Y: y}}
}

// TouchAt builds a touch event from the active touch points.
func TouchAt(touches ...Point) PointerEvent {
	return PointerEvent{Kind: PointerTouch, Touches: touches}
}

// Position returns the single pointer coordinate for the event. A touch event
// with no active touches (touch end) yields the origin.
func (e PointerEvent) Position() Point {
	switch e.Kind {
	case PointerTouch:
		if len(e.Touches) > 0 {
			return e.Touches[0]
		}
		return Point{}
	default:
		return e.Page
	}
}

func (PointerEvent) event() {}

// Transform is the declarative transform the rendering surface applies to the
// image: translate, then scale, then rotate, about the image centre.
type Transform struct {
	X, Y   float64
	Zoom   float64
	Rotate int
}

// String formats the transform as a CSS transform value.
func (t Transform) String() string {
	return "translate3d(" + formatNumber(t.X) + "px," + formatNumber(t.Y) + "px,0px) scale(" +
		formatNumber(t.Zoom) + ") rotate(" + strconv.Itoa(t.Rotate) + "deg)"
}

// DisplayRotation returns the rotation folded into [0, 360). The stored
// rotation keeps accumulating; this is for drawing only.
func (t Transform) DisplayRotation() int {
	r := t.Rotate % 360
	if r < 0 {
		r += 360
	}
	return r
}

func formatNumber(f float64) string {
	if f == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
