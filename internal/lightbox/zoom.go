package lightbox

import "math"

// ZoomOp is a stepped zoom operation.
type ZoomOp int

const (
	ZoomIn ZoomOp = iota
	ZoomOut
	ZoomResetStep
)

// StepZoom zooms in or out by the configured step, or resets the zoom.
// Zooming out never goes below 1; landing exactly on 1 also clears the pan.
// Callers check AllowZoom before calling.
func (v *Viewer) StepZoom(op ZoomOp) {
	step := v.opts.ZoomStep
	switch op {
	case ZoomIn:
		v.state.Zoom += step
	case ZoomOut:
		z := v.state.Zoom - step
		switch {
		case z < 1:
		case z == 1:
			v.ZoomReset()
		default:
			v.state.Zoom = z
		}
	case ZoomResetStep:
		v.ZoomReset()
	}
}

// ZoomReset clears the pan and zoom. Rotation is kept.
func (v *Viewer) ZoomReset() {
	v.state.X, v.state.Y = 0, 0
	v.state.Zoom = 1
}

// FullReset clears the pan, zoom and rotation. This is the reset bound to the
// reset control and to Escape.
func (v *Viewer) FullReset() {
	v.state.X, v.state.Y = 0, 0
	v.state.Zoom = 1
	v.state.Rotate = 0
}

// DoubleActivationZoom returns the magnification a double click zooms to.
// The formula is kept as is: for the defaults it yields 4.2, not 4.
func (v *Viewer) DoubleActivationZoom() float64 {
	step := v.opts.ZoomStep
	factor := v.opts.DoubleClickZoom
	if step < 1 {
		return math.Ceil(factor/step) * step
	}
	return step * step
}

// AnchoredZoom handles a double click or double tap at p inside the container
// bounds. When zoomed in it zooms back out to 1. Otherwise it zooms to
// DoubleActivationZoom and pulls the point under the pointer towards the
// container centre, scaled by the new zoom.
func (v *Viewer) AnchoredZoom(p Point, bounds Rect) {
	if !v.opts.AllowZoom || v.opts.DoubleClickZoom == 0 {
		return
	}
	if v.state.Zoom > 1 {
		v.ZoomReset()
		return
	}

	z := v.DoubleActivationZoom()
	c := bounds.Center()
	v.state.X = (p.X - c.X) * -1 * z
	v.state.Y = (p.Y - c.Y) * -1 * z
	v.state.Zoom = z
}

// DoubleActivate runs AnchoredZoom for a pointer event, asking the host for
// the container bounds. Without a BoundsProvider the container is taken to be
// an empty box at the origin.
func (v *Viewer) DoubleActivate(e PointerEvent) {
	var bounds Rect
	if v.opts.Bounds != nil {
		bounds = v.opts.Bounds.ContainerBounds()
	}
	v.AnchoredZoom(e.Position(), bounds)
}
