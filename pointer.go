package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lbview/internal/lightbox"
)

// pointerFrame is one frame of mouse or touch input.
type pointerFrame struct {
	Event    lightbox.PointerEvent
	Pressed  bool // button went down or first touch began
	Released bool // button went up or last touch ended
	Now      time.Time
}

// pointerPress remembers what a press landed on until it is released.
type pointerPress struct {
	active  bool
	target  hitKind
	control lightbox.Control
}

// PointerHandler turns mouse and touch input into viewer gestures: drag to
// pan, double click or tap to zoom, header clicks, and clicks on the
// background.
type PointerHandler struct {
	viewer   *lightbox.Viewer
	layout   func() frameLayout
	settings MouseSettings

	mouse      pointerPress
	touch      pointerPress
	lastMouse  lightbox.Point
	mouseClick DoubleClickTracker
	touchTap   DoubleClickTracker

	touchIDs []ebiten.TouchID
}

// NewPointerHandler creates a PointerHandler. layout returns the current
// frame's layout for hit testing.
func NewPointerHandler(viewer *lightbox.Viewer, layout func() frameLayout, settings MouseSettings) *PointerHandler {
	return &PointerHandler{
		viewer:   viewer,
		layout:   layout,
		settings: settings,
	}
}

// HandleInput polls mouse and touch state and reports whether anything
// reached the viewer.
func (h *PointerHandler) HandleInput() bool {
	now := time.Now()
	handled := false
	if h.settings.EnableMouse {
		handled = h.handleFrame(&h.mouse, &h.mouseClick, h.pollMouse(now)) || handled
	}
	if f, ok := h.pollTouch(now); ok {
		handled = h.handleFrame(&h.touch, &h.touchTap, f) || handled
	}
	return handled
}

func (h *PointerHandler) pollMouse(now time.Time) pointerFrame {
	x, y := ebiten.CursorPosition()
	return pointerFrame{
		Event:    lightbox.MouseAt(float64(x), float64(y)),
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Now:      now,
	}
}

// pollTouch builds a touch frame; it reports false when no touch is active
// or ending.
func (h *PointerHandler) pollTouch(now time.Time) (pointerFrame, bool) {
	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	touches := make([]lightbox.Point, 0, len(h.touchIDs))
	for _, id := range h.touchIDs {
		x, y := ebiten.TouchPosition(id)
		touches = append(touches, lightbox.Point{X: float64(x), Y: float64(y)})
	}

	if len(touches) == 0 && !h.touch.active {
		return pointerFrame{}, false
	}
	return pointerFrame{
		Event:    lightbox.TouchAt(touches...),
		Pressed:  len(touches) > 0 && !h.touch.active,
		Released: len(touches) == 0,
		Now:      now,
	}, true
}

// handleFrame routes one frame of a single pointer. Presses are hit tested
// against the layout: the image starts a drag and counts towards a double
// activation, the header and the background act on release.
func (h *PointerHandler) handleFrame(press *pointerPress, tracker *DoubleClickTracker, f pointerFrame) bool {
	handled := false
	pos := f.Event.Position()
	layout := h.layout()

	if f.Pressed {
		target, control := layout.hit(pos)
		*press = pointerPress{active: true, target: target, control: control}
		if target == hitImage {
			if h.viewer.StartDrag(f.Event) {
				handled = true
			}
			slop := float64(h.settings.DragThreshold)
			if tracker.register(pos, f.Now, h.settings.doubleClickWindow(), slop) {
				// a double activation never continues as a drag
				h.viewer.DoubleActivate(f.Event)
				h.viewer.EndDrag()
				handled = true
			}
		}
	}

	if h.viewer.State().Moving && !f.Released {
		// leaving the image ends the drag
		if f.Event.Kind == lightbox.PointerMouse && !layout.Image.Contains(pos) {
			h.viewer.EndDrag()
			handled = true
		} else if f.Event.Kind == lightbox.PointerTouch || pos != h.lastMouse {
			handled = h.viewer.MoveDrag(f.Event) || handled
		}
	}
	if f.Event.Kind == lightbox.PointerMouse {
		h.lastMouse = pos
	}

	if f.Released {
		if h.viewer.State().Moving {
			h.viewer.EndDrag()
			handled = true
		}
		handled = h.release(press, f, layout) || handled
	}

	return handled
}

// release completes a click on the header or the background. Touch ends carry
// no position, so they act on what the touch began on.
func (h *PointerHandler) release(press *pointerPress, f pointerFrame, layout frameLayout) bool {
	if !press.active {
		return false
	}
	p := *press
	*press = pointerPress{}

	if f.Event.Kind == lightbox.PointerMouse {
		target, control := layout.hit(f.Event.Position())
		if target != p.target || control.Kind != p.control.Kind {
			return false
		}
	}

	switch p.target {
	case hitHeader:
		h.viewer.Activate(p.control, f.Event)
		return true
	case hitCanvas:
		h.viewer.CanvasClick(f.Event)
		return true
	}
	return false
}
