// Package lightbox implements the gesture and transform state machine of an
// image lightbox: zoom, pan, rotation, navigation between images and the
// keyboard and pointer dispatch that drives them.
//
// A Viewer is not safe for concurrent use. Every method runs to completion on
// the goroutine that delivers the event, which is the host's event loop.
package lightbox

// State is the observable viewer state.
type State struct {
	// X and Y are the pan offset in pixels.
	X, Y float64
	// Zoom is the scale factor, never below 1.
	Zoom float64
	// Rotate is in degrees, a multiple of 90, not folded into [0, 360).
	Rotate int
	// Loading is true until the current image reports it is displayable.
	Loading bool
	// Moving is true during a drag.
	Moving bool
	// Current indexes Options.Images. Ignored in single-image mode.
	Current int
	// Multi is true when a non-empty collection was supplied.
	Multi bool
}

// Viewer owns the state of one mounted lightbox.
type Viewer struct {
	opts  Options
	state State

	// Drag memory. lastX/lastY survive navigation and resets so a new drag
	// resumes from where the previous one stopped.
	initX, initY float64
	lastX, lastY float64

	// generation changes whenever the displayed image changes.
	generation uint64

	mounted        bool
	removeListener func()
}

// New creates a viewer with the initial state derived from opts.
func New(opts Options) *Viewer {
	if opts.ZoomStep <= 0 {
		opts.ZoomStep = DefaultZoomStep
	}
	if !opts.ButtonAlign.Valid() {
		opts.ButtonAlign = DefaultButtonAlign
	}

	v := &Viewer{
		opts: opts,
		state: State{
			Zoom:    1,
			Loading: true,
			Current: opts.StartIndex,
			Multi:   len(opts.Images) > 0,
		},
	}

	if n := len(opts.Images); v.state.Multi && (opts.StartIndex < 0 || opts.StartIndex >= n) {
		Logger().Warn("start index out of range, showing the first image",
			"start", opts.StartIndex, "images", n)
		v.state.Current = 0
	}
	return v
}

// State returns a copy of the current state.
func (v *Viewer) State() State {
	return v.state
}

// Options returns the options the viewer was created with, after defaults
// were applied.
func (v *Viewer) Options() Options {
	return v.opts
}

// Count returns the number of images in the collection, or 0 in single-image
// mode.
func (v *Viewer) Count() int {
	return len(v.opts.Images)
}

// CurrentImage returns the URL and title of the active image.
func (v *Viewer) CurrentImage() (url, title string) {
	if !v.state.Multi {
		return v.opts.Image, v.opts.Title
	}
	if v.state.Current < 0 || v.state.Current >= len(v.opts.Images) {
		return "", ""
	}
	return Resolve(v.opts.Images[v.state.Current])
}
