package lightbox

import "sort"

// ViewModel is everything the rendering surface needs for one frame.
type ViewModel struct {
	Transform    Transform
	TransformCSS string

	URL   string
	Title string

	Loading    bool
	Moving     bool
	Resettable bool
	Multi      bool
	Current    int
	Count      int

	ZoomOutDisabled bool
	// Grab is set while zoomed in, when the image can be dragged.
	Grab bool
	// Animate is false during a drag so the image tracks the pointer
	// directly.
	Animate bool

	// Header lists the controls in display order.
	Header []Control
}

// View assembles the view model. It reports false, after logging a warning,
// when there is no image to show; the host must not render in that case.
func (v *Viewer) View() (ViewModel, bool) {
	url, title := v.CurrentImage()
	if url == "" {
		Logger().Warn("not showing lightbox because no image was supplied",
			"multi", v.state.Multi, "current", v.state.Current)
		return ViewModel{}, false
	}

	s := v.state
	t := Transform{X: s.X, Y: s.Y, Zoom: s.Zoom, Rotate: s.Rotate}
	return ViewModel{
		Transform:       t,
		TransformCSS:    t.String(),
		URL:             url,
		Title:           title,
		Loading:         s.Loading,
		Moving:          s.Moving,
		Resettable:      v.Resettable(),
		Multi:           s.Multi,
		Current:         s.Current,
		Count:           len(v.opts.Images),
		ZoomOutDisabled: s.Zoom <= 1,
		Grab:            s.Zoom > 1,
		Animate:         !s.Moving,
		Header:          v.header(title),
	}, true
}

// ControlKind identifies a header control.
type ControlKind int

const (
	ControlTitle ControlKind = iota
	ControlReset
	ControlPrev
	ControlNext
	ControlZoomIn
	ControlZoomOut
	ControlRotateLeft
	ControlRotateRight
	ControlClose
)

var controlLabels = map[ControlKind]string{
	ControlReset:       "Reset",
	ControlPrev:        "Previous",
	ControlNext:        "Next",
	ControlZoomIn:      "Zoom In",
	ControlZoomOut:     "Zoom Out",
	ControlRotateLeft:  "Rotate left",
	ControlRotateRight: "Rotate right",
	ControlClose:       "Close",
}

// Control is one entry of the header bar.
type Control struct {
	Kind ControlKind
	// Label is the tooltip, or the title text for ControlTitle.
	Label    string
	Disabled bool
	order    int
}

func (v *Viewer) header(title string) []Control {
	align := v.opts.ButtonAlign
	start := align == AlignStart
	resettable := v.opts.AllowReset && v.Resettable()

	var cs []Control
	add := func(kind ControlKind, disabled bool, order int) {
		label := controlLabels[kind]
		if kind == ControlTitle {
			label = title
		}
		cs = append(cs, Control{Kind: kind, Label: label, Disabled: disabled, order: order})
	}
	orderIf := func(n int) int {
		if start {
			return n
		}
		return 0
	}

	if v.opts.ShowTitle && title != "" && align != AlignCenter {
		add(ControlTitle, false, orderIf(2))
	}
	if align == AlignCenter || resettable {
		add(ControlReset, !resettable, orderIf(1))
	}
	if v.state.Multi {
		add(ControlPrev, false, 0)
		add(ControlNext, false, 0)
	}
	if v.opts.AllowZoom {
		add(ControlZoomIn, false, 0)
		add(ControlZoomOut, v.state.Zoom <= 1, 0)
	}
	if v.opts.AllowRotate {
		add(ControlRotateLeft, false, 0)
		add(ControlRotateRight, false, 0)
	}
	add(ControlClose, false, orderIf(-1))

	sort.SliceStable(cs, func(i, j int) bool { return cs[i].order < cs[j].order })
	return cs
}

// Activate runs the operation behind a header control. Disabled controls
// and the title do nothing.
func (v *Viewer) Activate(c Control, e PointerEvent) {
	if c.Disabled {
		return
	}
	switch c.Kind {
	case ControlReset:
		v.FullReset()
	case ControlPrev:
		v.Navigate(Prev)
	case ControlNext:
		v.Navigate(Next)
	case ControlZoomIn:
		v.StepZoom(ZoomIn)
	case ControlZoomOut:
		v.StepZoom(ZoomOut)
	case ControlRotateLeft:
		v.Rotate(CounterClockwise)
	case ControlRotateRight:
		v.Rotate(Clockwise)
	case ControlClose:
		v.Exit(e)
	}
}
