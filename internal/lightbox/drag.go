package lightbox

// StartDrag begins a pan on pointer down or touch start. Panning is only
// possible while zoomed in; it reports whether a drag started.
//
// The drag origin is chosen so that the first move continues from the offset
// the previous drag ended at, not from the current pan.
func (v *Viewer) StartDrag(e PointerEvent) bool {
	if v.state.Zoom <= 1 {
		return false
	}
	v.state.Moving = true
	p := e.Position()
	v.initX = p.X - v.lastX
	v.initY = p.Y - v.lastY
	return true
}

// MoveDrag updates the pan on pointer or touch move. It does nothing outside
// a drag and reports whether the pan changed.
func (v *Viewer) MoveDrag(e PointerEvent) bool {
	if !v.state.Moving {
		return false
	}
	p := e.Position()
	v.lastX = p.X - v.initX
	v.lastY = p.Y - v.initY
	v.state.X = v.lastX
	v.state.Y = v.lastY
	return true
}

// EndDrag ends a drag on pointer up, pointer leave or touch end. Safe to call
// when no drag is active.
func (v *Viewer) EndDrag() {
	v.state.Moving = false
}
