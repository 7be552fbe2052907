package lightbox

// Exit asks the host to close the viewer. Without an OnClose callback the
// request is logged and the viewer stays open.
func (v *Viewer) Exit(e Event) {
	if v.opts.OnClose != nil {
		v.opts.OnClose(e)
		return
	}
	Logger().Error("no close callback configured, exit request ignored")
}

// CanvasClick handles a click on the canvas outside the image. At 1x it exits
// when ClickOutsideToExit is set; while zoomed in it is ignored.
func (v *Viewer) CanvasClick(e PointerEvent) {
	if v.opts.ClickOutsideToExit && v.state.Zoom <= 1 {
		v.Exit(e)
	}
}

// Resettable reports whether pan, zoom or rotation differ from the defaults.
func (v *Viewer) Resettable() bool {
	s := v.state
	return s.X != 0 || s.Y != 0 || s.Zoom != 1 || s.Rotate != 0
}
