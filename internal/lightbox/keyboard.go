package lightbox

// Key is a key name as reported by the DOM key property.
type Key string

const (
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyPlus       Key = "+"
	KeyMinus      Key = "-"
	KeyEscape     Key = "Escape"
)

// ReservedKeys are the keys the viewer handles itself.
var ReservedKeys = []Key{KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown, KeyPlus, KeyMinus, KeyEscape}

// keyPanStep is how far one arrow key press pans a zoomed image.
const keyPanStep = 20

// KeyEvent is a key release.
type KeyEvent struct {
	Key Key
}

func (KeyEvent) event() {}

// HandleKey dispatches a key release. Arrow keys navigate at 1x in
// multi-image mode and pan when zoomed in; + and - step the zoom; Escape
// resets when there is something to reset and exits otherwise. Other keys are
// ignored.
func (v *Viewer) HandleKey(e KeyEvent) {
	s := &v.state
	switch e.Key {
	case KeyArrowLeft:
		if s.Multi && s.Zoom == 1 {
			v.Navigate(Prev)
		} else if s.Zoom > 1 {
			s.X -= keyPanStep
		}
	case KeyArrowRight:
		if s.Multi && s.Zoom == 1 {
			v.Navigate(Next)
		} else if s.Zoom > 1 {
			s.X += keyPanStep
		}
	case KeyArrowUp:
		if s.Zoom > 1 {
			s.Y += keyPanStep
		}
	case KeyArrowDown:
		if s.Zoom > 1 {
			s.Y -= keyPanStep
		}
	case KeyPlus:
		if v.opts.AllowZoom {
			v.StepZoom(ZoomIn)
		}
	case KeyMinus:
		if v.opts.AllowZoom {
			v.StepZoom(ZoomOut)
		}
	case KeyEscape:
		if v.opts.AllowReset && v.Resettable() {
			v.FullReset()
		} else {
			v.Exit(e)
		}
	}
}
