package lightbox

// Default values for Options.
const (
	DefaultZoomStep        = 0.3
	DefaultDoubleClickZoom = 4
	DefaultButtonAlign     = AlignEnd
)

// ButtonAlign positions the header controls. The values are CSS
// justify-content keywords.
type ButtonAlign string

const (
	AlignStart  ButtonAlign = "flex-start"
	AlignCenter ButtonAlign = "center"
	AlignEnd    ButtonAlign = "flex-end"
)

// Valid reports whether a is a known alignment.
func (a ButtonAlign) Valid() bool {
	switch a {
	case AlignStart, AlignCenter, AlignEnd:
		return true
	}
	return false
}

// Event is what the viewer passes to OnClose: a PointerEvent or a KeyEvent.
type Event interface {
	event()
}

// BoundsProvider reports the current bounding box of the viewport container.
type BoundsProvider interface {
	ContainerBounds() Rect
}

// BoundsFunc adapts a function to BoundsProvider.
type BoundsFunc func() Rect

func (f BoundsFunc) ContainerBounds() Rect { return f() }

// Options configure a Viewer. They are read once by New.
type Options struct {
	// StartIndex is the initially active image of Images.
	StartIndex int
	// ZoomStep is added or removed by each stepped zoom. Values <= 0 mean
	// DefaultZoomStep.
	ZoomStep float64
	// AllowZoom enables every zoom operation.
	AllowZoom bool
	// DoubleClickZoom is the target magnification for double click or
	// double tap. Zero disables it.
	DoubleClickZoom float64

	// Images turns on multi-image mode when non-empty.
	Images Images
	// Image and Title are used when Images is empty.
	Image string
	Title string

	// OnNavigateImage fires after every navigation with the new index.
	OnNavigateImage func(index int)
	// OnClose honours exit requests. Without it exit does nothing.
	OnClose func(e Event)

	AllowReset          bool
	ClickOutsideToExit  bool
	KeyboardInteraction bool
	AllowRotate         bool
	ButtonAlign         ButtonAlign
	ShowTitle           bool

	// Bounds is queried by DoubleActivate.
	Bounds BoundsProvider
}

// DefaultOptions returns options with every feature enabled.
func DefaultOptions() Options {
	return Options{
		ZoomStep:            DefaultZoomStep,
		AllowZoom:           true,
		DoubleClickZoom:     DefaultDoubleClickZoom,
		AllowReset:          true,
		ClickOutsideToExit:  true,
		KeyboardInteraction: true,
		AllowRotate:         true,
		ButtonAlign:         DefaultButtonAlign,
		ShowTitle:           true,
	}
}
