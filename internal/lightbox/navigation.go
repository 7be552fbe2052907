package lightbox

// Direction selects the neighbour image.
type Direction int

const (
	Next Direction = iota
	Prev
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// Navigate moves to the next or previous image, wrapping at both ends. The
// pan, zoom and rotation are cleared and the new image is marked as loading.
// Without a collection it does nothing.
func (v *Viewer) Navigate(dir Direction) {
	n := len(v.opts.Images)
	if !v.state.Multi || n == 0 {
		return
	}

	current := v.state.Current
	switch dir {
	case Next:
		current++
	case Prev:
		current--
	}
	if current >= n {
		current = 0
	} else if current < 0 {
		current = n - 1
	}

	v.state.Current = current
	v.state.X, v.state.Y = 0, 0
	v.state.Zoom = 1
	v.state.Rotate = 0
	v.state.Loading = true
	v.generation++

	if v.opts.OnNavigateImage != nil {
		v.opts.OnNavigateImage(current)
	}
}
