package lightbox

// Rotation is a quarter-turn direction.
type Rotation int

const (
	Clockwise Rotation = iota
	CounterClockwise
)

// Rotate turns the image by 90 degrees. The angle is not normalized.
func (v *Viewer) Rotate(r Rotation) {
	switch r {
	case Clockwise:
		v.state.Rotate += 90
	case CounterClockwise:
		v.state.Rotate -= 90
	}
}
