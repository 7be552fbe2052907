package lightbox

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newCollection(n int) Images {
	images := make(Images, n)
	for i := range images {
		images[i] = Image{URL: "img" + string(rune('0'+i)) + ".png", Title: "Image " + string(rune('0'+i))}
	}
	return images
}

func newMultiViewer(n, start int) (*Viewer, *[]int) {
	var navigated []int
	opts := DefaultOptions()
	opts.Images = newCollection(n)
	opts.StartIndex = start
	opts.OnNavigateImage = func(i int) { navigated = append(navigated, i) }
	return New(opts), &navigated
}

func TestNewDefaults(t *testing.T) {
	v, _ := newMultiViewer(3, 1)
	s := v.State()
	if s.X != 0 || s.Y != 0 || s.Zoom != 1 || s.Rotate != 0 {
		t.Errorf("unexpected initial transform: %+v", s)
	}
	if !s.Loading || s.Moving {
		t.Errorf("expected loading and not moving, got %+v", s)
	}
	if !s.Multi || s.Current != 1 {
		t.Errorf("expected multi at index 1, got %+v", s)
	}

	single := New(Options{Image: "a.png"})
	if single.State().Multi {
		t.Error("single image viewer should not be multi")
	}
	if single.Options().ZoomStep != DefaultZoomStep {
		t.Errorf("expected default zoom step, got %v", single.Options().ZoomStep)
	}
	if single.Options().ButtonAlign != AlignEnd {
		t.Errorf("expected default alignment, got %q", single.Options().ButtonAlign)
	}
}

func TestNewStartIndexOutOfRange(t *testing.T) {
	for _, start := range []int{-1, 3, 10} {
		v, _ := newMultiViewer(3, start)
		if got := v.State().Current; got != 0 {
			t.Errorf("start %d: expected current 0, got %d", start, got)
		}
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		start    int
		dir      Direction
		expected int
	}{
		{"Next", 5, 0, Next, 1},
		{"Previous", 5, 2, Prev, 1},
		{"Wrap around next", 5, 4, Next, 0},
		{"Wrap around prev", 5, 0, Prev, 4},
		{"Single entry collection", 1, 0, Next, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, navigated := newMultiViewer(tt.count, tt.start)
			v.Navigate(tt.dir)
			if got := v.State().Current; got != tt.expected {
				t.Errorf("expected current %d, got %d", tt.expected, got)
			}
			if len(*navigated) != 1 || (*navigated)[0] != tt.expected {
				t.Errorf("expected callback with %d, got %v", tt.expected, *navigated)
			}
		})
	}
}

func TestNavigateRoundTrip(t *testing.T) {
	const n = 4
	for start := 0; start < n; start++ {
		v, _ := newMultiViewer(n, start)
		for i := 0; i < n; i++ {
			v.Navigate(Next)
		}
		if got := v.State().Current; got != start {
			t.Errorf("start %d: %d nexts ended at %d", start, n, got)
		}
		v.Navigate(Next)
		v.Navigate(Prev)
		if got := v.State().Current; got != start {
			t.Errorf("start %d: next then prev ended at %d", start, got)
		}
	}
}

func TestNavigateResetsView(t *testing.T) {
	v, _ := newMultiViewer(3, 0)
	v.MarkLoaded(v.LoadTicket())
	v.StepZoom(ZoomIn)
	v.Rotate(Clockwise)
	v.StartDrag(MouseAt(10, 10))
	v.MoveDrag(MouseAt(30, 40))
	v.EndDrag()

	v.Navigate(Next)
	s := v.State()
	if s.X != 0 || s.Y != 0 || s.Zoom != 1 || s.Rotate != 0 || !s.Loading {
		t.Errorf("navigation should reset the view, got %+v", s)
	}
}

func TestNavigateWithoutCollection(t *testing.T) {
	called := false
	opts := DefaultOptions()
	opts.Image = "a.png"
	opts.OnNavigateImage = func(int) { called = true }
	v := New(opts)
	v.StepZoom(ZoomIn)

	v.Navigate(Next)
	if called {
		t.Error("navigation callback fired without a collection")
	}
	if v.State().Zoom == 1 {
		t.Error("navigation without a collection should not touch the zoom")
	}
}

func TestStepZoom(t *testing.T) {
	v := New(DefaultOptions())

	v.StepZoom(ZoomOut)
	if z := v.State().Zoom; z != 1 {
		t.Errorf("zoom out at 1x should do nothing, got %v", z)
	}

	v.StepZoom(ZoomIn)
	if z := v.State().Zoom; !approx(z, 1.3) {
		t.Errorf("expected 1.3, got %v", z)
	}

	v.StartDrag(MouseAt(0, 0))
	v.MoveDrag(MouseAt(15, -5))
	v.EndDrag()

	v.StepZoom(ZoomOut)
	s := v.State()
	if s.Zoom != 1 || s.X != 0 || s.Y != 0 {
		t.Errorf("zooming out to exactly 1 should clear the pan, got %+v", s)
	}
}

func TestStepZoomOutKeepsPanAboveOne(t *testing.T) {
	opts := DefaultOptions()
	opts.ZoomStep = 0.5
	v := New(opts)
	v.StepZoom(ZoomIn)
	v.StepZoom(ZoomIn)
	v.StartDrag(MouseAt(0, 0))
	v.MoveDrag(MouseAt(7, 9))
	v.EndDrag()

	v.StepZoom(ZoomOut)
	s := v.State()
	if s.Zoom != 1.5 || s.X != 7 || s.Y != 9 {
		t.Errorf("expected zoom 1.5 with pan kept, got %+v", s)
	}
}

func TestZoomFloor(t *testing.T) {
	steps := []float64{0.3, 0.25, 0.7, 1, 2}
	for _, step := range steps {
		opts := DefaultOptions()
		opts.ZoomStep = step
		v := New(opts)
		for i := 0; i < 7; i++ {
			v.StepZoom(ZoomIn)
		}
		v.StartDrag(MouseAt(0, 0))
		v.MoveDrag(MouseAt(3, 4))
		v.EndDrag()
		for i := 0; i < 20; i++ {
			v.StepZoom(ZoomOut)
			s := v.State()
			if s.Zoom < 1 {
				t.Fatalf("step %v: zoom dropped below 1: %v", step, s.Zoom)
			}
			if s.Zoom == 1 && (s.X != 0 || s.Y != 0) {
				t.Fatalf("step %v: pan not cleared at 1x: %+v", step, s)
			}
		}
	}
}

func TestResetScopes(t *testing.T) {
	v := New(DefaultOptions())
	v.StepZoom(ZoomIn)
	v.Rotate(Clockwise)
	v.StartDrag(MouseAt(0, 0))
	v.MoveDrag(MouseAt(5, 5))

	v.StepZoom(ZoomResetStep)
	s := v.State()
	if s.Zoom != 1 || s.X != 0 || s.Y != 0 {
		t.Errorf("zoom reset should clear pan and zoom, got %+v", s)
	}
	if s.Rotate != 90 {
		t.Errorf("zoom reset should keep rotation, got %d", s.Rotate)
	}

	v.FullReset()
	if r := v.State().Rotate; r != 0 {
		t.Errorf("full reset should clear rotation, got %d", r)
	}
}

func TestAnchoredZoom(t *testing.T) {
	v := New(DefaultOptions())

	if z := v.DoubleActivationZoom(); !approx(z, 4.2) {
		t.Fatalf("expected double activation zoom 4.2, got %v", z)
	}

	bounds := Rect{X: 50, Y: 50, Width: 100, Height: 100}
	v.AnchoredZoom(Point{X: 150, Y: 120}, bounds)
	s := v.State()
	if !approx(s.Zoom, 4.2) || !approx(s.X, -210) || !approx(s.Y, -84) {
		t.Errorf("expected zoom 4.2 at (-210, -84), got %+v", s)
	}

	v.AnchoredZoom(Point{X: 3, Y: 999}, bounds)
	s = v.State()
	if s.Zoom != 1 || s.X != 0 || s.Y != 0 {
		t.Errorf("double activation while zoomed should reset, got %+v", s)
	}
}

func TestDoubleActivationZoomFormula(t *testing.T) {
	tests := []struct {
		step, factor, expected float64
	}{
		{0.3, 4, 4.2},
		{0.5, 4, 4},
		{0.25, 3, 3},
		{2, 4, 4},
		{1, 4, 1},
	}
	for _, tt := range tests {
		opts := DefaultOptions()
		opts.ZoomStep = tt.step
		opts.DoubleClickZoom = tt.factor
		if got := New(opts).DoubleActivationZoom(); !approx(got, tt.expected) {
			t.Errorf("step %v factor %v: expected %v, got %v", tt.step, tt.factor, tt.expected, got)
		}
	}
}

func TestAnchoredZoomDisabled(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"Zoom disabled", func(o *Options) { o.AllowZoom = false }},
		{"No double click factor", func(o *Options) { o.DoubleClickZoom = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			v := New(opts)
			v.AnchoredZoom(Point{X: 10, Y: 10}, Rect{Width: 100, Height: 100})
			if z := v.State().Zoom; z != 1 {
				t.Errorf("expected no zoom, got %v", z)
			}
		})
	}
}

func TestDoubleActivateUsesBounds(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = BoundsFunc(func() Rect { return Rect{X: 0, Y: 0, Width: 200, Height: 200} })
	v := New(opts)

	v.DoubleActivate(TouchAt(Point{X: 150, Y: 120}, Point{X: 0, Y: 0}))
	s := v.State()
	if !approx(s.X, -210) || !approx(s.Y, -84) {
		t.Errorf("expected (-210, -84), got (%v, %v)", s.X, s.Y)
	}
}

func TestRotateAccumulates(t *testing.T) {
	v := New(DefaultOptions())
	for i := 0; i < 7; i++ {
		v.Rotate(Clockwise)
	}
	for i := 0; i < 2; i++ {
		v.Rotate(CounterClockwise)
	}
	if r := v.State().Rotate; r != 90*(7-2) {
		t.Errorf("expected %d, got %d", 90*5, r)
	}

	v2 := New(DefaultOptions())
	for i := 0; i < 5; i++ {
		v2.Rotate(CounterClockwise)
	}
	if r := v2.State().Rotate; r != -450 {
		t.Errorf("expected -450, got %d", r)
	}
}

func TestDragRequiresZoom(t *testing.T) {
	v := New(DefaultOptions())
	if v.StartDrag(MouseAt(1, 1)) {
		t.Error("drag started at 1x")
	}
	if v.MoveDrag(MouseAt(50, 50)) {
		t.Error("move applied while idle")
	}
	if s := v.State(); s.Moving || s.X != 0 || s.Y != 0 {
		t.Errorf("state changed: %+v", s)
	}
}

func TestDragContinuity(t *testing.T) {
	v := New(DefaultOptions())
	v.StepZoom(ZoomIn)

	v.StartDrag(MouseAt(100, 100))
	if !v.State().Moving {
		t.Fatal("expected drag to start")
	}
	v.MoveDrag(MouseAt(130, 90))
	v.EndDrag()
	if s := v.State(); s.X != 30 || s.Y != -10 || s.Moving {
		t.Fatalf("expected (30, -10) idle, got %+v", s)
	}

	// second drag starts elsewhere and continues from (30, -10)
	v.StartDrag(MouseAt(400, 400))
	v.MoveDrag(MouseAt(405, 420))
	v.EndDrag()
	if s := v.State(); s.X != 35 || s.Y != 10 {
		t.Errorf("expected (35, 10), got (%v, %v)", s.X, s.Y)
	}
}

func TestDragMemorySurvivesReset(t *testing.T) {
	v, _ := newMultiViewer(3, 0)
	v.StepZoom(ZoomIn)
	v.StartDrag(MouseAt(0, 0))
	v.MoveDrag(MouseAt(25, 25))
	v.EndDrag()

	v.FullReset()
	v.StepZoom(ZoomIn)
	v.StartDrag(MouseAt(50, 50))
	v.MoveDrag(MouseAt(50, 50))
	if s := v.State(); s.X != 25 || s.Y != 25 {
		t.Errorf("expected drag to resume at (25, 25), got (%v, %v)", s.X, s.Y)
	}
}

func TestEndDragIdempotent(t *testing.T) {
	v := New(DefaultOptions())
	v.StepZoom(ZoomIn)
	before := v.State()
	v.EndDrag()
	v.EndDrag()
	if after := v.State(); after != before {
		t.Errorf("end drag while idle changed state: %+v -> %+v", before, after)
	}
}

func TestTouchDrag(t *testing.T) {
	v := New(DefaultOptions())
	v.StepZoom(ZoomIn)
	v.StartDrag(TouchAt(Point{X: 10, Y: 10}, Point{X: 500, Y: 500}))
	v.MoveDrag(TouchAt(Point{X: 20, Y: 5}))
	v.EndDrag()
	if s := v.State(); s.X != 10 || s.Y != -5 {
		t.Errorf("expected (10, -5), got (%v, %v)", s.X, s.Y)
	}
}

func TestResettable(t *testing.T) {
	tests := []struct {
		name     string
		apply    func(v *Viewer)
		expected bool
	}{
		{"Default", func(v *Viewer) {}, false},
		{"Zoomed", func(v *Viewer) { v.StepZoom(ZoomIn) }, true},
		{"Rotated", func(v *Viewer) { v.Rotate(Clockwise) }, true},
		{"Full turn", func(v *Viewer) {
			for i := 0; i < 4; i++ {
				v.Rotate(Clockwise)
			}
		}, true},
		{"Zoomed and back", func(v *Viewer) {
			v.StepZoom(ZoomIn)
			v.StepZoom(ZoomOut)
		}, false},
		{"Panned by key", func(v *Viewer) {
			v.StepZoom(ZoomIn)
			v.HandleKey(KeyEvent{Key: KeyArrowUp})
			v.state.Zoom = 1
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(DefaultOptions())
			tt.apply(v)
			if got := v.Resettable(); got != tt.expected {
				t.Errorf("expected %v, got %v (state %+v)", tt.expected, got, v.State())
			}
		})
	}
}

func TestExit(t *testing.T) {
	var got Event
	opts := DefaultOptions()
	opts.OnClose = func(e Event) { got = e }
	v := New(opts)

	ev := KeyEvent{Key: KeyEscape}
	v.Exit(ev)
	if got != ev {
		t.Errorf("expected close callback with %v, got %v", ev, got)
	}

	// no callback: must not panic
	New(DefaultOptions()).Exit(ev)
}

func TestCanvasClick(t *testing.T) {
	tests := []struct {
		name         string
		clickOutside bool
		zoomIn       bool
		expectClose  bool
	}{
		{"Exit at 1x", true, false, true},
		{"Ignored when zoomed", true, true, false},
		{"Disabled", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closed := false
			opts := DefaultOptions()
			opts.ClickOutsideToExit = tt.clickOutside
			opts.OnClose = func(Event) { closed = true }
			v := New(opts)
			if tt.zoomIn {
				v.StepZoom(ZoomIn)
			}
			v.CanvasClick(MouseAt(1, 1))
			if closed != tt.expectClose {
				t.Errorf("expected close %v, got %v", tt.expectClose, closed)
			}
		})
	}
}
