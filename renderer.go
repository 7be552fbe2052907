package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"lbview/internal/lightbox"
)

// Common colors used in rendering
var (
	colorWhite    = color.RGBA{255, 255, 255, 255}
	colorGray     = color.RGBA{180, 180, 180, 255}
	colorDisabled = color.RGBA{110, 110, 110, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128} // Light semi-transparent
	bgColorDark   = color.RGBA{0, 0, 0, 200} // Dark semi-transparent
	bgColorHeader = color.RGBA{20, 20, 20, 230}
	bgColorButton = color.RGBA{60, 60, 60, 255}
)

// Header bar geometry
const (
	headerHeight  = 48.0
	headerPadding = 8.0
	buttonGap     = 6.0
	buttonPadding = 10.0
)

// buttonText is what each header control shows; the control label is the
// tooltip.
var buttonText = map[lightbox.ControlKind]string{
	lightbox.ControlReset:       "Reset",
	lightbox.ControlPrev:        "<",
	lightbox.ControlNext:        ">",
	lightbox.ControlZoomIn:      "+",
	lightbox.ControlZoomOut:     "-",
	lightbox.ControlRotateLeft:  "RotL",
	lightbox.ControlRotateRight: "RotR",
	lightbox.ControlClose:       "X",
}

func controlText(c lightbox.Control) string {
	if c.Kind == lightbox.ControlTitle {
		return c.Label
	}
	return buttonText[c.Kind]
}

// headerButton is a header control placed on screen.
type headerButton struct {
	Control lightbox.Control
	Rect    lightbox.Rect
}

// frameLayout is where everything sits in one frame, shared by drawing and
// pointer hit testing.
type frameLayout struct {
	Header  lightbox.Rect
	Buttons []headerButton
	// Canvas is the area below the header the image is centred in.
	Canvas lightbox.Rect
	// Image is the on-screen bounding box of the transformed image.
	Image     lightbox.Rect
	BaseScale float64
}

type hitKind int

const (
	hitNone hitKind = iota
	hitHeader
	hitImage
	hitCanvas
)

// hit reports what lies under p. Header buttons win over the image, which
// wins over the canvas background.
func (l frameLayout) hit(p lightbox.Point) (hitKind, lightbox.Control) {
	if l.Header.Contains(p) {
		for _, b := range l.Buttons {
			if b.Control.Kind != lightbox.ControlTitle && b.Rect.Contains(p) {
				return hitHeader, b.Control
			}
		}
		return hitNone, lightbox.Control{}
	}
	if l.Image.Contains(p) {
		return hitImage, lightbox.Control{}
	}
	if l.Canvas.Contains(p) {
		return hitCanvas, lightbox.Control{}
	}
	return hitNone, lightbox.Control{}
}

// fitScale is the base scale that fits an image into the canvas. Small
// images are only enlarged in fullscreen.
func fitScale(iw, ih, cw, ch float64, fullscreen bool) float64 {
	if iw <= 0 || ih <= 0 || cw <= 0 || ch <= 0 {
		return 1
	}
	fit := math.Min(cw/iw, ch/ih)
	if fullscreen || fit < 1 {
		return fit
	}
	return 1
}

// imageScreenRect is the axis-aligned box the image covers once the
// transform is applied about the canvas centre.
func imageScreenRect(iw, ih, base float64, canvas lightbox.Rect, t lightbox.Transform) lightbox.Rect {
	w, h := iw*base*t.Zoom, ih*base*t.Zoom
	if r := t.DisplayRotation(); r == 90 || r == 270 {
		w, h = h, w
	}
	c := canvas.Center()
	cx, cy := c.X+t.X, c.Y+t.Y
	return lightbox.Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// layoutHeader places the controls in a row inside the header according to
// the alignment. widths[i] is the text width of controls[i].
func layoutHeader(controls []lightbox.Control, widths []float64, header lightbox.Rect, align lightbox.ButtonAlign) []headerButton {
	if len(controls) == 0 {
		return nil
	}

	total := buttonGap * float64(len(controls)-1)
	for _, w := range widths {
		total += w + 2*buttonPadding
	}

	var x float64
	switch align {
	case lightbox.AlignStart:
		x = header.X + headerPadding
	case lightbox.AlignCenter:
		x = header.X + (header.Width-total)/2
	default:
		x = header.X + header.Width - headerPadding - total
	}

	buttons := make([]headerButton, len(controls))
	for i, c := range controls {
		w := widths[i] + 2*buttonPadding
		buttons[i] = headerButton{
			Control: c,
			Rect: lightbox.Rect{
				X:      x,
				Y:      header.Y + headerPadding,
				Width:  w,
				Height: header.Height - 2*headerPadding,
			},
		}
		x += w + buttonGap
	}
	return buttons
}

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
	fontSource  *text.GoTextFaceSource
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	s, err := uiFontSource()
	if err != nil {
		log.Fatal(err)
	}

	return &Renderer{
		renderState: renderState,
		fontSource:  s,
	}
}

func (r *Renderer) face() *text.GoTextFace {
	return &text.GoTextFace{
		Source: r.fontSource,
		Size:   r.renderState.GetFontSize(),
	}
}

// Layout computes the frame layout for a view model. img may be nil while
// the image is loading.
func (r *Renderer) Layout(vm lightbox.ViewModel, img *ebiten.Image, windowW, windowH int, align lightbox.ButtonAlign) frameLayout {
	w, h := float64(windowW), float64(windowH)
	l := frameLayout{
		Header: lightbox.Rect{Width: w, Height: headerHeight},
		Canvas: lightbox.Rect{Y: headerHeight, Width: w, Height: math.Max(0, h-headerHeight)},
	}

	face := r.face()
	widths := make([]float64, len(vm.Header))
	for i, c := range vm.Header {
		widths[i], _ = text.Measure(controlText(c), face, 0)
	}
	l.Buttons = layoutHeader(vm.Header, widths, l.Header, align)

	if img != nil {
		iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
		l.BaseScale = fitScale(iw, ih, l.Canvas.Width, l.Canvas.Height, r.renderState.IsFullscreen())
		l.Image = imageScreenRect(iw, ih, l.BaseScale, l.Canvas, vm.Transform)
	}
	return l
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	// Clear the screen since SetScreenClearedEveryFrame(false) is enabled
	screen.Clear()

	vm, ok := r.renderState.View()
	if !ok {
		return
	}
	layout := r.renderState.FrameLayout()

	if img := r.renderState.GetCurrentImage(); img != nil {
		r.drawTransformedImage(screen, img, vm.Transform, layout)
	}
	if vm.Loading {
		r.drawLoading(screen, layout)
	}

	r.drawHeader(screen, vm, layout)

	if r.renderState.IsShowingInfo() {
		r.drawInfoDisplay(screen, vm)
	}
}

// drawTransformedImage applies the viewer transform about the canvas centre:
// fit scale, rotation, zoom, then the pan offset.
func (r *Renderer) drawTransformedImage(screen *ebiten.Image, img *ebiten.Image, t lightbox.Transform, layout frameLayout) {
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	c := layout.Canvas.Center()

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear

	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(layout.BaseScale, layout.BaseScale)
	if rot := t.DisplayRotation(); rot != 0 {
		op.GeoM.Rotate(float64(rot) * math.Pi / 180)
	}
	op.GeoM.Scale(t.Zoom, t.Zoom)
	op.GeoM.Translate(c.X+t.X, c.Y+t.Y)

	screen.DrawImage(img, op)
}

func (r *Renderer) drawHeader(screen *ebiten.Image, vm lightbox.ViewModel, layout frameLayout) {
	h := layout.Header
	DrawFilledRect(screen, h.X, h.Y, h.Width, h.Height, bgColorHeader)

	face := r.face()
	for _, b := range layout.Buttons {
		label := controlText(b.Control)
		_, textH := text.Measure(label, face, 0)
		ty := b.Rect.Y + (b.Rect.Height-textH)/2

		if b.Control.Kind == lightbox.ControlTitle {
			DrawText(screen, label, face, b.Rect.X+buttonPadding, ty, colorWhite)
			continue
		}

		fg := colorWhite
		if b.Control.Disabled {
			fg = colorDisabled
		}
		DrawFilledRect(screen, b.Rect.X, b.Rect.Y, b.Rect.Width, b.Rect.Height, bgColorButton)
		DrawText(screen, label, face, b.Rect.X+buttonPadding, ty, fg)
	}

	if vm.Multi {
		counter := fmt.Sprintf("%d / %d", vm.Current+1, vm.Count)
		_, textH := text.Measure(counter, face, 0)
		x := h.X + headerPadding
		if len(layout.Buttons) > 0 && layout.Buttons[0].Rect.X < h.X+h.Width/2 {
			// controls start on the left; put the counter on the right
			w, _ := text.Measure(counter, face, 0)
			x = h.X + h.Width - headerPadding - w
		}
		DrawText(screen, counter, face, x, h.Y+(h.Height-textH)/2, colorGray)
	}
}

func (r *Renderer) drawLoading(screen *ebiten.Image, layout frameLayout) {
	face := r.face()
	msg := "Loading..."
	w, h := text.Measure(msg, face, 0)
	c := layout.Canvas.Center()

	padding := 20.0
	DrawFilledRect(screen, c.X-w/2-padding, c.Y-h/2-padding, w+2*padding, h+2*padding, bgColorDark)
	DrawText(screen, msg, face, c.X-w/2, c.Y-h/2, colorWhite)
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image, vm lightbox.ViewModel) {
	face := r.face()

	var stats *PreloadStats
	if debugMode {
		st := r.renderState.GetPreloadStats()
		stats = &st
	}
	lines := infoLines(vm, r.renderState.GetImageInfo(), r.renderState.GetConfigStatus(), stats)

	lineHeight := r.renderState.GetFontSize() * 1.4
	maxW := 0.0
	for _, line := range lines {
		w, _ := text.Measure(line, face, 0)
		maxW = math.Max(maxW, w)
	}

	// Position at bottom left corner
	padding := 10.0
	boxH := lineHeight*float64(len(lines)) + padding*2
	boxY := float64(screen.Bounds().Dy()) - boxH - padding
	DrawFilledRect(screen, padding, boxY, maxW+padding*2, boxH, bgColorLight)

	for i, line := range lines {
		DrawText(screen, line, face, padding*2, boxY+padding+float64(i)*lineHeight, colorWhite)
	}
}

// infoLines is the text of the info overlay. stats is nil unless debugging.
func infoLines(vm lightbox.ViewModel, info *ImageInfo, config ConfigLoadResult, stats *PreloadStats) []string {
	lines := []string{vm.URL, "transform: " + vm.TransformCSS}
	if info != nil {
		lines = append(lines, info.Lines()...)
	}
	lines = append(lines, "config: "+config.Status)
	for _, w := range config.Warnings {
		lines = append(lines, "  "+truncateText(w, 80))
	}
	if stats != nil {
		lines = append(lines, fmt.Sprintf("preload: %d loaded, %d failed", stats.LoadedCount, stats.FailedCount))
	}
	return lines
}
