package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"lbview/internal/lightbox"
)

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	// View is the viewer's view model; false means there is nothing to draw.
	View() (lightbox.ViewModel, bool)
	// FrameLayout is the layout computed for this frame by Update.
	FrameLayout() frameLayout

	// Rendering data
	GetCurrentImage() *ebiten.Image
	GetImageInfo() *ImageInfo

	// Display modes
	IsFullscreen() bool
	IsShowingInfo() bool

	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetPreloadStats() PreloadStats
}

// RenderStateSnapshot captures what changes the screen without input:
// window size, loading state and the transform.
type RenderStateSnapshot struct {
	WindowWidth  int
	WindowHeight int
	Transform    string
	URL          string
	Loaded       bool
	Moving       bool
}

// NewRenderStateSnapshot creates a snapshot of the visible state.
func NewRenderStateSnapshot(state RenderState, windowWidth, windowHeight int) *RenderStateSnapshot {
	s := &RenderStateSnapshot{
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
		Loaded:       state.GetCurrentImage() != nil,
	}
	if vm, ok := state.View(); ok {
		s.Transform = vm.TransformCSS
		s.URL = vm.URL
		s.Loaded = s.Loaded && !vm.Loading
		s.Moving = vm.Moving
	}
	return s
}

// Equals checks if two snapshots are equal
func (s *RenderStateSnapshot) Equals(other *RenderStateSnapshot) bool {
	if other == nil {
		return false
	}
	return *s == *other
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Quit()

	// Display toggles
	ToggleInfo()
	ToggleFullscreen()

	// Navigation
	NavigateNext()
	NavigatePrevious()

	// Transformations
	RotateLeft()
	RotateRight()
	ZoomIn()
	ZoomOut()
	ZoomReset()
	Reset()
}
