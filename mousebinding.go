package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lbview/internal/lightbox"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	DoubleClickTime  int     `json:"double_click_time"` // milliseconds
	DragThreshold    int     `json:"drag_threshold"`    // pixels
	EnableMouse      bool    `json:"enable_mouse"`
	WheelInverted    bool    `json:"wheel_inverted"`
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		WheelSensitivity: 1.0,
		DoubleClickTime:  300, // milliseconds
		DragThreshold:    5,   // pixels
		EnableMouse:      true,
		WheelInverted:    false,
	}
}

func (s MouseSettings) doubleClickWindow() time.Duration {
	return time.Duration(s.DoubleClickTime) * time.Millisecond
}

// DoubleClickTracker recognises a second press close in time and space to
// the previous one.
type DoubleClickTracker struct {
	lastClickTime time.Time
	lastClickPos  lightbox.Point
	clickCount    int
}

// register records a press at pos and reports whether it completes a double
// click. A completed double click starts a fresh sequence.
func (t *DoubleClickTracker) register(pos lightbox.Point, now time.Time, window time.Duration, slop float64) bool {
	d := pos.Sub(t.lastClickPos)
	near := math.Hypot(d.X, d.Y) <= slop
	if t.clickCount == 1 && near && now.Sub(t.lastClickTime) <= window {
		t.clickCount = 0
		t.lastClickTime = now
		return true
	}

	// First click, or too slow or too far away
	t.clickCount = 1
	t.lastClickTime = now
	t.lastClickPos = pos
	return false
}

// MouseCombination represents a mouse action with optional modifiers
type MouseCombination struct {
	Button      ebiten.MouseButton
	IsWheel     bool
	WheelDeltaX float64
	WheelDeltaY float64
	Shift       bool
	Ctrl        bool
	Alt         bool
}

// MousebindingManager maps wheel and secondary buttons to actions. The left
// button belongs to the viewer's pointer gestures.
type MousebindingManager struct {
	mousebindings map[string][]string
	parsed        map[string][]*MouseCombination
	settings      MouseSettings
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{settings: settings}
	mm.UpdateMousebindings(mousebindings)
	return mm
}

// getMouseMapping returns a mapping from string mouse actions to Ebiten mouse buttons
func getMouseMapping() map[string]ebiten.MouseButton {
	return map[string]ebiten.MouseButton{
		"RightClick":  ebiten.MouseButtonRight,
		"MiddleClick": ebiten.MouseButtonMiddle,
		"Back":        ebiten.MouseButton3, // Back button (side button)
		"Forward":     ebiten.MouseButton4, // Forward button (side button)
	}
}

// parseMouseString parses a mouse string like "Shift+MiddleClick" or "WheelUp" into a MouseCombination
func parseMouseString(mouseStr string) (*MouseCombination, error) {
	parts := strings.Split(mouseStr, "+")
	combination := &MouseCombination{}

	// Last part should be the actual mouse action
	actionName := parts[len(parts)-1]

	switch actionName {
	case "WheelUp":
		combination.IsWheel, combination.WheelDeltaY = true, 1.0
	case "WheelDown":
		combination.IsWheel, combination.WheelDeltaY = true, -1.0
	case "WheelLeft":
		combination.IsWheel, combination.WheelDeltaX = true, -1.0
	case "WheelRight":
		combination.IsWheel, combination.WheelDeltaX = true, 1.0
	case "LeftClick":
		return nil, fmt.Errorf("'%s' is reserved by the viewer", actionName)
	default:
		button, exists := getMouseMapping()[actionName]
		if !exists {
			return nil, fmt.Errorf("unknown mouse action '%s'", actionName)
		}
		combination.Button = button
	}

	for _, modifier := range parts[:len(parts)-1] {
		switch strings.ToLower(modifier) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		default:
			return nil, fmt.Errorf("unknown modifier '%s'", modifier)
		}
	}

	return combination, nil
}

// validateMousebindings checks mouse strings and conflicts.
func validateMousebindings(mousebindings map[string][]string) error {
	seen := make(map[string]string)
	for action, mouseStrings := range mousebindings {
		if !isKnownAction(action) {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, mouseStr := range mouseStrings {
			if _, err := parseMouseString(mouseStr); err != nil {
				return fmt.Errorf("invalid mouse binding '%s' for action '%s': %w", mouseStr, action, err)
			}
			if existing, exists := seen[mouseStr]; exists {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", mouseStr, existing, action)
			}
			seen[mouseStr] = action
		}
	}
	return nil
}

// wheelMatches reports whether the wheel delta moves in the bound direction.
func (c *MouseCombination) wheelMatches(wheelX, wheelY float64) bool {
	if c.WheelDeltaX != 0 {
		return (c.WheelDeltaX > 0 && wheelX > 0) || (c.WheelDeltaX < 0 && wheelX < 0)
	}
	if c.WheelDeltaY != 0 {
		return (c.WheelDeltaY > 0 && wheelY > 0) || (c.WheelDeltaY < 0 && wheelY < 0)
	}
	return false
}

// isMouseActionTriggered checks if a mouse combination is currently being triggered
func (mm *MousebindingManager) isMouseActionTriggered(combination *MouseCombination) bool {
	if !mm.settings.EnableMouse {
		return false
	}
	if !modifiersMatch(combination.Shift, combination.Ctrl, combination.Alt) {
		return false
	}

	if combination.IsWheel {
		wheelX, wheelY := ebiten.Wheel()
		if mm.settings.WheelInverted {
			wheelY = -wheelY
		}
		wheelX *= mm.settings.WheelSensitivity
		wheelY *= mm.settings.WheelSensitivity
		return combination.wheelMatches(wheelX, wheelY)
	}

	return inpututil.IsMouseButtonJustPressed(combination.Button)
}

// CheckAction checks if any mouse binding for the given action is triggered
func (mm *MousebindingManager) CheckAction(action string) bool {
	for _, combination := range mm.parsed[action] {
		if mm.isMouseActionTriggered(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action using the InputActions interface
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions) bool {
	if !mm.CheckAction(action) {
		return false
	}

	return globalActionExecutor.ExecuteAction(action, inputActions)
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// UpdateMousebindings updates the mouse bindings map
func (mm *MousebindingManager) UpdateMousebindings(mousebindings map[string][]string) {
	mm.mousebindings = mousebindings
	mm.parsed = make(map[string][]*MouseCombination, len(mousebindings))
	for action, mouseStrings := range mousebindings {
		for _, mouseStr := range mouseStrings {
			if combination, err := parseMouseString(mouseStr); err == nil {
				mm.parsed[action] = append(mm.parsed[action], combination)
			}
		}
	}
}
