package main

import (
	"fmt"
	"strings"
)

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains the host actions. Escape, the arrows, "+" and
// "-" belong to the viewer and are not listed here.
var actionDefinitions = []ActionDefinition{
	{"quit", []string{"KeyQ"}, []string{}, "Close the viewer"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide image info"},
	{"fullscreen", []string{"Enter", "KeyF"}, []string{}, "Toggle fullscreen"},
	{"next", []string{"Space", "KeyN"}, []string{"Forward"}, "Next image"},
	{"previous", []string{"Backspace", "KeyP"}, []string{"Back"}, "Previous image"},
	{"rotate_left", []string{"KeyL"}, []string{}, "Rotate left 90 degrees"},
	{"rotate_right", []string{"KeyR"}, []string{}, "Rotate right 90 degrees"},

	// Zoom actions
	{"zoom_in", []string{"Equal"}, []string{"WheelUp"}, "Zoom in one step"},
	{"zoom_out", []string{}, []string{"WheelDown"}, "Zoom out one step"},
	{"zoom_reset", []string{"Key0"}, []string{"MiddleClick"}, "Reset zoom and pan"},
	{"reset", []string{"Shift+Key0"}, []string{"Shift+MiddleClick"}, "Reset zoom, pan and rotation"},
}

// ActionExecutor maps action names onto InputActions. Keyboard and mouse
// bindings share it.
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction runs action and reports whether it was known.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions) bool {
	switch action {
	case "quit":
		inputActions.Quit()
	case "info":
		inputActions.ToggleInfo()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "rotate_left":
		inputActions.RotateLeft()
	case "rotate_right":
		inputActions.RotateRight()
	case "zoom_in":
		inputActions.ZoomIn()
	case "zoom_out":
		inputActions.ZoomOut()
	case "zoom_reset":
		inputActions.ZoomReset()
	case "reset":
		inputActions.Reset()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()

func isKnownAction(name string) bool {
	for _, action := range actionDefinitions {
		if action.Name == name {
			return true
		}
	}
	return false
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = append([]string(nil), action.Keys...)
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		if len(action.MouseActions) > 0 {
			mousebindings[action.Name] = append([]string(nil), action.MouseActions...)
		}
	}
	return mousebindings
}

// bindingHelp lists every action with its current bindings, in definition
// order.
func bindingHelp(km *KeybindingManager, mm *MousebindingManager) []string {
	descriptions := GetActionDescriptions()
	keys := km.GetKeybindings()
	buttons := mm.GetMousebindings()

	lines := make([]string, 0, len(actionDefinitions))
	for _, action := range actionDefinitions {
		bound := append(append([]string(nil), keys[action.Name]...), buttons[action.Name]...)
		if len(bound) == 0 {
			bound = []string{"(unbound)"}
		}
		lines = append(lines, fmt.Sprintf("%-22s %s", strings.Join(bound, ", "), descriptions[action.Name]))
	}
	return lines
}
