package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lbview/internal/lightbox"
)

// KeybindingManager handles dynamic keybinding processing
type KeybindingManager struct {
	keybindings map[string][]string
	parsed      map[string][]*KeyCombination
}

// NewKeybindingManager creates a new KeybindingManager. Invalid key strings
// are dropped; the config loader has already reported them.
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	km := &KeybindingManager{}
	km.UpdateKeybindings(keybindings)
	return km
}

// getKeyMapping returns a mapping from string keys to Ebiten keys
func getKeyMapping() map[string]ebiten.Key {
	return map[string]ebiten.Key{
		// Letters
		"KeyA": ebiten.KeyA, "KeyB": ebiten.KeyB, "KeyC": ebiten.KeyC, "KeyD": ebiten.KeyD,
		"KeyE": ebiten.KeyE, "KeyF": ebiten.KeyF, "KeyG": ebiten.KeyG, "KeyH": ebiten.KeyH,
		"KeyI": ebiten.KeyI, "KeyJ": ebiten.KeyJ, "KeyK": ebiten.KeyK, "KeyL": ebiten.KeyL,
		"KeyM": ebiten.KeyM, "KeyN": ebiten.KeyN, "KeyO": ebiten.KeyO, "KeyP": ebiten.KeyP,
		"KeyQ": ebiten.KeyQ, "KeyR": ebiten.KeyR, "KeyS": ebiten.KeyS, "KeyT": ebiten.KeyT,
		"KeyU": ebiten.KeyU, "KeyV": ebiten.KeyV, "KeyW": ebiten.KeyW, "KeyX": ebiten.KeyX,
		"KeyY": ebiten.KeyY, "KeyZ": ebiten.KeyZ,

		// Numbers
		"Key0": ebiten.Key0, "Key1": ebiten.Key1, "Key2": ebiten.Key2, "Key3": ebiten.Key3,
		"Key4": ebiten.Key4, "Key5": ebiten.Key5, "Key6": ebiten.Key6, "Key7": ebiten.Key7,
		"Key8": ebiten.Key8, "Key9": ebiten.Key9,

		// Special keys
		"Space":      ebiten.KeySpace,
		"Backspace":  ebiten.KeyBackspace,
		"Enter":      ebiten.KeyEnter,
		"Escape":     ebiten.KeyEscape,
		"Tab":        ebiten.KeyTab,
		"Home":       ebiten.KeyHome,
		"End":        ebiten.KeyEnd,
		"PageUp":     ebiten.KeyPageUp,
		"PageDown":   ebiten.KeyPageDown,
		"ArrowUp":    ebiten.KeyArrowUp,
		"ArrowDown":  ebiten.KeyArrowDown,
		"ArrowLeft":  ebiten.KeyArrowLeft,
		"ArrowRight": ebiten.KeyArrowRight,

		// Punctuation
		"Comma":     ebiten.KeyComma,
		"Period":    ebiten.KeyPeriod,
		"Slash":     ebiten.KeySlash,
		"Semicolon": ebiten.KeySemicolon,
		"Quote":     ebiten.KeyQuote,
		"Minus":     ebiten.KeyMinus,
		"Equal":     ebiten.KeyEqual,

		// Numpad
		"Numpad0":        ebiten.KeyNumpad0,
		"Numpad1":        ebiten.KeyNumpad1,
		"Numpad2":        ebiten.KeyNumpad2,
		"Numpad3":        ebiten.KeyNumpad3,
		"Numpad4":        ebiten.KeyNumpad4,
		"Numpad5":        ebiten.KeyNumpad5,
		"Numpad6":        ebiten.KeyNumpad6,
		"Numpad7":        ebiten.KeyNumpad7,
		"Numpad8":        ebiten.KeyNumpad8,
		"Numpad9":        ebiten.KeyNumpad9,
		"NumpadAdd":      ebiten.KeyNumpadAdd,
		"NumpadSubtract": ebiten.KeyNumpadSubtract,
		"NumpadEnter":    ebiten.KeyNumpadEnter,
	}
}

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key   ebiten.Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

// reserved reports whether the viewer itself reacts to the combination.
func (c *KeyCombination) reserved() bool {
	if c.Ctrl || c.Alt {
		return false
	}
	_, ok := domKey(c.Key, c.Shift)
	return ok
}

// parseKeyString parses a key string like "Shift+KeyB" into a KeyCombination
func parseKeyString(keyStr string, keyMapping map[string]ebiten.Key) (*KeyCombination, error) {
	parts := strings.Split(keyStr, "+")
	combination := &KeyCombination{}

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	key, exists := keyMapping[keyName]
	if !exists {
		return nil, fmt.Errorf("unknown key name '%s'", keyName)
	}
	combination.Key = key

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

// modifiersMatch checks that exactly the wanted modifiers are held.
func modifiersMatch(shift, ctrl, alt bool) bool {
	return shift == ebiten.IsKeyPressed(ebiten.KeyShift) &&
		ctrl == ebiten.IsKeyPressed(ebiten.KeyControl) &&
		alt == ebiten.IsKeyPressed(ebiten.KeyAlt)
}

// isKeyPressed checks if a key combination was pressed this frame
func (km *KeybindingManager) isKeyPressed(combination *KeyCombination) bool {
	return inpututil.IsKeyJustPressed(combination.Key) &&
		modifiersMatch(combination.Shift, combination.Ctrl, combination.Alt)
}

// CheckAction checks if any keybinding for the given action is pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	for _, combination := range km.parsed[action] {
		if km.isKeyPressed(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action using the InputActions interface
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions) bool {
	if !km.CheckAction(action) {
		return false
	}

	return globalActionExecutor.ExecuteAction(action, inputActions)
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}

// UpdateKeybindings updates the keybindings map
func (km *KeybindingManager) UpdateKeybindings(keybindings map[string][]string) {
	keyMapping := getKeyMapping()
	km.keybindings = keybindings
	km.parsed = make(map[string][]*KeyCombination, len(keybindings))
	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if combination, err := parseKeyString(keyStr, keyMapping); err == nil {
				km.parsed[action] = append(km.parsed[action], combination)
			}
		}
	}
}

// domKey translates a physical key into the key name the viewer expects,
// reporting false for keys it does not handle.
func domKey(k ebiten.Key, shift bool) (lightbox.Key, bool) {
	switch k {
	case ebiten.KeyEscape:
		return lightbox.KeyEscape, true
	case ebiten.KeyArrowLeft:
		return lightbox.KeyArrowLeft, true
	case ebiten.KeyArrowRight:
		return lightbox.KeyArrowRight, true
	case ebiten.KeyArrowUp:
		return lightbox.KeyArrowUp, true
	case ebiten.KeyArrowDown:
		return lightbox.KeyArrowDown, true
	case ebiten.KeyNumpadAdd:
		return lightbox.KeyPlus, true
	case ebiten.KeyNumpadSubtract:
		return lightbox.KeyMinus, true
	case ebiten.KeyEqual:
		if shift {
			return lightbox.KeyPlus, true
		}
	case ebiten.KeyMinus:
		if !shift {
			return lightbox.KeyMinus, true
		}
	}
	return "", false
}

// keyEvents converts the keys released this frame into viewer key events.
func keyEvents(released []ebiten.Key, shift bool) []lightbox.KeyEvent {
	var events []lightbox.KeyEvent
	for _, k := range released {
		if key, ok := domKey(k, shift); ok {
			events = append(events, lightbox.KeyEvent{Key: key})
		}
	}
	return events
}

type keyListener struct {
	id int
	fn func(lightbox.KeyEvent)
}

// keyBus is the window-wide key release source viewers subscribe to.
type keyBus struct {
	nextID    int
	listeners []keyListener
	released  []ebiten.Key
}

func newKeyBus() *keyBus {
	return &keyBus{}
}

// AddKeyListener implements lightbox.KeySource.
func (b *keyBus) AddKeyListener(fn func(lightbox.KeyEvent)) func() {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, keyListener{id: id, fn: fn})
	return func() {
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of registered listeners.
func (b *keyBus) Len() int {
	return len(b.listeners)
}

// Dispatch delivers e to every listener registered at the time of the call.
func (b *keyBus) Dispatch(e lightbox.KeyEvent) {
	listeners := append([]keyListener(nil), b.listeners...)
	for _, l := range listeners {
		l.fn(e)
	}
}

// Poll dispatches this frame's key releases and reports whether there were
// any.
func (b *keyBus) Poll() bool {
	b.released = inpututil.AppendJustReleasedKeys(b.released[:0])
	events := keyEvents(b.released, ebiten.IsKeyPressed(ebiten.KeyShift))
	for _, e := range events {
		b.Dispatch(e)
	}
	return len(events) > 0
}
