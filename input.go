package main

// InputHandler handles all input processing for a frame: viewer keys through
// the key bus, host key and mouse bindings, and pointer gestures.
type InputHandler struct {
	inputActions        InputActions
	keyBus              *keyBus
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	pointerHandler      *PointerHandler
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, bus *keyBus, keybindingManager *KeybindingManager,
	mousebindingManager *MousebindingManager, pointerHandler *PointerHandler) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		keyBus:              bus,
		keybindingManager:   keybindingManager,
		mousebindingManager: mousebindingManager,
		pointerHandler:      pointerHandler,
	}
}

// HandleInput processes all input for the current frame
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	inputProcessed := false

	inputProcessed = h.keyBus.Poll() || inputProcessed
	inputProcessed = h.handleBindings() || inputProcessed
	inputProcessed = h.pointerHandler.HandleInput() || inputProcessed

	return inputProcessed
}

// handleBindings runs every action whose key or mouse binding fired.
func (h *InputHandler) handleBindings() bool {
	inputProcessed := false
	for _, action := range actionDefinitions {
		if h.keybindingManager.ExecuteAction(action.Name, h.inputActions) {
			inputProcessed = true
		} else if h.mousebindingManager.ExecuteAction(action.Name, h.inputActions) {
			inputProcessed = true
		}
	}
	return inputProcessed
}
