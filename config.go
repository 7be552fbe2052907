package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"lbview/internal/lightbox"
)

// Window size constants
const (
	defaultWidth  = 1024
	defaultHeight = 768
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

func (r *ConfigLoadResult) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("Warning: %s", msg)
	r.Warnings = append(r.Warnings, msg)
	if r.Status == "OK" {
		r.Status = "Warning"
	}
}

type Config struct {
	WindowWidth  int     `json:"window_width"`
	WindowHeight int     `json:"window_height"`
	Fullscreen   bool    `json:"fullscreen"`
	FontSize     float64 `json:"font_size"`

	// Viewer behaviour
	ZoomStep            float64 `json:"zoom_step"`
	DoubleClickZoom     float64 `json:"double_click_zoom"`
	AllowZoom           bool    `json:"allow_zoom"`
	AllowRotate         bool    `json:"allow_rotate"`
	AllowReset          bool    `json:"allow_reset"`
	ClickOutsideToExit  bool    `json:"click_outside_to_exit"`
	KeyboardInteraction bool    `json:"keyboard_interaction"`
	ButtonAlign         string  `json:"button_align"`
	ShowTitle           bool    `json:"show_title"`

	// Image loading
	SortMethod     int  `json:"sort_method"`
	CacheSize      int  `json:"cache_size"`
	PreloadEnabled bool `json:"preload_enabled"`
	PreloadCount   int  `json:"preload_count"`

	Keybindings   map[string][]string `json:"keybindings"`
	Mousebindings map[string][]string `json:"mousebindings"`
	Mouse         MouseSettings       `json:"mouse"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		WindowWidth:         defaultWidth,
		WindowHeight:        defaultHeight,
		FontSize:            16.0,
		ZoomStep:            lightbox.DefaultZoomStep,
		DoubleClickZoom:     lightbox.DefaultDoubleClickZoom,
		AllowZoom:           true,
		AllowRotate:         true,
		AllowReset:          true,
		ClickOutsideToExit:  true,
		KeyboardInteraction: true,
		ButtonAlign:         string(lightbox.DefaultButtonAlign),
		ShowTitle:           true,
		SortMethod:          SortNatural,
		CacheSize:           16,
		PreloadEnabled:      true,
		PreloadCount:        2,
		Keybindings:         GetDefaultKeybindings(),
		Mousebindings:       GetDefaultMousebindings(),
		Mouse:               GetDefaultMouseSettings(),
	}
}

// ViewerOptions maps the configuration onto viewer options. Image sources
// and callbacks are filled in by the caller.
func (c Config) ViewerOptions() lightbox.Options {
	opts := lightbox.DefaultOptions()
	opts.ZoomStep = c.ZoomStep
	opts.DoubleClickZoom = c.DoubleClickZoom
	opts.AllowZoom = c.AllowZoom
	opts.AllowRotate = c.AllowRotate
	opts.AllowReset = c.AllowReset
	opts.ClickOutsideToExit = c.ClickOutsideToExit
	opts.KeyboardInteraction = c.KeyboardInteraction
	opts.ButtonAlign = lightbox.ButtonAlign(c.ButtonAlign)
	opts.ShowTitle = c.ShowTitle
	return opts
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "lbview.json"
	}
	return filepath.Join(homeDir, ".lbview.json")
}

func loadConfig() ConfigLoadResult {
	return loadConfigFromPath(getConfigPath())
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()
	result := ConfigLoadResult{
		Config:   config,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	validateConfig(&config, &result)
	result.Config = config
	return result
}

func validateConfig(config *Config, result *ConfigLoadResult) {
	defaults := defaultConfig()

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// minimum 10px for readability
	if config.FontSize < 10.0 {
		config.FontSize = defaults.FontSize
	}

	if config.ZoomStep <= 0 {
		result.warn("zoom_step must be positive, using %.1f", defaults.ZoomStep)
		config.ZoomStep = defaults.ZoomStep
	}
	if config.DoubleClickZoom < 0 {
		result.warn("double_click_zoom must not be negative, using %.0f", defaults.DoubleClickZoom)
		config.DoubleClickZoom = defaults.DoubleClickZoom
	}
	if !lightbox.ButtonAlign(config.ButtonAlign).Valid() {
		result.warn("unknown button_align %q, using %s", config.ButtonAlign, defaults.ButtonAlign)
		config.ButtonAlign = defaults.ButtonAlign
	}

	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = defaults.CacheSize
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate preload count (minimum 1, maximum 16)
	if config.PreloadCount < 1 {
		config.PreloadCount = defaults.PreloadCount
	} else if config.PreloadCount > 16 {
		config.PreloadCount = 16
	}

	if config.Mouse.DoubleClickTime < 50 || config.Mouse.DoubleClickTime > 2000 {
		config.Mouse.DoubleClickTime = defaults.Mouse.DoubleClickTime
	}
	if config.Mouse.DragThreshold < 0 {
		config.Mouse.DragThreshold = defaults.Mouse.DragThreshold
	}
	if config.Mouse.WheelSensitivity <= 0 {
		config.Mouse.WheelSensitivity = defaults.Mouse.WheelSensitivity
	}

	// Fill in missing bindings with defaults
	config.Keybindings = mergeBindings(config.Keybindings, defaults.Keybindings)
	if err := validateKeybindings(config.Keybindings); err != nil {
		result.warn("invalid keybindings, using defaults: %v", err)
		config.Keybindings = defaults.Keybindings
	}
	config.Mousebindings = mergeBindings(config.Mousebindings, defaults.Mousebindings)
	if err := validateMousebindings(config.Mousebindings); err != nil {
		result.warn("invalid mousebindings, using defaults: %v", err)
		config.Mousebindings = defaults.Mousebindings
	}
}

func mergeBindings(bindings, defaults map[string][]string) map[string][]string {
	if bindings == nil {
		return defaults
	}
	for action, keys := range defaults {
		if _, exists := bindings[action]; !exists {
			bindings[action] = keys
		}
	}
	return bindings
}

// validateKeybindings checks key formats, conflicts and keys the viewer
// handles itself.
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	keyMapping := getKeyMapping()

	for action, keys := range keybindings {
		if !isKnownAction(action) {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, keyStr := range keys {
			combination, err := parseKeyString(keyStr, keyMapping)
			if err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}
			if combination.reserved() {
				return fmt.Errorf("key '%s' for action '%s' is reserved by the viewer", keyStr, action)
			}
			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

func saveConfig(config Config) {
	saveConfigToPath(config, getConfigPath())
}

func saveConfigToPath(config Config, configPath string) {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}

// describeConfig summarises a load result for the debug log.
func describeConfig(r ConfigLoadResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "config %s: zoom_step=%.2f double_click_zoom=%.1f align=%s",
		r.Status, r.Config.ZoomStep, r.Config.DoubleClickZoom, r.Config.ButtonAlign)
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "; %s", w)
	}
	return b.String()
}
