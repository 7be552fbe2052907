package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"lbview/internal/lightbox"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".lbview.json")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

func TestLoadConfigDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nonexistent.json")

	result := loadConfigFromPath(configPath)

	if result.Status != "Default" || result.HasError {
		t.Errorf("Expected Default status without error, got %s (error=%v)", result.Status, result.HasError)
	}
	if !reflect.DeepEqual(result.Config, defaultConfig()) {
		t.Errorf("Default config mismatch.\nExpected: %+v\nGot: %+v", defaultConfig(), result.Config)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name       string
		configJSON string
		check      func(t *testing.T, c Config)
		warnings   int
	}{
		{
			name:       "Valid config",
			configJSON: `{"window_width": 1000, "window_height": 800, "zoom_step": 0.5, "button_align": "center"}`,
			check: func(t *testing.T, c Config) {
				if c.WindowWidth != 1000 || c.WindowHeight != 800 {
					t.Errorf("Expected 1000x800, got %dx%d", c.WindowWidth, c.WindowHeight)
				}
				if c.ZoomStep != 0.5 || c.ButtonAlign != "center" {
					t.Errorf("Expected zoom_step 0.5 and center, got %v and %s", c.ZoomStep, c.ButtonAlign)
				}
			},
		},
		{
			name:       "Window too small",
			configJSON: `{"window_width": 200, "window_height": 100}`,
			check: func(t *testing.T, c Config) {
				if c.WindowWidth != defaultWidth || c.WindowHeight != defaultHeight {
					t.Errorf("Expected default size, got %dx%d", c.WindowWidth, c.WindowHeight)
				}
			},
		},
		{
			name:       "Non-positive zoom step",
			configJSON: `{"zoom_step": 0}`,
			check: func(t *testing.T, c Config) {
				if c.ZoomStep != lightbox.DefaultZoomStep {
					t.Errorf("Expected default zoom step, got %v", c.ZoomStep)
				}
			},
			warnings: 1,
		},
		{
			name:       "Negative double click zoom",
			configJSON: `{"double_click_zoom": -2}`,
			check: func(t *testing.T, c Config) {
				if c.DoubleClickZoom != lightbox.DefaultDoubleClickZoom {
					t.Errorf("Expected default double click zoom, got %v", c.DoubleClickZoom)
				}
			},
			warnings: 1,
		},
		{
			name:       "Disabled double click zoom",
			configJSON: `{"double_click_zoom": 0}`,
			check: func(t *testing.T, c Config) {
				if c.DoubleClickZoom != 0 {
					t.Errorf("Expected 0 to be kept, got %v", c.DoubleClickZoom)
				}
			},
		},
		{
			name:       "Unknown button alignment",
			configJSON: `{"button_align": "left"}`,
			check: func(t *testing.T, c Config) {
				if c.ButtonAlign != string(lightbox.AlignEnd) {
					t.Errorf("Expected flex-end, got %s", c.ButtonAlign)
				}
			},
			warnings: 1,
		},
		{
			name:       "Cache and preload clamped",
			configJSON: `{"cache_size": 1000, "preload_count": -1, "sort_method": 7}`,
			check: func(t *testing.T, c Config) {
				if c.CacheSize != 64 || c.PreloadCount != 2 || c.SortMethod != SortNatural {
					t.Errorf("Unexpected cache=%d preload=%d sort=%d", c.CacheSize, c.PreloadCount, c.SortMethod)
				}
			},
		},
		{
			name:       "Feature flags",
			configJSON: `{"allow_zoom": false, "allow_rotate": false, "keyboard_interaction": false}`,
			check: func(t *testing.T, c Config) {
				opts := c.ViewerOptions()
				if opts.AllowZoom || opts.AllowRotate || opts.KeyboardInteraction {
					t.Errorf("Expected flags to be off, got %+v", opts)
				}
				if !opts.AllowReset || !opts.ShowTitle {
					t.Errorf("Expected untouched flags to stay on, got %+v", opts)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeTestConfig(t, tt.configJSON))
			if result.HasError {
				t.Fatalf("Unexpected error: %v", result.Warnings)
			}
			if len(result.Warnings) != tt.warnings {
				t.Errorf("Expected %d warnings, got %v", tt.warnings, result.Warnings)
			}
			if tt.warnings > 0 && result.Status != "Warning" {
				t.Errorf("Expected Warning status, got %s", result.Status)
			}
			tt.check(t, result.Config)
		})
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	result := loadConfigFromPath(writeTestConfig(t, `{"window_width": `))

	if !result.HasError || result.Status != "Error" {
		t.Errorf("Expected Error status, got %s (error=%v)", result.Status, result.HasError)
	}
	if !reflect.DeepEqual(result.Config, defaultConfig()) {
		t.Error("Expected defaults after a parse error")
	}
}

func TestKeybindingValidation(t *testing.T) {
	tests := []struct {
		name        string
		keybindings map[string][]string
		errContains string
	}{
		{"Defaults", GetDefaultKeybindings(), ""},
		{"Modifier", map[string][]string{"info": {"Ctrl+KeyI"}}, ""},
		{"Unknown key", map[string][]string{"info": {"KeyInfo"}}, "unknown key name"},
		{"Unknown modifier", map[string][]string{"info": {"Meta+KeyI"}}, "unknown modifier"},
		{"Unknown action", map[string][]string{"book_mode": {"KeyB"}}, "unknown action"},
		{"Conflict", map[string][]string{"info": {"KeyX"}, "quit": {"KeyX"}}, "key conflict"},
		{"Escape reserved", map[string][]string{"quit": {"Escape"}}, "reserved"},
		{"Arrow reserved", map[string][]string{"next": {"ArrowRight"}}, "reserved"},
		{"Plus reserved", map[string][]string{"zoom_in": {"Shift+Equal"}}, "reserved"},
		{"Numpad minus reserved", map[string][]string{"zoom_out": {"NumpadSubtract"}}, "reserved"},
		{"Equal without shift allowed", map[string][]string{"zoom_in": {"Equal"}}, ""},
		{"Ctrl arrow allowed", map[string][]string{"next": {"Ctrl+ArrowRight"}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKeybindings(tt.keybindings)
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}

func TestInvalidKeybindingsFallBackToDefaults(t *testing.T) {
	result := loadConfigFromPath(writeTestConfig(t, `{"keybindings": {"quit": ["Escape"]}}`))

	if len(result.Warnings) != 1 || result.Status != "Warning" {
		t.Errorf("Expected one warning, got %v (%s)", result.Warnings, result.Status)
	}
	if !reflect.DeepEqual(result.Config.Keybindings, GetDefaultKeybindings()) {
		t.Errorf("Expected default keybindings, got %v", result.Config.Keybindings)
	}
}

func TestPartialKeybindingsMerged(t *testing.T) {
	result := loadConfigFromPath(writeTestConfig(t, `{"keybindings": {"info": ["KeyM"]}}`))

	if len(result.Warnings) != 0 {
		t.Fatalf("Unexpected warnings: %v", result.Warnings)
	}
	if got := result.Config.Keybindings["info"]; !reflect.DeepEqual(got, []string{"KeyM"}) {
		t.Errorf("Expected custom info binding, got %v", got)
	}
	if got := result.Config.Keybindings["quit"]; !reflect.DeepEqual(got, []string{"KeyQ"}) {
		t.Errorf("Expected default quit binding, got %v", got)
	}
}

func TestMousebindingValidation(t *testing.T) {
	tests := []struct {
		name          string
		mousebindings map[string][]string
		wantErr       bool
	}{
		{"Defaults", GetDefaultMousebindings(), false},
		{"Wheel with modifier", map[string][]string{"next": {"Shift+WheelDown"}}, false},
		{"Left click reserved", map[string][]string{"next": {"LeftClick"}}, true},
		{"Unknown button", map[string][]string{"next": {"FifthClick"}}, true},
		{"Conflict", map[string][]string{"next": {"RightClick"}, "previous": {"RightClick"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateMousebindings(tt.mousebindings)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateMousebindings() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".lbview.json")

	config := defaultConfig()
	config.WindowWidth = 1280
	config.WindowHeight = 720
	config.ButtonAlign = string(lightbox.AlignStart)
	saveConfigToPath(config, configPath)

	result := loadConfigFromPath(configPath)
	if result.Status != "OK" {
		t.Fatalf("Expected OK status, got %s: %v", result.Status, result.Warnings)
	}
	if !reflect.DeepEqual(result.Config, config) {
		t.Errorf("Saved config mismatch.\nExpected: %+v\nGot: %+v", config, result.Config)
	}

	// Too small windows are not saved
	small := filepath.Join(t.TempDir(), "small.json")
	config.WindowWidth = 10
	saveConfigToPath(config, small)
	if _, err := os.Stat(small); !os.IsNotExist(err) {
		t.Error("Expected no config to be written for an invalid window size")
	}
}
