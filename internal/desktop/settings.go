package desktop

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings are the persisted window preferences.
type Settings struct {
	Fullscreen  bool    `yaml:"fullscreen"`
	WindowScale float64 `yaml:"windowScale"` // Window size relative to the logical screen
}

// Window scale bounds.
const (
	minWindowScale = 0.5
	maxWindowScale = 2.0
)

// DefaultSettings returns the settings used when nothing is saved.
func DefaultSettings() Settings {
	return Settings{WindowScale: 1.0}
}

// Storage keys inside the gdata app directory.
const (
	settingsObject   = "settings"
	settingsProperty = "window"
)

// SettingsManager loads and saves Settings through gdata as YAML. A nil
// manager runs in memory only.
type SettingsManager struct {
	manager  *gdata.Manager
	settings Settings
}

// NewSettingsManager creates a manager and loads saved settings. Load
// failures are logged and fall back to defaults.
func NewSettingsManager(m *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{manager: m, settings: DefaultSettings()}
	if err := sm.Load(); err != nil {
		log.Warn("failed to load settings, using defaults", "err", err)
	}
	return sm
}

// Load reads the settings. Missing data means defaults.
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.manager == nil || !sm.manager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	loaded.WindowScale = clampScale(loaded.WindowScale)
	sm.settings = loaded
	return nil
}

// Save writes the settings. Without a manager it does nothing.
func (sm *SettingsManager) Save() error {
	if sm.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := sm.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Settings returns the current settings.
func (sm *SettingsManager) Settings() Settings {
	return sm.settings
}

// SetFullscreen changes the fullscreen preference. Call Save to persist.
func (sm *SettingsManager) SetFullscreen(on bool) {
	sm.settings.Fullscreen = on
}

// SetWindowScale changes the window scale, clamped to a sane range.
func (sm *SettingsManager) SetWindowScale(scale float64) {
	sm.settings.WindowScale = clampScale(scale)
}

func clampScale(scale float64) float64 {
	if scale <= 0 {
		return DefaultSettings().WindowScale
	}
	return min(max(scale, minWindowScale), maxWindowScale)
}
