package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Process string `toml:"process"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	FPS     int    `toml:"fps"`

	ServiceURL  string `toml:"service_url"`
	HTTPTimeout string `toml:"http_timeout"`

	Adapter          string   `toml:"adapter"`
	Deadzone         *float64 `toml:"deadzone"`
	MouseSensitivity *float64 `toml:"mouse_sensitivity"`
	MouseDeltaMax    int      `toml:"mouse_delta_max"`
	TriggerThreshold *float64 `toml:"trigger_threshold"`

	TrackedKeys         string `toml:"tracked_keys"`
	TrackedMouseButtons string `toml:"tracked_mouse_buttons"`

	DisableInput      *bool    `toml:"disable_input"`
	EnableUnsafeSpeed *bool    `toml:"enable_unsafe_speed"`
	SpeedFactor       *float64 `toml:"speed_factor"`

	OutDir      string `toml:"out_dir"`
	StopFile    string `toml:"stop_file"`
	MaxFrames   int    `toml:"max_frames"`
	MaxDuration string `toml:"max_duration"`

	RetentionHighMB int `toml:"retention_high_mb"`
	RetentionLowMB  int `toml:"retention_low_mb"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.nitrogen/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".nitrogen", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("process", fc.Process, &cfg.Process)
	s.setInt("width", fc.Width, &cfg.Width)
	s.setInt("height", fc.Height, &cfg.Height)
	s.setInt("fps", fc.FPS, &cfg.FPS)

	s.setString("service-url", fc.ServiceURL, &cfg.ServiceURL)
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setString("adapter", fc.Adapter, &cfg.Adapter)
	s.setFloat("deadzone", fc.Deadzone, &cfg.Deadzone)
	s.setFloat("mouse-sensitivity", fc.MouseSensitivity, &cfg.MouseSensitivity)
	s.setInt("mouse-delta-max", fc.MouseDeltaMax, &cfg.MouseDeltaMax)
	s.setFloat("trigger-threshold", fc.TriggerThreshold, &cfg.TriggerThreshold)

	s.setString("tracked-keys", fc.TrackedKeys, &cfg.TrackedKeys)
	s.setString("tracked-mouse-buttons", fc.TrackedMouseButtons, &cfg.TrackedMouseButtons)

	s.setBool("disable-input", fc.DisableInput, &cfg.DisableInput)
	s.setBool("enable-unsafe-speed", fc.EnableUnsafeSpeed, &cfg.EnableUnsafeSpeed)
	s.setFloat("speed-factor", fc.SpeedFactor, &cfg.SpeedFactor)

	s.setString("out", fc.OutDir, &cfg.OutDir)
	s.setString("stop-file", fc.StopFile, &cfg.StopFile)
	s.setInt("max-frames", fc.MaxFrames, &cfg.MaxFrames)
	if err := s.setDuration("max-duration", fc.MaxDuration, &cfg.MaxDuration); err != nil {
		return err
	}

	s.setInt("retention-high-mb", fc.RetentionHighMB, &cfg.RetentionHighMB)
	s.setInt("retention-low-mb", fc.RetentionLowMB, &cfg.RetentionLowMB)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
