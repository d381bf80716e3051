package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (NITROGEN_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("process", os.Getenv("NITROGEN_PROCESS"), &cfg.Process)
	s.setString("service-url", os.Getenv("NITROGEN_SERVICE_URL"), &cfg.ServiceURL)
	s.setString("adapter", os.Getenv("NITROGEN_ADAPTER"), &cfg.Adapter)
	s.setString("tracked-keys", os.Getenv("NITROGEN_TRACKED_KEYS"), &cfg.TrackedKeys)
	s.setString("tracked-mouse-buttons", os.Getenv("NITROGEN_TRACKED_MOUSE_BUTTONS"), &cfg.TrackedMouseButtons)
	s.setString("out", os.Getenv("NITROGEN_OUT_DIR"), &cfg.OutDir)
	s.setString("stop-file", os.Getenv("NITROGEN_STOP_FILE"), &cfg.StopFile)

	if err := s.setIntFromString("width", os.Getenv("NITROGEN_WIDTH"), &cfg.Width); err != nil {
		return err
	}
	if err := s.setIntFromString("height", os.Getenv("NITROGEN_HEIGHT"), &cfg.Height); err != nil {
		return err
	}
	if err := s.setIntFromString("fps", os.Getenv("NITROGEN_FPS"), &cfg.FPS); err != nil {
		return err
	}
	if err := s.setIntFromString("mouse-delta-max", os.Getenv("NITROGEN_MOUSE_DELTA_MAX"), &cfg.MouseDeltaMax); err != nil {
		return err
	}
	if err := s.setIntFromString("max-frames", os.Getenv("NITROGEN_MAX_FRAMES"), &cfg.MaxFrames); err != nil {
		return err
	}
	if err := s.setIntFromString("retention-high-mb", os.Getenv("NITROGEN_RETENTION_HIGH_MB"), &cfg.RetentionHighMB); err != nil {
		return err
	}
	if err := s.setIntFromString("retention-low-mb", os.Getenv("NITROGEN_RETENTION_LOW_MB"), &cfg.RetentionLowMB); err != nil {
		return err
	}

	if err := s.setFloatFromString("deadzone", os.Getenv("NITROGEN_DEADZONE"), &cfg.Deadzone); err != nil {
		return err
	}
	if err := s.setFloatFromString("mouse-sensitivity", os.Getenv("NITROGEN_MOUSE_SENSITIVITY"), &cfg.MouseSensitivity); err != nil {
		return err
	}
	if err := s.setFloatFromString("trigger-threshold", os.Getenv("NITROGEN_TRIGGER_THRESHOLD"), &cfg.TriggerThreshold); err != nil {
		return err
	}
	if err := s.setFloatFromString("speed-factor", os.Getenv("NITROGEN_SPEED_FACTOR"), &cfg.SpeedFactor); err != nil {
		return err
	}

	if err := s.setDuration("timeout", os.Getenv("NITROGEN_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("max-duration", os.Getenv("NITROGEN_MAX_DURATION"), &cfg.MaxDuration); err != nil {
		return err
	}

	s.setBoolFromString("disable-input", os.Getenv("NITROGEN_DISABLE_INPUT"), &cfg.DisableInput)
	s.setBoolFromString("enable-unsafe-speed", os.Getenv("NITROGEN_ENABLE_UNSAFE_SPEED"), &cfg.EnableUnsafeSpeed)

	return nil
}
