package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		changed map[string]bool
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name: "applies valid env vars",
			envVars: map[string]string{
				"NITROGEN_PROCESS":       "game",
				"NITROGEN_SERVICE_URL":   "http://env:5000",
				"NITROGEN_FPS":           "60",
				"NITROGEN_DEADZONE":      "0.3",
				"NITROGEN_HTTP_TIMEOUT":  "200ms",
				"NITROGEN_DISABLE_INPUT": "true",
				"NITROGEN_MAX_DURATION":  "10m",
			},
			changed: map[string]bool{},
			check: func(t *testing.T, cfg Config) {
				if cfg.Process != "game" {
					t.Errorf("Process = %q, want game", cfg.Process)
				}
				if cfg.ServiceURL != "http://env:5000" {
					t.Errorf("ServiceURL = %q", cfg.ServiceURL)
				}
				if cfg.FPS != 60 {
					t.Errorf("FPS = %d, want 60", cfg.FPS)
				}
				if cfg.Deadzone != 0.3 {
					t.Errorf("Deadzone = %v, want 0.3", cfg.Deadzone)
				}
				if cfg.HTTPTimeout != 200*time.Millisecond {
					t.Errorf("HTTPTimeout = %v, want 200ms", cfg.HTTPTimeout)
				}
				if !cfg.DisableInput {
					t.Error("DisableInput = false, want true")
				}
				if cfg.MaxDuration != 10*time.Minute {
					t.Errorf("MaxDuration = %v, want 10m", cfg.MaxDuration)
				}
			},
		},
		{
			name: "flags win over env",
			envVars: map[string]string{
				"NITROGEN_FPS":     "60",
				"NITROGEN_PROCESS": "game",
			},
			changed: map[string]bool{"fps": true},
			check: func(t *testing.T, cfg Config) {
				if cfg.FPS != 30 {
					t.Errorf("FPS = %d, want flag-set default 30", cfg.FPS)
				}
				if cfg.Process != "game" {
					t.Errorf("Process = %q, unchanged flags should still apply", cfg.Process)
				}
			},
		},
		{
			name:    "zero float overrides default",
			envVars: map[string]string{"NITROGEN_DEADZONE": "0", "NITROGEN_TRIGGER_THRESHOLD": "0"},
			changed: map[string]bool{},
			check: func(t *testing.T, cfg Config) {
				if cfg.Deadzone != 0 {
					t.Errorf("Deadzone = %v, want explicit 0 to override the default", cfg.Deadzone)
				}
				if cfg.TriggerThreshold != 0 {
					t.Errorf("TriggerThreshold = %v, want explicit 0 to override the default", cfg.TriggerThreshold)
				}
			},
		},
		{
			name:    "invalid int errors",
			envVars: map[string]string{"NITROGEN_FPS": "sixty"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "invalid float errors",
			envVars: map[string]string{"NITROGEN_DEADZONE": "wide"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "invalid duration errors",
			envVars: map[string]string{"NITROGEN_HTTP_TIMEOUT": "fast"},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name:    "bool accepts 1",
			envVars: map[string]string{"NITROGEN_ENABLE_UNSAFE_SPEED": "1"},
			changed: map[string]bool{},
			check: func(t *testing.T, cfg Config) {
				if !cfg.EnableUnsafeSpeed {
					t.Error("EnableUnsafeSpeed = false, want true")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := DefaultConfig()
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
