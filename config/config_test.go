package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if cfg.AppPort != "8080" {
		t.Errorf("AppPort = %q, want 8080", cfg.AppPort)
	}
	if cfg.DefaultLocation != "Kathmandu" {
		t.Errorf("DefaultLocation = %q, want Kathmandu", cfg.DefaultLocation)
	}
	if cfg.SessionBackend != "memory" {
		t.Errorf("SessionBackend = %q, want memory", cfg.SessionBackend)
	}
	if cfg.ListingsFillerEnabled {
		t.Error("listings filler should be off by default")
	}
	if cfg.ListingsFillerMin != 5 || cfg.ListingsFillerMax != 19 {
		t.Errorf("filler bounds = %d..%d, want 5..19", cfg.ListingsFillerMin, cfg.ListingsFillerMax)
	}
	if cfg.TabIdleTTL != 2*time.Hour {
		t.Errorf("TabIdleTTL = %v, want 2h", cfg.TabIdleTTL)
	}
	if cfg.BackendTimeout != 15*time.Second {
		t.Errorf("BackendTimeout = %v, want 15s", cfg.BackendTimeout)
	}
	if len(cfg.CSRFKey) != 32 {
		t.Errorf("CSRF key is %d bytes, want 32", len(cfg.CSRFKey))
	}
}

func TestSetDefaults_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DEFAULT_LOCATION", "Pokhara")

	v := viper.New()
	v.AutomaticEnv()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if cfg.DefaultLocation != "Pokhara" {
		t.Errorf("DefaultLocation = %q, want Pokhara", cfg.DefaultLocation)
	}
}

func TestCheckSecrets(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	var defaults Config
	if err := v.Unmarshal(&defaults); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	custom := defaults
	custom.Env = "production"
	custom.SlotSecret = "a-real-slot-secret"
	custom.CSRFKey = "0123456789abcdef0123456789abcdef"

	devSlot := custom
	devSlot.SlotSecret = defaults.SlotSecret
	devCSRF := custom
	devCSRF.CSRFKey = defaults.CSRFKey
	shortKey := custom
	shortKey.CSRFKey = "short"

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"development defaults", defaults, false},
		{"production with own secrets", custom, false},
		{"production with dev slot secret", devSlot, true},
		{"production with dev csrf key", devCSRF, true},
		{"production with short csrf key", shortKey, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSecrets(tt.cfg)
			if tt.wantErr && !errors.Is(err, ErrDevSecrets) {
				t.Errorf("err = %v, want ErrDevSecrets", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
		})
	}
}
