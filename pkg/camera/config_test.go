package camera

import (
	"errors"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("default config invalid: %v", errs)
	}

	cfg = LowResConfig()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("low-res config invalid: %v", errs)
	}
	if cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("low-res resolution: got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestConfig_ValidateRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Config)
	}{
		{"negative device", func(c *Config) { c.Device = -1 }},
		{"tiny width", func(c *Config) { c.Width = 10 }},
		{"huge height", func(c *Config) { c.Height = 9999 }},
		{"zero framerate", func(c *Config) { c.Framerate = 0 }},
		{"quality over 100", func(c *Config) { c.Quality = 101 }},
	}

	for _, c := range cases {
		cfg := DefaultConfig()
		c.mod(&cfg)
		if errs := cfg.Validate(); len(errs) == 0 {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestManager_SetConfig(t *testing.T) {
	m := NewManager()

	bad := DefaultConfig()
	bad.Quality = 0
	if err := m.SetConfig(bad); err == nil {
		t.Error("expected error for invalid config")
	}
	if m.GetConfig().Quality == 0 {
		t.Error("invalid config must not be stored")
	}

	var applied Config
	m.OnConfigChange = func(cfg Config) error {
		applied = cfg
		return nil
	}

	good := LowResConfig()
	if err := m.SetConfig(good); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	if m.GetConfig().Width != 640 {
		t.Errorf("stored width: got %d, want 640", m.GetConfig().Width)
	}
	if applied.Width != 640 {
		t.Errorf("callback width: got %d, want 640", applied.Width)
	}
}

func TestManager_ReopenFailureSurfaces(t *testing.T) {
	// The live service wires OnConfigChange to Webcam.Reopen; a device
	// that cannot reopen must fail the API call, not vanish silently
	m := NewManager()
	m.OnConfigChange = func(Config) error {
		return errors.New("device busy")
	}

	if err := m.SetConfig(LowResConfig()); err == nil {
		t.Error("expected reopen failure to propagate")
	}
}
