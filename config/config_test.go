package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Threshold != def.Threshold || cfg.DisplayWidth != def.DisplayWidth {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.Threshold = 75
	cfg.CameraEnabled = false
	cfg.OutputDir = "booth_output"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Threshold != 75 || got.CameraEnabled || got.OutputDir != "booth_output" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestValidateClampsOutOfRange(t *testing.T) {
	cfg := &Config{
		Threshold:    999,
		HueShift:     -10,
		JPEGQuality:  150,
		StreamFPS:    0,
		PreviewCache: -1,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Threshold != 50 {
		t.Fatalf("threshold not clamped: %v", cfg.Threshold)
	}
	if cfg.HueShift != 0 {
		t.Fatalf("hue shift not clamped: %v", cfg.HueShift)
	}
	if cfg.JPEGQuality != 90 || cfg.StreamFPS != 30 || cfg.PreviewCache != 8 {
		t.Fatalf("camera/processing fields not clamped: %+v", cfg)
	}
}

func TestLoadBadJSONReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}
