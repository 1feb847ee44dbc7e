package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Config holds runtime configuration for the pixel-sorting kiosk.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Display
	DisplayWidth  int  `json:"display_width"`
	DisplayHeight int  `json:"display_height"`
	Fullscreen    bool `json:"fullscreen"`

	// Camera
	CameraEnabled bool `json:"camera_enabled"`
	CaptureWidth  int  `json:"capture_width"`
	CaptureHeight int  `json:"capture_height"`
	PreviewWidth  int  `json:"preview_width"`
	PreviewHeight int  `json:"preview_height"`
	JPEGQuality   int  `json:"jpeg_quality"`
	StreamFPS     int  `json:"stream_fps"`
	// ScreenFallback grabs the desktop instead of the camera when the
	// camera is disabled; useful for development off the kiosk hardware.
	ScreenFallback bool `json:"screen_fallback"`

	// Processing defaults
	Threshold      float64 `json:"threshold"`
	HueShift       float64 `json:"hue_shift"`
	ColorTint      float64 `json:"color_tint"`
	TintEnabled    bool    `json:"tint_enabled"`
	MaxImageWidth  int     `json:"max_image_width"`
	MaxImageHeight int     `json:"max_image_height"`
	PreviewCache   int     `json:"preview_cache"`

	// Paths
	OutputDir string `json:"output_dir"`
	SampleDir string `json:"sample_dir"`

	// GPIO hardware buttons
	GPIOEnabled        bool   `json:"gpio_enabled"`
	GPIODebounceMillis int    `json:"gpio_debounce_ms"`
	PinCapture         string `json:"pin_capture"`
	PinNextAlgorithm   string `json:"pin_next_algorithm"`
	PinThresholdUp     string `json:"pin_threshold_up"`
	PinThresholdDown   string `json:"pin_threshold_down"`
	PinSave            string `json:"pin_save"`
}

// DefaultConfig returns a Config populated with kiosk defaults
// (1024x600 touchscreen, Pi camera at screen resolution).
func DefaultConfig() *Config {
	return &Config{
		Debug:              false,
		DisplayWidth:       1024,
		DisplayHeight:      600,
		Fullscreen:         true,
		CameraEnabled:      true,
		CaptureWidth:       1024,
		CaptureHeight:      600,
		PreviewWidth:       1024,
		PreviewHeight:      600,
		JPEGQuality:        90,
		StreamFPS:          30,
		ScreenFallback:     false,
		Threshold:          50,
		HueShift:           0,
		ColorTint:          0,
		TintEnabled:        false,
		MaxImageWidth:      1920,
		MaxImageHeight:     1080,
		PreviewCache:       8,
		OutputDir:          "sorted_images",
		SampleDir:          "sample_images",
		GPIOEnabled:        false,
		GPIODebounceMillis: 200,
		PinCapture:         "GPIO18",
		PinNextAlgorithm:   "GPIO19",
		PinThresholdUp:     "GPIO20",
		PinThresholdDown:   "GPIO21",
		PinSave:            "GPIO26",
	}
}

// DefaultPath resolves the config file location under the XDG config home.
func DefaultPath() string {
	p, err := xdg.ConfigFile(filepath.Join("pixel-sorter", "config.json"))
	if err != nil {
		return "pixel-sorter.json"
	}
	return p
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.DisplayWidth <= 0 {
		c.DisplayWidth = 1024
	}
	if c.DisplayHeight <= 0 {
		c.DisplayHeight = 600
	}
	if c.CaptureWidth <= 0 || c.CaptureHeight <= 0 {
		c.CaptureWidth, c.CaptureHeight = 1024, 600
	}
	if c.PreviewWidth <= 0 || c.PreviewHeight <= 0 {
		c.PreviewWidth, c.PreviewHeight = c.CaptureWidth, c.CaptureHeight
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = 90
	}
	if c.StreamFPS <= 0 || c.StreamFPS > 60 {
		c.StreamFPS = 30
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		c.Threshold = 50
	}
	if c.HueShift < 0 || c.HueShift >= 360 {
		c.HueShift = 0
	}
	if c.ColorTint < 0 || c.ColorTint >= 360 {
		c.ColorTint = 0
	}
	if c.MaxImageWidth <= 0 || c.MaxImageHeight <= 0 {
		c.MaxImageWidth, c.MaxImageHeight = 1920, 1080
	}
	if c.PreviewCache <= 0 {
		c.PreviewCache = 8
	}
	if c.OutputDir == "" {
		c.OutputDir = "sorted_images"
	}
	if c.SampleDir == "" {
		c.SampleDir = "sample_images"
	}
	if c.GPIODebounceMillis <= 0 {
		c.GPIODebounceMillis = 200
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
