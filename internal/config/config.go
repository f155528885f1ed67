package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"canvas-cropper/internal/canvassize"
	"canvas-cropper/internal/imageio"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
)

// Config holds editor defaults, export settings and batch settings.
type Config struct {
	// Canvas
	Device string `json:"device"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Interaction
	ZoomStep float64 `json:"zoom_step"`
	MinScale float64 `json:"min_scale"`

	// Export
	OutputDir           string `json:"output_dir"`
	Format              string `json:"format"`
	TimezoneOffsetHours *int   `json:"timezone_offset_hours"`

	// Runtime
	Workers  int    `json:"workers"`
	LogLevel string `json:"log_level"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Device    string
	Width     int
	Height    int
	OutputDir string
	Format    string
	Workers   int
	LogLevel  string
}

// Resolve applies CLI overrides, then fills any empty field with a default.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) error {
	// CLI flags override config file
	if flags.Device != "" {
		c.Device = flags.Device
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	dev, err := canvassize.ParseDeviceClass(c.Device)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Device = dev.String()

	if c.Width <= 0 || c.Height <= 0 {
		def := dev.DefaultResolution()
		c.Width, c.Height = def.Width, def.Height
	}

	format, err := imageio.ParseFormat(c.Format)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Format = string(format)

	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if !filepath.IsAbs(c.OutputDir) {
		if abs, err := filepath.Abs(c.OutputDir); err == nil {
			c.OutputDir = abs
		}
	}

	if c.MinScale <= 0 {
		c.MinScale = 0.1
	}
	if c.ZoomStep < 0 {
		c.ZoomStep = 0
	}
	if c.TimezoneOffsetHours == nil {
		eight := 8
		c.TimezoneOffsetHours = &eight
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// DeviceClass is the resolved device class.
func (c *Config) DeviceClass() canvassize.DeviceClass {
	dev, _ := canvassize.ParseDeviceClass(c.Device)
	return dev
}

// Resolution is the resolved canvas size.
func (c *Config) Resolution() canvassize.Resolution {
	return canvassize.Resolution{Width: c.Width, Height: c.Height}
}

// ExportFormat is the resolved export format.
func (c *Config) ExportFormat() imageio.Format {
	return imageio.Format(c.Format)
}

// Level is the resolved log level.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Offset is the export-name clock offset in hours.
func (c *Config) Offset() int {
	if c.TimezoneOffsetHours == nil {
		return 0
	}
	return *c.TimezoneOffsetHours
}
