// Package config loads shadowbox settings from a YAML file with environment overrides.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/shadowbox/internal/capture"
	"github.com/ayusman/shadowbox/internal/detector"
)

// EnvConfigPath names the variable that overrides the config file location.
const EnvConfigPath = "SHADOWBOX_CONFIG"

// Config is the full application configuration.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Detector DetectorConfig `yaml:"detector"`
	Display  DisplayConfig  `yaml:"display"`
	Round    RoundConfig    `yaml:"round"`
}

// CameraConfig selects the video source and capture size.
type CameraConfig struct {
	Source string `yaml:"source"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

// DetectorConfig locates the pose service and sets its confidence thresholds.
type DetectorConfig struct {
	ScriptPath         string  `yaml:"script_path"`
	PythonPath         string  `yaml:"python_path"`
	ModelPath          string  `yaml:"model_path"`
	MinDetectionConf   float64 `yaml:"min_detection_confidence"`
	MinPresenceConf    float64 `yaml:"min_presence_confidence"`
	IdleTimeoutSeconds int     `yaml:"idle_timeout_seconds"`
}

// DisplayConfig controls the preview window and tray.
type DisplayConfig struct {
	WindowTitle string `yaml:"window_title"`
	Headless    bool   `yaml:"headless"`
	Tray        bool   `yaml:"tray"`
	// QuitKey is the key that ends the capture loop.
	QuitKey string `yaml:"quit_key"`
}

// RoundConfig tunes round statistics.
type RoundConfig struct {
	ComboTimeoutMs int `yaml:"combo_timeout_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	cam := capture.DefaultConfig()
	det := detector.DefaultConfig()
	return Config{
		Camera: CameraConfig{
			Source: cam.Source,
			Width:  cam.Width,
			Height: cam.Height,
			FPS:    cam.FPS,
		},
		Detector: DetectorConfig{
			ModelPath:          det.ModelPath,
			MinDetectionConf:   det.MinDetectionConf,
			MinPresenceConf:    det.MinPresenceConf,
			IdleTimeoutSeconds: int(det.IdleTimeout / time.Second),
		},
		Display: DisplayConfig{
			WindowTitle: "Shadowbox",
			QuitKey:     "q",
		},
		Round: RoundConfig{
			ComboTimeoutMs: 650,
		},
	}
}

// DefaultPath returns ~/.shadowbox/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".shadowbox", "config.yaml")
}

// Load reads the config at path on top of the defaults and applies
// environment overrides. An empty path means $SHADOWBOX_CONFIG, then
// DefaultPath. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		log.Printf("Loaded config from %s", path)
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	envOverride(&cfg.Camera.Source, "SHADOWBOX_CAMERA")
	envOverride(&cfg.Detector.ScriptPath, "SHADOWBOX_SCRIPT_PATH")
	envOverride(&cfg.Detector.PythonPath, "SHADOWBOX_PYTHON")
	envOverride(&cfg.Detector.ModelPath, "SHADOWBOX_MODEL_PATH")
	envOverride(&cfg.Display.WindowTitle, "SHADOWBOX_WINDOW_TITLE")

	if err := envOverrideInt(&cfg.Camera.FPS, "SHADOWBOX_FPS"); err != nil {
		return err
	}
	if err := envOverrideInt(&cfg.Round.ComboTimeoutMs, "SHADOWBOX_COMBO_TIMEOUT_MS"); err != nil {
		return err
	}
	if err := envOverrideFloat(&cfg.Detector.MinDetectionConf, "SHADOWBOX_MIN_DETECTION_CONFIDENCE"); err != nil {
		return err
	}
	if err := envOverrideBool(&cfg.Display.Headless, "SHADOWBOX_HEADLESS"); err != nil {
		return err
	}
	return nil
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envOverrideFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func envOverrideBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

// Validate checks ranges that would otherwise fail deep inside the pipeline.
func (c Config) Validate() error {
	if c.Camera.FPS < 0 {
		return fmt.Errorf("camera.fps must not be negative, got %d", c.Camera.FPS)
	}
	if c.Camera.Width < 0 || c.Camera.Height < 0 {
		return fmt.Errorf("camera size must not be negative, got %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if c.Detector.MinDetectionConf < 0 || c.Detector.MinDetectionConf > 1 {
		return fmt.Errorf("detector.min_detection_confidence must be between 0 and 1, got %f", c.Detector.MinDetectionConf)
	}
	if c.Detector.MinPresenceConf < 0 || c.Detector.MinPresenceConf > 1 {
		return fmt.Errorf("detector.min_presence_confidence must be between 0 and 1, got %f", c.Detector.MinPresenceConf)
	}
	if len(c.Display.QuitKey) != 1 {
		return fmt.Errorf("display.quit_key must be a single character, got %q", c.Display.QuitKey)
	}
	if c.Round.ComboTimeoutMs < 0 {
		return fmt.Errorf("round.combo_timeout_ms must not be negative, got %d", c.Round.ComboTimeoutMs)
	}
	return nil
}

// CaptureConfig converts the camera section for the capture package.
func (c Config) CaptureConfig() capture.Config {
	return capture.Config{
		Source: c.Camera.Source,
		Width:  c.Camera.Width,
		Height: c.Camera.Height,
		FPS:    c.Camera.FPS,
	}
}

// DetectorConfig converts the detector section for the detector package.
func (c Config) DetectorConfig() detector.Config {
	return detector.Config{
		ScriptPath:       c.Detector.ScriptPath,
		PythonPath:       c.Detector.PythonPath,
		ModelPath:        c.Detector.ModelPath,
		MinDetectionConf: c.Detector.MinDetectionConf,
		MinPresenceConf:  c.Detector.MinPresenceConf,
		IdleTimeout:      time.Duration(c.Detector.IdleTimeoutSeconds) * time.Second,
	}
}

// ComboTimeout returns the round combo window.
func (c Config) ComboTimeout() time.Duration {
	return time.Duration(c.Round.ComboTimeoutMs) * time.Millisecond
}
