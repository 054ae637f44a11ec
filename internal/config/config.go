package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pleimann/gesture-bridge/internal/input"
)

type Config struct {
	Device   DeviceConfig  `yaml:"device"`
	Display  DisplayConfig `yaml:"display"`
	Axes     AxesConfig    `yaml:"axes"`
	Gestures GestureConfig `yaml:"gestures"`
}

type DeviceConfig struct {
	ID        int32  `yaml:"id"`
	Name      string `yaml:"name,omitempty"`
	VendorID  uint16 `yaml:"vendor_id,omitempty"`
	ProductID uint16 `yaml:"product_id,omitempty"`
}

type DisplayConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	Orientation int `yaml:"orientation"`
}

type AxesConfig struct {
	X AxisRange `yaml:"x"`
	Y AxisRange `yaml:"y"`
}

type AxisRange struct {
	Min        int32 `yaml:"min"`
	Max        int32 `yaml:"max"`
	Resolution int32 `yaml:"resolution,omitempty"`
}

type GestureConfig struct {
	SwipeFingerSpacing     float32 `yaml:"swipe_finger_spacing"`
	InitialPinchSeparation float32 `yaml:"initial_pinch_separation"`
	MinPinchSeparation     float32 `yaml:"min_pinch_separation"`
	PinchTimeoutMs         int     `yaml:"pinch_timeout_ms"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// LoadOrDefault loads path if it exists and falls back to Default otherwise
func LoadOrDefault(path string) (*Config, error) {
	if !Exists(path) {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	if _, err := input.RotationFromDegrees(c.Display.Orientation); err != nil {
		return fmt.Errorf("display.orientation: %w", err)
	}
	if c.Display.Width < 0 || c.Display.Height < 0 {
		return fmt.Errorf("display size must not be negative")
	}
	if err := c.Axes.X.validate("x"); err != nil {
		return err
	}
	if err := c.Axes.Y.validate("y"); err != nil {
		return err
	}
	if c.Gestures.SwipeFingerSpacing < 0 {
		return fmt.Errorf("gestures.swipe_finger_spacing must not be negative")
	}
	if c.Gestures.InitialPinchSeparation < 0 || c.Gestures.MinPinchSeparation < 0 {
		return fmt.Errorf("gestures pinch separations must not be negative")
	}
	if c.Gestures.MinPinchSeparation > 0 && c.Gestures.InitialPinchSeparation > 0 &&
		c.Gestures.MinPinchSeparation > c.Gestures.InitialPinchSeparation {
		return fmt.Errorf("gestures.min_pinch_separation exceeds initial_pinch_separation")
	}
	if c.Gestures.PinchTimeoutMs < 0 {
		return fmt.Errorf("gestures.pinch_timeout_ms must not be negative")
	}
	return nil
}

func (a AxisRange) validate(name string) error {
	if a.Min == 0 && a.Max == 0 {
		return nil
	}
	if a.Max <= a.Min {
		return fmt.Errorf("axes.%s: max (%d) must be greater than min (%d)", name, a.Max, a.Min)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Gestures.SwipeFingerSpacing == 0 {
		c.Gestures.SwipeFingerSpacing = 100
	}
	if c.Gestures.InitialPinchSeparation == 0 {
		c.Gestures.InitialPinchSeparation = 200
	}
	if c.Gestures.MinPinchSeparation == 0 {
		c.Gestures.MinPinchSeparation = 1
	}
}

// Rotation returns the configured display rotation
func (c *Config) Rotation() input.Rotation {
	r, err := input.RotationFromDegrees(c.Display.Orientation)
	if err != nil {
		return input.Rotation0
	}
	return r
}

// AxisInfo converts a configured range to raw axis info; unset ranges are invalid
func (a AxisRange) AxisInfo() input.AxisInfo {
	if a.Min == 0 && a.Max == 0 {
		return input.AxisInfo{}
	}
	return input.AxisInfo{
		Valid:      true,
		Min:        a.Min,
		Max:        a.Max,
		Resolution: a.Resolution,
	}
}

// UpdateOrientation rewrites display.orientation in a config file
// while preserving the rest of the file structure and comments
func UpdateOrientation(path string, degrees int) error {
	if _, err := input.RotationFromDegrees(degrees); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content := string(data)

	orientationRegex := regexp.MustCompile(`(?m)^(\s*orientation:\s*)\d+`)
	if !orientationRegex.MatchString(content) {
		return fmt.Errorf("no orientation key found in %s", path)
	}
	content = orientationRegex.ReplaceAllString(content, fmt.Sprintf("${1}%d", degrees))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// UpdateDeviceIDs updates the vendor_id and product_id in a config file
// while preserving the rest of the file structure and comments
func UpdateDeviceIDs(path string, vendorID, productID uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	content := string(data)

	vendorRegex := regexp.MustCompile(`(?m)^(\s*vendor_id:\s*)(?:0x[0-9A-Fa-f]+|\d+)`)
	productRegex := regexp.MustCompile(`(?m)^(\s*product_id:\s*)(?:0x[0-9A-Fa-f]+|\d+)`)
	if !vendorRegex.MatchString(content) || !productRegex.MatchString(content) {
		return fmt.Errorf("no vendor_id/product_id keys found in %s", path)
	}
	content = vendorRegex.ReplaceAllString(content, fmt.Sprintf("${1}0x%04X", vendorID))
	content = productRegex.ReplaceAllString(content, fmt.Sprintf("${1}0x%04X", productID))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig creates a new config file with default values
func CreateDefaultConfig(path string, degrees int) error {
	if _, err := input.RotationFromDegrees(degrees); err != nil {
		return err
	}

	content := fmt.Sprintf(`# Gesture Bridge Configuration

device:
  id: 1
  name: touchpad
  # USB ids of the touchpad, set with set-device
  vendor_id: 0x0000
  product_id: 0x0000

display:
  width: 1920
  height: 1080
  orientation: %d

# Raw touchpad axis bounds, used to normalize swipe offsets
axes:
  x:
    min: 0
    max: 1500
  y:
    min: 0
    max: 1000

gestures:
  swipe_finger_spacing: 100
  initial_pinch_separation: 200
  min_pinch_separation: 1
  # 0 disables the idle timeout; pinches then end only on an explicit end
  pinch_timeout_ms: 0
`, degrees)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// Exists checks if a config file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
