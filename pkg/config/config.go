package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
)

// ErrInvalidConfig is returned when a setting is missing, malformed or out of range
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "RAINCITY_"

// DefaultEnvFile is read by Load when no files are given; it may be absent
const DefaultEnvFile = ".env"

// Config contains the settings shared by every front-end
type Config struct {
	Scene      string  // Registered scene name
	Width      int     // Frame width in pixels
	Height     int     // Frame height in pixels
	FOVDegrees float64 // Field of view spanning the image height
	MaxDepth   int     // Recursion depth including the primary ray
	Workers    int     // Render goroutines (0 = CPU count, 1 = sequential)
	TileSize   int     // Tile edge in pixels
	DollyStep  float64 // Camera travel per key press
	Rain       bool    // Draw the rain overlay
	Port       int     // Web server port
}

// Default returns the reference settings
func Default() Config {
	return Config{
		Scene:      "city",
		Width:      960,
		Height:     540,
		FOVDegrees: 60,
		MaxDepth:   3,
		Workers:    0,
		TileSize:   32,
		DollyStep:  0.15,
		Rain:       true,
		Port:       8080,
	}
}

// Load starts from Default, applies RAINCITY_* values from the given .env files, then
// applies RAINCITY_* variables from the process environment, which take precedence.
// With no files, DefaultEnvFile is used if it exists.
func Load(files ...string) (Config, error) {
	values := map[string]string{}

	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			files = []string{DefaultEnvFile}
		}
	}
	if len(files) > 0 {
		fileValues, err := godotenv.Read(files...)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read env files %v: %w", files, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			values[k] = v
		}
	}

	cfg := Default()
	if err := cfg.apply(values); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// apply overwrites fields from RAINCITY_* keys; unknown keys are ignored
func (c *Config) apply(values map[string]string) error {
	for key, raw := range values {
		name, ok := strings.CutPrefix(key, EnvPrefix)
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)

		var err error
		switch name {
		case "SCENE":
			c.Scene = raw
		case "WIDTH":
			c.Width, err = strconv.Atoi(raw)
		case "HEIGHT":
			c.Height, err = strconv.Atoi(raw)
		case "FOV":
			c.FOVDegrees, err = strconv.ParseFloat(raw, 64)
		case "MAX_DEPTH":
			c.MaxDepth, err = strconv.Atoi(raw)
		case "WORKERS":
			c.Workers, err = strconv.Atoi(raw)
		case "TILE_SIZE":
			c.TileSize, err = strconv.Atoi(raw)
		case "DOLLY_STEP":
			c.DollyStep, err = strconv.ParseFloat(raw, 64)
		case "RAIN":
			c.Rain, err = strconv.ParseBool(raw)
		case "PORT":
			c.Port, err = strconv.Atoi(raw)
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, raw, err)
		}
	}
	return nil
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene name is empty", ErrInvalidConfig)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.FOVDegrees <= 0 || c.FOVDegrees >= 180:
		return fmt.Errorf("%w: field of view %v must be in (0, 180) degrees", ErrInvalidConfig, c.FOVDegrees)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidConfig, c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: worker count %d is negative", ErrInvalidConfig, c.Workers)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d must be positive", ErrInvalidConfig, c.TileSize)
	case c.DollyStep <= 0:
		return fmt.Errorf("%w: dolly step %v must be positive", ErrInvalidConfig, c.DollyStep)
	case c.Port <= 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	return nil
}

// RenderConfig converts the settings into renderer options
func (c Config) RenderConfig() renderer.RenderConfig {
	return renderer.RenderConfig{
		FOV:        c.FOVDegrees * math.Pi / 180,
		MaxDepth:   c.MaxDepth,
		TileSize:   c.TileSize,
		NumWorkers: c.Workers,
		Rain:       c.Rain,
	}
}
