package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNoSurface is returned when the drawing surface has no area
var ErrNoSurface = errors.New("drawing surface has no area")

// Config holds the tunable settings of the playground
type Config struct {
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	TPS            int      `json:"tps"`
	Seed           int64    `json:"seed"` // 0 picks a time-based seed
	InitialShapes  int      `json:"initial_shapes"`
	Mode           string   `json:"mode"`
	Network        bool     `json:"network"`
	NetworkDensity float64  `json:"network_density"` // Pixels of area per dot
	NetworkMaxDots int      `json:"network_max_dots"`
	Palette        []string `json:"palette"`
	Background     string   `json:"background"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Width:          1024,
		Height:         720,
		TPS:            60,
		InitialShapes:  8,
		Mode:           ModeBounce.String(),
		Network:        true,
		NetworkDensity: 9000,
		NetworkMaxDots: 150,
		Palette:        []string{"#ff6b6b", "#4ecdc4", "#ffe66d", "#a78bfa", "#f472b6", "#60a5fa"},
		Background:     "#0f172a",
	}
}

// LoadConfig overlays the JSON file at path onto the defaults
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as JSON
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects settings the playground cannot start with
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrNoSurface, c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	if c.InitialShapes < 0 {
		return fmt.Errorf("initial_shapes must not be negative, got %d", c.InitialShapes)
	}
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	if len(c.Palette) == 0 {
		return errors.New("palette must not be empty")
	}
	if _, err := ParsePalette(c.Palette); err != nil {
		return err
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	return nil
}
