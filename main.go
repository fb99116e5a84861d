package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := loadSettings()
	if err != nil {
		log.Fatal(err)
	}

	game, err := NewGame(cfg, NewCPEngine(float64(cfg.TPS)))
	if err != nil {
		log.Fatal(err)
	}

	// Set up Ebitengine game
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Shape Playground")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	// Run the game loop
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// loadSettings reads the optional config file, then applies flags on top
func loadSettings() (Config, error) {
	configPath := flag.String("config", "", "JSON settings file")
	width := flag.Int("width", 0, "window width")
	height := flag.Int("height", 0, "window height")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	shapes := flag.Int("shapes", -1, "initial shape count")
	mode := flag.String("mode", "", "effect mode: bounce, explode, stick, gravity")
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("[Config] %s not found, using defaults", *configPath)
		case err != nil:
			return cfg, err
		default:
			cfg = loaded
		}
	}

	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *shapes >= 0 {
		cfg.InitialShapes = *shapes
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	return cfg, nil
}
