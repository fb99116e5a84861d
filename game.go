package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game wires the scene and the network background into ebiten
type Game struct {
	cfg         Config
	scene       *Scene
	network     *Network
	showNetwork bool
	background  color.RGBA
	tick        time.Duration
	sprites     glowSprites
	white       *ebiten.Image
	width       int
	height      int
}

// NewGame validates cfg and builds both layers around engine
func NewGame(cfg Config, engine Engine) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	bg, err := ParseColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	scene, err := NewScene(engine, cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	// The background gets its own seed so the two loops never share state
	network := NewNetwork(float64(cfg.Width), float64(cfg.Height), cfg.NetworkDensity, cfg.NetworkMaxDots, seed+1)

	log.Printf("[Scene] started %dx%d, seed %d, mode %s", cfg.Width, cfg.Height, seed, scene.Mode())
	return &Game{
		cfg:         cfg,
		scene:       scene,
		network:     network,
		showNetwork: cfg.Network,
		background:  bg,
		tick:        time.Second / time.Duration(cfg.TPS),
		width:       cfg.Width,
		height:      cfg.Height,
	}, nil
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	in := g.handleInput()

	g.scene.Tick(g.tick)

	if g.showNetwork {
		g.network.Update(in.x, in.y, in.inside, in.clicked)
	}
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	if g.white == nil {
		g.white = newWhitePixel()
	}
	c := newEbitenCanvas(screen, &g.sprites, g.white)
	c.Clear(g.background)

	if g.showNetwork {
		g.network.Draw(c)
	}
	g.scene.Draw(c)
}

// Layout follows the window size; a change rebuilds the boundaries
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.width, g.height
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

func (g *Game) resize(w, h int) {
	if err := g.scene.Resize(float64(w), float64(h)); err != nil {
		log.Printf("[Scene] resize skipped: %v", err)
		return
	}
	g.network.Resize(float64(w), float64(h))
	g.width, g.height = w, h
}
