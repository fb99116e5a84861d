package main

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ConfigSavePath is where S writes the current settings
const ConfigSavePath = "playground.json"

// modeKeys is checked in order; the first mode key pressed in a frame wins
var modeKeys = []struct {
	key  ebiten.Key
	mode EffectMode
}{
	{ebiten.Key1, ModeBounce},
	{ebiten.Key2, ModeExplode},
	{ebiten.Key3, ModeStick},
	{ebiten.Key4, ModeGravity},
}

// pointer is the cursor state handed to the background layer
type pointer struct {
	x, y    float64
	inside  bool
	clicked bool
}

// handleInput processes keyboard and mouse input
func (g *Game) handleInput() pointer {
	w, h := g.scene.Size()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.scene.DropShape()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.scene.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.scene.ToggleGravity()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.showNetwork = !g.showNetwork
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.cfg.Mode = g.scene.Mode().String()
		g.cfg.Network = g.showNetwork
		if err := g.cfg.Save(ConfigSavePath); err != nil {
			log.Printf("[Config] save failed: %v", err)
		} else {
			log.Printf("[Config] saved to %s", ConfigSavePath)
		}
	}
	for _, mk := range modeKeys {
		if inpututil.IsKeyJustPressed(mk.key) {
			g.scene.SetMode(mk.mode)
			break
		}
	}

	mx, my := ebiten.CursorPosition()
	p := pointer{
		x:      float64(mx),
		y:      float64(my),
		inside: mx >= 0 && my >= 0 && float64(mx) < w && float64(my) < h,
	}
	cursor := mgl64.Vec2{p.x, p.y}

	// Press on a body grabs it, press on empty space spawns a shape
	if p.inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.clicked = true
		if !g.scene.BeginDrag(cursor) {
			g.scene.AddShape(p.x, p.y)
		}
	}
	if g.scene.Dragging() && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.scene.Drag(cursor)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.scene.EndDrag()
	}
	return p
}
