package main

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

const glowSpriteSize = 64

// glowSprites caches one white gradient sprite per glow shape.
// Draws tint them with the particle color.
type glowSprites struct {
	images [3]*ebiten.Image
}

func (g *glowSprites) get(shape GlowShape) *ebiten.Image {
	if g.images[shape] == nil {
		g.images[shape] = ebiten.NewImageFromImage(renderGlow(shape, glowSpriteSize))
	}
	return g.images[shape]
}

// renderGlow rasterises shape filled with a radial gradient running from
// opaque white at the centre to transparent white at the edge
func renderGlow(shape GlowShape, size int) image.Image {
	dc := gg.NewContext(size, size)
	c := float64(size) / 2

	grad := gg.NewRadialGradient(c, c, 0, c, c, c)
	grad.AddColorStop(0, color.NRGBA{255, 255, 255, 255})
	grad.AddColorStop(1, color.NRGBA{255, 255, 255, 0})
	dc.SetFillStyle(grad)

	switch shape {
	case GlowSquare:
		side := c * math.Sqrt2
		dc.DrawRectangle(c-side/2, c-side/2, side, side)
	case GlowTriangle:
		dc.DrawRegularPolygon(3, c, c, c, 0)
	default:
		dc.DrawCircle(c, c, c)
	}
	dc.Fill()
	return dc.Image()
}
