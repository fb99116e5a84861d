package main

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// BlendMode is the compositing rule for subsequent draws
type BlendMode int

const (
	BlendSourceOver BlendMode = iota // Normal alpha blending
	BlendLighter                     // Additive
)

// GlowShape picks the outline of a glow sprite
type GlowShape int

const (
	GlowCircle GlowShape = iota
	GlowSquare
	GlowTriangle
)

// Canvas is the 2D drawing surface. The blend mode is global state: it
// applies to every draw until changed.
type Canvas interface {
	SetBlend(m BlendMode)
	Clear(c color.RGBA)
	// DrawGlow fills shape at (x, y) with a radial gradient from c to transparent
	DrawGlow(shape GlowShape, x, y, size, rotation float64, c color.RGBA, alpha float64)
	FillCircle(x, y, r float64, c color.RGBA, alpha float64)
	StrokeCircle(x, y, r, width float64, c color.RGBA, alpha float64)
	FillPolygon(points []mgl64.Vec2, c color.RGBA, alpha float64)
	StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA, alpha float64)
}

// ebitenCanvas draws onto an ebiten image
type ebitenCanvas struct {
	dst     *ebiten.Image
	blend   ebiten.Blend
	sprites *glowSprites
	white   *ebiten.Image
}

// newEbitenCanvas wraps dst. Sprites are shared between frames.
func newEbitenCanvas(dst *ebiten.Image, sprites *glowSprites, white *ebiten.Image) *ebitenCanvas {
	return &ebitenCanvas{dst: dst, blend: ebiten.BlendSourceOver, sprites: sprites, white: white}
}

// newWhitePixel returns a 1x1 opaque white source for triangle fills
func newWhitePixel() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

func (c *ebitenCanvas) SetBlend(m BlendMode) {
	switch m {
	case BlendLighter:
		c.blend = ebiten.BlendLighter
	default:
		c.blend = ebiten.BlendSourceOver
	}
}

func (c *ebitenCanvas) Clear(clr color.RGBA) {
	c.dst.Fill(clr)
}

func (c *ebitenCanvas) DrawGlow(shape GlowShape, x, y, size, rotation float64, clr color.RGBA, alpha float64) {
	img := c.sprites.get(shape)
	half := float64(glowSpriteSize) / 2
	// The gradient fades out at the sprite edge, so the glow spans twice the size
	scale := size * 2 / float64(glowSpriteSize)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	op.GeoM.Rotate(rotation)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Blend = c.blend
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(img, op)
}

func (c *ebitenCanvas) FillCircle(x, y, r float64, clr color.RGBA, alpha float64) {
	var p vector.Path
	p.Arc(float32(x), float32(y), float32(r), 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	c.fillPath(&p, clr, alpha)
}

func (c *ebitenCanvas) StrokeCircle(x, y, r, width float64, clr color.RGBA, alpha float64) {
	vector.StrokeCircle(c.dst, float32(x), float32(y), float32(r), float32(width), withAlpha(clr, alpha), true)
}

func (c *ebitenCanvas) FillPolygon(points []mgl64.Vec2, clr color.RGBA, alpha float64) {
	if len(points) < 3 {
		return
	}
	var p vector.Path
	p.MoveTo(float32(points[0].X()), float32(points[0].Y()))
	for _, pt := range points[1:] {
		p.LineTo(float32(pt.X()), float32(pt.Y()))
	}
	p.Close()
	c.fillPath(&p, clr, alpha)
}

func (c *ebitenCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.RGBA, alpha float64) {
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), withAlpha(clr, alpha), true)
}

// fillPath triangulates p and draws it with the current blend
func (c *ebitenCanvas) fillPath(p *vector.Path, clr color.RGBA, alpha float64) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255
	a := float32(alpha)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, Blend: c.blend}
	c.dst.DrawTriangles(vs, is, c.white, op)
}

// withAlpha returns c with its alpha multiplied by a, premultiplied
func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
