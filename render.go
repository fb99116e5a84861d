package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// GlowShapeFor picks the outline from the integer part of size, so the
// outline stays put while the particle shrinks within one unit
func GlowShapeFor(size float64) GlowShape {
	return GlowShape(int(math.Floor(size)) % 3)
}

// Render draws explosion particles additively, then trails normally.
// The blend mode is global to the canvas, so it is reset before trails.
func (ps *ParticleSystem) Render(c Canvas) {
	c.SetBlend(BlendLighter)
	for _, p := range ps.Explosions {
		c.DrawGlow(GlowShapeFor(p.Size), p.X, p.Y, p.Size, p.Rotation, p.Color, p.Alpha)
	}

	c.SetBlend(BlendSourceOver)
	for _, p := range ps.Trails {
		c.FillCircle(p.X, p.Y, p.Size, p.Color, p.Alpha*p.LifeRatio())
	}
}

// Draw renders boundaries, shapes, then particles
func (s *Scene) Draw(c Canvas) {
	c.SetBlend(BlendSourceOver)
	for _, b := range s.bounds {
		drawShape(c, b)
	}
	for _, sh := range s.shapes {
		drawShape(c, sh)
	}
	s.Particles.Render(c)
}

var outlineWhite = color.RGBA{255, 255, 255, 255}

func drawShape(c Canvas, sh *Shape) {
	pos := sh.Body.Position()
	if sh.Def.Kind == ShapeCircle {
		c.FillCircle(pos.X(), pos.Y(), sh.Def.Radius, sh.Color, sh.Opacity)
		// Spoke so rotation is visible
		rim := mgl64.Rotate2D(sh.Body.Angle()).Mul2x1(mgl64.Vec2{sh.Def.Radius, 0}).Add(pos)
		c.StrokeLine(pos.X(), pos.Y(), rim.X(), rim.Y(), 1.5, blend(sh.Color, outlineWhite, 0.5), sh.Opacity)
		return
	}
	c.FillPolygon(worldVertices(sh.Def, pos, sh.Body.Angle()), sh.Color, sh.Opacity)
}

// worldVertices rotates and translates the outline into world space
func worldVertices(def ShapeDef, pos mgl64.Vec2, angle float64) []mgl64.Vec2 {
	rot := mgl64.Rotate2D(angle)
	verts := def.Vertices()
	for i, v := range verts {
		verts[i] = rot.Mul2x1(v).Add(pos)
	}
	return verts
}
