package main

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type fakeBody struct {
	def     BodyDef
	pos     mgl64.Vec2
	vel     mgl64.Vec2
	mass    float64
	angle   float64
	forces  []mgl64.Vec2
	removed bool
}

func (b *fakeBody) Position() mgl64.Vec2     { return b.pos }
func (b *fakeBody) Velocity() mgl64.Vec2     { return b.vel }
func (b *fakeBody) SetVelocity(v mgl64.Vec2) { b.vel = v }
func (b *fakeBody) ApplyForce(f mgl64.Vec2)  { b.forces = append(b.forces, f) }
func (b *fakeBody) Mass() float64            { return b.mass }
func (b *fakeBody) Angle() float64           { return b.angle }

// fakeEngine records bodies and hands back scripted contacts
type fakeEngine struct {
	bodies   []*fakeBody
	gravity  mgl64.Vec2
	contacts []Contact
	hit      Body
	touching bool
	removed  int
}

func (e *fakeEngine) AddBody(def BodyDef) Body {
	b := &fakeBody{def: def, pos: def.Position, angle: def.Angle, mass: 1}
	e.bodies = append(e.bodies, b)
	return b
}

func (e *fakeEngine) RemoveBody(b Body) {
	fb := b.(*fakeBody)
	fb.removed = true
	e.removed++
	for i, o := range e.bodies {
		if o == fb {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			return
		}
	}
}

func (e *fakeEngine) BodyAt(mgl64.Vec2) Body  { return e.hit }
func (e *fakeEngine) Gravity() mgl64.Vec2     { return e.gravity }
func (e *fakeEngine) SetGravity(g mgl64.Vec2) { e.gravity = g }
func (e *fakeEngine) Step(float64) []Contact {
	c := e.contacts
	e.contacts = nil
	return c
}

func (e *fakeEngine) Touching(a, b Body) bool {
	return e.touching && !a.(*fakeBody).removed && !b.(*fakeBody).removed
}

func (e *fakeEngine) staticCount() int {
	n := 0
	for _, b := range e.bodies {
		if b.def.Static {
			n++
		}
	}
	return n
}

// fixedRand returns the same value for every draw
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return int(r.f * float64(n)) }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 800
	cfg.Height = 600
	cfg.InitialShapes = 0
	cfg.Seed = 1
	return cfg
}

func newTestScene(t *testing.T) (*Scene, *fakeEngine) {
	t.Helper()
	eng := &fakeEngine{}
	s, err := NewScene(eng, testConfig(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s, eng
}

// dynamicShape adds a shape and sets its body state directly
func dynamicShape(s *Scene, pos, vel mgl64.Vec2) *Shape {
	sh := s.addBody(CircleDef(10), pos, color.RGBA{255, 0, 0, 255}, shapeMaterial)
	fb := sh.Body.(*fakeBody)
	fb.vel = vel
	return sh
}

// touch reports a and b starting to collide at their current velocities
func touch(a, b *Shape) Contact {
	return Contact{A: a.Body, B: b.Body, VA: a.Body.Velocity(), VB: b.Body.Velocity()}
}

type canvasCall struct {
	op    string
	blend BlendMode
	glow  GlowShape
	alpha float64
}

// recordingCanvas logs every draw with the blend mode active at the time
type recordingCanvas struct {
	blend BlendMode
	calls []canvasCall
}

func (c *recordingCanvas) SetBlend(m BlendMode) {
	c.blend = m
	c.calls = append(c.calls, canvasCall{op: "blend", blend: m})
}

func (c *recordingCanvas) Clear(color.RGBA) {
	c.calls = append(c.calls, canvasCall{op: "clear", blend: c.blend})
}

func (c *recordingCanvas) DrawGlow(shape GlowShape, x, y, size, rotation float64, clr color.RGBA, alpha float64) {
	c.calls = append(c.calls, canvasCall{op: "glow", blend: c.blend, glow: shape, alpha: alpha})
}

func (c *recordingCanvas) FillCircle(x, y, r float64, clr color.RGBA, alpha float64) {
	c.calls = append(c.calls, canvasCall{op: "circle", blend: c.blend, alpha: alpha})
}

func (c *recordingCanvas) StrokeCircle(x, y, r, width float64, clr color.RGBA, alpha float64) {
	c.calls = append(c.calls, canvasCall{op: "ring", blend: c.blend, alpha: alpha})
}

func (c *recordingCanvas) FillPolygon(points []mgl64.Vec2, clr color.RGBA, alpha float64) {
	c.calls = append(c.calls, canvasCall{op: "polygon", blend: c.blend, alpha: alpha})
}

func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.RGBA, alpha float64) {
	c.calls = append(c.calls, canvasCall{op: "line", blend: c.blend, alpha: alpha})
}

func (c *recordingCanvas) count(op string) int {
	n := 0
	for _, call := range c.calls {
		if call.op == op {
			n++
		}
	}
	return n
}
