package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Chipmunk works in pixels per second; the scene works in pixels per tick
const (
	GravityScale   = 1000.0 // px/s² for a unit gravity vector
	shapeCollision = cp.CollisionType(1)
)

// CPEngine implements Engine on a Chipmunk2D space
type CPEngine struct {
	space    *cp.Space
	tickRate float64
	gravity  mgl64.Vec2
	contacts []Contact
}

// NewCPEngine creates a Chipmunk-backed engine stepping at tickRate ticks per second
func NewCPEngine(tickRate float64) *CPEngine {
	e := &CPEngine{
		space:    cp.NewSpace(),
		tickRate: tickRate,
	}
	e.space.Iterations = 12
	e.SetGravity(DefaultGravityVec)

	// Every shape shares one collision type so each pair is reported once.
	// The space is locked inside the callback, so pairs are buffered and
	// returned after the step.
	handler := e.space.NewCollisionHandler(shapeCollision, shapeCollision)
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		a, b := arb.Bodies()
		ba, okA := a.UserData.(*cpBody)
		bb, okB := b.UserData.(*cpBody)
		if okA && okB {
			// Begin runs before velocities are integrated and impulses applied
			e.contacts = append(e.contacts, Contact{A: ba, B: bb, VA: ba.Velocity(), VB: bb.Velocity()})
		}
		return true
	}
	return e
}

func (e *CPEngine) AddBody(def BodyDef) Body {
	var body *cp.Body
	mass := def.Shape.Area() * def.Material.Density
	if def.Static {
		body = cp.NewStaticBody()
	} else {
		body = cp.NewBody(mass, moment(def.Shape, mass))
	}
	body.SetPosition(cp.Vector{X: def.Position.X(), Y: def.Position.Y()})
	body.SetAngle(def.Angle)

	var shape *cp.Shape
	switch def.Shape.Kind {
	case ShapeCircle:
		shape = cp.NewCircle(body, def.Shape.Radius, cp.Vector{})
	case ShapeBox:
		shape = cp.NewBox(body, def.Shape.W, def.Shape.H, 0)
	default:
		verts := toCP(def.Shape.Vertices())
		shape = cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
	}
	shape.SetElasticity(def.Material.Restitution)
	shape.SetFriction(def.Material.Friction)
	shape.SetCollisionType(shapeCollision)

	b := &cpBody{body: body, shape: shape, engine: e}
	body.UserData = b
	e.space.AddBody(body)
	e.space.AddShape(shape)
	return b
}

func (e *CPEngine) RemoveBody(b Body) {
	cb, ok := b.(*cpBody)
	if !ok || cb.removed {
		return
	}
	cb.removed = true
	e.space.RemoveShape(cb.shape)
	e.space.RemoveBody(cb.body)
}

func (e *CPEngine) BodyAt(p mgl64.Vec2) Body {
	info := e.space.PointQueryNearest(cp.Vector{X: p.X(), Y: p.Y()}, 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return nil
	}
	body := info.Shape.Body()
	if body.GetType() != cp.BODY_DYNAMIC {
		return nil
	}
	if cb, ok := body.UserData.(*cpBody); ok {
		return cb
	}
	return nil
}

func (e *CPEngine) Gravity() mgl64.Vec2 {
	return e.gravity
}

func (e *CPEngine) SetGravity(g mgl64.Vec2) {
	e.gravity = g
	e.space.SetGravity(cp.Vector{X: g.X() * GravityScale, Y: g.Y() * GravityScale})
}

func (e *CPEngine) Step(dt float64) []Contact {
	e.contacts = e.contacts[:0]
	e.space.Step(dt)
	out := make([]Contact, len(e.contacts))
	copy(out, e.contacts)
	return out
}

func (e *CPEngine) Touching(a, b Body) bool {
	ca, okA := a.(*cpBody)
	cb, okB := b.(*cpBody)
	if !okA || !okB || ca.removed || cb.removed {
		return false
	}
	touching := false
	ca.body.EachArbiter(func(arb *cp.Arbiter) {
		x, y := arb.Bodies()
		if (x == ca.body && y == cb.body) || (x == cb.body && y == ca.body) {
			touching = true
		}
	})
	return touching
}

// cpBody adapts a Chipmunk body to the Body interface
type cpBody struct {
	body    *cp.Body
	shape   *cp.Shape
	engine  *CPEngine
	removed bool
}

func (b *cpBody) Position() mgl64.Vec2 {
	p := b.body.Position()
	return mgl64.Vec2{p.X, p.Y}
}

func (b *cpBody) Velocity() mgl64.Vec2 {
	v := b.body.Velocity()
	return mgl64.Vec2{v.X, v.Y}.Mul(1 / b.engine.tickRate)
}

func (b *cpBody) SetVelocity(v mgl64.Vec2) {
	v = v.Mul(b.engine.tickRate)
	b.body.SetVelocity(v.X(), v.Y())
}

func (b *cpBody) ApplyForce(f mgl64.Vec2) {
	impulse := f.Mul(b.engine.tickRate)
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X(), Y: impulse.Y()}, b.body.Position())
}

func (b *cpBody) Mass() float64 {
	return b.body.Mass()
}

func (b *cpBody) Angle() float64 {
	return b.body.Angle()
}

// moment returns the moment of inertia for a shape of the given mass
func moment(d ShapeDef, mass float64) float64 {
	switch d.Kind {
	case ShapeCircle:
		return cp.MomentForCircle(mass, 0, d.Radius, cp.Vector{})
	case ShapeBox:
		return cp.MomentForBox(mass, d.W, d.H)
	}
	verts := toCP(d.Vertices())
	return cp.MomentForPoly(mass, len(verts), verts, cp.Vector{}, 0)
}

func toCP(vs []mgl64.Vec2) []cp.Vector {
	out := make([]cp.Vector, len(vs))
	for i, v := range vs {
		out[i] = cp.Vector{X: v.X(), Y: v.Y()}
	}
	return out
}
