package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind tags the closed set of body outlines
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeBox
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeBox:
		return "box"
	case ShapePolygon:
		return "polygon"
	}
	return "unknown"
}

// ShapeDef describes a body outline. Only the fields of its Kind are used.
type ShapeDef struct {
	Kind   ShapeKind
	Radius float64 // circle, polygon circumradius
	W, H   float64 // box
	Sides  int     // polygon
}

// CircleDef returns a circle outline
func CircleDef(radius float64) ShapeDef {
	return ShapeDef{Kind: ShapeCircle, Radius: radius}
}

// BoxDef returns an axis-aligned rectangle outline centred on the body
func BoxDef(w, h float64) ShapeDef {
	return ShapeDef{Kind: ShapeBox, W: w, H: h}
}

// PolygonDef returns a regular polygon outline; fewer than 3 sides is clamped to 3
func PolygonDef(sides int, radius float64) ShapeDef {
	if sides < 3 {
		sides = 3
	}
	return ShapeDef{Kind: ShapePolygon, Sides: sides, Radius: radius}
}

// Vertices returns the outline in body-local coordinates (nil for circles)
func (d ShapeDef) Vertices() []mgl64.Vec2 {
	switch d.Kind {
	case ShapeBox:
		hw, hh := d.W/2, d.H/2
		return []mgl64.Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	case ShapePolygon:
		verts := make([]mgl64.Vec2, d.Sides)
		for i := range verts {
			a := float64(i) * 2 * math.Pi / float64(d.Sides)
			verts[i] = mgl64.Vec2{math.Cos(a) * d.Radius, math.Sin(a) * d.Radius}
		}
		return verts
	}
	return nil
}

// Area returns the outline area
func (d ShapeDef) Area() float64 {
	switch d.Kind {
	case ShapeCircle:
		return math.Pi * d.Radius * d.Radius
	case ShapeBox:
		return d.W * d.H
	case ShapePolygon:
		n := float64(d.Sides)
		return 0.5 * n * d.Radius * d.Radius * math.Sin(2*math.Pi/n)
	}
	return 0
}

// Material holds the surface properties handed to the engine
type Material struct {
	Restitution float64
	Friction    float64
	Density     float64
}

// BodyDef describes a body to create
type BodyDef struct {
	Shape    ShapeDef
	Position mgl64.Vec2
	Angle    float64
	Static   bool
	Material Material
}

// Body is a live engine body.
// Velocities are in pixels per tick; ApplyForce changes velocity by f/mass
// over one tick.
type Body interface {
	Position() mgl64.Vec2
	Velocity() mgl64.Vec2
	SetVelocity(v mgl64.Vec2)
	ApplyForce(f mgl64.Vec2)
	Mass() float64
	Angle() float64
}

// Contact is a collision-start pair reported by a step.
// VA and VB are the velocities at first touch, before the solver ran.
type Contact struct {
	A, B   Body
	VA, VB mgl64.Vec2
}

// Engine is the rigid-body simulation the scene drives
type Engine interface {
	AddBody(def BodyDef) Body
	RemoveBody(b Body)
	// BodyAt returns the dynamic body under p, or nil
	BodyAt(p mgl64.Vec2) Body
	Gravity() mgl64.Vec2
	SetGravity(g mgl64.Vec2)
	// Step advances the simulation by dt seconds and returns the pairs
	// that started touching during the step
	Step(dt float64) []Contact
	// Touching reports whether a and b were in contact after the last step
	Touching(a, b Body) bool
}

// DefaultGravityVec is the resting downward pull
var DefaultGravityVec = mgl64.Vec2{0, 1}
