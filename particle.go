package main

import (
	"image/color"
)

// Particle tuning constants
const (
	MinParticleSize  = 0.5   // Particles below this size are removed
	SizeDecay        = 0.995 // Per-tick size multiplier
	DefaultLifespan  = 60
	DefaultGravity   = 0.02
	DefaultDrag      = 0.98
	TrailLifespan    = 20
	TrailAlpha       = 0.6
	TrailEmitChance  = 0.3
	TrailMinSpeed    = 2.0
	RippleCount      = 12
	RippleRadius     = 15.0
	RippleSpeed      = 2.0
	RippleDamping    = 0.7
	RippleLifespan   = 30
	ShockwaveCount   = 20
	ShockwaveLife    = 15
	MainPerIntensity = 25
)

// Particle struct: a transient visual effect element.
// Alpha is derived from the lifespan ratio on every update and is never
// written independently of it.
type Particle struct {
	X, Y          float64 // Position
	VX, VY        float64 // Velocity
	Size          float64
	Color         color.RGBA
	Alpha         float64
	Lifespan      int // Remaining ticks
	MaxLifespan   int // Initial ticks
	Rotation      float64
	RotationSpeed float64
	Gravity       float64 // Added to VY each tick
	Drag          float64 // Multiplies velocity each tick
}

// LifeRatio returns lifespan / maxLifespan
func (p *Particle) LifeRatio() float64 {
	if p.MaxLifespan <= 0 {
		return 0
	}
	return float64(p.Lifespan) / float64(p.MaxLifespan)
}

// Expired reports whether the particle should be removed
func (p *Particle) Expired() bool {
	return p.Lifespan <= 0 || p.Size < MinParticleSize
}

// ParticleSystem owns the explosion and trail collections.
// Particles are never shared between collections.
type ParticleSystem struct {
	Explosions []*Particle
	Trails     []*Particle
	Palette    []color.RGBA // Colors for explosion main particles
	rng        randSource
}

// randSource is the subset of *rand.Rand the effects need
type randSource interface {
	Float64() float64
	Intn(n int) int
}

// NewParticleSystem creates an empty particle system drawing randomness from rng
func NewParticleSystem(rng randSource) *ParticleSystem {
	return &ParticleSystem{
		Explosions: make([]*Particle, 0, 512),
		Trails:     make([]*Particle, 0, 256),
		Palette:    []color.RGBA{{255, 107, 107, 255}, {255, 190, 90, 255}, {255, 230, 109, 255}},
		rng:        rng,
	}
}

// Count returns the number of live particles in both collections
func (ps *ParticleSystem) Count() int {
	return len(ps.Explosions) + len(ps.Trails)
}

// Clear drops every live particle
func (ps *ParticleSystem) Clear() {
	ps.Explosions = ps.Explosions[:0]
	ps.Trails = ps.Trails[:0]
}
