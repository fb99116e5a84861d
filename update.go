package main

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Update advances every particle by one tick.
// Both collections are walked in reverse so removal can happen in place.
func (ps *ParticleSystem) Update() {
	for i := len(ps.Explosions) - 1; i >= 0; i-- {
		p := ps.Explosions[i]
		p.X += p.VX
		p.Y += p.VY
		p.VY += p.Gravity
		p.VX *= p.Drag
		p.VY *= p.Drag
		p.Rotation += p.RotationSpeed
		p.Size *= SizeDecay

		p.Lifespan--
		ratio := p.LifeRatio()
		p.Alpha = ratio * ratio

		if p.Expired() {
			ps.Explosions = removeAt(ps.Explosions, i)
		}
	}

	// Trails are stationary; alpha is recomputed at draw time
	for i := len(ps.Trails) - 1; i >= 0; i-- {
		p := ps.Trails[i]
		p.Lifespan--
		if p.Lifespan <= 0 {
			ps.Trails = removeAt(ps.Trails, i)
		}
	}
}

// EmitTrails drops one trail particle behind every fast dynamic shape.
// The roll happens once per tick for the whole set.
func (ps *ParticleSystem) EmitTrails(shapes []*Shape) {
	if ps.rng.Float64() >= TrailEmitChance {
		return
	}
	for _, s := range shapes {
		speed := s.Body.Velocity().Len()
		if speed <= TrailMinSpeed {
			continue
		}
		pos := s.Body.Position()
		ps.AddTrail(pos.X(), pos.Y(), s.Color, mgl64.Clamp(speed, 1, 5))
	}
}

// removeAt deletes index i, keeping order
func removeAt(ps []*Particle, i int) []*Particle {
	copy(ps[i:], ps[i+1:])
	ps[len(ps)-1] = nil
	return ps[:len(ps)-1]
}
