package main

import (
	"image/color"
	"math"
)

var (
	sparkWhite = color.RGBA{255, 255, 255, 255}
	rippleBlue = color.RGBA{120, 200, 255, 255}
)

// NewExplosionParticle builds a particle moving at speed along angle.
// Lifespan, gravity and drag start at their defaults; callers tweak them
// for spark, shockwave and ring variants.
func (ps *ParticleSystem) NewExplosionParticle(x, y float64, c color.RGBA, size, speed, angle float64) *Particle {
	return &Particle{
		X:             x,
		Y:             y,
		VX:            math.Cos(angle) * speed,
		VY:            math.Sin(angle) * speed,
		Size:          size,
		Color:         c,
		Alpha:         1,
		Lifespan:      DefaultLifespan,
		MaxLifespan:   DefaultLifespan,
		Rotation:      ps.rng.Float64() * 2 * math.Pi,
		RotationSpeed: (ps.rng.Float64() - 0.5) * 0.2,
		Gravity:       DefaultGravity,
		Drag:          DefaultDrag,
	}
}

// NewTrailParticle builds a stationary trail marker
func (ps *ParticleSystem) NewTrailParticle(x, y float64, c color.RGBA, size float64) *Particle {
	p := &Particle{
		X:           x,
		Y:           y,
		Size:        size,
		Color:       c,
		Lifespan:    TrailLifespan,
		MaxLifespan: TrailLifespan,
	}
	p.Alpha = TrailAlpha * p.LifeRatio()
	return p
}

// spawn appends an explosion-type particle with an explicit lifespan
func (ps *ParticleSystem) spawn(p *Particle, lifespan int) *Particle {
	p.Lifespan = lifespan
	p.MaxLifespan = lifespan
	ps.Explosions = append(ps.Explosions, p)
	return p
}

// Ripple emits RippleCount particles on a circle of RippleRadius around (x, y)
func (ps *ParticleSystem) Ripple(x, y float64, c color.RGBA) {
	step := 2 * math.Pi / RippleCount
	for i := 0; i < RippleCount; i++ {
		angle := float64(i) * step
		px := x + math.Cos(angle)*RippleRadius
		py := y + math.Sin(angle)*RippleRadius
		p := ps.NewExplosionParticle(px, py, c, 3, RippleSpeed*RippleDamping, angle)
		p.Gravity = 0
		ps.spawn(p, RippleLifespan)
	}
}

// Explosion emits main, spark and shockwave groups scaled by intensity
func (ps *ParticleSystem) Explosion(x, y, intensity float64) {
	mainCount := int(math.Floor(MainPerIntensity * intensity))
	for i := 0; i < mainCount; i++ {
		c := ps.Palette[ps.rng.Intn(len(ps.Palette))]
		size := (2 + ps.rng.Float64()*4) * math.Max(intensity, 0.5)
		speed := (1 + ps.rng.Float64()*4) * intensity
		angle := ps.rng.Float64() * 2 * math.Pi
		p := ps.NewExplosionParticle(x, y, c, size, speed, angle)
		ps.spawn(p, 40+int(ps.rng.Float64()*40*intensity))
	}

	// Sparks: faster, smaller, short-lived
	for i := 0; i < mainCount/2; i++ {
		speed := (3 + ps.rng.Float64()*5) * intensity
		angle := ps.rng.Float64() * 2 * math.Pi
		p := ps.NewExplosionParticle(x, y, sparkWhite, 1+ps.rng.Float64()*2, speed, angle)
		ps.spawn(p, 20+ps.rng.Intn(21))
	}

	// Shockwave ring
	step := 2 * math.Pi / ShockwaveCount
	for i := 0; i < ShockwaveCount; i++ {
		p := ps.NewExplosionParticle(x, y, sparkWhite, 3, 3*intensity, float64(i)*step)
		p.Gravity = 0
		p.Drag = 0.92
		ps.spawn(p, ShockwaveLife)
	}
}

// Ring emits count zero-gravity particles evenly spaced in angle
func (ps *ParticleSystem) Ring(x, y float64, count int, c color.RGBA, speed float64, lifespan int) {
	if count <= 0 {
		return
	}
	step := 2 * math.Pi / float64(count)
	for i := 0; i < count; i++ {
		p := ps.NewExplosionParticle(x, y, c, 4, speed, float64(i)*step)
		p.Gravity = 0
		ps.spawn(p, lifespan)
	}
}

// Sparks emits n small white particles in random directions
func (ps *ParticleSystem) Sparks(x, y float64, n, lifespan int) {
	for i := 0; i < n; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		p := ps.NewExplosionParticle(x, y, sparkWhite, 2, 1+ps.rng.Float64()*2, angle)
		ps.spawn(p, lifespan)
	}
}

// Connector emits one stationary particle marking a stick joint
func (ps *ParticleSystem) Connector(x, y float64, c color.RGBA) {
	p := ps.NewExplosionParticle(x, y, c, 4, 0, 0)
	p.Gravity = 0
	p.RotationSpeed = 0
	ps.spawn(p, 30)
}

// AddTrail appends a trail particle
func (ps *ParticleSystem) AddTrail(x, y float64, c color.RGBA, size float64) {
	ps.Trails = append(ps.Trails, ps.NewTrailParticle(x, y, c, size))
}
