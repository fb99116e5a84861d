package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// EffectMode selects how collisions are answered
type EffectMode int

const (
	ModeBounce EffectMode = iota
	ModeExplode
	ModeStick
	ModeGravity
)

// Collision effect tuning
const (
	ImpactThreshold   = 2.0  // Minimum relative speed for any effect
	ImpactScale       = 10.0 // Relative speed mapped to full impact
	BounceBoost       = 0.3
	BounceSparkImpact = 0.3
	StickStrength     = 0.3
	StickConnectProb  = 0.2
	ModeRingCount     = 36
	ModeRingLifespan  = 40
	GravityRingCount  = 24
	GravitySteps      = 20
	GravityStepDelay  = 50 * time.Millisecond
	FadeStepDelay     = 50 * time.Millisecond
	FadeStep          = 0.1
)

var modeNames = [...]string{"bounce", "explode", "stick", "gravity"}

var modeColors = [...]color.RGBA{
	mustColor("#4ecdc4"),
	mustColor("#ff6b6b"),
	mustColor("#ffe66d"),
	mustColor("#a78bfa"),
}

func (m EffectMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Color returns the confirmation color of the mode
func (m EffectMode) Color() color.RGBA {
	if m < 0 || int(m) >= len(modeColors) {
		return sparkWhite
	}
	return modeColors[m]
}

// ParseMode maps a mode name to its EffectMode
func ParseMode(name string) (EffectMode, error) {
	for i, n := range modeNames {
		if n == name {
			return EffectMode(i), nil
		}
	}
	return ModeBounce, fmt.Errorf("unknown effect mode %q", name)
}

// Mode returns the current effect mode
func (s *Scene) Mode() EffectMode {
	return s.mode
}

// SetMode records the new mode and confirms it with a ring at the centre
func (s *Scene) SetMode(m EffectMode) {
	s.mode = m
	if m != ModeStick {
		s.stuck = nil
	}
	s.Particles.Ring(s.width/2, s.height/2, ModeRingCount, m.Color(), 4, ModeRingLifespan)
	log.Printf("[Effects] mode -> %s", m)
}

// ImpactForce normalises a collision speed to [0, 1]
func ImpactForce(speed float64) float64 {
	return math.Min(1, speed/ImpactScale)
}

// HandleCollisions answers every collision-start pair according to the mode.
// Speed and impact come from the velocities at first touch.
func (s *Scene) HandleCollisions(contacts []Contact) {
	for _, c := range contacts {
		a, b := s.byBody[c.A], s.byBody[c.B]
		if a == nil || b == nil {
			continue
		}
		if a.Boundary && b.Boundary {
			continue
		}
		speed := c.VA.Sub(c.VB).Len()
		if speed < ImpactThreshold {
			continue
		}
		impact := ImpactForce(speed)
		mid := a.Body.Position().Add(b.Body.Position()).Mul(0.5)

		switch s.mode {
		case ModeBounce:
			s.bounce(a, b, c.VA, c.VB, mid, impact)
		case ModeExplode:
			if !a.Boundary && !b.Boundary {
				s.explode(a, b, mid, impact)
			}
		case ModeStick:
			if !a.Boundary && !b.Boundary {
				s.stick(a, b, impact)
			}
		case ModeGravity:
			s.shiftGravity(mid, impact)
		}
	}
}

// bounce sets each dynamic body's speed to its approach speed times the boost
func (s *Scene) bounce(a, b *Shape, va, vb, mid mgl64.Vec2, impact float64) {
	boost := 1 + BounceBoost*impact
	boostSpeed(a, va, boost)
	boostSpeed(b, vb, boost)
	if impact > BounceSparkImpact {
		s.Particles.Sparks(mid.X(), mid.Y(), 3, 10)
	}
}

// boostSpeed keeps the direction the solver gave the body, or the approach
// direction if the body came to rest
func boostSpeed(sh *Shape, approach mgl64.Vec2, boost float64) {
	if sh.Boundary {
		return
	}
	dir := sh.Body.Velocity()
	if dir.Len() < 1e-9 {
		dir = approach
	}
	if dir.Len() < 1e-9 {
		return
	}
	sh.Body.SetVelocity(dir.Normalize().Mul(approach.Len() * boost))
}

// explode bursts particles at the contact and throws debris bodies
func (s *Scene) explode(a, b *Shape, mid mgl64.Vec2, impact float64) {
	s.Particles.Explosion(mid.X(), mid.Y(), 0.5+2.5*impact)

	// Debris never spawns more debris, otherwise chains grow without bound
	if a.Debris || b.Debris {
		return
	}
	n := int(math.Floor(4*impact)) + 1
	for i := 0; i < n; i++ {
		s.spawnDebris(mid, impact)
	}
}

// spawnDebris adds one small body that fades out and disappears
func (s *Scene) spawnDebris(at mgl64.Vec2, impact float64) {
	def := CircleDef(3 + s.rng.Float64()*3)
	if s.rng.Intn(2) == 0 {
		side := 5 + s.rng.Float64()*5
		def = BoxDef(side, side)
	}
	sh := s.addBody(def, at, s.randomColor(), shapeMaterial)
	sh.Debris = true

	angle := s.rng.Float64() * 2 * math.Pi
	speed := 2 + s.rng.Float64()*4*(1+impact)
	dir := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
	sh.Body.ApplyForce(dir.Mul(speed * sh.Body.Mass()))

	delay := 1500*time.Millisecond + time.Duration(s.rng.Float64()*float64(time.Second))
	s.fadeOut(sh, delay)
}

// fadeOut lowers the opacity in fixed steps after delay, then removes the shape
func (s *Scene) fadeOut(sh *Shape, delay time.Duration) {
	sh.fade.Cancel()
	tr := NewTransition(s.clock)
	sh.fade = tr
	steps := int(math.Ceil(1 / FadeStep))
	for i := 1; i <= steps; i++ {
		opacity := math.Max(0, 1-float64(i)*FadeStep)
		last := i == steps
		tr.After(delay+time.Duration(i)*FadeStepDelay, func() {
			sh.Opacity = opacity
			if last {
				s.removeShape(sh)
			}
		})
	}
}

// stick starts attracting the pair, scaled by impact and each mass.
// The pull repeats every tick while the two stay in contact.
func (s *Scene) stick(a, b *Shape, impact float64) {
	if !attract(a, b, impact) {
		return
	}
	for _, p := range s.stuck {
		if (p.a == a && p.b == b) || (p.a == b && p.b == a) {
			p.impact = impact
			return
		}
	}
	s.stuck = append(s.stuck, &stuckPair{a: a, b: b, impact: impact})

	if s.rng.Float64() < StickConnectProb {
		pa := a.Body.Position()
		at := pa.Add(b.Body.Position().Sub(pa).Mul(0.3))
		s.Particles.Connector(at.X(), at.Y(), a.Color)
	}
}

// stuckPair is a stick-mode pair still pulling on each other
type stuckPair struct {
	a, b   *Shape
	impact float64
}

// sustainStick pulls every stuck pair that is still touching and drops the
// rest. Pairs are dropped when stick mode is left.
func (s *Scene) sustainStick() {
	kept := s.stuck[:0]
	for _, p := range s.stuck {
		if s.mode != ModeStick || s.byBody[p.a.Body] == nil || s.byBody[p.b.Body] == nil {
			continue
		}
		if !s.engine.Touching(p.a.Body, p.b.Body) {
			continue
		}
		attract(p.a, p.b, p.impact)
		kept = append(kept, p)
	}
	for i := len(kept); i < len(s.stuck); i++ {
		s.stuck[i] = nil
	}
	s.stuck = kept
}

// attract applies equal and opposite pulls along the line between the pair.
// Returns false when the centres coincide.
func attract(a, b *Shape, impact float64) bool {
	delta := b.Body.Position().Sub(a.Body.Position())
	dist := delta.Len()
	if dist == 0 {
		return false
	}
	dir := delta.Mul(1 / dist)
	strength := StickStrength * (1 + impact)
	a.Body.ApplyForce(dir.Mul(strength * a.Body.Mass()))
	b.Body.ApplyForce(dir.Mul(-strength * b.Body.Mass()))
	return true
}

// shiftGravity tilts world gravity, then eases it back.
// A new shift cancels the previous one, pending revert included.
func (s *Scene) shiftGravity(mid mgl64.Vec2, impact float64) {
	s.Particles.Ring(mid.X(), mid.Y(), GravityRingCount, ModeGravity.Color(), 3, ModeRingLifespan)

	base := s.baseGravity()
	if base.Len() == 0 {
		return
	}
	s.gravityFx.Cancel()
	tr := NewTransition(s.clock)
	s.gravityFx = tr

	angle := math.Atan2(base.Y(), base.X()) + (s.rng.Float64()-0.5)*math.Pi*impact
	target := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(base.Len())
	current := s.engine.Gravity()
	tr.Tween(0, current, target, GravitySteps, GravityStepDelay, ease.InOutCubic, s.engine.SetGravity)

	revert := 1500*time.Millisecond + time.Duration(impact*float64(time.Second))
	tr.Tween(revert, target, base, GravitySteps, GravityStepDelay, ease.InOutCubic, s.engine.SetGravity)
}
