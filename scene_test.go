package main

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewSceneBuildsBoundaries(t *testing.T) {
	s, eng := newTestScene(t)

	if len(s.Boundaries()) != 12 || eng.staticCount() != 12 {
		t.Fatalf("got %d boundaries (%d static bodies), want 12", len(s.Boundaries()), eng.staticCount())
	}
	if !eng.Gravity().ApproxEqual(DefaultGravityVec) || !s.GravityEnabled() {
		t.Errorf("gravity = %v, enabled %t", eng.Gravity(), s.GravityEnabled())
	}
	floor := s.bounds[0].Body.Position()
	if floor != (mgl64.Vec2{400, 600 + WallThickness/2}) {
		t.Errorf("floor at %v", floor)
	}
	for i, b := range s.bounds[8:] {
		want := mgl64.Vec2{800 * (0.125 + 0.25*float64(i)), 600 * 0.7}
		if b.Def.Kind != ShapeCircle || !b.Body.Position().ApproxEqual(want) {
			t.Errorf("peg %d = %v at %v, want circle at %v", i, b.Def.Kind, b.Body.Position(), want)
		}
	}
}

func TestNewSceneSpawnsInitialShapes(t *testing.T) {
	cfg := testConfig()
	cfg.InitialShapes = 5
	s, err := NewScene(&fakeEngine{}, cfg, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Shapes()) != 5 {
		t.Fatalf("got %d shapes, want 5", len(s.Shapes()))
	}
	if s.Particles.Count() != 5*RippleCount {
		t.Errorf("got %d ripple particles, want %d", s.Particles.Count(), 5*RippleCount)
	}
	for _, sh := range s.Shapes() {
		p := sh.Body.Position()
		if p.X() < 0 || p.X() > 800 || p.Y() < 0 || p.Y() > 600*0.3 {
			t.Errorf("shape spawned at %v", p)
		}
	}
}

func TestNewSceneRejectsEmptySurface(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 0
	if _, err := NewScene(&fakeEngine{}, cfg, rand.New(rand.NewSource(1))); !errors.Is(err, ErrNoSurface) {
		t.Fatalf("err = %v, want ErrNoSurface", err)
	}
}

func TestAddShapeOfKind(t *testing.T) {
	s, eng := newTestScene(t)
	sh := s.AddShapeOfKind(PolygonDef(5, 15), 100, 50)

	if len(s.Shapes()) != 1 || len(eng.bodies) != 13 {
		t.Fatalf("shapes %d, bodies %d", len(s.Shapes()), len(eng.bodies))
	}
	if sh.Opacity != 1 || sh.Boundary || sh.Debris {
		t.Errorf("shape = %+v", sh)
	}
	fb := sh.Body.(*fakeBody)
	if fb.def.Static || fb.def.Material != shapeMaterial {
		t.Errorf("body def = %+v", fb.def)
	}
	if s.Particles.Count() != RippleCount {
		t.Errorf("got %d particles, want a ripple", s.Particles.Count())
	}
}

func TestAddShapeKinds(t *testing.T) {
	s, _ := newTestScene(t)
	kinds := make(map[ShapeKind]bool)
	for i := 0; i < 60; i++ {
		sh := s.AddShape(100, 100)
		kinds[sh.Def.Kind] = true
		if sh.Def.Kind == ShapePolygon && (sh.Def.Sides < 3 || sh.Def.Sides > 8) {
			t.Errorf("polygon with %d sides", sh.Def.Sides)
		}
	}
	if len(kinds) != 3 {
		t.Errorf("got kinds %v, want all three", kinds)
	}
}

func TestResizeReplacesBoundaries(t *testing.T) {
	s, eng := newTestScene(t)
	dynamicShape(s, mgl64.Vec2{10, 10}, mgl64.Vec2{})
	old := append([]*Shape(nil), s.bounds...)

	if err := s.Resize(1200, 900); err != nil {
		t.Fatal(err)
	}
	if eng.staticCount() != 12 || len(s.bounds) != 12 {
		t.Fatalf("got %d static bodies, %d boundaries, want 12", eng.staticCount(), len(s.bounds))
	}
	for _, b := range old {
		if !b.Body.(*fakeBody).removed {
			t.Fatalf("old boundary still in engine")
		}
		if _, ok := s.byBody[b.Body]; ok {
			t.Fatalf("old boundary still indexed")
		}
	}
	if len(s.Shapes()) != 1 {
		t.Errorf("resize touched dynamic shapes")
	}
	if w, h := s.Size(); w != 1200 || h != 900 {
		t.Errorf("size = %vx%v", w, h)
	}
}

func TestResizeSameSizeIsNoop(t *testing.T) {
	s, eng := newTestScene(t)
	if err := s.Resize(800, 600); err != nil {
		t.Fatal(err)
	}
	if eng.removed != 0 {
		t.Errorf("removed %d bodies on a same-size resize", eng.removed)
	}
}

func TestResizeRejectsEmptySurface(t *testing.T) {
	s, eng := newTestScene(t)
	err := s.Resize(0, 600)
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("err = %v, want ErrNoSurface", err)
	}
	if eng.removed != 0 || len(s.bounds) != 12 {
		t.Errorf("boundaries changed on a failed resize")
	}
}

func TestReset(t *testing.T) {
	cfg := testConfig()
	cfg.InitialShapes = 3
	eng := &fakeEngine{}
	s, err := NewScene(eng, cfg, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatal(err)
	}
	s.AddShape(50, 50)
	s.ToggleGravity()
	s.Particles.Explosion(10, 10, 1)
	s.Particles.AddTrail(1, 1, sparkWhite, 2)

	s.Reset()

	if len(s.Shapes()) != 3 {
		t.Errorf("got %d shapes after reset, want 3", len(s.Shapes()))
	}
	if len(eng.bodies) != 15 {
		t.Errorf("engine holds %d bodies, want 15", len(eng.bodies))
	}
	if !s.GravityEnabled() || !eng.Gravity().ApproxEqual(DefaultGravityVec) {
		t.Errorf("gravity not restored")
	}
	// 3 spawn ripples plus the centre ripple
	if s.Particles.Count() != 4*RippleCount || len(s.Particles.Trails) != 0 {
		t.Errorf("got %d particles, %d trails", s.Particles.Count(), len(s.Particles.Trails))
	}
}

func TestResetCancelsPendingEffects(t *testing.T) {
	s, eng := newTestScene(t)
	s.mode = ModeGravity
	a := dynamicShape(s, mgl64.Vec2{100, 100}, mgl64.Vec2{10, 0})
	s.HandleCollisions([]Contact{touch(a, s.bounds[0])})

	s.Reset()
	s.clock.Advance(10 * time.Second)

	if !eng.Gravity().ApproxEqual(DefaultGravityVec) {
		t.Errorf("gravity = %v after reset", eng.Gravity())
	}
}

func TestToggleGravity(t *testing.T) {
	s, eng := newTestScene(t)

	s.ToggleGravity()
	if s.GravityEnabled() || eng.Gravity() != (mgl64.Vec2{}) {
		t.Fatalf("gravity = %v, enabled %t", eng.Gravity(), s.GravityEnabled())
	}
	s.ToggleGravity()
	if !s.GravityEnabled() || !eng.Gravity().ApproxEqual(DefaultGravityVec) {
		t.Fatalf("gravity = %v, enabled %t", eng.Gravity(), s.GravityEnabled())
	}
}

func TestToggleGravityCancelsShift(t *testing.T) {
	s, eng := newTestScene(t)
	s.mode = ModeGravity
	a := dynamicShape(s, mgl64.Vec2{100, 100}, mgl64.Vec2{10, 0})
	s.HandleCollisions([]Contact{touch(a, s.bounds[0])})
	s.clock.Advance(5 * GravityStepDelay)

	s.ToggleGravity()
	s.clock.Advance(10 * time.Second)

	if eng.Gravity() != (mgl64.Vec2{}) {
		t.Errorf("gravity = %v after switching off, want zero", eng.Gravity())
	}
}

func TestDrag(t *testing.T) {
	s, eng := newTestScene(t)
	sh := dynamicShape(s, mgl64.Vec2{100, 100}, mgl64.Vec2{})

	if s.BeginDrag(mgl64.Vec2{100, 100}) {
		t.Fatal("drag started on empty space")
	}
	eng.hit = sh.Body
	if !s.BeginDrag(mgl64.Vec2{100, 100}) || !s.Dragging() {
		t.Fatal("drag not started")
	}
	if s.Particles.Count() != RippleCount {
		t.Errorf("got %d particles, want a ripple", s.Particles.Count())
	}

	s.Drag(mgl64.Vec2{140, 60})
	if v := sh.Body.Velocity(); !v.ApproxEqual(mgl64.Vec2{10, -10}) {
		t.Errorf("velocity = %v, want (10, -10)", v)
	}

	s.EndDrag()
	s.Drag(mgl64.Vec2{500, 500})
	if v := sh.Body.Velocity(); !v.ApproxEqual(mgl64.Vec2{10, -10}) {
		t.Errorf("drag after release changed velocity to %v", v)
	}
}

func TestDragIgnoresBoundaries(t *testing.T) {
	s, eng := newTestScene(t)
	eng.hit = s.bounds[8].Body
	if s.BeginDrag(mgl64.Vec2{100, 420}) {
		t.Fatal("boundary grabbed")
	}
}

func TestDragReleasedWhenShapeRemoved(t *testing.T) {
	s, eng := newTestScene(t)
	sh := dynamicShape(s, mgl64.Vec2{100, 100}, mgl64.Vec2{})
	eng.hit = sh.Body
	s.BeginDrag(mgl64.Vec2{100, 100})

	s.removeShape(sh)
	if s.Dragging() {
		t.Fatal("removed shape still held")
	}
	s.removeShape(sh)
	if eng.removed != 1 {
		t.Errorf("engine saw %d removals, want 1", eng.removed)
	}
}

func TestTickOrder(t *testing.T) {
	s, eng := newTestScene(t)
	s.Particles.rng = fixedRand{0}
	a := dynamicShape(s, mgl64.Vec2{100, 100}, mgl64.Vec2{6, 8})
	eng.contacts = []Contact{touch(a, s.bounds[0])}

	s.Tick(time.Second / 60)

	// Bounce at impact 1 boosts speed 10 to 13, then a trail follows the body
	if got := a.Body.Velocity().Len(); math.Abs(got-13) > 1e-9 {
		t.Errorf("speed = %v, want 13", got)
	}
	if len(s.Particles.Trails) != 1 {
		t.Fatalf("got %d trails, want 1", len(s.Particles.Trails))
	}
	if tr := s.Particles.Trails[0]; tr.Lifespan != TrailLifespan-1 {
		t.Errorf("trail lifespan %d, want %d", tr.Lifespan, TrailLifespan-1)
	}
	if n := len(s.Particles.Explosions); n != 3 {
		t.Errorf("got %d sparks, want 3", n)
	}
}

func TestDropShape(t *testing.T) {
	s, _ := newTestScene(t)
	for i := 0; i < 20; i++ {
		sh := s.DropShape()
		p := sh.Body.Position()
		if p.X() < 80 || p.X() > 720 || math.Abs(p.Y()-60) > 1e-9 {
			t.Errorf("dropped at %v", p)
		}
	}
	if len(s.Shapes()) != 20 {
		t.Errorf("got %d shapes, want 20", len(s.Shapes()))
	}
}
