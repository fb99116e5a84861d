package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Scene layout and materials
const (
	WallThickness  = 40.0
	PlatformHeight = 12.0
	PegRadius      = 12.0
	MinShapeSize   = 20.0
	MaxShapeSize   = 40.0
	DragStiffness  = 0.25 // Fraction of the cursor offset applied as velocity per tick
)

var (
	shapeMaterial    = Material{Restitution: 0.6, Friction: 0.1, Density: 0.001}
	boundaryMaterial = Material{Restitution: 0.4, Friction: 0.3, Density: 0.001}
)

// Shape is the scene's record of one engine body
type Shape struct {
	Def      ShapeDef
	Body     Body
	Color    color.RGBA
	Opacity  float64
	Boundary bool
	Debris   bool
	fade     *Transition
}

// Scene owns the playground state: bodies, boundaries, effect mode,
// gravity and particles. The engine is injected.
type Scene struct {
	engine        Engine
	Particles     *ParticleSystem
	clock         *Clock
	rng           *rand.Rand
	width, height float64
	shapes        []*Shape // Dynamic bodies, debris included
	bounds        []*Shape
	byBody        map[Body]*Shape
	mode          EffectMode
	gravityOn     bool
	gravityFx     *Transition
	stuck         []*stuckPair
	palette       []color.RGBA
	initialShapes int
	dragging      *Shape
}

// NewScene builds the boundaries and the initial shapes
func NewScene(engine Engine, cfg Config, rng *rand.Rand) (*Scene, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("new scene: %w", ErrNoSurface)
	}
	palette, err := ParsePalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("new scene: empty palette")
	}
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}

	s := &Scene{
		engine:        engine,
		Particles:     NewParticleSystem(rng),
		clock:         NewClock(),
		rng:           rng,
		width:         float64(cfg.Width),
		height:        float64(cfg.Height),
		byBody:        make(map[Body]*Shape),
		mode:          mode,
		gravityOn:     true,
		palette:       palette,
		initialShapes: cfg.InitialShapes,
	}
	s.engine.SetGravity(DefaultGravityVec)
	s.buildBoundaries()
	s.spawnInitial()
	return s, nil
}

// Size returns the scene dimensions
func (s *Scene) Size() (float64, float64) {
	return s.width, s.height
}

// Shapes returns the live dynamic shapes
func (s *Scene) Shapes() []*Shape {
	return s.shapes
}

// Boundaries returns the static boundary shapes
func (s *Scene) Boundaries() []*Shape {
	return s.bounds
}

// GravityEnabled reports whether world gravity is switched on
func (s *Scene) GravityEnabled() bool {
	return s.gravityOn
}

// Tick runs one frame: physics step, held stick pulls, collision effects,
// timers, then particles
func (s *Scene) Tick(dt time.Duration) {
	contacts := s.engine.Step(dt.Seconds())
	s.sustainStick()
	s.HandleCollisions(contacts)
	s.clock.Advance(dt)
	s.Particles.EmitTrails(s.shapes)
	s.Particles.Update()
}

// AddShape drops a random shape at (x, y) with a ripple
func (s *Scene) AddShape(x, y float64) *Shape {
	size := MinShapeSize + s.rng.Float64()*(MaxShapeSize-MinShapeSize)
	var def ShapeDef
	switch ShapeKind(s.rng.Intn(3)) {
	case ShapeCircle:
		def = CircleDef(size / 2)
	case ShapeBox:
		def = BoxDef(size, size)
	default:
		def = PolygonDef(3+s.rng.Intn(6), size/2)
	}
	return s.AddShapeOfKind(def, x, y)
}

// DropShape adds a random shape at a random x near the top of the scene
func (s *Scene) DropShape() *Shape {
	return s.AddShape(s.width*(0.1+0.8*s.rng.Float64()), s.height*0.1)
}

// AddShapeOfKind drops a shape with the given outline at (x, y) with a ripple
func (s *Scene) AddShapeOfKind(def ShapeDef, x, y float64) *Shape {
	sh := s.addBody(def, mgl64.Vec2{x, y}, s.randomColor(), shapeMaterial)
	s.Particles.Ripple(x, y, sh.Color)
	return sh
}

// Reset clears every dynamic body, effect and particle and respawns the
// initial shapes
func (s *Scene) Reset() {
	for _, sh := range append([]*Shape(nil), s.shapes...) {
		s.removeShape(sh)
	}
	s.dragging = nil
	s.stuck = nil
	s.gravityFx.Cancel()
	s.gravityFx = nil
	s.gravityOn = true
	s.engine.SetGravity(DefaultGravityVec)
	s.Particles.Clear()
	s.spawnInitial()
	s.Particles.Ripple(s.width/2, s.height/2, rippleBlue)
	log.Printf("[Scene] reset with %d shapes", len(s.shapes))
}

// ToggleGravity switches world gravity between the default pull and zero.
// Any gravity shift in flight is cancelled.
func (s *Scene) ToggleGravity() {
	s.gravityFx.Cancel()
	s.gravityFx = nil
	s.gravityOn = !s.gravityOn
	s.engine.SetGravity(s.baseGravity())
	log.Printf("[Scene] gravity on=%t", s.gravityOn)
}

// Resize replaces every boundary to fit the new size.
// All old boundaries are removed before any new one is created.
func (s *Scene) Resize(w, h float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize to %.0fx%.0f: %w", w, h, ErrNoSurface)
	}
	if w == s.width && h == s.height {
		return nil
	}
	for _, b := range s.bounds {
		s.engine.RemoveBody(b.Body)
		delete(s.byBody, b.Body)
	}
	s.bounds = s.bounds[:0]
	s.width, s.height = w, h
	s.buildBoundaries()
	log.Printf("[Scene] resized to %.0fx%.0f, %d boundaries", w, h, len(s.bounds))
	return nil
}

// BeginDrag grabs the dynamic shape under p. Returns false if there is none.
func (s *Scene) BeginDrag(p mgl64.Vec2) bool {
	body := s.engine.BodyAt(p)
	if body == nil {
		return false
	}
	sh := s.byBody[body]
	if sh == nil || sh.Boundary {
		return false
	}
	s.dragging = sh
	s.Particles.Ripple(p.X(), p.Y(), sh.Color)
	return true
}

// Drag pulls the grabbed shape toward p
func (s *Scene) Drag(p mgl64.Vec2) {
	if s.dragging == nil {
		return
	}
	if _, ok := s.byBody[s.dragging.Body]; !ok {
		s.dragging = nil
		return
	}
	s.dragging.Body.SetVelocity(p.Sub(s.dragging.Body.Position()).Mul(DragStiffness))
}

// EndDrag releases the grabbed shape
func (s *Scene) EndDrag() {
	s.dragging = nil
}

// Dragging reports whether a shape is held
func (s *Scene) Dragging() bool {
	return s.dragging != nil
}

func (s *Scene) baseGravity() mgl64.Vec2 {
	if s.gravityOn {
		return DefaultGravityVec
	}
	return mgl64.Vec2{}
}

func (s *Scene) randomColor() color.RGBA {
	return s.palette[s.rng.Intn(len(s.palette))]
}

func (s *Scene) addBody(def ShapeDef, at mgl64.Vec2, c color.RGBA, m Material) *Shape {
	body := s.engine.AddBody(BodyDef{
		Shape:    def,
		Position: at,
		Angle:    s.rng.Float64() * 2 * math.Pi,
		Material: m,
	})
	sh := &Shape{Def: def, Body: body, Color: c, Opacity: 1}
	s.shapes = append(s.shapes, sh)
	s.byBody[body] = sh
	return sh
}

func (s *Scene) addBoundary(def ShapeDef, at mgl64.Vec2, angle float64) {
	body := s.engine.AddBody(BodyDef{
		Shape:    def,
		Position: at,
		Angle:    angle,
		Static:   true,
		Material: boundaryMaterial,
	})
	sh := &Shape{Def: def, Body: body, Color: color.RGBA{71, 85, 105, 255}, Opacity: 1, Boundary: true}
	s.bounds = append(s.bounds, sh)
	s.byBody[body] = sh
}

// removeShape takes a dynamic shape out of the engine and the scene.
// Removing an already removed shape is a no-op.
func (s *Scene) removeShape(sh *Shape) {
	if _, ok := s.byBody[sh.Body]; !ok {
		return
	}
	sh.fade.Cancel()
	s.engine.RemoveBody(sh.Body)
	delete(s.byBody, sh.Body)
	for i, o := range s.shapes {
		if o == sh {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			break
		}
	}
	if s.dragging == sh {
		s.dragging = nil
	}
}

// buildBoundaries lays out four walls, four tilted platforms and four pegs
func (s *Scene) buildBoundaries() {
	w, h := s.width, s.height
	t := WallThickness

	s.addBoundary(BoxDef(w+2*t, t), mgl64.Vec2{w / 2, h + t/2}, 0) // floor
	s.addBoundary(BoxDef(w+2*t, t), mgl64.Vec2{w / 2, -t / 2}, 0)  // ceiling
	s.addBoundary(BoxDef(t, h+2*t), mgl64.Vec2{-t / 2, h / 2}, 0)  // left
	s.addBoundary(BoxDef(t, h+2*t), mgl64.Vec2{w + t/2, h / 2}, 0) // right

	for i := 0; i < 4; i++ {
		x := w * (0.2 + 0.2*float64(i))
		angle := 0.2
		if i%2 == 1 {
			angle = -0.2
		}
		s.addBoundary(BoxDef(w*0.1, PlatformHeight), mgl64.Vec2{x, h * 0.45}, angle)
	}
	for i := 0; i < 4; i++ {
		x := w * (0.125 + 0.25*float64(i))
		s.addBoundary(CircleDef(PegRadius), mgl64.Vec2{x, h * 0.7}, 0)
	}
}

func (s *Scene) spawnInitial() {
	for i := 0; i < s.initialShapes; i++ {
		x := s.width * (0.1 + 0.8*s.rng.Float64())
		y := s.height * (0.05 + 0.25*s.rng.Float64())
		s.AddShape(x, y)
	}
}
