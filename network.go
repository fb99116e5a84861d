package main

import (
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Network background constants
const (
	LinkDistance   = 120.0
	MouseRadius    = 150.0
	MouseForce     = 0.4
	NoiseForce     = 0.03
	NoiseScale     = 0.002
	NoiseDrift     = 0.004
	MaxDotSpeed    = 1.2
	LinkAlpha      = 0.5
	PulseLifespan  = 45
	PulseMaxRadius = 90.0
)

// NetworkDot is one node of the background mesh
type NetworkDot struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Pulse is an expanding ring left by a click on the background
type Pulse struct {
	X, Y        float64
	Radius      float64
	Alpha       float64
	Lifespan    int
	MaxLifespan int
}

// Link joins two dots closer than LinkDistance
type Link struct {
	A, B  int
	Alpha float64
}

// Network is the ambient dots-and-lines background.
// It keeps its own rng and mouse model and never touches the scene.
type Network struct {
	Dots          []*NetworkDot
	Pulses        []*Pulse
	width, height float64
	density       float64
	maxDots       int
	rng           *rand.Rand
	noise         *perlin.Perlin
	t             float64
	mouseX        float64
	mouseY        float64
	mouseIn       bool
	Color         color.RGBA
}

// NewNetwork builds a mesh sized for width x height
func NewNetwork(width, height, density float64, maxDots int, seed int64) *Network {
	n := &Network{
		density: density,
		maxDots: maxDots,
		rng:     rand.New(rand.NewSource(seed)),
		noise:   perlin.NewPerlin(2, 2, 3, seed),
		Color:   color.RGBA{148, 163, 184, 255},
	}
	n.Resize(width, height)
	return n
}

// DotCountFor returns how many dots fill an area, capped at maxDots
func DotCountFor(width, height, density float64, maxDots int) int {
	if density <= 0 || width <= 0 || height <= 0 {
		return 0
	}
	count := int(width * height / density)
	if count > maxDots {
		count = maxDots
	}
	return count
}

// Resize rebuilds the dot set for a new area
func (n *Network) Resize(width, height float64) {
	n.width, n.height = width, height
	count := DotCountFor(width, height, n.density, n.maxDots)
	n.Dots = make([]*NetworkDot, count)
	for i := range n.Dots {
		n.Dots[i] = &NetworkDot{
			X:      n.rng.Float64() * width,
			Y:      n.rng.Float64() * height,
			VX:     (n.rng.Float64() - 0.5) * MaxDotSpeed,
			VY:     (n.rng.Float64() - 0.5) * MaxDotSpeed,
			Radius: 1 + n.rng.Float64()*2,
		}
	}
	n.Pulses = n.Pulses[:0]
	log.Printf("[Network] %d dots for %.0fx%.0f", count, width, height)
}

// Update advances the mesh one frame. inside reports whether the cursor
// is over the window; clicked emits a pulse at the cursor.
func (n *Network) Update(mx, my float64, inside, clicked bool) {
	n.mouseX, n.mouseY, n.mouseIn = mx, my, inside
	n.t += NoiseDrift

	for _, d := range n.Dots {
		// Perlin flow field keeps the drift smooth
		a := n.noise.Noise2D(d.X*NoiseScale+n.t, d.Y*NoiseScale) * 2 * math.Pi
		d.VX += math.Cos(a) * NoiseForce
		d.VY += math.Sin(a) * NoiseForce

		if inside {
			dx, dy := d.X-mx, d.Y-my
			dist := math.Hypot(dx, dy)
			if dist > 0 && dist < MouseRadius {
				push := (1 - dist/MouseRadius) * MouseForce
				d.VX += dx / dist * push
				d.VY += dy / dist * push
			}
		}

		if speed := math.Hypot(d.VX, d.VY); speed > MaxDotSpeed {
			d.VX *= MaxDotSpeed / speed
			d.VY *= MaxDotSpeed / speed
		}
		d.X += d.VX
		d.Y += d.VY

		// Bounce at the edges
		if d.X < 0 {
			d.X, d.VX = 0, -d.VX
		} else if d.X > n.width {
			d.X, d.VX = n.width, -d.VX
		}
		if d.Y < 0 {
			d.Y, d.VY = 0, -d.VY
		} else if d.Y > n.height {
			d.Y, d.VY = n.height, -d.VY
		}
	}

	for i := len(n.Pulses) - 1; i >= 0; i-- {
		p := n.Pulses[i]
		p.Lifespan--
		ratio := float64(p.Lifespan) / float64(p.MaxLifespan)
		p.Radius = PulseMaxRadius * (1 - ratio)
		p.Alpha = ratio
		if p.Lifespan <= 0 {
			n.Pulses = append(n.Pulses[:i], n.Pulses[i+1:]...)
		}
	}

	if clicked && inside {
		n.Pulses = append(n.Pulses, &Pulse{X: mx, Y: my, Alpha: 1, Lifespan: PulseLifespan, MaxLifespan: PulseLifespan})
	}
}

// Links returns every dot pair closer than LinkDistance, with alpha
// falling linearly to zero at that distance
func (n *Network) Links() []Link {
	bins := n.buildBins()
	var links []Link
	for i, a := range n.Dots {
		binX := int(a.X / LinkDistance)
		binY := int(a.Y / LinkDistance)

		// Check this bin and 8 neighbors
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range bins[binKey(binX+dx, binY+dy)] {
					if j <= i {
						continue // Each pair once
					}
					b := n.Dots[j]
					dist := math.Hypot(a.X-b.X, a.Y-b.Y)
					if dist < LinkDistance {
						links = append(links, Link{A: i, B: j, Alpha: 1 - dist/LinkDistance})
					}
				}
			}
		}
	}
	return links
}

// buildBins assigns dots to LinkDistance-sized grid cells
func (n *Network) buildBins() map[int][]int {
	bins := make(map[int][]int)
	for i, d := range n.Dots {
		key := binKey(int(d.X/LinkDistance), int(d.Y/LinkDistance))
		bins[key] = append(bins[key], i)
	}
	return bins
}

// binKey packs grid coordinates into one map key
func binKey(x, y int) int {
	return x*10000 + y
}

// Draw renders links, mouse links, dots and pulses
func (n *Network) Draw(c Canvas) {
	c.SetBlend(BlendSourceOver)
	for _, l := range n.Links() {
		a, b := n.Dots[l.A], n.Dots[l.B]
		c.StrokeLine(a.X, a.Y, b.X, b.Y, 1, n.Color, l.Alpha*LinkAlpha)
	}
	if n.mouseIn {
		for _, d := range n.Dots {
			dist := math.Hypot(d.X-n.mouseX, d.Y-n.mouseY)
			if dist < MouseRadius {
				c.StrokeLine(n.mouseX, n.mouseY, d.X, d.Y, 1, n.Color, (1-dist/MouseRadius)*LinkAlpha)
			}
		}
	}
	for _, d := range n.Dots {
		c.FillCircle(d.X, d.Y, d.Radius, n.Color, 0.8)
	}
	for _, p := range n.Pulses {
		c.StrokeCircle(p.X, p.Y, p.Radius, 2, n.Color, p.Alpha)
	}
}
