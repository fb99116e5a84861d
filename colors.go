package main

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor converts a "#rrggbb" or "#rgb" string to an opaque RGBA
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// ParsePalette parses every entry of hexes
func ParsePalette(hexes []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseColor(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// mustColor is for package-level color literals only
func mustColor(hex string) color.RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// blend mixes a toward b by t in RGB space
func blend(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	return color.RGBA{r, g, bl, 255}
}
