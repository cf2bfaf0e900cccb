// Package asset holds in-memory bitmap resources consumed by the render core.
// Decoding from disk is left to the caller; sprites here are built from
// character art so the terminal demo ships without binary assets.
package asset

import (
	"fmt"

	"github.com/lixenwraith/flappy-term/core"
)

// Transparent marks art cells that are skipped during drawing
const Transparent = '.'

// Pixel is a single sprite cell
type Pixel struct {
	Color  core.RGB
	Opaque bool
}

// Sprite is a loaded bitmap addressed in cells, row-major
type Sprite struct {
	Name   string
	Width  int
	Height int
	pixels []Pixel
}

// At returns the pixel at (x, y); out-of-range coordinates are transparent
func (s *Sprite) At(x, y int) Pixel {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return Pixel{}
	}
	return s.pixels[y*s.Width+x]
}

// ParseSprite builds a sprite from rows of character art
// Every rune other than Transparent must exist in palette; rows must share one width
func ParseSprite(name string, art []string, palette map[rune]core.RGB) (*Sprite, error) {
	if len(art) == 0 {
		return nil, fmt.Errorf("sprite %q: empty art", name)
	}
	width := len([]rune(art[0]))
	s := &Sprite{
		Name:   name,
		Width:  width,
		Height: len(art),
		pixels: make([]Pixel, 0, width*len(art)),
	}
	for y, row := range art {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("sprite %q: row %d has width %d, want %d", name, y, len(runes), width)
		}
		for x, r := range runes {
			if r == Transparent {
				s.pixels = append(s.pixels, Pixel{})
				continue
			}
			c, ok := palette[r]
			if !ok {
				return nil, fmt.Errorf("sprite %q: no palette entry for %q at (%d,%d)", name, r, x, y)
			}
			s.pixels = append(s.pixels, Pixel{Color: c, Opaque: true})
		}
	}
	return s, nil
}

// MustParseSprite is ParseSprite for built-in art, panicking on malformed input
func MustParseSprite(name string, art []string, palette map[rune]core.RGB) *Sprite {
	s, err := ParseSprite(name, art, palette)
	if err != nil {
		panic(err)
	}
	return s
}

// Fill returns a solid sprite of the given dimensions
func Fill(name string, width, height int, c core.RGB) *Sprite {
	s := &Sprite{Name: name, Width: width, Height: height, pixels: make([]Pixel, width*height)}
	for i := range s.pixels {
		s.pixels[i] = Pixel{Color: c, Opaque: true}
	}
	return s
}
