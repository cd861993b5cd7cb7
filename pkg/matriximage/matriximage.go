// Package matriximage turns an occupancy grid into a picture of the LED
// matrix: one pixel per LED, optionally upscaled for viewing, written as
// PNG.
package matriximage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// ErrBadColor is returned by ParseHex for malformed color strings.
var ErrBadColor = errors.New("matriximage: bad color")

// GridReader is the read side of an occupancy grid, row 0 at the bottom.
type GridReader interface {
	Width() int
	At(x, y int) bool
}

// Palette holds the two LED colors.
type Palette struct {
	On  color.Color
	Off color.Color
}

// DefaultPalette is the traffic light look: dark goldenrod LEDs on a
// near-black panel.
func DefaultPalette() Palette {
	return Palette{
		On:  color.RGBA{R: 0xb8, G: 0x86, B: 0x0b, A: 0xff},
		Off: color.RGBA{R: 35, G: 35, B: 35, A: 0xff},
	}
}

func (p Palette) colors() color.Palette {
	on, off := p.On, p.Off
	if on == nil {
		on = DefaultPalette().On
	}
	if off == nil {
		off = DefaultPalette().Off
	}
	return color.Palette{off, on}
}

// Image draws g at one pixel per cell. The picture is flipped so grid row 0
// ends up on the bottom pixel row.
func Image(g GridReader, p Palette) *image.Paletted {
	w := g.Width()
	img := image.NewPaletted(image.Rect(0, 0, w, w), p.colors())
	for y := 0; y < w; y++ {
		row := img.Pix[(w-1-y)*img.Stride:]
		for x := 0; x < w; x++ {
			if g.At(x, y) {
				row[x] = 1
			}
		}
	}
	return img
}

// Scaled draws g and upscales it by scale with nearest-neighbour sampling,
// so every LED becomes a scale×scale block. A scale below 2 returns the
// unscaled image.
func Scaled(g GridReader, p Palette, scale int) image.Image {
	src := Image(g, p)
	if scale < 2 {
		return src
	}
	b := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale), src.Palette)
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// WritePNG encodes the scaled matrix picture to w.
func WritePNG(w io.Writer, g GridReader, p Palette, scale int) error {
	if err := png.Encode(w, Scaled(g, p, scale)); err != nil {
		return fmt.Errorf("matriximage: encode png: %w", err)
	}
	return nil
}

// SavePNG writes the scaled matrix picture to the file at path.
func SavePNG(path string, g GridReader, p Palette, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("matriximage: %w", err)
	}
	if err := WritePNG(f, g, p, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParseHex parses "#rrggbb" or "rrggbb" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
