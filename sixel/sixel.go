// Package sixel implements an incremental SIXEL raster accumulator: a
// side state machine that turns per-band sixel command bytes into pixel
// images for the renderer, without ever holding a whole payload in
// memory at once.
//
// The pixel-plotting and palette math here are adapted from
// github.com/danielgatis/go-headless-term's batch-oriented sixel.go
// (ParseSixel/drawSixel/hlsToRGB); this package restructures the same
// math behind an incremental Aspect/Enable/Define/Start/Next/Draw
// surface that a DCS parser can drive one data byte at a time.
package sixel

import "image/color"

// Image is a sparse pixel map accumulated one band at a time. TileW and
// TileH are recorded but pixels are not split into tiles.
type Image struct {
	TileW, TileH int
	pixels       map[int]map[int]color.RGBA
	maxX, maxY   int
}

func newImage(tileW, tileH int) *Image {
	return &Image{TileW: tileW, TileH: tileH, pixels: make(map[int]map[int]color.RGBA)}
}

func (img *Image) set(x, y int, c color.RGBA) {
	row := img.pixels[y]
	if row == nil {
		row = make(map[int]color.RGBA)
		img.pixels[y] = row
	}
	row[x] = c
	if x > img.maxX {
		img.maxX = x
	}
	if y > img.maxY {
		img.maxY = y
	}
}

// Bounds reports the current pixel extent of the accumulated image.
func (img *Image) Bounds() (width, height int) {
	if len(img.pixels) == 0 {
		return 0, 0
	}
	return img.maxX + 1, img.maxY + 1
}

// At returns the color at (x,y), and whether any pixel was ever written
// there.
func (img *Image) At(x, y int) (color.RGBA, bool) {
	row, ok := img.pixels[y]
	if !ok {
		return color.RGBA{}, false
	}
	c, ok := row[x]
	return c, ok
}

// RGBA renders the accumulated image to a flat RGBA byte buffer, padding
// untouched pixels with bg unless transparent is set (in which case they
// are left fully transparent).
func (img *Image) RGBA(bg color.RGBA, transparent bool) (width, height int, data []byte) {
	width, height = img.Bounds()
	if width == 0 || height == 0 {
		return 0, 0, nil
	}
	data = make([]byte, width*height*4)
	if !transparent {
		for i := 0; i < width*height; i++ {
			data[i*4+0] = bg.R
			data[i*4+1] = bg.G
			data[i*4+2] = bg.B
			data[i*4+3] = bg.A
		}
	}
	for y, row := range img.pixels {
		if y < 0 || y >= height {
			continue
		}
		for x, c := range row {
			if x < 0 || x >= width {
				continue
			}
			off := (y*width + x) * 4
			data[off+0] = c.R
			data[off+1] = c.G
			data[off+2] = c.B
			data[off+3] = c.A
		}
	}
	return width, height, data
}

// Accumulator is the SIXEL raster state machine described by the parser:
// aspect ratio, pad-background flag, a palette, a pen position in pixel
// coordinates, and the image under construction.
type Accumulator struct {
	aspectN, aspectM int
	padBackground    bool
	background       color.RGBA

	palette  map[int]color.RGBA
	selected int

	x, y int

	img *Image
}

// NewAccumulator returns an accumulator with the default VGA palette and
// pen at the origin. background is used to pad unset bits when padding
// is enabled via PadBackground.
func NewAccumulator(background color.RGBA) *Accumulator {
	a := &Accumulator{
		palette:    defaultPalette(),
		background: background,
	}
	a.img = newImage(1, 6)
	return a
}

// Aspect sets the pixel aspect ratio (numerator/denominator); values
// <= 0 are treated as 1. It does not change background padding, which
// is set separately by PadBackground.
func (a *Accumulator) Aspect(n, m int) {
	if n <= 0 {
		n = 1
	}
	if m <= 0 {
		m = 1
	}
	a.aspectN, a.aspectM = n, m
}

// PadBackground sets whether Draw should paint the background color for
// unset bits rather than leaving them untouched.
func (a *Accumulator) PadBackground(pad bool) {
	a.padBackground = pad
}

// Enable selects palette entry id as the current drawing color.
func (a *Accumulator) Enable(id int) {
	a.selected = id
}

// Define assigns c to palette entry id.
func (a *Accumulator) Define(id int, c color.Color) {
	r, g, b, al := c.RGBA()
	a.palette[id] = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(al >> 8)}
}

// Start begins a new sixel row: the pen's column resets to 0.
func (a *Accumulator) Start() {
	a.x = 0
}

// Next advances the pen to the next band: y moves down by 6 rows
// (scaled by the vertical aspect component) and x resets to 0.
func (a *Accumulator) Next() {
	a.x = 0
	step := 6
	if a.aspectM > 1 {
		step = 6 * a.aspectM
	}
	a.y += step
}

// Draw plots one sixel data byte (range '?'..'~', encoding 6 vertical
// bits) at the current pen column in the selected color, then advances
// the pen one column. count repeats the same column count times, for
// the '!' repeat-introducer form.
func (a *Accumulator) Draw(b byte, count int) {
	if b < '?' || b > '~' {
		return
	}
	if count <= 0 {
		count = 1
	}
	bits := b - '?'
	c := a.colorFor(a.selected)
	for i := 0; i < count; i++ {
		for bit := 0; bit < 6; bit++ {
			if bits&(1<<bit) != 0 {
				a.img.set(a.x, a.y+bit, c)
			} else if a.padBackground {
				a.img.set(a.x, a.y+bit, a.background)
			}
		}
		a.x++
	}
}

func (a *Accumulator) colorFor(id int) color.RGBA {
	if c, ok := a.palette[id]; ok {
		return c
	}
	return a.palette[0]
}

// Image returns the accumulated image.
func (a *Accumulator) Image() *Image { return a.img }

// ColorSpace selects how DefineColor's v1/v2/v3 triple is interpreted.
type ColorSpace int

const (
	SpaceHLS ColorSpace = iota
	SpaceRGBPercent
	SpaceRGBA
)

// DefineColor parses a DEC color-introducer triple in the given space
// and assigns the result to palette entry id. HLS uses hue in degrees
// (0-360) and lightness/saturation as percentages (0-100); RGBPercent
// uses 0-100 percentages per channel; RGBA uses 0-255 per channel plus
// alpha.
func (a *Accumulator) DefineColor(id int, space ColorSpace, v1, v2, v3, v4 int) {
	switch space {
	case SpaceHLS:
		a.palette[id] = hlsToRGBA(v1, v2, v3)
	case SpaceRGBA:
		a.palette[id] = color.RGBA{R: uint8(clamp8(v1)), G: uint8(clamp8(v2)), B: uint8(clamp8(v3)), A: uint8(clamp8(v4))}
	default:
		a.palette[id] = color.RGBA{
			R: uint8(v1 * 255 / 100),
			G: uint8(v2 * 255 / 100),
			B: uint8(v3 * 255 / 100),
			A: 255,
		}
	}
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func defaultPalette() map[int]color.RGBA {
	p := make(map[int]color.RGBA, 256)
	vga := []color.RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 205, A: 255},
		{R: 205, G: 0, B: 0, A: 255},
		{R: 205, G: 0, B: 205, A: 255},
		{R: 0, G: 205, B: 0, A: 255},
		{R: 0, G: 205, B: 205, A: 255},
		{R: 205, G: 205, B: 0, A: 255},
		{R: 205, G: 205, B: 205, A: 255},
		{R: 0, G: 0, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 255, G: 0, B: 255, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 255, B: 255, A: 255},
		{R: 255, G: 255, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	for i, c := range vga {
		p[i] = c
	}
	for i := 16; i < 256; i++ {
		gray := uint8((i - 16) * 255 / 239)
		p[i] = color.RGBA{R: gray, G: gray, B: gray, A: 255}
	}
	return p
}

// hlsToRGBA converts Sixel's non-standard HLS (hue 0-360 with blue=0,
// red=120, green=240; lightness/saturation 0-100) to RGBA.
func hlsToRGBA(h, l, s int) color.RGBA {
	if s == 0 {
		v := uint8(l * 255 / 100)
		return color.RGBA{R: v, G: v, B: v, A: 255}
	}
	hNorm := float64(h) / 360.0
	lNorm := float64(l) / 100.0
	sNorm := float64(s) / 100.0

	hNorm += 2.0 / 3.0
	if hNorm >= 1.0 {
		hNorm -= 1.0
	}

	var q float64
	if lNorm < 0.5 {
		q = lNorm * (1 + sNorm)
	} else {
		q = lNorm + sNorm - lNorm*sNorm
	}
	p := 2*lNorm - q

	r := hueToRGB(p, q, hNorm+1.0/3.0)
	g := hueToRGB(p, q, hNorm)
	b := hueToRGB(p, q, hNorm-1.0/3.0)

	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 255}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
