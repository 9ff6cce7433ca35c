// Rasterization in this file is adapted from
// github.com/danielgatis/go-headless-term's screenshot.go: the same
// per-cell fg/bg resolution, reverse-video swap, dim attenuation,
// underline/strike overlay, and inverted-block cursor, rebuilt over
// grid.CellView/grid.Cursor instead of a direct buffer reference.
package rendercache

import (
	"image"
	"image/color"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gridterm/gridterm/grid"
	"github.com/gridterm/gridterm/term"
)

// Snapshot is the minimal read surface ScreenshotWithConfig needs from a
// live terminal: the cell grid, its dimensions, and the cursor.
type Snapshot interface {
	Cols() int
	Rows() int
	Cursor() grid.Cursor
	Iter(area grid.Rect) []grid.CellView
}

// ScreenshotConfig controls how a Snapshot is rasterized to an image.
// Every field is optional; a zero ScreenshotConfig renders with
// basicfont.Face7x13 and the package default palette.
type ScreenshotConfig struct {
	Font font.Face

	DefaultFG   *color.RGBA
	DefaultBG   *color.RGBA
	CursorColor *color.RGBA
	ShowCursor  *bool

	CellWidth  int
	CellHeight int
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from a reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Screenshot rasterizes snap with default settings: basicfont, the
// package default palette, cursor shown as an inverted block.
func Screenshot(snap Snapshot) *image.RGBA {
	return ScreenshotWithConfig(snap, &ScreenshotConfig{})
}

// ScreenshotWithConfig rasterizes snap to an RGBA image for golden-file
// comparisons or debug dumps. It is a plain function over the Snapshot
// interface rather than a Terminal method, so it can run against any
// grid-shaped read view without taking the terminal's lock itself;
// callers hold whatever lock their Snapshot implementation requires.
func ScreenshotWithConfig(snap Snapshot, cfg *ScreenshotConfig) *image.RGBA {
	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}

	cellWidth, cellHeight := cfg.CellWidth, cfg.CellHeight
	if cellWidth == 0 || cellHeight == 0 {
		metrics := face.Metrics()
		if cellWidth == 0 {
			if adv, ok := face.GlyphAdvance('M'); ok {
				cellWidth = adv.Ceil()
			}
			if cellWidth == 0 {
				cellWidth = 7
			}
		}
		if cellHeight == 0 {
			cellHeight = metrics.Height.Ceil()
		}
	}

	defaultFG := cfg.DefaultFG
	if defaultFG == nil {
		defaultFG = &term.DefaultForeground
	}
	defaultBG := cfg.DefaultBG
	if defaultBG == nil {
		defaultBG = &term.DefaultBackground
	}
	showCursor := true
	if cfg.ShowCursor != nil {
		showCursor = *cfg.ShowCursor
	}

	cols, rows := snap.Cols(), snap.Rows()
	imgWidth, imgHeight := cols*cellWidth, rows*cellHeight
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			img.Set(x, y, *defaultBG)
		}
	}

	area := grid.Rect{MinX: 0, MinY: 0, MaxX: cols, MaxY: rows}
	metrics := face.Metrics()
	for _, cv := range snap.Iter(area) {
		if !cv.IsOccupied() {
			continue
		}
		x, y := cv.X*cellWidth, cv.Y*cellHeight

		fg := resolveColor(cv.Style.Fg, true, defaultFG, defaultBG)
		bg := resolveColor(cv.Style.Bg, false, defaultFG, defaultBG)
		if cv.Style.HasAttr(grid.AttrReverse) {
			fg, bg = bg, fg
		}
		if cv.Style.HasAttr(grid.AttrFaint) {
			fg = dim(fg, 0.66)
		}
		if cv.Style.HasAttr(grid.AttrInvisible) {
			fg = bg
		}

		for py := 0; py < cellHeight; py++ {
			for px := 0; px < cellWidth; px++ {
				img.Set(x+px, y+py, bg)
			}
		}

		if cv.Value == "" || cv.Value == " " {
			continue
		}
		baseline := y + metrics.Ascent.Ceil()
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(fg),
			Face: face,
			Dot:  fixed.P(x, baseline),
		}
		d.DrawString(cv.Value)

		if cv.Style.HasAttr(grid.AttrUnderline) {
			underlineY := baseline + 2
			if underlineY < imgHeight {
				for px := 0; px < cellWidth; px++ {
					img.Set(x+px, underlineY, fg)
				}
			}
		}
		if cv.Style.HasAttr(grid.AttrStruck) {
			strikeY := y + cellHeight/2
			for px := 0; px < cellWidth; px++ {
				img.Set(x+px, strikeY, fg)
			}
		}
	}

	if showCursor {
		cursor := snap.Cursor()
		if cursor.Visible {
			cx0, cy0 := cursor.X*cellWidth, cursor.Y*cellHeight
			for py := 0; py < cellHeight; py++ {
				for px := 0; px < cellWidth; px++ {
					cx, cy := cx0+px, cy0+py
					if cx >= imgWidth || cy >= imgHeight {
						continue
					}
					if cfg.CursorColor != nil {
						img.Set(cx, cy, *cfg.CursorColor)
						continue
					}
					existing := img.RGBAAt(cx, cy)
					img.Set(cx, cy, color.RGBA{
						R: 255 - existing.R,
						G: 255 - existing.G,
						B: 255 - existing.B,
						A: 255,
					})
				}
			}
		}
	}

	return img
}

func dim(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func resolveColor(c color.Color, fg bool, defaultFG, defaultBG *color.RGBA) color.RGBA {
	if c == nil {
		if fg {
			return *defaultFG
		}
		return *defaultBG
	}
	if rgba, ok := c.(color.RGBA); ok {
		return rgba
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
