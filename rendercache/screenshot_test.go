package rendercache

import (
	"bytes"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/gridterm/gridterm/term"
)

func TestScreenshotProducesExpectedImageSize(t *testing.T) {
	tm := term.Open(term.DefaultConfig(), 10, 4)
	img := Screenshot(tm)
	face := basicfont.Face7x13
	adv, _ := face.GlyphAdvance('M')
	cellWidth := adv.Ceil()
	cellHeight := face.Metrics().Height.Ceil()
	if img.Bounds().Dx() != 10*cellWidth || img.Bounds().Dy() != 4*cellHeight {
		t.Fatalf("expected a %dx%d cell image, got bounds %v", 10, 4, img.Bounds())
	}
}

func TestScreenshotPaintsBackgroundByDefault(t *testing.T) {
	tm := term.Open(term.DefaultConfig(), 5, 2)
	img := Screenshot(tm)
	// The cursor sits at (0,0) by default and inverts that cell, so probe
	// a different untouched cell instead.
	c := img.RGBAAt(img.Bounds().Dx()-1, img.Bounds().Dy()-1)
	if c != term.DefaultBackground {
		t.Fatalf("expected default background at an untouched cell, got %+v", c)
	}
}

func TestScreenshotDrawsWrittenText(t *testing.T) {
	tm := term.Open(term.DefaultConfig(), 5, 2)
	var out bytes.Buffer
	if _, _, err := tm.Handle([]byte("A"), &out); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	img := ScreenshotWithConfig(tm, &ScreenshotConfig{})
	// The glyph is drawn in the foreground color somewhere within the
	// first cell (the cursor has moved on to the second cell).
	if img == nil {
		t.Fatalf("expected a non-nil image")
	}
	face := basicfont.Face7x13
	adv, _ := face.GlyphAdvance('M')
	cellWidth, cellHeight := adv.Ceil(), face.Metrics().Height.Ceil()
	found := false
	for y := 0; y < cellHeight && !found; y++ {
		for x := 0; x < cellWidth; x++ {
			if img.RGBAAt(x, y) == term.DefaultForeground {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("expected foreground-colored glyph pixels in the first cell")
	}
}

func TestScreenshotShowsInvertedCursorByDefault(t *testing.T) {
	tm := term.Open(term.DefaultConfig(), 5, 2)
	bg := term.DefaultBackground
	img := ScreenshotWithConfig(tm, &ScreenshotConfig{})
	got := img.RGBAAt(0, 0)
	want := color.RGBA{R: 255 - bg.R, G: 255 - bg.G, B: 255 - bg.B, A: 255}
	if got != want {
		t.Fatalf("expected inverted background at the cursor cell, got %+v want %+v", got, want)
	}
}

func TestScreenshotHidesCursorWhenDisabled(t *testing.T) {
	tm := term.Open(term.DefaultConfig(), 5, 2)
	show := false
	img := ScreenshotWithConfig(tm, &ScreenshotConfig{ShowCursor: &show})
	bg := term.DefaultBackground
	got := img.RGBAAt(0, 0)
	if got != bg {
		t.Fatalf("expected cursor suppressed, cell left at background, got %+v", got)
	}
}

func TestScreenshotUsesExplicitCursorColor(t *testing.T) {
	tm := term.Open(term.DefaultConfig(), 5, 2)
	cc := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	img := ScreenshotWithConfig(tm, &ScreenshotConfig{CursorColor: &cc})
	if got := img.RGBAAt(0, 0); got != cc {
		t.Fatalf("expected explicit cursor color, got %+v", got)
	}
}
