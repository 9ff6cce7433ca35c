// Package grid implements the cell, row, cursor, mode, and damage-tracking
// model for a terminal screen buffer: a two-dimensional grid of styled
// cells with scrollback, a cursor, a mode bitset, and a touched-cell
// damage tracker.
package grid

import "image/color"

// StyleAttrs is a bitmask of text rendering attributes.
type StyleAttrs uint16

const (
	AttrBold StyleAttrs = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrInvisible
	AttrStruck
)

// ShapingMask is the subset of attributes that affect glyph shaping
// (font selection). Color and decoration attributes are applied at
// paint time, not shaping time.
const ShapingMask = AttrBold | AttrFaint | AttrItalic

// Style is an immutable set of rendering attributes for a cell. Once
// constructed, a Style is never mutated; cells share a *Style by
// reference rather than copying attribute fields around.
type Style struct {
	Fg    color.Color
	Bg    color.Color
	Attrs StyleAttrs
}

// defaultStyle is the zero-value style: no colors, no attributes.
var defaultStyle = &Style{}

// DefaultStyle returns the shared default style handle.
func DefaultStyle() *Style { return defaultStyle }

// NewStyle returns a new style with the given fields. Callers that only
// need the default style should use DefaultStyle instead of allocating.
func NewStyle(fg, bg color.Color, attrs StyleAttrs) *Style {
	if fg == nil && bg == nil && attrs == 0 {
		return defaultStyle
	}
	return &Style{Fg: fg, Bg: bg, Attrs: attrs}
}

// HasAttr reports whether the given attribute bit is set.
func (s *Style) HasAttr(a StyleAttrs) bool {
	if s == nil {
		return false
	}
	return s.Attrs&a != 0
}

// WithAttr returns a style identical to s but with attr toggled on (set)
// or off (set=false). The receiver is never mutated.
func (s *Style) WithAttr(attr StyleAttrs, set bool) *Style {
	cur := s
	if cur == nil {
		cur = defaultStyle
	}
	attrs := cur.Attrs
	if set {
		attrs |= attr
	} else {
		attrs &^= attr
	}
	return NewStyle(cur.Fg, cur.Bg, attrs)
}

// WithFg returns a style identical to s but with the foreground replaced.
func (s *Style) WithFg(fg color.Color) *Style {
	cur := s
	if cur == nil {
		cur = defaultStyle
	}
	return NewStyle(fg, cur.Bg, cur.Attrs)
}

// WithBg returns a style identical to s but with the background replaced.
func (s *Style) WithBg(bg color.Color) *Style {
	cur := s
	if cur == nil {
		cur = defaultStyle
	}
	return NewStyle(cur.Fg, bg, cur.Attrs)
}

// Equal compares two styles, checking pointer identity first (the common
// case, since most cells in a row share one handle) before falling back
// to a structural comparison.
func (s *Style) Equal(o *Style) bool {
	if s == o {
		return true
	}
	if s == nil {
		s = defaultStyle
	}
	if o == nil {
		o = defaultStyle
	}
	return s.Attrs == o.Attrs && colorsEqual(s.Fg, o.Fg) && colorsEqual(s.Bg, o.Bg)
}

func colorsEqual(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}
