// Package rendercache implements the renderer-side state that mirrors a
// grid.Grid for incremental redraw: a parallel snapshot grid of
// (style, value, valid) triples plus an LRU glyph-shaping cache keyed on
// (value, attrs & ShapingMask).
package rendercache

import (
	"golang.org/x/image/font"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/cespare/xxhash/v2"

	"github.com/gridterm/gridterm/grid"
)

// Computed is a shaped-glyph record: the font face used and the shaped
// glyph advance, as produced by the font backend (an external
// collaborator; this package only caches what it is given).
type Computed struct {
	Face    font.Face
	Advance int
}

// Shaper produces a Computed for a grapheme cluster and the shaping-
// relevant subset of its style attributes. Supplied by the host, since
// font shaping is an external collaborator.
type Shaper func(value string, attrs grid.StyleAttrs) *Computed

type glyphKey struct {
	hash  uint64
	value string
	attrs grid.StyleAttrs
}

func shapingKey(value string, attrs grid.StyleAttrs) glyphKey {
	attrs &= grid.ShapingMask
	h := xxhash.New()
	_, _ = h.WriteString(value)
	var b [2]byte
	b[0] = byte(attrs)
	b[1] = byte(attrs >> 8)
	_, _ = h.Write(b[:])
	return glyphKey{hash: h.Sum64(), value: value, attrs: attrs}
}

type snapshot struct {
	style *grid.Style
	kind  grid.CellKind
	value string
	valid bool
}

// Cache mirrors a grid.Grid for damage-aware redraw: Update reports
// whether a cell actually changed since the last call, and Compute
// memoizes glyph shaping behind an LRU bounded by capacity.
type Cache struct {
	cols, rows int
	snap       map[int]*snapshot // keyed by y*cols+x, sparse: absent entries are invalid
	glyphs     *lru.Cache[glyphKey, *Computed]
	shaper     Shaper
}

// New returns a Cache for a grid of the given dimensions. capacity bounds
// the glyph-shaping LRU; shaper computes a glyph the first time a
// (value, shaping-attrs) pair is seen.
func New(cols, rows, capacity int, shaper Shaper) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	g, _ := lru.New[glyphKey, *Computed](capacity)
	return &Cache{
		cols:   cols,
		rows:   rows,
		snap:   make(map[int]*snapshot),
		glyphs: g,
		shaper: shaper,
	}
}

func (c *Cache) index(x, y int) int { return y*c.cols + x }

// Update compares the live cell at cv's position against the cached
// snapshot. If style, emptiness, and value all match and the snapshot is
// valid, it returns false (no redraw needed); otherwise it replaces the
// snapshot and returns true.
func (c *Cache) Update(cv grid.CellView) bool {
	idx := c.index(cv.X, cv.Y)
	prev, ok := c.snap[idx]
	changed := !ok || !prev.valid ||
		prev.kind != cv.Kind ||
		prev.value != cv.Value ||
		!prev.style.Equal(cv.Style)
	c.snap[idx] = &snapshot{style: cv.Style, kind: cv.Kind, value: cv.Value, valid: true}
	return changed
}

// Invalidate marks cv's snapshot stale, forcing the next Update at that
// position to report a change regardless of content.
func (c *Cache) Invalidate(cv grid.CellView) {
	idx := c.index(cv.X, cv.Y)
	if s, ok := c.snap[idx]; ok {
		s.valid = false
	}
}

// Resize changes the mirrored dimensions, dropping all snapshots (a full
// repaint follows any resize regardless).
func (c *Cache) Resize(cols, rows int) {
	c.cols, c.rows = cols, rows
	c.snap = make(map[int]*snapshot)
}

// Compute returns the shared Computed glyph for (value, attrs), computing
// and caching it on first use. Only the BOLD|FAINT|ITALIC bits of attrs
// participate in the cache key; other attributes (color, underline, ...)
// are applied at paint time and never affect shaping.
func (c *Cache) Compute(value string, attrs grid.StyleAttrs) *Computed {
	key := shapingKey(value, attrs)
	if v, ok := c.glyphs.Get(key); ok {
		return v
	}
	v := c.shaper(value, key.attrs)
	c.glyphs.Add(key, v)
	return v
}

// Len reports the number of entries currently cached in the glyph LRU.
func (c *Cache) Len() int { return c.glyphs.Len() }
