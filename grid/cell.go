package grid

// CellKind discriminates the tagged-union variants of Cell.
type CellKind uint8

const (
	// Empty is a column with no character, carrying only a style (used
	// for erase operations and cells never written to).
	Empty CellKind = iota
	// Occupied holds a grapheme cluster of display width >= 1.
	Occupied
	// Reference is a continuation column of a wide glyph; the base
	// Occupied cell lives at (x-Offset, y). Reference cells are
	// back-pointers by offset, never owning pointers, so rows can be
	// rotated or resized without pointer fix-ups.
	Reference
)

// Cell is one grid position: a tagged variant over {Empty, Occupied,
// Reference}. The zero Cell is a valid Empty cell with the default style.
type Cell struct {
	Kind   CellKind
	Style  *Style
	Value  string // grapheme cluster text, Occupied only
	Width  int    // display width, Occupied only, >= 1
	Offset int    // 1..width-1, Reference only
}

// NewEmptyCell returns an Empty cell with the given style.
func NewEmptyCell(style *Style) Cell {
	return Cell{Kind: Empty, Style: style}
}

// IsEmpty reports whether the cell is the Empty variant.
func (c Cell) IsEmpty() bool { return c.Kind == Empty }

// IsOccupied reports whether the cell is the Occupied variant.
func (c Cell) IsOccupied() bool { return c.Kind == Occupied }

// IsReference reports whether the cell is the Reference variant.
func (c Cell) IsReference() bool { return c.Kind == Reference }

// EffectiveStyle returns the style to paint this cell with, applying the
// terminal-wide reverse-video mode by XORing it into the cell's own
// reverse attribute at read time rather than mutating the stored style:
// reverse-video is a global toggle, not something baked into each cell.
func (c Cell) EffectiveStyle(globalReverse bool) *Style {
	st := c.Style
	if st == nil {
		st = DefaultStyle()
	}
	if !globalReverse {
		return st
	}
	return st.WithAttr(AttrReverse, !st.HasAttr(AttrReverse))
}
