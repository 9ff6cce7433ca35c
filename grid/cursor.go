package grid

import "image/color"

// CursorShape selects how the cursor is rendered.
type CursorShape int

const (
	ShapeBlock CursorShape = iota
	ShapeLine
	ShapeBeam
)

// Cursor tracks position and rendering style in visible-window
// coordinates.
type Cursor struct {
	X, Y       int
	Style      *Style
	Visible    bool
	Blink      bool
	Shape      CursorShape
	Background color.Color
}

// NewCursor returns a cursor at (0,0), visible, block-shaped, not
// blinking.
func NewCursor() *Cursor {
	return &Cursor{Visible: true, Shape: ShapeBlock}
}

// SavedCursor captures the one-level DECSC/DECRC save slot.
type SavedCursor struct {
	X, Y  int
	Style *Style
}

// Save returns a SavedCursor snapshot of c.
func (c *Cursor) Save() SavedCursor {
	return SavedCursor{X: c.X, Y: c.Y, Style: c.Style}
}

// Restore applies a previously saved snapshot.
func (c *Cursor) Restore(s SavedCursor) {
	c.X, c.Y, c.Style = s.X, s.Y, s.Style
}

// TravelOp is a cursor motion primitive.
type TravelOp struct {
	Kind TravelKind
	N    int  // for Up/Down/Left/Right
	X, Y *int // for Position; nil means "leave unchanged"
}

type TravelKind int

const (
	TravelUp TravelKind = iota
	TravelDown
	TravelLeft
	TravelRight
	TravelPosition
)

func Up(n int) TravelOp    { return TravelOp{Kind: TravelUp, N: n} }
func Down(n int) TravelOp  { return TravelOp{Kind: TravelDown, N: n} }
func Left(n int) TravelOp  { return TravelOp{Kind: TravelLeft, N: n} }
func Right(n int) TravelOp { return TravelOp{Kind: TravelRight, N: n} }

// PositionTo moves to an absolute location; a nil coordinate leaves that
// axis unchanged.
func PositionTo(x, y *int) TravelOp { return TravelOp{Kind: TravelPosition, X: x, Y: y} }

// Travel applies op to the cursor, clamping to area, and returns the
// number of fresh rows the caller must append to the grid (scrollback
// growth) when a Down motion runs past the visible bottom. The cursor
// itself never mutates the grid; line wrap is handled only during text
// emission, not cursor motion.
func (c *Cursor) Travel(op TravelOp, area Rect) (scrollRows int) {
	switch op.Kind {
	case TravelUp:
		c.Y -= op.N
	case TravelDown:
		c.Y += op.N
	case TravelLeft:
		c.X -= op.N
	case TravelRight:
		c.X += op.N
	case TravelPosition:
		if op.X != nil {
			c.X = *op.X
		}
		if op.Y != nil {
			c.Y = *op.Y
		}
	}

	if c.X < area.MinX {
		c.X = area.MinX
	}
	if c.X >= area.MaxX {
		c.X = area.MaxX - 1
	}
	if c.Y < area.MinY {
		c.Y = area.MinY
	}
	if op.Kind == TravelDown && c.Y >= area.MaxY {
		scrollRows = c.Y - area.MaxY + 1
		c.Y = area.MaxY - 1
	} else if c.Y >= area.MaxY {
		c.Y = area.MaxY - 1
	}
	return scrollRows
}
