package term

import (
	"fmt"
	"image/color"

	"github.com/gridterm/gridterm/grid"
)

// SnapshotDetail selects how much per-cell detail Snapshot includes.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text split into same-style runs.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns one entry per cell.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a point-in-time capture of the visible screen, suitable
// for serialization (e.g. to JSON) independent of the live grid.
type Snapshot struct {
	Rows, Cols int
	Cursor     SnapshotCursor
	Lines      []SnapshotLine
}

// SnapshotCursor captures cursor position and visibility at capture time.
type SnapshotCursor struct {
	X, Y    int
	Visible bool
	Shape   grid.CursorShape
}

// SnapshotLine is one row of the capture. Segments is populated only at
// SnapshotDetailStyled; Cells only at SnapshotDetailFull.
type SnapshotLine struct {
	Text     string
	Segments []SnapshotSegment
	Cells    []SnapshotCell
}

// SnapshotSegment is a maximal run of cells sharing one style.
type SnapshotSegment struct {
	Text  string
	Fg    string
	Bg    string
	Attrs SnapshotAttrs
}

// SnapshotCell is one cell's full rendering state.
type SnapshotCell struct {
	Char  string
	Fg    string
	Bg    string
	Attrs SnapshotAttrs
	Wide  bool
}

// SnapshotAttrs mirrors grid.StyleAttrs as individually named booleans,
// the representation a JSON consumer expects rather than a bitmask.
type SnapshotAttrs struct {
	Bold      bool
	Faint     bool
	Italic    bool
	Underline bool
	Blink     bool
	Reverse   bool
	Invisible bool
	Struck    bool
}

// Snapshot captures the current visible screen at the requested detail
// level. It does not hold the terminal's lock beyond the call.
func (t *Terminal) Snapshot(detail SnapshotDetail) *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	cursor := t.cursor
	snap := &Snapshot{
		Rows: t.g.Rows(),
		Cols: t.g.Cols(),
		Cursor: SnapshotCursor{
			X: cursor.X, Y: cursor.Y,
			Visible: cursor.Visible,
			Shape:   cursor.Shape,
		},
		Lines: make([]SnapshotLine, t.g.Rows()),
	}
	for y := 0; y < t.g.Rows(); y++ {
		snap.Lines[y] = t.snapshotLine(y, detail)
	}
	return snap
}

func (t *Terminal) snapshotLine(y int, detail SnapshotDetail) SnapshotLine {
	row := t.g.Iter(grid.Rect{MinX: 0, MinY: y, MaxX: t.g.Cols(), MaxY: y + 1})
	line := SnapshotLine{Text: t.g.LineText(y)}

	switch detail {
	case SnapshotDetailStyled:
		line.Segments = segmentsOf(row)
	case SnapshotDetailFull:
		line.Cells = cellsOf(row)
	}
	return line
}

func segmentsOf(row []grid.CellView) []SnapshotSegment {
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var text []byte

	flush := func() {
		if current != nil && len(text) > 0 {
			current.Text = string(text)
			segments = append(segments, *current)
		}
	}
	for _, cv := range row {
		if cv.IsReference() {
			continue
		}
		fg, bg := colorToHex(cv.Style.Fg), colorToHex(cv.Style.Bg)
		attrs := attrsOf(cv.Style)
		chStr := " "
		if cv.IsOccupied() {
			chStr = cv.Value
		}
		if current == nil || current.Fg != fg || current.Bg != bg || current.Attrs != attrs {
			flush()
			current = &SnapshotSegment{Fg: fg, Bg: bg, Attrs: attrs}
			text = nil
		}
		text = append(text, chStr...)
	}
	flush()
	return segments
}

func cellsOf(row []grid.CellView) []SnapshotCell {
	cells := make([]SnapshotCell, 0, len(row))
	for _, cv := range row {
		if cv.IsReference() {
			continue
		}
		ch := " "
		if cv.IsOccupied() {
			ch = cv.Value
		}
		cells = append(cells, SnapshotCell{
			Char:  ch,
			Fg:    colorToHex(cv.Style.Fg),
			Bg:    colorToHex(cv.Style.Bg),
			Attrs: attrsOf(cv.Style),
			Wide:  cv.Width > 1,
		})
	}
	return cells
}

func attrsOf(s *grid.Style) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:      s.HasAttr(grid.AttrBold),
		Faint:     s.HasAttr(grid.AttrFaint),
		Italic:    s.HasAttr(grid.AttrItalic),
		Underline: s.HasAttr(grid.AttrUnderline),
		Blink:     s.HasAttr(grid.AttrBlink),
		Reverse:   s.HasAttr(grid.AttrReverse),
		Invisible: s.HasAttr(grid.AttrInvisible),
		Struck:    s.HasAttr(grid.AttrStruck),
	}
}

func colorToHex(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
