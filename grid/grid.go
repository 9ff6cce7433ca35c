package grid

// Row is one line of the grid: exactly Cols() cells wide.
type Row []Cell

// NewRow returns a row of cols Empty cells sharing the given style.
func NewRow(cols int, style *Style) Row {
	r := make(Row, cols)
	for i := range r {
		r[i] = NewEmptyCell(style)
	}
	return r
}

func (r Row) clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// clearWideAt clears every column belonging to the wide glyph occupying
// column x, whether x is the Occupied base or one of its Reference
// columns. Writing to any column of a wide glyph must reset all of its
// columns first, or a Reference column would dangle.
func (r Row) clearWideAt(x int, style *Style) {
	if x < 0 || x >= len(r) {
		return
	}
	cell := r[x]
	base := x
	width := 1
	switch cell.Kind {
	case Occupied:
		width = cell.Width
	case Reference:
		base = x - cell.Offset
		if base >= 0 && base < len(r) && r[base].Kind == Occupied {
			width = r[base].Width
		}
	default:
		return
	}
	if width < 1 {
		width = 1
	}
	for i := 0; i < width; i++ {
		c := base + i
		if c >= 0 && c < len(r) {
			r[c] = NewEmptyCell(style)
		}
	}
}

// Grid is a scrollback-capable sequence of rows: the grid length is
// always >= visibleRows; the visible window is the last visibleRows
// entries unless scrollOffset selects an older window. Appending rows
// implements scrollback; maxScrollback bounds the total retained length.
type Grid struct {
	rows          []Row
	cols          int
	visibleRows   int
	scrollOffset  int
	maxScrollback int // total rows retained beyond visibleRows; 0 disables scrollback growth
}

// NewGrid creates a grid of visibleRows x cols empty cells with the given
// default style. maxScrollback <= 0 disables scrollback: the grid never
// grows past visibleRows.
func NewGrid(visibleRows, cols, maxScrollback int, style *Style) *Grid {
	g := &Grid{cols: cols, visibleRows: visibleRows, maxScrollback: maxScrollback}
	g.rows = make([]Row, visibleRows)
	for i := range g.rows {
		g.rows[i] = NewRow(cols, style)
	}
	return g
}

// Rows returns the visible window height.
func (g *Grid) Rows() int { return g.visibleRows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// ScrollbackEnabled reports whether this grid may grow past its visible
// window (maxScrollback > 0).
func (g *Grid) ScrollbackEnabled() bool { return g.maxScrollback > 0 }

// ScrollbackLen returns the number of rows retained above the visible
// window.
func (g *Grid) ScrollbackLen() int {
	n := len(g.rows) - g.visibleRows
	if n < 0 {
		return 0
	}
	return n
}

// windowStart returns the index into g.rows of the first visible row,
// honoring scrollOffset (0 = bottom of history, i.e. live view).
func (g *Grid) windowStart() int {
	top := len(g.rows) - g.visibleRows - g.scrollOffset
	if top < 0 {
		top = 0
	}
	return top
}

// SetScrollOffset selects a historical window: 0 shows the live tail,
// larger values show older content. Clamped to available scrollback.
func (g *Grid) SetScrollOffset(n int) {
	if n < 0 {
		n = 0
	}
	if max := g.ScrollbackLen(); n > max {
		n = max
	}
	g.scrollOffset = n
}

// ScrollOffset returns the current historical scroll offset.
func (g *Grid) ScrollOffset() int { return g.scrollOffset }

// row returns the absolute row slice for visible-window row y, or nil if
// out of bounds.
func (g *Grid) row(y int) Row {
	idx := g.windowStart() + y
	if idx < 0 || idx >= len(g.rows) || y < 0 || y >= g.visibleRows {
		return nil
	}
	return g.rows[idx]
}

// Get returns the cell at visible-window position (x,y). Out-of-bounds
// coordinates return a zero-value Empty cell.
func (g *Grid) Get(x, y int) Cell {
	r := g.row(y)
	if r == nil || x < 0 || x >= len(r) {
		return Cell{Kind: Empty}
	}
	return r[x]
}

// WriteCluster writes a grapheme cluster of the given display width at
// (x,y): an Occupied cell at x, and Reference{1..width-1} cells filling
// the next width-1 columns. Any wide glyphs partially overwritten (at
// the write site or, for trailing reference columns, ahead of it) are
// cleared first. Returns false if (x,y) is out of bounds or the cluster
// would not fit within the row.
func (g *Grid) WriteCluster(x, y int, value string, width int, style *Style, touched *Touched) bool {
	r := g.row(y)
	if r == nil || x < 0 || width < 1 || x+width > len(r) {
		return false
	}
	for i := 0; i < width; i++ {
		r.clearWideAt(x+i, style)
	}
	r[x] = Cell{Kind: Occupied, Style: style, Value: value, Width: width}
	for i := 1; i < width; i++ {
		r[x+i] = Cell{Kind: Reference, Style: style, Offset: i}
	}
	if touched != nil {
		for i := 0; i < width; i++ {
			touched.Mark(x+i, y)
		}
	}
	return true
}

// EraseLine resets cells in row y over [fromX, toX) to Empty with the
// given style.
func (g *Grid) EraseLine(y, fromX, toX int, style *Style, touched *Touched) {
	r := g.row(y)
	if r == nil {
		return
	}
	if fromX < 0 {
		fromX = 0
	}
	if toX > len(r) {
		toX = len(r)
	}
	for x := fromX; x < toX; x++ {
		r[x] = NewEmptyCell(style)
	}
	if touched != nil {
		touched.Line(y)
	}
}

// EraseRows resets every cell in rows [fromY, toY) to Empty.
func (g *Grid) EraseRows(fromY, toY int, style *Style, touched *Touched) {
	for y := fromY; y < toY; y++ {
		g.EraseLine(y, 0, g.cols, style, touched)
	}
}

// FillWithE fills every visible cell with an Occupied "E" glyph in the
// given style (the DECALN screen-alignment pattern).
func (g *Grid) FillWithE(style *Style, touched *Touched) {
	for y := 0; y < g.visibleRows; y++ {
		r := g.row(y)
		for x := range r {
			r[x] = Cell{Kind: Occupied, Style: style, Value: "E", Width: 1}
		}
	}
	if touched != nil {
		touched.All(g.visibleRows)
	}
}

// AppendRows appends n fresh empty rows at the end of the grid (extending
// history / scrollback) and advances the visible window so the new rows
// become visible at the bottom. Rows beyond visibleRows+maxScrollback are
// dropped, oldest first; with scrollback disabled this scrolls the
// visible window without retaining any history.
func (g *Grid) AppendRows(n int, style *Style) {
	if n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		g.rows = append(g.rows, NewRow(g.cols, style))
	}
	sb := g.maxScrollback
	if sb < 0 {
		sb = 0
	}
	limit := g.visibleRows + sb
	if len(g.rows) > limit {
		drop := len(g.rows) - limit
		g.rows = g.rows[drop:]
	}
}

// DeleteLines removes n rows starting at y (within [y, bottom)) and
// appends n fresh empty rows at the end of the buffer, marking every row
// from y to bottom touched.
func (g *Grid) DeleteLines(y, n, bottom int, style *Style, touched *Touched) {
	start := g.windowStart()
	abs := start + y
	absBottom := start + bottom
	if n <= 0 || y < 0 || bottom > g.visibleRows || abs >= absBottom || abs >= len(g.rows) {
		return
	}
	if n > absBottom-abs {
		n = absBottom - abs
	}
	tail := append(Row(nil), g.rows[abs+n:absBottom]...)
	copy(g.rows[abs:], tail)
	for i := 0; i < n; i++ {
		g.rows[absBottom-n+i] = NewRow(g.cols, style)
	}
	if touched != nil {
		for row := y; row < bottom; row++ {
			touched.Line(row)
		}
	}
}

// InsertLines splits at row y, inserts n empty rows, and drops rows
// pushed past bottom to keep the visible window height fixed. Marks
// every row from y to bottom touched.
func (g *Grid) InsertLines(y, n, bottom int, style *Style, touched *Touched) {
	start := g.windowStart()
	abs := start + y
	absBottom := start + bottom
	if n <= 0 || y < 0 || bottom > g.visibleRows || abs >= absBottom || abs >= len(g.rows) {
		return
	}
	if n > absBottom-abs {
		n = absBottom - abs
	}
	kept := append(Row(nil), g.rows[abs:absBottom-n]...)
	for i := 0; i < n; i++ {
		g.rows[abs+i] = NewRow(g.cols, style)
	}
	copy(g.rows[abs+n:absBottom], kept)
	if touched != nil {
		for row := y; row < bottom; row++ {
			touched.Line(row)
		}
	}
}

// Resize changes the visible window dimensions. Columns are cut or
// padded with empty cells on the right of every retained row. Growing
// the height first shows rows from scrollback and appends empty rows at
// the bottom only when there is not enough history; shrinking it keeps
// the bottom rows visible and leaves the top ones above the window as
// scrollback. Invalid dimensions (<= 0) are ignored.
func (g *Grid) Resize(rows, cols int, style *Style) {
	if rows <= 0 || cols <= 0 {
		return
	}
	if cols != g.cols {
		for i := range g.rows {
			old := g.rows[i]
			nr := make(Row, cols)
			n := len(old)
			if n > cols {
				n = cols
			}
			copy(nr, old[:n])
			for x := n; x < cols; x++ {
				nr[x] = NewEmptyCell(style)
			}
			g.rows[i] = nr
		}
		g.cols = cols
	}
	if rows > g.visibleRows {
		need := rows - len(g.rows)
		for i := 0; i < need; i++ {
			g.rows = append(g.rows, NewRow(cols, style))
		}
	}
	g.visibleRows = rows
	if g.scrollOffset > g.ScrollbackLen() {
		g.scrollOffset = g.ScrollbackLen()
	}
}

// CellView is a read-only view of one grid position, used by both the
// iterator surface and the renderer cache.
type CellView struct {
	Position
	Cell
}

// Iter yields CellViews for area in row-major order, skipping Reference
// cells: they are presented only via their base Occupied cell.
func (g *Grid) Iter(area Rect) []CellView {
	minY, maxY := area.MinY, area.MaxY
	if minY < 0 {
		minY = 0
	}
	if maxY > g.visibleRows {
		maxY = g.visibleRows
	}
	var out []CellView
	for y := minY; y < maxY; y++ {
		r := g.row(y)
		if r == nil {
			continue
		}
		minX, maxX := area.MinX, area.MaxX
		if minX < 0 {
			minX = 0
		}
		if maxX > len(r) {
			maxX = len(r)
		}
		for x := minX; x < maxX; x++ {
			if r[x].Kind == Reference {
				continue
			}
			out = append(out, CellView{Position: Position{X: x, Y: y}, Cell: r[x]})
		}
	}
	return out
}

// LineText returns the text content of visible row y, trimming trailing
// spaces; Reference cells are skipped and Empty cells render as spaces.
func (g *Grid) LineText(y int) string {
	r := g.row(y)
	if r == nil {
		return ""
	}
	lastNonSpace := -1
	for x := len(r) - 1; x >= 0; x-- {
		if r[x].Kind == Reference {
			continue
		}
		if r[x].Kind == Occupied && r[x].Value != " " && r[x].Value != "" {
			lastNonSpace = x
			break
		}
	}
	if lastNonSpace < 0 {
		return ""
	}
	var out []byte
	for x := 0; x <= lastNonSpace; x++ {
		c := r[x]
		switch c.Kind {
		case Reference:
			continue
		case Occupied:
			out = append(out, c.Value...)
		default:
			out = append(out, ' ')
		}
	}
	return string(out)
}
