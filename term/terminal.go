// Package term implements the terminal orchestrator: it drives a
// vtparse.Feeder over incoming bytes, applies each Control item to a
// grid.Grid, grid.Cursor, and grid.Mode set, and reports the resulting
// damage plus any side-band actions (title changes, bell) to the caller.
package term

import (
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gridterm/gridterm/grid"
	"github.com/gridterm/gridterm/vtparse"
)

// Terminal is a headless terminal emulator core: no tty, no rendering,
// no window. Handle feeds it bytes; Get/Iter/Cursor/Modes read the
// resulting state.
type Terminal struct {
	mu sync.RWMutex

	cfg Config

	g      *grid.Grid
	cursor *grid.Cursor
	modes  grid.Mode
	saved  grid.SavedCursor

	scrollTop    int
	scrollBottom int

	curStyle *grid.Style

	feeder vtparse.Feeder

	title string
}

// Open constructs a Terminal with the given configuration at cols x rows.
func Open(cfg Config, cols, rows int) *Terminal {
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}
	if cfg.DefaultFg == nil {
		cfg.DefaultFg = DefaultForeground
	}
	if cfg.DefaultBg == nil {
		cfg.DefaultBg = DefaultBackground
	}
	if reflect.DeepEqual(cfg.Logger, zerolog.Logger{}) {
		cfg.Logger = zerolog.Nop()
	}
	style := grid.NewStyle(cfg.DefaultFg, cfg.DefaultBg, 0)
	t := &Terminal{
		cfg:          cfg,
		g:            grid.NewGrid(rows, cols, cfg.MaxScrollback, style),
		cursor:       grid.NewCursor(),
		modes:        grid.DefaultModes(),
		scrollTop:    0,
		scrollBottom: rows - 1,
		curStyle:     style,
	}
	if cfg.DefaultCursor == nil {
		cfg.DefaultCursor = DefaultCursorColor
	}
	t.cursor.Background = cfg.DefaultCursor
	return t
}

// Cols reports the current column count.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.g.Cols()
}

// Rows reports the current visible row count.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.g.Rows()
}

// Cursor returns a snapshot of the current cursor state.
func (t *Terminal) Cursor() grid.Cursor {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return *t.cursor
}

// Modes returns the current mode bitset.
func (t *Terminal) Modes() grid.Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes
}

// Title returns the current window title set via OSC "0;T" or "k;T".
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// Get returns the cell at (x,y) in visible-window coordinates.
func (t *Terminal) Get(x, y int) grid.Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.g.Get(x, y)
}

// Iter yields the cells in area, skipping Reference columns.
func (t *Terminal) Iter(area grid.Rect) []grid.CellView {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.g.Iter(area)
}

// ScrollOffset returns the current scrollback viewing offset (0 = live).
func (t *Terminal) ScrollOffset() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.g.ScrollOffset()
}

// SetScrollOffset moves the scrollback viewing window.
func (t *Terminal) SetScrollOffset(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.g.SetScrollOffset(n)
}

// Resize changes the terminal's visible dimensions.
func (t *Terminal) Resize(cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cols <= 0 || rows <= 0 {
		return
	}
	t.g.Resize(rows, cols, t.curStyle)
	if t.scrollBottom >= rows {
		t.scrollBottom = rows - 1
	}
	area := t.screenRect()
	t.cursor.Travel(grid.PositionTo(&t.cursor.X, &t.cursor.Y), area)
}

func (t *Terminal) screenRect() grid.Rect {
	return grid.Rect{MinX: 0, MinY: 0, MaxX: t.g.Cols(), MaxY: t.g.Rows()}
}

func (t *Terminal) scrollRect() grid.Rect {
	return grid.Rect{MinX: 0, MinY: t.scrollTop, MaxX: t.g.Cols(), MaxY: t.scrollBottom + 1}
}

// Key encodes a key event according to the current modes and writes it
// to output. Keyboard-lock makes this a silent no-op, matching a locked
// real keyboard.
func (t *Terminal) Key(k Key, output io.Writer) error {
	t.mu.RLock()
	modes := t.modes
	t.mu.RUnlock()
	if modes.Has(grid.ModeKeyboardLock) {
		return nil
	}
	enc := encodeKey(k, modes)
	if enc == nil {
		return nil
	}
	if _, err := output.Write(enc); err != nil {
		return ErrWrite
	}
	return nil
}

// Paste writes data to output, wrapping it in bracketed-paste framing if
// that mode is active.
func (t *Terminal) Paste(data string, output io.Writer) error {
	t.mu.RLock()
	modes := t.modes
	t.mu.RUnlock()
	if _, err := output.Write(bracketPaste(data, modes)); err != nil {
		return ErrWrite
	}
	return nil
}

// Handle feeds input through the parser and applies every resulting
// Control item to the grid, cursor, and mode state. It returns the
// side-band actions produced (title changes, bell) and the set of
// touched cells, in row-major order. A malformed control sequence is
// logged and the remainder of input is dropped; state applied before the
// malformed byte is preserved and Handle returns a nil error.
func (t *Terminal) Handle(input []byte, output io.Writer) ([]Action, []grid.Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	touched := grid.NewTouched(t.g.Cols())
	var actions []Action
	var writeErr error

	err := t.feeder.Feed(input, func(c vtparse.Control) {
		if writeErr != nil {
			return
		}
		a, werr := t.apply(c, touched, output)
		if werr != nil {
			writeErr = werr
			return
		}
		if a != nil {
			actions = append(actions, *a)
		}
	})
	if err != nil {
		t.cfg.Logger.Warn().Err(err).Msg("dropping malformed control sequence")
	}
	if writeErr != nil {
		return actions, touched.Drain(t.screenRect()), writeErr
	}
	return actions, touched.Drain(t.screenRect()), nil
}

func (t *Terminal) apply(c vtparse.Control, touched *grid.Touched, output io.Writer) (*Action, error) {
	switch c.Kind {
	case vtparse.KindText:
		t.writeText(c.Text, touched)
	case vtparse.KindC0:
		if c.C0 == vtparse.C0BEL {
			return &Action{Kind: ActionBell}, nil
		}
		t.applyC0(c.C0, touched)
	case vtparse.KindEsc:
		t.applyEsc(c.Esc, touched)
	case vtparse.KindCSI:
		return t.applyCSI(c.CSI, touched, output)
	case vtparse.KindOSC:
		return t.applyOSC(c.OSC)
	case vtparse.KindDCS:
		// DCS payloads, SIXEL included, are parsed but not applied: they
		// are not fed to a sixel.Accumulator and not returned by Handle.
	}
	return nil, nil
}

func (t *Terminal) writeText(text string, touched *grid.Touched) {
	area := t.screenRect()
	s := text
	for s != "" {
		var cluster string
		var width int
		cluster, width, s = grid.NextCluster(s)
		if cluster == "" {
			break
		}
		if width == 0 {
			continue
		}
		if t.cursor.X+width > area.MaxX {
			if t.modes.Has(grid.ModeWrap) {
				t.lineFeed(touched)
				t.cursor.X = area.MinX
			} else {
				t.cursor.X = area.MaxX - width
			}
		}
		if t.modes.Has(grid.ModeInsert) {
			t.insertBlank(width, touched)
		}
		t.g.WriteCluster(t.cursor.X, t.cursor.Y, cluster, width, t.curStyle, touched)
		t.cursor.X += width
	}
}

func (t *Terminal) applyC0(c vtparse.C0, touched *grid.Touched) {
	switch c {
	case vtparse.C0BS:
		if t.cursor.X > 0 {
			t.cursor.X--
		}
	case vtparse.C0HT:
		t.cursor.X = nextTabStop(t.cursor.X, t.g.Cols())
	case vtparse.C0LF, vtparse.C0VT, vtparse.C0FF:
		t.lineFeed(touched)
	case vtparse.C0CR:
		t.cursor.X = 0
	}
}

func nextTabStop(x, cols int) int {
	n := (x/8 + 1) * 8
	if n >= cols {
		return cols - 1
	}
	return n
}

// lineFeed advances the cursor one row, scrolling the active region when
// it runs past scrollBottom.
func (t *Terminal) lineFeed(touched *grid.Touched) {
	if t.cursor.Y == t.scrollBottom {
		t.scrollUp(1, touched)
		return
	}
	area := t.scrollRect()
	t.cursor.Travel(grid.Down(1), area)
}

func (t *Terminal) scrollUp(n int, touched *grid.Touched) {
	if t.scrollTop == 0 && t.scrollBottom == t.g.Rows()-1 {
		t.g.AppendRows(n, t.curStyle)
		touched.All(t.g.Rows())
		return
	}
	t.g.DeleteLines(t.scrollTop, n, t.scrollBottom+1, t.curStyle, touched)
}

func (t *Terminal) scrollDown(n int, touched *grid.Touched) {
	t.g.InsertLines(t.scrollTop, n, t.scrollBottom+1, t.curStyle, touched)
}

func (t *Terminal) applyEsc(e vtparse.EscKind, touched *grid.Touched) {
	switch e {
	case vtparse.EscDECSC:
		t.saved = t.cursor.Save()
	case vtparse.EscDECRC:
		t.cursor.Restore(t.saved)
	case vtparse.EscDECKPAM:
		t.modes = t.modes.Set(grid.ModeApplicationKeypad)
	case vtparse.EscDECKPNM:
		t.modes = t.modes.Clear(grid.ModeApplicationKeypad)
	case vtparse.EscDECALN:
		t.g.FillWithE(t.curStyle, touched)
	case vtparse.EscDECBI:
		if t.cursor.X == 0 {
			rows := t.g.Rows()
			for y := 0; y < rows; y++ {
				t.shiftRowRight(y, touched)
			}
		} else {
			t.cursor.Travel(grid.Left(1), t.screenRect())
		}
	case vtparse.EscDECFI:
		if t.cursor.X == t.g.Cols()-1 {
			rows := t.g.Rows()
			for y := 0; y < rows; y++ {
				t.shiftRowLeft(y, touched)
			}
		} else {
			t.cursor.Travel(grid.Right(1), t.screenRect())
		}
	}
}

// shiftRowRight shifts row y one column to the right, dropping the
// rightmost column and filling column 0 with the current style (DECBI
// at the left margin).
func (t *Terminal) shiftRowRight(y int, touched *grid.Touched) {
	cols := t.g.Cols()
	for x := cols - 1; x >= 0; x-- {
		src := x - 1
		if src >= 0 {
			c := t.g.Get(src, y)
			if c.IsOccupied() {
				t.g.WriteCluster(x, y, c.Value, c.Width, c.Style, touched)
				continue
			}
		}
		t.g.EraseLine(y, x, x+1, t.curStyle, touched)
	}
}

// shiftRowLeft shifts row y one column to the left, dropping the
// leftmost column and filling the rightmost column with the current
// style (DECFI at the right margin).
func (t *Terminal) shiftRowLeft(y int, touched *grid.Touched) {
	cols := t.g.Cols()
	for x := 0; x < cols; x++ {
		src := x + 1
		if src < cols {
			c := t.g.Get(src, y)
			if c.IsOccupied() {
				t.g.WriteCluster(x, y, c.Value, c.Width, c.Style, touched)
				continue
			}
		}
		t.g.EraseLine(y, x, x+1, t.curStyle, touched)
	}
}

func (t *Terminal) applyCSI(c vtparse.CSI, touched *grid.Touched, output io.Writer) (*Action, error) {
	area := t.screenRect()
	switch c.Final {
	case 'A':
		t.cursor.Travel(grid.Up(c.Param(0, 1)), area)
	case 'B':
		t.cursor.Travel(grid.Down(c.Param(0, 1)), area)
	case 'C':
		t.cursor.Travel(grid.Right(c.Param(0, 1)), area)
	case 'D':
		t.cursor.Travel(grid.Left(c.Param(0, 1)), area)
	case 'H', 'f':
		row := c.Param(0, 1) - 1
		col := c.Param(1, 1) - 1
		t.cursor.Travel(grid.PositionTo(&col, &row), area)
	case 'd':
		row := c.Param(0, 1) - 1
		t.cursor.Travel(grid.PositionTo(&t.cursor.X, &row), area)
	case 'G':
		col := c.Param(0, 1) - 1
		t.cursor.Travel(grid.PositionTo(&col, &t.cursor.Y), area)
	case 'J':
		t.eraseDisplay(c.Param(0, 0), touched)
	case 'K':
		t.eraseLine(c.Param(0, 0), touched)
	case 'L':
		t.insertLinesAt(c.Param(0, 1), touched)
	case 'M':
		t.deleteLinesAt(c.Param(0, 1), touched)
	case 'P':
		t.deleteChars(c.Param(0, 1), touched)
	case '@':
		t.insertBlank(c.Param(0, 1), touched)
	case 'r':
		t.setScrollRegion(c.Param(0, 1), c.Param(1, t.g.Rows()))
	case 'm':
		t.applySGR(c)
	case 'h':
		t.setModes(c, true)
	case 'l':
		t.setModes(c, false)
	case 's':
		t.saved = t.cursor.Save()
	case 'u':
		t.cursor.Restore(t.saved)
	case 'q':
		if len(c.Intermediates) == 1 && c.Intermediates[0] == ' ' {
			t.setCursorShape(c.Param(0, 0))
		}
	case 'c':
		if !c.Private {
			if output != nil {
				if _, err := output.Write([]byte("\x1b[?6c")); err != nil {
					return nil, ErrWrite
				}
			}
		}
	}
	return nil, nil
}

func (t *Terminal) eraseDisplay(mode int, touched *grid.Touched) {
	rows := t.g.Rows()
	switch mode {
	case 0:
		t.g.EraseLine(t.cursor.Y, t.cursor.X, t.g.Cols(), t.curStyle, touched)
		t.g.EraseRows(t.cursor.Y+1, rows, t.curStyle, touched)
	case 1:
		t.g.EraseLine(t.cursor.Y, 0, t.cursor.X+1, t.curStyle, touched)
		t.g.EraseRows(0, t.cursor.Y, t.curStyle, touched)
	case 2, 3:
		t.g.EraseRows(0, rows, t.curStyle, touched)
	}
}

func (t *Terminal) eraseLine(mode int, touched *grid.Touched) {
	cols := t.g.Cols()
	switch mode {
	case 0:
		t.g.EraseLine(t.cursor.Y, t.cursor.X, cols, t.curStyle, touched)
	case 1:
		t.g.EraseLine(t.cursor.Y, 0, t.cursor.X+1, t.curStyle, touched)
	case 2:
		t.g.EraseLine(t.cursor.Y, 0, cols, t.curStyle, touched)
	}
}

func (t *Terminal) insertLinesAt(n int, touched *grid.Touched) {
	if t.cursor.Y < t.scrollTop || t.cursor.Y > t.scrollBottom {
		return
	}
	t.g.InsertLines(t.cursor.Y, n, t.scrollBottom+1, t.curStyle, touched)
}

func (t *Terminal) deleteLinesAt(n int, touched *grid.Touched) {
	if t.cursor.Y < t.scrollTop || t.cursor.Y > t.scrollBottom {
		return
	}
	t.g.DeleteLines(t.cursor.Y, n, t.scrollBottom+1, t.curStyle, touched)
}

func (t *Terminal) deleteChars(n int, touched *grid.Touched) {
	cols := t.g.Cols()
	y := t.cursor.Y
	for x := t.cursor.X; x < cols; x++ {
		src := x + n
		if src < cols {
			c := t.g.Get(src, y)
			if c.IsOccupied() {
				t.g.WriteCluster(x, y, c.Value, c.Width, c.Style, touched)
			} else {
				t.g.EraseLine(y, x, x+1, t.curStyle, touched)
			}
		} else {
			t.g.EraseLine(y, x, x+1, t.curStyle, touched)
		}
	}
}

func (t *Terminal) insertBlank(n int, touched *grid.Touched) {
	cols := t.g.Cols()
	y := t.cursor.Y
	for x := cols - 1; x >= t.cursor.X; x-- {
		src := x - n
		if src >= t.cursor.X {
			c := t.g.Get(src, y)
			if c.IsOccupied() {
				t.g.WriteCluster(x, y, c.Value, c.Width, c.Style, touched)
				continue
			}
		}
		t.g.EraseLine(y, x, x+1, t.curStyle, touched)
	}
}

func (t *Terminal) setScrollRegion(top, bottom int) {
	rows := t.g.Rows()
	top--
	bottom--
	if top < 0 {
		top = 0
	}
	if bottom >= rows || bottom < top {
		bottom = rows - 1
	}
	t.scrollTop, t.scrollBottom = top, bottom
	zero := 0
	t.cursor.Travel(grid.PositionTo(&zero, &zero), t.screenRect())
}

func (t *Terminal) setCursorShape(n int) {
	switch n {
	case 0, 1, 2:
		t.cursor.Shape = grid.ShapeBlock
	case 3, 4:
		t.cursor.Shape = grid.ShapeLine
	case 5, 6:
		t.cursor.Shape = grid.ShapeBeam
	}
	t.cursor.Blink = n == 0 || n%2 == 1
}

func (t *Terminal) setModes(c vtparse.CSI, set bool) {
	for i := range c.Params {
		n := c.Param(i, 0)
		if c.Private {
			switch n {
			case 25:
				t.cursor.Visible = set
				continue
			case 1:
				t.applyMode(grid.ModeApplicationCursor, set)
				continue
			case 2004:
				t.applyMode(grid.ModeBracketedPaste, set)
				continue
			case 1004:
				t.applyMode(grid.ModeFocus, set)
				continue
			case 5:
				t.applyMode(grid.ModeReverse, set)
				continue
			case 7:
				t.applyMode(grid.ModeWrap, set)
				continue
			}
			continue
		}
		switch n {
		case 2:
			t.applyMode(grid.ModeKeyboardLock, set)
		case 4:
			t.applyMode(grid.ModeInsert, set)
		case 12:
			t.applyMode(grid.ModeEcho, set)
		case 20:
			t.applyMode(grid.ModeCRLF, set)
		}
	}
}

func (t *Terminal) applyMode(m grid.Mode, set bool) {
	if set {
		t.modes = t.modes.Set(m)
	} else {
		t.modes = t.modes.Clear(m)
	}
}

func (t *Terminal) applySGR(c vtparse.CSI) {
	params := c.Params
	if len(params) == 0 {
		params = []int{0}
	}
	st := t.curStyle
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			st = grid.DefaultStyle()
		case p == 1:
			st = st.WithAttr(grid.AttrBold, true)
		case p == 2:
			st = st.WithAttr(grid.AttrFaint, true)
		case p == 3:
			st = st.WithAttr(grid.AttrItalic, true)
		case p == 4:
			st = st.WithAttr(grid.AttrUnderline, true)
		case p == 5:
			st = st.WithAttr(grid.AttrBlink, true)
		case p == 7:
			st = st.WithAttr(grid.AttrReverse, true)
		case p == 8:
			st = st.WithAttr(grid.AttrInvisible, true)
		case p == 9:
			st = st.WithAttr(grid.AttrStruck, true)
		case p == 22:
			st = st.WithAttr(grid.AttrBold, false).WithAttr(grid.AttrFaint, false)
		case p == 23:
			st = st.WithAttr(grid.AttrItalic, false)
		case p == 24:
			st = st.WithAttr(grid.AttrUnderline, false)
		case p == 25:
			st = st.WithAttr(grid.AttrBlink, false)
		case p == 27:
			st = st.WithAttr(grid.AttrReverse, false)
		case p == 28:
			st = st.WithAttr(grid.AttrInvisible, false)
		case p == 29:
			st = st.WithAttr(grid.AttrStruck, false)
		case p >= 30 && p <= 37:
			st = st.WithFg(t.paletteColor(p - 30))
		case p == 38:
			col, consumed := t.extendedColor(params[i+1:])
			if col != nil {
				st = st.WithFg(col)
			}
			i += consumed
		case p == 39:
			st = st.WithFg(t.cfg.DefaultFg)
		case p >= 40 && p <= 47:
			st = st.WithBg(t.paletteColor(p - 40))
		case p == 48:
			col, consumed := t.extendedColor(params[i+1:])
			if col != nil {
				st = st.WithBg(col)
			}
			i += consumed
		case p == 49:
			st = st.WithBg(t.cfg.DefaultBg)
		case p >= 90 && p <= 97:
			st = st.WithFg(t.paletteColor(p - 90 + 8))
		case p >= 100 && p <= 107:
			st = st.WithBg(t.paletteColor(p - 100 + 8))
		}
	}
	t.curStyle = st
}

func (t *Terminal) paletteColor(i int) color.Color {
	if t.cfg.Palette != nil && i >= 0 && i < len(t.cfg.Palette) {
		return t.cfg.Palette[i]
	}
	return DefaultPalette[i%256]
}

// extendedColor parses a 38/48 ";5;n" (256-color) or ";2;r;g;b" (truecolor)
// tail and returns the color plus how many extra params it consumed.
func (t *Terminal) extendedColor(rest []int) (color.Color, int) {
	if len(rest) == 0 {
		return nil, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return nil, 1
		}
		return t.paletteColor(rest[1]), 2
	case 2:
		if len(rest) < 4 {
			return nil, len(rest)
		}
		return color.RGBA{R: uint8(rest[1]), G: uint8(rest[2]), B: uint8(rest[3]), A: 0xFF}, 4
	}
	return nil, 1
}

func (t *Terminal) applyOSC(o vtparse.OSC) (*Action, error) {
	payload := o.Payload
	if rest, ok := strings.CutPrefix(payload, "cursor:"); ok {
		t.applyCursorOSC(rest)
		return nil, nil
	}
	var num string
	var rest string
	if idx := strings.IndexByte(payload, ';'); idx >= 0 {
		num, rest = payload[:idx], payload[idx+1:]
	} else {
		num = payload
	}
	switch num {
	case "0", "k":
		t.title = rest
		return &Action{Kind: ActionTitle, Title: rest}, nil
	}
	return nil, nil
}

// applyCursorOSC handles the "cursor:show", "cursor:hide", and
// "cursor:background:<color>" messages. <color> accepts #rrggbb,
// #rrggbbaa, or a named basic-palette color (e.g. "red", "bright-blue").
func (t *Terminal) applyCursorOSC(rest string) {
	switch {
	case rest == "show":
		t.cursor.Visible = true
	case rest == "hide":
		t.cursor.Visible = false
	default:
		if spec, ok := strings.CutPrefix(rest, "background:"); ok {
			if c, ok := parseOSCColor(spec); ok {
				t.cursor.Background = c
			}
		}
	}
}

var basicColorNames = map[string]int{
	"black": 0, "red": 1, "green": 2, "yellow": 3, "blue": 4, "magenta": 5, "cyan": 6, "white": 7,
	"bright-black": 8, "bright-red": 9, "bright-green": 10, "bright-yellow": 11,
	"bright-blue": 12, "bright-magenta": 13, "bright-cyan": 14, "bright-white": 15,
}

// parseOSCColor accepts #rrggbb, #rrggbbaa (hex, case-insensitive), or a
// named entry from the basic 16-color palette.
func parseOSCColor(s string) (color.Color, bool) {
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return nil, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, false
		}
		if len(hex) == 6 {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
		}
		return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
	}
	if idx, ok := basicColorNames[s]; ok {
		return DefaultPalette[idx], true
	}
	return nil, false
}

