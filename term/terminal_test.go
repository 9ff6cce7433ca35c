package term

import (
	"bytes"
	"testing"

	"github.com/gridterm/gridterm/grid"
)

func newTestTerm(cols, rows int) *Terminal {
	return Open(DefaultConfig(), cols, rows)
}

func TestHandleWritesText(t *testing.T) {
	term := newTestTerm(10, 3)
	actions, dirty, err := term.Handle([]byte("hi"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("expected no actions, got %+v", actions)
	}
	if len(dirty) == 0 {
		t.Fatalf("expected dirty cells")
	}
	if term.Get(0, 0).Value != "h" || term.Get(1, 0).Value != "i" {
		t.Fatalf("unexpected grid contents: %+v %+v", term.Get(0, 0), term.Get(1, 0))
	}
	if term.Cursor().X != 2 {
		t.Fatalf("expected cursor at col 2, got %d", term.Cursor().X)
	}
}

func TestHandleLineWrap(t *testing.T) {
	term := newTestTerm(3, 3)
	if _, _, err := term.Handle([]byte("abcd"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.Get(0, 0).Value != "a" || term.Get(2, 0).Value != "c" {
		t.Fatalf("row 0 not as expected")
	}
	if term.Get(0, 1).Value != "d" {
		t.Fatalf("expected wrap onto row 1, got %+v", term.Get(0, 1))
	}
}

func TestHandleCursorPositioning(t *testing.T) {
	term := newTestTerm(20, 10)
	if _, _, err := term.Handle([]byte("\x1b[5;10H"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := term.Cursor()
	if c.X != 9 || c.Y != 4 {
		t.Fatalf("expected (9,4), got (%d,%d)", c.X, c.Y)
	}
}

func TestHandleEraseDisplay(t *testing.T) {
	term := newTestTerm(5, 2)
	term.Handle([]byte("abcde\r\nfghij"), nil)
	if _, _, err := term.Handle([]byte("\x1b[2J"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 5; x++ {
			if !term.Get(x, y).IsEmpty() {
				t.Fatalf("cell (%d,%d) not erased: %+v", x, y, term.Get(x, y))
			}
		}
	}
}

func TestHandleSGRColors(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("\x1b[1;31mX"), nil)
	cell := term.Get(0, 0)
	if !cell.Style.HasAttr(grid.AttrBold) {
		t.Fatalf("expected bold attribute set")
	}
	if cell.Style.Fg != DefaultPalette[1] {
		t.Fatalf("expected fg palette[1] (red), got %+v", cell.Style.Fg)
	}
}

func TestHandleSGRReset(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("\x1b[1mX\x1b[0mY"), nil)
	if !term.Get(0, 0).Style.HasAttr(grid.AttrBold) {
		t.Fatalf("expected X to be bold")
	}
	if term.Get(1, 0).Style.HasAttr(grid.AttrBold) {
		t.Fatalf("expected Y to not be bold after reset")
	}
}

func TestHandleBellAction(t *testing.T) {
	term := newTestTerm(10, 2)
	actions, _, err := term.Handle([]byte("\x07"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(actions) != 1 || actions[0].Kind != ActionBell {
		t.Fatalf("expected single bell action, got %+v", actions)
	}
}

func TestHandleTitleAction(t *testing.T) {
	term := newTestTerm(10, 2)
	actions, _, err := term.Handle([]byte("\x1b]0;hello\x07"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(actions) != 1 || actions[0].Kind != ActionTitle || actions[0].Title != "hello" {
		t.Fatalf("expected title action 'hello', got %+v", actions)
	}
	if term.Title() != "hello" {
		t.Fatalf("expected stored title 'hello', got %q", term.Title())
	}
}

func TestHandleOSCCursorHide(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("\x1b]cursor:hide\x07"), nil)
	if term.Cursor().Visible {
		t.Fatalf("expected cursor hidden after cursor:hide")
	}
	term.Handle([]byte("\x1b]cursor:show\x07"), nil)
	if !term.Cursor().Visible {
		t.Fatalf("expected cursor visible again after cursor:show")
	}
}

func TestHandleOSCCursorBackgroundHex(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("\x1b]cursor:background:#ff0000\x07"), nil)
	r, g, b, _ := term.Cursor().Background.RGBA()
	if r>>8 != 0xff || g>>8 != 0 || b>>8 != 0 {
		t.Fatalf("expected cursor background red, got r=%d g=%d b=%d", r>>8, g>>8, b>>8)
	}
}

func TestHandleOSCCursorBackgroundNamed(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("\x1b]cursor:background:blue\x07"), nil)
	want := DefaultPalette[4]
	r, g, b, _ := term.Cursor().Background.RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("expected cursor background to match basic-palette blue, got r=%d g=%d b=%d", r>>8, g>>8, b>>8)
	}
}

func TestHandleSaveRestoreCursorIdempotent(t *testing.T) {
	term := newTestTerm(20, 10)
	term.Handle([]byte("\x1b[5;5H"), nil)
	term.Handle([]byte("\x1b7"), nil) // DECSC
	term.Handle([]byte("\x1b[1;1H"), nil)
	term.Handle([]byte("\x1b8"), nil) // DECRC
	c := term.Cursor()
	if c.X != 4 || c.Y != 4 {
		t.Fatalf("expected cursor restored to (4,4), got (%d,%d)", c.X, c.Y)
	}
}

func TestHandleScrollOnLineFeedAtBottom(t *testing.T) {
	term := newTestTerm(5, 2)
	term.Handle([]byte("aa\r\nbb"), nil)
	if _, _, err := term.Handle([]byte("\r\ncc"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.Get(0, 0).Value != "b" {
		t.Fatalf("expected row 0 to hold former row 1 content, got %+v", term.Get(0, 0))
	}
	if term.Get(0, 1).Value != "c" {
		t.Fatalf("expected row 1 to hold new content, got %+v", term.Get(0, 1))
	}
}

func TestHandleMalformedSequencePreservesPriorState(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("OK"), nil)
	_, _, err := term.Handle([]byte("\x1b[31\x01more"), nil)
	if err != nil {
		t.Fatalf("Handle should not surface a parse error: %v", err)
	}
	if term.Get(0, 0).Value != "O" || term.Get(1, 0).Value != "K" {
		t.Fatalf("expected prior state preserved, got %+v %+v", term.Get(0, 0), term.Get(1, 0))
	}
}

func TestKeyRespectsKeyboardLock(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("\x1b[2h"), nil) // set keyboard lock (mode 2)
	var buf bytes.Buffer
	if err := term.Key(Key{Rune: 'a'}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output while keyboard-locked, got %q", buf.String())
	}
}

func TestKeyApplicationCursor(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("\x1b[?1h"), nil)
	var buf bytes.Buffer
	if err := term.Key(Key{Name: KeyUp}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "\x1bOA" {
		t.Fatalf("expected application-mode cursor-up, got %q", buf.String())
	}
}

func TestPasteBracketed(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("\x1b[?2004h"), nil)
	var buf bytes.Buffer
	if err := term.Paste("hi", &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "\x1b[200~hi\x1b[201~"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestHandleDeviceAttributesReply(t *testing.T) {
	term := newTestTerm(10, 2)
	var buf bytes.Buffer
	if _, _, err := term.Handle([]byte("\x1b[c"), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "\x1b[?6c" {
		t.Fatalf("expected device attributes reply, got %q", buf.String())
	}
}
