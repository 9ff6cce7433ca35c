package term

import "testing"

func TestSnapshotTextDetail(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("hi"), nil)
	snap := term.Snapshot(SnapshotDetailText)
	if snap.Lines[0].Text != "hi" {
		t.Fatalf("expected line text \"hi\", got %q", snap.Lines[0].Text)
	}
	if snap.Lines[0].Segments != nil || snap.Lines[0].Cells != nil {
		t.Fatalf("expected no segments/cells at text detail")
	}
}

func TestSnapshotStyledDetailSplitsRuns(t *testing.T) {
	term := newTestTerm(10, 2)
	term.Handle([]byte("\x1b[1mA\x1b[0mB"), nil)
	snap := term.Snapshot(SnapshotDetailStyled)
	segs := snap.Lines[0].Segments
	if len(segs) < 2 {
		t.Fatalf("expected at least 2 style runs, got %d: %+v", len(segs), segs)
	}
	if !segs[0].Attrs.Bold {
		t.Fatalf("expected first run to be bold")
	}
	if segs[1].Attrs.Bold {
		t.Fatalf("expected second run to not be bold")
	}
}

func TestSnapshotFullDetailPerCell(t *testing.T) {
	term := newTestTerm(5, 1)
	term.Handle([]byte("ab"), nil)
	snap := term.Snapshot(SnapshotDetailFull)
	cells := snap.Lines[0].Cells
	if len(cells) != 5 {
		t.Fatalf("expected one cell entry per column, got %d", len(cells))
	}
	if cells[0].Char != "a" || cells[1].Char != "b" {
		t.Fatalf("expected cells 'a','b', got %q %q", cells[0].Char, cells[1].Char)
	}
}

func TestSnapshotCursorState(t *testing.T) {
	term := newTestTerm(10, 5)
	term.Handle([]byte("\x1b[3;4H"), nil)
	snap := term.Snapshot(SnapshotDetailText)
	if snap.Cursor.X != 3 || snap.Cursor.Y != 2 {
		t.Fatalf("expected cursor at (3,2), got (%d,%d)", snap.Cursor.X, snap.Cursor.Y)
	}
}
