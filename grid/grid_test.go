package grid

import "testing"

func TestWriteClusterWideGlyphInvariant(t *testing.T) {
	g := NewGrid(5, 10, 0, DefaultStyle())
	touched := NewTouched(10)

	if !g.WriteCluster(2, 1, "漢", 2, DefaultStyle(), touched) {
		t.Fatalf("expected write to succeed")
	}

	base := g.Get(2, 1)
	if base.Kind != Occupied || base.Width != 2 {
		t.Fatalf("expected occupied width-2 base, got %+v", base)
	}
	ref := g.Get(3, 1)
	if ref.Kind != Reference || ref.Offset != 1 {
		t.Fatalf("expected reference offset 1, got %+v", ref)
	}
}

func TestWriteOverwritesWideGlyphColumns(t *testing.T) {
	g := NewGrid(5, 10, 0, DefaultStyle())
	touched := NewTouched(10)
	g.WriteCluster(2, 0, "漢", 2, DefaultStyle(), touched)

	// Writing into the reference column must clear the whole glyph first.
	g.WriteCluster(3, 0, "x", 1, DefaultStyle(), touched)

	base := g.Get(2, 0)
	if base.Kind != Empty {
		t.Fatalf("expected base cleared, got %+v", base)
	}
	at3 := g.Get(3, 0)
	if at3.Kind != Occupied || at3.Value != "x" {
		t.Fatalf("expected 'x' at column 3, got %+v", at3)
	}
}

func TestIterSkipsReferenceCells(t *testing.T) {
	g := NewGrid(2, 4, 0, DefaultStyle())
	touched := NewTouched(4)
	g.WriteCluster(0, 0, "漢", 2, DefaultStyle(), touched)
	g.WriteCluster(2, 0, "y", 1, DefaultStyle(), touched)

	cells := g.Iter(Rect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 1})
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells (base, skip reference, y, empty), got %d", len(cells))
	}
	for _, cv := range cells {
		if cv.Kind == Reference {
			t.Fatalf("reference cell leaked into iterator: %+v", cv)
		}
	}
}

func TestScrollbackAppendAndBound(t *testing.T) {
	g := NewGrid(3, 5, 2, DefaultStyle())
	touched := NewTouched(5)
	g.WriteCluster(0, 0, "a", 1, DefaultStyle(), touched)

	g.AppendRows(1, DefaultStyle())
	if g.ScrollbackLen() != 1 {
		t.Fatalf("expected scrollback len 1, got %d", g.ScrollbackLen())
	}

	g.AppendRows(5, DefaultStyle())
	if g.ScrollbackLen() != 2 {
		t.Fatalf("expected scrollback bounded at 2, got %d", g.ScrollbackLen())
	}
}

func TestDeleteLinesAndInsertLines(t *testing.T) {
	g := NewGrid(4, 3, 0, DefaultStyle())
	touched := NewTouched(3)
	for y := 0; y < 4; y++ {
		g.WriteCluster(0, y, string(rune('A'+y)), 1, DefaultStyle(), touched)
	}

	g.DeleteLines(1, 1, 4, DefaultStyle(), touched)
	if g.Get(0, 1).Value != "C" {
		t.Fatalf("expected row 1 to now hold C, got %q", g.Get(0, 1).Value)
	}
	if g.Get(0, 3).Kind != Empty {
		t.Fatalf("expected trailing row cleared after delete")
	}

	g.InsertLines(1, 1, 4, DefaultStyle(), touched)
	if g.Get(0, 1).Kind != Empty {
		t.Fatalf("expected inserted blank row at 1")
	}
	if g.Get(0, 2).Value != "C" {
		t.Fatalf("expected C pushed down to row 2, got %q", g.Get(0, 2).Value)
	}
}

func TestTouchedDrainEmptiesSet(t *testing.T) {
	touched := NewTouched(10)
	touched.Mark(1, 1)
	touched.Line(2)

	area := Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}
	pts := touched.Drain(area)
	if len(pts) != 1+10 {
		t.Fatalf("expected 11 dirty points, got %d", len(pts))
	}
	if !touched.Empty() {
		t.Fatalf("expected touched set empty after drain")
	}
}

func TestCursorSaveRestore(t *testing.T) {
	c := NewCursor()
	c.X, c.Y = 5, 6
	saved := c.Save()

	area := Rect{MinX: 0, MinY: 0, MaxX: 80, MaxY: 24}
	c.Travel(Right(10), area)
	c.Travel(Down(3), area)

	c.Restore(saved)
	if c.X != 5 || c.Y != 6 {
		t.Fatalf("expected cursor restored to (5,6), got (%d,%d)", c.X, c.Y)
	}
}

func TestCursorTravelDownSignalsScroll(t *testing.T) {
	c := NewCursor()
	area := Rect{MinX: 0, MinY: 0, MaxX: 80, MaxY: 5}
	c.Y = 4
	n := c.Travel(Down(2), area)
	if n != 2 {
		t.Fatalf("expected 2 scroll rows signaled, got %d", n)
	}
	if c.Y != area.MaxY-1 {
		t.Fatalf("expected cursor clamped to bottom row, got %d", c.Y)
	}
}

func TestStyleEquality(t *testing.T) {
	s1 := NewStyle(nil, nil, AttrBold)
	s2 := NewStyle(nil, nil, AttrBold)
	if !s1.Equal(s2) {
		t.Fatalf("expected structurally equal styles to compare equal")
	}
	if s1 == s2 {
		t.Fatalf("expected distinct allocations (sanity check for this test)")
	}
}
