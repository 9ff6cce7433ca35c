package rendercache

import (
	"testing"

	"github.com/gridterm/gridterm/grid"
)

func countingShaper(calls *int) Shaper {
	return func(value string, attrs grid.StyleAttrs) *Computed {
		*calls++
		return &Computed{Advance: len(value)}
	}
}

func cellView(x, y int, value string, style *grid.Style) grid.CellView {
	return grid.CellView{
		Position: grid.Position{X: x, Y: y},
		Cell:     grid.Cell{Kind: grid.Occupied, Value: value, Width: 1, Style: style},
	}
}

func TestUpdateReportsChangeOnFirstSight(t *testing.T) {
	c := New(80, 24, 16, countingShaper(new(int)))
	if !c.Update(cellView(0, 0, "a", grid.DefaultStyle())) {
		t.Fatalf("expected first Update at a position to report a change")
	}
}

func TestUpdateReportsNoChangeWhenIdentical(t *testing.T) {
	c := New(80, 24, 16, countingShaper(new(int)))
	cv := cellView(5, 2, "x", grid.DefaultStyle())
	c.Update(cv)
	if c.Update(cv) {
		t.Fatalf("expected second identical Update to report no change")
	}
}

func TestUpdateReportsChangeWhenValueDiffers(t *testing.T) {
	c := New(80, 24, 16, countingShaper(new(int)))
	c.Update(cellView(5, 2, "x", grid.DefaultStyle()))
	if !c.Update(cellView(5, 2, "y", grid.DefaultStyle())) {
		t.Fatalf("expected a changed value to report a change")
	}
}

func TestUpdateReportsChangeWhenStyleDiffers(t *testing.T) {
	c := New(80, 24, 16, countingShaper(new(int)))
	c.Update(cellView(5, 2, "x", grid.DefaultStyle()))
	bold := grid.DefaultStyle().WithAttr(grid.AttrBold, true)
	if !c.Update(cellView(5, 2, "x", bold)) {
		t.Fatalf("expected a changed style to report a change")
	}
}

func TestInvalidateForcesNextUpdateToReportChange(t *testing.T) {
	c := New(80, 24, 16, countingShaper(new(int)))
	cv := cellView(1, 1, "z", grid.DefaultStyle())
	c.Update(cv)
	c.Invalidate(cv)
	if !c.Update(cv) {
		t.Fatalf("expected an invalidated cell to report a change even with identical content")
	}
}

func TestResizeClearsSnapshots(t *testing.T) {
	c := New(80, 24, 16, countingShaper(new(int)))
	cv := cellView(1, 1, "z", grid.DefaultStyle())
	c.Update(cv)
	c.Resize(80, 24)
	if !c.Update(cv) {
		t.Fatalf("expected Resize to drop prior snapshots")
	}
}

func TestComputeCachesByShapingAttrsOnly(t *testing.T) {
	calls := 0
	c := New(80, 24, 16, countingShaper(&calls))
	underline := grid.DefaultStyle().WithAttr(grid.AttrUnderline, true)
	c.Compute("a", 0)
	c.Compute("a", grid.AttrUnderline)
	if calls != 1 {
		t.Fatalf("expected underline (non-shaping) to share a cache entry with no attrs, got %d calls", calls)
	}
	_ = underline
	c.Compute("a", grid.AttrBold)
	if calls != 2 {
		t.Fatalf("expected bold (a shaping attr) to trigger a fresh computation, got %d calls", calls)
	}
}

func TestComputeEvictsUnderCapacity(t *testing.T) {
	calls := 0
	c := New(80, 24, 1, countingShaper(&calls))
	c.Compute("a", 0)
	c.Compute("b", 0)
	if c.Len() != 1 {
		t.Fatalf("expected capacity-1 cache to hold only 1 entry, got %d", c.Len())
	}
	c.Compute("a", 0)
	if calls != 3 {
		t.Fatalf("expected eviction of \"a\" to force recomputation, got %d calls", calls)
	}
}
