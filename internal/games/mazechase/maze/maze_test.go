package maze

import (
	"errors"
	"testing"

	"github.com/vovakirdan/maze-chase/internal/core"
)

func TestClassicLayoutGeometry(t *testing.T) {
	l := Classic()
	if l.Width() != 31 || l.Height() != 31 {
		t.Fatalf("size = %dx%d, expected 31x31", l.Width(), l.Height())
	}

	power := l.PowerCells()
	expected := []core.Point{core.Pt(1, 6), core.Pt(29, 6), core.Pt(1, 23), core.Pt(29, 23)}
	if len(power) != len(expected) {
		t.Fatalf("PowerCells() = %v", power)
	}
	for i := range expected {
		if power[i] != expected[i] {
			t.Errorf("PowerCells()[%d] = %v, expected %v", i, power[i], expected[i])
		}
	}

	for x := 12; x <= 18; x++ {
		if k := l.Kind(core.Pt(x, 15)); k != GhostHome {
			t.Errorf("Kind(%d,15) = %v, expected ghost-home", x, k)
		}
	}
	for x := 14; x <= 16; x++ {
		if k := l.Kind(core.Pt(x, 14)); k != GhostHomeEntry {
			t.Errorf("Kind(%d,14) = %v, expected ghost-home-entry", x, k)
		}
	}

	if l.Kind(l.PlayerStart) != Open || l.PlayerStart != core.Pt(15, 23) {
		t.Errorf("player start %v is %v", l.PlayerStart, l.Kind(l.PlayerStart))
	}
	for i, p := range l.GhostStarts {
		if p != core.Pt(12+2*i, 15) || !l.IsHome(p) {
			t.Errorf("ghost %d start %v not in home", i, p)
		}
	}
	if l.IsWall(l.TunnelLeft) || l.IsWall(l.TunnelRight) {
		t.Error("tunnel ends must be open")
	}
	if l.TunnelLeft != core.Pt(0, 15) || l.TunnelRight != core.Pt(30, 15) {
		t.Errorf("tunnel = %v..%v", l.TunnelLeft, l.TunnelRight)
	}
}

func TestKindOffGridIsWall(t *testing.T) {
	l := Classic()
	for _, p := range []core.Point{core.Pt(-1, 15), core.Pt(31, 15), core.Pt(0, -1), core.Pt(0, 31)} {
		if !l.IsWall(p) {
			t.Errorf("IsWall(%v) = false for off-grid cell", p)
		}
	}
}

func TestParseLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"ragged", []string{"F-7", "|."}},
		{"bad glyph", []string{"F-7", "|x|", "L-J"}},
		{"too wide", []string{"..................................."}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLayout(tc.rows); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCellKindNeverChanges(t *testing.T) {
	m := New(Classic())
	before := make([]CellKind, 0, m.Width()*m.Height())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			before = append(before, m.CellKind(core.Pt(x, y)))
		}
	}

	// Eat everything
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if _, err := m.ConsumeCollectible(core.Pt(x, y)); err != nil {
				t.Fatal(err)
			}
		}
	}
	if m.Remaining() != 0 {
		t.Fatalf("Remaining() = %d after eating everything", m.Remaining())
	}

	i := 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if got := m.CellKind(core.Pt(x, y)); got != before[i] {
				t.Errorf("CellKind(%d,%d) changed from %v to %v", x, y, before[i], got)
			}
			i++
		}
	}
}

func TestConsumeKeepsCounterInSync(t *testing.T) {
	m := New(Classic())
	if m.Remaining() != m.CountBits() {
		t.Fatalf("initial Remaining %d != CountBits %d", m.Remaining(), m.CountBits())
	}

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := core.Pt(x, y)
			had := m.HasCollectible(p)
			before := m.Remaining()

			c, err := m.ConsumeCollectible(p)
			if err != nil {
				t.Fatalf("ConsumeCollectible(%v): %v", p, err)
			}
			if had {
				if c == CollectibleNone || m.Remaining() != before-1 || m.HasCollectible(p) {
					t.Fatalf("consume at %v: got %v, remaining %d -> %d", p, c, before, m.Remaining())
				}
			} else if c != CollectibleNone || m.Remaining() != before {
				t.Fatalf("consume of empty cell %v changed state", p)
			}
			if m.Remaining() != m.CountBits() {
				t.Fatalf("Remaining %d != CountBits %d at %v", m.Remaining(), m.CountBits(), p)
			}
		}
	}
}

func TestPowerMarkers(t *testing.T) {
	m := New(Classic())
	p := core.Pt(1, 6)
	if !m.HasPowerMarker(p) {
		t.Fatal("expected power marker at (1,6)")
	}
	if m.HasPowerMarker(core.Pt(1, 7)) {
		t.Error("(1,7) holds an ordinary dot, not a power marker")
	}
	if c, _ := m.ConsumeCollectible(core.Pt(1, 7)); c != CollectibleDot {
		t.Errorf("consume (1,7) = %v, expected dot", c)
	}
	if c, _ := m.ConsumeCollectible(p); c != CollectiblePower {
		t.Errorf("consume (1,6) = %v, expected power", c)
	}
	if m.HasPowerMarker(p) {
		t.Error("power marker should be gone")
	}
}

func TestConsumeOutOfRange(t *testing.T) {
	m := New(Classic())
	before := m.Remaining()
	_, err := m.ConsumeCollectible(core.Pt(31, 0))
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if m.Remaining() != before {
		t.Error("failed consume changed the counter")
	}
}

func TestResetFromLayoutIdempotent(t *testing.T) {
	m := New(Classic())
	full := m.Remaining()
	if _, err := m.ConsumeCollectible(core.Pt(1, 1)); err != nil {
		t.Fatal(err)
	}

	m.ResetFromLayout()
	m.ResetFromLayout()
	if m.Remaining() != full || !m.HasCollectible(core.Pt(1, 1)) {
		t.Errorf("after reset Remaining() = %d, expected %d", m.Remaining(), full)
	}
}

func TestRestoreRows(t *testing.T) {
	m := New(Classic())
	if _, err := m.ConsumeCollectible(core.Pt(1, 1)); err != nil {
		t.Fatal(err)
	}
	rows := m.Rows()
	want := m.Remaining()

	other := New(Classic())
	if err := other.RestoreRows(rows); err != nil {
		t.Fatalf("RestoreRows: %v", err)
	}
	if other.Remaining() != want || other.HasCollectible(core.Pt(1, 1)) {
		t.Errorf("restored Remaining() = %d, expected %d", other.Remaining(), want)
	}

	// Rows() is a copy
	rows[1] = 0
	if !other.HasCollectible(core.Pt(2, 1)) {
		t.Error("RestoreRows must copy its input")
	}

	if err := other.RestoreRows(rows[:3]); err == nil {
		t.Error("expected error for short row slice")
	}

	wall := m.Rows()
	wall[0] |= 1 // (0,0) is a wall
	if err := other.RestoreRows(wall); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for bit on a wall, got %v", err)
	}

	wide := m.Rows()
	wide[1] |= 1 << 31 // column 31 is past the 31-wide grid
	if err := other.RestoreRows(wide); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for bit past the grid, got %v", err)
	}
}
