package occgrid

import "testing"

func TestNew(t *testing.T) {
	g := New(8)
	if g.Width() != 8 {
		t.Fatalf("expected width 8, got %d", g.Width())
	}
	if g.Count() != 0 {
		t.Fatalf("new grid has %d cells on", g.Count())
	}
}

func TestNewNegativeSize(t *testing.T) {
	g := New(-3)
	if g.Width() != 0 {
		t.Fatalf("expected width 0, got %d", g.Width())
	}
	g.Set(0, 0) // must not panic
	if g.String() != "" {
		t.Errorf("empty grid should print as empty string, got %q", g.String())
	}
}

func TestSetAndAt(t *testing.T) {
	g := New(4)
	g.Set(1, 2)
	if !g.At(1, 2) {
		t.Error("(1,2) should be on")
	}
	if g.At(2, 1) {
		t.Error("(2,1) should be off")
	}
	if g.Count() != 1 {
		t.Errorf("expected 1 cell on, got %d", g.Count())
	}
}

func TestSetOutOfBounds(t *testing.T) {
	g := New(4)
	g.Set(-1, 0)
	g.Set(0, -1)
	g.Set(4, 0)
	g.Set(0, 4)
	g.Set(100, 100)
	if g.Count() != 0 {
		t.Fatalf("out-of-bounds Set changed %d cells", g.Count())
	}
	if g.At(-1, 0) || g.At(4, 4) {
		t.Error("out-of-bounds At should read off")
	}
}

func TestSetSpanClips(t *testing.T) {
	g := New(5)
	g.SetSpan(2, -3, 1)
	g.SetSpan(3, 3, 10)
	g.SetSpan(-1, 0, 4)
	g.SetSpan(5, 0, 4)
	g.SetSpan(4, 3, 2)

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 2, true},
		{1, 2, true},
		{2, 2, false},
		{3, 3, true},
		{4, 3, true},
		{2, 3, false},
		{2, 4, false},
	}
	for _, tc := range tests {
		if got := g.At(tc.x, tc.y); got != tc.want {
			t.Errorf("At(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
	if g.Count() != 4 {
		t.Errorf("expected 4 cells on, got %d", g.Count())
	}
}

func TestSetNeverClears(t *testing.T) {
	g := New(3)
	g.Set(1, 1)
	g.Set(1, 1)
	g.SetSpan(1, 0, 2)
	if !g.At(1, 1) {
		t.Error("repeated writes must keep the cell on")
	}
}

func TestReset(t *testing.T) {
	g := New(6)
	for i := 0; i < 6; i++ {
		g.Set(i, i)
	}
	g.Reset()
	if g.Count() != 0 {
		t.Errorf("after Reset: %d cells on", g.Count())
	}
	if g.Width() != 6 {
		t.Errorf("Reset changed width to %d", g.Width())
	}
}

func TestRowsTopFirst(t *testing.T) {
	g := New(3)
	g.Set(0, 0) // bottom-left
	g.Set(2, 2) // top-right
	rows := g.Rows()
	if !rows[0][2] {
		t.Error("top row should contain (2,2)")
	}
	if !rows[2][0] {
		t.Error("bottom row should contain (0,0)")
	}
	rows[0][0] = true
	if g.At(0, 2) {
		t.Error("Rows must return a copy")
	}
}

func TestString(t *testing.T) {
	g := New(3)
	g.Set(0, 0)
	g.Set(1, 2)
	want := ".#.\n...\n#.."
	if got := g.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestEqualAndClone(t *testing.T) {
	a := New(4)
	a.Set(1, 3)
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone should equal original")
	}
	b.Set(0, 0)
	if a.Equal(b) {
		t.Error("modified clone should differ")
	}
	if a.At(0, 0) {
		t.Error("Clone must not share storage")
	}
	if a.Equal(New(5)) {
		t.Error("grids of different width should differ")
	}
}
