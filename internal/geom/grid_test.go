package geom

import "testing"

// testGrid is a minimal Grid backed by text rows: '#' wall, ':' chasm,
// anything else floor.
type testGrid struct {
	rows []string
}

func newTestGrid(rows ...string) *testGrid {
	return &testGrid{rows: rows}
}

func openGrid(w, h int) *testGrid {
	rows := make([]string, h)
	for y := range rows {
		b := make([]byte, w)
		for x := range b {
			b[x] = '.'
		}
		rows[y] = string(b)
	}
	return &testGrid{rows: rows}
}

func (g *testGrid) InBounds(p Point) bool {
	return p.Y >= 0 && p.Y < len(g.rows) && p.X >= 0 && p.X < len(g.rows[p.Y])
}

func (g *testGrid) IsWall(p Point) bool  { return g.rows[p.Y][p.X] == '#' }
func (g *testGrid) IsChasm(p Point) bool { return g.rows[p.Y][p.X] == ':' }

func (g *testGrid) PointsInLine(from, to Point, findClear bool) []Point {
	var out []Point
	dx, dy := abs(to.X-from.X), -abs(to.Y-from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}
	err := dx + dy
	x, y := from.X, from.Y
	for {
		out = append(out, Point{x, y})
		if x == to.X && y == to.Y {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func TestAdjacent(t *testing.T) {
	g := openGrid(3, 3)

	if n := len(Adjacent(g, Pt(1, 1))); n != 8 {
		t.Errorf("Adjacent(center) returned %d points, want 8", n)
	}
	if n := len(Adjacent(g, Pt(0, 0))); n != 3 {
		t.Errorf("Adjacent(corner) returned %d points, want 3", n)
	}
}

func TestHasAdjacentWallAndChasm(t *testing.T) {
	g := newTestGrid(
		"#....",
		".....",
		"....:",
	)

	tests := []struct {
		p         Point
		wantWall  bool
		wantChasm bool
	}{
		{Pt(1, 1), true, false},
		{Pt(2, 1), false, false},
		{Pt(3, 1), false, true},
		{Pt(4, 2), false, false},
		{Pt(0, 0), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			if got := HasAdjacentWall(g, tt.p); got != tt.wantWall {
				t.Errorf("HasAdjacentWall(%v) = %v, want %v", tt.p, got, tt.wantWall)
			}
			if got := HasAdjacentChasm(g, tt.p); got != tt.wantChasm {
				t.Errorf("HasAdjacentChasm(%v) = %v, want %v", tt.p, got, tt.wantChasm)
			}
		})
	}
}

func TestDedupKeepsFirstOccurrence(t *testing.T) {
	in := []Point{Pt(1, 1), Pt(2, 3), Pt(4, 4), Pt(2, 3), Pt(1, 1), Pt(5, 0)}
	want := []Point{Pt(1, 1), Pt(2, 3), Pt(4, 4), Pt(5, 0)}

	got := Dedup(in)
	if !equalPoints(got, want) {
		t.Errorf("Dedup() = %v, want %v", got, want)
	}
}

func TestWithout(t *testing.T) {
	got := Without([]Point{Pt(0, 0), Pt(1, 0), Pt(0, 0), Pt(2, 0)}, Pt(0, 0))
	want := []Point{Pt(1, 0), Pt(2, 0)}
	if !equalPoints(got, want) {
		t.Errorf("Without() = %v, want %v", got, want)
	}
}

func TestDistanceMetrics(t *testing.T) {
	if d := Chebyshev(Pt(0, 0), Pt(3, -5)); d != 5 {
		t.Errorf("Chebyshev = %d, want 5", d)
	}
	if d := Distance(Pt(0, 0), Pt(3, 4)); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		input   string
		want    Point
		wantErr bool
	}{
		{"3,4", Pt(3, 4), false},
		{" 10 , 0 ", Pt(10, 0), false},
		{"-1,2", Pt(-1, 2), false},
		{"3;4", Point{}, true},
		{"a,4", Point{}, true},
		{"3,", Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePoint(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePoint(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePoint(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if p, _ := ParsePoint(Pt(7, 9).String()); p != Pt(7, 9) {
		t.Errorf("String() output did not parse back: %v", p)
	}
}

func equalPoints(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
