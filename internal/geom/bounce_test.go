package geom

import (
	"math"
	"math/rand"
	"testing"
)

func TestBounceReflectsOffEastWall(t *testing.T) {
	g := newTestGrid(
		"........",
		"........",
		"...#....",
		"........",
	)

	got := BounceEndpoints(g, Pt(0, 2), 0, 10, nil)
	want := []Point{Pt(0, 2), Pt(2, 2), Pt(0, 2)}
	if !equalPoints(got, want) {
		t.Fatalf("BounceEndpoints() = %v, want %v", got, want)
	}

	reflected, end, vel := bounce(g, Pt(0, 2), [2]float64{1, 0}, 10, g.IsWall)
	if !reflected {
		t.Fatal("expected a reflection at the wall face")
	}
	if end != Pt(2, 2) {
		t.Errorf("reflection point = %v, want 2,2", end)
	}
	if vel[0] != -1 || vel[1] != 0 {
		t.Errorf("velocity after reflection = %v, want [-1 0]", vel)
	}
}

func TestBounceReflectsOffFloor(t *testing.T) {
	g := newTestGrid(
		".....",
		".....",
		".....",
		".....",
		".....",
		"#####",
	)

	got := BounceEndpoints(g, Pt(2, 0), math.Pi/2, 20, nil)
	want := []Point{Pt(2, 0), Pt(2, 4), Pt(2, 0)}
	if !equalPoints(got, want) {
		t.Errorf("BounceEndpoints() = %v, want %v", got, want)
	}
}

func TestBounceStopsAtDiagonalCorner(t *testing.T) {
	g := newTestGrid(
		"......",
		"......",
		"......",
		"...#..",
		"......",
	)

	got := BounceEndpoints(g, Pt(0, 0), math.Pi/4, 20, nil)
	want := []Point{Pt(0, 0), Pt(2, 2)}
	if !equalPoints(got, want) {
		t.Errorf("BounceEndpoints() = %v, want %v", got, want)
	}
}

func TestBounceStopsAtLevelEdge(t *testing.T) {
	g := openGrid(6, 3)

	got := BounceEndpoints(g, Pt(0, 1), 0, 50, nil)
	want := []Point{Pt(0, 1), Pt(5, 1)}
	if !equalPoints(got, want) {
		t.Errorf("BounceEndpoints() = %v, want %v", got, want)
	}
}

func TestBounceRespectsLength(t *testing.T) {
	g := openGrid(20, 3)

	got := BounceEndpoints(g, Pt(0, 1), 0, 4, nil)
	want := []Point{Pt(0, 1), Pt(4, 1)}
	if !equalPoints(got, want) {
		t.Errorf("BounceEndpoints() = %v, want %v", got, want)
	}
}

func TestBounceDegenerateInputs(t *testing.T) {
	g := newTestGrid(
		"#....",
		".....",
	)

	if got := BounceEndpoints(g, Pt(0, 0), 0, 10, nil); len(got) != 1 {
		t.Errorf("start on a wall: got %v, want only the start", got)
	}
	if got := BounceEndpoints(g, Pt(2, 1), 0, 0, nil); len(got) != 1 {
		t.Errorf("zero length: got %v, want only the start", got)
	}
	if got := BouncingLine(g, Pt(2, 1), 0, 0, false, nil); len(got) != 0 {
		t.Errorf("zero length line: got %v, want no tiles", got)
	}
}

func TestBounceTerminates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		w, h := 6+rng.Intn(20), 6+rng.Intn(20)
		rows := make([]string, h)
		for y := range rows {
			b := make([]byte, w)
			for x := range b {
				if x == 0 || y == 0 || x == w-1 || y == h-1 || rng.Intn(6) == 0 {
					b[x] = '#'
				} else {
					b[x] = '.'
				}
			}
			rows[y] = string(b)
		}
		g := newTestGrid(rows...)

		start := Pt(1+rng.Intn(w-2), 1+rng.Intn(h-2))
		angle := rng.Float64() * 2 * math.Pi
		maxLength := rng.Float64() * 60

		endpoints := BounceEndpoints(g, start, angle, maxLength, nil)
		if len(endpoints) > int(2*maxLength)+3 {
			t.Fatalf("trial %d: %d endpoints for length %.2f", trial, len(endpoints), maxLength)
		}

		total := 0.0
		for i := 0; i+1 < len(endpoints); i++ {
			total += Distance(endpoints[i], endpoints[i+1])
		}
		if total > maxLength+BounceSafety {
			t.Errorf("trial %d: traced %.2f tiles with budget %.2f", trial, total, maxLength)
		}
	}
}

func TestBouncingLineRepeatTiles(t *testing.T) {
	g := newTestGrid(
		"........",
		"........",
		"...#....",
		"........",
	)

	repeated := BouncingLine(g, Pt(0, 2), 0, 10, true, nil)
	wantRepeated := []Point{Pt(0, 2), Pt(1, 2), Pt(2, 2), Pt(2, 2), Pt(1, 2), Pt(0, 2)}
	if !equalPoints(repeated, wantRepeated) {
		t.Errorf("repeatTiles=true: got %v, want %v", repeated, wantRepeated)
	}

	unique := BouncingLine(g, Pt(0, 2), 0, 10, false, nil)
	wantUnique := []Point{Pt(0, 2), Pt(1, 2), Pt(2, 2)}
	if !equalPoints(unique, wantUnique) {
		t.Errorf("repeatTiles=false: got %v, want %v", unique, wantUnique)
	}
}

func TestTraceCorners(t *testing.T) {
	g := newTestGrid(
		"........",
		"........",
		"...#....",
		"........",
	)

	tr := TraceBounce(g, Pt(0, 2), 0, 10, true, nil)
	corners := tr.Corners()
	if len(corners) != 1 || corners[0] != Pt(2, 2) {
		t.Errorf("Corners() = %v, want [2,2]", corners)
	}

	straight := TraceBounce(openGrid(10, 3), Pt(0, 1), 0, 5, true, nil)
	if c := straight.Corners(); len(c) != 0 {
		t.Errorf("straight line has corners %v", c)
	}
}

func TestBounceCustomWallFunc(t *testing.T) {
	g := openGrid(10, 3)
	pillar := func(p Point) bool { return p.X == 4 }

	got := BounceEndpoints(g, Pt(0, 1), 0, 6, pillar)
	if len(got) < 2 || got[1] != Pt(3, 1) {
		t.Errorf("BounceEndpoints() = %v, want a reflection at 3,1", got)
	}
}

func TestBounceClampsTruncatedLeg(t *testing.T) {
	g := openGrid(25, 10)

	// Moving up-left, truncation puts the third cell 4.24 tiles out.
	got := BounceEndpoints(g, Pt(17, 4), 3.903, 3.07, nil)
	want := []Point{Pt(17, 4), Pt(15, 2)}
	if !equalPoints(got, want) {
		t.Errorf("BounceEndpoints = %v, want %v", got, want)
	}
}
