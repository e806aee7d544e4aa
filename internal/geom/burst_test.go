package geom

import (
	"fmt"
	"testing"
)

func TestBurstRingPartition(t *testing.T) {
	g := openGrid(10, 8)

	centers := []Point{Pt(0, 0), Pt(4, 3), Pt(9, 7), Pt(9, 0), Pt(2, 6)}
	for _, c := range centers {
		for r := 0; r <= 6; r++ {
			t.Run(fmt.Sprintf("%v_r%d", c, r), func(t *testing.T) {
				stages := Burst(g, c, r)
				if len(stages) != r+1 {
					t.Fatalf("got %d stages, want %d", len(stages), r+1)
				}

				seen := make(map[Point]int)
				for k, stage := range stages {
					for _, p := range stage {
						if prev, dup := seen[p]; dup {
							t.Errorf("%v in stage %d and stage %d", p, prev, k)
						}
						seen[p] = k
						if d := Chebyshev(c, p); d != k {
							t.Errorf("%v in stage %d has distance %d", p, k, d)
						}
						if !g.InBounds(p) {
							t.Errorf("%v is out of bounds", p)
						}
					}
				}

				want := 0
				for y := 0; y < 8; y++ {
					for x := 0; x < 10; x++ {
						if Chebyshev(c, Pt(x, y)) <= r {
							want++
							if _, ok := seen[Pt(x, y)]; !ok {
								t.Errorf("%v within radius but missing", Pt(x, y))
							}
						}
					}
				}
				if len(seen) != want {
					t.Errorf("burst covers %d points, want %d", len(seen), want)
				}
			})
		}
	}
}

func TestBurstRadiusZero(t *testing.T) {
	g := openGrid(5, 5)

	stages := Burst(g, Pt(2, 2), 0)
	if len(stages) != 1 || len(stages[0]) != 1 || stages[0][0] != Pt(2, 2) {
		t.Errorf("Burst radius 0 = %v, want [[2,2]]", stages)
	}

	stages = Burst(g, Pt(2, 2), -3)
	if len(stages) != 1 {
		t.Errorf("negative radius produced %d stages, want 1", len(stages))
	}
}

func TestBurstIgnoresWalls(t *testing.T) {
	g := newTestGrid(
		"###",
		"#.#",
		"###",
	)

	tiles := BurstTiles(g, Pt(1, 1), 1)
	if len(tiles) != 9 {
		t.Errorf("BurstTiles returned %d tiles, want 9 (walls are not filtered)", len(tiles))
	}
}

func TestBurstDeterministic(t *testing.T) {
	g := openGrid(12, 12)

	a := BurstTiles(g, Pt(5, 6), 4)
	b := BurstTiles(g, Pt(5, 6), 4)
	if !equalPoints(a, b) {
		t.Error("two identical bursts returned different orders")
	}
	if a[0] != Pt(5, 6) {
		t.Errorf("first tile = %v, want the center", a[0])
	}
}
