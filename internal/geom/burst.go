package geom

// Burst returns the rings around center out to radius. Ring 0 holds the
// center itself and ring k holds every in-bounds point at Chebyshev distance
// exactly k. Walls are not filtered; callers decide whether they block.
//
// Within a ring points are ordered row by row, left to right, so two calls
// with the same arguments on the same level return identical slices.
func Burst(g Grid, center Point, radius int) [][]Point {
	if radius < 0 {
		radius = 0
	}

	stages := make([][]Point, 0, radius+1)
	for k := 0; k <= radius; k++ {
		stages = append(stages, ring(g, center, k))
	}
	return stages
}

// ring enumerates the square ring at distance k: the full top row, the two
// side cells of each middle row, then the full bottom row.
func ring(g Grid, center Point, k int) []Point {
	if k == 0 {
		if g.InBounds(center) {
			return []Point{center}
		}
		return []Point{}
	}

	out := make([]Point, 0, 8*k)
	add := func(p Point) {
		if g.InBounds(p) {
			out = append(out, p)
		}
	}

	for dx := -k; dx <= k; dx++ {
		add(center.Add(dx, -k))
	}
	for dy := -k + 1; dy <= k-1; dy++ {
		add(center.Add(-k, dy))
		add(center.Add(k, dy))
	}
	for dx := -k; dx <= k; dx++ {
		add(center.Add(dx, k))
	}
	return out
}

// Flatten concatenates burst stages in ring order.
func Flatten(stages [][]Point) []Point {
	n := 0
	for _, s := range stages {
		n += len(s)
	}
	out := make([]Point, 0, n)
	for _, s := range stages {
		out = append(out, s...)
	}
	return out
}

// BurstTiles is Flatten(Burst(g, center, radius)).
func BurstTiles(g Grid, center Point, radius int) []Point {
	return Flatten(Burst(g, center, radius))
}
