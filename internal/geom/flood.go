package geom

// Flood expands bursts outward from seeds along a connectivity graph that is
// discovered as it goes. Every seed is expanded with expand; every tile in the
// expansion is added to the result, and if follow reports an entity standing
// on it, that entity is queued for its own expansion.
//
// An entity is expanded at most once, so the flood ends after at most one
// expansion per distinct entity. Tiles are returned once each, in the order
// they were first reached.
func Flood[K comparable](seeds []K, expand func(K) [][]Point, follow func(Point) (K, bool)) []Point {
	queued := make(map[K]struct{}, len(seeds))
	open := make([]K, 0, len(seeds))
	for _, s := range seeds {
		if _, ok := queued[s]; ok {
			continue
		}
		queued[s] = struct{}{}
		open = append(open, s)
	}

	visited := make(map[Point]struct{})
	var tiles []Point

	for len(open) > 0 {
		item := open[0]
		open = open[1:]

		for _, stage := range expand(item) {
			for _, p := range stage {
				if _, ok := visited[p]; !ok {
					visited[p] = struct{}{}
					tiles = append(tiles, p)
				}

				if follow == nil {
					continue
				}
				next, ok := follow(p)
				if !ok {
					continue
				}
				if _, done := queued[next]; done {
					continue
				}
				queued[next] = struct{}{}
				open = append(open, next)
			}
		}
	}

	return tiles
}
