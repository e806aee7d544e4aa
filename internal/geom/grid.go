package geom

// Grid is the read-only view of the host level that the geometry needs.
// The host owns the tiles; nothing in this package mutates them.
type Grid interface {
	// InBounds reports whether p lies on the level.
	InBounds(p Point) bool

	// IsWall reports whether the tile at p is a wall. Only called for in-bounds points.
	IsWall(p Point) bool

	// IsChasm reports whether the tile at p is a chasm. Only called for in-bounds points.
	IsChasm(p Point) bool

	// PointsInLine enumerates the tiles on the straight line from -> to,
	// both ends included. With findClear set the host may pick an
	// alternative line that avoids walls and returns nil if none exists.
	PointsInLine(from, to Point, findClear bool) []Point
}

// WallFunc decides whether a tile stops or reflects a traced line.
type WallFunc func(p Point) bool

// Walls returns the default WallFunc for g: the tile is a wall.
func Walls(g Grid) WallFunc {
	return g.IsWall
}

var neighbourOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Adjacent returns the in-bounds 8-neighbours of p.
func Adjacent(g Grid, p Point) []Point {
	out := make([]Point, 0, len(neighbourOffsets))
	for _, o := range neighbourOffsets {
		n := p.Add(o[0], o[1])
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// HasAdjacentWall reports whether any 8-neighbour of p is a wall.
func HasAdjacentWall(g Grid, p Point) bool {
	for _, n := range Adjacent(g, p) {
		if g.IsWall(n) {
			return true
		}
	}
	return false
}

// HasAdjacentChasm reports whether any 8-neighbour of p is a chasm.
func HasAdjacentChasm(g Grid, p Point) bool {
	for _, n := range Adjacent(g, p) {
		if g.IsChasm(n) {
			return true
		}
	}
	return false
}
