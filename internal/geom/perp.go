package geom

import "math"

// PerpPoint returns the point length tiles to one side of source, measured
// perpendicular to the direction source -> dest. direction picks the side
// (+1 or -1). The direction vector is scaled so its longer axis is 1 before
// it is rotated, and the result is rounded half to even.
func PerpPoint(source, dest Point, length float64, direction int) Point {
	return PerpPointSlope(source, dest.X-source.X, dest.Y-source.Y, length, direction)
}

// PerpPointSlope is PerpPoint with the direction given as (dx, dy).
func PerpPointSlope(p Point, dx, dy int, length float64, direction int) Point {
	longer := max(abs(dx), abs(dy))
	if longer == 0 {
		return p
	}

	nx := float64(dx) / float64(longer)
	ny := float64(dy) / float64(longer)
	d := float64(direction)

	return Point{
		X: int(math.RoundToEven(float64(p.X) + ny*length*d)),
		Y: int(math.RoundToEven(float64(p.Y) - nx*length*d)),
	}
}

// HelixPair is one step of a helix: the two mirrored points beside a line tile.
type HelixPair [2]Point

// Helix walks line (which should start at origin) and returns, for each
// tile, the two points offset perpendicular to (dx, dy) by a distance that
// swings with a sine of the distance travelled from origin.
func Helix(line []Point, origin Point, dx, dy int) []HelixPair {
	pairs := make([]HelixPair, 0, len(line))
	for _, p := range line {
		offset := (math.Sin(Distance(p, origin)*0.5) + 1) * 0.7
		pairs = append(pairs, HelixPair{
			PerpPointSlope(p, dx, dy, offset, 1),
			PerpPointSlope(p, dx, dy, offset, -1),
		})
	}
	return pairs
}
