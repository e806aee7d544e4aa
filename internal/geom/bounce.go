package geom

import "math"

// BounceSafety is subtracted from the remaining length after every
// reflection so traces that keep hitting the same pocket still run out.
const BounceSafety = 0.5

// Trace is the result of a bouncing line: the points where it started,
// reflected and stopped, and every tile it crossed.
type Trace struct {
	Endpoints []Point
	Tiles     []Point
}

// Corners returns the reflection points, i.e. the endpoints without the
// start and the final stop.
func (t Trace) Corners() []Point {
	if len(t.Endpoints) <= 2 {
		return nil
	}
	return t.Endpoints[1 : len(t.Endpoints)-1]
}

// TraceBounce marches a line from start at angle (radians) for at most
// maxLength tiles, reflecting off tiles for which wall returns true.
func TraceBounce(g Grid, start Point, angle, maxLength float64, repeatTiles bool, wall WallFunc) Trace {
	endpoints := BounceEndpoints(g, start, angle, maxLength, wall)
	return Trace{
		Endpoints: endpoints,
		Tiles:     Path(g, endpoints, repeatTiles),
	}
}

// BounceEndpoints returns the start, every reflection point and the final
// stopping point of a bouncing line.
//
// Each leg marches one tile per step. A leg ends when the tile it is on is a
// wall (stop at the previous tile), when the next tile is off the level, or
// when the next tile is a wall. In the last case the horizontal and vertical
// neighbours in the direction of travel are tested and the matching velocity
// components are inverted; if neither neighbour blocks, the line stops there
// instead of reflecting.
func BounceEndpoints(g Grid, start Point, angle, maxLength float64, wall WallFunc) []Point {
	if wall == nil {
		wall = Walls(g)
	}

	endpoints := []Point{start}
	if !g.InBounds(start) || wall(start) {
		return endpoints
	}

	vel := [2]float64{math.Cos(angle), math.Sin(angle)}
	lengthLeft := maxLength
	current := start

	for lengthLeft > 0 {
		reflected, end, next := bounce(g, current, vel, lengthLeft, wall)
		endpoints = append(endpoints, end)
		if !reflected {
			break
		}

		lengthLeft -= Distance(end, current)
		lengthLeft -= BounceSafety

		current = end
		vel = next
	}

	return endpoints
}

// bounce runs a single leg. It reports whether the leg ended in a
// reflection, where it ended, and the velocity to continue with.
func bounce(g Grid, start Point, vel [2]float64, maxLength float64, wall WallFunc) (bool, Point, [2]float64) {
	x, y := float64(start.X), float64(start.Y)
	blocked := func(p Point) bool {
		return g.InBounds(p) && wall(p)
	}

	steps := int(maxLength)
	for i := 0; i < steps; i++ {
		prev := Point{X: int(x), Y: int(y)}
		x += vel[0]
		y += vel[1]
		p := Point{X: int(x), Y: int(y)}

		// Truncation can carry a tile past the remaining length.
		if Distance(start, p) > maxLength {
			return false, prev, vel
		}
		if !g.InBounds(p) || wall(p) {
			return false, prev, vel
		}

		next := Point{X: int(x + vel[0]), Y: int(y + vel[1])}
		if !g.InBounds(next) {
			return false, p, vel
		}
		if !wall(next) {
			continue
		}

		flipX := (vel[0] > 0 && blocked(p.Add(1, 0))) || (vel[0] < 0 && blocked(p.Add(-1, 0)))
		flipY := (vel[1] > 0 && blocked(p.Add(0, 1))) || (vel[1] < 0 && blocked(p.Add(0, -1)))

		if flipX {
			vel[0] = -vel[0]
		}
		if flipY {
			vel[1] = -vel[1]
		}
		if flipX || flipY {
			return true, p, vel
		}

		// Diagonal hit with no orthogonal blocker: the line ends here.
		return false, p, vel
	}

	return false, Point{X: int(x), Y: int(y)}, vel
}

// Path expands consecutive endpoint pairs into the tiles between them using
// the host's line primitive. Without repeatTiles a tile crossed more than once
// is kept only at its first visit.
func Path(g Grid, endpoints []Point, repeatTiles bool) []Point {
	var tiles []Point
	for i := 0; i+1 < len(endpoints); i++ {
		tiles = append(tiles, g.PointsInLine(endpoints[i], endpoints[i+1], false)...)
	}
	if !repeatTiles {
		return Dedup(tiles)
	}
	return tiles
}

// BouncingLine returns the tiles of a bouncing line. See BounceEndpoints.
func BouncingLine(g Grid, start Point, angle, maxLength float64, repeatTiles bool, wall WallFunc) []Point {
	return Path(g, BounceEndpoints(g, start, angle, maxLength, wall), repeatTiles)
}

// Angle returns the direction from -> to in radians.
func Angle(from, to Point) float64 {
	return math.Atan2(float64(to.Y-from.Y), float64(to.X-from.X))
}
