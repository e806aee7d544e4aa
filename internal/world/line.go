package world

import (
	"slices"

	"github.com/Earlh21/rw-cradle/internal/geom"
)

// PointsInLine implements geom.Grid with Bresenham's line from -> to, both
// ends included. With findClear set the forward line is tried first and
// then the line traced back from the far end; the first whose interior has
// no walls is returned, nil if both are blocked.
func (l *Level) PointsInLine(from, to geom.Point, findClear bool) []geom.Point {
	line := bresenham(from, to)
	if !findClear {
		return line
	}
	if l.clear(line) {
		return line
	}

	back := bresenham(to, from)
	slices.Reverse(back)
	if l.clear(back) {
		return back
	}
	return nil
}

// HasLineOfSight reports whether a clear line exists between a and b.
func (l *Level) HasLineOfSight(a, b geom.Point) bool {
	if !l.InBounds(a) || !l.InBounds(b) {
		return false
	}
	return l.PointsInLine(a, b, true) != nil
}

// UnitsInLOS returns the units with line of sight to p, in placement order.
// A unit standing on p is included.
func (l *Level) UnitsInLOS(p geom.Point) []*Unit {
	var out []*Unit
	for _, u := range l.units {
		if l.HasLineOfSight(p, u.Pos) {
			out = append(out, u)
		}
	}
	return out
}

func (l *Level) clear(line []geom.Point) bool {
	if len(line) <= 2 {
		return true
	}
	for _, p := range line[1 : len(line)-1] {
		if !l.InBounds(p) || l.IsWall(p) {
			return false
		}
	}
	return true
}

func bresenham(from, to geom.Point) []geom.Point {
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}

	out := make([]geom.Point, 0, max(dx, -dy)+1)
	err := dx + dy
	p := from
	for {
		out = append(out, p)
		if p == to {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}
