// Package geom computes the tiles a spell reaches: burst rings, bouncing
// lines, chained floods and perpendicular offsets. Every function here is
// read-only over the grid it is given and keeps no state between calls.
package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is an integer grid coordinate. Points compare by value and are used
// directly as map keys.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// String formats the point as "x,y", the same form the CLI and preview server accept.
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// ParsePoint parses the "x,y" form produced by String.
func ParsePoint(s string) (Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Point{}, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return Point{X: x, Y: y}, nil
}

// Chebyshev returns the king-move distance between a and b. Bursts are
// ringed by this metric.
func Chebyshev(a, b Point) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

// Distance returns the Euclidean distance between a and b. Spell range and
// chain radii are measured this way.
func Distance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Dedup removes repeated points while keeping the first occurrence of each
// in its original position.
func Dedup(points []Point) []Point {
	seen := make(map[Point]struct{}, len(points))
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Without returns points with every occurrence of the excluded points removed.
func Without(points []Point, excluded ...Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		skip := false
		for _, e := range excluded {
			if p == e {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, p)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
