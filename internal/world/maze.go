package world

import (
	"math/rand"

	"github.com/Earlh21/rw-cradle/internal/geom"
)

// direction is a cardinal step between maze cells
type direction int

const (
	north direction = iota
	south
	east
	west
)

func (d direction) step() (int, int) {
	switch d {
	case north:
		return 0, -1
	case south:
		return 0, 1
	case east:
		return 1, 0
	default:
		return -1, 0
	}
}

// mazeGenerator carves a level using a DFS recursive backtracker.
// Cells sit on odd coordinates; the tiles between them are walls until carved.
type mazeGenerator struct {
	level   *Level
	cols    int
	rows    int
	visited [][]bool
	rand    *rand.Rand
}

// GenerateMaze returns a width x height level carved into a perfect maze
// from seed. The same seed always produces the same level. Sizes below 3
// are raised to 3; even sizes leave a solid wall on the far edge.
func GenerateMaze(width, height int, seed int64) *Level {
	width, height = max(width, 3), max(height, 3)

	level := NewLevel(width, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			level.tiles[x][y].Kind = TileWall
		}
	}

	mg := &mazeGenerator{
		level: level,
		cols:  (width - 1) / 2,
		rows:  (height - 1) / 2,
		rand:  rand.New(rand.NewSource(seed)),
	}
	mg.visited = make([][]bool, mg.cols)
	for i := range mg.visited {
		mg.visited[i] = make([]bool, mg.rows)
	}

	// Start from center
	mg.carveFrom(mg.cols/2, mg.rows/2)
	return level
}

// carveFrom recursively carves passages using DFS
func (mg *mazeGenerator) carveFrom(cx, cy int) {
	mg.visited[cx][cy] = true
	mg.level.MakeFloor(cellPoint(cx, cy))

	for _, dir := range mg.shuffledDirections() {
		dx, dy := dir.step()
		nx, ny := cx+dx, cy+dy
		if !mg.inBounds(nx, ny) || mg.visited[nx][ny] {
			continue
		}
		// Remove wall between current cell and neighbor
		mg.level.MakeFloor(cellPoint(cx, cy).Add(dx, dy))
		mg.carveFrom(nx, ny)
	}
}

// shuffledDirections returns directions in random order
func (mg *mazeGenerator) shuffledDirections() []direction {
	dirs := []direction{north, south, east, west}
	mg.rand.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})
	return dirs
}

func (mg *mazeGenerator) inBounds(cx, cy int) bool {
	return cx >= 0 && cx < mg.cols && cy >= 0 && cy < mg.rows
}

func cellPoint(cx, cy int) geom.Point {
	return geom.Pt(2*cx+1, 2*cy+1)
}
