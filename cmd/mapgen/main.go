package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/world"
)

func main() {
	width := flag.Int("width", 33, "Maze width in tiles")
	height := flag.Int("height", 21, "Maze height in tiles")
	seed := flag.Int64("seed", 1, "Maze generation seed")
	name := flag.String("name", "", "Level name (default: maze-<seed>)")
	enemies := flag.Int("enemies", 0, "Enemies to scatter over the floor")
	enemyHP := flag.Int("enemy-hp", 30, "Health of each scattered enemy")
	chasms := flag.Int("chasms", 0, "Floor tiles to turn into chasm")
	outputFile := flag.String("output", "", "Write the level as map YAML (empty prints it)")
	flag.Parse()

	level := world.GenerateMaze(*width, *height, *seed)
	level.Name = *name
	if level.Name == "" {
		level.Name = fmt.Sprintf("maze-%d", *seed)
	}

	rng := rand.New(rand.NewSource(*seed))
	floor := floorTiles(level)
	rng.Shuffle(len(floor), func(i, j int) { floor[i], floor[j] = floor[j], floor[i] })

	// Keep the top-left cell clear for the caster.
	caster := geom.Pt(1, 1)
	next := 0
	take := func() (geom.Point, bool) {
		for next < len(floor) {
			p := floor[next]
			next++
			if p != caster {
				return p, true
			}
		}
		return geom.Point{}, false
	}

	for i := 0; i < *chasms; i++ {
		p, ok := take()
		if !ok {
			break
		}
		level.SetKind(p, world.TileChasm)
	}
	for i := 0; i < *enemies; i++ {
		p, ok := take()
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: only %d enemies fit\n", i)
			break
		}
		u := world.NewUnit(fmt.Sprintf("enemy %d", i+1), world.TeamEnemy, *enemyHP)
		if err := level.AddUnit(u, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error placing enemy: %v\n", err)
			os.Exit(1)
		}
	}

	if *outputFile == "" {
		fmt.Printf("%s (%dx%d, seed %d)\n", level.Name, level.Width, level.Height, *seed)
		fmt.Print(level.Render(nil))
		printLegend()
		return
	}

	if err := world.SaveMap(level, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Map written to %s\n", *outputFile)
}

func floorTiles(level *world.Level) []geom.Point {
	var out []geom.Point
	for y := 0; y < level.Height; y++ {
		for x := 0; x < level.Width; x++ {
			p := geom.Pt(x, y)
			if level.TileAt(p).IsFloor() {
				out = append(out, p)
			}
		}
	}
	return out
}

func printLegend() {
	fmt.Println()
	fmt.Println("Legend:")
	fmt.Println("  #  Wall")
	fmt.Println("  .  Floor")
	fmt.Println("  :  Chasm")
	fmt.Println("  e  Enemy")
}
