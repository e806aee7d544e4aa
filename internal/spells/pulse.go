package spells

import (
	"cmp"
	"slices"

	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// ManaPulse bursts pure damage around the caster and purifies every unit hit.
// With the reflection upgrade, burst tiles next to a wall release a second,
// smaller burst that never touches the caster.
type ManaPulse struct {
	base
}

// NewManaPulse is the Constructor for mana_pulse.
func NewManaPulse(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &ManaPulse{base: newBase(id, def, caster, host)}
}

func (s *ManaPulse) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS)
}

func (s *ManaPulse) ImpactedTiles(target geom.Point) []geom.Point {
	tiles := geom.BurstTiles(s.host, target, s.stat("radius"))
	if s.stats.Has("reflection") {
		tiles = append(tiles, geom.Flatten(s.reflections(tiles))...)
	}
	return geom.Without(geom.Dedup(tiles), target)
}

func (s *ManaPulse) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target).Exclude(s.origin())

	rings := geom.Burst(s.host, target, s.stat("radius"))
	b.Rings(rings, s.pulse)

	if s.stats.Has("reflection") {
		b.Groups(stage.PassRepeat, s.reflections(geom.Flatten(rings)), s.pulse)
	}
	return b.Build()
}

func (s *ManaPulse) pulse(points []geom.Point) {
	for _, p := range points {
		s.purify(p, s.stat("duration"))
		s.host.DealDamage(p, s.stat("damage"), s.damageType, s)
	}
}

// reflections bursts around every tile of tiles that touches a wall and
// groups the reached tiles by their smallest ring index, nearest first.
func (s *ManaPulse) reflections(tiles []geom.Point) [][]geom.Point {
	dist := make(map[geom.Point]int)
	var order []geom.Point

	for _, src := range tiles {
		if !geom.HasAdjacentWall(s.host, src) {
			continue
		}
		for i, ring := range geom.Burst(s.host, src, s.stat("reflection")) {
			for _, p := range ring {
				d, seen := dist[p]
				if !seen {
					order = append(order, p)
					dist[p] = i
				} else if i < d {
					dist[p] = i
				}
			}
		}
	}

	slices.SortStableFunc(order, func(a, b geom.Point) int {
		return cmp.Compare(dist[a], dist[b])
	})

	var groups [][]geom.Point
	for i, p := range order {
		if i == 0 || dist[p] != dist[order[i-1]] {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], p)
	}
	return groups
}
