package spells

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// ManaBullet fires a bouncing bullet that damages every tile it crosses and
// fills a burst with mana clouds at each bounce.
type ManaBullet struct {
	base
}

// NewManaBullet is the Constructor for mana_bullet.
func NewManaBullet(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &ManaBullet{base: newBase(id, def, caster, host)}
}

func (s *ManaBullet) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS)
}

func (s *ManaBullet) trace(target geom.Point) geom.Trace {
	o := s.origin()
	return geom.TraceBounce(s.host, o, geom.Angle(o, target), float64(s.stat("length")), true, nil)
}

func (s *ManaBullet) ImpactedTiles(target geom.Point) []geom.Point {
	return s.onLevel(geom.Dedup(s.trace(target).Tiles))
}

// Cast yields one batch per path tile. Every visit to a bounce tile is
// followed by a batch that replaces every cloud in the burst around it with
// a mana cloud.
func (s *ManaBullet) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target)
	tr := s.trace(target)

	corners := make(map[geom.Point]bool)
	for _, c := range tr.Corners() {
		corners[c] = true
	}

	for _, p := range tr.Tiles {
		if p == s.origin() {
			continue
		}
		b.Add(stage.PassRepeat, []geom.Point{p}, func(pts []geom.Point) {
			s.damage(s, pts)
		})

		if !corners[p] {
			continue
		}

		burst := s.floorTiles(geom.BurstTiles(s.host, p, s.stat("radius")))
		b.Add(stage.PassRepeat, burst, func(pts []geom.Point) {
			s.manaClouds(pts, s.stat("duration"), 0)
		})
	}
	return b.Build()
}
