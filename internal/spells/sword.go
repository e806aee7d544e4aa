package spells

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// cornerPause is the number of idle ticks after a rippling sword corner burst.
const cornerPause = 3

// RipplingSword sends a blade along a bouncing line. Every bounce releases a
// burst, after which the blade pauses before continuing.
type RipplingSword struct {
	base
}

// NewRipplingSword is the Constructor for rippling_sword.
func NewRipplingSword(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &RipplingSword{base: newBase(id, def, caster, host)}
}

func (s *RipplingSword) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS)
}

func (s *RipplingSword) endpoints(target geom.Point) []geom.Point {
	o := s.origin()
	return geom.BounceEndpoints(s.host, o, geom.Angle(o, target), float64(s.stat("length")), nil)
}

func (s *RipplingSword) ImpactedTiles(target geom.Point) []geom.Point {
	endpoints := s.endpoints(target)
	tiles := geom.Path(s.host, endpoints, true)
	for _, c := range (geom.Trace{Endpoints: endpoints}).Corners() {
		tiles = append(tiles, geom.BurstTiles(s.host, c, s.stat("radius"))...)
	}
	return geom.Without(geom.Dedup(tiles), s.origin())
}

// Cast damages the path one tile per batch. At each bounce the burst
// follows ring by ring, then the blade rests for cornerPause ticks.
func (s *RipplingSword) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target).Exclude(s.origin())
	strike := func(pts []geom.Point) { s.damage(s, pts) }

	endpoints := s.endpoints(target)
	for i := 0; i+1 < len(endpoints); i++ {
		for _, p := range s.host.PointsInLine(endpoints[i], endpoints[i+1], false) {
			b.Add(stage.PassRepeat, []geom.Point{p}, strike)
		}
		if i == len(endpoints)-2 {
			break
		}

		b.Groups(stage.PassRepeat, geom.Burst(s.host, endpoints[i+1], s.stat("radius")), strike)
		b.Pause(cornerPause)
	}
	return b.Build()
}

// EndlessSword bursts around the caster, and again around every metallic
// unit the bursts reach, until no new metallic unit is found. Units on the
// player's team are spared.
type EndlessSword struct {
	base
}

// NewEndlessSword is the Constructor for endless_sword.
func NewEndlessSword(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &EndlessSword{base: newBase(id, def, caster, host)}
}

func (s *EndlessSword) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS)
}

func (s *EndlessSword) ImpactedTiles(geom.Point) []geom.Point {
	radius := s.stat("radius")
	return geom.Flood(
		[]*world.Unit{s.caster},
		func(u *world.Unit) [][]geom.Point { return geom.Burst(s.host, u.Pos, radius) },
		func(p geom.Point) (*world.Unit, bool) {
			u := s.host.UnitAt(p)
			return u, u != nil && u.HasTag(world.TagMetallic)
		},
	)
}

func (s *EndlessSword) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target)
	for _, p := range s.ImpactedTiles(target) {
		if s.spared(p) {
			continue
		}
		b.Add(stage.PassPrimary, []geom.Point{p}, func(pts []geom.Point) {
			for _, q := range pts {
				if !s.spared(q) {
					s.host.DealDamage(q, s.stat("damage"), s.damageType, s)
				}
			}
		})
	}
	return b.Build()
}

func (s *EndlessSword) spared(p geom.Point) bool {
	u := s.host.UnitAt(p)
	return u != nil && u.Team == world.TeamPlayer
}
