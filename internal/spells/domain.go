package spells

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// domainChunk is how many clouds Hollow Domain places per batch.
const domainChunk = 8

// HollowDomain floods the area around the caster with mana clouds. With the
// overload upgrade, replacing an elemental cloud detonates it.
type HollowDomain struct {
	base
}

// NewHollowDomain is the Constructor for hollow_domain.
func NewHollowDomain(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &HollowDomain{base: newBase(id, def, caster, host)}
}

func (s *HollowDomain) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS)
}

func (s *HollowDomain) ImpactedTiles(target geom.Point) []geom.Point {
	return geom.BurstTiles(s.host, target, s.stat("radius"))
}

// Cast places clouds in burst order. The first batch holds one cloud and
// later batches hold domainChunk. An overload detonation closes the batch it
// falls in, before the cloud that replaced it is placed.
func (s *HollowDomain) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target)

	var shown []geom.Point
	var ops []func()
	flush := func() {
		if len(shown) == 0 && len(ops) == 0 {
			return
		}
		run := ops
		b.Add(stage.PassRepeat, shown, func([]geom.Point) {
			for _, op := range run {
				op()
			}
		})
		shown, ops = nil, nil
	}

	overload := s.stat("overload")
	for i, p := range s.ImpactedTiles(target) {
		if t := s.host.TileAt(p); t != nil && !t.IsWall() {
			if overload > 0 && t.Cloud != nil {
				if dt, ok := t.Cloud.Element(); ok {
					burst := geom.BurstTiles(s.host, p, overload)
					ops = append(ops, func() { s.detonate(burst, dt) })
					shown = append(shown, burst...)
					flush()
				}
			}

			ops = append(ops, func() {
				s.manaClouds([]geom.Point{p}, s.stat("duration"), s.stat("healing"))
			})
			shown = append(shown, p)
		}

		if i%domainChunk == 0 {
			flush()
		}
	}
	flush()
	return b.Build()
}

func (s *HollowDomain) detonate(points []geom.Point, dt world.DamageType) {
	for _, p := range points {
		s.host.DealDamage(p, s.stat("overload_damage"), dt, s)
	}
}

// EmptyPalm strikes a single unit, or with cardinal projection the same
// offset rotated through all four directions around the caster.
type EmptyPalm struct {
	base
}

// NewEmptyPalm is the Constructor for empty_palm.
func NewEmptyPalm(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &EmptyPalm{base: newBase(id, def, caster, host)}
}

// CanCast also requires a unit on the target tile.
func (s *EmptyPalm) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS) && s.host.UnitAt(target) != nil
}

func (s *EmptyPalm) ImpactedTiles(target geom.Point) []geom.Point {
	if !s.stats.Has("cardinal_projection") {
		return s.onLevel([]geom.Point{target})
	}

	o := s.origin()
	dx, dy := target.X-o.X, target.Y-o.Y
	rotations := []geom.Point{
		o.Add(dx, dy),
		o.Add(dy, -dx),
		o.Add(-dx, -dy),
		o.Add(-dy, dx),
	}

	return geom.Dedup(s.onLevel(rotations))
}

func (s *EmptyPalm) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target)
	b.Add(stage.PassPrimary, s.ImpactedTiles(target), func(pts []geom.Point) {
		for _, p := range pts {
			s.purify(p, s.stat("duration"))
			s.host.DealDamage(p, s.stat("damage"), s.damageType, s)
		}
	})
	return b.Build()
}

// WordOfEmptiness purifies every enemy of the caster and surrounds each one
// with mana clouds.
type WordOfEmptiness struct {
	base
}

// NewWordOfEmptiness is the Constructor for word_of_emptiness.
func NewWordOfEmptiness(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &WordOfEmptiness{base: newBase(id, def, caster, host)}
}

func (s *WordOfEmptiness) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS)
}

func (s *WordOfEmptiness) hostiles() []*world.Unit {
	var out []*world.Unit
	for _, u := range s.host.Units() {
		if world.Hostile(s.caster, u) {
			out = append(out, u)
		}
	}
	return out
}

func (s *WordOfEmptiness) ImpactedTiles(geom.Point) []geom.Point {
	var tiles []geom.Point
	for _, u := range s.hostiles() {
		tiles = append(tiles, geom.BurstTiles(s.host, u.Pos, s.stat("radius"))...)
	}
	return geom.Dedup(tiles)
}

func (s *WordOfEmptiness) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target)
	for _, u := range s.hostiles() {
		burst := s.floorTiles(geom.BurstTiles(s.host, u.Pos, s.stat("radius")))
		b.Add(stage.PassRepeat, burst, func(pts []geom.Point) {
			if u.Alive() {
				u.ApplyStatus(world.StatusPurified, s.stat("duration"))
			}
			s.manaClouds(pts, s.stat("cloud_duration"), 0)
		})
	}
	return b.Build()
}
