package spells

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// DragonsBreath pours fire and darkness along the line to the target,
// melting any wall in the way.
type DragonsBreath struct {
	base
}

// NewDragonsBreath is the Constructor for dragons_breath.
func NewDragonsBreath(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &DragonsBreath{base: newBase(id, def, caster, host)}
}

func (s *DragonsBreath) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS)
}

func (s *DragonsBreath) ImpactedTiles(target geom.Point) []geom.Point {
	return s.onLevel(geom.Without(s.host.PointsInLine(s.origin(), target, false), s.origin()))
}

func (s *DragonsBreath) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target)
	b.Each(stage.PassPrimary, s.ImpactedTiles(target), func(p geom.Point) {
		if s.stats.Has("melts_walls") && s.host.IsWall(p) {
			s.host.MakeFloor(p)
		}
		s.host.DealDamage(p, s.stat("damage"), world.DamageFire, s)
		s.host.DealDamage(p, s.stat("damage"), world.DamageDark, s)
	})
	return b.Build()
}
