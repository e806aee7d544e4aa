package spells

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// SwordOfJudgment strikes a burst with pure damage. Every holy ally in sight
// of the target then answers each unit the burst found: the strike travels
// its line one tile per batch and lands with holy damage. With web of light
// the whole line past the ally is struck in a single batch instead.
type SwordOfJudgment struct {
	base
}

// NewSwordOfJudgment is the Constructor for sword_of_judgment.
func NewSwordOfJudgment(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &SwordOfJudgment{base: newBase(id, def, caster, host)}
}

func (s *SwordOfJudgment) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS)
}

func (s *SwordOfJudgment) ImpactedTiles(target geom.Point) []geom.Point {
	return geom.BurstTiles(s.host, target, s.stat("radius"))
}

func (s *SwordOfJudgment) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target)
	burst := s.ImpactedTiles(target)

	var marked []geom.Point
	for _, p := range burst {
		if s.host.UnitAt(p) != nil {
			marked = append(marked, p)
		}
	}
	b.Add(stage.PassPrimary, burst, func(pts []geom.Point) { s.damage(s, pts) })

	judges := s.judges(target)
	for _, p := range marked {
		for _, judge := range judges {
			line := s.host.PointsInLine(judge.Pos, p, false)
			if len(line) == 0 {
				continue
			}
			strike := s.strike(judge)

			if s.stats.Has("web_of_light") {
				b.Add(stage.PassRepeat, line[1:], strike)
				continue
			}
			last := len(line) - 1
			for _, q := range line[:last] {
				b.AddTrail(stage.PassRepeat, []geom.Point{q}, nil, nil)
			}
			b.Add(stage.PassRepeat, line[last:], strike)
		}
	}
	return b.Build()
}

// judges returns the caster's holy allies in sight of target.
func (s *SwordOfJudgment) judges(target geom.Point) []*world.Unit {
	var out []*world.Unit
	for _, u := range s.host.UnitsInLOS(target) {
		if !world.Hostile(s.caster, u) && u.HasTag(world.TagHoly) {
			out = append(out, u)
		}
	}
	return out
}

// strike deals holy damage on behalf of judge, who must survive the burst.
func (s *SwordOfJudgment) strike(judge *world.Unit) func([]geom.Point) {
	return func(pts []geom.Point) {
		if !judge.Alive() {
			return
		}
		for _, p := range pts {
			s.host.DealDamage(p, s.stat("holy_damage"), world.DamageHoly, s)
		}
	}
}
