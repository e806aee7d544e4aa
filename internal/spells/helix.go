package spells

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// HelixBeam fires two strands that wind around the line to the target.
type HelixBeam struct {
	base
}

// NewHelixBeam is the Constructor for helix_beam.
func NewHelixBeam(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &HelixBeam{base: newBase(id, def, caster, host)}
}

func (s *HelixBeam) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS)
}

func (s *HelixBeam) pairs(target geom.Point) []geom.HelixPair {
	o := s.origin()
	line := s.host.PointsInLine(o, target, false)
	return geom.Helix(line, o, target.X-o.X, target.Y-o.Y)
}

func (s *HelixBeam) inBounds(pair geom.HelixPair) []geom.Point {
	var out []geom.Point
	for _, p := range pair {
		if s.host.InBounds(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *HelixBeam) ImpactedTiles(target geom.Point) []geom.Point {
	var tiles []geom.Point
	for _, pair := range s.pairs(target) {
		tiles = append(tiles, s.inBounds(pair)...)
	}
	return geom.Dedup(tiles)
}

// Cast strikes both strands of one line step per batch. The strands cross,
// so tiles may be struck more than once.
func (s *HelixBeam) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target)
	for _, pair := range s.pairs(target) {
		b.Add(stage.PassRepeat, s.inBounds(pair), func(pts []geom.Point) {
			s.damage(s, pts)
		})
	}
	return b.Build()
}
