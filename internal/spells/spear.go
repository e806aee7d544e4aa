package spells

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// barrageOffsets are the perpendicular offsets of the barrage spears, in
// firing order. The zero entry is the caster's own spear.
var barrageOffsets = []struct {
	length    float64
	direction int
}{
	{4, -1}, {2, -1}, {0, 0}, {2, 1}, {4, 1},
}

// HollowSpear throws a spear that bursts where it lands. The barrage upgrade
// throws five parallel spears, and thunder spear chains lightning from every
// struck unit to enemies it can see.
type HollowSpear struct {
	base
}

// NewHollowSpear is the Constructor for hollow_spear.
func NewHollowSpear(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	return &HollowSpear{base: newBase(id, def, caster, host)}
}

// CanCast drops the line of sight requirement when barrage is owned.
func (s *HollowSpear) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS && !s.stats.Has("barrage"))
}

func (s *HollowSpear) ImpactedTiles(target geom.Point) []geom.Point {
	if !s.stats.Has("barrage") {
		return geom.BurstTiles(s.host, target, s.stat("radius"))
	}

	var tiles []geom.Point
	for _, line := range s.lines(target) {
		tiles = append(tiles, geom.BurstTiles(s.host, line[len(line)-1], s.stat("radius"))...)
	}
	return geom.Dedup(tiles)
}

// Cast advances every spear one tile per batch. A spear's burst lands in the
// batch of its last tile.
func (s *HollowSpear) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target)

	lines := s.lines(target)
	longest := 0
	for _, line := range lines {
		longest = max(longest, len(line))
	}

	for i := 0; i < longest; i++ {
		var trail, burst []geom.Point
		for _, line := range lines {
			if i >= len(line) {
				continue
			}
			trail = append(trail, line[i])
			if i == len(line)-1 {
				burst = append(burst, geom.BurstTiles(s.host, line[i], s.stat("radius"))...)
			}
		}
		b.AddTrail(stage.PassRepeat, trail, burst, s.strike)
	}
	return b.Build()
}

// lines returns the spear paths. Barrage spears whose start or end is off
// the level, or that cannot find a clear line, are not thrown.
func (s *HollowSpear) lines(target geom.Point) [][]geom.Point {
	o := s.origin()
	if !s.stats.Has("barrage") {
		line := s.host.PointsInLine(o, target, false)
		if len(line) == 0 {
			return nil
		}
		return [][]geom.Point{line}
	}

	dx, dy := target.X-o.X, target.Y-o.Y
	var lines [][]geom.Point
	for _, off := range barrageOffsets {
		start := o
		if off.direction != 0 {
			start = geom.PerpPoint(o, target, off.length, off.direction)
		}
		end := start.Add(dx, dy)
		if !s.host.InBounds(start) || !s.host.InBounds(end) {
			continue
		}
		if line := s.host.PointsInLine(start, end, true); len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

func (s *HollowSpear) strike(points []geom.Point) {
	thunder := s.stats.Has("thunder_spear")
	for _, p := range points {
		u := s.host.UnitAt(p)
		if thunder && u != nil {
			s.thunder(p)
		}
		s.host.DealDamage(p, s.stat("damage"), s.damageType, s)
		if u != nil && u.Alive() {
			u.ApplyStatus(world.StatusPurified, s.stat("duration"))
		}
	}
}

// thunder strikes every enemy of the caster that p can see within the
// thunder radius.
func (s *HollowSpear) thunder(p geom.Point) {
	radius := float64(s.stat("thunder_radius"))
	for _, u := range s.host.UnitsInLOS(p) {
		if u.Pos == p || geom.Distance(p, u.Pos) > radius {
			continue
		}
		if !world.Hostile(s.caster, u) {
			continue
		}
		s.host.DealDamage(u.Pos, s.stat("thunder_damage"), world.DamageLightning, s)
	}
}
