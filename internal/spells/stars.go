package spells

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// starClouds maps the exclusive cloud upgrades to the cloud each leaves.
var starClouds = []struct {
	stat string
	kind world.CloudKind
}{
	{"burning", world.CloudFire},
	{"frozen", world.CloudBlizzard},
	{"voltaic", world.CloudStorm},
}

// SevenStars drops a star once per turn for its duration. The first star
// lands on the target; later stars land on the target of the caster's most
// recent cast. Each star bursts ring by ring, purifying what it hits, and a
// cloud upgrade follows every ring with a pass of elemental clouds.
type SevenStars struct {
	base
	aim geom.Point
}

// NewSevenStars is the Constructor for seven_stars.
func NewSevenStars(id string, def SpellDefinition, caster *world.Unit, host Host) Spell {
	s := &SevenStars{base: newBase(id, def, caster, host)}
	host.OnCast(s.follow)
	return s
}

func (s *SevenStars) follow(evt world.CastEvent) {
	if evt.Caster == s.caster {
		s.aim = evt.Target
	}
}

func (s *SevenStars) CanCast(target geom.Point) bool {
	return s.canCast(s, target, s.requiresLOS)
}

func (s *SevenStars) ImpactedTiles(target geom.Point) []geom.Point {
	return geom.BurstTiles(s.host, target, s.stat("radius"))
}

// Cast plans every star. The first star is the primary pass; later stars
// are planned on the target and aimed when pulled, one turn apart.
func (s *SevenStars) Cast(target geom.Point) *stage.Sequence {
	b := s.begin(s, target)
	radius := s.stat("radius")
	rings := geom.Burst(s.host, target, radius)
	_, hasCloud := s.cloudKind()

	for _, ring := range rings {
		b.Add(stage.PassPrimary, ring, s.strike)
		if hasCloud {
			b.Add(stage.PassRepeat, s.floorTiles(ring), s.clouds)
		}
	}

	for star := 1; star < s.stat("duration"); star++ {
		b.Pause(1)
		for i, ring := range rings {
			aimed := func() []geom.Point { return geom.Burst(s.host, s.aim, radius)[i] }
			b.AddLate(stage.PassRepeat, ring, aimed, s.strike)
			if hasCloud {
				b.AddLate(stage.PassRepeat, s.floorTiles(ring), func() []geom.Point {
					return s.floorTiles(aimed())
				}, s.clouds)
			}
		}
	}
	return b.Build()
}

func (s *SevenStars) clouds(points []geom.Point) {
	cloud, _ := s.cloudKind()
	for _, p := range points {
		s.host.AddCloud(p, &world.Cloud{
			Kind:     cloud,
			Owner:    s.caster,
			Duration: s.stat("cloud_duration"),
			Damage:   s.stat("cloud_damage"),
		})
	}
}

func (s *SevenStars) strike(points []geom.Point) {
	for _, p := range points {
		s.host.DealDamage(p, s.stat("damage"), s.damageType, s)
		s.purify(p, s.stat("purify_duration"))
	}
}

func (s *SevenStars) cloudKind() (world.CloudKind, bool) {
	for _, c := range starClouds {
		if s.stats.Has(c.stat) {
			return c.kind, true
		}
	}
	return world.CloudMana, false
}
