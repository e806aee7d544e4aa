package skills

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// FrozenMana freezes mana into spike hazards. It triggers on the tiles an
// ice spell of the owner will impact, and wherever an enemy takes ice damage.
// A tile freezes when it is bare floor holding a mana cloud, which the
// spike replaces, or a purified unit.
type FrozenMana struct {
	passive
}

func NewFrozenMana() Skill {
	return &FrozenMana{
		passive: newPassive("frozen_mana", "Frozen Mana", world.DamageIce,
			map[string]int{"damage": 6, "duration": 7}, "pure", "ice"),
	}
}

func (s *FrozenMana) Attach(owner *world.Unit, host Host) error {
	if err := s.bind(owner, host); err != nil {
		return err
	}
	host.OnDamaged(s.onDamaged)
	host.OnCast(s.onCast)
	return nil
}

func (s *FrozenMana) onDamaged(evt world.DamageEvent) {
	if evt.Type != world.DamageIce || !s.enemy(evt.Unit) {
		return
	}
	s.freeze(evt.Point)
}

func (s *FrozenMana) onCast(evt world.CastEvent) {
	if evt.Caster != s.owner || evt.Spell == nil || !evt.Spell.HasTag("ice") {
		return
	}
	for _, p := range evt.Spell.ImpactedTiles(evt.Target) {
		s.freeze(p)
	}
}

func (s *FrozenMana) freeze(p geom.Point) {
	t := s.host.TileAt(p)
	if t == nil || !t.IsFloor() || t.Prop != "" {
		return
	}

	if t.Cloud != nil && t.Cloud.Kind == world.CloudMana {
		s.host.KillCloud(p)
		s.spike(p)
		return
	}
	if u := s.host.UnitAt(p); u != nil && u.HasStatus(world.StatusPurified) {
		s.spike(p)
	}
}

func (s *FrozenMana) spike(p geom.Point) {
	s.log.Debug("Frozen mana placed", "point", p.String())
	s.host.AddHazard(p, world.NewFrozenMana(s.owner, s, s.stat("duration"), s.stat("damage")))
}
