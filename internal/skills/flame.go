package skills

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// CleansingFlame makes purified enemies explode when they take fire damage.
// The explosion consumes the purified status.
type CleansingFlame struct {
	passive
}

func NewCleansingFlame() Skill {
	return &CleansingFlame{
		passive: newPassive("cleansing_flame", "Cleansing Flame", world.DamageFire,
			map[string]int{"damage": 6, "radius": 2}, "pure", "fire"),
	}
}

func (s *CleansingFlame) Attach(owner *world.Unit, host Host) error {
	if err := s.bind(owner, host); err != nil {
		return err
	}
	host.OnDamaged(s.onDamaged)
	return nil
}

func (s *CleansingFlame) onDamaged(evt world.DamageEvent) {
	if evt.Type != world.DamageFire || !s.enemy(evt.Unit) {
		return
	}
	if !evt.Unit.HasStatus(world.StatusPurified) {
		return
	}

	evt.Unit.RemoveStatus(world.StatusPurified)
	s.log.Debug("Cleansing flame triggered", "unit", evt.Unit.Name, "point", evt.Point.String())
	for _, p := range geom.BurstTiles(s.host, evt.Point, s.stat("radius")) {
		s.host.DealDamage(p, s.stat("damage"), world.DamageFire, s)
	}
}
