package skills

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// Ozone fills the air around an enemy struck by lightning with mana clouds.
// Tiles that already hold a cloud are left alone.
type Ozone struct {
	passive
}

func NewOzone() Skill {
	return &Ozone{
		passive: newPassive("ozone", "Ozone", world.DamagePure,
			map[string]int{"radius": 1, "duration": 2}, "pure", "lightning"),
	}
}

func (s *Ozone) Attach(owner *world.Unit, host Host) error {
	if err := s.bind(owner, host); err != nil {
		return err
	}
	host.OnDamaged(s.onDamaged)
	return nil
}

func (s *Ozone) onDamaged(evt world.DamageEvent) {
	if evt.Type != world.DamageLightning || !s.enemy(evt.Unit) {
		return
	}

	for _, p := range geom.BurstTiles(s.host, evt.Point, s.stat("radius")) {
		if t := s.host.TileAt(p); t == nil || t.Cloud != nil {
			continue
		}
		s.host.AddCloud(p, world.NewManaCloud(s.owner, s.stat("duration"), 0))
	}
}
