package skills

import "github.com/Earlh21/rw-cradle/internal/world"

// prismTypes are the elements a prism splits pure damage into, in order.
var prismTypes = []world.DamageType{
	world.DamageFire,
	world.DamageLightning,
	world.DamageIce,
	world.DamageHoly,
	world.DamageDark,
	world.DamageArcane,
}

// ManaPrism splits the owner's pure damage: an enemy that takes it is hit
// again once per element until it dies.
type ManaPrism struct {
	passive
}

func NewManaPrism() Skill {
	return &ManaPrism{
		passive: newPassive("mana_prism", "Mana Prism", world.DamagePure,
			map[string]int{"damage": 6}, "pure"),
	}
}

func (s *ManaPrism) Attach(owner *world.Unit, host Host) error {
	if err := s.bind(owner, host); err != nil {
		return err
	}
	host.OnDamaged(s.onDamaged)
	return nil
}

func (s *ManaPrism) onDamaged(evt world.DamageEvent) {
	if evt.Type != world.DamagePure || !s.enemy(evt.Unit) {
		return
	}
	if world.SourceOwner(evt.Source) != s.owner {
		return
	}

	for _, dt := range prismTypes {
		if !evt.Unit.Alive() {
			break
		}
		s.host.DealDamage(evt.Unit.Pos, s.stat("damage"), dt, s)
	}
}
