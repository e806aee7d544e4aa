package skills

import (
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// Nihilism hurts enemies at the edge of a chasm every turn, and enemies
// over a chasm twice as much.
type Nihilism struct {
	passive
}

func NewNihilism() Skill {
	return &Nihilism{
		passive: newPassive("nihilism", "Nihilism", world.DamagePure,
			map[string]int{"damage": 3}, "pure", "arcane"),
	}
}

func (s *Nihilism) Attach(owner *world.Unit, host Host) error {
	if err := s.bind(owner, host); err != nil {
		return err
	}
	host.OnAdvance(s.onAdvance)
	return nil
}

func (s *Nihilism) onAdvance() {
	for _, u := range s.host.Units() {
		if !s.enemy(u) || !u.Alive() {
			continue
		}

		damage := s.stat("damage")
		switch {
		case s.host.IsChasm(u.Pos):
			damage *= 2
		case geom.HasAdjacentChasm(s.host, u.Pos):
		default:
			continue
		}
		s.host.DealDamage(u.Pos, damage, world.DamagePure, s)
		s.host.DealDamage(u.Pos, damage, world.DamageArcane, s)
	}
}
