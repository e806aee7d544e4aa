package skills

import "github.com/Earlh21/rw-cradle/internal/world"

// SpiritCorruption eats at enemies that are both purified and poisoned,
// harder the more abilities they have.
type SpiritCorruption struct {
	passive
}

func NewSpiritCorruption() Skill {
	return &SpiritCorruption{
		passive: newPassive("spirit_corruption", "Spirit Corruption", world.DamagePure,
			map[string]int{"damage": 3}, "pure", "nature"),
	}
}

func (s *SpiritCorruption) Attach(owner *world.Unit, host Host) error {
	if err := s.bind(owner, host); err != nil {
		return err
	}
	host.OnAdvance(s.onAdvance)
	return nil
}

func (s *SpiritCorruption) onAdvance() {
	for _, u := range s.host.Units() {
		if !s.enemy(u) || !u.Alive() {
			continue
		}
		if !u.HasStatus(world.StatusPurified) || !u.HasStatus(world.StatusPoisoned) {
			continue
		}

		damage := s.stat("damage") * len(u.Abilities)
		s.host.DealDamage(u.Pos, damage, world.DamagePure, s)
		s.host.DealDamage(u.Pos, damage, world.DamagePoison, s)
	}
}
