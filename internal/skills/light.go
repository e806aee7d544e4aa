package skills

import "github.com/Earlh21/rw-cradle/internal/world"

// PermeatingLight lets the owner's holy allies burn every purified enemy in
// their sight at the end of each turn.
type PermeatingLight struct {
	passive
}

func NewPermeatingLight() Skill {
	return &PermeatingLight{
		passive: newPassive("permeating_light", "Permeating Light", world.DamageHoly,
			map[string]int{"damage": 8}, "holy", "pure"),
	}
}

func (s *PermeatingLight) Attach(owner *world.Unit, host Host) error {
	if err := s.bind(owner, host); err != nil {
		return err
	}
	host.OnAdvance(s.onAdvance)
	return nil
}

func (s *PermeatingLight) onAdvance() {
	for _, u := range s.host.Units() {
		if s.enemy(u) || !u.Alive() || !u.HasTag(world.TagHoly) {
			continue
		}
		for _, e := range s.host.UnitsInLOS(u.Pos) {
			if !s.enemy(e) || !e.Alive() || !e.HasStatus(world.StatusPurified) {
				continue
			}
			s.host.DealDamage(e.Pos, s.stat("damage"), world.DamageHoly, s)
		}
	}
}
