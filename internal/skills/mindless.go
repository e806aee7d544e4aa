package skills

import (
	"github.com/Earlh21/rw-cradle/internal/spells"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// tunable is an ability whose stats a skill can shift.
type tunable interface {
	world.TypedDamage
	Stats() *spells.Stats
}

// Mindlessness hardens the owner's undead allies. Each gains full pure
// resistance when it is placed, and its physical abilities deal bonus
// damage while it is purified. Purity is rechecked at the end of every turn
// and whenever the unit casts.
type Mindlessness struct {
	passive
	boosted map[*world.Unit]bool
}

func NewMindlessness() Skill {
	return &Mindlessness{
		passive: newPassive("mindlessness", "Mindlessness", world.DamageDark,
			map[string]int{"damage": 5}, "dark", "pure"),
		boosted: make(map[*world.Unit]bool),
	}
}

func (s *Mindlessness) Attach(owner *world.Unit, host Host) error {
	if err := s.bind(owner, host); err != nil {
		return err
	}
	host.OnUnitAdded(s.onUnitAdded)
	host.OnAdvance(s.onAdvance)
	host.OnCast(s.onCast)
	return nil
}

func (s *Mindlessness) onUnitAdded(u *world.Unit) {
	if s.enemy(u) || !u.HasTag(world.TagUndead) {
		return
	}
	if u.Resists == nil {
		u.Resists = make(map[world.DamageType]int)
	}
	u.Resists[world.DamagePure] += 100
}

func (s *Mindlessness) onAdvance() {
	for u := range s.boosted {
		s.refresh(u)
	}
	for _, u := range s.host.Units() {
		s.refresh(u)
	}
}

func (s *Mindlessness) onCast(evt world.CastEvent) {
	if evt.Caster != nil {
		s.refresh(evt.Caster)
	}
}

func (s *Mindlessness) applies(u *world.Unit) bool {
	return !s.enemy(u) && u.Alive() && u.HasTag(world.TagUndead) && u.HasStatus(world.StatusPurified)
}

// refresh grants or takes back the bonus so it is held exactly while u qualifies.
func (s *Mindlessness) refresh(u *world.Unit) {
	want := s.applies(u)
	if want == s.boosted[u] {
		return
	}

	delta := s.stat("damage")
	if want {
		s.boosted[u] = true
	} else {
		delta = -delta
		delete(s.boosted, u)
	}
	s.log.Debug("Mindlessness bonus changed", "unit", u.Name, "delta", delta)

	for _, a := range u.Abilities {
		t, ok := a.(tunable)
		if !ok || t.DamageType() != world.DamagePhysical || !t.Stats().Has("damage") {
			continue
		}
		t.Stats().Add("damage", delta)
	}
}
