// Package skills holds the passive upgrades of the Cradle pack. A skill does
// nothing until it is attached to an owner on a level, after which it reacts
// to the level's damage, turn and cast events.
package skills

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/Earlh21/rw-cradle/internal/logger"
	"github.com/Earlh21/rw-cradle/internal/spells"
	"github.com/Earlh21/rw-cradle/internal/world"
)

var (
	ErrNoOwner         = errors.New("skill has no owner")
	ErrAlreadyAttached = errors.New("skill already attached")
)

// Host is the level a skill listens to.
type Host interface {
	spells.Host
	OnDamaged(fn func(world.DamageEvent))
	OnAdvance(fn func())
	OnCast(fn func(world.CastEvent))
	OnUnitAdded(fn func(*world.Unit))
}

var _ Host = (*world.Level)(nil)

// Skill is a passive upgrade owned by a unit.
type Skill interface {
	world.TypedDamage
	ID() string
	Stats() *spells.Stats
	HasTag(tag string) bool
	Owner() *world.Unit
	Attach(owner *world.Unit, host Host) error
}

// Constructor builds an unattached skill.
type Constructor func() Skill

var builtin = map[string]Constructor{
	"cleansing_flame":   NewCleansingFlame,
	"nihilism":          NewNihilism,
	"ozone":             NewOzone,
	"frozen_mana":       NewFrozenMana,
	"spirit_corruption": NewSpiritCorruption,
	"permeating_light":  NewPermeatingLight,
	"mindlessness":      NewMindlessness,
	"mana_prism":        NewManaPrism,
}

// Builtin returns the constructors of the pack's skills keyed by skill id.
func Builtin() map[string]Constructor {
	return maps.Clone(builtin)
}

// passive carries what every skill shares: identity, tuning stats and the
// owner and host it was attached to.
type passive struct {
	id         string
	name       string
	tags       []string
	damageType world.DamageType
	stats      *spells.Stats

	owner *world.Unit
	host  Host
	log   *slog.Logger
}

func newPassive(id, name string, dt world.DamageType, stats map[string]int, tags ...string) passive {
	return passive{
		id:         id,
		name:       name,
		tags:       tags,
		damageType: dt,
		stats:      spells.NewStats(stats, nil),
	}
}

func (p *passive) ID() string                   { return p.id }
func (p *passive) SourceName() string           { return p.name }
func (p *passive) DamageType() world.DamageType { return p.damageType }
func (p *passive) Stats() *spells.Stats         { return p.stats }
func (p *passive) Owner() *world.Unit           { return p.owner }

func (p *passive) HasTag(tag string) bool {
	return slices.Contains(p.tags, tag)
}

func (p *passive) stat(name string) int {
	return p.stats.Get(name)
}

// bind records owner and host. Subscriptions are the caller's job and
// happen only when bind succeeds.
func (p *passive) bind(owner *world.Unit, host Host) error {
	if owner == nil || host == nil {
		return fmt.Errorf("attach %s: %w", p.id, ErrNoOwner)
	}
	if p.host != nil {
		return fmt.Errorf("attach %s: %w", p.id, ErrAlreadyAttached)
	}
	p.owner, p.host = owner, host
	p.log = logger.With("skills").With("skill", p.id, "owner", owner.Name)
	return nil
}

// enemy reports whether u is hostile to the owner.
func (p *passive) enemy(u *world.Unit) bool {
	return u != nil && world.Hostile(p.owner, u)
}
