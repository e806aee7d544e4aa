// Package spells implements the content pack's geometric spells. Each spell
// computes its tiles through package geom, stages them with package stage,
// and mutates the level only when a batch is pulled.
package spells

import (
	"slices"

	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// Host is the level surface spells read and write. *world.Level implements it.
type Host interface {
	geom.Grid

	TileAt(p geom.Point) *world.Tile
	UnitAt(p geom.Point) *world.Unit
	Units() []*world.Unit
	UnitsInLOS(p geom.Point) []*world.Unit
	HasLineOfSight(a, b geom.Point) bool

	DealDamage(p geom.Point, amount int, dt world.DamageType, src world.DamageSource) int
	AddCloud(p geom.Point, c *world.Cloud)
	KillCloud(p geom.Point)
	AddHazard(p geom.Point, h *world.Hazard)
	MakeFloor(p geom.Point)
	PublishCast(evt world.CastEvent)
	OnCast(fn func(world.CastEvent))
}

var _ Host = (*world.Level)(nil)

// Spell is one castable spell bound to a caster and a level.
type Spell interface {
	world.TypedDamage

	ID() string
	Name() string
	Stats() *Stats
	Caster() *world.Unit
	HasTag(tag string) bool

	// ImpactedTiles returns the tiles a cast at target would affect.
	// It reads the level only and may be called any number of times.
	ImpactedTiles(target geom.Point) []geom.Point

	// CanCast reports whether target is a legal target right now.
	CanCast(target geom.Point) bool

	// Cast plans the spell against target. Nothing on the level changes
	// and no cast event is published until the first pull from the
	// returned sequence.
	Cast(target geom.Point) *stage.Sequence
}

// Constructor creates a spell for caster on host from its definition.
type Constructor func(id string, def SpellDefinition, caster *world.Unit, host Host) Spell

// base carries what every spell shares: identity, stats, caster and host.
type base struct {
	id          string
	def         SpellDefinition
	stats       *Stats
	caster      *world.Unit
	host        Host
	damageType  world.DamageType
	requiresLOS bool
}

func newBase(id string, def SpellDefinition, caster *world.Unit, host Host) base {
	return base{
		id:          id,
		def:         def,
		stats:       def.NewStats(),
		caster:      caster,
		host:        host,
		damageType:  def.Type(),
		requiresLOS: def.LOS(),
	}
}

func (b *base) ID() string                   { return b.id }
func (b *base) Name() string                 { return b.def.Name }
func (b *base) SourceName() string           { return b.def.Name }
func (b *base) DamageType() world.DamageType { return b.damageType }
func (b *base) Stats() *Stats                { return b.stats }
func (b *base) Caster() *world.Unit          { return b.caster }

// HasTag reports whether the definition lists tag.
func (b *base) HasTag(tag string) bool {
	return slices.Contains(b.def.Tags, tag)
}

func (b *base) stat(name string) int {
	return b.stats.Get(name)
}

func (b *base) origin() geom.Point {
	return b.caster.Pos
}

// canCast is the shared legality test: the caster is alive and allowed to
// use src, target is on the level, within range, and in line of sight when
// required. Range 0 spells target the caster's own tile.
func (b *base) canCast(src world.DamageSource, target geom.Point, requiresLOS bool) bool {
	if b.caster == nil || !b.caster.Alive() || !b.caster.CanUse(src) {
		return false
	}
	if !b.host.InBounds(target) {
		return false
	}

	rng := b.stat("range")
	if rng <= 0 {
		return target == b.origin()
	}
	if geom.Distance(b.origin(), target) > float64(rng) {
		return false
	}
	if requiresLOS && !b.host.HasLineOfSight(b.origin(), target) {
		return false
	}
	return true
}

// begin returns a builder for the cast's batches. The cast event goes out on
// the first pull, before any batch resolves.
func (b *base) begin(spell world.Castable, target geom.Point) *stage.Builder {
	evt := world.CastEvent{Caster: b.caster, Target: target, Spell: spell}
	return stage.NewBuilder().OnStart(func() { b.host.PublishCast(evt) })
}

// onLevel drops the points that lie off the level.
func (b *base) onLevel(points []geom.Point) []geom.Point {
	return slices.DeleteFunc(points, func(p geom.Point) bool { return !b.host.InBounds(p) })
}

// damage deals the spell's damage stat of its own type to every point.
func (b *base) damage(src world.DamageSource, points []geom.Point) {
	for _, p := range points {
		b.host.DealDamage(p, b.stat("damage"), b.damageType, src)
	}
}

// purify applies the purified status to any unit on p.
func (b *base) purify(p geom.Point, turns int) {
	if u := b.host.UnitAt(p); u != nil {
		u.ApplyStatus(world.StatusPurified, turns)
	}
}

// manaClouds replaces whatever cloud is on each point with a mana cloud.
func (b *base) manaClouds(points []geom.Point, duration, healing int) {
	for _, p := range points {
		b.host.KillCloud(p)
		b.host.AddCloud(p, world.NewManaCloud(b.caster, duration, healing))
	}
}

// floorTiles drops walls, which cannot hold clouds.
func (b *base) floorTiles(points []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(points))
	for _, p := range points {
		if !b.host.IsWall(p) {
			out = append(out, p)
		}
	}
	return out
}
