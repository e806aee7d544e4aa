package world

import "github.com/Earlh21/rw-cradle/internal/geom"

// Castable is what cast subscribers see of a spell.
type Castable interface {
	DamageSource
	HasTag(tag string) bool
	ImpactedTiles(target geom.Point) []geom.Point
}

// CastEvent is published when a spell is cast, before any of its batches resolve.
type CastEvent struct {
	Caster *Unit
	Target geom.Point
	Spell  Castable
}

// OnCast registers fn to run whenever a spell is cast on the level.
func (l *Level) OnCast(fn func(CastEvent)) {
	l.onCast = append(l.onCast, fn)
}

// PublishCast notifies cast subscribers.
func (l *Level) PublishCast(evt CastEvent) {
	for _, fn := range l.onCast {
		fn(evt)
	}
}
