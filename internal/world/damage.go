package world

import (
	"fmt"
	"strings"

	"github.com/Earlh21/rw-cradle/internal/geom"
)

// DamageType is the element of a damage instance.
type DamageType int

const (
	DamagePhysical DamageType = iota
	DamageFire
	DamageIce
	DamageLightning
	DamageArcane
	DamageDark
	DamageHoly
	DamagePoison
	DamagePure
	DamageMetallic
	DamageHeal // Negative damage; restores HP up to the maximum
)

var damageTypeNames = map[DamageType]string{
	DamagePhysical:  "physical",
	DamageFire:      "fire",
	DamageIce:       "ice",
	DamageLightning: "lightning",
	DamageArcane:    "arcane",
	DamageDark:      "dark",
	DamageHoly:      "holy",
	DamagePoison:    "poison",
	DamagePure:      "pure",
	DamageMetallic:  "metallic",
	DamageHeal:      "heal",
}

// String returns the lowercase name used in YAML files and logs.
func (d DamageType) String() string {
	if name, ok := damageTypeNames[d]; ok {
		return name
	}
	return "unknown"
}

// ParseDamageType converts a name such as "pure" or "Fire" to a DamageType.
func ParseDamageType(s string) (DamageType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range damageTypeNames {
		if name == s {
			return d, nil
		}
	}
	return DamagePhysical, fmt.Errorf("unknown damage type %q", s)
}

// DamageSource is anything that can deal damage: spells, skills, clouds, hazards.
type DamageSource interface {
	SourceName() string
}

// TypedDamage is implemented by sources that have a single primary damage type.
type TypedDamage interface {
	DamageSource
	DamageType() DamageType
}

// SourceOwner returns the unit responsible for src: the caster of a spell,
// the owner of a skill, cloud or hazard. It is nil for environmental damage.
func SourceOwner(src DamageSource) *Unit {
	switch s := src.(type) {
	case *Cloud:
		return s.Owner
	case *Hazard:
		return s.Owner
	case interface{ Caster() *Unit }:
		return s.Caster()
	case interface{ Owner() *Unit }:
		return s.Owner()
	}
	return nil
}

// PureUnaffected reports whether purified units may still use src.
// Only physical abilities get through.
func PureUnaffected(src DamageSource) bool {
	typed, ok := src.(TypedDamage)
	return ok && typed.DamageType() == DamagePhysical
}

// DamageEvent is published after a unit takes damage.
type DamageEvent struct {
	Unit   *Unit
	Point  geom.Point
	Amount int
	Type   DamageType
	Source DamageSource
}

// NamedSource is a DamageSource with a fixed name and type, used for
// environmental damage.
type NamedSource struct {
	Name string
	Type DamageType
}

func (s NamedSource) SourceName() string     { return s.Name }
func (s NamedSource) DamageType() DamageType { return s.Type }
