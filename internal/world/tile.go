package world

import (
	"fmt"
	"strings"
)

// TileKind is the terrain of a tile.
type TileKind int

const (
	TileFloor TileKind = iota
	TileWall
	TileChasm
)

// String returns the terrain name.
func (k TileKind) String() string {
	switch k {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileChasm:
		return "chasm"
	default:
		return "unknown"
	}
}

// Glyph returns the map-file character for the terrain.
func (k TileKind) Glyph() rune {
	switch k {
	case TileWall:
		return '#'
	case TileChasm:
		return ':'
	default:
		return '.'
	}
}

// ParseGlyph converts a map-file character to a TileKind.
func ParseGlyph(r rune) (TileKind, bool) {
	switch r {
	case '.', ' ':
		return TileFloor, true
	case '#':
		return TileWall, true
	case ':':
		return TileChasm, true
	default:
		return TileFloor, false
	}
}

// Tile is one cell of the level.
type Tile struct {
	Kind   TileKind
	Cloud  *Cloud
	Hazard *Hazard
	Prop   string
}

func (t *Tile) IsWall() bool  { return t.Kind == TileWall }
func (t *Tile) IsChasm() bool { return t.Kind == TileChasm }
func (t *Tile) IsFloor() bool { return t.Kind == TileFloor }

// CloudKind identifies a cloud's behaviour.
type CloudKind int

const (
	CloudMana CloudKind = iota
	CloudFire
	CloudBlizzard
	CloudStorm
	CloudInferno
)

var cloudKindNames = map[CloudKind]string{
	CloudMana:     "mana",
	CloudFire:     "fire",
	CloudBlizzard: "blizzard",
	CloudStorm:    "storm",
	CloudInferno:  "inferno",
}

// String returns the cloud name used in map files.
func (k CloudKind) String() string {
	if name, ok := cloudKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseCloudKind converts a map-file cloud name to a CloudKind.
func ParseCloudKind(s string) (CloudKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range cloudKindNames {
		if name == s {
			return k, nil
		}
	}
	return CloudMana, fmt.Errorf("unknown cloud kind %q", s)
}

// Cloud sits on a tile and acts on whoever stands in it each turn.
// Mana clouds purify units other than their owner, or heal the owner's
// allies and vanish when Healing is set.
type Cloud struct {
	Kind     CloudKind
	Owner    *Unit
	Duration int
	Damage   int // Elemental clouds only
	Healing  int // Mana clouds only
}

// NewManaCloud returns a mana cloud owned by owner.
func NewManaCloud(owner *Unit, duration, healing int) *Cloud {
	return &Cloud{Kind: CloudMana, Owner: owner, Duration: duration, Healing: healing}
}

// Element returns the damage type an elemental cloud deals. ok is false for mana clouds.
func (c *Cloud) Element() (DamageType, bool) {
	switch c.Kind {
	case CloudFire, CloudInferno:
		return DamageFire, true
	case CloudBlizzard:
		return DamageIce, true
	case CloudStorm:
		return DamageLightning, true
	default:
		return DamagePhysical, false
	}
}

// SourceName implements DamageSource.
func (c *Cloud) SourceName() string {
	return c.Kind.String() + " cloud"
}

// Hazard is a timed tile effect that damages whoever stands on it.
type Hazard struct {
	Name     string
	Owner    *Unit
	Source   DamageSource
	Duration int
	Damage   int
	Types    []DamageType
}

// NewFrozenMana returns the spike hazard left behind by ice hitting mana.
func NewFrozenMana(owner *Unit, source DamageSource, duration, damage int) *Hazard {
	return &Hazard{
		Name:     "Frozen Mana",
		Owner:    owner,
		Source:   source,
		Duration: duration,
		Damage:   damage,
		Types:    []DamageType{DamageIce, DamagePure},
	}
}

// SourceName implements DamageSource.
func (h *Hazard) SourceName() string {
	return h.Name
}
