package world

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Earlh21/rw-cradle/internal/geom"
)

// Team decides hostility. Units on different teams are hostile.
type Team int

const (
	TeamPlayer Team = iota
	TeamEnemy
)

// String returns the team name used in map files.
func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// ParseTeam converts a map-file team name to a Team.
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player", "ally", "":
		return TeamPlayer, nil
	case "enemy", "hostile":
		return TeamEnemy, nil
	default:
		return TeamPlayer, fmt.Errorf("unknown team %q", s)
	}
}

// Status is a timed condition on a unit.
type Status string

const (
	// StatusPurified stops a unit from using anything but physical abilities.
	StatusPurified Status = "purified"
	StatusPoisoned Status = "poisoned"
)

// Unit tags used by the content pack.
const (
	TagMetallic = "metallic"
	TagHoly     = "holy"
	TagUndead   = "undead"
)

// Unit is a creature on the level.
type Unit struct {
	ID        int
	Name      string
	Team      Team
	Pos       geom.Point
	HP        int
	MaxHP     int
	Tags      []string
	Resists   map[DamageType]int // Percent, 100 is immune, negative is weak
	Abilities []DamageSource

	statuses map[Status]int
}

// NewUnit creates a unit at full health.
func NewUnit(name string, team Team, hp int) *Unit {
	return &Unit{
		Name:     name,
		Team:     team,
		HP:       hp,
		MaxHP:    hp,
		Resists:  make(map[DamageType]int),
		statuses: make(map[Status]int),
	}
}

// Alive returns true while the unit has HP left.
func (u *Unit) Alive() bool {
	return u.HP > 0
}

// HasTag reports whether the unit carries the given tag.
func (u *Unit) HasTag(tag string) bool {
	return slices.Contains(u.Tags, tag)
}

// ApplyStatus sets a status for turns turns, keeping the longer duration if
// the unit already has it.
func (u *Unit) ApplyStatus(s Status, turns int) {
	if turns <= 0 {
		return
	}
	if u.statuses == nil {
		u.statuses = make(map[Status]int)
	}
	u.statuses[s] = max(u.statuses[s], turns)
}

// RemoveStatus clears s.
func (u *Unit) RemoveStatus(s Status) {
	delete(u.statuses, s)
}

// HasStatus reports whether s is active.
func (u *Unit) HasStatus(s Status) bool {
	return u.statuses[s] > 0
}

// StatusTurns returns the turns left on s, 0 if inactive.
func (u *Unit) StatusTurns(s Status) int {
	return u.statuses[s]
}

// Statuses returns the active statuses sorted by name.
func (u *Unit) Statuses() []Status {
	out := make([]Status, 0, len(u.statuses))
	for s := range u.statuses {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// CanUse reports whether the unit may use src this turn.
func (u *Unit) CanUse(src DamageSource) bool {
	if !u.HasStatus(StatusPurified) {
		return true
	}
	return PureUnaffected(src)
}

func (u *Unit) tickStatuses() {
	for s, turns := range u.statuses {
		if turns <= 1 {
			delete(u.statuses, s)
		} else {
			u.statuses[s] = turns - 1
		}
	}
}

func (u *Unit) clone() *Unit {
	c := *u
	c.Tags = slices.Clone(u.Tags)
	c.Abilities = slices.Clone(u.Abilities)
	c.Resists = maps.Clone(u.Resists)
	c.statuses = maps.Clone(u.statuses)
	return &c
}

// Hostile reports whether a and b are on opposing teams. A nil unit is hostile to nobody.
func Hostile(a, b *Unit) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Team != b.Team
}
