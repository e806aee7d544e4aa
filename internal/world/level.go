// Package world is a small reference host for the content pack: a tile
// grid with units, clouds and hazards, a damage pipeline with event
// subscribers, and a turn clock. It implements the grid facade the
// geometry reads and the mutation surface spells write through.
package world

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/logger"
)

var (
	// ErrOutOfBounds is returned when a unit is placed off the level.
	ErrOutOfBounds = errors.New("point out of bounds")
	// ErrOccupied is returned when a unit is placed on another unit or a wall.
	ErrOccupied = errors.New("tile occupied")
)

// Level is the tile grid and everything on it. It is not safe for
// concurrent use; callers that share a level serialize access themselves.
type Level struct {
	Name   string
	Width  int
	Height int
	Turn   int

	tiles  [][]Tile // indexed [x][y]
	units  []*Unit
	nextID int

	onDamaged []func(DamageEvent)
	onAdvance []func()
	onCast    []func(CastEvent)
	onAdded   []func(*Unit)
}

// NewLevel creates an all-floor level.
func NewLevel(width, height int) *Level {
	width, height = max(width, 0), max(height, 0)
	tiles := make([][]Tile, width)
	for x := range tiles {
		tiles[x] = make([]Tile, height)
	}
	return &Level{Width: width, Height: height, tiles: tiles, nextID: 1}
}

// InBounds implements geom.Grid.
func (l *Level) InBounds(p geom.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < l.Width && p.Y < l.Height
}

// IsWall implements geom.Grid.
func (l *Level) IsWall(p geom.Point) bool {
	return l.tiles[p.X][p.Y].IsWall()
}

// IsChasm implements geom.Grid.
func (l *Level) IsChasm(p geom.Point) bool {
	return l.tiles[p.X][p.Y].IsChasm()
}

// TileAt returns the tile at p, or nil when p is off the level.
func (l *Level) TileAt(p geom.Point) *Tile {
	if !l.InBounds(p) {
		return nil
	}
	return &l.tiles[p.X][p.Y]
}

// SetKind changes the terrain at p. Units standing on a new wall are left in place.
func (l *Level) SetKind(p geom.Point, kind TileKind) {
	if t := l.TileAt(p); t != nil {
		t.Kind = kind
	}
}

// MakeFloor turns the tile at p into floor.
func (l *Level) MakeFloor(p geom.Point) {
	l.SetKind(p, TileFloor)
}

// AddUnit places u at p and assigns it an ID.
func (l *Level) AddUnit(u *Unit, p geom.Point) error {
	if !l.InBounds(p) {
		return fmt.Errorf("add %s at %v: %w", u.Name, p, ErrOutOfBounds)
	}
	if l.IsWall(p) || l.UnitAt(p) != nil {
		return fmt.Errorf("add %s at %v: %w", u.Name, p, ErrOccupied)
	}
	if u.statuses == nil {
		u.statuses = make(map[Status]int)
	}
	u.Pos = p
	u.ID = l.nextID
	l.nextID++
	l.units = append(l.units, u)
	for _, fn := range l.onAdded {
		fn(u)
	}
	return nil
}

// OnUnitAdded registers fn to run after every unit placed on the level.
func (l *Level) OnUnitAdded(fn func(*Unit)) {
	l.onAdded = append(l.onAdded, fn)
}

// RemoveUnit takes u off the level.
func (l *Level) RemoveUnit(u *Unit) {
	l.units = slices.DeleteFunc(l.units, func(o *Unit) bool { return o == u })
}

// UnitAt returns the unit standing at p, or nil.
func (l *Level) UnitAt(p geom.Point) *Unit {
	for _, u := range l.units {
		if u.Pos == p {
			return u
		}
	}
	return nil
}

// UnitByID returns the unit with the given ID, or nil.
func (l *Level) UnitByID(id int) *Unit {
	for _, u := range l.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Units returns a snapshot of the units on the level in placement order.
func (l *Level) Units() []*Unit {
	return slices.Clone(l.units)
}

// AddCloud puts c on the tile at p, replacing any cloud already there.
// Clouds cannot be placed on walls.
func (l *Level) AddCloud(p geom.Point, c *Cloud) {
	t := l.TileAt(p)
	if t == nil || t.IsWall() || c == nil {
		return
	}
	t.Cloud = c
}

// KillCloud removes the cloud at p, if any.
func (l *Level) KillCloud(p geom.Point) {
	if t := l.TileAt(p); t != nil {
		t.Cloud = nil
	}
}

// AddHazard puts h on the floor tile at p, replacing any hazard already there.
func (l *Level) AddHazard(p geom.Point, h *Hazard) {
	t := l.TileAt(p)
	if t == nil || !t.IsFloor() || h == nil {
		return
	}
	t.Hazard = h
}

// OnDamaged registers fn to run after every damage instance that hurt a unit.
func (l *Level) OnDamaged(fn func(DamageEvent)) {
	l.onDamaged = append(l.onDamaged, fn)
}

// OnAdvance registers fn to run at the end of every turn.
func (l *Level) OnAdvance(fn func()) {
	l.onAdvance = append(l.onAdvance, fn)
}

// DealDamage applies amount of damage of type dt to the unit at p and
// returns the damage actually dealt. Resistances scale the amount;
// DamageHeal restores HP instead and returns the negative amount healed.
// Units reduced to zero HP are removed.
func (l *Level) DealDamage(p geom.Point, amount int, dt DamageType, src DamageSource) int {
	u := l.UnitAt(p)
	if u == nil || amount == 0 {
		return 0
	}

	if dt == DamageHeal || amount < 0 {
		heal := min(abs(amount), u.MaxHP-u.HP)
		u.HP += heal
		return -heal
	}

	resist := u.Resists[dt]
	dealt := amount * (100 - min(resist, 100)) / 100
	if dealt <= 0 {
		return 0
	}
	dealt = min(dealt, u.HP)
	u.HP -= dealt

	if !u.Alive() {
		l.RemoveUnit(u)
		logger.Debug("Unit died", "unit", u.Name, "point", p.String(), "source", sourceName(src))
	}

	evt := DamageEvent{Unit: u, Point: p, Amount: dealt, Type: dt, Source: src}
	for _, fn := range l.onDamaged {
		fn(evt)
	}
	return dealt
}

// AdvanceTurn runs one turn of the environment: clouds and hazards act,
// their durations tick down, statuses tick down, then turn subscribers run.
func (l *Level) AdvanceTurn() {
	for x := range l.tiles {
		for y := range l.tiles[x] {
			p := geom.Pt(x, y)
			if l.tiles[x][y].Cloud != nil {
				l.advanceCloud(p)
			}
			if l.tiles[x][y].Hazard != nil {
				l.advanceHazard(p)
			}
		}
	}

	for x := range l.tiles {
		for y := range l.tiles[x] {
			t := &l.tiles[x][y]
			if t.Cloud != nil {
				t.Cloud.Duration--
				if t.Cloud.Duration <= 0 {
					t.Cloud = nil
				}
			}
			if t.Hazard != nil {
				t.Hazard.Duration--
				if t.Hazard.Duration <= 0 {
					t.Hazard = nil
				}
			}
		}
	}

	for _, u := range l.Units() {
		u.tickStatuses()
	}

	l.Turn++
	for _, fn := range l.onAdvance {
		fn()
	}
}

func (l *Level) advanceCloud(p geom.Point) {
	c := l.tiles[p.X][p.Y].Cloud
	u := l.UnitAt(p)
	if u == nil {
		return
	}

	if dt, ok := c.Element(); ok {
		l.DealDamage(p, c.Damage, dt, c)
		return
	}

	if u == c.Owner {
		return
	}
	if c.Healing > 0 && !Hostile(u, c.Owner) {
		l.DealDamage(p, c.Healing, DamageHeal, c)
		l.KillCloud(p)
		return
	}
	u.ApplyStatus(StatusPurified, 2)
}

func (l *Level) advanceHazard(p geom.Point) {
	h := l.tiles[p.X][p.Y].Hazard
	var src DamageSource = h
	if h.Source != nil {
		src = h.Source
	}
	for _, dt := range h.Types {
		if l.UnitAt(p) == nil {
			return
		}
		l.DealDamage(p, h.Damage, dt, src)
	}
}

// Clone returns a deep copy of the level's terrain, units, clouds and
// hazards. Subscribers are not copied.
func (l *Level) Clone() *Level {
	c := &Level{
		Name:   l.Name,
		Width:  l.Width,
		Height: l.Height,
		Turn:   l.Turn,
		nextID: l.nextID,
		tiles:  make([][]Tile, l.Width),
		units:  make([]*Unit, len(l.units)),
	}

	remap := make(map[*Unit]*Unit, len(l.units))
	for i, u := range l.units {
		c.units[i] = u.clone()
		remap[u] = c.units[i]
	}
	owner := func(u *Unit) *Unit {
		if nu, ok := remap[u]; ok {
			return nu
		}
		return u
	}

	for x := range l.tiles {
		c.tiles[x] = make([]Tile, l.Height)
		for y, t := range l.tiles[x] {
			if t.Cloud != nil {
				cloud := *t.Cloud
				cloud.Owner = owner(cloud.Owner)
				t.Cloud = &cloud
			}
			if t.Hazard != nil {
				hazard := *t.Hazard
				hazard.Owner = owner(hazard.Owner)
				hazard.Types = slices.Clone(hazard.Types)
				t.Hazard = &hazard
			}
			c.tiles[x][y] = t
		}
	}
	return c
}

func sourceName(src DamageSource) string {
	if src == nil {
		return "none"
	}
	return src.SourceName()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
