package world

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Earlh21/rw-cradle/internal/geom"
	"gopkg.in/yaml.v3"
)

// ErrBadMap is wrapped by every map validation error.
var ErrBadMap = errors.New("bad map")

// MapYAML represents a level layout loaded from YAML
type MapYAML struct {
	Name   string      `yaml:"name"`
	Rows   []string    `yaml:"rows"`
	Units  []UnitYAML  `yaml:"units"`
	Clouds []CloudYAML `yaml:"clouds"`
	Props  []PropYAML  `yaml:"props"`
}

// UnitYAML represents a unit placement
type UnitYAML struct {
	Name     string         `yaml:"name"`
	Team     string         `yaml:"team"`
	At       string         `yaml:"at"`
	HP       int            `yaml:"hp"`
	Tags     []string       `yaml:"tags"`
	Resists  map[string]int `yaml:"resists"`
	Statuses map[string]int `yaml:"statuses"`
}

// CloudYAML represents a cloud placement
type CloudYAML struct {
	Kind     string `yaml:"kind"`
	At       string `yaml:"at"`
	Duration int    `yaml:"duration"`
	Damage   int    `yaml:"damage"`
}

// PropYAML represents a prop placement
type PropYAML struct {
	Name string `yaml:"name"`
	At   string `yaml:"at"`
}

// LoadMap loads a level from a YAML file
func LoadMap(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}
	return ParseMap(data)
}

// ParseMap builds a level from YAML map data
func ParseMap(data []byte) (*Level, error) {
	var m MapYAML
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse map YAML: %w", err)
	}
	return m.ToLevel()
}

// ToLevel converts the YAML representation to a Level
func (m *MapYAML) ToLevel() (*Level, error) {
	level, err := ParseRows(m.Rows...)
	if err != nil {
		return nil, err
	}
	level.Name = m.Name

	for i, uy := range m.Units {
		u, p, err := uy.toUnit()
		if err != nil {
			return nil, fmt.Errorf("unit %d: %w", i, err)
		}
		if err := level.AddUnit(u, p); err != nil {
			return nil, fmt.Errorf("unit %d: %w: %w", i, ErrBadMap, err)
		}
	}

	for i, cy := range m.Clouds {
		kind, err := ParseCloudKind(cy.Kind)
		if err != nil {
			return nil, fmt.Errorf("cloud %d: %w: %w", i, ErrBadMap, err)
		}
		p, err := level.parseAt(cy.At)
		if err != nil {
			return nil, fmt.Errorf("cloud %d: %w", i, err)
		}
		level.AddCloud(p, &Cloud{Kind: kind, Duration: max(cy.Duration, 1), Damage: cy.Damage})
	}

	for i, py := range m.Props {
		p, err := level.parseAt(py.At)
		if err != nil {
			return nil, fmt.Errorf("prop %d: %w", i, err)
		}
		level.TileAt(p).Prop = py.Name
	}

	return level, nil
}

// ParseRows builds a level from rows of glyphs: '.' floor, '#' wall, ':' chasm.
// All rows must have the same width.
func ParseRows(rows ...string) (*Level, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadMap)
	}
	width := utf8.RuneCountInString(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: empty row", ErrBadMap)
	}

	level := NewLevel(width, len(rows))
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrBadMap, y, n, width)
		}
		x := 0
		for _, r := range row {
			kind, ok := ParseGlyph(r)
			if !ok {
				return nil, fmt.Errorf("%w: unknown glyph %q at %d,%d", ErrBadMap, r, x, y)
			}
			level.tiles[x][y].Kind = kind
			x++
		}
	}
	return level, nil
}

func (uy UnitYAML) toUnit() (*Unit, geom.Point, error) {
	p, err := geom.ParsePoint(uy.At)
	if err != nil {
		return nil, p, fmt.Errorf("%w: %w", ErrBadMap, err)
	}
	team, err := ParseTeam(uy.Team)
	if err != nil {
		return nil, p, fmt.Errorf("%w: %w", ErrBadMap, err)
	}
	hp := uy.HP
	if hp <= 0 {
		hp = 10
	}

	name := uy.Name
	if name == "" {
		name = team.String()
	}
	u := NewUnit(name, team, hp)
	for _, tag := range uy.Tags {
		u.Tags = append(u.Tags, strings.ToLower(tag))
	}
	for name, pct := range uy.Resists {
		dt, err := ParseDamageType(name)
		if err != nil {
			return nil, p, fmt.Errorf("%w: %w", ErrBadMap, err)
		}
		u.Resists[dt] = pct
	}
	for name, turns := range uy.Statuses {
		u.ApplyStatus(Status(strings.ToLower(name)), turns)
	}
	return u, p, nil
}

func (l *Level) parseAt(at string) (geom.Point, error) {
	p, err := geom.ParsePoint(at)
	if err != nil {
		return p, fmt.Errorf("%w: %w", ErrBadMap, err)
	}
	if !l.InBounds(p) {
		return p, fmt.Errorf("%w: %v is off the level", ErrBadMap, p)
	}
	return p, nil
}

// ToYAML captures the level in map-file form. Hazards and cloud owners are
// not part of the format and are dropped.
func (l *Level) ToYAML() *MapYAML {
	m := &MapYAML{Name: l.Name}
	for y := 0; y < l.Height; y++ {
		var sb strings.Builder
		for x := 0; x < l.Width; x++ {
			t := &l.tiles[x][y]
			sb.WriteRune(t.Kind.Glyph())
			at := geom.Pt(x, y).String()
			if t.Cloud != nil {
				m.Clouds = append(m.Clouds, CloudYAML{
					Kind:     t.Cloud.Kind.String(),
					At:       at,
					Duration: t.Cloud.Duration,
					Damage:   t.Cloud.Damage,
				})
			}
			if t.Prop != "" {
				m.Props = append(m.Props, PropYAML{Name: t.Prop, At: at})
			}
		}
		m.Rows = append(m.Rows, sb.String())
	}

	for _, u := range l.units {
		uy := UnitYAML{
			Name: u.Name,
			Team: u.Team.String(),
			At:   u.Pos.String(),
			HP:   u.HP,
			Tags: u.Tags,
		}
		if len(u.Resists) > 0 {
			uy.Resists = make(map[string]int, len(u.Resists))
			for dt, pct := range u.Resists {
				uy.Resists[dt.String()] = pct
			}
		}
		for _, s := range u.Statuses() {
			if uy.Statuses == nil {
				uy.Statuses = make(map[string]int)
			}
			uy.Statuses[string(s)] = u.StatusTurns(s)
		}
		m.Units = append(m.Units, uy)
	}
	return m
}

// SaveMap writes the level to path as YAML.
func SaveMap(l *Level, path string) error {
	data, err := yaml.Marshal(l.ToYAML())
	if err != nil {
		return fmt.Errorf("failed to marshal map: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write map file: %w", err)
	}
	return nil
}

// MapFileExists checks if a map YAML file exists
func MapFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
