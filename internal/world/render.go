package world

import (
	"strings"

	"github.com/Earlh21/rw-cradle/internal/geom"
)

// Render draws the level as text, one row per line. Marked points are drawn
// with the given rune over terrain and clouds but under units.
func (l *Level) Render(marks map[geom.Point]rune) string {
	var sb strings.Builder
	sb.Grow((l.Width + 1) * l.Height)

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			p := geom.Pt(x, y)
			sb.WriteRune(l.glyphAt(p, marks))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (l *Level) glyphAt(p geom.Point, marks map[geom.Point]rune) rune {
	if u := l.UnitAt(p); u != nil {
		if u.Team == TeamPlayer {
			return '@'
		}
		return 'e'
	}
	if r, ok := marks[p]; ok {
		return r
	}

	t := &l.tiles[p.X][p.Y]
	switch {
	case t.Cloud != nil && t.Cloud.Kind == CloudMana:
		return '~'
	case t.Cloud != nil:
		return '%'
	case t.Hazard != nil:
		return '^'
	}
	return t.Kind.Glyph()
}
