// Package preview serves dry-run cast plans over HTTP and WebSocket. Every
// plan is resolved on a clone of the shared level, so previews never change
// the board they describe.
package preview

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Earlh21/rw-cradle/internal/content"
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNoCaster   = errors.New("no unit at caster point")
)

// Request asks for the plan of one cast.
type Request struct {
	Spell    string   `json:"spell"`
	Caster   string   `json:"caster"` // "x,y"
	Target   string   `json:"target"` // "x,y"
	Upgrades []string `json:"upgrades,omitempty"`
}

// Tile is a point on the wire: [x, y].
type Tile [2]int

func tiles(points []geom.Point) []Tile {
	out := make([]Tile, len(points))
	for i, p := range points {
		out[i] = Tile{p.X, p.Y}
	}
	return out
}

// BatchView is one batch of a planned cast.
type BatchView struct {
	Index  int    `json:"index"`
	Pass   string `json:"pass"`
	Delay  int    `json:"delay,omitempty"`
	Points []Tile `json:"points"`
	Trail  []Tile `json:"trail,omitempty"`
}

// UnitOutcome reports a unit whose health changed during the dry run.
type UnitOutcome struct {
	Name   string `json:"name"`
	At     Tile   `json:"at"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// Plan is the dry-run result of a cast.
type Plan struct {
	Spell       string        `json:"spell"`
	Caster      Tile          `json:"caster"`
	Target      Tile          `json:"target"`
	CanCast     bool          `json:"can_cast"`
	Fingerprint string        `json:"fingerprint"`
	Impacted    []Tile        `json:"impacted"`
	Batches     []BatchView   `json:"batches"`
	Outcomes    []UnitOutcome `json:"outcomes,omitempty"`
	Board       string        `json:"board"`
}

// Planner resolves plans against a shared level.
type Planner struct {
	mu    sync.RWMutex
	level *world.Level
	reg   *content.Registry
}

// NewPlanner creates a planner over level using the spells in reg.
func NewPlanner(level *world.Level, reg *content.Registry) *Planner {
	return &Planner{level: level, reg: reg}
}

// SetLevel swaps the shared level.
func (p *Planner) SetLevel(level *world.Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
}

// Registry returns the content the planner builds spells from.
func (p *Planner) Registry() *content.Registry {
	return p.reg
}

func (p *Planner) snapshot() (*world.Level, string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level.Clone(), p.level.Fingerprint()
}

// Plan resolves req on a copy of the level. A spell that cannot be cast at
// the target still reports its impacted tiles, with no batches. A target off
// the level is a bad request.
func (p *Planner) Plan(req Request) (*Plan, error) {
	casterPt, err := geom.ParsePoint(req.Caster)
	if err != nil {
		return nil, fmt.Errorf("%w: caster: %w", ErrBadRequest, err)
	}
	targetPt, err := geom.ParsePoint(req.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: target: %w", ErrBadRequest, err)
	}

	level, fingerprint := p.snapshot()
	if !level.InBounds(targetPt) {
		return nil, fmt.Errorf("%w: target %v is off the level", ErrBadRequest, targetPt)
	}
	caster := level.UnitAt(casterPt)
	if caster == nil {
		return nil, fmt.Errorf("%v: %w", casterPt, ErrNoCaster)
	}

	spell, err := p.reg.NewSpell(req.Spell, caster, level)
	if err != nil {
		return nil, err
	}
	for _, u := range req.Upgrades {
		if err := spell.Stats().Buy(u); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
	}

	plan := &Plan{
		Spell:       spell.ID(),
		Caster:      Tile{casterPt.X, casterPt.Y},
		Target:      Tile{targetPt.X, targetPt.Y},
		CanCast:     spell.CanCast(targetPt),
		Fingerprint: fingerprint,
		Batches:     []BatchView{},
	}

	impacted := spell.ImpactedTiles(targetPt)
	plan.Impacted = tiles(impacted)

	marks := make(map[geom.Point]rune, len(impacted))
	for _, t := range impacted {
		marks[t] = '*'
	}
	plan.Board = level.Render(marks)

	if !plan.CanCast {
		return plan, nil
	}

	before := make(map[*world.Unit]int)
	for _, u := range level.Units() {
		before[u] = u.HP
	}

	for _, b := range spell.Cast(targetPt).Drain() {
		plan.Batches = append(plan.Batches, view(b))
	}

	for u, hp := range before {
		if u.HP != hp {
			plan.Outcomes = append(plan.Outcomes, UnitOutcome{
				Name:   u.Name,
				At:     Tile{u.Pos.X, u.Pos.Y},
				Before: hp,
				After:  u.HP,
			})
		}
	}
	sortOutcomes(plan.Outcomes)
	return plan, nil
}

func view(b stage.Batch) BatchView {
	v := BatchView{
		Index:  b.Index,
		Pass:   b.Pass.String(),
		Delay:  b.Delay,
		Points: tiles(b.Points),
	}
	if len(b.Trail) > 0 {
		v.Trail = tiles(b.Trail)
	}
	return v
}

// sortOutcomes orders outcomes row by row, left to right.
func sortOutcomes(out []UnitOutcome) {
	slices.SortFunc(out, func(a, b UnitOutcome) int {
		if c := cmp.Compare(a.At[1], b.At[1]); c != 0 {
			return c
		}
		return cmp.Compare(a.At[0], b.At[0])
	})
}
