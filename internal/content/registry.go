// Package content wires the pack's spells and skills into a registry that the
// command line tool and the preview server build their content from.
package content

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/Earlh21/rw-cradle/internal/logger"
	"github.com/Earlh21/rw-cradle/internal/skills"
	"github.com/Earlh21/rw-cradle/internal/spells"
	"github.com/Earlh21/rw-cradle/internal/world"
)

var (
	ErrUnknownSpell = errors.New("unknown spell")
	ErrUnknownSkill = errors.New("unknown skill")
	ErrDuplicate    = errors.New("already registered")
	ErrNoDefinition = errors.New("no spell definition")
)

type spellEntry struct {
	def  spells.SpellDefinition
	ctor spells.Constructor
}

// Registry holds the spell and skill constructors available to a session
type Registry struct {
	mu     sync.RWMutex
	spells map[string]spellEntry         // spellID -> definition and constructor
	skills map[string]skills.Constructor // skillID -> constructor
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		spells: make(map[string]spellEntry),
		skills: make(map[string]skills.Constructor),
	}
}

// RegisterSpell adds a spell under id
func (r *Registry) RegisterSpell(id string, def spells.SpellDefinition, ctor spells.Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.spells[id]; exists {
		return fmt.Errorf("spell %q: %w", id, ErrDuplicate)
	}
	r.spells[id] = spellEntry{def: def, ctor: ctor}
	return nil
}

// RegisterSkill adds a skill under id
func (r *Registry) RegisterSkill(id string, ctor skills.Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.skills[id]; exists {
		return fmt.Errorf("skill %q: %w", id, ErrDuplicate)
	}
	r.skills[id] = ctor
	return nil
}

// Install registers every built-in spell with its definition from defs, and
// every built-in skill. Definitions without a constructor are skipped.
func Install(reg *Registry, defs *spells.SpellsConfig) error {
	log := logger.With("content")
	builtin := spells.Builtin()
	for _, id := range slices.Sorted(maps.Keys(builtin)) {
		def, ok := defs.Definition(id)
		if !ok {
			return fmt.Errorf("install %s: %w", id, ErrNoDefinition)
		}
		if err := reg.RegisterSpell(id, def, builtin[id]); err != nil {
			return fmt.Errorf("install: %w", err)
		}
	}
	for _, id := range defs.IDs() {
		if _, ok := builtin[id]; !ok {
			log.Warn("Spell definition has no implementation", "spell", id)
		}
	}

	for id, ctor := range skills.Builtin() {
		if err := reg.RegisterSkill(id, ctor); err != nil {
			return fmt.Errorf("install: %w", err)
		}
	}

	log.Info("Content installed", "spells", len(builtin), "skills", len(skills.Builtin()))
	return nil
}

// NewSpell builds spell id for caster on host
func (r *Registry) NewSpell(id string, caster *world.Unit, host spells.Host) (spells.Spell, error) {
	r.mu.RLock()
	entry, exists := r.spells[id]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownSpell)
	}
	return entry.ctor(id, entry.def, caster, host), nil
}

// NewSkill builds an unattached skill
func (r *Registry) NewSkill(id string) (skills.Skill, error) {
	r.mu.RLock()
	ctor, exists := r.skills[id]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownSkill)
	}
	return ctor(), nil
}

// Definition returns the definition spell id was registered with
func (r *Registry) Definition(id string) (spells.SpellDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.spells[id]
	return entry.def, exists
}

// SpellIDs returns the registered spell ids in sorted order
func (r *Registry) SpellIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.spells))
}

// SkillIDs returns the registered skill ids in sorted order
func (r *Registry) SkillIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.skills))
}
