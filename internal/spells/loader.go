package spells

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/Earlh21/rw-cradle/internal/world"
	"gopkg.in/yaml.v3"
)

//go:embed spells.yaml
var defaultSpellsYAML []byte

// UpgradeDefinition represents an upgrade in the YAML file.
type UpgradeDefinition struct {
	Stat        string `yaml:"stat"`
	Amount      int    `yaml:"amount"`
	Cost        int    `yaml:"cost"`
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	Exclusive   string `yaml:"exclusive,omitempty"`
}

// SpellDefinition represents a spell definition from the YAML file.
type SpellDefinition struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Level       int                 `yaml:"level"`
	Tags        []string            `yaml:"tags"`
	DamageType  string              `yaml:"damage_type"`
	RequiresLOS *bool               `yaml:"requires_los,omitempty"` // Defaults to true
	Stats       map[string]int      `yaml:"stats"`
	Upgrades    []UpgradeDefinition `yaml:"upgrades"`
}

// SpellsConfig represents the structure of a spells YAML file.
type SpellsConfig struct {
	Spells map[string]SpellDefinition `yaml:"spells"`
}

// DefaultSpells returns the definitions compiled into the binary.
func DefaultSpells() (*SpellsConfig, error) {
	config, err := ParseSpells(defaultSpellsYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded spells: %w", err)
	}
	return config, nil
}

// LoadSpellsFromYAML loads the embedded definitions and overlays the ones
// in filename. An empty filename returns the embedded definitions.
func LoadSpellsFromYAML(filename string) (*SpellsConfig, error) {
	config, err := DefaultSpells()
	if err != nil {
		return nil, err
	}
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read spells file: %w", err)
	}
	overlay, err := ParseSpells(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	maps.Copy(config.Spells, overlay.Spells)
	return config, nil
}

// ParseSpells parses and validates spell definitions.
func ParseSpells(data []byte) (*SpellsConfig, error) {
	var config SpellsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse spells YAML: %w", err)
	}
	if config.Spells == nil {
		config.Spells = make(map[string]SpellDefinition)
	}

	for id, def := range config.Spells {
		if def.Name == "" {
			return nil, fmt.Errorf("spell %q: missing name", id)
		}
		if def.DamageType != "" {
			if _, err := world.ParseDamageType(def.DamageType); err != nil {
				return nil, fmt.Errorf("spell %q: %w", id, err)
			}
		}
		seen := make(map[string]bool)
		for _, u := range def.Upgrades {
			if u.Stat == "" {
				return nil, fmt.Errorf("spell %q: upgrade without stat", id)
			}
			if seen[u.Stat] {
				return nil, fmt.Errorf("spell %q: duplicate upgrade %q", id, u.Stat)
			}
			seen[u.Stat] = true
		}
	}
	return &config, nil
}

// Definition returns the definition for id.
func (c *SpellsConfig) Definition(id string) (SpellDefinition, bool) {
	def, ok := c.Spells[id]
	return def, ok
}

// IDs returns every spell id, sorted.
func (c *SpellsConfig) IDs() []string {
	return slices.Sorted(maps.Keys(c.Spells))
}

// NewStats builds the stat block for one spell instance.
func (d SpellDefinition) NewStats() *Stats {
	upgrades := make([]Upgrade, len(d.Upgrades))
	for i, u := range d.Upgrades {
		name := u.Name
		if name == "" {
			name = u.Stat
		}
		upgrades[i] = Upgrade{
			Stat:        u.Stat,
			Amount:      u.Amount,
			Cost:        u.Cost,
			Name:        name,
			Description: u.Description,
			Exclusive:   u.Exclusive,
		}
	}
	return NewStats(d.Stats, upgrades)
}

// Type returns the spell's primary damage type, physical when unset.
func (d SpellDefinition) Type() world.DamageType {
	dt, err := world.ParseDamageType(d.DamageType)
	if err != nil {
		return world.DamagePhysical
	}
	return dt
}

// LOS reports whether the spell needs line of sight to its target.
func (d SpellDefinition) LOS() bool {
	return d.RequiresLOS == nil || *d.RequiresLOS
}
