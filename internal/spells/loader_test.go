package spells

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Earlh21/rw-cradle/internal/world"
)

func TestDefaultSpells(t *testing.T) {
	config, err := DefaultSpells()
	if err != nil {
		t.Fatalf("DefaultSpells: %v", err)
	}

	ids := config.IDs()
	builtin := Builtin()
	if len(ids) != len(builtin) {
		t.Errorf("got %d definitions, want %d", len(ids), len(builtin))
	}
	for _, id := range ids {
		if _, ok := builtin[id]; !ok {
			t.Errorf("definition %q has no constructor", id)
		}
	}
	if !slices.IsSorted(ids) {
		t.Errorf("IDs() not sorted: %v", ids)
	}

	pulse, ok := config.Definition("mana_pulse")
	if !ok {
		t.Fatal("mana_pulse missing")
	}
	if pulse.Type() != world.DamagePure {
		t.Errorf("mana_pulse type = %v, want pure", pulse.Type())
	}
	if !pulse.LOS() {
		t.Error("mana_pulse should default to requiring line of sight")
	}
	if pulse.Stats["radius"] != 7 || pulse.Stats["damage"] != 25 {
		t.Errorf("mana_pulse stats = %v", pulse.Stats)
	}

	bullet, _ := config.Definition("mana_bullet")
	if bullet.LOS() {
		t.Error("mana_bullet requires_los: false was ignored")
	}
}

func TestLoadSpellsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spells.yaml")
	overlay := `spells:
  mana_pulse:
    name: "Small Pulse"
    damage_type: pure
    stats:
      radius: 2
      damage: 5
  test_spark:
    name: "Spark"
    damage_type: lightning
    requires_los: false
`
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatalf("Failed to write overlay: %v", err)
	}

	config, err := LoadSpellsFromYAML(path)
	if err != nil {
		t.Fatalf("LoadSpellsFromYAML: %v", err)
	}

	pulse, _ := config.Definition("mana_pulse")
	if pulse.Name != "Small Pulse" || pulse.Stats["radius"] != 2 {
		t.Errorf("mana_pulse not overridden: %+v", pulse)
	}
	if _, ok := config.Definition("hollow_spear"); !ok {
		t.Error("overlay dropped untouched definitions")
	}
	spark, ok := config.Definition("test_spark")
	if !ok || spark.Type() != world.DamageLightning || spark.LOS() {
		t.Errorf("test_spark = %+v, %v", spark, ok)
	}

	if _, err := LoadSpellsFromYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing overlay file did not error")
	}
	if config, err := LoadSpellsFromYAML(""); err != nil || len(config.Spells) != len(Builtin()) {
		t.Errorf("empty path = %v, %v; want embedded definitions", config, err)
	}
}

func TestParseSpellsErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "spells: [nope"},
		{"missing_name", "spells:\n  a:\n    damage_type: pure\n"},
		{"bad_damage_type", "spells:\n  a:\n    name: A\n    damage_type: plasma\n"},
		{"upgrade_without_stat", "spells:\n  a:\n    name: A\n    upgrades:\n      - {amount: 1}\n"},
		{"duplicate_upgrade", "spells:\n  a:\n    name: A\n    upgrades:\n      - {stat: radius}\n      - {stat: radius}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSpells([]byte(tt.yaml)); err == nil {
				t.Errorf("ParseSpells accepted %q", tt.yaml)
			}
		})
	}
}

func TestDefinitionNewStats(t *testing.T) {
	def := SpellDefinition{
		Name:  "Test",
		Stats: map[string]int{"radius": 3},
		Upgrades: []UpgradeDefinition{
			{Stat: "radius", Amount: 2, Cost: 1},
			{Stat: "echo", Amount: 1, Cost: 4, Name: "Echo"},
		},
	}

	stats := def.NewStats()
	ups := stats.Upgrades()
	if len(ups) != 2 || ups[0].Name != "radius" || ups[1].Name != "Echo" {
		t.Errorf("upgrades = %+v, want unnamed upgrade to take its stat as name", ups)
	}
	if def.Type() != world.DamagePhysical {
		t.Errorf("empty damage_type = %v, want physical", def.Type())
	}
}
