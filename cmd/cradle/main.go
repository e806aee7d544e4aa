package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Earlh21/rw-cradle/internal/config"
	"github.com/Earlh21/rw-cradle/internal/content"
	"github.com/Earlh21/rw-cradle/internal/geom"
	"github.com/Earlh21/rw-cradle/internal/journal"
	"github.com/Earlh21/rw-cradle/internal/logger"
	"github.com/Earlh21/rw-cradle/internal/preview"
	"github.com/Earlh21/rw-cradle/internal/spells"
	"github.com/Earlh21/rw-cradle/internal/stage"
	"github.com/Earlh21/rw-cradle/internal/world"
)

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	// Parse command-line flags
	configFile := flag.String("config", "data/cradle.yaml", "Path to sandbox config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	spellsFile := flag.String("spells", "", "Path to spells YAML file (default: config, then built-in)")
	mapFile := flag.String("map", "", "Path to map YAML file (default: config, then a generated maze)")
	mazeSeed := flag.Int64("maze-seed", 0, "Maze generation seed (default: config)")
	spellID := flag.String("spell", "", "Spell to cast")
	casterAt := flag.String("caster", "1,1", "Caster position as x,y")
	targetAt := flag.String("target", "", "Target position as x,y (default: the caster)")
	turns := flag.Int("turns", 0, "Turns to advance after the cast")
	serve := flag.Bool("serve", false, "Run the preview server")
	report := flag.Bool("report", false, "Print journal summaries and exit")
	listOnly := flag.Bool("list", false, "List spells and skills and exit")
	var upgrades, skillIDs listFlag
	flag.Var(&upgrades, "upgrade", "Upgrade to buy for the spell (repeatable)")
	flag.Var(&skillIDs, "skill", "Skill to attach to the caster (repeatable)")
	flag.Parse()

	// Initialize logger
	logConfig, err := logger.LoadConfig(*loggingConfig)
	if err != nil {
		log.Printf("Failed to load logging config, using defaults: %v", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Failed to load sandbox config, using defaults", "path", *configFile, "error", err)
	}

	if *report {
		handleReport(cfg)
		return
	}

	// Load spell definitions
	path := *spellsFile
	if path == "" {
		path = cfg.Content.SpellsFile
	}
	var defs *spells.SpellsConfig
	if path != "" {
		defs, err = spells.LoadSpellsFromYAML(path)
	} else {
		defs, err = spells.DefaultSpells()
	}
	if err != nil {
		log.Fatalf("Failed to load spells: %v", err)
	}

	reg := content.NewRegistry()
	if err := content.Install(reg, defs); err != nil {
		log.Fatalf("Failed to install content: %v", err)
	}

	if *listOnly {
		handleList(reg)
		return
	}

	level, err := loadLevel(cfg.Content, *mapFile, *mazeSeed)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	logger.Info("Level loaded", "width", level.Width, "height", level.Height, "units", len(level.Units()))

	if *serve {
		handleServe(cfg, level, reg)
		return
	}

	if *spellID == "" {
		fmt.Fprintln(os.Stderr, "Error: -spell is required (use -list to see what is available)")
		os.Exit(2)
	}

	caster, err := placeCaster(level, *casterAt)
	if err != nil {
		log.Fatalf("Failed to place caster: %v", err)
	}
	target := caster.Pos
	if *targetAt != "" {
		if target, err = geom.ParsePoint(*targetAt); err != nil {
			log.Fatalf("Bad target: %v", err)
		}
	}

	for _, id := range skillIDs {
		skill, err := reg.NewSkill(id)
		if err != nil {
			log.Fatalf("Failed to create skill: %v", err)
		}
		if err := skill.Attach(caster, level); err != nil {
			log.Fatalf("Failed to attach %s: %v", id, err)
		}
		logger.Info("Skill attached", "skill", id, "owner", caster.Name)
	}

	spell, err := reg.NewSpell(*spellID, caster, level)
	if err != nil {
		log.Fatalf("Failed to create spell: %v", err)
	}
	for _, u := range upgrades {
		if err := spell.Stats().Buy(u); err != nil {
			log.Fatalf("Failed to buy upgrade: %v", err)
		}
	}

	if !spell.CanCast(target) {
		fmt.Fprintf(os.Stderr, "Error: %s cannot be cast from %v at %v\n", spell.Name(), caster.Pos, target)
		os.Exit(1)
	}

	fingerprint := level.Fingerprint()
	impacted := spell.ImpactedTiles(target)
	batches := cast(level, spell, target)

	for i := 0; i < *turns; i++ {
		level.AdvanceTurn()
	}
	fmt.Println(level.Render(nil))

	for _, u := range level.Units() {
		fmt.Printf("%-16s %-8s %v hp=%d/%d\n", u.Name, u.Team, u.Pos, u.HP, u.MaxHP)
	}

	if cfg.Journal.Enabled {
		recordCast(cfg.Journal.Config, journal.Record{
			SpellID:       spell.ID(),
			Caster:        caster.Pos,
			Target:        target,
			Upgrades:      upgrades,
			Fingerprint:   fingerprint,
			ImpactedTiles: len(impacted),
			Batches:       batches,
		})
	}
}

// loadLevel reads mapFlag, then the configured map if it exists, and falls
// back to a maze.
func loadLevel(cfg config.ContentConfig, mapFlag string, seedFlag int64) (*world.Level, error) {
	if mapFlag != "" {
		return world.LoadMap(mapFlag)
	}
	if cfg.MapFile != "" {
		if world.MapFileExists(cfg.MapFile) {
			return world.LoadMap(cfg.MapFile)
		}
		logger.Warning("Map file not found, generating a maze", "path", cfg.MapFile)
	}

	seed := cfg.MazeSeed
	if seedFlag != 0 {
		seed = seedFlag
	}
	logger.Info("Generating maze", "width", cfg.MazeWidth, "height", cfg.MazeHeight, "seed", seed)
	return world.GenerateMaze(cfg.MazeWidth, cfg.MazeHeight, seed), nil
}

// placeCaster returns the unit at at, adding a wizard there if the tile is empty.
func placeCaster(level *world.Level, at string) (*world.Unit, error) {
	p, err := geom.ParsePoint(at)
	if err != nil {
		return nil, err
	}
	if u := level.UnitAt(p); u != nil {
		return u, nil
	}
	wizard := world.NewUnit("wizard", world.TeamPlayer, 50)
	if err := level.AddUnit(wizard, p); err != nil {
		return nil, err
	}
	return wizard, nil
}

// cast resolves the spell one batch at a time, printing each batch over the
// board, and returns the number of batches.
func cast(level *world.Level, spell spells.Spell, target geom.Point) int {
	n := 0
	seq := spell.Cast(target)
	for b := range seq.All() {
		n++
		logger.Info("Batch resolved",
			"spell", spell.ID(),
			"index", b.Index,
			"pass", b.Pass.String(),
			"delay", b.Delay,
			"tiles", len(b.Points))

		marks := make(map[geom.Point]rune, len(b.Points)+len(b.Trail))
		for _, p := range b.Trail {
			marks[p] = '.'
		}
		for _, p := range b.Points {
			marks[p] = glyphFor(b.Pass)
		}
		fmt.Printf("batch %d (%s)\n%s\n", b.Index, b.Pass, level.Render(marks))
	}
	if tail := seq.Tail(); tail > 0 {
		logger.Info("Cast ends with a pause", "spell", spell.ID(), "ticks", tail)
	}
	return n
}

func glyphFor(pass stage.Pass) rune {
	if pass == stage.PassRepeat {
		return '~'
	}
	return '*'
}

func recordCast(cfg journal.Config, r journal.Record) {
	j, err := journal.Open(cfg)
	if err != nil {
		logger.Warning("Failed to open journal, cast not recorded", "error", err)
		return
	}
	defer j.Close()

	id, err := j.RecordCast(context.Background(), r)
	if err != nil {
		logger.Warning("Failed to record cast", "error", err)
		return
	}
	logger.Info("Cast recorded", "id", id, "spell", r.SpellID)
}

// handleReport prints per-spell journal aggregates and exits
func handleReport(cfg *config.SandboxConfig) {
	j, err := journal.Open(cfg.Journal.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to open journal: %v\n", err)
		os.Exit(1)
	}
	defer j.Close()

	summaries, err := j.Summaries(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(summaries) == 0 {
		fmt.Println("No casts recorded.")
		return
	}
	fmt.Printf("%-20s %6s %10s %10s\n", "SPELL", "CASTS", "IMPACTED", "BATCHES")
	for _, s := range summaries {
		fmt.Printf("%-20s %6d %10.1f %10.1f\n", s.SpellID, s.Casts, s.AvgImpacted, s.AvgBatches)
	}
}

func handleList(reg *content.Registry) {
	fmt.Println("Spells:")
	for _, id := range reg.SpellIDs() {
		def, _ := reg.Definition(id)
		var ups []string
		for _, u := range def.Upgrades {
			ups = append(ups, u.Stat)
		}
		fmt.Printf("  %-18s %-20s [%s]\n", id, def.Name, strings.Join(ups, ", "))
	}
	fmt.Println("Skills:")
	for _, id := range reg.SkillIDs() {
		fmt.Printf("  %s\n", id)
	}
}

// handleServe runs the preview server until interrupted
func handleServe(cfg *config.SandboxConfig, level *world.Level, reg *content.Registry) {
	if len(cfg.Preview.AllowedOrigins) == 0 {
		logger.Info("WebSocket CORS policy", "mode", "same-origin")
	} else if len(cfg.Preview.AllowedOrigins) == 1 && cfg.Preview.AllowedOrigins[0] == "*" {
		logger.Warning("WebSocket CORS allows all origins (not recommended outside local testing)")
	} else {
		logger.Info("WebSocket CORS policy", "allowed_origins", cfg.Preview.AllowedOrigins)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := preview.NewServer(preview.NewPlanner(level, reg), cfg.Preview)
	logger.Info("Press Ctrl+C to shutdown")
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Fatalf("Preview server error: %v", err)
	}
	logger.Info("Preview server stopped")
}
