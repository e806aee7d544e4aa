package spells

import "maps"

var builtin = map[string]Constructor{
	"mana_pulse":        NewManaPulse,
	"hollow_spear":      NewHollowSpear,
	"mana_bullet":       NewManaBullet,
	"rippling_sword":    NewRipplingSword,
	"endless_sword":     NewEndlessSword,
	"helix_beam":        NewHelixBeam,
	"hollow_domain":     NewHollowDomain,
	"empty_palm":        NewEmptyPalm,
	"word_of_emptiness": NewWordOfEmptiness,
	"seven_stars":       NewSevenStars,
	"dragons_breath":    NewDragonsBreath,
	"sword_of_judgment": NewSwordOfJudgment,
}

// Builtin returns the constructors of the pack's spells keyed by spell id.
func Builtin() map[string]Constructor {
	return maps.Clone(builtin)
}
