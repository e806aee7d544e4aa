package spells

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrUnknownUpgrade is returned when buying an upgrade the spell does not offer.
	ErrUnknownUpgrade = errors.New("unknown upgrade")
	// ErrAlreadyBought is returned when an upgrade is bought twice.
	ErrAlreadyBought = errors.New("upgrade already bought")
	// ErrExclusiveUpgrade is returned when another upgrade of the same group is owned.
	ErrExclusiveUpgrade = errors.New("exclusive upgrade already bought")
)

// Upgrade is a purchasable increase to one stat. Boolean upgrades such as
// "barrage" are stats that are zero until bought.
type Upgrade struct {
	Stat        string
	Amount      int
	Cost        int
	Name        string
	Description string
	Exclusive   string // Upgrades sharing a group cannot be combined
}

// Stats holds a spell's base values and the upgrades bought for it.
type Stats struct {
	base     map[string]int
	upgrades []Upgrade
	bought   map[string]bool
}

// NewStats creates stats from base values and the upgrades on offer.
func NewStats(base map[string]int, upgrades []Upgrade) *Stats {
	return &Stats{
		base:     maps.Clone(base),
		upgrades: slices.Clone(upgrades),
		bought:   make(map[string]bool),
	}
}

// Get returns the base value of stat plus every bought upgrade to it.
func (s *Stats) Get(stat string) int {
	v := s.base[stat]
	for _, u := range s.upgrades {
		if u.Stat == stat && s.bought[u.Stat] {
			v += u.Amount
		}
	}
	return v
}

// Has reports whether stat is positive, the test used for switch upgrades.
func (s *Stats) Has(stat string) bool {
	return s.Get(stat) > 0
}

// Add shifts a base value by delta, leaving bought upgrades on top.
func (s *Stats) Add(stat string, delta int) {
	s.Set(stat, s.base[stat]+delta)
}

// Set overrides a base value.
func (s *Stats) Set(stat string, v int) {
	if s.base == nil {
		s.base = make(map[string]int)
	}
	s.base[stat] = v
}

// Buy purchases the upgrade for stat.
func (s *Stats) Buy(stat string) error {
	idx := slices.IndexFunc(s.upgrades, func(u Upgrade) bool { return u.Stat == stat })
	if idx < 0 {
		return fmt.Errorf("buy %q: %w", stat, ErrUnknownUpgrade)
	}
	if s.bought[stat] {
		return fmt.Errorf("buy %q: %w", stat, ErrAlreadyBought)
	}

	if group := s.upgrades[idx].Exclusive; group != "" {
		for _, u := range s.upgrades {
			if u.Exclusive == group && s.bought[u.Stat] {
				return fmt.Errorf("buy %q: %q owned: %w", stat, u.Stat, ErrExclusiveUpgrade)
			}
		}
	}

	s.bought[stat] = true
	return nil
}

// Bought returns the stats of purchased upgrades in offer order.
func (s *Stats) Bought() []string {
	var out []string
	for _, u := range s.upgrades {
		if s.bought[u.Stat] {
			out = append(out, u.Stat)
		}
	}
	return out
}

// Upgrades returns the upgrades on offer.
func (s *Stats) Upgrades() []Upgrade {
	return slices.Clone(s.upgrades)
}

// Cost returns the total cost of the bought upgrades.
func (s *Stats) Cost() int {
	total := 0
	for _, u := range s.upgrades {
		if s.bought[u.Stat] {
			total += u.Cost
		}
	}
	return total
}
