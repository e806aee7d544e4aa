// Package stage turns the tiles a spell computed into an ordered sequence of
// batches. Each batch is one host-visible tick: the host pulls a batch,
// the batch's effect is applied, and the host decides when to pull the next.
package stage

import "github.com/Earlh21/rw-cradle/internal/geom"

// Pass classifies the tiles in a batch.
type Pass int

const (
	// PassPrimary is the spell's main effect. A tile appears in at most one
	// primary batch of a sequence.
	PassPrimary Pass = iota
	// PassRepeat covers effects that may revisit tiles: reflections,
	// repeated path segments, cloud passes.
	PassRepeat
)

// String returns the name used in logs and preview payloads.
func (p Pass) String() string {
	switch p {
	case PassPrimary:
		return "primary"
	case PassRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// Batch is one suspension point of a cast.
type Batch struct {
	Index  int          // Position in the sequence, starting at 0
	Pass   Pass         // How Points relate to other batches
	Points []geom.Point // Tiles this batch affects
	Trail  []geom.Point // Tiles shown but not affected (projectile travel)
	Delay  int          // Extra idle ticks the host should wait before this batch

	apply   func(points []geom.Point)
	resolve func() []geom.Point
}

// Empty reports whether the batch neither affects nor shows anything.
func (b Batch) Empty() bool {
	return len(b.Points) == 0 && len(b.Trail) == 0
}
