package stage

import "github.com/Earlh21/rw-cradle/internal/geom"

// Builder collects batches in order. It filters excluded tiles out of every
// batch, keeps primary tiles unique across the whole sequence, and drops
// batches left with nothing to affect or show.
type Builder struct {
	excluded map[geom.Point]struct{}
	primary  map[geom.Point]struct{}
	batches  []Batch
	delay    int
	start    func()
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		excluded: make(map[geom.Point]struct{}),
		primary:  make(map[geom.Point]struct{}),
	}
}

// Exclude removes points from batches added afterwards. Spells exclude the
// caster's tile this way.
func (b *Builder) Exclude(points ...geom.Point) *Builder {
	for _, p := range points {
		b.excluded[p] = struct{}{}
	}
	return b
}

// OnStart registers fn to run once, on the first pull, ahead of the first
// batch's effect. It runs even when the sequence has no batches.
func (b *Builder) OnStart(fn func()) *Builder {
	b.start = fn
	return b
}

// Pause adds n idle ticks before the next batch.
func (b *Builder) Pause(n int) *Builder {
	if n > 0 {
		b.delay += n
	}
	return b
}

// Add appends one batch. apply receives the batch's tiles after filtering and
// runs when the host pulls the batch.
func (b *Builder) Add(pass Pass, points []geom.Point, apply func(points []geom.Point)) *Builder {
	return b.AddTrail(pass, nil, points, apply)
}

// AddTrail appends one batch that also shows trail tiles without affecting them.
func (b *Builder) AddTrail(pass Pass, trail, points []geom.Point, apply func(points []geom.Point)) *Builder {
	batch := Batch{
		Pass:   pass,
		Points: b.filter(pass, points),
		Trail:  trail,
		apply:  apply,
	}
	if batch.Empty() {
		return b
	}

	batch.Delay = b.delay
	b.delay = 0
	b.batches = append(b.batches, batch)
	return b
}

// AddLate appends a batch whose tiles are recomputed by resolve when it is
// pulled, for effects that follow something which may move in the meantime.
// points is the plan shown until then. Resolved tiles still drop excluded
// points but are not deduplicated against primary tiles.
func (b *Builder) AddLate(pass Pass, points []geom.Point, resolve func() []geom.Point, apply func(points []geom.Point)) *Builder {
	n := len(b.batches)
	b.Add(pass, points, apply)
	if len(b.batches) == n {
		return b
	}

	excluded := b.excluded
	b.batches[n].resolve = func() []geom.Point {
		var out []geom.Point
		for _, p := range resolve() {
			if _, skip := excluded[p]; !skip {
				out = append(out, p)
			}
		}
		return out
	}
	return b
}

// Rings appends one primary batch per burst ring, innermost first.
func (b *Builder) Rings(stages [][]geom.Point, apply func(points []geom.Point)) *Builder {
	for _, s := range stages {
		b.Add(PassPrimary, s, apply)
	}
	return b
}

// Groups appends one batch per group, in the order given.
func (b *Builder) Groups(pass Pass, groups [][]geom.Point, apply func(points []geom.Point)) *Builder {
	for _, g := range groups {
		b.Add(pass, g, apply)
	}
	return b
}

// Each appends one batch per tile.
func (b *Builder) Each(pass Pass, points []geom.Point, apply func(p geom.Point)) *Builder {
	for _, p := range points {
		b.Add(pass, []geom.Point{p}, func(pts []geom.Point) {
			for _, q := range pts {
				apply(q)
			}
		})
	}
	return b
}

// Chunks appends batches of at most size tiles each.
func (b *Builder) Chunks(pass Pass, points []geom.Point, size int, apply func(points []geom.Point)) *Builder {
	if size <= 0 {
		size = len(points)
	}
	for start := 0; start < len(points); start += size {
		end := min(start+size, len(points))
		b.Add(pass, points[start:end], apply)
	}
	return b
}

// Len returns the number of batches added so far.
func (b *Builder) Len() int {
	return len(b.batches)
}

// Build returns the sequence. The builder should not be used afterwards. A
// pause with no batch after it becomes the sequence's Tail.
func (b *Builder) Build() *Sequence {
	for i := range b.batches {
		b.batches[i].Index = i
	}
	return &Sequence{batches: b.batches, tail: b.delay, start: b.start}
}

func (b *Builder) filter(pass Pass, points []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(points))
	for _, p := range points {
		if _, skip := b.excluded[p]; skip {
			continue
		}
		if pass == PassPrimary {
			if _, done := b.primary[p]; done {
				continue
			}
			b.primary[p] = struct{}{}
		}
		out = append(out, p)
	}
	return out
}
