package stage

import (
	"iter"

	"github.com/Earlh21/rw-cradle/internal/geom"
)

// Sequence is the lazy result of a cast. Pulling a batch resolves its effect
// first and then returns it; a sequence cannot be rewound. Abandoning a
// sequence part way leaves the remaining batches unresolved.
type Sequence struct {
	batches []Batch
	next    int
	tail    int
	start   func()
	started bool
}

// Empty returns a sequence with no batches.
func Empty() *Sequence {
	return &Sequence{}
}

// Next resolves and returns the next batch. ok is false once the sequence
// is exhausted, and stays false.
func (s *Sequence) Next() (batch Batch, ok bool) {
	if s == nil {
		return Batch{}, false
	}
	if !s.started {
		s.started = true
		if s.start != nil {
			s.start()
		}
	}
	if s.next >= len(s.batches) {
		return Batch{}, false
	}

	batch = s.batches[s.next]
	s.next++
	if batch.resolve != nil {
		batch.Points = batch.resolve()
	}
	if batch.apply != nil {
		batch.apply(batch.Points)
	}
	return batch, true
}

// All yields the remaining batches, resolving each one before it is yielded.
// Breaking out of the loop leaves the rest for a later Next or All.
func (s *Sequence) All() iter.Seq[Batch] {
	return func(yield func(Batch) bool) {
		for {
			b, ok := s.Next()
			if !ok || !yield(b) {
				return
			}
		}
	}
}

// Len returns the total number of batches.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.batches)
}

// Remaining returns the number of batches not yet pulled.
func (s *Sequence) Remaining() int {
	if s == nil {
		return 0
	}
	return len(s.batches) - s.next
}

// Tail returns the idle ticks requested after the last batch.
func (s *Sequence) Tail() int {
	if s == nil {
		return 0
	}
	return s.tail
}

// Done reports whether every batch has been pulled.
func (s *Sequence) Done() bool {
	return s.Remaining() == 0
}

// Plan returns copies of the unpulled batches without resolving them.
func (s *Sequence) Plan() []Batch {
	if s == nil {
		return nil
	}
	out := make([]Batch, 0, s.Remaining())
	for _, b := range s.batches[s.next:] {
		b.apply = nil
		b.resolve = nil
		out = append(out, b)
	}
	return out
}

// Drain resolves every remaining batch and returns them.
func (s *Sequence) Drain() []Batch {
	var out []Batch
	for b := range s.All() {
		out = append(out, b)
	}
	return out
}

// Tiles returns every tile touched by the given batches, each once, in
// first-touch order.
func Tiles(batches []Batch) []geom.Point {
	var all []geom.Point
	for _, b := range batches {
		all = append(all, b.Points...)
	}
	return geom.Dedup(all)
}
