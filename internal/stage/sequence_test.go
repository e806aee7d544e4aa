package stage

import (
	"testing"

	"github.com/Earlh21/rw-cradle/internal/geom"
)

type openGrid struct{ w, h int }

func (g openGrid) InBounds(p geom.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.w && p.Y < g.h
}
func (g openGrid) IsWall(geom.Point) bool  { return false }
func (g openGrid) IsChasm(geom.Point) bool { return false }
func (g openGrid) PointsInLine(from, to geom.Point, _ bool) []geom.Point {
	return []geom.Point{from, to}
}

func TestRingsOneBatchPerRing(t *testing.T) {
	g := openGrid{w: 15, h: 15}
	stages := geom.Burst(g, geom.Pt(7, 7), 3)

	applied := 0
	seq := NewBuilder().Rings(stages, func(pts []geom.Point) { applied += len(pts) }).Build()

	batches := seq.Drain()
	if len(batches) != 4 {
		t.Fatalf("got %d batches, want 4", len(batches))
	}

	seen := make(map[geom.Point]bool)
	for i, b := range batches {
		if b.Index != i {
			t.Errorf("batch %d has index %d", i, b.Index)
		}
		if b.Pass != PassPrimary {
			t.Errorf("batch %d pass = %v, want primary", i, b.Pass)
		}
		if len(b.Points) != len(stages[i]) {
			t.Errorf("batch %d has %d points, ring has %d", i, len(b.Points), len(stages[i]))
		}
		for j, p := range b.Points {
			if p != stages[i][j] {
				t.Errorf("batch %d point %d = %v, want %v", i, j, p, stages[i][j])
			}
			if seen[p] {
				t.Errorf("%v appears in more than one batch", p)
			}
			seen[p] = true
		}
	}
	if applied != 49 {
		t.Errorf("applied to %d tiles, want 49", applied)
	}
}

func TestEmptyPlanYieldsNothing(t *testing.T) {
	seq := NewBuilder().Add(PassPrimary, nil, func([]geom.Point) {
		t.Error("apply called for an empty batch")
	}).Build()

	if seq.Len() != 0 {
		t.Errorf("Len() = %d, want 0", seq.Len())
	}
	if _, ok := seq.Next(); ok {
		t.Error("Next() returned a batch from an empty sequence")
	}
	if !seq.Done() {
		t.Error("empty sequence is not done")
	}

	var nilSeq *Sequence
	if _, ok := nilSeq.Next(); ok {
		t.Error("nil sequence returned a batch")
	}
	if Empty().Len() != 0 {
		t.Error("Empty() has batches")
	}
}

func TestExcludeDropsCaster(t *testing.T) {
	g := openGrid{w: 9, h: 9}
	caster := geom.Pt(4, 4)

	seq := NewBuilder().Exclude(caster).Rings(geom.Burst(g, caster, 2), nil).Build()
	batches := seq.Plan()
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2 (ring 0 held only the caster)", len(batches))
	}
	for _, b := range batches {
		for _, p := range b.Points {
			if p == caster {
				t.Errorf("caster tile in batch %d", b.Index)
			}
		}
	}
}

func TestPrimaryDedupAndRepeat(t *testing.T) {
	a, b, c := geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0)

	seq := NewBuilder().
		Add(PassPrimary, []geom.Point{a, b}, nil).
		Add(PassPrimary, []geom.Point{b, c}, nil).
		Add(PassPrimary, []geom.Point{a}, nil).
		Add(PassRepeat, []geom.Point{a, b}, nil).
		Build()

	plan := seq.Plan()
	if len(plan) != 3 {
		t.Fatalf("got %d batches, want 3", len(plan))
	}
	if len(plan[1].Points) != 1 || plan[1].Points[0] != c {
		t.Errorf("second batch = %v, want only %v", plan[1].Points, c)
	}
	if plan[2].Pass != PassRepeat || len(plan[2].Points) != 2 {
		t.Errorf("repeat batch = %+v, want both points again", plan[2])
	}
}

func TestPauseSetsDelay(t *testing.T) {
	p := geom.Pt(1, 1)
	seq := NewBuilder().
		Add(PassRepeat, []geom.Point{p}, nil).
		Pause(3).
		Add(PassRepeat, nil, nil).
		Add(PassRepeat, []geom.Point{p}, nil).
		Pause(2).
		Build()

	plan := seq.Plan()
	if len(plan) != 2 {
		t.Fatalf("got %d batches, want 2", len(plan))
	}
	if plan[0].Delay != 0 || plan[1].Delay != 3 {
		t.Errorf("delays = %d, %d, want 0, 3", plan[0].Delay, plan[1].Delay)
	}
	if seq.Tail() != 2 {
		t.Errorf("Tail() = %d, want the trailing pause of 2", seq.Tail())
	}

	if got := NewBuilder().Add(PassRepeat, []geom.Point{p}, nil).Build().Tail(); got != 0 {
		t.Errorf("Tail() without a trailing pause = %d", got)
	}
}

func TestTrailOnlyBatchKept(t *testing.T) {
	seq := NewBuilder().AddTrail(PassPrimary, []geom.Point{geom.Pt(3, 3)}, nil, nil).Build()
	if seq.Len() != 1 {
		t.Errorf("trail-only batch dropped")
	}
}

func TestNextResolvesLazily(t *testing.T) {
	var log []int
	b := NewBuilder()
	for i := 0; i < 3; i++ {
		i := i
		b.Add(PassRepeat, []geom.Point{geom.Pt(i, 0)}, func([]geom.Point) { log = append(log, i) })
	}
	seq := b.Build()

	if len(log) != 0 {
		t.Fatalf("effects applied before any pull: %v", log)
	}

	first, ok := seq.Next()
	if !ok || first.Index != 0 {
		t.Fatalf("Next() = %+v, %v", first, ok)
	}
	if len(log) != 1 {
		t.Errorf("after one pull %d effects applied, want 1", len(log))
	}
	if seq.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", seq.Remaining())
	}

	for b := range seq.All() {
		if b.Index != 1 {
			t.Errorf("All() started at batch %d, want 1", b.Index)
		}
		break
	}
	if len(log) != 2 {
		t.Errorf("after breaking out of All %d effects applied, want 2", len(log))
	}

	rest := seq.Drain()
	if len(rest) != 1 || rest[0].Index != 2 {
		t.Errorf("Drain() = %+v, want batch 2", rest)
	}
	if _, ok := seq.Next(); ok {
		t.Error("exhausted sequence returned another batch")
	}
	if len(log) != 3 {
		t.Errorf("%d effects applied, want 3", len(log))
	}
}

func TestOnStartRunsOnFirstPull(t *testing.T) {
	var log []string
	seq := NewBuilder().
		OnStart(func() { log = append(log, "start") }).
		Add(PassRepeat, []geom.Point{geom.Pt(0, 0)}, func([]geom.Point) { log = append(log, "a") }).
		Add(PassRepeat, []geom.Point{geom.Pt(1, 0)}, func([]geom.Point) { log = append(log, "b") }).
		Build()

	if len(log) != 0 {
		t.Fatalf("hook ran before any pull: %v", log)
	}
	_ = seq.Plan()
	if len(log) != 0 {
		t.Fatalf("Plan() ran the hook: %v", log)
	}

	seq.Drain()
	seq.Next()
	want := []string{"start", "a", "b"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}

	t.Run("empty sequence", func(t *testing.T) {
		calls := 0
		empty := NewBuilder().OnStart(func() { calls++ }).Add(PassPrimary, nil, nil).Build()
		if _, ok := empty.Next(); ok {
			t.Error("empty sequence returned a batch")
		}
		empty.Next()
		if calls != 1 {
			t.Errorf("hook ran %d times, want 1", calls)
		}
	})
}

func TestAddLateResolvesOnPull(t *testing.T) {
	caster := geom.Pt(0, 0)
	aim := geom.Pt(2, 2)
	var hit []geom.Point

	seq := NewBuilder().
		Exclude(caster).
		AddLate(PassRepeat, []geom.Point{aim}, func() []geom.Point {
			return []geom.Point{aim, caster}
		}, func(pts []geom.Point) { hit = append(hit, pts...) }).
		AddLate(PassRepeat, nil, func() []geom.Point { return []geom.Point{aim} }, nil).
		Build()

	if seq.Len() != 1 {
		t.Fatalf("got %d batches, want 1 (an empty plan is dropped)", seq.Len())
	}
	aim = geom.Pt(4, 1)
	if plan := seq.Plan(); plan[0].Points[0] != geom.Pt(2, 2) {
		t.Errorf("Plan() = %v, want the planned tile", plan[0].Points)
	}

	b, ok := seq.Next()
	if !ok {
		t.Fatal("empty sequence")
	}
	want := []geom.Point{geom.Pt(4, 1)}
	if len(b.Points) != 1 || b.Points[0] != want[0] {
		t.Errorf("pulled Points = %v, want %v", b.Points, want)
	}
	if len(hit) != 1 || hit[0] != want[0] {
		t.Errorf("applied to %v, want %v without the excluded caster", hit, want)
	}
}

func TestChunksAndEach(t *testing.T) {
	pts := make([]geom.Point, 10)
	for i := range pts {
		pts[i] = geom.Pt(i, 0)
	}

	if n := NewBuilder().Chunks(PassPrimary, pts, 4, nil).Len(); n != 3 {
		t.Errorf("Chunks made %d batches, want 3", n)
	}

	var got []geom.Point
	seq := NewBuilder().Each(PassPrimary, pts[:3], func(p geom.Point) { got = append(got, p) }).Build()
	if seq.Len() != 3 {
		t.Errorf("Each made %d batches, want 3", seq.Len())
	}
	seq.Drain()
	if len(got) != 3 {
		t.Errorf("Each applied %d times, want 3", len(got))
	}
}

func TestTilesFirstTouchOrder(t *testing.T) {
	batches := []Batch{
		{Points: []geom.Point{geom.Pt(1, 1), geom.Pt(2, 2)}},
		{Points: []geom.Point{geom.Pt(2, 2), geom.Pt(0, 0)}},
	}
	got := Tiles(batches)
	want := []geom.Point{geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(0, 0)}
	if len(got) != len(want) {
		t.Fatalf("Tiles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tiles()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
