package main

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/kamstrup/intmap"
	"github.com/pkg/errors"
	"github.com/plus3/thh/handlevec"
)

const (
	opAdd = iota
	opRemove
	opGet
	opSort
	opPartition
	opClear
	opCount
)

var opNames = [opCount]string{"add", "remove", "get", "sort", "partition", "clear"}

// deadHandles bounds how many removed handles are kept for stale checks.
const deadHandles = 1024

// dumpSlots bounds how many slots a failure dump prints.
const dumpSlots = 256

// OpStats holds the timings of one kind of operation.
type OpStats struct {
	Name string
	Stats
}

// Workload drives a handle vector with random operations and mirrors every
// change in a reference model keyed by Handle.Key.
type Workload struct {
	cfg   Config
	rng   *rand.Rand
	vec   *handlevec.Vector[int64, handlevec.DefaultTag]
	model *intmap.Map[uint64, int64]

	live      []handlevec.Handle
	dead      []handlevec.Handle
	deadNext  int
	nextValue int64

	Ops           [opCount]OpStats
	Verifications int64
}

func NewWorkload(cfg Config) *Workload {
	opts := []handlevec.Option{handlevec.WithCapacity(cfg.Elements)}
	if cfg.GenLimit > 0 {
		opts = append(opts, handlevec.WithGenerationLimit(cfg.GenLimit))
	}

	w := &Workload{
		cfg:   cfg,
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		vec:   handlevec.New[int64](opts...),
		model: intmap.New[uint64, int64](cfg.Elements),
		live:  make([]handlevec.Handle, 0, cfg.Elements),
	}
	for i := range w.Ops {
		w.Ops[i].Name = opNames[i]
	}
	return w
}

// Populate adds values until the target population is reached.
func (w *Workload) Populate() error {
	for len(w.live) < w.cfg.Elements {
		if err := w.add(); err != nil {
			return err
		}
	}
	return nil
}

// Frame runs one batch of random operations.
func (w *Workload) Frame() error {
	batch := max(w.cfg.Elements/100, 1)
	for range batch {
		op := w.pickOp()
		start := time.Now()
		err := w.apply(op)
		w.Ops[op].Observe(time.Since(start))
		if err != nil {
			return errors.Wrapf(err, "%s failed", opNames[op])
		}
	}

	if w.cfg.Verify {
		return w.Verify()
	}
	return nil
}

func (w *Workload) pickOp() int {
	// Keep the population near the target so removals and reuse both happen.
	addWeight, removeWeight := 20, 60
	if len(w.live) < w.cfg.Elements {
		addWeight, removeWeight = 60, 20
	}

	roll := w.rng.IntN(addWeight + removeWeight + 30)
	switch {
	case roll < addWeight:
		return opAdd
	case roll < addWeight+removeWeight:
		return opRemove
	case roll < addWeight+removeWeight+25:
		return opGet
	case w.rng.IntN(500) == 0:
		return opClear
	case roll%2 == 0:
		return opSort
	default:
		return opPartition
	}
}

func (w *Workload) apply(op int) error {
	switch op {
	case opAdd:
		return w.add()
	case opRemove:
		return w.remove()
	case opGet:
		return w.get()
	case opSort:
		w.sort()
	case opPartition:
		return w.partition()
	case opClear:
		w.clear()
	}
	return nil
}

func (w *Workload) add() error {
	value := w.nextValue
	w.nextValue++

	h := w.vec.Add(value)
	if _, exists := w.model.Get(h.Key()); exists {
		return errors.Errorf("handle %s issued twice", h)
	}
	w.model.Put(h.Key(), value)
	w.live = append(w.live, h)
	return nil
}

func (w *Workload) remove() error {
	if len(w.live) == 0 {
		return nil
	}

	i := w.rng.IntN(len(w.live))
	h := w.live[i]
	w.live[i] = w.live[len(w.live)-1]
	w.live = w.live[:len(w.live)-1]

	if !w.vec.Remove(h) {
		return errors.Errorf("live handle %s was rejected", h)
	}
	w.model.Del(h.Key())
	w.bury(h)

	if w.vec.Remove(h) {
		return errors.Errorf("handle %s removed twice", h)
	}
	return nil
}

func (w *Workload) get() error {
	if len(w.live) > 0 {
		h := w.live[w.rng.IntN(len(w.live))]
		got, ok := w.vec.Get(h)
		if !ok {
			return errors.Errorf("live handle %s does not resolve", h)
		}
		want, _ := w.model.Get(h.Key())
		if got != want {
			return errors.Errorf("handle %s resolved to %d, want %d", h, got, want)
		}
	}

	if len(w.dead) > 0 {
		h := w.dead[w.rng.IntN(len(w.dead))]
		if w.vec.Has(h) {
			return errors.Errorf("removed handle %s still resolves", h)
		}
	}
	return nil
}

func (w *Workload) sort() {
	if w.rng.IntN(2) == 0 {
		w.vec.Sort(cmp.Compare[int64])
		return
	}
	w.vec.Sort(func(a, b int64) int { return cmp.Compare(b, a) })
}

func (w *Workload) partition() error {
	pivot := w.rng.Int64N(w.nextValue + 1)
	pred := func(v int64) bool { return v < pivot }
	n := w.vec.Partition(pred)

	if !w.cfg.Verify {
		return nil
	}
	for i := range w.vec.Len() {
		if pred(w.vec.At(i)) != (i < n) {
			return errors.Errorf("partition point %d is wrong at index %d", n, i)
		}
	}
	return nil
}

func (w *Workload) clear() {
	w.vec.Clear()
	w.model.Clear()
	for _, h := range w.live {
		w.bury(h)
	}
	w.live = w.live[:0]
}

func (w *Workload) bury(h handlevec.Handle) {
	if len(w.dead) < deadHandles {
		w.dead = append(w.dead, h)
		return
	}
	w.dead[w.deadNext] = h
	w.deadNext = (w.deadNext + 1) % deadHandles
}

// Verify checks the container against the reference model.
func (w *Workload) Verify() error {
	w.Verifications++

	if w.vec.Len() != len(w.live) || w.model.Len() != len(w.live) {
		return errors.Errorf("size mismatch: vector %d, model %d, live %d", w.vec.Len(), w.model.Len(), len(w.live))
	}

	stats := w.vec.Stats()
	if stats.Occupied != stats.Len || stats.Cap < stats.Len {
		return errors.Errorf("inconsistent stats %+v", stats)
	}

	for _, h := range w.live {
		got, ok := w.vec.Get(h)
		if !ok {
			return errors.Errorf("live handle %s does not resolve", h)
		}
		want, _ := w.model.Get(h.Key())
		if got != want {
			return errors.Errorf("handle %s resolved to %d, want %d", h, got, want)
		}

		idx, ok := w.vec.IndexFromHandle(h)
		if !ok || idx >= w.vec.Len() {
			return errors.Errorf("handle %s has packed index %d of %d", h, idx, w.vec.Len())
		}
		if back := w.vec.HandleFromIndex(idx); back != h {
			return errors.Errorf("index %d maps back to %s, want %s", idx, back, h)
		}
	}

	for _, h := range w.dead {
		if w.vec.Has(h) {
			return errors.Errorf("removed handle %s still resolves", h)
		}
	}
	return nil
}

// Stats returns the container's slot usage.
func (w *Workload) Stats() handlevec.Stats {
	return w.vec.Stats()
}

// Dump renders the container state for a failure report.
func (w *Workload) Dump() string {
	slots := slices.Collect(w.vec.Slots())
	if len(slots) > dumpSlots {
		slots = slots[:dumpSlots]
	}

	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	return cfg.Sdump(w.vec.Stats(), slots)
}
